package service

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"pimadapter/domain"
	"pimadapter/helpers"
	"pimadapter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// BrokerOptions selects what the broker provisions and lists.
type BrokerOptions struct {
	// ProductName is the product instantiated by CreateInstance; empty means domain.DefaultProductName.
	ProductName string
	// InstanceFilter is the default substring for ListInstances; empty means domain.DefaultInstanceFilter.
	InstanceFilter string
}

// Broker locates or provisions remote tool instances through the shared platform handle and builds InstanceAdapters for them.
type Broker struct {
	platform  *PlatformHandle
	scriptEnv interfaces.ScriptEnv
	sessions  interfaces.SessionFactory
	plugins   *PluginLocator
	opts      BrokerOptions
	logger    log.Logger
}

// NewBroker creates a broker. Panics on any nil dependency.
//
// Parameters: platform — shared platform handle; scriptEnv — remote scripting environment initializer; sessions — session client factory;
// plugins — desktop plugin directory lookup; opts — product and filter defaults; logger — base logger.
//
// Returns: *Broker.
//
// Called from cmd/main.
func NewBroker(
	platform *PlatformHandle,
	scriptEnv interfaces.ScriptEnv,
	sessions interfaces.SessionFactory,
	plugins *PluginLocator,
	opts BrokerOptions,
	logger log.Logger,
) *Broker {
	if opts.ProductName == "" {
		opts.ProductName = domain.DefaultProductName
	}
	if opts.InstanceFilter == "" {
		opts.InstanceFilter = domain.DefaultInstanceFilter
	}
	return &Broker{
		platform:  helpers.NilPanic(platform, "service.broker.go: platform is required"),
		scriptEnv: helpers.NilPanic(scriptEnv, "service.broker.go: scriptEnv is required"),
		sessions:  helpers.NilPanic(sessions, "service.broker.go: sessions is required"),
		plugins:   helpers.NilPanic(plugins, "service.broker.go: plugins is required"),
		opts:      opts,
		logger:    log.With(helpers.NilPanic(logger, "service.broker.go: logger is required"), "component", "broker"),
	}
}

// Connect returns the shared platform-manager client, connecting on first use. See PlatformHandle.Connect.
func (b *Broker) Connect(ctx context.Context) (interfaces.PlatformManager, error) {
	return b.platform.Connect(ctx)
}

// ListInstances yields the ready instances whose name contains substring (empty means the configured filter).
// Nothing is yielded when the platform cannot be reached or the query fails; the failure is logged.
// Every range over the sequence queries the platform again.
func (b *Broker) ListInstances(ctx context.Context, substring string) iter.Seq[domain.Instance] {
	return func(yield func(domain.Instance) bool) {
		manager, err := b.platform.Connect(ctx)
		if err != nil {
			return
		}
		instances, err := b.readyInstances(ctx, manager, substring)
		if err != nil {
			level.Error(b.logger).Log("msg", "unable to list instances", "err", err)
			return
		}
		for _, instance := range instances {
			if !yield(instance) {
				return
			}
		}
	}
}

// readyInstances queries the platform and keeps the ready instances whose name contains substring (empty means the configured filter).
func (b *Broker) readyInstances(ctx context.Context, manager interfaces.PlatformManager, substring string) ([]domain.Instance, error) {
	if substring == "" {
		substring = b.opts.InstanceFilter
	}
	instances, err := manager.ListInstances(ctx)
	if err != nil {
		return nil, err
	}
	ready := make([]domain.Instance, 0, len(instances))
	for _, instance := range instances {
		if instance.Ready && strings.Contains(instance.Name, substring) {
			ready = append(ready, instance)
		}
	}
	return ready, nil
}

// SelectInstance picks from the instances ListInstances would yield: the first one when name is empty, else the one whose name
// matches exactly. Instances that are not ready or fall outside the configured filter are never selected.
//
// Parameters: ctx — bounds the list call; name — exact instance name or empty.
//
// Returns: (instance, nil); platform_unreachable when the handle is not connected or the list call cannot reach the platform;
// instance_not_found when nothing matches.
//
// Called from Reconnect.
func (b *Broker) SelectInstance(ctx context.Context, name string) (domain.Instance, error) {
	manager := b.platform.Manager()
	if manager == nil {
		return domain.Instance{}, NewPlatformUnreachableError("platform manager is not connected", nil)
	}
	instances, err := b.readyInstances(ctx, manager, "")
	if err != nil {
		level.Error(b.logger).Log("msg", "unable to list instances", "err", err)
		return domain.Instance{}, platformCallError(err, NewInstanceNotFoundError, "unable to list instances")
	}
	for _, instance := range instances {
		if name == "" || instance.Name == name {
			return instance, nil
		}
	}
	if name == "" {
		return domain.Instance{}, NewInstanceNotFoundError("no ready instance", nil)
	}
	return domain.Instance{}, NewInstanceNotFoundError("no ready instance named "+name, nil)
}

// PrintInstances writes every listed instance with its definition and remote-call address.
func (b *Broker) PrintInstances(ctx context.Context, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "All AnsysEDT instances:"); err != nil {
		return err
	}
	for instance := range b.ListInstances(ctx, "") {
		address := ""
		if svc, ok := instance.Services[string(domain.EndpointRemoteCall)]; ok {
			address = svc.URI
		}
		_, err := fmt.Fprintf(w, "Definition: %s, Name: %s, address=%s\n",
			lastPathSegment(instance.DefinitionName), lastPathSegment(instance.Name), address)
		if err != nil {
			return err
		}
	}
	return nil
}

// NewAdapter returns an Empty adapter sharing the broker's dependencies.
func (b *Broker) NewAdapter() *InstanceAdapter {
	return &InstanceAdapter{
		platform:  b.platform,
		scriptEnv: b.scriptEnv,
		sessions:  b.sessions,
		plugins:   b.plugins,
		logger:    log.With(b.logger, "component", "instance_adapter"),
	}
}

// CreateInstance provisions a fresh instance of the configured product and returns a Provisioned adapter for it.
//
// Parameter ctx — bounds connect, creation and the readiness wait.
//
// Returns: (adapter, nil) with all Connection Records built and none connected; on failure a non-nil adapter (Empty, or holding the
// instance when only the wait or record construction failed so Delete can release it) and the error: platform_unreachable,
// instance_creation_failed, unknown_endpoint, or *domain.ParseError for a malformed service URI.
//
// Called by scripts and cmd/main action "create".
func (b *Broker) CreateInstance(ctx context.Context) (*InstanceAdapter, error) {
	adapter := b.NewAdapter()
	if _, err := b.platform.Connect(ctx); err != nil {
		return adapter, err
	}
	instance, err := adapter.CreatePIMInstance(ctx, b.opts.ProductName)
	if err != nil {
		return adapter, err
	}
	if err := adapter.attach(instance); err != nil {
		return adapter, err
	}
	level.Info(b.logger).Log("msg", "instance provisioned", "instance", instance.Name)
	return adapter, nil
}

// Reconnect attaches to an already running instance (see SelectInstance for name matching) and returns a Provisioned adapter for it.
//
// Returns: (adapter, nil); on failure a non-nil adapter and the error: platform_unreachable, instance_not_found, unknown_endpoint,
// or *domain.ParseError.
//
// Called by scripts and cmd/main actions "reconnect" and "delete".
func (b *Broker) Reconnect(ctx context.Context, name string) (*InstanceAdapter, error) {
	adapter := b.NewAdapter()
	if _, err := b.platform.Connect(ctx); err != nil {
		return adapter, err
	}
	instance, err := b.SelectInstance(ctx, name)
	if err != nil {
		return adapter, err
	}
	if err := adapter.attach(instance); err != nil {
		return adapter, err
	}
	level.Info(b.logger).Log("msg", "reconnected to instance", "instance", instance.Name)
	return adapter, nil
}

// lastPathSegment returns the part after the last '/' of a resource name such as "instances/aedt-1".
func lastPathSegment(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}
