package adapters

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"pimadapter/domain"
	"pimadapter/helpers"
	"pimadapter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"k8s.io/apimachinery/pkg/util/wait"
)

// PlatformServiceName is the gRPC service of the product instance manager.
const PlatformServiceName = "ansys.api.platform.instancemanagement.v1.ProductInstanceManager"

const (
	methodListDefinitions = "/" + PlatformServiceName + "/ListDefinitions"
	methodListInstances   = "/" + PlatformServiceName + "/ListInstances"
	methodCreateInstance  = "/" + PlatformServiceName + "/CreateInstance"
	methodGetInstance     = "/" + PlatformServiceName + "/GetInstance"
	methodDeleteInstance  = "/" + PlatformServiceName + "/DeleteInstance"
)

const (
	DefaultReadyPollInterval = 2 * time.Second
	DefaultReadyTimeout      = 10 * time.Minute
)

// ErrInstanceNotReady is returned by WaitForReady when the instance did not report ready before the timeout.
var ErrInstanceNotReady = errors.New("instance not ready")

// PlatformOptions tunes the readiness wait of the platform client.
type PlatformOptions struct {
	// ReadyPollInterval is the delay between two GetInstance calls in WaitForReady (default DefaultReadyPollInterval).
	ReadyPollInterval time.Duration
	// ReadyTimeout bounds WaitForReady (default DefaultReadyTimeout).
	ReadyTimeout time.Duration
}

func (o PlatformOptions) withDefaults() PlatformOptions {
	if o.ReadyPollInterval <= 0 {
		o.ReadyPollInterval = DefaultReadyPollInterval
	}
	if o.ReadyTimeout <= 0 {
		o.ReadyTimeout = DefaultReadyTimeout
	}
	return o
}

// DialPlatform creates a gRPC client for the platform manager described by cfg. The connection is lazy: no network
// traffic happens until the first call.
//
// Parameters: cfg — validated platform configuration (uri, headers, tls); opts — readiness polling; logger — client logs.
//
// Returns: (interfaces.PlatformManager, nil); error when the target cannot be parsed.
//
// Called from PlatformConnector.
func DialPlatform(cfg PlatformConfig, opts PlatformOptions, logger log.Logger) (interfaces.PlatformManager, error) {
	creds := insecure.NewCredentials()
	if cfg.PIM.TLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	dialOpts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if len(cfg.PIM.Headers) > 0 {
		dialOpts = append(dialOpts, grpc.WithChainUnaryInterceptor(helpers.HeadersUnaryInterceptor(cfg.PIM.Headers)))
	}
	conn, err := grpc.NewClient(cfg.PIM.URI, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("create platform client for %s: %w", cfg.PIM.URI, err)
	}
	level.Debug(logger).Log("msg", "platform client created", "target", cfg.PIM.URI, "tls", cfg.PIM.TLS)
	return NewPlatformGRPC(conn, opts, logger), nil
}

// NewPlatformGRPC wraps an existing connection to the product instance manager. The client owns conn and closes it in Close.
// Panics on nil conn or logger.
func NewPlatformGRPC(conn *grpc.ClientConn, opts PlatformOptions, logger log.Logger) interfaces.PlatformManager {
	return &platformGRPC{
		conn:   helpers.NilPanic(conn, "adapters.platform_grpc.go: conn is required"),
		opts:   opts.withDefaults(),
		logger: log.With(helpers.NilPanic(logger, "adapters.platform_grpc.go: logger is required"), "component", "platform_grpc"),
	}
}

// platformGRPC implements interfaces.PlatformManager over unary calls carrying structpb messages.
type platformGRPC struct {
	conn   *grpc.ClientConn
	opts   PlatformOptions
	logger log.Logger
}

func (p *platformGRPC) ListDefinitions(ctx context.Context, productName string) ([]domain.Definition, error) {
	req, err := structpb.NewStruct(map[string]any{"product_name": productName})
	if err != nil {
		return nil, err
	}
	resp := &structpb.Struct{}
	if err := p.conn.Invoke(ctx, methodListDefinitions, req, resp); err != nil {
		return nil, err
	}
	items := resp.GetFields()["definitions"].GetListValue().GetValues()
	definitions := make([]domain.Definition, 0, len(items))
	for _, item := range items {
		definitions = append(definitions, definitionFromStruct(item.GetStructValue()))
	}
	return definitions, nil
}

func (p *platformGRPC) ListInstances(ctx context.Context) ([]domain.Instance, error) {
	resp := &structpb.Struct{}
	if err := p.conn.Invoke(ctx, methodListInstances, &structpb.Struct{}, resp); err != nil {
		return nil, err
	}
	items := resp.GetFields()["instances"].GetListValue().GetValues()
	instances := make([]domain.Instance, 0, len(items))
	for _, item := range items {
		instances = append(instances, instanceFromStruct(item.GetStructValue()))
	}
	return instances, nil
}

// CreateInstance instantiates definitionName.
func (p *platformGRPC) CreateInstance(ctx context.Context, definitionName string) (domain.Instance, error) {
	req, err := structpb.NewStruct(map[string]any{
		"instance": map[string]any{"definition_name": definitionName},
	})
	if err != nil {
		return domain.Instance{}, err
	}
	resp := &structpb.Struct{}
	if err := p.conn.Invoke(ctx, methodCreateInstance, req, resp); err != nil {
		return domain.Instance{}, err
	}
	instance := instanceFromStruct(resp)
	level.Info(p.logger).Log("msg", "instance requested", "instance", instance.Name, "definition", definitionName)
	return instance, nil
}

// WaitForReady polls GetInstance until the instance reports ready. The first poll happens immediately.
func (p *platformGRPC) WaitForReady(ctx context.Context, name string) (domain.Instance, error) {
	var instance domain.Instance
	attempt := 0
	err := wait.PollUntilContextTimeout(ctx, p.opts.ReadyPollInterval, p.opts.ReadyTimeout, true,
		func(pollCtx context.Context) (bool, error) {
			attempt++
			current, err := p.getInstance(pollCtx, name)
			if err != nil {
				// A call cut short by the wait deadline is left to the poller to report.
				if pollCtx.Err() != nil || isDeadlineStatus(err) {
					return false, nil
				}
				return false, err
			}
			instance = current
			if !current.Ready {
				level.Debug(p.logger).Log("msg", "instance not ready yet", "instance", name, "attempt", attempt, "status", current.StatusMessage)
			}
			return current.Ready, nil
		})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return instance, fmt.Errorf("wait for instance %s: %w", name, ctxErr)
		}
		if wait.Interrupted(err) || isDeadlineStatus(err) {
			return instance, fmt.Errorf("%w: %s after %s (%s)", ErrInstanceNotReady, name, p.opts.ReadyTimeout, instance.StatusMessage)
		}
		return instance, fmt.Errorf("wait for instance %s: %w", name, err)
	}
	return instance, nil
}

// isDeadlineStatus reports whether err is a gRPC status for a call ended by its context.
func isDeadlineStatus(err error) bool {
	switch status.Code(err) {
	case codes.DeadlineExceeded, codes.Canceled:
		return true
	default:
		return false
	}
}

func (p *platformGRPC) getInstance(ctx context.Context, name string) (domain.Instance, error) {
	req, err := structpb.NewStruct(map[string]any{"name": name})
	if err != nil {
		return domain.Instance{}, err
	}
	resp := &structpb.Struct{}
	if err := p.conn.Invoke(ctx, methodGetInstance, req, resp); err != nil {
		return domain.Instance{}, err
	}
	return instanceFromStruct(resp), nil
}

func (p *platformGRPC) DeleteInstance(ctx context.Context, name string) error {
	req, err := structpb.NewStruct(map[string]any{"name": name})
	if err != nil {
		return err
	}
	return p.conn.Invoke(ctx, methodDeleteInstance, req, &emptypb.Empty{})
}

func (p *platformGRPC) Close() error {
	return p.conn.Close()
}

// instanceFromStruct converts the Instance message:
// {name, definition_name, ready, status_message, services: {<name>: {uri, headers: {k: v}}}}.
func instanceFromStruct(s *structpb.Struct) domain.Instance {
	fields := s.GetFields()
	instance := domain.Instance{
		Name:           fields["name"].GetStringValue(),
		DefinitionName: fields["definition_name"].GetStringValue(),
		Ready:          fields["ready"].GetBoolValue(),
		StatusMessage:  fields["status_message"].GetStringValue(),
	}
	services := fields["services"].GetStructValue().GetFields()
	if len(services) == 0 {
		return instance
	}
	instance.Services = make(map[string]domain.Service, len(services))
	for name, v := range services {
		svc := v.GetStructValue().GetFields()
		service := domain.Service{URI: svc["uri"].GetStringValue()}
		if headers := svc["headers"].GetStructValue().GetFields(); len(headers) > 0 {
			service.Headers = make(map[string]string, len(headers))
			for k, hv := range headers {
				service.Headers[k] = hv.GetStringValue()
			}
		}
		instance.Services[name] = service
	}
	return instance
}

// definitionFromStruct converts the Definition message: {name, product_name, product_version, available_service_names: [..]}.
func definitionFromStruct(s *structpb.Struct) domain.Definition {
	fields := s.GetFields()
	definition := domain.Definition{
		Name:           fields["name"].GetStringValue(),
		ProductName:    fields["product_name"].GetStringValue(),
		ProductVersion: fields["product_version"].GetStringValue(),
	}
	for _, v := range fields["available_service_names"].GetListValue().GetValues() {
		definition.AvailableServiceNames = append(definition.AvailableServiceNames, v.GetStringValue())
	}
	return definition
}
