package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"pimadapter/domain"
	"pimadapter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// AdapterState is the connection lifecycle stage of an InstanceAdapter.
type AdapterState string

const (
	StateEmpty                AdapterState = "empty"
	StateProvisioned          AdapterState = "provisioned"
	StateEnvironmentConnected AdapterState = "environment_connected"
	StateSessionConnected     AdapterState = "session_connected"
	StateDeleted              AdapterState = "deleted"
)

// InstanceAdapter owns one remote tool instance and the Connection Records of its three endpoints, and sequences
// environment initialization and session creation against them. Built empty by Broker.NewAdapter and provisioned
// by Broker.CreateInstance or Broker.Reconnect; Delete releases the instance and empties the adapter.
// Not safe for concurrent use.
type InstanceAdapter struct {
	platform  *PlatformHandle
	scriptEnv interfaces.ScriptEnv
	sessions  interfaces.SessionFactory
	plugins   *PluginLocator
	logger    log.Logger

	services       []*domain.ServiceConnection
	serviceManager *domain.ServiceConnection
	session        *domain.ServiceConnection
	grpc           *domain.ServiceConnection
	instance       *domain.Instance
	searchPath     []string
	settings       domain.SessionSettings
	deleted        bool
}

// Services returns every Connection Record built for the instance, ordered by service name.
func (a *InstanceAdapter) Services() []*domain.ServiceConnection { return a.services }

// ServiceManagerConnection returns the servicemanager record, or nil.
func (a *InstanceAdapter) ServiceManagerConnection() *domain.ServiceConnection {
	return a.serviceManager
}

// SessionConnection returns the rpyc (session) record, or nil.
func (a *InstanceAdapter) SessionConnection() *domain.ServiceConnection { return a.session }

// GRPCConnection returns the grpc (remote-call) record, or nil.
func (a *InstanceAdapter) GRPCConnection() *domain.ServiceConnection { return a.grpc }

// Instance returns the held instance descriptor, or nil.
func (a *InstanceAdapter) Instance() *domain.Instance { return a.instance }

// SearchPath returns the plugin directories registered by ConnectToAEDT.
func (a *InstanceAdapter) SearchPath() []string { return a.searchPath }

// SessionSettings returns the client settings applied by the last ConnectToPyAEDT.
func (a *InstanceAdapter) SessionSettings() domain.SessionSettings { return a.settings }

// SessionClient returns the session client attached to the session record, or nil.
func (a *InstanceAdapter) SessionClient() interfaces.SessionClient {
	if a.session == nil {
		return nil
	}
	client, _ := a.session.Client().(interfaces.SessionClient)
	return client
}

// Usable reports whether all three endpoint slots are populated.
func (a *InstanceAdapter) Usable() bool {
	return a.Validate() == nil
}

// Validate returns nil when all three endpoint slots are populated, otherwise a not_provisioned error naming the missing roles.
func (a *InstanceAdapter) Validate() error {
	slots := map[domain.EndpointRole]*domain.ServiceConnection{
		domain.EndpointServiceManager: a.serviceManager,
		domain.EndpointSession:        a.session,
		domain.EndpointRemoteCall:     a.grpc,
	}
	var missing []string
	for _, role := range domain.EndpointRoles {
		if slots[role] == nil {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		return NewNotProvisionedError("missing endpoints: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// State reports the lifecycle stage derived from the held instance and the connected flags.
func (a *InstanceAdapter) State() AdapterState {
	switch {
	case a.deleted:
		return StateDeleted
	case a.instance == nil:
		return StateEmpty
	case a.session != nil && a.serviceManager != nil && a.session.Connected() && a.serviceManager.Connected():
		return StateSessionConnected
	case a.grpc != nil && a.grpc.Connected():
		return StateEnvironmentConnected
	default:
		return StateProvisioned
	}
}

// CreatePIMInstance provisions a new instance of the first definition listed for productName on the already connected platform
// and waits until it is ready.
//
// Parameters: ctx — bounds the platform calls including the readiness wait; productName — product to instantiate (empty means domain.DefaultProductName).
//
// Returns: (instance, nil) once ready, also held by the adapter; platform_unreachable when the handle is not connected or the platform
// cannot be reached; instance_creation_failed when the platform refuses, offers no definition or the instance never becomes ready. When creation succeeded but the wait failed the instance is
// still held so Delete can release it.
//
// Called from Broker.CreateInstance.
func (a *InstanceAdapter) CreatePIMInstance(ctx context.Context, productName string) (domain.Instance, error) {
	if productName == "" {
		productName = domain.DefaultProductName
	}
	manager := a.platform.Manager()
	if manager == nil {
		return domain.Instance{}, NewPlatformUnreachableError("platform manager is not connected", nil)
	}
	definitions, err := manager.ListDefinitions(ctx, productName)
	if err != nil {
		level.Error(a.logger).Log("msg", "unable to list definitions", "product", productName, "err", err)
		return domain.Instance{}, platformCallError(err, NewInstanceCreationFailedError, "unable to list definitions for "+productName)
	}
	if len(definitions) == 0 {
		level.Error(a.logger).Log("msg", "unable to create an instance", "product", productName, "err", "no definition")
		return domain.Instance{}, NewInstanceCreationFailedError("no definition for "+productName, nil)
	}
	definition := definitions[0]
	level.Debug(a.logger).Log("msg", "definitions listed", "product", productName, "count", len(definitions), "definition", definition.Name)

	created, err := manager.CreateInstance(ctx, definition.Name)
	if err != nil {
		level.Error(a.logger).Log("msg", "unable to create an instance", "product", productName, "err", err)
		return domain.Instance{}, platformCallError(err, NewInstanceCreationFailedError, "unable to create an instance for "+productName)
	}
	a.instance = &created

	ready, err := manager.WaitForReady(ctx, created.Name)
	if err != nil {
		level.Error(a.logger).Log("msg", "instance did not become ready", "instance", created.Name, "err", err)
		return created, readinessError(err, "instance "+created.Name+" did not become ready")
	}
	a.instance = &ready
	level.Info(a.logger).Log("msg", "instance ready", "instance", ready.Name, "definition", ready.DefinitionName)
	return ready, nil
}

// attach holds instance and builds one Connection Record per service, then classifies them into the three slots.
// A malformed URI returns the *domain.ParseError unchanged; an unexpected service name returns unknown_endpoint.
// On error no record is kept but the instance stays held.
func (a *InstanceAdapter) attach(instance domain.Instance) error {
	a.instance = &instance
	names := make([]string, 0, len(instance.Services))
	for name := range instance.Services {
		names = append(names, name)
	}
	slices.Sort(names)

	services := make([]*domain.ServiceConnection, 0, len(names))
	for _, name := range names {
		conn, err := domain.NewServiceConnection(instance.Services, name)
		if err != nil {
			return err
		}
		services = append(services, conn)
	}

	var serviceManager, session, grpc *domain.ServiceConnection
	for _, conn := range services {
		role, err := domain.ParseEndpointRole(conn.Name())
		if err != nil {
			level.Error(a.logger).Log("msg", "unexpected service on instance", "instance", instance.Name, "err", err)
			return NewUnknownEndpointError("instance "+instance.Name+" reports an unexpected service", err)
		}
		switch role {
		case domain.EndpointServiceManager:
			serviceManager = conn
		case domain.EndpointSession:
			session = conn
		case domain.EndpointRemoteCall:
			grpc = conn
		}
	}
	a.services = services
	a.serviceManager = serviceManager
	a.session = session
	a.grpc = grpc
	return nil
}

// ConnectToAEDT initializes the remote scripting environment against the grpc endpoint after registering the desktop plugin directory.
//
// Parameter ctx — bounds the initializer call.
//
// Returns: (true, nil) when the grpc record is now connected; (false, not_provisioned) without a grpc record; (false, plugin_not_found)
// when the plugin directory cannot be located; (connected flag, remote_init_failed) when the initializer fails (flag stays false).
//
// Called from ConnectToPyAEDT and directly by scripts that only need the environment.
func (a *InstanceAdapter) ConnectToAEDT(ctx context.Context) (bool, error) {
	if a.grpc == nil {
		level.Error(a.logger).Log("msg", "no grpc endpoint to connect to")
		return false, NewNotProvisionedError("adapter has no grpc endpoint", nil)
	}
	pluginDir, ok := a.plugins.DesktopPluginDir()
	if !ok {
		level.Error(a.logger).Log("msg", "desktop plugin directory not found", "client_dir", a.plugins.clientDir)
		return false, NewPluginNotFoundError("desktop plugin directory "+a.plugins.clientDir+" not found", nil)
	}
	if !slices.Contains(a.searchPath, pluginDir) {
		a.searchPath = append(a.searchPath, pluginDir)
	}

	level.Info(a.logger).Log("msg", "connecting to remote tool using grpc", "conn", a.grpc)
	if err := a.scriptEnv.Initialize(ctx, pluginDir, a.grpc.Host(), a.grpc.Port()); err != nil {
		level.Error(a.logger).Log("msg", "failed to connect to remote tool", "conn", a.grpc, "err", err)
		return a.grpc.Connected(), NewRemoteInitFailedError("failed to initialize scripting environment on "+a.grpc.String(), err)
	}
	a.grpc.MarkConnected()
	level.Info(a.logger).Log("msg", "connected to remote tool using grpc", "conn", a.grpc)
	return true, nil
}

// ConnectToPyAEDT initializes the environment (ConnectToAEDT) and then opens a scripting session through the service manager
// and starts the remote tool inside it.
//
// Parameter ctx — bounds every remote call.
//
// Returns: the session record in every case except a missing grpc record. (session, nil) when the session is connected;
// (nil, not_provisioned) without a grpc record or with missing endpoints; (session, already_connected) when the grpc endpoint was
// already connected — nothing is re-initialized; (session, err) from ConnectToAEDT; (session, remote_init_failed) when the session
// or the remote tool could not be started. The session client (possibly nil) is attached to the session record in all of the last cases.
//
// Called by scripts after Broker.CreateInstance or Broker.Reconnect.
func (a *InstanceAdapter) ConnectToPyAEDT(ctx context.Context) (*domain.ServiceConnection, error) {
	if a.grpc == nil {
		level.Error(a.logger).Log("msg", "invalid disconnected instance")
		return nil, NewNotProvisionedError("adapter has no grpc endpoint", nil)
	}
	if a.grpc.Connected() {
		level.Info(a.logger).Log("msg", "already connected to session", "conn", a.session)
		return a.session, NewAlreadyConnectedError("grpc endpoint already connected")
	}
	if err := a.Validate(); err != nil {
		level.Error(a.logger).Log("msg", "instance does not expose every endpoint", "err", err)
		return nil, err
	}

	if _, err := a.ConnectToAEDT(ctx); err != nil {
		a.session.AttachClient(nil)
		return a.session, err
	}

	a.settings = domain.SessionSettings{ServiceManagerPort: a.serviceManager.Port(), UseGRPCAPI: true}
	client, err := a.sessions.CreateSession(ctx, a.serviceManager.Host(), a.session.Port(), a.settings)
	a.serviceManager.MarkConnected()
	var sessionErr error
	if err != nil {
		level.Error(a.logger).Log("msg", "failed to create session", "conn", a.session, "err", err)
		sessionErr = NewRemoteInitFailedError("failed to create session on "+a.session.String(), err)
		client = nil
	}
	if client != nil {
		opts := domain.DesktopOptions{Port: a.grpc.Port(), NonGraphical: true}
		if err := client.StartDesktop(ctx, opts); err != nil {
			level.Error(a.logger).Log("msg", "failed to start remote tool in session", "conn", a.session, "err", err)
			sessionErr = NewRemoteInitFailedError("failed to start remote tool in session", err)
		} else {
			a.session.MarkConnected()
		}
	}
	a.session.AttachClient(client)
	if sessionErr != nil {
		return a.session, sessionErr
	}
	level.Info(a.logger).Log("msg", "connected to session", "conn", a.session)
	return a.session, nil
}

// Delete releases the held instance through the platform manager and clears all adapter state.
//
// Parameter ctx — bounds the platform call.
//
// Returns: (false, nil) when no instance is held (state unchanged); (true, nil) once released; (false, platform_unreachable|delete_failed)
// when the platform is not connected or fails — state is kept so Delete can be retried.
//
// Called by scripts when done with the instance.
func (a *InstanceAdapter) Delete(ctx context.Context) (bool, error) {
	if a.instance == nil {
		return false, nil
	}
	manager := a.platform.Manager()
	if manager == nil {
		return false, NewPlatformUnreachableError("platform manager is not connected", nil)
	}
	level.Info(a.logger).Log("msg", "about to delete the instance", "instance", a.instance.Name)
	if err := manager.DeleteInstance(ctx, a.instance.Name); err != nil {
		level.Error(a.logger).Log("msg", "failed to delete the instance", "instance", a.instance.Name, "err", err)
		return false, platformCallError(err, NewDeleteFailedError, "failed to delete instance "+a.instance.Name)
	}
	if err := a.scriptEnv.Release(); err != nil {
		level.Warn(a.logger).Log("msg", "failed to release scripting environment", "err", err)
	}
	if client := a.SessionClient(); client != nil {
		if err := client.Close(); err != nil {
			level.Warn(a.logger).Log("msg", "failed to close session client", "err", err)
		}
	}
	level.Info(a.logger).Log("msg", "deleted the instance", "instance", a.instance.Name)

	a.services = nil
	a.serviceManager = nil
	a.session = nil
	a.grpc = nil
	a.instance = nil
	a.settings = domain.SessionSettings{}
	a.deleted = true
	return true, nil
}

// String describes the held instance and its grpc endpoint.
func (a *InstanceAdapter) String() string {
	if a.grpc == nil || a.instance == nil {
		return "instance adapter: not yet connected to an instance"
	}
	return fmt.Sprintf("%s \n %s", a.instance.Name, a.grpc)
}
