package interfaces

import (
	"context"

	"pimadapter/domain"
)

// PlatformManager is the client of the platform instance-management service: it lists product definitions,
// discovers and provisions remote tool instances and releases them.
//
// Implemented by adapters.platformGRPC. Held by service.PlatformHandle (lazily connected, shared by every
// adapter built from the same broker) and used by service.Broker and service.InstanceAdapter.
//
//go:generate moq -stub -out mock/platform_manager.go -pkg mock . PlatformManager
type PlatformManager interface {
	// ListDefinitions returns the product definitions the platform can instantiate.
	// Parameters: ctx — request context; productName — filter on the definition's product name (empty lists all).
	// Returns: (definitions, nil) on success, possibly empty; (nil, err) on transport or platform error.
	// Called from service.InstanceAdapter.CreatePIMInstance before requesting a new instance.
	ListDefinitions(ctx context.Context, productName string) ([]domain.Definition, error)

	// ListInstances returns every instance the platform currently knows, ready or not.
	// Parameters: ctx — request context.
	// Returns: (instances, nil) on success; (nil, err) on transport or platform error.
	// Called from service.Broker.ListInstances on every iteration of the returned sequence.
	ListInstances(ctx context.Context) ([]domain.Instance, error)

	// CreateInstance requests a new instance of the named definition. It does not wait for readiness.
	// Parameters: ctx — request context; definitionName — resource name of a definition returned by ListDefinitions.
	// Returns: (instance, nil) with Ready possibly false; (domain.Instance{}, err) when the platform rejects the request.
	// Called from service.InstanceAdapter.CreatePIMInstance.
	CreateInstance(ctx context.Context, definitionName string) (domain.Instance, error)

	// WaitForReady blocks until the named instance reports ready and returns its refreshed descriptor (with services).
	// Parameters: ctx — cancels the wait; name — instance resource name.
	// Returns: (instance, nil) once ready; (domain.Instance{}, err) on timeout, cancellation or platform error.
	// Called from service.InstanceAdapter.CreatePIMInstance right after CreateInstance.
	WaitForReady(ctx context.Context, name string) (domain.Instance, error)

	// DeleteInstance releases the named instance on the platform.
	// Parameters: ctx — request context; name — instance resource name.
	// Returns: nil on success; err on transport or platform error.
	// Called from service.InstanceAdapter.Delete.
	DeleteInstance(ctx context.Context, name string) error

	// Close releases the client's transport. Idempotent.
	// Called from service.PlatformHandle.Reset.
	Close() error
}
