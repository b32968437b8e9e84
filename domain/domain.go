package domain

// DefaultProductName is the product requested from the platform manager when no product is configured.
const DefaultProductName = "aedt-pyaedt"

// DefaultInstanceFilter is the substring an instance name must contain to be listed when no filter is given.
const DefaultInstanceFilter = "aedt"

// Service is one network service exposed by a platform instance, as reported by the platform manager.
// URI is colon-delimited with host and port as the last two fields (e.g. "dns:10.0.0.4:17881" or "10.0.0.4:17881").
// Headers are extra metadata the platform asks clients to send to this service (may be empty).
type Service struct {
	URI     string
	Headers map[string]string
}

// Instance is a running remote tool process known to the platform manager.
// Name and DefinitionName are platform resource names (e.g. "instances/aedt-7f3c", "definitions/aedt-231").
// Services maps the service name (servicemanager, rpyc, grpc) to its descriptor.
type Instance struct {
	Name           string
	DefinitionName string
	Ready          bool
	StatusMessage  string
	Services       map[string]Service
}

// Definition is a product definition the platform manager can instantiate.
type Definition struct {
	Name                  string
	ProductName           string
	ProductVersion        string
	AvailableServiceNames []string
}
