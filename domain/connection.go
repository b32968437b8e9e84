package domain

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ServiceConnection is the Connection Record for one named endpoint of an instance: the host and port parsed
// from the platform's service descriptor, a connected flag and, for the session endpoint only, the session client.
// Host and port are fixed at construction; only MarkConnected and AttachClient mutate the record.
type ServiceConnection struct {
	name      string
	host      string
	port      int
	connected bool
	client    io.Closer
}

// NewServiceConnection builds the record for service name from the instance service map by parsing its URI.
//
// Parameters: services — service name → descriptor as reported by the platform manager; name — key to read.
//
// Returns: (*ServiceConnection, nil) with connected=false and no client; (nil, *ParseError) when name is absent,
// the URI has fewer than two colon-separated fields, the host is empty or the port is not an integer.
//
// Called from service.InstanceAdapter when an instance's service list is enumerated.
func NewServiceConnection(services map[string]Service, name string) (*ServiceConnection, error) {
	svc, ok := services[name]
	if !ok {
		return nil, &ParseError{Name: name, Reason: "service not present in descriptor map"}
	}
	host, port, err := ParseServiceURI(svc.URI)
	if err != nil {
		return nil, &ParseError{Name: name, URI: svc.URI, Reason: err.Error()}
	}
	return &ServiceConnection{name: name, host: host, port: port}, nil
}

// ParseServiceURI splits a colon-delimited URI and returns the last two fields as host and port.
// "machineA:17881" and "dns:machineA:17881" both yield ("machineA", 17881).
func ParseServiceURI(uri string) (string, int, error) {
	fields := strings.Split(uri, ":")
	if len(fields) < 2 {
		return "", 0, fmt.Errorf("want host:port, got %q", uri)
	}
	host := fields[len(fields)-2]
	if host == "" {
		return "", 0, fmt.Errorf("empty host in %q", uri)
	}
	port, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return "", 0, fmt.Errorf("port must be an integer: %w", err)
	}
	return host, port, nil
}

// Name returns the endpoint name the record was built for.
func (c *ServiceConnection) Name() string { return c.name }

// Host returns the host parsed from the service URI.
func (c *ServiceConnection) Host() string { return c.host }

// Port returns the port parsed from the service URI.
func (c *ServiceConnection) Port() int { return c.port }

// Connected reports whether the owning adapter has established this endpoint.
func (c *ServiceConnection) Connected() bool { return c.connected }

// Client returns the session client attached to the record, or nil.
func (c *ServiceConnection) Client() io.Closer { return c.client }

// MarkConnected sets the connected flag. There is no way back to not connected; a deleted adapter drops its records.
func (c *ServiceConnection) MarkConnected() { c.connected = true }

// AttachClient stores the session client handle (nil is allowed and clears it).
func (c *ServiceConnection) AttachClient(client io.Closer) { c.client = client }

// String returns "<name> : IP address: <host>, port <port>, state: <connected|not connected>".
func (c *ServiceConnection) String() string {
	state := "not connected"
	if c.connected {
		state = "connected"
	}
	return fmt.Sprintf("%s : IP address: %s, port %d, state: %s", c.name, c.host, c.port, state)
}

// ParseError is returned by NewServiceConnection when a service descriptor cannot be turned into host and port.
// It signals a contract violation by the platform manager and is never absorbed by the adapter.
type ParseError struct {
	Name   string
	URI    string
	Reason string
}

// Error implements error; returns e.g. `service "grpc" uri "h:abc": port must be an integer: ...`.
func (e *ParseError) Error() string {
	if e.URI == "" {
		return fmt.Sprintf("service %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("service %q uri %q: %s", e.Name, e.URI, e.Reason)
}
