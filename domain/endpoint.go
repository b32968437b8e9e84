package domain

import (
	"strconv"
	"strings"
)

// EndpointRole identifies one of the fixed network services an instance must expose.
type EndpointRole string

const (
	// EndpointServiceManager is the service manager that spawns remote scripting sessions (port 17878 by convention).
	EndpointServiceManager EndpointRole = "servicemanager"
	// EndpointSession is the remote-object session endpoint (port 17880 by convention).
	EndpointSession EndpointRole = "rpyc"
	// EndpointRemoteCall is the remote-procedure endpoint of the tool process itself (port 17881 by convention).
	EndpointRemoteCall EndpointRole = "grpc"
)

// EndpointRoles lists every role an adapter needs, in the order they are reported.
var EndpointRoles = []EndpointRole{EndpointServiceManager, EndpointSession, EndpointRemoteCall}

// ParseEndpointRole maps a service name from the platform manager to an EndpointRole.
//
// Parameter name — service name as reported in the instance service map; surrounding spaces are ignored, case is significant.
//
// Returns: (role, nil) for servicemanager|rpyc|grpc; ("", *UnknownEndpointError) for anything else.
//
// Called from service.InstanceAdapter when classifying Connection Records into the named slots.
func ParseEndpointRole(name string) (EndpointRole, error) {
	role := EndpointRole(strings.TrimSpace(name))
	switch role {
	case EndpointServiceManager, EndpointSession, EndpointRemoteCall:
		return role, nil
	default:
		return "", &UnknownEndpointError{Name: name}
	}
}

// UnknownEndpointError is returned by ParseEndpointRole for a service name outside the fixed role set.
type UnknownEndpointError struct {
	Name string
}

// Error implements error; returns `unknown endpoint "<name>": want servicemanager|rpyc|grpc`.
func (e *UnknownEndpointError) Error() string {
	return "unknown endpoint " + strconv.Quote(e.Name) + ": want servicemanager|rpyc|grpc"
}
