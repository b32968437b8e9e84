package interfaces

import (
	"context"

	"pimadapter/domain"
)

// SessionFactory creates remote scripting sessions through an instance's service manager.
//
// Implemented by adapters.sessionFactoryGRPC. Called from service.InstanceAdapter.ConnectToPyAEDT.
//
//go:generate moq -stub -out mock/session_factory.go -pkg mock . SessionFactory
type SessionFactory interface {
	// CreateSession asks the service manager at host (settings.ServiceManagerPort) for a session and binds a client
	// to host:clientPort.
	// Returns: (client, nil) on success; (nil, err) when the service manager or the session endpoint is unreachable.
	CreateSession(ctx context.Context, host string, clientPort int, settings domain.SessionSettings) (SessionClient, error)
}

// SessionClient is a live remote scripting session. It is attached to the session Connection Record.
//
//go:generate moq -stub -out mock/session_client.go -pkg mock . SessionClient
type SessionClient interface {
	// StartDesktop launches the remote tool inside the session, bound to the remote-call port.
	// Returns: nil when the tool started; err otherwise.
	StartDesktop(ctx context.Context, opts domain.DesktopOptions) error

	// Close ends the session. Idempotent.
	Close() error
}
