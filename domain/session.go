package domain

// SessionSettings is the client configuration applied before a remote session is created.
// ServiceManagerPort is the port of the service manager that spawns sessions; UseGRPCAPI
// switches the session's desktop transport to the remote-call (grpc) endpoint.
type SessionSettings struct {
	ServiceManagerPort int
	UseGRPCAPI         bool
}

// DesktopOptions describes how a session starts the remote tool: bound to the remote-call port, with or without GUI.
type DesktopOptions struct {
	Port         int
	NonGraphical bool
}
