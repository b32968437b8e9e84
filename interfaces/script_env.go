package interfaces

import "context"

// ScriptEnv initializes the remote scripting environment directly against the tool's remote-call endpoint
// and holds the resulting desktop handle until Release.
//
// Implemented by adapters.scriptEnvGRPC. Called from service.InstanceAdapter.ConnectToAEDT and Delete.
//
//go:generate moq -stub -out mock/script_env.go -pkg mock . ScriptEnv
type ScriptEnv interface {
	// Initialize connects the scripting environment to host:port, with pluginDir holding the desktop plugin support files.
	// Returns: nil once the remote tool answered; err when the endpoint is unreachable or refuses the environment.
	Initialize(ctx context.Context, pluginDir string, host string, port int) error

	// Release drops the desktop handle obtained by Initialize. Safe to call when nothing was initialized.
	Release() error
}
