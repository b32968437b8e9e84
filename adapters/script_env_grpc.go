package adapters

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"pimadapter/helpers"
	"pimadapter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ScriptEnvGRPC returns an interfaces.ScriptEnv that attaches to the remote tool's gRPC endpoint: Initialize dials
// host:port and requires the standard health service to report SERVING; the connection is held as the desktop handle
// until Release. Panics on nil logger.
//
// Called from cmd/main when building the broker.
func ScriptEnvGRPC(logger log.Logger) interfaces.ScriptEnv {
	return &scriptEnvGRPC{
		logger: log.With(helpers.NilPanic(logger, "adapters.script_env_grpc.go: logger is required"), "component", "script_env"),
	}
}

type scriptEnvGRPC struct {
	logger log.Logger

	mu      sync.Mutex
	desktop *grpc.ClientConn
}

func (s *scriptEnvGRPC) Initialize(ctx context.Context, pluginDir string, host string, port int) error {
	target := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("create client for %s: %w", target, err)
	}
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("health check %s: %w", target, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		_ = conn.Close()
		return fmt.Errorf("remote tool at %s is %s", target, resp.GetStatus())
	}

	s.mu.Lock()
	previous := s.desktop
	s.desktop = conn
	s.mu.Unlock()
	if previous != nil {
		_ = previous.Close()
	}
	level.Debug(s.logger).Log("msg", "scripting environment initialized", "target", target, "plugin_dir", pluginDir)
	return nil
}

func (s *scriptEnvGRPC) Release() error {
	s.mu.Lock()
	desktop := s.desktop
	s.desktop = nil
	s.mu.Unlock()
	if desktop == nil {
		return nil
	}
	return desktop.Close()
}
