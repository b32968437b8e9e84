// Package main is the pimadapter driver. It loads configuration (env + YAML), builds the shared platform handle
// (adapters.PlatformConnector), the scripting environment and session adapters and the broker (service.NewBroker), then
// performs one action: list instances, create an instance and connect a session, reconnect to a running instance,
// or delete an instance. Diagnostics go to stdout in logfmt; SIGINT/SIGTERM cancel the running action.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pimadapter/adapters"
	"pimadapter/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// main is the pimadapter entry point: loads config (LoadConfig), builds the platform handle, broker and adapters, runs the
// configured action (run) and closes the platform client.
//
// Parameters and return: none (exits via os.Exit(1) on config error or action failure).
//
// Called when the binary is started.
func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stdout))
	cfg, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	platformOpts := adapters.PlatformOptions{ReadyPollInterval: cfg.ReadyPollInterval, ReadyTimeout: cfg.ReadyTimeout}
	platform := service.NewPlatformHandle(adapters.PlatformConnector(cfg.PlatformConfigOverride, platformOpts, logger), logger)
	broker := service.NewBroker(
		platform,
		adapters.ScriptEnvGRPC(logger),
		adapters.SessionFactoryGRPC(logger),
		service.NewPluginLocator(cfg.PluginClientDir),
		service.BrokerOptions{ProductName: cfg.ProductName, InstanceFilter: cfg.InstanceFilter},
		logger,
	)

	level.Info(logger).Log("msg", "starting pimadapter", "action", cfg.Action)
	runErr := run(ctx, cfg, broker, os.Stdout, logger)
	stop()
	if err := platform.Reset(); err != nil {
		level.Warn(logger).Log("msg", "close platform client", "err", err)
	}
	if runErr != nil {
		level.Error(logger).Log("msg", "action failed", "action", cfg.Action, "code", service.ToAdapterErrorCode(runErr), "err", runErr)
		os.Exit(1)
	}
}
