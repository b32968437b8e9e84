package main

import (
	"context"
	"fmt"
	"io"

	"pimadapter/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// run performs cfg.Action against broker and writes the human-readable result to out.
//
// Parameters: ctx — cancelled on SIGINT/SIGTERM; cfg — loaded configuration; broker — built by main; out — stdout in main;
// logger — base logger.
//
// Returns: nil on success; the first error of the action otherwise (already logged by the layer that produced it).
//
// Called only from main.
func run(ctx context.Context, cfg *Config, broker *service.Broker, out io.Writer, logger log.Logger) error {
	switch cfg.Action {
	case ActionList:
		return broker.PrintInstances(ctx, out)
	case ActionCreate:
		adapter, err := broker.CreateInstance(ctx)
		if err != nil {
			if inst := adapter.Instance(); inst != nil {
				level.Warn(logger).Log("msg", "instance left running after failure", "instance", inst.Name)
			}
			return err
		}
		fmt.Fprintln(out, adapter)
		if !cfg.ConnectAfterCreate {
			return nil
		}
		return connectSession(ctx, adapter, out)
	case ActionReconnect:
		adapter, err := broker.Reconnect(ctx, cfg.InstanceName)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, adapter)
		return connectSession(ctx, adapter, out)
	case ActionDelete:
		adapter, err := broker.Reconnect(ctx, cfg.InstanceName)
		if adapter.Instance() == nil {
			return err
		}
		if err != nil {
			level.Warn(logger).Log("msg", "deleting instance with unusable endpoints", "instance", adapter.Instance().Name, "err", err)
		}
		name := adapter.Instance().Name
		deleted, err := adapter.Delete(ctx)
		if err != nil {
			return err
		}
		if deleted {
			fmt.Fprintf(out, "deleted %s\n", name)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", cfg.Action)
	}
}

// connectSession opens the scripting session on a provisioned adapter; an already connected adapter is not an error.
func connectSession(ctx context.Context, adapter *service.InstanceAdapter, out io.Writer) error {
	session, err := adapter.ConnectToPyAEDT(ctx)
	if err != nil && !service.IsAlreadyConnected(err) {
		return err
	}
	if session != nil {
		fmt.Fprintln(out, session)
	}
	return nil
}
