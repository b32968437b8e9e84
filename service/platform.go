package service

import (
	"context"
	"errors"
	"sync"

	"pimadapter/helpers"
	"pimadapter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ConnectFunc opens a client to the platform manager (e.g. adapters.PlatformConnector).
type ConnectFunc func(ctx context.Context) (interfaces.PlatformManager, error)

// errNilPlatformManager is wrapped when a ConnectFunc returns neither a client nor an error.
var errNilPlatformManager = errors.New("connect returned no platform manager")

// PlatformHandle is the shared, lazily initialized platform-manager client. The first successful Connect wins and every
// later call returns the same client until Reset. One handle is shared by a Broker and every InstanceAdapter it builds.
type PlatformHandle struct {
	connect ConnectFunc
	logger  log.Logger

	mu      sync.Mutex
	manager interfaces.PlatformManager
}

// NewPlatformHandle creates an empty handle that will call connect on first use. Panics on nil connect or logger.
//
// Parameters: connect — opens the platform client (adapters.PlatformConnector in cmd/main, a mock in tests); logger — connect failures are logged.
//
// Returns: *PlatformHandle with no client yet.
//
// Called from cmd/main when building the broker.
func NewPlatformHandle(connect ConnectFunc, logger log.Logger) *PlatformHandle {
	return &PlatformHandle{
		connect: helpers.NilPanic(connect, "service.platform.go: connect is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.platform.go: logger is required"), "component", "platform_handle"),
	}
}

// Connect returns the cached platform client, connecting on first call. A failed attempt leaves the handle empty so a later call retries.
//
// Parameter ctx — passed to the ConnectFunc.
//
// Returns: (client, nil) on success or when already connected (same client every time); (nil, platform_unreachable) when connect fails.
//
// Called from Broker.Connect, Broker.ListInstances and the CreateInstance/Reconnect factories.
func (h *PlatformHandle) Connect(ctx context.Context) (interfaces.PlatformManager, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.manager != nil {
		return h.manager, nil
	}
	manager, err := h.connect(ctx)
	if err == nil && manager == nil {
		err = errNilPlatformManager
	}
	if err != nil {
		level.Error(h.logger).Log("msg", "unable to connect to the platform manager", "err", err)
		return nil, NewPlatformUnreachableError("unable to connect to the platform manager", err)
	}
	h.manager = manager
	level.Info(h.logger).Log("msg", "connected to the platform manager")
	return manager, nil
}

// Manager returns the cached client without connecting; nil when Connect has not succeeded yet.
func (h *PlatformHandle) Manager() interfaces.PlatformManager {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.manager
}

// Reset closes and forgets the cached client; the next Connect opens a new one. No-op on an empty handle.
func (h *PlatformHandle) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.manager == nil {
		return nil
	}
	err := h.manager.Close()
	h.manager = nil
	return err
}
