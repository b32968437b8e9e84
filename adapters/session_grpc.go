package adapters

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"pimadapter/domain"
	"pimadapter/helpers"
	"pimadapter/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceManagerServiceName is the gRPC service started sessions are requested from.
	ServiceManagerServiceName = "pyaedt.servicemanager.v1.ServiceManager"
	// SessionServiceName is the gRPC service exposed on the session port once a session is started.
	SessionServiceName = "pyaedt.session.v1.Session"
)

const (
	methodStartSession = "/" + ServiceManagerServiceName + "/StartSession"
	methodStartDesktop = "/" + SessionServiceName + "/StartDesktop"
	methodEndSession   = "/" + SessionServiceName + "/EndSession"
)

const endSessionTimeout = 5 * time.Second

// SessionFactoryGRPC returns an interfaces.SessionFactory that asks the service manager to start a session and binds a
// client to the session port. Every call of a session carries its id in the "session-id" metadata header. Panics on nil logger.
//
// Called from cmd/main when building the broker.
func SessionFactoryGRPC(logger log.Logger) interfaces.SessionFactory {
	return &sessionFactoryGRPC{
		logger: log.With(helpers.NilPanic(logger, "adapters.session_grpc.go: logger is required"), "component", "session"),
	}
}

type sessionFactoryGRPC struct {
	logger log.Logger
}

// CreateSession calls StartSession on host:settings.ServiceManagerPort with {port, use_grpc_api}, then dials host:clientPort.
func (f *sessionFactoryGRPC) CreateSession(ctx context.Context, host string, clientPort int, settings domain.SessionSettings) (interfaces.SessionClient, error) {
	sessionID := uuid.NewString()

	managerTarget := net.JoinHostPort(host, strconv.Itoa(settings.ServiceManagerPort))
	manager, err := grpc.NewClient(managerTarget, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("create service manager client for %s: %w", managerTarget, err)
	}
	defer manager.Close()

	req, err := structpb.NewStruct(map[string]any{
		"port":         clientPort,
		"use_grpc_api": settings.UseGRPCAPI,
	})
	if err != nil {
		return nil, err
	}
	callCtx := helpers.AppendHeaders(ctx, map[string]string{helpers.HeaderSessionID: sessionID})
	if err := manager.Invoke(callCtx, methodStartSession, req, &emptypb.Empty{}); err != nil {
		return nil, fmt.Errorf("start session on %s: %w", managerTarget, err)
	}

	sessionTarget := net.JoinHostPort(host, strconv.Itoa(clientPort))
	conn, err := grpc.NewClient(sessionTarget, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("create session client for %s: %w", sessionTarget, err)
	}
	level.Info(f.logger).Log("msg", "session started", "session_id", sessionID, "target", sessionTarget)
	return &sessionClientGRPC{
		id:     sessionID,
		conn:   conn,
		logger: log.With(f.logger, "session_id", sessionID),
	}, nil
}

// sessionClientGRPC implements interfaces.SessionClient over one session connection.
type sessionClientGRPC struct {
	id     string
	conn   *grpc.ClientConn
	logger log.Logger

	closeOnce sync.Once
	closeErr  error
}

// ID returns the session id sent in the "session-id" header.
func (c *sessionClientGRPC) ID() string { return c.id }

func (c *sessionClientGRPC) StartDesktop(ctx context.Context, opts domain.DesktopOptions) error {
	req, err := structpb.NewStruct(map[string]any{
		"port":          opts.Port,
		"non_graphical": opts.NonGraphical,
	})
	if err != nil {
		return err
	}
	if err := c.conn.Invoke(c.withID(ctx), methodStartDesktop, req, &emptypb.Empty{}); err != nil {
		return fmt.Errorf("start desktop on port %d: %w", opts.Port, err)
	}
	return nil
}

// Close ends the session on the remote side (best effort) and closes the connection.
func (c *sessionClientGRPC) Close() error {
	c.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), endSessionTimeout)
		defer cancel()
		if err := c.conn.Invoke(c.withID(ctx), methodEndSession, &emptypb.Empty{}, &emptypb.Empty{}); err != nil {
			level.Warn(c.logger).Log("msg", "end session failed", "err", err)
		}
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *sessionClientGRPC) withID(ctx context.Context) context.Context {
	return helpers.AppendHeaders(ctx, map[string]string{helpers.HeaderSessionID: c.id})
}
