package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"pimadapter/domain"
	"pimadapter/interfaces"
	"pimadapter/interfaces/mock"
	"pimadapter/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type runFixture struct {
	manager   *mock.PlatformManagerMock
	scriptEnv *mock.ScriptEnvMock
	sessions  *mock.SessionFactoryMock
	broker    *service.Broker
}

func newRunFixture(t *testing.T) *runFixture {
	t.Helper()
	work := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(work, service.DefaultPluginClientDir), 0o755))
	t.Chdir(work)

	instance := domain.Instance{
		Name:           "instances/aedt-1",
		DefinitionName: "definitions/aedt-pyaedt-231",
		Ready:          true,
		Services: map[string]domain.Service{
			"servicemanager": {URI: "dns:10.0.0.5:17878"},
			"rpyc":           {URI: "dns:10.0.0.5:17880"},
			"grpc":           {URI: "dns:10.0.0.5:17881"},
		},
	}
	f := &runFixture{
		manager: &mock.PlatformManagerMock{
			CreateInstanceFunc: func(ctx context.Context, definitionName string) (domain.Instance, error) {
				return domain.Instance{Name: instance.Name}, nil
			},
			WaitForReadyFunc: func(ctx context.Context, name string) (domain.Instance, error) {
				return instance, nil
			},
			ListInstancesFunc: func(ctx context.Context) ([]domain.Instance, error) {
				return []domain.Instance{instance}, nil
			},
		},
		scriptEnv: &mock.ScriptEnvMock{},
	}
	f.sessions = &mock.SessionFactoryMock{
		CreateSessionFunc: func(ctx context.Context, host string, clientPort int, settings domain.SessionSettings) (interfaces.SessionClient, error) {
			return &mock.SessionClientMock{}, nil
		},
	}
	logger := log.NewNopLogger()
	platform := service.NewPlatformHandle(func(ctx context.Context) (interfaces.PlatformManager, error) {
		return f.manager, nil
	}, logger)
	f.broker = service.NewBroker(platform, f.scriptEnv, f.sessions, service.NewPluginLocator(""), service.BrokerOptions{}, logger)
	return f
}

func TestRun_List(t *testing.T) {
	f := newRunFixture(t)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &Config{Action: ActionList}, f.broker, &out, log.NewNopLogger()))
	assert.Equal(t, "All AnsysEDT instances:\nDefinition: aedt-pyaedt-231, Name: aedt-1, address=dns:10.0.0.5:17881\n", out.String())
}

func TestRun_Create(t *testing.T) {
	t.Run("connects_session", func(t *testing.T) {
		f := newRunFixture(t)
		var out bytes.Buffer
		err := run(context.Background(), &Config{Action: ActionCreate, ConnectAfterCreate: true}, f.broker, &out, log.NewNopLogger())
		require.NoError(t, err)
		assert.Len(t, f.manager.CreateInstanceCalls(), 1)
		assert.Len(t, f.scriptEnv.InitializeCalls(), 1)
		assert.Len(t, f.sessions.CreateSessionCalls(), 1)
		assert.Contains(t, out.String(), "instances/aedt-1 \n grpc : IP address: 10.0.0.5, port 17881, state: not connected")
		assert.Contains(t, out.String(), "rpyc : IP address: 10.0.0.5, port 17880, state: connected")
	})

	t.Run("provision_only", func(t *testing.T) {
		f := newRunFixture(t)
		var out bytes.Buffer
		err := run(context.Background(), &Config{Action: ActionCreate}, f.broker, &out, log.NewNopLogger())
		require.NoError(t, err)
		assert.Empty(t, f.scriptEnv.InitializeCalls())
	})

	t.Run("creation_failure", func(t *testing.T) {
		f := newRunFixture(t)
		f.manager.CreateInstanceFunc = func(ctx context.Context, definitionName string) (domain.Instance, error) {
			return domain.Instance{}, status.Error(codes.ResourceExhausted, "quota")
		}
		err := run(context.Background(), &Config{Action: ActionCreate, ConnectAfterCreate: true}, f.broker, &bytes.Buffer{}, log.NewNopLogger())
		assert.True(t, service.IsInstanceCreationFailed(err))
	})
}

func TestRun_Reconnect(t *testing.T) {
	t.Run("named", func(t *testing.T) {
		f := newRunFixture(t)
		err := run(context.Background(), &Config{Action: ActionReconnect, InstanceName: "instances/aedt-1"}, f.broker, &bytes.Buffer{}, log.NewNopLogger())
		require.NoError(t, err)
		assert.Empty(t, f.manager.CreateInstanceCalls())
		assert.Len(t, f.sessions.CreateSessionCalls(), 1)
	})

	t.Run("unknown_name", func(t *testing.T) {
		f := newRunFixture(t)
		err := run(context.Background(), &Config{Action: ActionReconnect, InstanceName: "instances/other"}, f.broker, &bytes.Buffer{}, log.NewNopLogger())
		assert.True(t, service.IsInstanceNotFound(err))
	})
}

func TestRun_Delete(t *testing.T) {
	t.Run("deletes_selected_instance", func(t *testing.T) {
		f := newRunFixture(t)
		var out bytes.Buffer
		err := run(context.Background(), &Config{Action: ActionDelete}, f.broker, &out, log.NewNopLogger())
		require.NoError(t, err)
		require.Len(t, f.manager.DeleteInstanceCalls(), 1)
		assert.Equal(t, "instances/aedt-1", f.manager.DeleteInstanceCalls()[0].Name)
		assert.Equal(t, "deleted instances/aedt-1\n", out.String())
	})

	t.Run("deletes_instance_with_unexpected_service", func(t *testing.T) {
		f := newRunFixture(t)
		f.manager.ListInstancesFunc = func(ctx context.Context) ([]domain.Instance, error) {
			return []domain.Instance{{Name: "instances/aedt-2", Ready: true, Services: map[string]domain.Service{
				"http": {URI: "h:8080"},
			}}}, nil
		}
		err := run(context.Background(), &Config{Action: ActionDelete}, f.broker, &bytes.Buffer{}, log.NewNopLogger())
		require.NoError(t, err)
		assert.Len(t, f.manager.DeleteInstanceCalls(), 1)
	})

	t.Run("nothing_to_delete", func(t *testing.T) {
		f := newRunFixture(t)
		f.manager.ListInstancesFunc = func(ctx context.Context) ([]domain.Instance, error) { return nil, nil }
		err := run(context.Background(), &Config{Action: ActionDelete}, f.broker, &bytes.Buffer{}, log.NewNopLogger())
		assert.True(t, service.IsInstanceNotFound(err))
		assert.Empty(t, f.manager.DeleteInstanceCalls())
	})

	t.Run("platform_refuses", func(t *testing.T) {
		f := newRunFixture(t)
		f.manager.DeleteInstanceFunc = func(ctx context.Context, name string) error {
			return status.Error(codes.PermissionDenied, "not owner")
		}
		err := run(context.Background(), &Config{Action: ActionDelete}, f.broker, &bytes.Buffer{}, log.NewNopLogger())
		assert.True(t, service.IsDeleteFailed(err))
	})
}

func TestRun_UnknownAction(t *testing.T) {
	f := newRunFixture(t)
	err := run(context.Background(), &Config{Action: "restart"}, f.broker, &bytes.Buffer{}, log.NewNopLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}
