package adapters

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"pimadapter/domain"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func instanceStruct(name string, ready bool) map[string]any {
	return map[string]any{
		"name":            name,
		"definition_name": "definitions/aedt-pyaedt-231",
		"ready":           ready,
		"status_message":  "",
		"services": map[string]any{
			"grpc":           map[string]any{"uri": "dns:10.0.0.5:17881", "headers": map[string]any{"x-token": "t"}},
			"rpyc":           map[string]any{"uri": "dns:10.0.0.5:17880"},
			"servicemanager": map[string]any{"uri": "dns:10.0.0.5:17878"},
		},
	}
}

func newPlatformClient(t *testing.T, addr string, opts PlatformOptions) *platformGRPC {
	t.Helper()
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	client := NewPlatformGRPC(conn, opts, log.NewNopLogger()).(*platformGRPC)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewPlatformGRPC_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "adapters.platform_grpc.go: conn is required", func() {
		NewPlatformGRPC(nil, PlatformOptions{}, log.NewNopLogger())
	})
	conn, err := grpc.NewClient("127.0.0.1:1", grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	assert.PanicsWithValue(t, "adapters.platform_grpc.go: logger is required", func() {
		NewPlatformGRPC(conn, PlatformOptions{}, nil)
	})
}

func TestPlatformOptions_Defaults(t *testing.T) {
	got := PlatformOptions{}.withDefaults()
	assert.Equal(t, DefaultReadyPollInterval, got.ReadyPollInterval)
	assert.Equal(t, DefaultReadyTimeout, got.ReadyTimeout)

	custom := PlatformOptions{ReadyPollInterval: time.Second, ReadyTimeout: time.Minute}.withDefaults()
	assert.Equal(t, time.Second, custom.ReadyPollInterval)
	assert.Equal(t, time.Minute, custom.ReadyTimeout)
}

func TestPlatformGRPC_ListDefinitions(t *testing.T) {
	addr, fake := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
		"ListDefinitions": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
			return structpb.NewStruct(map[string]any{"definitions": []any{
				map[string]any{
					"name":                    "definitions/aedt-pyaedt-231",
					"product_name":            "aedt-pyaedt",
					"product_version":         "231",
					"available_service_names": []any{"grpc", "rpyc", "servicemanager"},
				},
			}})
		},
	})
	client := newPlatformClient(t, addr, PlatformOptions{})

	got, err := client.ListDefinitions(context.Background(), "aedt-pyaedt")
	require.NoError(t, err)
	assert.Equal(t, []domain.Definition{{
		Name:                  "definitions/aedt-pyaedt-231",
		ProductName:           "aedt-pyaedt",
		ProductVersion:        "231",
		AvailableServiceNames: []string{"grpc", "rpyc", "servicemanager"},
	}}, got)

	calls := fake.Calls("ListDefinitions")
	require.Len(t, calls, 1)
	assert.Equal(t, "aedt-pyaedt", calls[0].Req.GetFields()["product_name"].GetStringValue())
}

func TestPlatformGRPC_ListInstances(t *testing.T) {
	addr, _ := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
		"ListInstances": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
			return structpb.NewStruct(map[string]any{"instances": []any{
				instanceStruct("instances/aedt-1", true),
				map[string]any{"name": "instances/aedt-2"},
			}})
		},
	})
	client := newPlatformClient(t, addr, PlatformOptions{})

	got, err := client.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Instance{
		Name:           "instances/aedt-1",
		DefinitionName: "definitions/aedt-pyaedt-231",
		Ready:          true,
		Services: map[string]domain.Service{
			"grpc":           {URI: "dns:10.0.0.5:17881", Headers: map[string]string{"x-token": "t"}},
			"rpyc":           {URI: "dns:10.0.0.5:17880"},
			"servicemanager": {URI: "dns:10.0.0.5:17878"},
		},
	}, got[0])
	assert.Equal(t, domain.Instance{Name: "instances/aedt-2"}, got[1])
}

func TestPlatformGRPC_ListInstances_Unavailable(t *testing.T) {
	client := newPlatformClient(t, closedAddr(t), PlatformOptions{})
	_, err := client.ListInstances(context.Background())
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestPlatformGRPC_CreateInstance(t *testing.T) {
	t.Run("sends_definition", func(t *testing.T) {
		addr, fake := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
			"CreateInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
				return structpb.NewStruct(instanceStruct("instances/aedt-new", false))
			},
		})
		client := newPlatformClient(t, addr, PlatformOptions{})

		got, err := client.CreateInstance(context.Background(), "definitions/aedt-pyaedt-231")
		require.NoError(t, err)
		assert.Equal(t, "instances/aedt-new", got.Name)
		assert.False(t, got.Ready)

		calls := fake.Calls("CreateInstance")
		require.Len(t, calls, 1)
		instance := calls[0].Req.GetFields()["instance"].GetStructValue()
		assert.Equal(t, "definitions/aedt-pyaedt-231", instance.GetFields()["definition_name"].GetStringValue())
		assert.Empty(t, fake.Calls("ListDefinitions"))
	})

	t.Run("refused", func(t *testing.T) {
		addr, _ := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
			"CreateInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
				return nil, status.Error(codes.ResourceExhausted, "quota exceeded")
			},
		})
		client := newPlatformClient(t, addr, PlatformOptions{})
		_, err := client.CreateInstance(context.Background(), "definitions/d")
		assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	})
}

func TestPlatformGRPC_WaitForReady(t *testing.T) {
	fast := PlatformOptions{ReadyPollInterval: 10 * time.Millisecond, ReadyTimeout: 2 * time.Second}

	t.Run("polls_until_ready", func(t *testing.T) {
		var polls atomic.Int32
		addr, fake := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
			"GetInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
				n := polls.Add(1)
				return structpb.NewStruct(instanceStruct(req.GetFields()["name"].GetStringValue(), n >= 3))
			},
		})
		client := newPlatformClient(t, addr, fast)

		got, err := client.WaitForReady(context.Background(), "instances/aedt-1")
		require.NoError(t, err)
		assert.True(t, got.Ready)
		assert.Equal(t, "instances/aedt-1", got.Name)
		assert.Len(t, got.Services, 3)
		assert.Len(t, fake.Calls("GetInstance"), 3)
	})

	t.Run("timeout", func(t *testing.T) {
		addr, _ := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
			"GetInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
				return structpb.NewStruct(map[string]any{"name": "instances/aedt-1", "status_message": "pulling image"})
			},
		})
		client := newPlatformClient(t, addr, PlatformOptions{ReadyPollInterval: 10 * time.Millisecond, ReadyTimeout: 50 * time.Millisecond})

		got, err := client.WaitForReady(context.Background(), "instances/aedt-1")
		require.ErrorIs(t, err, ErrInstanceNotReady)
		assert.NotErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "pulling image")
		assert.Equal(t, "instances/aedt-1", got.Name)
	})

	t.Run("timeout_during_call", func(t *testing.T) {
		var polls atomic.Int32
		addr, _ := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
			"GetInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
				if polls.Add(1) == 1 {
					return structpb.NewStruct(map[string]any{"name": "instances/aedt-1", "status_message": "starting"})
				}
				<-ctx.Done()
				return nil, status.FromContextError(ctx.Err()).Err()
			},
		})
		client := newPlatformClient(t, addr, PlatformOptions{ReadyPollInterval: 10 * time.Millisecond, ReadyTimeout: 100 * time.Millisecond})

		_, err := client.WaitForReady(context.Background(), "instances/aedt-1")
		require.ErrorIs(t, err, ErrInstanceNotReady)
		assert.NotEqual(t, codes.DeadlineExceeded, status.Code(err))
		assert.Contains(t, err.Error(), "starting")
	})

	t.Run("caller_cancelled", func(t *testing.T) {
		addr, _ := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
			"GetInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
				return structpb.NewStruct(map[string]any{"name": "instances/aedt-1"})
			},
		})
		client := newPlatformClient(t, addr, PlatformOptions{ReadyPollInterval: 10 * time.Millisecond, ReadyTimeout: time.Minute})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.WaitForReady(ctx, "instances/aedt-1")
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.NotErrorIs(t, err, ErrInstanceNotReady)
	})

	t.Run("get_error_aborts", func(t *testing.T) {
		addr, fake := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
			"GetInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
				return nil, status.Error(codes.NotFound, "gone")
			},
		})
		client := newPlatformClient(t, addr, fast)

		_, err := client.WaitForReady(context.Background(), "instances/aedt-1")
		require.Error(t, err)
		assert.Equal(t, codes.NotFound, status.Code(err))
		assert.False(t, errors.Is(err, ErrInstanceNotReady))
		assert.Len(t, fake.Calls("GetInstance"), 1)
	})
}

func TestPlatformGRPC_DeleteInstance(t *testing.T) {
	addr, fake := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
		"DeleteInstance": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
			return &emptypb.Empty{}, nil
		},
	})
	client := newPlatformClient(t, addr, PlatformOptions{})

	require.NoError(t, client.DeleteInstance(context.Background(), "instances/aedt-1"))
	calls := fake.Calls("DeleteInstance")
	require.Len(t, calls, 1)
	assert.Equal(t, "instances/aedt-1", calls[0].Req.GetFields()["name"].GetStringValue())
}

func TestDialPlatform_SendsConfiguredHeaders(t *testing.T) {
	addr, fake := startFakeService(t, PlatformServiceName, map[string]unaryFunc{
		"ListInstances": func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
			return &structpb.Struct{}, nil
		},
	})
	cfg := PlatformConfig{Version: 1, PIM: PlatformEndpoint{URI: addr, Headers: map[string]string{"X-Api-Key": "secret"}}}
	client, err := DialPlatform(cfg, PlatformOptions{}, log.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()

	got, err := client.ListInstances(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	calls := fake.Calls("ListInstances")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"secret"}, calls[0].MD.Get("x-api-key"))
}

func TestInstanceFromStruct_NoServices(t *testing.T) {
	got := instanceFromStruct(nil)
	assert.Equal(t, domain.Instance{}, got)
}
