package adapters

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// unaryFunc handles one unary method of a fake service; the request is decoded as a Struct.
type unaryFunc func(ctx context.Context, req *structpb.Struct) (proto.Message, error)

// recordedCall is one request received by a fake service.
type recordedCall struct {
	Method string
	Req    *structpb.Struct
	MD     metadata.MD
}

// fakeService serves hand-described unary methods and records every call.
type fakeService struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeService) record(method string, ctx context.Context, req *structpb.Struct) {
	md, _ := metadata.FromIncomingContext(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{Method: method, Req: req, MD: md})
}

// Calls returns the recorded calls of method.
func (f *fakeService) Calls(method string) []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// startFakeService starts a gRPC server on 127.0.0.1:0 serving serviceName with the given unary methods.
// The server is stopped on test cleanup. Returns the listen address and the call recorder.
func startFakeService(t *testing.T, serviceName string, methods map[string]unaryFunc) (string, *fakeService) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := grpc.NewServer()
	fake := &fakeService{}
	sd := &grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*any)(nil),
	}
	for name, fn := range methods {
		sd.Methods = append(sd.Methods, grpc.MethodDesc{
			MethodName: name,
			Handler: func(_ any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
				req := &structpb.Struct{}
				if err := dec(req); err != nil {
					return nil, err
				}
				fake.record(name, ctx, req)
				return fn(ctx, req)
			},
		})
	}
	srv.RegisterService(sd, struct{}{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis.Addr().String(), fake
}

// mustStruct builds a Struct from a Go map, failing the test on unsupported values.
func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}
