package helpers

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// HeaderSessionID is the gRPC metadata key carrying the client session id sent to the service manager.
const HeaderSessionID = "session-id"

// AppendHeaders returns ctx with every headers entry appended to the outgoing metadata. Keys are lowercased;
// entries with an empty key are skipped. A nil or empty map returns ctx unchanged.
//
// Parameters: ctx — request context; headers — header name → value (e.g. the "headers" of the platform configuration).
//
// Returns: derived context carrying the headers.
//
// Called from HeadersUnaryInterceptor and adapters.sessionGRPC.
func AppendHeaders(ctx context.Context, headers map[string]string) context.Context {
	if len(headers) == 0 {
		return ctx
	}
	kv := make([]string, 0, 2*len(headers))
	for k, v := range headers {
		if k == "" {
			continue
		}
		kv = append(kv, strings.ToLower(k), v)
	}
	if len(kv) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

// HeadersUnaryInterceptor returns a client interceptor that attaches headers to every unary call.
//
// Parameter headers — fixed headers from configuration (copied; later changes to the map are not seen).
//
// Returns: grpc.UnaryClientInterceptor for grpc.WithChainUnaryInterceptor.
//
// Called from adapters.DialPlatform when the platform configuration declares headers.
func HeadersUnaryInterceptor(headers map[string]string) grpc.UnaryClientInterceptor {
	fixed := make(map[string]string, len(headers))
	for k, v := range headers {
		fixed[k] = v
	}
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(AppendHeaders(ctx, fixed), method, req, reply, cc, opts...)
	}
}
