package service

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// platformCallError maps an error returned by a platform manager call to an AdapterError: transport-level failures
// (gRPC Unavailable, DeadlineExceeded, or a context deadline) become platform_unreachable; anything else gets fallbackCode.
//
// Parameters: err — error from interfaces.PlatformManager (nil allowed); fallback — constructor used when the platform answered but refused
// (e.g. NewInstanceCreationFailedError, NewDeleteFailedError); message — human-readable message for the AdapterError.
//
// Returns: nil if err == nil; otherwise *AdapterError wrapping err.
//
// Called from InstanceAdapter.CreatePIMInstance, InstanceAdapter.Delete and Broker.SelectInstance.
func platformCallError(err error, fallback func(message string, inner error) *AdapterError, message string) error {
	if err == nil {
		return nil
	}
	if isTransportFailure(err) {
		return NewPlatformUnreachableError(message, err)
	}
	return fallback(message, err)
}

// readinessError maps a WaitForReady failure. Only an unreachable platform is platform_unreachable; an instance that ran out of
// time (context or gRPC deadline) is instance_creation_failed.
//
// Called from InstanceAdapter.CreatePIMInstance.
func readinessError(err error, message string) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.Unavailable {
		return NewPlatformUnreachableError(message, err)
	}
	return NewInstanceCreationFailedError(message, err)
}

// isTransportFailure reports whether err means the platform could not be reached at all, as opposed to a platform-side refusal.
func isTransportFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return true
	default:
		return false
	}
}
