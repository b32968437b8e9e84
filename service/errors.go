package service

import (
	"errors"
	"fmt"
)

const (
	// ErrPlatformUnreachable means the platform manager could not be connected or stopped answering.
	ErrPlatformUnreachable = "platform_unreachable"
	// ErrInstanceCreationFailed means the platform refused or failed to provision an instance.
	ErrInstanceCreationFailed = "instance_creation_failed"
	// ErrInstanceNotFound means no ready instance matched the requested name.
	ErrInstanceNotFound = "instance_not_found"
	// ErrPluginNotFound means the desktop plugin support files could not be located.
	ErrPluginNotFound = "plugin_not_found"
	// ErrNotProvisioned means the adapter lacks the endpoint records needed for the operation.
	ErrNotProvisioned = "not_provisioned"
	// ErrRemoteInitFailed means the remote environment or session could not be initialized.
	ErrRemoteInitFailed = "remote_init_failed"
	// ErrAlreadyConnected means the remote-call endpoint was connected before; the existing session is returned.
	ErrAlreadyConnected = "already_connected"
	// ErrUnknownEndpoint means the instance reported a service outside servicemanager|rpyc|grpc.
	ErrUnknownEndpoint = "unknown_endpoint"
	// ErrDeleteFailed means the platform failed to release the instance.
	ErrDeleteFailed = "delete_failed"
)

// AdapterError represents a recoverable failure of the broker or an instance adapter.
type AdapterError struct {
	// Code is a machine-readable code.
	Code string
	// Message is a human-readable message.
	Message string
	// Inner is the underlying platform, transport or parse error.
	Inner error
}

// NewAdapterError creates a new AdapterError.
func NewAdapterError(code string, message string, inner error) *AdapterError {
	return &AdapterError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewPlatformUnreachableError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrPlatformUnreachable, message, inner)
}

func NewInstanceCreationFailedError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrInstanceCreationFailed, message, inner)
}

func NewInstanceNotFoundError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrInstanceNotFound, message, inner)
}

func NewPluginNotFoundError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrPluginNotFound, message, inner)
}

func NewNotProvisionedError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrNotProvisioned, message, inner)
}

func NewRemoteInitFailedError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrRemoteInitFailed, message, inner)
}

func NewAlreadyConnectedError(message string) *AdapterError {
	return NewAdapterError(ErrAlreadyConnected, message, nil)
}

func NewUnknownEndpointError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrUnknownEndpoint, message, inner)
}

func NewDeleteFailedError(message string, inner error) *AdapterError {
	return NewAdapterError(ErrDeleteFailed, message, inner)
}

func (e AdapterError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e AdapterError) Unwrap() error {
	return e.Inner
}

// ToAdapterError returns a pointer to an adapter error, or nil if err is not one.
func ToAdapterError(err error) *AdapterError {
	var e *AdapterError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToAdapterErrorCode returns the code of the error, if available.
func ToAdapterErrorCode(err error) string {
	adapterErr := ToAdapterError(err)
	if adapterErr != nil {
		return adapterErr.Code
	}
	return ""
}

func IsAdapterError(err error, code string) bool {
	adapterErr := ToAdapterError(err)
	if adapterErr != nil {
		return adapterErr.Code == code
	}
	return false
}

func IsPlatformUnreachable(err error) bool {
	return IsAdapterError(err, ErrPlatformUnreachable)
}

func IsInstanceCreationFailed(err error) bool {
	return IsAdapterError(err, ErrInstanceCreationFailed)
}

func IsInstanceNotFound(err error) bool {
	return IsAdapterError(err, ErrInstanceNotFound)
}

func IsPluginNotFound(err error) bool {
	return IsAdapterError(err, ErrPluginNotFound)
}

func IsNotProvisioned(err error) bool {
	return IsAdapterError(err, ErrNotProvisioned)
}

func IsRemoteInitFailed(err error) bool {
	return IsAdapterError(err, ErrRemoteInitFailed)
}

func IsAlreadyConnected(err error) bool {
	return IsAdapterError(err, ErrAlreadyConnected)
}

func IsUnknownEndpoint(err error) bool {
	return IsAdapterError(err, ErrUnknownEndpoint)
}

func IsDeleteFailed(err error) bool {
	return IsAdapterError(err, ErrDeleteFailed)
}
