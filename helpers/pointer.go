package helpers

import "reflect"

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan or func, checked via reflect); otherwise
// returns v with its static type, so constructors can validate and assign in one expression.
//
// Parameters: v — required dependency; panicMessage — panic value, by convention "<package>.<file>: <name> is required".
//
// Returns: v unchanged when non-nil.
//
// Called from service.NewPlatformHandle, service.NewBroker and the adapters constructors (NewPlatformGRPC, ScriptEnvGRPC,
// SessionFactoryGRPC, PlatformConnector).
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil reports whether v is nil or a typed nil pointer/slice/map/chan/func/interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
