package types

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound     ErrKind = iota + 1 // no node matched the identifier and search mode
	ErrKindType                            // requested kind disagrees with the declared kind
	ErrKindUnsupported                     // native tag or value kind has no conversion
	ErrKindPlatform                        // native call returned a non-success code
	ErrKindRegistration                    // notification filter could not be registered
	ErrKindState                           // invalid operation for the current state
	ErrKindCorrupt                         // native buffer shorter than its declared type
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "DeviceNotFound"
	case ErrKindType:
		return "TypeMismatch"
	case ErrKindUnsupported:
		return "UnsupportedPropertyType"
	case ErrKindPlatform:
		return "PlatformCallFailed"
	case ErrKindRegistration:
		return "RegistrationFailed"
	case ErrKindState:
		return "InvalidState"
	case ErrKindCorrupt:
		return "Corrupt"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional native status code and cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Code ConfigRet // native status for ErrKindPlatform, zero otherwise
	Err  error     // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if e.Kind == ErrKindPlatform && e.Code != CR_SUCCESS {
		msg += " (" + e.Code.String() + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target names the same category as e. A *Error target
// matches on Kind (and on Code when the target carries one); containerd
// errdefs classes match the closest category.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != e.Kind {
			return false
		}
		return t.Code == CR_SUCCESS || t.Code == e.Code
	}
	switch target {
	case errdefs.ErrNotFound:
		return e.Kind == ErrKindNotFound
	case errdefs.ErrInvalidArgument:
		return e.Kind == ErrKindType
	case errdefs.ErrNotImplemented:
		return e.Kind == ErrKindUnsupported
	case errdefs.ErrUnknown:
		return e.Kind == ErrKindPlatform
	case errdefs.ErrUnavailable:
		return e.Kind == ErrKindRegistration
	case errdefs.ErrFailedPrecondition:
		return e.Kind == ErrKindState
	case errdefs.ErrDataLoss:
		return e.Kind == ErrKindCorrupt
	}
	return false
}

// Sentinels commonly returned by implementations.
var (
	// ErrDeviceNotFound indicates no node matched the identifier under the requested mode.
	ErrDeviceNotFound = &Error{Kind: ErrKindNotFound, Msg: "device not found"}
	// ErrTypeMismatch indicates the requested or supplied kind differs from the key's declared kind.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "property has different type"}
	// ErrUnsupportedType indicates a native tag or value kind without a conversion.
	ErrUnsupportedType = &Error{Kind: ErrKindUnsupported, Msg: "unsupported property type"}
	// ErrPlatformCall indicates a native call failed; use errors.As to read the code.
	ErrPlatformCall = &Error{Kind: ErrKindPlatform, Msg: "platform call failed"}
	// ErrRegistrationFailed indicates the device notification filter was rejected.
	ErrRegistrationFailed = &Error{Kind: ErrKindRegistration, Msg: "notification registration failed"}
	// ErrAlreadyStarted indicates Start was called on a listener that is not stopped.
	ErrAlreadyStarted = &Error{Kind: ErrKindState, Msg: "listener already started"}
	// ErrTruncated indicates a native buffer was shorter than its type requires.
	ErrTruncated = &Error{Kind: ErrKindCorrupt, Msg: "truncated property buffer"}
)

// NotFound returns a DeviceNotFound error naming the identifier.
func NotFound(id string, mode SearchMode) error {
	return &Error{Kind: ErrKindNotFound, Msg: fmt.Sprintf("device %q not found (mode %s)", id, mode)}
}

// TypeMismatch returns a TypeMismatch error naming both kinds.
func TypeMismatch(declared, requested fmt.Stringer) error {
	return &Error{
		Kind: ErrKindType,
		Msg:  fmt.Sprintf("property declared as %s, requested as %s", declared, requested),
	}
}

// Unsupported returns an UnsupportedPropertyType error for what.
func Unsupported(what fmt.Stringer) error {
	return &Error{Kind: ErrKindUnsupported, Msg: "unsupported property type " + what.String()}
}

// PlatformCall returns a PlatformCallFailed error for the named native call.
func PlatformCall(call string, code ConfigRet) error {
	return &Error{Kind: ErrKindPlatform, Msg: call + " failed", Code: code}
}

// PlatformErr wraps a non-CONFIGRET native failure (e.g. a Win32 error).
func PlatformErr(call string, err error) error {
	return &Error{Kind: ErrKindPlatform, Msg: call + " failed", Err: err}
}

// InvalidValue returns a TypeMismatch error for a value its declared kind
// cannot represent on the wire.
func InvalidValue(kind fmt.Stringer, cause error) error {
	return &Error{Kind: ErrKindType, Msg: "value not representable as " + kind.String(), Err: cause}
}

// Registration returns a RegistrationFailed error wrapping cause.
func Registration(cause error) error {
	return &Error{Kind: ErrKindRegistration, Msg: "notification registration failed", Err: cause}
}

// Truncated returns a corrupt-buffer error for a value needing want bytes.
func Truncated(what fmt.Stringer, got, want int) error {
	return &Error{
		Kind: ErrKindCorrupt,
		Msg:  fmt.Sprintf("truncated %s buffer: %d bytes, need %d", what, got, want),
	}
}
