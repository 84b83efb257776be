// Package devprop converts native device property buffers into typed Go
// values and back.
//
// # Overview
//
// The configuration manager returns every device property as a tagged
// buffer: a DEVPROPTYPE tag plus a length-prefixed byte payload. This package
// maps each supported tag to exactly one Kind through a closed, read-only
// table and decodes the payload into a Value, a tagged variant with one case
// per Kind.
//
//	typ, buf := ... // from CM_Get_DevNode_PropertyW
//	v, err := devprop.Decode(typ, buf)
//	if err != nil {
//	    return err // UnsupportedPropertyType or a truncated buffer
//	}
//	if v.IsAbsent() {
//	    // property not set, which is not the same as an empty string
//	}
//	s, err := v.String()
//
// Encode is the dual and reports the buffer length the native layer needs:
//
//	typ, buf, err := devprop.Encode(devprop.StringValue("Gamepad"))
//
// # Typed Access
//
// Go types map one-to-one onto kinds through the Scalar constraint, so the
// requested kind is fixed at compile time:
//
//	v, err := devprop.As[uint32](value)   // TypeMismatch unless value is UInt32
//	k := devprop.KindOf[[]string]()       // KindStringList
//
// # Absent Values
//
// EMPTY and NULL tags, and "no such value" from the platform, decode to the
// absent Value rather than an error. Callers must check IsAbsent; the zero
// Value is absent.
//
// # Buffers
//
// Native call buffers come from a small pool. AcquireBuffer hands one out and
// Release returns it; Release is safe to call more than once so a deferred
// release can back up an early one. Decoded values never alias pooled memory.
//
// # Thread Safety
//
// Decode, Encode and the lookup tables are safe for concurrent use. Values are
// immutable; accessors return copies of slice data.
package devprop
