package devprop

import (
	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/pkg/types"
)

// Scalar is the closed set of Go types a property value can take. Each type
// maps to exactly one Kind.
type Scalar interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | Decimal | guid.GUID | bool | string | []string | []byte |
		Key | Type | Date | FileTime | ErrorCode
}

// KindOf returns the Kind that holds values of Go type T.
func KindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return KindSByte
	case uint8:
		return KindByte
	case int16:
		return KindInt16
	case uint16:
		return KindUInt16
	case int32:
		return KindInt32
	case uint32:
		return KindUInt32
	case int64:
		return KindInt64
	case uint64:
		return KindUInt64
	case float32:
		return KindFloat
	case float64:
		return KindDouble
	case Decimal:
		return KindDecimal
	case guid.GUID:
		return KindGUID
	case bool:
		return KindBoolean
	case string:
		return KindString
	case []string:
		return KindStringList
	case []byte:
		return KindBinary
	case Key:
		return KindPropertyKey
	case Type:
		return KindPropertyType
	case Date:
		return KindDate
	case FileTime:
		return KindFileTime
	case ErrorCode:
		return KindError
	}
	return KindNone
}

// As narrows v to T, failing with TypeMismatch when v holds another kind
// (including when v is absent).
func As[T Scalar](v Value) (T, error) {
	var zero T
	if want := KindOf[T](); v.kind != want {
		return zero, types.TypeMismatch(v.kind, want)
	}
	t, _ := v.Interface().(T)
	return t, nil
}

// Of wraps x in a Value of the matching kind.
func Of[T Scalar](x T) Value {
	switch x := any(x).(type) {
	case int8:
		return SByteValue(x)
	case uint8:
		return ByteValue(x)
	case int16:
		return Int16Value(x)
	case uint16:
		return UInt16Value(x)
	case int32:
		return Int32Value(x)
	case uint32:
		return UInt32Value(x)
	case int64:
		return Int64Value(x)
	case uint64:
		return UInt64Value(x)
	case float32:
		return FloatValue(x)
	case float64:
		return DoubleValue(x)
	case Decimal:
		return DecimalValue(x)
	case guid.GUID:
		return GUIDValue(x)
	case bool:
		return BoolValue(x)
	case string:
		return StringValue(x)
	case []string:
		return StringListValue(x)
	case []byte:
		return BinaryValue(x)
	case Key:
		return KeyValue(x)
	case Type:
		return TypeValue(x)
	case Date:
		return DateValue(x)
	case FileTime:
		return FileTimeValue(x)
	case ErrorCode:
		return ErrorValue(x)
	}
	return Absent()
}

// CheckKind validates that key declares want. It fails with TypeMismatch when
// the kinds differ and with UnsupportedPropertyType when the declared type has
// no conversion. Callers run it before any native call.
func CheckKind(key Key, want Kind) error {
	declared, ok := key.Kind()
	if !ok {
		return types.Unsupported(key.Type)
	}
	if declared != want {
		return types.TypeMismatch(declared, want)
	}
	return nil
}
