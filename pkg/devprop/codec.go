package devprop

import (
	"fmt"

	"github.com/joshuapare/pnpkit/internal/format"
	"github.com/joshuapare/pnpkit/pkg/types"
)

// booleanTrue is DEVPROP_TRUE; any non-zero byte decodes as true.
const booleanTrue = 0xFF

// Decode converts a native tagged buffer into a Value. EMPTY and NULL tags
// yield the absent value. Tags without a conversion fail with
// UnsupportedPropertyType; buffers shorter than a fixed-size kind fail with
// a truncated-buffer error. The result never aliases buf.
func Decode(typ Type, buf []byte) (Value, error) {
	if typ == TypeEmpty || typ == TypeNull {
		return Absent(), nil
	}
	kind, ok := typ.Kind()
	if !ok {
		return Value{}, types.Unsupported(typ)
	}
	if size := kind.Size(); size > 0 && len(buf) < size {
		return Value{}, types.Truncated(kind, len(buf), size)
	}

	switch kind {
	case KindSByte:
		return SByteValue(int8(buf[0])), nil
	case KindByte:
		return ByteValue(buf[0]), nil
	case KindInt16:
		return Int16Value(int16(format.ReadU16(buf, 0))), nil
	case KindUInt16:
		return UInt16Value(format.ReadU16(buf, 0)), nil
	case KindInt32:
		return Int32Value(format.ReadI32(buf, 0)), nil
	case KindUInt32:
		return UInt32Value(format.ReadU32(buf, 0)), nil
	case KindInt64:
		return Int64Value(int64(format.ReadU64(buf, 0))), nil
	case KindUInt64:
		return UInt64Value(format.ReadU64(buf, 0)), nil
	case KindFloat:
		return FloatValue(format.ReadF32(buf, 0)), nil
	case KindDouble:
		return DoubleValue(format.ReadF64(buf, 0)), nil
	case KindDecimal:
		return DecimalValue(decimalFromRaw(format.ReadDecimal(buf, 0))), nil
	case KindGUID:
		return GUIDValue(format.ReadGUID(buf, 0)), nil
	case KindBoolean:
		return BoolValue(buf[0] != 0), nil
	case KindString:
		s, err := format.DecodeUTF16(evenPrefix(buf))
		if err != nil {
			return Value{}, fmt.Errorf("devprop: decode string: %w", err)
		}
		return StringValue(s), nil
	case KindStringList:
		ss, err := format.DecodeMultiString(evenPrefix(buf))
		if err != nil {
			return Value{}, fmt.Errorf("devprop: decode string list: %w", err)
		}
		return Value{kind: KindStringList, list: ss}, nil
	case KindBinary:
		return BinaryValue(buf), nil
	case KindPropertyKey:
		return KeyValue(readKey(buf)), nil
	case KindPropertyType:
		return TypeValue(Type(format.ReadU32(buf, 0))), nil
	case KindDate:
		return DateValue(Date(format.ReadF64(buf, 0))), nil
	case KindFileTime:
		return FileTimeValue(FileTime(format.ReadU64(buf, 0))), nil
	case KindError:
		return ErrorValue(ErrorCode(format.ReadI32(buf, 0))), nil
	}
	return Value{}, types.Unsupported(typ)
}

// Encode converts v into its native tag and a buffer sized exactly as the
// native layer requires. The absent value has no encoding.
func Encode(v Value) (Type, []byte, error) {
	typ, ok := v.kind.Type()
	if !ok {
		return TypeEmpty, nil, types.Unsupported(v.kind)
	}

	var buf []byte
	if size := v.kind.Size(); size > 0 {
		buf = make([]byte, size)
	}

	switch v.kind {
	case KindSByte, KindByte:
		buf[0] = uint8(v.bits)
	case KindInt16, KindUInt16:
		format.PutU16(buf, 0, uint16(v.bits))
	case KindInt32, KindUInt32, KindFloat, KindPropertyType, KindError:
		format.PutU32(buf, 0, uint32(v.bits))
	case KindInt64, KindUInt64, KindDouble, KindDate, KindFileTime:
		format.PutU64(buf, 0, v.bits)
	case KindDecimal:
		format.PutDecimal(buf, 0, v.dec.raw())
	case KindGUID:
		format.PutGUID(buf, 0, v.id)
	case KindBoolean:
		if v.bits != 0 {
			buf[0] = booleanTrue
		}
	case KindString:
		b, err := format.EncodeUTF16(v.str)
		if err != nil {
			return TypeEmpty, nil, types.InvalidValue(v.kind, err)
		}
		buf = b
	case KindStringList:
		b, err := format.EncodeMultiString(v.list)
		if err != nil {
			return TypeEmpty, nil, types.InvalidValue(v.kind, err)
		}
		buf = b
	case KindBinary:
		buf = append([]byte{}, v.raw...)
	case KindPropertyKey:
		putKey(buf, v.key)
	default:
		return TypeEmpty, nil, types.Unsupported(v.kind)
	}
	return typ, buf, nil
}

// evenPrefix drops a dangling odd byte some drivers leave after the
// terminator of a string property.
func evenPrefix(b []byte) []byte {
	return b[:len(b)&^1]
}
