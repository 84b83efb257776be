package devprop

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/pkg/types"
)

// Value is a tagged variant holding exactly one property value. The zero
// Value is the absent value. Values are built with the constructors below
// and are immutable.
type Value struct {
	kind Kind
	bits uint64 // integer, float, boolean, date, filetime, type and error kinds
	str  string
	list []string
	raw  []byte
	id   guid.GUID
	key  Key
	dec  Decimal
}

// Absent returns the value reported for a property that is not set.
func Absent() Value { return Value{} }

func SByteValue(v int8) Value        { return Value{kind: KindSByte, bits: uint64(uint8(v))} }
func ByteValue(v uint8) Value        { return Value{kind: KindByte, bits: uint64(v)} }
func Int16Value(v int16) Value       { return Value{kind: KindInt16, bits: uint64(uint16(v))} }
func UInt16Value(v uint16) Value     { return Value{kind: KindUInt16, bits: uint64(v)} }
func Int32Value(v int32) Value       { return Value{kind: KindInt32, bits: uint64(uint32(v))} }
func UInt32Value(v uint32) Value     { return Value{kind: KindUInt32, bits: uint64(v)} }
func Int64Value(v int64) Value       { return Value{kind: KindInt64, bits: uint64(v)} }
func UInt64Value(v uint64) Value     { return Value{kind: KindUInt64, bits: v} }
func FloatValue(v float32) Value     { return Value{kind: KindFloat, bits: uint64(math.Float32bits(v))} }
func DoubleValue(v float64) Value    { return Value{kind: KindDouble, bits: math.Float64bits(v)} }
func DecimalValue(v Decimal) Value   { return Value{kind: KindDecimal, dec: v} }
func GUIDValue(v guid.GUID) Value    { return Value{kind: KindGUID, id: v} }
func StringValue(v string) Value     { return Value{kind: KindString, str: v} }
func KeyValue(v Key) Value           { return Value{kind: KindPropertyKey, key: v} }
func TypeValue(v Type) Value         { return Value{kind: KindPropertyType, bits: uint64(v)} }
func DateValue(v Date) Value         { return Value{kind: KindDate, bits: math.Float64bits(float64(v))} }
func FileTimeValue(v FileTime) Value { return Value{kind: KindFileTime, bits: uint64(v)} }
func ErrorValue(v ErrorCode) Value   { return Value{kind: KindError, bits: uint64(uint32(v))} }

// BoolValue returns a Boolean value.
func BoolValue(v bool) Value {
	val := Value{kind: KindBoolean}
	if v {
		val.bits = 1
	}
	return val
}

// StringListValue returns a StringList value holding a copy of v.
func StringListValue(v []string) Value {
	if v == nil {
		v = []string{}
	}
	return Value{kind: KindStringList, list: slices.Clone(v)}
}

// BinaryValue returns a Binary value holding a copy of v.
func BinaryValue(v []byte) Value {
	if v == nil {
		v = []byte{}
	}
	return Value{kind: KindBinary, raw: slices.Clone(v)}
}

// Kind returns the populated variant.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v stands for a property that is not present.
func (v Value) IsAbsent() bool { return v.kind == KindNone }

func (v Value) want(k Kind) error {
	if v.kind != k {
		return types.TypeMismatch(v.kind, k)
	}
	return nil
}

func (v Value) SByte() (int8, error)    { return int8(uint8(v.bits)), v.want(KindSByte) }
func (v Value) Byte() (uint8, error)    { return uint8(v.bits), v.want(KindByte) }
func (v Value) Int16() (int16, error)   { return int16(uint16(v.bits)), v.want(KindInt16) }
func (v Value) UInt16() (uint16, error) { return uint16(v.bits), v.want(KindUInt16) }
func (v Value) Int32() (int32, error)   { return int32(uint32(v.bits)), v.want(KindInt32) }
func (v Value) UInt32() (uint32, error) { return uint32(v.bits), v.want(KindUInt32) }
func (v Value) Int64() (int64, error)   { return int64(v.bits), v.want(KindInt64) }
func (v Value) UInt64() (uint64, error) { return v.bits, v.want(KindUInt64) }

func (v Value) Float() (float32, error) {
	return math.Float32frombits(uint32(v.bits)), v.want(KindFloat)
}

func (v Value) Double() (float64, error) {
	return math.Float64frombits(v.bits), v.want(KindDouble)
}

func (v Value) Decimal() (Decimal, error)   { return v.dec, v.want(KindDecimal) }
func (v Value) GUID() (guid.GUID, error)    { return v.id, v.want(KindGUID) }
func (v Value) Bool() (bool, error)         { return v.bits != 0, v.want(KindBoolean) }
func (v Value) Text() (string, error)       { return v.str, v.want(KindString) }
func (v Value) Key() (Key, error)           { return v.key, v.want(KindPropertyKey) }
func (v Value) PropType() (Type, error)     { return Type(v.bits), v.want(KindPropertyType) }
func (v Value) FileTime() (FileTime, error) { return FileTime(v.bits), v.want(KindFileTime) }
func (v Value) ErrorCode() (ErrorCode, error) {
	return ErrorCode(int32(uint32(v.bits))), v.want(KindError)
}

func (v Value) Date() (Date, error) {
	return Date(math.Float64frombits(v.bits)), v.want(KindDate)
}

// Strings returns a copy of a StringList value.
func (v Value) Strings() ([]string, error) {
	if err := v.want(KindStringList); err != nil {
		return nil, err
	}
	return slices.Clone(v.list), nil
}

// Bytes returns a copy of a Binary value.
func (v Value) Bytes() ([]byte, error) {
	if err := v.want(KindBinary); err != nil {
		return nil, err
	}
	return slices.Clone(v.raw), nil
}

// Interface returns the value as its Go type (see Scalar), or nil when absent.
func (v Value) Interface() any {
	switch v.kind {
	case KindSByte:
		return int8(uint8(v.bits))
	case KindByte:
		return uint8(v.bits)
	case KindInt16:
		return int16(uint16(v.bits))
	case KindUInt16:
		return uint16(v.bits)
	case KindInt32:
		return int32(uint32(v.bits))
	case KindUInt32:
		return uint32(v.bits)
	case KindInt64:
		return int64(v.bits)
	case KindUInt64:
		return v.bits
	case KindFloat:
		return math.Float32frombits(uint32(v.bits))
	case KindDouble:
		return math.Float64frombits(v.bits)
	case KindDecimal:
		return v.dec
	case KindGUID:
		return v.id
	case KindBoolean:
		return v.bits != 0
	case KindString:
		return v.str
	case KindStringList:
		return slices.Clone(v.list)
	case KindBinary:
		return slices.Clone(v.raw)
	case KindPropertyKey:
		return v.key
	case KindPropertyType:
		return Type(v.bits)
	case KindDate:
		return Date(math.Float64frombits(v.bits))
	case KindFileTime:
		return FileTime(v.bits)
	case KindError:
		return ErrorCode(int32(uint32(v.bits)))
	default:
		return nil
	}
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "<absent>"
	case KindString:
		return v.str
	case KindStringList:
		return strings.Join(v.list, "\n")
	case KindBinary:
		return fmt.Sprintf("% x", v.raw)
	case KindGUID:
		return "{" + v.id.String() + "}"
	case KindFloat:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(v.bits))), 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(math.Float64frombits(v.bits), 'g', -1, 64)
	default:
		return fmt.Sprint(v.Interface())
	}
}
