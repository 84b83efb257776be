package devprop

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/joshuapare/pnpkit/internal/format"
)

// ParseKind returns the kind named s, ignoring case ("uint32", "StringList").
func ParseKind(s string) (Kind, bool) {
	for k := KindSByte; k < kindCount; k++ {
		if strings.EqualFold(kindTable[k].name, s) {
			return k, true
		}
	}
	return KindNone, false
}

// ParseValue converts text to a value of kind k. Lists are separated by
// newlines or semicolons, binary is hex (spaces allowed), dates and file
// times are RFC 3339, keys use the "{fmtid} pid" form.
func ParseValue(k Kind, s string) (Value, error) {
	v, err := parseValue(k, s)
	if err != nil {
		return Value{}, fmt.Errorf("devprop: parse %s %q: %w", k, s, err)
	}
	return v, nil
}

func parseValue(k Kind, s string) (Value, error) {
	switch k {
	case KindSByte, KindInt16, KindInt32, KindInt64:
		n, err := strconv.ParseInt(s, 0, k.Size()*8)
		if err != nil {
			return Value{}, err
		}
		switch k {
		case KindSByte:
			return SByteValue(int8(n)), nil
		case KindInt16:
			return Int16Value(int16(n)), nil
		case KindInt32:
			return Int32Value(int32(n)), nil
		}
		return Int64Value(n), nil
	case KindByte, KindUInt16, KindUInt32, KindUInt64:
		n, err := strconv.ParseUint(s, 0, k.Size()*8)
		if err != nil {
			return Value{}, err
		}
		switch k {
		case KindByte:
			return ByteValue(uint8(n)), nil
		case KindUInt16:
			return UInt16Value(uint16(n)), nil
		case KindUInt32:
			return UInt32Value(uint32(n)), nil
		}
		return UInt64Value(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 32)
		return FloatValue(float32(f)), err
	case KindDouble:
		f, err := strconv.ParseFloat(s, 64)
		return DoubleValue(f), err
	case KindDecimal:
		d, err := parseDecimal(s)
		return DecimalValue(d), err
	case KindGUID:
		g, err := guid.FromString(strings.Trim(strings.TrimSpace(s), "{}"))
		return GUIDValue(g), err
	case KindBoolean:
		b, err := strconv.ParseBool(s)
		return BoolValue(b), err
	case KindString:
		return StringValue(s), nil
	case KindStringList:
		if s == "" {
			return StringListValue(nil), nil
		}
		return StringListValue(strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ';' })), nil
	case KindBinary:
		b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
		return BinaryValue(b), err
	case KindPropertyKey:
		key, err := ParseKey(s, TypeEmpty)
		return KeyValue(key), err
	case KindPropertyType:
		n, err := strconv.ParseUint(s, 0, 32)
		return TypeValue(Type(n)), err
	case KindDate:
		t, err := time.Parse(time.RFC3339Nano, s)
		return DateValue(DateOf(t)), err
	case KindFileTime:
		t, err := time.Parse(time.RFC3339Nano, s)
		return FileTimeValue(FileTimeOf(t)), err
	case KindError:
		// Signed codes ("-1") and HRESULT-style hex ("0x80070005") both apply.
		if n, err := strconv.ParseInt(s, 0, 32); err == nil {
			return ErrorValue(ErrorCode(n)), nil
		}
		n, err := strconv.ParseUint(s, 0, 32)
		return ErrorValue(ErrorCode(uint32(n))), err
	}
	return Value{}, fmt.Errorf("no text form")
}

// parseDecimal reads a plain decimal number such as "-12.050".
func parseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	intPart, frac, _ := strings.Cut(s, ".")
	if len(frac) > format.DecimalMaxScale {
		return Decimal{}, fmt.Errorf("%w: scale %d", errDecimalRange, len(frac))
	}
	coeff, ok := new(big.Int).SetString(intPart+frac, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("not a decimal number")
	}
	return NewDecimal(coeff, uint8(len(frac)))
}
