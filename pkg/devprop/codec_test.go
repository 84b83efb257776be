package devprop

import (
	"math"
	"math/big"
	"testing"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pnpkit/internal/format"
	"github.com/joshuapare/pnpkit/pkg/types"
)

var testGUID = guid.GUID{
	Data1: 0x4d1e55b2,
	Data2: 0xf16f,
	Data3: 0x11cf,
	Data4: [8]byte{0x88, 0xcb, 0x00, 0x11, 0x11, 0x00, 0x00, 0x30},
}

func utf16z(units ...uint16) []byte {
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		format.PutU16(buf, 2*i, u)
	}
	return buf
}

// TestDecodeEncode_RoundTrip feeds native buffers through Decode and Encode
// and expects the same tag and bytes back.
func TestDecodeEncode_RoundTrip(t *testing.T) {
	keyBuf := make([]byte, keySize)
	format.PutGUID(keyBuf, 0, testGUID)
	format.PutU32(keyBuf, format.GUIDSize, 256)

	decBuf := make([]byte, format.DecimalSize)
	format.PutDecimal(decBuf, 0, format.RawDecimal{Scale: 3, Sign: format.DecimalNegative, Hi32: 0, Lo64: 123456})

	guidBuf := make([]byte, format.GUIDSize)
	format.PutGUID(guidBuf, 0, testGUID)

	tests := []struct {
		name string
		typ  Type
		buf  []byte
		kind Kind
	}{
		{"sbyte", TypeSByte, []byte{0x80}, KindSByte},
		{"byte", TypeByte, []byte{0xFE}, KindByte},
		{"int16", TypeInt16, []byte{0xFF, 0xFF}, KindInt16},
		{"uint16", TypeUInt16, []byte{0xFF, 0xFF}, KindUInt16},
		{"int32", TypeInt32, []byte{0xFE, 0xFF, 0xFF, 0xFF}, KindInt32},
		{"uint32", TypeUInt32, []byte{0x78, 0x56, 0x34, 0x12}, KindUInt32},
		{"int64", TypeInt64, []byte{1, 2, 3, 4, 5, 6, 7, 0x80}, KindInt64},
		{"uint64", TypeUInt64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, KindUInt64},
		{"float", TypeFloat, []byte{0x00, 0x00, 0xC0, 0x3F}, KindFloat},
		{"double", TypeDouble, []byte{0, 0, 0, 0, 0, 0, 0xF8, 0x3F}, KindDouble},
		{"decimal", TypeDecimal, decBuf, KindDecimal},
		{"guid", TypeGUID, guidBuf, KindGUID},
		{"bool true", TypeBoolean, []byte{0xFF}, KindBoolean},
		{"bool false", TypeBoolean, []byte{0x00}, KindBoolean},
		{"string", TypeString, utf16z('U', 'S', 'B', 0), KindString},
		{"string list", TypeStringList, utf16z('a', 0, 'b', 'c', 0, 0), KindStringList},
		{"binary", TypeBinary, []byte{0xDE, 0xAD, 0xBE, 0xEF}, KindBinary},
		{"devpropkey", TypeDevPropKey, keyBuf, KindPropertyKey},
		{"devproptype", TypeDevPropType, []byte{0x12, 0x20, 0, 0}, KindPropertyType},
		{"date", TypeDate, []byte{0, 0, 0, 0, 0x10, 0x25, 0xE6, 0x40}, KindDate},
		{"filetime", TypeFileTime, []byte{0x00, 0x80, 0x3E, 0xD5, 0xDE, 0xB1, 0x9D, 0x01}, KindFileTime},
		{"error", TypeError, []byte{0x05, 0x00, 0x00, 0x80}, KindError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode(tt.typ, tt.buf)
			require.NoError(t, err)
			require.Equal(t, tt.kind, v.Kind())
			require.False(t, v.IsAbsent())

			typ, out, err := Encode(v)
			require.NoError(t, err)
			require.Equal(t, tt.typ, typ)
			require.Equal(t, tt.buf, out)
		})
	}
}

func TestDecode_WidthAndSignedness(t *testing.T) {
	v, err := Decode(TypeUInt16, []byte{0xFF, 0xFF})
	require.NoError(t, err)
	u16, err := v.UInt16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xFFFF), u16)

	v, err = Decode(TypeInt16, []byte{0xFF, 0xFF})
	require.NoError(t, err)
	i16, err := v.Int16()
	require.NoError(t, err)
	require.Equal(t, int16(-1), i16)

	v, err = Decode(TypeUInt64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	require.NoError(t, err)
	u64, err := v.UInt64()
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), u64)

	v, err = Decode(TypeSByte, []byte{0xFF})
	require.NoError(t, err)
	i8, err := v.SByte()
	require.NoError(t, err)
	require.Equal(t, int8(-1), i8)
}

func TestDecode_AbsentIsNotError(t *testing.T) {
	for _, typ := range []Type{TypeEmpty, TypeNull} {
		v, err := Decode(typ, nil)
		require.NoError(t, err)
		require.True(t, v.IsAbsent())
		require.Equal(t, KindNone, v.Kind())
	}

	// an empty string is present
	v, err := Decode(TypeString, utf16z(0))
	require.NoError(t, err)
	require.False(t, v.IsAbsent())
	s, err := v.Text()
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestDecode_StringStopsAtTerminator(t *testing.T) {
	v, err := Decode(TypeString, utf16z('H', 'I', 0, 'X', 'X', 0))
	require.NoError(t, err)
	s, err := v.Text()
	require.NoError(t, err)
	require.Equal(t, "HI", s)
}

func TestDecode_StringListOrder(t *testing.T) {
	v, err := Decode(TypeStringList, utf16z('c', 0, 'a', 0, 'b', 0, 0))
	require.NoError(t, err)
	ss, err := v.Strings()
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, ss)
}

func TestUnsupported_BothDirections(t *testing.T) {
	for _, typ := range []Type{
		TypeCurrency, TypeSecurityDescriptor, TypeSecurityDescriptorString,
		TypeNTStatus, TypeStringIndirect, TypeInt32 | TypeModArray, Type(0xFFFF),
	} {
		_, err := Decode(typ, make([]byte, 16))
		require.ErrorIs(t, err, types.ErrUnsupportedType, typ.String())
	}

	_, _, err := Encode(Absent())
	require.ErrorIs(t, err, types.ErrUnsupportedType)
	_, _, err = Encode(Value{kind: kindCount})
	require.ErrorIs(t, err, types.ErrUnsupportedType)
}

func TestEncode_RejectsLossyText(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		cause error
	}{
		{"empty list element", StringListValue([]string{"a", "", "b"}), format.ErrEmptyElement},
		{"NUL in list element", StringListValue([]string{"x\x00y", "z"}), format.ErrEmbeddedNUL},
		{"NUL in string", StringValue("ab\x00cd"), format.ErrEmbeddedNUL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, buf, err := Encode(tt.value)
			require.Nil(t, buf)
			require.ErrorIs(t, err, types.ErrTypeMismatch)
			require.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestDecode_Truncated(t *testing.T) {
	_, err := Decode(TypeUInt32, []byte{1, 2})
	require.ErrorIs(t, err, types.ErrTruncated)

	_, err = Decode(TypeGUID, make([]byte, 15))
	require.ErrorIs(t, err, types.ErrTruncated)
}

func TestDecode_DoesNotAlias(t *testing.T) {
	buf := []byte{1, 2, 3}
	v, err := Decode(TypeBinary, buf)
	require.NoError(t, err)
	buf[0] = 9
	b, err := v.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
}

func TestEncode_BooleanTrueIsFF(t *testing.T) {
	typ, buf, err := Encode(BoolValue(true))
	require.NoError(t, err)
	require.Equal(t, TypeBoolean, typ)
	require.Equal(t, []byte{0xFF}, buf)

	v, err := Decode(TypeBoolean, []byte{0x01})
	require.NoError(t, err)
	b, err := v.Bool()
	require.NoError(t, err)
	require.True(t, b)
}

func TestEncode_RequiredLength(t *testing.T) {
	_, buf, err := Encode(StringValue("ROOT"))
	require.NoError(t, err)
	require.Len(t, buf, 10)

	_, buf, err = Encode(StringListValue([]string{"a", "bc"}))
	require.NoError(t, err)
	require.Len(t, buf, 2*(2+3+1))

	_, buf, err = Encode(StringListValue(nil))
	require.NoError(t, err)
	require.Len(t, buf, 2)

	_, buf, err = Encode(KeyValue(Key{FmtID: testGUID, PID: 2}))
	require.NoError(t, err)
	require.Len(t, buf, 20)
}

func TestDecimal(t *testing.T) {
	d, err := NewDecimal(big.NewInt(-12345), 2)
	require.NoError(t, err)
	assert.Equal(t, "-123.45", d.String())
	assert.True(t, d.Negative)

	huge := new(big.Int).Lsh(big.NewInt(1), 95)
	d, err = NewDecimal(huge, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<31), d.Hi)
	assert.Zero(t, huge.Cmp(d.Coefficient()))

	_, err = NewDecimal(new(big.Int).Lsh(big.NewInt(1), 96), 0)
	require.Error(t, err)
	_, err = NewDecimal(big.NewInt(1), 29)
	require.Error(t, err)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "DEVPROP_TYPE_STRING_LIST", TypeStringList.String())
	assert.Equal(t, "DEVPROP_TYPE_BINARY", TypeBinary.String())
	assert.Equal(t, "UNKNOWN_TYPE_0x4242", Type(0x4242).String())
}

func TestKindTable_Closed(t *testing.T) {
	for typ, kind := range typeKinds {
		back, ok := kind.Type()
		require.True(t, ok, kind.String())
		require.Equal(t, typ, back, "kind %s", kind)
	}
	require.Len(t, typeKinds, int(kindCount)-1)

	_, ok := KindNone.Type()
	require.False(t, ok)
}
