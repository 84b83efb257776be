package devprop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("uint32")
	require.True(t, ok)
	require.Equal(t, KindUInt32, k)

	k, ok = ParseKind("StringList")
	require.True(t, ok)
	require.Equal(t, KindStringList, k)

	_, ok = ParseKind("None")
	require.False(t, ok)
	_, ok = ParseKind("dword")
	require.False(t, ok)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind Kind
		in   string
		want Value
	}{
		{KindSByte, "-5", SByteValue(-5)},
		{KindByte, "0xff", ByteValue(0xFF)},
		{KindInt16, "-300", Int16Value(-300)},
		{KindUInt32, "7", UInt32Value(7)},
		{KindInt64, "-9000000000", Int64Value(-9000000000)},
		{KindUInt64, "18446744073709551615", UInt64Value(^uint64(0))},
		{KindDouble, "2.5", DoubleValue(2.5)},
		{KindBoolean, "true", BoolValue(true)},
		{KindString, `Xbox 360 Controller`, StringValue("Xbox 360 Controller")},
		{KindStringList, "xusb22;kbdclass", StringListValue([]string{"xusb22", "kbdclass"})},
		{KindBinary, "de ad be ef", BinaryValue([]byte{0xDE, 0xAD, 0xBE, 0xEF})},
		{KindError, "0x80070005", ErrorValue(ErrorCode(-2147024891))},
		{KindError, "-1", ErrorValue(ErrorCode(-1))},
		{KindError, "5", ErrorValue(ErrorCode(5))},
		{KindPropertyType, "0x12", TypeValue(TypeString)},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.in, func(t *testing.T) {
			got, err := ParseValue(tt.kind, tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseValue_GUIDAndTimes(t *testing.T) {
	v, err := ParseValue(KindGUID, "{d61ca365-5af4-4486-998b-9db4734c6ca3}")
	require.NoError(t, err)
	require.Equal(t, "{d61ca365-5af4-4486-998b-9db4734c6ca3}", v.String())

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	v, err = ParseValue(KindFileTime, when.Format(time.RFC3339))
	require.NoError(t, err)
	ft, err := v.FileTime()
	require.NoError(t, err)
	require.True(t, ft.Time().Equal(when))

	v, err = ParseValue(KindDate, when.Format(time.RFC3339))
	require.NoError(t, err)
	d, err := v.Date()
	require.NoError(t, err)
	require.Equal(t, Date(45352.5), d)
}

func TestParseValue_Decimal(t *testing.T) {
	v, err := ParseValue(KindDecimal, "-12.050")
	require.NoError(t, err)
	d, err := v.Decimal()
	require.NoError(t, err)
	require.Equal(t, "-12.050", d.String())
	require.Equal(t, uint8(3), d.Scale)

	_, err = ParseValue(KindDecimal, "1.00000000000000000000000000001")
	require.Error(t, err)
}

func TestParseValue_Errors(t *testing.T) {
	for _, tc := range []struct {
		kind Kind
		in   string
	}{
		{KindByte, "256"},
		{KindInt16, "x"},
		{KindBoolean, "maybe"},
		{KindGUID, "nope"},
		{KindBinary, "zz"},
		{KindError, "-2147483649"},
		{KindError, "0x100000000"},
		{KindNone, ""},
	} {
		_, err := ParseValue(tc.kind, tc.in)
		require.Error(t, err, "%s %q", tc.kind, tc.in)
	}
}
