package format

import (
	"math"
	"testing"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/stretchr/testify/require"
)

func TestLittleEndianHelpers(t *testing.T) {
	buf := make([]byte, 16)
	PutU16(buf, 0, 0xBEEF)
	PutU32(buf, 2, 0xFFFFFFFE)
	PutU64(buf, 6, 0x0102030405060708)

	require.Equal(t, []byte{0xEF, 0xBE}, buf[:2])
	require.Equal(t, uint16(0xBEEF), ReadU16(buf, 0))
	require.Equal(t, int32(-2), ReadI32(buf, 2))
	require.Equal(t, uint32(0xFFFFFFFE), ReadU32(buf, 2))
	require.Equal(t, uint64(0x0102030405060708), ReadU64(buf, 6))

	PutU64(buf, 0, math.Float64bits(1.5))
	require.Equal(t, 1.5, ReadF64(buf, 0))
	PutU32(buf, 8, math.Float32bits(-0.25))
	require.Equal(t, float32(-0.25), ReadF32(buf, 8))
}

func TestGUIDLayout(t *testing.T) {
	g, err := guid.FromString("a5dcbf10-6530-11d2-901f-00c04fb951ed")
	require.NoError(t, err)

	buf := make([]byte, GUIDSize)
	PutGUID(buf, 0, g)
	// Data1 is little-endian on the wire
	require.Equal(t, []byte{0x10, 0xbf, 0xdc, 0xa5}, buf[:4])
	require.Equal(t, g, ReadGUID(buf, 0))
}

func TestDecimalLayout(t *testing.T) {
	buf := make([]byte, DecimalSize)
	d := RawDecimal{Scale: 2, Sign: DecimalNegative, Hi32: 1, Lo64: 42}
	PutDecimal(buf, 0, d)
	require.Equal(t, byte(2), buf[DecimalScaleOff])
	require.Equal(t, byte(0x80), buf[DecimalSignOff])
	require.Equal(t, d, ReadDecimal(buf, 0))
}
