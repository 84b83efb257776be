package format

// DECIMAL layout (16 bytes):
//
//	0x00  wReserved uint16
//	0x02  scale     byte   (power of ten divisor, 0..28)
//	0x03  sign      byte   (0x80 = negative)
//	0x04  Hi32      uint32
//	0x08  Lo64      uint64
const (
	DecimalSize     = 16
	DecimalScaleOff = 0x02
	DecimalSignOff  = 0x03
	DecimalHi32Off  = 0x04
	DecimalLo64Off  = 0x08
	DecimalNegative = 0x80
	DecimalMaxScale = 28
)

// RawDecimal is the decoded DECIMAL structure.
type RawDecimal struct {
	Scale uint8
	Sign  uint8
	Hi32  uint32
	Lo64  uint64
}

// ReadDecimal decodes the DECIMAL at off.
func ReadDecimal(b []byte, off int) RawDecimal {
	return RawDecimal{
		Scale: b[off+DecimalScaleOff],
		Sign:  b[off+DecimalSignOff],
		Hi32:  ReadU32(b, off+DecimalHi32Off),
		Lo64:  ReadU64(b, off+DecimalLo64Off),
	}
}

// PutDecimal encodes d at off; the reserved word is written as zero.
func PutDecimal(b []byte, off int, d RawDecimal) {
	PutU16(b, off, 0)
	b[off+DecimalScaleOff] = d.Scale
	b[off+DecimalSignOff] = d.Sign
	PutU32(b, off+DecimalHi32Off, d.Hi32)
	PutU64(b, off+DecimalLo64Off, d.Lo64)
}
