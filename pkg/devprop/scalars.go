package devprop

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/joshuapare/pnpkit/internal/format"
)

// Date is an OLE automation date: days since 1899-12-30, fraction as time of
// day. The float is kept verbatim so round trips are exact.
type Date float64

// Time converts d to UTC.
func (d Date) Time() time.Time { return format.OLEDateToTime(float64(d)) }

// DateOf converts t to a Date.
func DateOf(t time.Time) Date { return Date(format.TimeToOLEDate(t)) }

func (d Date) String() string { return d.Time().Format(time.RFC3339Nano) }

// FileTime is a raw FILETIME: 100ns ticks since 1601-01-01 UTC.
type FileTime uint64

// Time converts f to UTC.
func (f FileTime) Time() time.Time { return format.FiletimeToTime(uint64(f)) }

// FileTimeOf converts t to a FileTime.
func FileTimeOf(t time.Time) FileTime { return FileTime(format.TimeToFiletime(t)) }

func (f FileTime) String() string { return f.Time().Format(time.RFC3339Nano) }

// ErrorCode is a signed 32-bit Win32 status held by a DEVPROP_TYPE_ERROR property.
type ErrorCode int32

func (e ErrorCode) String() string { return "0x" + strconv.FormatUint(uint64(uint32(e)), 16) }

// Decimal is a 96-bit scaled integer in the DECIMAL layout:
// value = (-1)^Negative * (Hi<<64 | Lo) / 10^Scale.
type Decimal struct {
	Scale    uint8
	Negative bool
	Hi       uint32
	Lo       uint64
}

var errDecimalRange = errors.New("devprop: decimal out of range")

// NewDecimal builds a Decimal from an integer coefficient and a scale.
func NewDecimal(coeff *big.Int, scale uint8) (Decimal, error) {
	if scale > format.DecimalMaxScale {
		return Decimal{}, fmt.Errorf("%w: scale %d", errDecimalRange, scale)
	}
	abs := new(big.Int).Abs(coeff)
	if abs.BitLen() > 96 {
		return Decimal{}, fmt.Errorf("%w: %s", errDecimalRange, coeff)
	}
	lo := new(big.Int).And(abs, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(abs, 64)
	return Decimal{
		Scale:    scale,
		Negative: coeff.Sign() < 0,
		Hi:       uint32(hi.Uint64()),
		Lo:       lo.Uint64(),
	}, nil
}

// Coefficient returns the signed unscaled integer.
func (d Decimal) Coefficient() *big.Int {
	c := new(big.Int).SetUint64(uint64(d.Hi))
	c.Lsh(c, 64)
	c.Or(c, new(big.Int).SetUint64(d.Lo))
	if d.Negative {
		c.Neg(c)
	}
	return c
}

// Rat returns the exact value.
func (d Decimal) Rat() *big.Rat {
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale)), nil)
	return new(big.Rat).SetFrac(d.Coefficient(), den)
}

// String renders the exact value with Scale fractional digits.
func (d Decimal) String() string {
	return d.Rat().FloatString(int(d.Scale))
}

func (d Decimal) raw() format.RawDecimal {
	r := format.RawDecimal{Scale: d.Scale, Hi32: d.Hi, Lo64: d.Lo}
	if d.Negative {
		r.Sign = format.DecimalNegative
	}
	return r
}

func decimalFromRaw(r format.RawDecimal) Decimal {
	return Decimal{
		Scale:    r.Scale,
		Negative: r.Sign&format.DecimalNegative != 0,
		Hi:       r.Hi32,
		Lo:       r.Lo64,
	}
}
