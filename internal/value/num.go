package value

import (
	"math/big"
	"strconv"
)

// Num is the payload carried by a NUMBER Value. It distinguishes values that
// must be compared at arbitrary precision (anything that came in as a
// json.Number, a *big.Float, *big.Int or *big.Rat) from plain float64
// literals, because §4.4.2 of the match spec requires the engine to never
// silently coerce an arbitrary-precision operand down to a double.
//
// No third-party arbitrary-precision decimal library appears anywhere in the
// example corpus (see DESIGN.md) so this leans on the standard library's
// math/big, the same way the teacher's own OAuth token validator does.
type Num struct {
	big   *big.Float
	f64   float64
	isBig bool
}

// FromFloat64 wraps a plain IEEE-754 double.
func FromFloat64(f float64) Num {
	return Num{f64: f}
}

// FromInt64 wraps a plain integer as a double-precision number.
func FromInt64(i int64) Num {
	return Num{f64: float64(i)}
}

// FromBigFloat wraps an arbitrary-precision number.
func FromBigFloat(b *big.Float) Num {
	return Num{big: b, isBig: true}
}

// FromBigInt wraps an arbitrary-precision integer.
func FromBigInt(b *big.Int) Num {
	return Num{big: new(big.Float).SetInt(b), isBig: true}
}

// FromBigRat wraps an arbitrary-precision rational.
func FromBigRat(r *big.Rat) Num {
	f, _ := new(big.Float).SetPrec(200).SetString(r.FloatString(100))
	return Num{big: f, isBig: true}
}

// FromNumberString parses a decimal literal (as produced by an
// encoding/json decoder configured with UseNumber) at arbitrary precision.
// Falls back to a plain float64 if the text cannot be parsed at all.
func FromNumberString(s string) Num {
	if f, ok := new(big.Float).SetPrec(200).SetString(s); ok {
		return Num{big: f, isBig: true}
	}
	f, _ := strconv.ParseFloat(s, 64)
	return Num{f64: f}
}

// IsBig reports whether this number carries arbitrary precision.
func (n Num) IsBig() bool { return n.isBig }

// AsBigFloat returns the number as a *big.Float regardless of how it was
// constructed, widening plain doubles on demand.
func (n Num) AsBigFloat() *big.Float {
	if n.isBig {
		return n.big
	}
	return big.NewFloat(n.f64)
}

// Float64 returns the best double-precision approximation of the number.
func (n Num) Float64() float64 {
	if n.isBig {
		f, _ := n.big.Float64()
		return f
	}
	return n.f64
}

// Equal implements spec.md §4.4.2's NUMBER row: arbitrary-precision
// comparison (via big.Float.Cmp) when either operand is arbitrary
// precision, double comparison otherwise.
func (n Num) Equal(o Num) bool {
	if n.isBig || o.isBig {
		return n.AsBigFloat().Cmp(o.AsBigFloat()) == 0
	}
	return n.f64 == o.f64
}

// String renders the number the way it would appear in a failure message.
func (n Num) String() string {
	if n.isBig {
		return n.big.Text('g', -1)
	}
	return strconv.FormatFloat(n.f64, 'g', -1, 64)
}
