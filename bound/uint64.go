// Package bound provides a bounds-checked unsigned integer restricted to
// the range of its signed counterpart, for use as the unsigned numeric
// kind of the JSON document-value model.
package bound

import (
	"math"

	"github.com/win32asm/json/parser/json/value"
	"github.com/win32asm/json/x/compare"
)

// Max is the exclusive upper bound of a Uint64: the maximum value
// representable by the signed integer type of the same bit width. Stored
// values are strictly less than Max, leaving one unit of headroom for
// downstream signed consumers.
const Max = uint64(math.MaxInt64)

const checkedAddContext = "bound.Uint64.CheckedAddInt64"

// Uint64 is an unsigned 64-bit integer whose value is always strictly
// less than Max. The zero value is valid and holds 0. Out-of-range values
// are rejected at construction and assignment time rather than surfacing
// later during serialization.
type Uint64 struct {
	v uint64
}

// New creates a bounds-checked unsigned integer from a raw uint64. It
// fails with an out-of-range error if v >= Max.
func New(v uint64) (Uint64, error) {
	if v >= Max {
		return Uint64{}, newOutOfRangeError(v)
	}
	return Uint64{v: v}, nil
}

// MustNew creates a bounds-checked unsigned integer from a raw uint64,
// or panics if the value is out of range.
func MustNew(v uint64) Uint64 {
	u, err := New(v)
	if err != nil {
		panic(err)
	}
	return u
}

// Assign assigns a raw uint64 to u in place under the same contract as
// New. On failure u is left unchanged.
func (u *Uint64) Assign(v uint64) error {
	if v >= Max {
		return newOutOfRangeError(v)
	}
	u.v = v
	return nil
}

// Uint64 returns the stored value as a native uint64.
func (u Uint64) Uint64() uint64 { return u.v }

// Uint32 returns the stored value truncated to a native uint32. The
// conversion is exact only for correspondingly small values; it exists to
// satisfy generic digit-extraction code operating on reduced remainders.
func (u Uint64) Uint32() uint32 { return uint32(u.v) }

// Uint16 returns the stored value truncated to a native uint16, under the
// same caveat as Uint32.
func (u Uint64) Uint16() uint16 { return uint16(u.v) }

// Int64 returns the stored value as a native int64. The conversion is
// always exact since the stored value is strictly less than Max.
func (u Uint64) Int64() int64 { return int64(u.v) }

// Compare compares the stored value against a raw uint64, returning -1,
// 0 or 1.
func (u Uint64) Compare(v uint64) int { return compare.Uint64Compare(u.v, v) }

// Divide returns the stored value divided by x. The divisor must be
// nonzero. The quotient never exceeds the stored value so no re-checking
// is performed.
func (u Uint64) Divide(x uint64) value.Unsigned { return Uint64{v: u.v / x} }

// DivideAssign divides the stored value by x in place. The divisor must
// be nonzero.
func (u *Uint64) DivideAssign(x uint64) { u.v /= x }

// Remainder returns the remainder of dividing the stored value by x as a
// native signed integer. The remainder is always smaller than the divisor
// and therefore always in range. The divisor must be nonzero.
func (u Uint64) Remainder(x uint64) int64 { return int64(u.v % x) }

// AddChar adds the stored value to a character code and returns the
// resulting character. Both operands must be small enough for the result
// to fit a byte; the call sites converting decimal digits to printable
// characters guarantee that.
func (u Uint64) AddChar(c byte) byte { return byte(u.v + uint64(c)) }

// CheckedAddInt64 adds a signed delta to the stored value, failing with
// an overflow error rather than wrapping if a positive delta would push
// the result past Max.
func (u Uint64) CheckedAddInt64(x int64) (int64, error) {
	if x > 0 && int64(Max)-int64(u.v) < x {
		return 0, newOverflowError(checkedAddContext, x, u.v)
	}
	return int64(u.v) + x, nil
}
