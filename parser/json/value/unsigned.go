package value

import (
	"github.com/win32asm/json/x/compare"
)

// Unsigned is a pluggable unsigned numeric kind. The value model holds
// unsigned numbers behind this capability boundary so that a consumer may
// swap in its own representation (e.g. one enforcing a tighter range)
// without changes to parsing, tree construction or serialization. All
// generic numeric code in this package operates exclusively through these
// methods.
type Unsigned interface {
	// Uint64 returns the stored value as a native uint64.
	Uint64() uint64

	// Uint32 returns the stored value truncated to a native uint32.
	Uint32() uint32

	// Uint16 returns the stored value truncated to a native uint16.
	Uint16() uint16

	// Int64 returns the stored value as a native int64 for sign-aware
	// consumers.
	Int64() int64

	// Compare compares the stored value against a raw uint64, returning
	// -1, 0 or 1.
	Compare(v uint64) int

	// Divide returns the stored value divided by x. The divisor must be
	// nonzero.
	Divide(x uint64) Unsigned

	// Remainder returns the remainder of dividing the stored value by x
	// as a native signed integer. The divisor must be nonzero.
	Remainder(x uint64) int64

	// AddChar adds the stored value to a character code and returns the
	// resulting character. Both operands must be small enough for the
	// result to fit a byte; digit-to-printable-char conversion is the
	// intended use.
	AddChar(c byte) byte

	// CheckedAddInt64 adds a signed delta to the stored value, failing
	// rather than wrapping if the result would exceed the kind's range.
	CheckedAddInt64(x int64) (int64, error)
}

// UnsignedFactoryFn creates an unsigned numeric kind from a raw uint64.
// Factories may fail, e.g. when the kind restricts its values to a
// sub-range of uint64.
type UnsignedFactoryFn func(v uint64) (Unsigned, error)

// Uint64Number is the default unsigned numeric kind covering the full
// uint64 range.
type Uint64Number uint64

var _ Unsigned = Uint64Number(0)

// NewUint64Number creates a default unsigned numeric kind. It never fails.
func NewUint64Number(v uint64) (Unsigned, error) { return Uint64Number(v), nil }

// Uint64 returns the stored value as a native uint64.
func (n Uint64Number) Uint64() uint64 { return uint64(n) }

// Uint32 returns the stored value truncated to a native uint32.
func (n Uint64Number) Uint32() uint32 { return uint32(n) }

// Uint16 returns the stored value truncated to a native uint16.
func (n Uint64Number) Uint16() uint16 { return uint16(n) }

// Int64 returns the stored value as a native int64.
func (n Uint64Number) Int64() int64 { return int64(n) }

// Compare compares the stored value against a raw uint64.
func (n Uint64Number) Compare(v uint64) int { return compare.Uint64Compare(uint64(n), v) }

// Divide returns the stored value divided by x.
func (n Uint64Number) Divide(x uint64) Unsigned { return Uint64Number(uint64(n) / x) }

// Remainder returns the remainder of dividing the stored value by x.
func (n Uint64Number) Remainder(x uint64) int64 { return int64(uint64(n) % x) }

// AddChar adds the stored value to a character code.
func (n Uint64Number) AddChar(c byte) byte { return byte(uint64(n) + uint64(c)) }

// CheckedAddInt64 adds a signed delta to the stored value. The default
// kind performs no range checking and relies on native wrapping semantics.
func (n Uint64Number) CheckedAddInt64(x int64) (int64, error) {
	return int64(n) + x, nil
}

// maxUint64DecimalDigits is the number of decimal digits in the maximum
// uint64 value.
const maxUint64DecimalDigits = 20

// appendUnsignedDecimal appends the canonical decimal form of u to dst
// using only the Unsigned capability operations: repeated division by 10
// extracts digits, and the final single-digit value is converted to its
// printable character by adding the code for '0'.
func appendUnsignedDecimal(dst []byte, u Unsigned) []byte {
	var buf [maxUint64DecimalDigits]byte
	i := len(buf)
	for u.Compare(10) >= 0 {
		i--
		buf[i] = byte(u.Remainder(10)) + '0'
		u = u.Divide(10)
	}
	i--
	buf[i] = u.AddChar('0')
	return append(dst, buf[i:]...)
}
