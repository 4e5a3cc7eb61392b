package bound

import (
	"errors"
	"fmt"
)

// outOfRangeError indicates a raw unsigned value at or above Max was used
// to construct or assign a bounds-checked integer.
type outOfRangeError struct {
	value uint64
}

func newOutOfRangeError(v uint64) error { return outOfRangeError{value: v} }

func (e outOfRangeError) Error() string {
	return fmt.Sprintf("Value %d out of bound.", e.value)
}

// IsOutOfRange returns true if err or any error it wraps was caused by a
// raw unsigned value failing the range check.
func IsOutOfRange(err error) bool {
	var e outOfRangeError
	return errors.As(err, &e)
}

// overflowError indicates a checked arithmetic operation would have
// exceeded Max.
type overflowError struct {
	op      string
	operand int64
	value   uint64
}

func newOverflowError(op string, operand int64, value uint64) error {
	return overflowError{op: op, operand: operand, value: value}
}

func (e overflowError) Error() string {
	return fmt.Sprintf("%s: value %d + %d is out of bound", e.op, e.operand, e.value)
}

// IsOverflow returns true if err or any error it wraps was caused by a
// checked arithmetic operation overflowing the bound.
func IsOverflow(err error) bool {
	var e overflowError
	return errors.As(err, &e)
}
