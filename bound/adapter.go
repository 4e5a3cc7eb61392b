package bound

import (
	"github.com/win32asm/json/parser/json/value"
)

var _ value.Unsigned = Uint64{}

// ToValue wraps a bounds-checked unsigned integer in a document-model
// value tagged as the unsigned numeric kind. It never fails: u already
// satisfies the range invariant.
func ToValue(u Uint64, p *value.Pool) *value.Value {
	return value.NewUnsignedValue(u, p)
}

// FromValue extracts a bounds-checked unsigned integer from a
// document-model value of the unsigned numeric kind. The range check is
// delegated to New, so an out-of-range stored representation surfaces as
// the same out-of-range error raised at construction time. A value of any
// other kind is a kind-mismatch error from the value model.
func FromValue(v *value.Value) (Uint64, error) {
	u, err := v.Unsigned()
	if err != nil {
		return Uint64{}, err
	}
	return New(u.Uint64())
}

// Factory creates a bounds-checked unsigned numeric kind from a raw
// uint64. It satisfies value.UnsignedFactoryFn and is the hook for
// plugging the bounded kind into the JSON parser.
func Factory(v uint64) (value.Unsigned, error) {
	u, err := New(v)
	if err != nil {
		return nil, err
	}
	return u, nil
}
