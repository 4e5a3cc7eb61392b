package compare

// Uint64CompareFn compares two uint64 values.
type Uint64CompareFn func(v1, v2 uint64) int

// Uint64Compare compares two uint64 values, and returns
// * -1 if v1 < v2
// * 0 if v1 == v2
// * 1 if v1 > v2
func Uint64Compare(v1, v2 uint64) int {
	if v1 < v2 {
		return -1
	}
	if v1 > v2 {
		return 1
	}
	return 0
}

// ReverseUint64Compare reverse compares two uint64 values.
func ReverseUint64Compare(v1, v2 uint64) int { return Uint64Compare(v2, v1) }
