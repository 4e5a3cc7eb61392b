package json

import "github.com/win32asm/json/parser/json/value"

const (
	defaultMaxDepth = 8
)

// ObjectKeyFilterFn filters out object keys during parsing. Key value
// pairs whose keys match the filter are excluded from the parse result.
type ObjectKeyFilterFn func(key string) bool

// Options provide a set of parsing options.
type Options struct {
	maxDepth          int
	objectKeyFilterFn ObjectKeyFilterFn
	unsignedFn        value.UnsignedFactoryFn
}

// NewOptions creates a new set of parsing options.
func NewOptions() *Options {
	return &Options{
		maxDepth:   defaultMaxDepth,
		unsignedFn: value.NewUint64Number,
	}
}

// SetMaxDepth sets the maximum depth eligible for parsing.
func (o *Options) SetMaxDepth(v int) *Options {
	opts := *o
	opts.maxDepth = v
	return &opts
}

// MaxDepth returns the maximum depth eligible for parsing.
func (o *Options) MaxDepth() int { return o.maxDepth }

// SetObjectKeyFilterFn sets the object key filter function.
func (o *Options) SetObjectKeyFilterFn(v ObjectKeyFilterFn) *Options {
	opts := *o
	opts.objectKeyFilterFn = v
	return &opts
}

// ObjectKeyFilterFn returns the object key filter function.
func (o *Options) ObjectKeyFilterFn() ObjectKeyFilterFn { return o.objectKeyFilterFn }

// SetUnsignedFactoryFn sets the factory constructing the unsigned numeric
// kind from unsigned integer literals. Factories may fail, in which case
// the parse is aborted with the factory's error.
func (o *Options) SetUnsignedFactoryFn(v value.UnsignedFactoryFn) *Options {
	opts := *o
	opts.unsignedFn = v
	return &opts
}

// UnsignedFactoryFn returns the factory constructing the unsigned numeric kind.
func (o *Options) UnsignedFactoryFn() value.UnsignedFactoryFn { return o.unsignedFn }
