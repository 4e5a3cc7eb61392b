package value

import (
	"github.com/m3db/m3x/instrument"
	"github.com/uber-go/tally"
)

const (
	defaultPoolSize = 4096
)

// PoolOptions provide a set of options for a value pool.
type PoolOptions struct {
	instrumentOpts      instrument.Options
	size                int
	refillLowWatermark  float64
	refillHighWatermark float64
}

// NewPoolOptions create a new set of value pool options.
func NewPoolOptions() *PoolOptions {
	return &PoolOptions{
		instrumentOpts: instrument.NewOptions(),
		size:           defaultPoolSize,
	}
}

// SetInstrumentOptions sets the instrument options.
func (o *PoolOptions) SetInstrumentOptions(v instrument.Options) *PoolOptions {
	opts := *o
	opts.instrumentOpts = v
	return &opts
}

// InstrumentOptions returns the instrument options.
func (o *PoolOptions) InstrumentOptions() instrument.Options {
	return o.instrumentOpts
}

// SetSize sets the pool size.
func (o *PoolOptions) SetSize(v int) *PoolOptions {
	opts := *o
	opts.size = v
	return &opts
}

// Size returns pool size.
func (o *PoolOptions) Size() int { return o.size }

// SetRefillLowWatermark sets the low watermark for refilling the pool.
func (o *PoolOptions) SetRefillLowWatermark(v float64) *PoolOptions {
	opts := *o
	opts.refillLowWatermark = v
	return &opts
}

// RefillLowWatermark returns the low watermark for refilling the pool.
func (o *PoolOptions) RefillLowWatermark() float64 { return o.refillLowWatermark }

// SetRefillHighWatermark sets the high watermark for stop refilling the pool.
func (o *PoolOptions) SetRefillHighWatermark(v float64) *PoolOptions {
	opts := *o
	opts.refillHighWatermark = v
	return &opts
}

// RefillHighWatermark returns the high watermark for stop refilling the pool.
func (o *PoolOptions) RefillHighWatermark() float64 { return o.refillHighWatermark }

// Bucket specifies a bucket of a bucketized pool.
type Bucket struct {
	// Capacity is the size of each element in the bucket.
	Capacity int

	// Count is the number of fixed elements in the bucket.
	Count int

	// Options is an optional override to specify options to use for a bucket,
	// specify nil to use the options specified to the bucketized pool
	// constructor for this bucket.
	Options *PoolOptions
}

// bucketByCapacity is a sortable collection of pool buckets.
type bucketByCapacity []Bucket

func (x bucketByCapacity) Len() int {
	return len(x)
}

func (x bucketByCapacity) Swap(i, j int) {
	x[i], x[j] = x[j], x[i]
}

func (x bucketByCapacity) Less(i, j int) bool {
	return x[i].Capacity < x[j].Capacity
}

type poolMetrics struct {
	free       tally.Gauge
	total      tally.Gauge
	getOnEmpty tally.Counter
	putOnFull  tally.Counter
}

func newPoolMetrics(m tally.Scope) poolMetrics {
	return poolMetrics{
		free:       m.Gauge("free"),
		total:      m.Gauge("total"),
		getOnEmpty: m.Counter("get-on-empty"),
		putOnFull:  m.Counter("put-on-full"),
	}
}
