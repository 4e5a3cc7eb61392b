package value

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/uber-go/tally"
)

// ArrayPool is a pool of value arrays.
type ArrayPool struct {
	values              chan Array
	alloc               func() Array
	size                int
	refillLowWatermark  int
	refillHighWatermark int
	filling             int32
	initialized         int32
	dice                int32
	metrics             poolMetrics
}

// NewArrayPool creates a new value array pool.
func NewArrayPool(opts *PoolOptions) *ArrayPool {
	if opts == nil {
		opts = NewPoolOptions()
	}

	p := &ArrayPool{
		values: make(chan Array, opts.Size()),
		size:   opts.Size(),
		refillLowWatermark: int(math.Ceil(
			opts.RefillLowWatermark() * float64(opts.Size()))),
		refillHighWatermark: int(math.Ceil(
			opts.RefillHighWatermark() * float64(opts.Size()))),
		metrics: newPoolMetrics(opts.InstrumentOptions().MetricsScope()),
	}

	p.setGauges()

	return p
}

// Init initializes the pool.
func (p *ArrayPool) Init(alloc func() Array) {
	if !atomic.CompareAndSwapInt32(&p.initialized, 0, 1) {
		panic(errors.New("pool is already initialized"))
	}

	p.alloc = alloc

	for i := 0; i < cap(p.values); i++ {
		p.values <- p.alloc()
	}

	p.setGauges()
}

// Get gets a value array from the pool.
func (p *ArrayPool) Get() Array {
	if atomic.LoadInt32(&p.initialized) != 1 {
		panic(errors.New("get before pool is initialized"))
	}

	var v Array
	select {
	case v = <-p.values:
	default:
		v = p.alloc()
		p.metrics.getOnEmpty.Inc(1)
	}

	p.trySetGauges()

	if p.refillLowWatermark > 0 && len(p.values) <= p.refillLowWatermark {
		p.tryFill()
	}

	return v
}

// Put returns a value array to pool.
func (p *ArrayPool) Put(v Array) {
	if atomic.LoadInt32(&p.initialized) != 1 {
		panic(errors.New("put before pool is initialized"))
	}

	select {
	case p.values <- v:
	default:
		p.metrics.putOnFull.Inc(1)
	}

	p.trySetGauges()
}

func (p *ArrayPool) trySetGauges() {
	if atomic.AddInt32(&p.dice, 1)%100 == 0 {
		p.setGauges()
	}
}

func (p *ArrayPool) setGauges() {
	p.metrics.free.Update(float64(len(p.values)))
	p.metrics.total.Update(float64(p.size))
}

func (p *ArrayPool) tryFill() {
	if !atomic.CompareAndSwapInt32(&p.filling, 0, 1) {
		return
	}

	go func() {
		defer atomic.StoreInt32(&p.filling, 0)

		for len(p.values) < p.refillHighWatermark {
			select {
			case p.values <- p.alloc():
			default:
				return
			}
		}
	}()
}

type arrayBucketPool struct {
	capacity int
	pool     *ArrayPool
}

// BucketizedArrayPool is a bucketized pool of value arrays.
type BucketizedArrayPool struct {
	sizesAsc          []Bucket
	buckets           []arrayBucketPool
	maxBucketCapacity int
	opts              *PoolOptions
	alloc             func(capacity int) Array
	maxAlloc          tally.Counter
}

// NewBucketizedArrayPool creates a bucketized value array pool.
func NewBucketizedArrayPool(sizes []Bucket, opts *PoolOptions) *BucketizedArrayPool {
	if opts == nil {
		opts = NewPoolOptions()
	}
	if sizes == nil {
		sizes = defaultBuckets
	}

	sizesAsc := make([]Bucket, len(sizes))
	copy(sizesAsc, sizes)
	sort.Sort(bucketByCapacity(sizesAsc))

	var maxBucketCapacity int
	if len(sizesAsc) != 0 {
		maxBucketCapacity = sizesAsc[len(sizesAsc)-1].Capacity
	}

	return &BucketizedArrayPool{
		opts:              opts,
		sizesAsc:          sizesAsc,
		maxBucketCapacity: maxBucketCapacity,
		maxAlloc:          opts.InstrumentOptions().MetricsScope().Counter("alloc-max"),
	}
}

// Init initializes the bucketized pool.
func (p *BucketizedArrayPool) Init(alloc func(capacity int) Array) {
	buckets := make([]arrayBucketPool, len(p.sizesAsc))
	for i := range p.sizesAsc {
		size := p.sizesAsc[i].Count
		capacity := p.sizesAsc[i].Capacity

		opts := p.opts
		if perBucketOpts := p.sizesAsc[i].Options; perBucketOpts != nil {
			opts = perBucketOpts
		}

		opts = opts.SetSize(size)
		iOpts := opts.InstrumentOptions()
		opts = opts.SetInstrumentOptions(iOpts.SetMetricsScope(iOpts.MetricsScope().Tagged(map[string]string{
			"bucket-capacity": fmt.Sprintf("%d", capacity),
		})))

		buckets[i].capacity = capacity
		buckets[i].pool = NewArrayPool(opts)
		buckets[i].pool.Init(func() Array {
			return alloc(capacity)
		})
	}
	p.buckets = buckets
	p.alloc = alloc
}

// Get gets a value array with the given capacity from the pool.
func (p *BucketizedArrayPool) Get(capacity int) Array {
	if capacity > p.maxBucketCapacity {
		p.maxAlloc.Inc(1)
		return p.alloc(capacity)
	}
	for i := range p.buckets {
		if p.buckets[i].capacity >= capacity {
			return p.buckets[i].pool.Get()
		}
	}
	return p.alloc(capacity)
}

// Put puts a value array with the given capacity to the pool.
func (p *BucketizedArrayPool) Put(v Array, capacity int) {
	if capacity > p.maxBucketCapacity {
		return
	}

	for i := len(p.buckets) - 1; i >= 0; i-- {
		if capacity >= p.buckets[i].capacity {
			p.buckets[i].pool.Put(v)
			return
		}
	}
}

// defaultBuckets are the default buckets used by bucketized pools when
// no sizes are specified.
var defaultBuckets = []Bucket{
	{Capacity: 8, Count: 1024},
	{Capacity: 16, Count: 512},
	{Capacity: 32, Count: 256},
	{Capacity: 64, Count: 128},
}
