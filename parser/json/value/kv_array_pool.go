package value

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/uber-go/tally"
)

// KVArrayPool is a pool of kv arrays.
type KVArrayPool struct {
	values              chan KVArray
	alloc               func() KVArray
	size                int
	refillLowWatermark  int
	refillHighWatermark int
	filling             int32
	initialized         int32
	dice                int32
	metrics             poolMetrics
}

// NewKVArrayPool creates a new kv array pool.
func NewKVArrayPool(opts *PoolOptions) *KVArrayPool {
	if opts == nil {
		opts = NewPoolOptions()
	}

	p := &KVArrayPool{
		values: make(chan KVArray, opts.Size()),
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
func (p *KVArrayPool) Init(alloc func() KVArray) {
	if !atomic.CompareAndSwapInt32(&p.initialized, 0, 1) {
		panic(errors.New("pool is already initialized"))
	}

	p.alloc = alloc

	for i := 0; i < cap(p.values); i++ {
		p.values <- p.alloc()
	}

	p.setGauges()
}

// Get gets a kv array from the pool.
func (p *KVArrayPool) Get() KVArray {
	if atomic.LoadInt32(&p.initialized) != 1 {
		panic(errors.New("get before pool is initialized"))
	}

	var v KVArray
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

// Put returns a kv array to pool.
func (p *KVArrayPool) Put(v KVArray) {
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

func (p *KVArrayPool) trySetGauges() {
	if atomic.AddInt32(&p.dice, 1)%100 == 0 {
		p.setGauges()
	}
}

func (p *KVArrayPool) setGauges() {
	p.metrics.free.Update(float64(len(p.values)))
	p.metrics.total.Update(float64(p.size))
}

func (p *KVArrayPool) tryFill() {
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

type kvArrayBucketPool struct {
	capacity int
	pool     *KVArrayPool
}

// BucketizedKVArrayPool is a bucketized pool of kv arrays.
type BucketizedKVArrayPool struct {
	sizesAsc          []Bucket
	buckets           []kvArrayBucketPool
	maxBucketCapacity int
	opts              *PoolOptions
	alloc             func(capacity int) KVArray
	maxAlloc          tally.Counter
}

// NewBucketizedKVArrayPool creates a bucketized kv array pool.
func NewBucketizedKVArrayPool(sizes []Bucket, opts *PoolOptions) *BucketizedKVArrayPool {
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

	return &BucketizedKVArrayPool{
		opts:              opts,
		sizesAsc:          sizesAsc,
		maxBucketCapacity: maxBucketCapacity,
		maxAlloc:          opts.InstrumentOptions().MetricsScope().Counter("alloc-max"),
	}
}

// Init initializes the bucketized pool.
func (p *BucketizedKVArrayPool) Init(alloc func(capacity int) KVArray) {
	buckets := make([]kvArrayBucketPool, len(p.sizesAsc))
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
		buckets[i].pool = NewKVArrayPool(opts)
		buckets[i].pool.Init(func() KVArray {
			return alloc(capacity)
		})
	}
	p.buckets = buckets
	p.alloc = alloc
}

// Get gets a kv array with the given capacity from the pool.
func (p *BucketizedKVArrayPool) Get(capacity int) KVArray {
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

// Put puts a kv array with the given capacity to the pool.
func (p *BucketizedKVArrayPool) Put(v KVArray, capacity int) {
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
