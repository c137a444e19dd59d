package balloc

// Config holds the allocator's tunables. The zero value is not usable;
// start from DefaultConfig or one of the named presets.
type Config struct {
	// MinBlockSize is the smallest pooled block size (order 0), in bytes.
	// Must be a power of two.
	MinBlockSize uint64

	// MaxOrder is the highest free-list order. The pool's maximum block
	// size is MinBlockSize << MaxOrder.
	MaxOrder int

	// InitialBlocks is how many maximum-order blocks are carved from the
	// reserved region at first-use initialization.
	InitialBlocks int

	// MaxSize is the largest single request (in user bytes, excluding
	// the header) the allocator will ever attempt to serve.
	MaxSize uint64

	// BreakReservation bounds the OS Memory Gate's simulated program
	// break arena. Zero uses the gate's own default.
	BreakReservation uintptr
}

// DefaultConfig matches spec's fixed tunables: MIN_BLOCK=128,
// MAX_ORDER=10, INITIAL_BLOCKS=32, MAX_SIZE=100_000_000.
var DefaultConfig = Config{
	MinBlockSize:  128,
	MaxOrder:      10,
	InitialBlocks: 32,
	MaxSize:       100_000_000,
}

// ConfigSmallPool shrinks the pool and request ceiling for fast unit
// tests: 8 maximum-order blocks of 8KiB each, a 100,000-byte request ceiling.
var ConfigSmallPool = Config{
	MinBlockSize:  64,
	MaxOrder:      7,
	InitialBlocks: 8,
	MaxSize:       100_000,
}

// ConfigLargePool widens InitialBlocks for stress and exhaustion tests
// that want headroom before hitting the pool ceiling.
var ConfigLargePool = Config{
	MinBlockSize:  128,
	MaxOrder:      10,
	InitialBlocks: 256,
	MaxSize:       100_000_000,
}
