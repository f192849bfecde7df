// Package stimulus reproduces, in Go, the pseudo-random input stream that a
// generated testbench drives into the miter.
//
// The driver seeds std::mt19937 with the run seed and draws rng() & 1 once
// per input per cycle, in canonical input order. MT19937 here is bit-exact
// with std::mt19937, so Vectors(seed, ...) yields the same bits the
// simulator saw.
package stimulus

const (
	stateSize  = 624
	shiftSize  = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	initMult   = 1812433253
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000

	// DefaultSeed is std::mt19937::default_seed.
	DefaultSeed uint32 = 5489
)

// MT19937 is the 32-bit Mersenne Twister. Not safe for concurrent use.
type MT19937 struct {
	mt  [stateSize]uint32
	idx int
}

// NewMT19937 returns a generator seeded like std::mt19937(seed).
func NewMT19937(seed uint32) *MT19937 {
	r := &MT19937{}
	r.Seed(seed)
	return r
}

// Seed resets the generator state.
func (r *MT19937) Seed(seed uint32) {
	r.mt[0] = seed
	for i := 1; i < stateSize; i++ {
		prev := r.mt[i-1]
		r.mt[i] = initMult*(prev^(prev>>30)) + uint32(i)
	}
	r.idx = stateSize
}

// Uint32 returns the next output, as std::mt19937::operator() would.
func (r *MT19937) Uint32() uint32 {
	if r.idx >= stateSize {
		r.twist()
	}
	y := r.mt[r.idx]
	r.idx++

	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18
	return y
}

// Bit returns rng() & 1.
func (r *MT19937) Bit() uint8 {
	return uint8(r.Uint32() & 1)
}

func (r *MT19937) twist() {
	for i := 0; i < stateSize; i++ {
		x := (r.mt[i] & upperMask) | (r.mt[(i+1)%stateSize] & lowerMask)
		xA := x >> 1
		if x&1 != 0 {
			xA ^= matrixA
		}
		r.mt[i] = r.mt[(i+shiftSize)%stateSize] ^ xA
	}
	r.idx = 0
}
