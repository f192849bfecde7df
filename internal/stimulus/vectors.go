package stimulus

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Vector is the stimulus applied in one cycle. Bits[i] drives Inputs[i].
type Vector struct {
	Cycle  uint32   `json:"cycle"`
	Inputs []string `json:"-"`
	Bits   []uint8  `json:"bits"`
}

// String renders the vector as "cycle 3: a=1 b=0".
func (v Vector) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cycle %d:", v.Cycle)
	for i, bit := range v.Bits {
		fmt.Fprintf(&b, " %s=%d", v.Inputs[i], bit)
	}
	return b.String()
}

// MarshalJSON writes Bits as a number array rather than base64.
func (v Vector) MarshalJSON() ([]byte, error) {
	bits := make([]int, len(v.Bits))
	for i, b := range v.Bits {
		bits[i] = int(b)
	}
	return json.Marshal(struct {
		Cycle uint32 `json:"cycle"`
		Bits  []int  `json:"bits"`
	}{v.Cycle, bits})
}

// Assignments maps each input to its bit.
func (v Vector) Assignments() map[string]uint8 {
	out := make(map[string]uint8, len(v.Bits))
	for i, bit := range v.Bits {
		out[v.Inputs[i]] = bit
	}
	return out
}

// Sequence yields the per-cycle stimulus for a fixed input order.
type Sequence struct {
	rng    *MT19937
	inputs []string
	cycle  uint32
}

// NewSequence starts the stimulus stream for seed at cycle 0.
func NewSequence(inputs []string, seed uint32) *Sequence {
	return &Sequence{rng: NewMT19937(seed), inputs: inputs}
}

// Next draws one bit per input, in order, and advances the cycle.
func (s *Sequence) Next() Vector {
	v := Vector{Cycle: s.cycle, Inputs: s.inputs, Bits: make([]uint8, len(s.inputs))}
	for i := range s.inputs {
		v.Bits[i] = s.rng.Bit()
	}
	s.cycle++
	return v
}

// Vectors returns the stimulus for cycles [0, cycles).
func Vectors(inputs []string, seed, cycles uint32) []Vector {
	seq := NewSequence(inputs, seed)
	out := make([]Vector, 0, cycles)
	for i := uint32(0); i < cycles; i++ {
		out = append(out, seq.Next())
	}
	return out
}

// At returns the stimulus of a single cycle. The generator state is
// sequential, so earlier cycles are still drawn.
func At(inputs []string, seed, cycle uint32) Vector {
	seq := NewSequence(inputs, seed)
	for i := uint32(0); i < cycle; i++ {
		seq.Next()
	}
	return seq.Next()
}
