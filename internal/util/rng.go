package util

// XorShift32 is the only randomness source the simulation is allowed to use.
type XorShift32 struct {
	state uint32
}

func NewXorShift32(seed uint32) *XorShift32 {
	return &XorShift32{state: seed}
}

// SetSeed makes the generator indistinguishable from NewXorShift32(seed).
func (r *XorShift32) SetSeed(seed uint32) { r.state = seed }

func (r *XorShift32) NextUint() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// NextFloat returns state / 2^32 in [0, 1).
func (r *XorShift32) NextFloat() float64 {
	return float64(r.NextUint()) / 4294967296.0
}
