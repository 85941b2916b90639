package combat

import "math"

const (
	fnvOffset uint32 = 2166136261
	fnvPrime  uint32 = 16777619
)

type fnv32 uint32

func (h *fnv32) mix(v uint32) {
	*h = fnv32((uint32(*h) ^ v) * fnvPrime)
}

// quantize keeps two decimals so that the hash tracks state, not float noise
// below the display precision.
func quantize(v float64) uint32 {
	return uint32(int32(math.Round(v * 100)))
}

// Checksum folds the observable match state into a 32-bit FNV-1a style
// hash. Equal seeds and inputs yield equal checksums at every tick.
func (s *Sim) Checksum() uint32 {
	st := s.st
	h := fnv32(fnvOffset)
	h.mix(uint32(st.tick))
	h.mix(uint32(st.entityCount))
	h.mix(quantize(st.coreHp[TeamLeft]))
	h.mix(quantize(st.coreHp[TeamRight]))
	h.mix(uint32(st.aliveCount[TeamLeft]))
	h.mix(uint32(st.aliveCount[TeamRight]))

	for i := 0; i < st.entityCount; i++ {
		if st.alive[i] == 0 {
			continue
		}
		h.mix(uint32(i))
		h.mix(uint32(st.team[i]))
		h.mix(uint32(st.layer[i]))
		h.mix(quantize(float64(st.x[i])))
		h.mix(quantize(float64(st.y[i])))
		h.mix(quantize(float64(st.hp[i])))
		h.mix(quantize(float64(st.shield[i])))
		h.mix(uint32(st.target[i]))
	}

	p := &st.projectiles
	for i := range p.active {
		if p.active[i] == 0 {
			continue
		}
		h.mix(uint32(i))
		h.mix(uint32(p.team[i]))
		h.mix(quantize(float64(p.x[i])))
		h.mix(quantize(float64(p.y[i])))
		h.mix(quantize(float64(p.remaining[i])))
	}
	return uint32(h)
}
