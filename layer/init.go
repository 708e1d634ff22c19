package layer

import (
	"math"
	"math/rand"

	"github.com/DanastyChen/MINDG/matrix"
)

// xavierUniform fills m with draws from U(-a, a) where
// a = sqrt(6 / (rows + cols)), the fan sum of a 2d tensor
func xavierUniform(m *matrix.Float32Matrix, rng *rand.Rand) {
	r, c := m.Shape()
	bound := float32(math.Sqrt(6.0 / float64(r+c)))
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			m.Set(ridx, cidx, (rng.Float32()*2.0-1.0)*bound)
		}
	}
}

// dropout zeroes each element with probability rate and rescales the
// survivors by 1/(1-rate) so the expected value is unchanged. It is a
// no-op outside of training mode
func dropout(m *matrix.Float32Matrix, rate float32, training bool, rng *rand.Rand) {
	if !training || rate == 0 {
		return
	}
	scale := float32(1.0) / (float32(1.0) - rate)
	r, c := m.Shape()
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			if rng.Float32() < rate {
				m.Set(ridx, cidx, 0)
			} else {
				m.Set(ridx, cidx, m.Get(ridx, cidx)*scale)
			}
		}
	}
}

// relu clamps negative elements to zero in place
func relu(m *matrix.Float32Matrix) {
	r, c := m.Shape()
	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			if m.Get(ridx, cidx) < 0 {
				m.Set(ridx, cidx, 0)
			}
		}
	}
}
