// market/source.go
package market

import "math/rand/v2"

// Source yields the multiplier applied to an instrument's current price on
// each advance. Injecting it keeps price evolution deterministic under test.
type Source interface {
	Multiplier() float64
}

// Walk bounds: a single step moves the price at most 10% either way.
const (
	walkMin  = 0.9
	walkSpan = 0.2
)

// UniformWalk draws multipliers uniformly from [0.9, 1.1].
type UniformWalk struct {
	r *rand.Rand
}

func NewUniformWalk(seed int64) *UniformWalk {
	return &UniformWalk{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)))}
}

func (w *UniformWalk) Multiplier() float64 {
	return walkMin + w.r.Float64()*walkSpan
}
