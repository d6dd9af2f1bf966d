package field

import (
	"math/rand"
	"time"
)

// Rand is the randomness source used for generation and jitter.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

func defaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// uniform samples from [lo, hi).
func uniform(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// pick returns an index in [0, n).
func pick(r Rand, n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
