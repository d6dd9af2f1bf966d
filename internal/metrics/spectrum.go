package metrics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// Spectrum is the one-sided amplitude spectrum of a per-frame series.
type Spectrum struct {
	Freqs []float64 // Hz
	Power []float64
}

// PowerSpectrum transforms values sampled at fps frames per second. The
// mean is removed first so bin 0 carries no offset.
func PowerSpectrum(values []float64, fps float64) Spectrum {
	n := len(values)
	if n < 2 || fps <= 0 {
		return Spectrum{}
	}

	mean := stat.Mean(values, nil)
	centered := make([]float64, n)
	for i, v := range values {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	half := n / 2
	s := Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for k := 0; k < half; k++ {
		s.Freqs[k] = float64(k) * fps / float64(n)
		s.Power[k] = cmplx.Abs(coeffs[k]) / float64(n)
	}
	return s
}

// Dominant returns the strongest non-zero frequency and its power.
func (s Spectrum) Dominant() (freq, power float64, ok bool) {
	for k := 1; k < len(s.Power); k++ {
		if s.Power[k] > power {
			freq, power, ok = s.Freqs[k], s.Power[k], true
		}
	}
	return
}
