// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// kernelCutoff is the number of standard deviations at which the
// sampled Gaussian kernel is truncated.
const kernelCutoff = 4

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// convolve returns the full linear convolution of xs and k, which has
// length len(xs)+len(k)-1.
func convolve(xs, k []float64) []float64 {
	n := len(xs) + len(k) - 1
	size := nextPow2(n)
	fft := fourier.NewFFT(size)

	a := make([]float64, size)
	copy(a, xs)
	b := make([]float64, size)
	copy(b, k)
	ca := fft.Coefficients(nil, a)
	cb := fft.Coefficients(nil, b)
	for i := range ca {
		ca[i] *= cb[i]
	}

	// Sequence is unnormalized.
	out := fft.Sequence(nil, ca)[:n]
	scale := 1 / float64(size)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// smooth convolves counts with a Gaussian whose standard deviation is
// sigma grid steps. counts is reflected about its first and last
// points, so the boundaries neither lose nor gain mass. The result has
// the same length as counts and is non-negative.
func smooth(counts []float64, sigma float64) []float64 {
	n := len(counts)
	k := int(math.Ceil(kernelCutoff * sigma))
	if k < 1 {
		k = 1
	}
	kernel := make([]float64, 2*k+1)
	for i := range kernel {
		d := float64(i-k) / sigma
		kernel[i] = math.Exp(-0.5 * d * d)
	}

	pad := k
	if pad > n-1 {
		pad = n - 1
	}
	ext := make([]float64, n+2*pad)
	copy(ext[pad:], counts)
	for i := 1; i <= pad; i++ {
		ext[pad-i] = counts[i]
		ext[pad+n-1+i] = counts[n-1-i]
	}

	full := convolve(ext, kernel)
	out := make([]float64, n)
	copy(out, full[pad+k:pad+k+n])
	for i, y := range out {
		// FFT round-off can leave tiny negative values in
		// empty regions.
		if y < 0 {
			out[i] = 0
		}
	}
	return out
}
