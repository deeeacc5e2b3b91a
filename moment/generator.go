// Package moment computes closed-form raw moments of the Gaussian
// uncertainty parameter and propagates them through powers of the obstacle
// polynomial, producing the first and second moments of the induced spatial
// random field.
package moment

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

const imagTol = 1.e-9

var (
	ErrVariance    = errors.New("moment: variance must be positive")
	ErrImagResidue = errors.New("moment: non-negligible imaginary residue in moment closed form")
	ErrMomentZero  = errors.New("moment: zeroth moment differs from 1")
)

// Gaussian parameterizes the uncertainty w ~ N(Mean, Variance).
type Gaussian struct {
	Mean, Variance float64
}

// Moments returns m[0..maxK] with m[k] = E[w^k], evaluated through the
// closed form
//
//	m[k] = (sigma*sqrt(2))^k * (-i)^k * U(-k/2, 1/2, -mu^2/(2 sigma^2))
//
// where U is Kummer's confluent hypergeometric function of the second kind.
// U at these half-integer parameters reduces to a Hermite polynomial of the
// imaginary argument t = i*mu/(sigma*sqrt(2)), so the whole chain runs on
// complex128 and must land back on the real axis; a residue above imagTol is
// treated as a computation error rather than truncated silently.
func (d Gaussian) Moments(maxK int) (m []float64, err error) {
	if d.Variance <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrVariance, d.Variance)
	}
	var (
		sigma = math.Sqrt(d.Variance)
		s2    = sigma * math.Sqrt2
		t     = complex(0, d.Mean/s2) // t^2 = -mu^2/(2 sigma^2)
	)
	m = make([]float64, maxK+1)
	for k := 0; k <= maxK; k++ {
		mk := cmplx.Pow(complex(s2, 0), complex(float64(k), 0)) *
			cmplx.Pow(complex(0, -1), complex(float64(k), 0)) *
			kummerU(k, t)
		if math.Abs(imag(mk)) > imagTol*math.Max(1, math.Abs(real(mk))) {
			return nil, fmt.Errorf("%w: order %d, residue %g", ErrImagResidue, k, imag(mk))
		}
		m[k] = real(mk)
	}
	if math.Abs(m[0]-1) > imagTol {
		return nil, fmt.Errorf("%w: m[0] = %g", ErrMomentZero, m[0])
	}
	return
}

// kummerU evaluates U(-k/2, 1/2, t^2) through the Hermite reduction
// U(-k/2, 1/2, t^2) = 2^-k H_k(t), with the physicists' recurrence
// H_n = 2 t H_{n-1} - 2 (n-1) H_{n-2}.
func kummerU(k int, t complex128) complex128 {
	var (
		hm2 = complex(1, 0) // H_0
		hm1 = 2 * t         // H_1
	)
	h := hm2
	if k >= 1 {
		h = hm1
	}
	for n := 2; n <= k; n++ {
		h = 2*t*hm1 - complex(2*float64(n-1), 0)*hm2
		hm2, hm1 = hm1, h
	}
	return h * cmplx.Pow(2, complex(-float64(k), 0))
}
