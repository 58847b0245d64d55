package wordpack

import "math"

// Utilities for computing x*log2(x), the building block of the entropy
// estimate. Both treat 0*log2(0) as 0.

func xlog2(x float64) float64 {
	if x == 0 {
		return 0
	}
	return x * math.Log2(x)
}

const (
	expMask  = 0x7ff << 52
	expBias  = 1023
	twoOnLn2 = 2 / math.Ln2
)

// fastXLog2 approximates x*log2(x) for x >= 0. The exponent comes straight
// from the float bits; the mantissa y is brought into [sqrt(1/2), sqrt(2))
// and log2(y) is evaluated as 2/ln2 * atanh(t), t = (y-1)/(y+1), using the
// odd series up to t^9. |t| <= 0.172 there, which keeps the absolute error
// in log2 around 1e-9.
func fastXLog2(x float64) float64 {
	if x <= 0 {
		if x == 0 {
			return 0
		}
		return math.NaN()
	}

	bits := math.Float64bits(x)
	exp := int((bits&expMask)>>52) - expBias
	y := math.Float64frombits(bits&^expMask | expBias<<52)
	if y > math.Sqrt2 {
		y /= 2
		exp++
	}

	t := (y - 1) / (y + 1)
	t2 := t * t
	s := t * (1 + t2*(1.0/3+t2*(1.0/5+t2*(1.0/7+t2*(1.0/9)))))
	return x * (s*twoOnLn2 + float64(exp))
}
