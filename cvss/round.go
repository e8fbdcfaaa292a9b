package cvss

import "math"

// halfEpsilon lifts products such as 1.7499999999999998 onto the half they
// stand for before rounding.
const halfEpsilon = 1e-6

// round1 rounds half away from zero to one decimal, as the 2.0 and 4.0
// reference calculators do.
func round1(x float64) float64 {
	return math.Round(x*10+halfEpsilon) / 10
}

// roundUp30 is the CVSS 3.0 Round up: the smallest one-decimal number not
// below x.
func roundUp30(x float64) float64 {
	return round1(math.Ceil(x*10) / 10)
}

// roundUp31 is the CVSS 3.1 Roundup, which works on an integer scaled to
// five decimals so that values such as 4.000000000000001 are not pushed up
// to the next decimal.
func roundUp31(x float64) float64 {
	scaled := math.Round(x * 100000)
	if math.Mod(scaled, 10000) == 0 {
		return scaled / 100000.0
	}
	return (math.Floor(scaled/10000) + 1) / 10.0
}

func clampScore(x float64) float64 {
	return math.Min(10, math.Max(0, x))
}
