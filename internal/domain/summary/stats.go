package summary

import "math"

// series collects the non-null observations of one column.
type series []float64

func (s series) mean() float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// stdev is the sample (n-1) standard deviation; 0 below two observations.
func (s series) stdev() float64 {
	if len(s) < 2 {
		return 0
	}
	m := s.mean()
	var sq float64
	for _, v := range s {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(s)-1))
}

// ratio is the weighted rate num/den, 0 when den is 0 or the result is not finite.
type ratio struct {
	num, den float64
}

func (r *ratio) add(num, den float64) {
	r.num += num
	r.den += den
}

func (r ratio) value() float64 {
	return safeDiv(r.num, r.den)
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// round is half-to-even rounding at the given number of decimals.
func round(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow10(decimals)
	out := math.RoundToEven(v*p) / p
	if out == 0 {
		return 0
	}
	return out
}
