package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal is the two-tailed critical value of the standard normal for a
// confidence given in percent; ZVal(95) is about 1.96.
func ZVal(confidence float64) float64 {
	return distuv.UnitNormal.Quantile(0.5 + confidence/200)
}

// Interval is a confidence interval on a proportion.
type Interval struct {
	Lower float64
	Upper float64
}

// widen combines the intervals computed with the undecided trials counted as
// failures (for the lower bound) and as successes (for the upper bound).
func widen(successes, failures, undecided int, ci func(s, f int) Interval) Interval {
	lo := ci(successes, failures+undecided)
	hi := ci(successes+undecided, failures)
	return Interval{Lower: lo.Lower, Upper: hi.Upper}
}

// Wilson returns the Wilson score interval for successes out of
// successes+failures trials. undecided trials, such as timeouts, widen the
// interval on both sides.
func Wilson(successes, failures, undecided int, confidence float64) Interval {
	z := ZVal(confidence)
	return widen(successes, failures, undecided, func(sc, fc int) Interval {
		s, f := float64(sc), float64(fc)
		n := s + f
		if n == 0 {
			return Interval{0, 1}
		}
		z2 := z * z
		p := (s + z2/2) / (n + z2)
		half := z / (n + z2) * math.Sqrt(s*f/n+z2/4)
		return Interval{p - half, p + half}
	})
}

// AgrestiCoull returns the Agresti-Coull interval, clamped to [0, 1].
func AgrestiCoull(successes, failures, undecided int, confidence float64) Interval {
	z := ZVal(confidence)
	return widen(successes, failures, undecided, func(sc, fc int) Interval {
		n := float64(sc+fc) + z*z
		p := (float64(sc) + z*z/2) / n
		half := z * math.Sqrt((p-p*p)/n)
		return Interval{math.Max(0, p-half), math.Min(1, p+half)}
	})
}

// ClopperPearson returns the exact binomial interval from Beta quantiles.
func ClopperPearson(successes, failures, undecided int, confidence float64) Interval {
	alpha := 1 - confidence/100
	return widen(successes, failures, undecided, func(sc, fc int) Interval {
		s, f := float64(sc), float64(fc)
		iv := Interval{0, 1}
		if sc > 0 {
			iv.Lower = distuv.Beta{Alpha: s, Beta: f + 1}.Quantile(alpha / 2)
		}
		if fc > 0 {
			iv.Upper = distuv.Beta{Alpha: s + 1, Beta: f}.Quantile(1 - alpha/2)
		}
		return iv
	})
}
