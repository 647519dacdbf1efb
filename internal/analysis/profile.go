package analysis

import (
	"math"
	"sort"
	"time"

	"motor-audit/internal/model"
)

// LoadProfile summarises the distribution of power readings over a window.
// It does not depend on state labels, so it can be compared across motors.
type LoadProfile struct {
	Start time.Time
	End   time.Time

	Count int

	MinKW  float64
	MaxKW  float64
	MeanKW float64
	P05KW  float64
	P95KW  float64

	SpreadP95P05 float64

	// LoadFactor is MeanKW over rated input power; 0 when rated is unknown.
	LoadFactor float64
}

// ComputeLoadProfile returns the power statistics of samples. Non-finite
// readings are skipped.
func ComputeLoadProfile(samples []model.LabeledSample, ratedPowerKW float64) LoadProfile {
	p := LoadProfile{}
	if len(samples) == 0 {
		return p
	}
	p.Start = samples[0].Time
	p.End = samples[len(samples)-1].Time

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(samples))
	for _, ls := range samples {
		v := ls.PowerKW()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	if len(vals) == 0 {
		return p
	}
	sort.Float64s(vals)
	p.Count = len(vals)
	p.MinKW = minv
	p.MaxKW = maxv
	p.MeanKW = sum / float64(len(vals))
	p.P05KW = percentileSorted(vals, 0.05)
	p.P95KW = percentileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95KW - p.P05KW
	if ratedPowerKW > 0 {
		p.LoadFactor = p.MeanKW / ratedPowerKW
	}
	return p
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
