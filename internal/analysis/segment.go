package analysis

import (
	"time"

	"motor-audit/internal/model"
)

// Periods maps each tracked state to its runs in chronological order.
type Periods map[model.State][]model.Interval

// NewPeriods returns a Periods with an empty (non-nil) list per tracked state.
func NewPeriods() Periods {
	p := make(Periods, len(model.TrackedStates))
	for _, s := range model.TrackedStates {
		p[s] = []model.Interval{}
	}
	return p
}

// Pairs renders the periods as (HH:MM, HH:MM) pairs.
func (p Periods) Pairs() map[model.State][][2]string {
	out := make(map[model.State][][2]string, len(p))
	for s, ivs := range p {
		pairs := make([][2]string, len(ivs))
		for i, iv := range ivs {
			pairs[i] = iv.Pair()
		}
		out[s] = pairs
	}
	return out
}

// Segmenter folds a time-ordered stream of labeled samples into continuous
// runs of tracked states. The zero value is not usable; call NewSegmenter.
type Segmenter struct {
	periods Periods

	open    model.State // "" while no tracked run is open
	start   time.Time
	prev    time.Time
	hasPrev bool
}

func NewSegmenter() *Segmenter {
	return &Segmenter{periods: NewPeriods()}
}

// Step feeds the next sample.
func (s *Segmenter) Step(ls model.LabeledSample) {
	if ls.State != s.open {
		if s.open != "" {
			end := ls.Time
			if s.hasPrev {
				end = s.prev
			}
			s.emit(end)
		}
		if ls.State.IsTracked() {
			s.open = ls.State
			s.start = ls.Time
		} else {
			s.open = ""
		}
	}
	s.prev = ls.Time
	s.hasPrev = true
}

// Finish closes any open run at the last sample and returns the result.
// The Segmenter must not be stepped afterwards.
func (s *Segmenter) Finish() Periods {
	if s.open != "" && s.hasPrev {
		s.emit(s.prev)
		s.open = ""
	}
	return s.periods
}

func (s *Segmenter) emit(end time.Time) {
	s.periods[s.open] = append(s.periods[s.open], model.Interval{
		State: s.open,
		Start: s.start,
		End:   end,
	})
}

// Segment returns the continuous runs of vampire, idle and overload in samples.
// samples must be in ascending time order. Normal and unknown samples only end
// runs; they never open one.
func Segment(samples []model.LabeledSample) Periods {
	seg := NewSegmenter()
	for _, ls := range samples {
		seg.Step(ls)
	}
	return seg.Finish()
}
