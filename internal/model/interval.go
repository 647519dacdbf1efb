package model

import "time"

// ClockLayout renders a timestamp as zero-padded HH:MM.
const ClockLayout = "15:04"

// Interval is a continuous run of one tracked state. Start and End are the
// timestamps of the first and last sample of the run, so a one-sample run has
// Start == End.
type Interval struct {
	State State
	Start time.Time
	End   time.Time
}

func (i Interval) StartHHMM() string { return i.Start.Format(ClockLayout) }
func (i Interval) EndHHMM() string   { return i.End.Format(ClockLayout) }

// Pair returns the (start, end) clock strings.
func (i Interval) Pair() [2]string {
	return [2]string{i.StartHHMM(), i.EndHHMM()}
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
