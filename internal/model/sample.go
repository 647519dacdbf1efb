package model

import (
	"fmt"
	"math"
	"time"
)

// Sample is one meter reading.
// P1..P3 are the per-phase power readings in W; EnergyWh is the energy
// accumulated over the sample interval.
type Sample struct {
	Time     time.Time
	P1       float64
	P2       float64
	P3       float64
	EnergyWh float64
}

// PowerKW is the three-phase total in kW.
func (s Sample) PowerKW() float64 {
	return (s.P1 + s.P2 + s.P3) / 1000
}

func (s Sample) EnergyKWh() float64 {
	return s.EnergyWh / 1000
}

// Check returns ErrInvalidSample if any numeric field is NaN or infinite,
// or the timestamp is missing.
func (s Sample) Check() error {
	if s.Time.IsZero() {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidSample)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"p1", s.P1},
		{"p2", s.P2},
		{"p3", s.P3},
		{"energy", s.EnergyWh},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidSample, f.name, f.v)
		}
	}
	return nil
}

// LabeledSample is a Sample with its classification attached.
type LabeledSample struct {
	Sample
	State State
}

// Label classifies every sample against the motor profile.
func Label(samples []Sample, motor MotorProfile) []LabeledSample {
	out := make([]LabeledSample, len(samples))
	for i, s := range samples {
		out[i] = LabeledSample{Sample: s, State: motor.Classify(s.PowerKW())}
	}
	return out
}
