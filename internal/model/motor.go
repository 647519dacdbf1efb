package model

import "errors"

// MotorProfile defines the nameplate of the monitored motor.
// Units:
// - EquipmentRatingKW: kW (shaft output)
// - Efficiency: 0..1
// - ServiceFactor: multiplier on rated power before the motor counts as overloaded
type MotorProfile struct {
	EquipmentRatingKW float64
	Efficiency        float64
	ServiceFactor     float64
}

// Thresholds are the upper bounds (inclusive) of the vampire, idle and normal bands.
type Thresholds struct {
	VampireKW  float64
	IdleKW     float64
	OverloadKW float64
}

// DefaultMotorProfile is the 90 kW / 90% / SF 1.2 motor the audit was built for.
func DefaultMotorProfile() MotorProfile {
	return MotorProfile{
		EquipmentRatingKW: 90,
		Efficiency:        0.9,
		ServiceFactor:     1.2,
	}
}

// RatedPowerKW is the full-load electrical input power.
func (m MotorProfile) RatedPowerKW() float64 {
	return m.EquipmentRatingKW / m.Efficiency
}

func (m MotorProfile) Thresholds() Thresholds {
	rated := m.RatedPowerKW()
	return Thresholds{
		VampireKW:  VampireFraction * rated,
		IdleKW:     IdleFraction * rated,
		OverloadKW: m.ServiceFactor * rated,
	}
}

// Classify labels a power reading against this motor.
func (m MotorProfile) Classify(powerKW float64) State {
	return ClassifyPower(powerKW, m.RatedPowerKW(), m.ServiceFactor)
}

func (m MotorProfile) Validate() error {
	if m.EquipmentRatingKW <= 0 {
		return errors.New("EquipmentRatingKW must be > 0")
	}
	if m.Efficiency <= 0 || m.Efficiency > 1 {
		return errors.New("Efficiency must be in (0, 1]")
	}
	if m.ServiceFactor < 1 {
		return errors.New("ServiceFactor must be >= 1")
	}
	return nil
}
