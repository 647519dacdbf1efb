package model

// State is the operating state of the motor for one sample.
// Keep these values stable; they are the keys of every report.
type State string

const (
	StateVampire  State = "vampire"
	StateIdle     State = "idle"
	StateNormal   State = "normal"
	StateOverload State = "overload"
	StateUnknown  State = "unknown"
)

// Fractions of rated power that bound the low-draw states.
const (
	VampireFraction = 0.01
	IdleFraction    = 0.30
)

var (
	// EnergyStates are reported by the energy-by-state breakdown. Unknown is dropped.
	EnergyStates = []State{StateVampire, StateIdle, StateNormal, StateOverload}

	// TrackedStates get continuous time ranges.
	TrackedStates = []State{StateVampire, StateIdle, StateOverload}

	// WastefulStates are costed against the time-of-use tariff.
	WastefulStates = []State{StateVampire, StateIdle}

	// AllStates in display order.
	AllStates = []State{StateVampire, StateIdle, StateNormal, StateOverload, StateUnknown}
)

// ClassifyPower maps an instantaneous power reading to a State.
//
// Bands are evaluated in order and are closed on the right:
//
//	(0, 1% rated]            vampire
//	(1% rated, 30% rated]    idle
//	(30% rated, SF * rated]  normal
//	(SF * rated, inf)        overload
//
// Anything else (zero, negative, NaN) is unknown.
func ClassifyPower(powerKW, ratedPowerKW, serviceFactor float64) State {
	vampire := VampireFraction * ratedPowerKW
	idle := IdleFraction * ratedPowerKW
	overload := serviceFactor * ratedPowerKW

	switch {
	case 0 < powerKW && powerKW <= vampire:
		return StateVampire
	case vampire < powerKW && powerKW <= idle:
		return StateIdle
	case idle < powerKW && powerKW <= overload:
		return StateNormal
	case powerKW > overload:
		return StateOverload
	default:
		return StateUnknown
	}
}

// IsTracked reports whether s gets continuous time ranges.
func (s State) IsTracked() bool {
	return s == StateVampire || s == StateIdle || s == StateOverload
}

// IsWasteful reports whether s is costed against the tariff.
func (s State) IsWasteful() bool {
	return s == StateVampire || s == StateIdle
}

// ParseState accepts any of the State values.
func ParseState(v string) (State, bool) {
	for _, s := range AllStates {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}
