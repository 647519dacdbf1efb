package analysis

import (
	"math"

	"motor-audit/internal/model"
)

// EnergyByState sums the energy of every sample per state and converts it to
// whole kWh, truncating. Vampire, idle, normal and overload are always present;
// unknown samples are dropped.
func EnergyByState(samples []model.LabeledSample) (map[model.State]int64, error) {
	sumWh := make(map[model.State]float64, len(model.EnergyStates))
	for i, ls := range samples {
		if err := checkSample(i, ls); err != nil {
			return nil, err
		}
		sumWh[ls.State] += ls.EnergyWh
	}

	out := make(map[model.State]int64, len(model.EnergyStates))
	for _, s := range model.EnergyStates {
		out[s] = truncate(sumWh[s] / 1000)
	}
	return out, nil
}

// CountByState counts samples per state, unknown included.
func CountByState(samples []model.LabeledSample) map[model.State]int {
	out := make(map[model.State]int, len(model.AllStates))
	for _, s := range model.AllStates {
		out[s] = 0
	}
	for _, ls := range samples {
		out[ls.State]++
	}
	return out
}

func checkSample(i int, ls model.LabeledSample) error {
	if err := ls.Check(); err != nil {
		return &model.MalformedRecordError{Source: "samples", Line: i + 1, Err: err}
	}
	return nil
}

// truncate drops the fractional part toward zero.
func truncate(x float64) int64 {
	return int64(math.Trunc(x))
}
