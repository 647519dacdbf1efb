package analysis

import (
	"motor-audit/internal/model"
)

// CostByState prices the energy drawn in the wasteful states (vampire, idle)
// against the time-of-use tariff. Each sample is priced at the rate of its own
// timestamp; the per-state total is truncated to whole minor currency units.
func CostByState(samples []model.LabeledSample, tariff model.TariffTable) (map[model.State]int64, error) {
	total := make(map[model.State]float64, len(model.WastefulStates))
	for i, ls := range samples {
		if !ls.State.IsWasteful() {
			continue
		}
		if err := checkSample(i, ls); err != nil {
			return nil, err
		}
		total[ls.State] += ls.EnergyKWh() * float64(tariff.RateFor(ls.Time))
	}

	out := make(map[model.State]int64, len(model.WastefulStates))
	for _, s := range model.WastefulStates {
		out[s] = truncate(total[s])
	}
	return out, nil
}

// BandCost is the wasteful energy and cost that fell into one tariff band.
type BandCost struct {
	Band      string
	Rate      int
	EnergyKWh float64
	Cost      float64
}

// CostByBand splits the wasteful cost by state and tariff band. Bands appear in
// table order with the default band last; empty bands are omitted. Values are
// not truncated.
func CostByBand(samples []model.LabeledSample, tariff model.TariffTable) (map[model.State][]BandCost, error) {
	type key struct {
		state model.State
		band  string
	}
	acc := map[key]*BandCost{}
	for i, ls := range samples {
		if !ls.State.IsWasteful() {
			continue
		}
		if err := checkSample(i, ls); err != nil {
			return nil, err
		}
		b := tariff.BandFor(ls.Time)
		k := key{ls.State, b.Name}
		bc, ok := acc[k]
		if !ok {
			bc = &BandCost{Band: b.Name, Rate: b.Rate}
			acc[k] = bc
		}
		kwh := ls.EnergyKWh()
		bc.EnergyKWh += kwh
		bc.Cost += kwh * float64(b.Rate)
	}

	names := make([]string, 0, len(tariff.Bands)+1)
	seen := map[string]bool{}
	for _, b := range tariff.Bands {
		if !seen[b.Name] {
			names = append(names, b.Name)
			seen[b.Name] = true
		}
	}
	if !seen[tariff.DefaultName] {
		names = append(names, tariff.DefaultName)
	}

	out := make(map[model.State][]BandCost, len(model.WastefulStates))
	for _, s := range model.WastefulStates {
		rows := []BandCost{}
		for _, n := range names {
			if bc, ok := acc[key{s, n}]; ok {
				rows = append(rows, *bc)
			}
		}
		out[s] = rows
	}
	return out, nil
}
