package report

import (
	"encoding/json"
	"io"

	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

// JSONReport is the machine-readable form of the three reports.
// Sections that were not requested are omitted.
type JSONReport struct {
	EnergyKWh map[string]int64       `json:"energy_kwh,omitempty"`
	Periods   map[string][][2]string `json:"periods,omitempty"`
	Cost      map[string]int64       `json:"cost,omitempty"`
	CostUnit  string                 `json:"cost_unit,omitempty"`
	Counts    map[string]int         `json:"sample_counts,omitempty"`
}

func NewJSONReport(res *audit.Result, unit string, sections ...Section) JSONReport {
	var out JSONReport
	for _, s := range sectionsOrAll(sections) {
		switch s {
		case SectionEnergy:
			out.EnergyKWh = stringKeys(res.Energy, model.EnergyStates)
			out.Counts = make(map[string]int, len(model.AllStates))
			for _, st := range model.AllStates {
				out.Counts[string(st)] = res.Counts[st]
			}
		case SectionPeriods:
			pairs := res.Periods.Pairs()
			out.Periods = make(map[string][][2]string, len(model.TrackedStates))
			for _, st := range model.TrackedStates {
				p := pairs[st]
				if p == nil {
					p = [][2]string{}
				}
				out.Periods[string(st)] = p
			}
		case SectionCost:
			out.Cost = stringKeys(res.Cost, model.WastefulStates)
			out.CostUnit = unit
		}
	}
	return out
}

// WriteJSON writes the selected sections as indented JSON.
func WriteJSON(w io.Writer, res *audit.Result, unit string, sections ...Section) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewJSONReport(res, unit, sections...))
}

func stringKeys(m map[model.State]int64, order []model.State) map[string]int64 {
	out := make(map[string]int64, len(order))
	for _, s := range order {
		out[string(s)] = m[s]
	}
	return out
}
