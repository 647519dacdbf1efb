package report

import (
	"fmt"
	"io"
	"strings"

	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

// Section selects one of the three reports.
type Section string

const (
	SectionEnergy  Section = "energy"
	SectionPeriods Section = "periods"
	SectionCost    Section = "cost"
)

// AllSections in print order.
var AllSections = []Section{SectionEnergy, SectionPeriods, SectionCost}

// ParseSection accepts energy, periods or cost.
func ParseSection(v string) (Section, error) {
	for _, s := range AllSections {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", v)
}

func sectionsOrAll(sections []Section) []Section {
	if len(sections) == 0 {
		return AllSections
	}
	return sections
}

// WriteText prints the selected sections in the classic console layout:
// a blank line, a heading, then a dict-style line.
// unit labels the cost heading, e.g. "paise".
func WriteText(w io.Writer, res *audit.Result, unit string, sections ...Section) error {
	for _, s := range sectionsOrAll(sections) {
		var heading, body string
		switch s {
		case SectionEnergy:
			heading = "Challenge 1 - Energy Consumption (kWh):"
			body = formatCounts(res.Energy, model.EnergyStates)
		case SectionPeriods:
			heading = "Challenge 2 - Duration Periods:"
			body = formatPeriods(res.Periods.Pairs())
		case SectionCost:
			heading = fmt.Sprintf("Challenge 3 - Energy Costs (%s):", unit)
			body = formatCounts(res.Cost, model.WastefulStates)
		default:
			return fmt.Errorf("unknown section %q", s)
		}
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", heading, body); err != nil {
			return err
		}
	}
	return nil
}

// {'vampire': 2, 'idle': 2}
func formatCounts(m map[model.State]int64, order []model.State) string {
	parts := make([]string, len(order))
	for i, s := range order {
		parts[i] = fmt.Sprintf("'%s': %d", s, m[s])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// {'vampire': [('00:10', '00:20')], 'idle': [], 'overload': []}
func formatPeriods(pairs map[model.State][][2]string) string {
	parts := make([]string, len(model.TrackedStates))
	for i, s := range model.TrackedStates {
		runs := make([]string, len(pairs[s]))
		for j, p := range pairs[s] {
			runs[j] = fmt.Sprintf("('%s', '%s')", p[0], p[1])
		}
		parts[i] = fmt.Sprintf("'%s': [%s]", s, strings.Join(runs, ", "))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
