package audit

import (
	"time"

	"motor-audit/internal/analysis"
	"motor-audit/internal/model"
)

// LedgerRow is one classified sample of the energy input.
// Rate and Cost are filled for every row; Cost only accrues into CumCost for
// wasteful states.
type LedgerRow struct {
	Index int
	Time  time.Time

	P1      float64
	P2      float64
	P3      float64
	PowerKW float64

	State model.State

	EnergyKWh float64
	Band      string
	Rate      int
	Cost      float64
	CumCost   float64
}

// Window is the time span covered by an input.
type Window struct {
	Start time.Time
	End   time.Time
}

type Result struct {
	// Energy is kWh per state (vampire, idle, normal, overload), truncated.
	Energy map[model.State]int64
	// Periods are the continuous runs found in the power input.
	Periods analysis.Periods
	// Cost is the time-of-use cost of vampire and idle draw, truncated.
	Cost       map[model.State]int64
	CostByBand map[model.State][]analysis.BandCost

	Counts      map[model.State]int
	PowerCounts map[model.State]int

	EnergyWindow Window
	PowerWindow  Window

	// PowerProfile is the distribution of readings in the power input.
	PowerProfile analysis.LoadProfile

	Ledger []LedgerRow
}

func buildLedger(samples []model.LabeledSample, tariff model.TariffTable) []LedgerRow {
	rows := make([]LedgerRow, 0, len(samples))
	cum := 0.0
	for i, ls := range samples {
		band := tariff.BandFor(ls.Time)
		kwh := ls.EnergyKWh()
		cost := kwh * float64(band.Rate)
		if ls.State.IsWasteful() {
			cum += cost
		}
		rows = append(rows, LedgerRow{
			Index: i,
			Time:  ls.Time,

			P1:      ls.P1,
			P2:      ls.P2,
			P3:      ls.P3,
			PowerKW: ls.PowerKW(),

			State: ls.State,

			EnergyKWh: kwh,
			Band:      band.Name,
			Rate:      band.Rate,
			Cost:      cost,
			CumCost:   cum,
		})
	}
	return rows
}

func windowOf(samples []model.Sample) Window {
	if len(samples) == 0 {
		return Window{}
	}
	return Window{Start: samples[0].Time, End: samples[len(samples)-1].Time}
}
