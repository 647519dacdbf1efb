package handlers

import (
	"motor-audit/internal/api/models"
	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

func buildResponse(stored *audit.StoredResult, unit string, includeLedger bool) models.ReportResponse {
	res := stored.Result
	summary := models.ReportSummary{
		EnergyKWh:    make(map[string]int64, len(model.EnergyStates)),
		Periods:      make(map[string][]models.Period, len(model.TrackedStates)),
		Cost:         make(map[string]int64, len(model.WastefulStates)),
		CostUnit:     unit,
		CostByBand:   make(map[string][]models.BandCost, len(model.WastefulStates)),
		SampleCounts: make(map[string]int, len(model.AllStates)),
		EnergyWindow: models.TimeWindow{Start: res.EnergyWindow.Start, End: res.EnergyWindow.End},
		PowerWindow:  models.TimeWindow{Start: res.PowerWindow.Start, End: res.PowerWindow.End},
		LoadProfile: models.LoadProfile{
			Count:        res.PowerProfile.Count,
			MinKW:        res.PowerProfile.MinKW,
			MaxKW:        res.PowerProfile.MaxKW,
			MeanKW:       res.PowerProfile.MeanKW,
			P05KW:        res.PowerProfile.P05KW,
			P95KW:        res.PowerProfile.P95KW,
			SpreadP95P05: res.PowerProfile.SpreadP95P05,
			LoadFactor:   res.PowerProfile.LoadFactor,
		},
	}

	for _, s := range model.EnergyStates {
		summary.EnergyKWh[string(s)] = res.Energy[s]
	}
	for _, s := range model.AllStates {
		summary.SampleCounts[string(s)] = res.Counts[s]
	}
	for _, s := range model.TrackedStates {
		periods := make([]models.Period, 0, len(res.Periods[s]))
		for _, iv := range res.Periods[s] {
			periods = append(periods, models.Period{
				Start:     iv.StartHHMM(),
				End:       iv.EndHHMM(),
				StartTime: iv.Start,
				EndTime:   iv.End,
				Minutes:   iv.Duration().Minutes(),
			})
		}
		summary.Periods[string(s)] = periods
	}
	for _, s := range model.WastefulStates {
		summary.Cost[string(s)] = res.Cost[s]
		bands := make([]models.BandCost, 0, len(res.CostByBand[s]))
		for _, bc := range res.CostByBand[s] {
			bands = append(bands, models.BandCost{
				Band:      bc.Band,
				Rate:      bc.Rate,
				EnergyKWh: bc.EnergyKWh,
				Cost:      bc.Cost,
			})
		}
		summary.CostByBand[string(s)] = bands
	}

	resp := models.ReportResponse{
		ID:        stored.ID,
		Status:    "completed",
		CreatedAt: stored.CreatedAt,
		Sources:   stored.Sources,
		Summary:   summary,
	}
	if includeLedger {
		resp.Ledger = buildLedger(res.Ledger)
	}
	return resp
}

func buildLedger(rows []audit.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(rows))
	for i, r := range rows {
		out[i] = models.LedgerRow{
			Index:     r.Index,
			Time:      r.Time,
			P1:        r.P1,
			P2:        r.P2,
			P3:        r.P3,
			PowerKW:   r.PowerKW,
			State:     string(r.State),
			EnergyKWh: r.EnergyKWh,
			Band:      r.Band,
			Rate:      r.Rate,
			Cost:      r.Cost,
			CumCost:   r.CumCost,
		}
	}
	return out
}
