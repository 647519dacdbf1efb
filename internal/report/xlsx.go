package report

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

// Sheet names of the XLSX workbook.
const (
	SheetEnergy  = "energy"
	SheetPeriods = "periods"
	SheetCost    = "cost"
	SheetLedger  = "ledger"
)

// BuildXLSX renders the three reports and the ledger as a workbook.
func BuildXLSX(res *audit.Result, unit string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetEnergy); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetPeriods, SheetCost, SheetLedger} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	w := sheetWriter{f: f}

	w.row(SheetEnergy, "State", "Energy (kWh)", "Samples")
	for _, s := range model.EnergyStates {
		w.row(SheetEnergy, string(s), res.Energy[s], res.Counts[s])
	}
	w.row(SheetEnergy, string(model.StateUnknown), "", res.Counts[model.StateUnknown])

	w.row(SheetPeriods, "State", "Start", "End", "Minutes")
	for _, s := range model.TrackedStates {
		for _, iv := range res.Periods[s] {
			w.row(SheetPeriods, string(s), iv.StartHHMM(), iv.EndHHMM(), iv.Duration().Minutes())
		}
	}

	w.row(SheetCost, "State", "Band", "Rate", "Energy (kWh)", "Cost ("+unit+")")
	for _, s := range model.WastefulStates {
		for _, bc := range res.CostByBand[s] {
			w.row(SheetCost, string(s), bc.Band, bc.Rate, bc.EnergyKWh, bc.Cost)
		}
		w.row(SheetCost, string(s), "total", "", "", res.Cost[s])
	}

	header := make([]interface{}, len(ledgerHeader))
	for i, h := range ledgerHeader {
		header[i] = h
	}
	w.row(SheetLedger, header...)
	for _, r := range res.Ledger {
		w.row(SheetLedger, r.Index, fmtTime(r.Time), r.P1, r.P2, r.P3, r.PowerKW,
			string(r.State), r.EnergyKWh, r.Band, r.Rate, r.Cost, r.CumCost)
	}

	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows per sheet and keeps the first error.
type sheetWriter struct {
	f    *excelize.File
	next map[string]int
	err  error
}

func (w *sheetWriter) row(sheet string, values ...interface{}) {
	if w.err != nil {
		return
	}
	if w.next == nil {
		w.next = map[string]int{}
	}
	w.next[sheet]++
	cell, err := excelize.CoordinatesToCellName(1, w.next[sheet])
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}
