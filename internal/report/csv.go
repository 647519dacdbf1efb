package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"motor-audit/internal/analysis"
	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

var ledgerHeader = []string{
	"index",
	"time",
	"p1",
	"p2",
	"p3",
	"power_kw",
	"state",
	"energy_kwh",
	"band",
	"rate",
	"cost",
	"cum_cost",
}

// WriteLedgerCSV writes the per-sample ledger to path.
func WriteLedgerCSV(path string, ledger []audit.LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeLedgerCSV(f, ledger)
}

func EncodeLedgerCSV(out io.Writer, ledger []audit.LedgerRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Index),
			fmtTime(r.Time),
			fmtFloat(r.P1),
			fmtFloat(r.P2),
			fmtFloat(r.P3),
			fmtFloat(r.PowerKW),
			string(r.State),
			fmtFloat(r.EnergyKWh),
			r.Band,
			strconv.Itoa(r.Rate),
			fmtFloat(r.Cost),
			fmtFloat(r.CumCost),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// EncodePeriodsCSV writes one state,start,end row per run, tracked states in
// display order.
func EncodePeriodsCSV(out io.Writer, periods analysis.Periods) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"state", "start", "end"}); err != nil {
		return err
	}
	for _, s := range model.TrackedStates {
		for _, iv := range periods[s] {
			row := []string{string(s), iv.StartHHMM(), iv.EndHHMM()}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
