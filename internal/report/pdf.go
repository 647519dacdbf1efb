package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"motor-audit/internal/audit"
	"motor-audit/internal/model"
)

// BuildPDF renders a one-page summary with the three report tables.
func BuildPDF(res *audit.Result, unit string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Motor Power-State Audit")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if !res.EnergyWindow.Start.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Energy data: %s to %s",
			res.EnergyWindow.Start.Format(time.RFC3339), res.EnergyWindow.End.Format(time.RFC3339)))
		pdf.Ln(5)
	}
	if !res.PowerWindow.Start.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Power data: %s to %s",
			res.PowerWindow.Start.Format(time.RFC3339), res.PowerWindow.End.Format(time.RFC3339)))
		pdf.Ln(5)
	}
	if lp := res.PowerProfile; lp.Count > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Load: mean %.1f kW, p95 %.1f kW, max %.1f kW, load factor %.0f%%",
			lp.MeanKW, lp.P95KW, lp.MaxKW, lp.LoadFactor*100))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	table(pdf, "Energy Consumption (kWh)", []string{"State", "Energy (kWh)"}, func(add func(...string)) {
		for _, s := range model.EnergyStates {
			add(string(s), fmt.Sprintf("%d", res.Energy[s]))
		}
	})

	table(pdf, "Duration Periods", []string{"State", "Start", "End"}, func(add func(...string)) {
		for _, s := range model.TrackedStates {
			for _, iv := range res.Periods[s] {
				add(string(s), iv.StartHHMM(), iv.EndHHMM())
			}
		}
	})

	table(pdf, fmt.Sprintf("Energy Costs (%s)", unit), []string{"State", "Cost"}, func(add func(...string)) {
		for _, s := range model.WastefulStates {
			add(string(s), fmt.Sprintf("%d", res.Cost[s]))
		}
	})

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func table(pdf *gofpdf.Fpdf, title string, header []string, rows func(add func(...string))) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, title)
	pdf.Ln(7)

	pdf.SetFont("Arial", "B", 10)
	for _, h := range header {
		pdf.CellFormat(45, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	rows(func(cells ...string) {
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(45, 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.Ln(6)
}
