package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"motor-audit/internal/audit"
	"motor-audit/internal/config"
	"motor-audit/internal/data"
	"motor-audit/internal/logging"
	"motor-audit/internal/model"
	"motor-audit/internal/report"
)

// Demo:
// - Generate one synthetic day of meter data for the configured motor
// - Write it as energy.csv (coarse) and power.csv (fine)
// - Run the audit on the files and print the three reports
func main() {
	outDir := flag.String("out", "demo-data", "Directory for the generated CSVs")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	date := flag.String("date", time.Now().UTC().Format("2006-01-02"), "Day to generate (YYYY-MM-DD, UTC)")
	step := flag.Duration("step", 5*time.Minute, "Sample interval of energy.csv")
	powerStep := flag.Duration("power-step", time.Minute, "Sample interval of power.csv")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		panic(err)
	}

	day, err := time.Parse("2006-01-02", *date)
	if err != nil {
		log.Fatalf("invalid --date: %v", err)
	}
	if *step <= 0 || *powerStep <= 0 {
		log.Fatal("--step and --power-step must be positive")
	}

	motor := cfg.ToMotorProfile()
	energy := data.GenerateDay(day, *step, motor, data.DefaultDay)
	power := data.GenerateDay(day, *powerStep, motor, data.DefaultDay)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	energyPath := filepath.Join(*outDir, "energy.csv")
	powerPath := filepath.Join(*outDir, "power.csv")
	if err := data.WriteSamplesCSV(energyPath, energy); err != nil {
		panic(err)
	}
	if err := data.WriteSamplesCSV(powerPath, power); err != nil {
		panic(err)
	}

	fmt.Printf("Generated %s for a %.0f kW motor (rated input %.1f kW)\n",
		day.Format("2006-01-02"), motor.EquipmentRatingKW, motor.RatedPowerKW())
	fmt.Printf("Wrote %d rows to %s\n", len(energy), energyPath)
	fmt.Printf("Wrote %d rows to %s\n", len(power), powerPath)

	engine := audit.New(motor, cfg.ToTariffTable(), log)
	res, err := engine.RunFiles(energyPath, powerPath)
	if err != nil {
		panic(err)
	}
	ledgerPath := filepath.Join(*outDir, "ledger.csv")
	if err := report.WriteLedgerCSV(ledgerPath, res.Ledger); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d ledger rows to %s\n", len(res.Ledger), ledgerPath)

	if err := report.WriteText(os.Stdout, res, cfg.Tariff.CurrencyUnit); err != nil {
		panic(err)
	}

	fmt.Println()
	for _, s := range model.WastefulStates {
		for _, bc := range res.CostByBand[s] {
			fmt.Printf("%-8s %-9s rate=%5d  energy=%8.3f kWh  cost=%10.2f %s\n",
				s, bc.Band, bc.Rate, bc.EnergyKWh, bc.Cost, cfg.Tariff.CurrencyUnit)
		}
	}
}
