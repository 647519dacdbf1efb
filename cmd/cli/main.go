package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"motor-audit/internal/audit"
	"motor-audit/internal/config"
	"motor-audit/internal/data"
	"motor-audit/internal/logging"
	"motor-audit/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cli report  [--config f] [--energy energy.csv] [--power power.csv] [--sections energy,periods,cost] [--format text|json] [--out f]")
	fmt.Fprintln(w, "  cli energy  [--config f] [--energy energy.csv] [--format text|json]")
	fmt.Fprintln(w, "  cli periods [--config f] [--power power.csv] [--format text|json|csv]")
	fmt.Fprintln(w, "  cli cost    [--config f] [--energy energy.csv] [--format text|json]")
	fmt.Fprintln(w, "  cli ledger  [--config f] [--energy energy.csv] --out ledger.csv")
	fmt.Fprintln(w, "  cli export  [--config f] [--energy energy.csv] [--power power.csv] --format xlsx|pdf --out f")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notes:")
	fmt.Fprintln(w, "  - --energy feeds the energy and cost reports, --power feeds the periods report")
	fmt.Fprintln(w, "  - passing only --energy uses the same file for periods")
}

// run executes one subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	var sections []report.Section
	switch args[0] {
	case "report", "export", "ledger":
	case "energy":
		sections = []report.Section{report.SectionEnergy}
	case "periods":
		sections = []report.Section{report.SectionPeriods}
	case "cost":
		sections = []report.Section{report.SectionCost}
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}

	cmd := args[0]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults built in)")
	energyPath := fs.String("energy", "", "Energy CSV (default: data.energy_csv)")
	powerPath := fs.String("power", "", "Power CSV (default: data.power_csv, or --energy when only that is given)")
	format := fs.String("format", "", "Output format")
	outPath := fs.String("out", "", "Output path (default: stdout)")
	only := fs.String("sections", "", "Comma-separated sections for report (default: all)")
	verbose := fs.Bool("v", false, "Debug logging")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if *only != "" {
		if cmd != "report" {
			fmt.Fprintln(stderr, "--sections is only valid for report")
			return 2
		}
		for _, v := range strings.Split(*only, ",") {
			s, err := report.ParseSection(strings.TrimSpace(v))
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 2
			}
			sections = append(sections, s)
		}
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "\nAn unexpected error occurred: %v\n", err)
		return 1
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	log, err := logging.NewWithWriter(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "\nAn unexpected error occurred: %v\n", err)
		return 1
	}

	energy, power := cfg.Data.EnergyCSV, cfg.Data.PowerCSV
	if *energyPath != "" {
		energy, power = *energyPath, ""
	}
	if *powerPath != "" {
		power = *powerPath
	}
	if power == "" {
		power = energy
	}

	// Single-report commands only read the file they need.
	switch cmd {
	case "energy", "cost", "ledger":
		power = energy
	case "periods":
		energy = power
	}

	engine := audit.New(cfg.ToMotorProfile(), cfg.ToTariffTable(), log)
	res, err := engine.RunFiles(energy, power)
	if err != nil {
		return fail(stderr, log, err)
	}

	out := stdout
	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			return fail(stderr, log, err)
		}
		f, err := os.Create(*outPath)
		if err != nil {
			return fail(stderr, log, err)
		}
		defer f.Close()
		out = f
	}

	unit := cfg.Tariff.CurrencyUnit
	switch cmd {
	case "ledger":
		err = report.EncodeLedgerCSV(out, res.Ledger)
	case "export":
		err = export(out, res, unit, *format, *outPath)
	default:
		err = write(out, res, unit, *format, sections)
	}
	if err != nil {
		return fail(stderr, log, err)
	}

	if *outPath != "" {
		log.WithFields(logrus.Fields{"command": cmd, "out": *outPath}).Info("wrote output")
	}
	return 0
}

func write(out io.Writer, res *audit.Result, unit, format string, sections []report.Section) error {
	switch format {
	case "", "text":
		return report.WriteText(out, res, unit, sections...)
	case "json":
		return report.WriteJSON(out, res, unit, sections...)
	case "csv":
		if len(sections) == 1 && sections[0] == report.SectionPeriods {
			return report.EncodePeriodsCSV(out, res.Periods)
		}
	}
	return fmt.Errorf("unsupported format %q", format)
}

func export(out io.Writer, res *audit.Result, unit, format, outPath string) error {
	if format == "" {
		format = filepath.Ext(outPath)
		if format != "" {
			format = format[1:]
		}
	}
	var (
		body []byte
		err  error
	)
	switch format {
	case "xlsx":
		body, err = report.BuildXLSX(res, unit)
	case "pdf":
		body, err = report.BuildPDF(res, unit)
	default:
		return fmt.Errorf("unsupported export format %q (want xlsx or pdf)", format)
	}
	if err != nil {
		return err
	}
	_, err = out.Write(body)
	return err
}

// fail prints the console error line for err and returns exit code 1.
func fail(stderr io.Writer, log logrus.FieldLogger, err error) int {
	var missing *data.MissingSourceError
	if errors.As(err, &missing) {
		fmt.Fprintf(stderr, "\nError: Could not find '%s'.\n", missing.Path)
	} else {
		fmt.Fprintf(stderr, "\nAn unexpected error occurred: %v\n", err)
	}
	log.WithError(err).Debug("command failed")
	return 1
}
