package audit

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"motor-audit/internal/analysis"
	"motor-audit/internal/data"
	"motor-audit/internal/model"
)

// Engine runs the three reports for one motor against one tariff.
type Engine struct {
	Motor  model.MotorProfile
	Tariff model.TariffTable
	log    logrus.FieldLogger
}

// New returns an Engine. A nil logger falls back to the logrus standard logger.
func New(motor model.MotorProfile, tariff model.TariffTable, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{Motor: motor, Tariff: tariff, log: log}
}

// Energy classifies the energy input and returns kWh per state.
func (e *Engine) Energy(energy []model.Sample) (map[model.State]int64, error) {
	return analysis.EnergyByState(model.Label(energy, e.Motor))
}

// Periods classifies the power input and returns the runs per tracked state.
func (e *Engine) Periods(power []model.Sample) (analysis.Periods, error) {
	if err := validate(power); err != nil {
		return nil, err
	}
	e.checkOrder(power)
	return analysis.Segment(model.Label(power, e.Motor)), nil
}

// Cost classifies the energy input and returns the wasteful cost per state.
func (e *Engine) Cost(energy []model.Sample) (map[model.State]int64, error) {
	return analysis.CostByState(model.Label(energy, e.Motor), e.Tariff)
}

// Run computes all three reports plus the per-sample ledger. energy feeds the
// energy and cost reports, power feeds the periods report; they may be the
// same slice.
func (e *Engine) Run(energy, power []model.Sample) (*Result, error) {
	if err := e.Motor.Validate(); err != nil {
		return nil, fmt.Errorf("motor profile invalid: %w", err)
	}
	if err := e.Tariff.Validate(); err != nil {
		return nil, fmt.Errorf("tariff invalid: %w", err)
	}

	labeledEnergy := model.Label(energy, e.Motor)
	labeledPower := model.Label(power, e.Motor)

	byState, err := analysis.EnergyByState(labeledEnergy)
	if err != nil {
		return nil, fmt.Errorf("energy by state: %w", err)
	}
	cost, err := analysis.CostByState(labeledEnergy, e.Tariff)
	if err != nil {
		return nil, fmt.Errorf("cost by state: %w", err)
	}
	bands, err := analysis.CostByBand(labeledEnergy, e.Tariff)
	if err != nil {
		return nil, fmt.Errorf("cost by band: %w", err)
	}

	if err := validate(power); err != nil {
		return nil, fmt.Errorf("periods: %w", err)
	}
	e.checkOrder(power)
	periods := analysis.Segment(labeledPower)

	res := &Result{
		Energy:       byState,
		Periods:      periods,
		Cost:         cost,
		CostByBand:   bands,
		Counts:       analysis.CountByState(labeledEnergy),
		PowerCounts:  analysis.CountByState(labeledPower),
		EnergyWindow: windowOf(energy),
		PowerWindow:  windowOf(power),
		PowerProfile: analysis.ComputeLoadProfile(labeledPower, e.Motor.RatedPowerKW()),
		Ledger:       buildLedger(labeledEnergy, e.Tariff),
	}

	e.log.WithFields(logrus.Fields{
		"energy_samples": len(energy),
		"power_samples":  len(power),
		"vampire_runs":   len(periods[model.StateVampire]),
		"idle_runs":      len(periods[model.StateIdle]),
		"overload_runs":  len(periods[model.StateOverload]),
	}).Debug("audit complete")

	return res, nil
}

// RunFiles loads both inputs from disk and runs the audit. An empty powerPath
// reuses the energy input.
func (e *Engine) RunFiles(energyPath, powerPath string) (*Result, error) {
	energy, err := data.LoadSamplesCSV(energyPath)
	if err != nil {
		return nil, err
	}
	power := energy
	if powerPath != "" && powerPath != energyPath {
		power, err = data.LoadSamplesCSV(powerPath)
		if err != nil {
			return nil, err
		}
	}
	e.log.WithFields(logrus.Fields{
		"energy_file": energyPath,
		"power_file":  powerPath,
	}).Debug("inputs loaded")

	return e.Run(energy, power)
}

// validate rejects samples the segmenter cannot place: a missing timestamp or
// a non-finite reading.
func validate(samples []model.Sample) error {
	for i, s := range samples {
		if err := s.Check(); err != nil {
			return &model.MalformedRecordError{Source: "samples", Line: i + 1, Err: err}
		}
	}
	return nil
}

// checkOrder warns when timestamps go backwards. Runs are still computed in
// input order.
func (e *Engine) checkOrder(samples []model.Sample) {
	for i := 1; i < len(samples); i++ {
		if samples[i].Time.Before(samples[i-1].Time) {
			e.log.WithFields(logrus.Fields{
				"index": i,
				"time":  samples[i].Time,
				"prev":  samples[i-1].Time,
			}).Warn("samples out of time order; periods may be split")
			return
		}
	}
}
