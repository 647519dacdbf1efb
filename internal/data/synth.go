package data

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"motor-audit/internal/model"
)

// Timestamp layouts of the meter export. Whole-hour offsets use the short
// "+00" form.
const (
	SampleLayout     = "2006-01-02 15:04:05-07"
	SampleLayoutLong = "2006-01-02 15:04:05-07:00"
)

// LoadBlock is a stretch of the synthetic day at a fixed fraction of rated power.
type LoadBlock struct {
	From     time.Duration // offset from midnight
	Fraction float64       // of rated power; 0 produces an unknown sample
}

// DefaultDay walks the motor through every state and every default tariff
// band: overnight standby with a meter dropout at 03:00, warm-up, production
// with a jam at noon, shift change, evening rush, then standby again.
var DefaultDay = []LoadBlock{
	{0, 0.005},
	{3 * time.Hour, 0},
	{3*time.Hour + 15*time.Minute, 0.005},
	{5 * time.Hour, 0.15},
	{7 * time.Hour, 0.70},
	{12 * time.Hour, 1.35},
	{12*time.Hour + 30*time.Minute, 0.70},
	{17 * time.Hour, 0.20},
	{19 * time.Hour, 1.30},
	{20 * time.Hour, 0.15},
	{22 * time.Hour, 0.005},
}

// GenerateDay samples one day of the given load profile every step.
// Output is deterministic: a small ripple keeps readings realistic without
// crossing state boundaries.
func GenerateDay(day time.Time, step time.Duration, motor model.MotorProfile, blocks []LoadBlock) []model.Sample {
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	rated := motor.RatedPowerKW()
	hours := step.Hours()

	var out []model.Sample
	for i, off := 0, time.Duration(0); off < 24*time.Hour; i, off = i+1, off+step {
		frac := fractionAt(blocks, off)
		kw := frac * rated * (1 + 0.02*math.Sin(float64(i)))
		// Phase imbalance of a few percent, summing to kw.
		w := kw * 1000
		p1 := w * 0.34
		p2 := w * 0.33
		p3 := w - p1 - p2
		out = append(out, model.Sample{
			Time:     midnight.Add(off),
			P1:       round(p1, 3),
			P2:       round(p2, 3),
			P3:       round(p3, 3),
			EnergyWh: round(kw*hours*1000, 3),
		})
	}
	return out
}

func fractionAt(blocks []LoadBlock, off time.Duration) float64 {
	frac := 0.0
	for _, b := range blocks {
		if off >= b.From {
			frac = b.Fraction
		}
	}
	return frac
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// WriteSamplesCSV writes samples to path in the meter export format.
func WriteSamplesCSV(path string, samples []model.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeSamplesCSV(f, samples)
}

func EncodeSamplesCSV(out io.Writer, samples []model.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{ColTime, ColP1, ColP2, ColP3, ColEnergy}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			formatSampleTime(s.Time),
			strconv.FormatFloat(s.P1, 'f', -1, 64),
			strconv.FormatFloat(s.P2, 'f', -1, 64),
			strconv.FormatFloat(s.P3, 'f', -1, 64),
			strconv.FormatFloat(s.EnergyWh, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatSampleTime(t time.Time) string {
	if _, off := t.Zone(); off%3600 != 0 {
		return t.Format(SampleLayoutLong)
	}
	return t.Format(SampleLayout)
}
