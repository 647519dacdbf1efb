package model

import (
	"errors"
	"fmt"
	"time"
)

// TariffBand is a daily time-of-use window [StartHour, EndHour) with a rate in
// minor currency units per kWh. StartHour > EndHour wraps across midnight.
type TariffBand struct {
	Name      string
	StartHour int
	EndHour   int
	Rate      int
}

// TariffTable resolves the rate for a timestamp from its hour of day.
// Hours not covered by any band get DefaultRate.
type TariffTable struct {
	Bands       []TariffBand
	DefaultRate int
	// DefaultName labels the uncovered hours in per-band breakdowns.
	DefaultName string
}

// DefaultTariffTable is the three-band schedule the audit was built for (paise/kWh).
func DefaultTariffTable() TariffTable {
	return TariffTable{
		Bands: []TariffBand{
			{Name: "day", StartHour: 6, EndHour: 18, Rate: 790},
			{Name: "peak", StartHour: 18, EndHour: 22, Rate: 1185},
		},
		DefaultRate: 593,
		DefaultName: "off-peak",
	}
}

// RateFor returns the rate for t. Only the hour of t in its own location
// matters; minutes, date and zone are ignored.
func (t TariffTable) RateFor(at time.Time) int {
	return t.BandFor(at).Rate
}

// BandFor returns the band covering at, or a synthetic band carrying the
// default rate.
func (t TariffTable) BandFor(at time.Time) TariffBand {
	h := at.Hour()
	for _, b := range t.Bands {
		if inWindow(h, b.StartHour, b.EndHour) {
			return b
		}
	}
	return TariffBand{Name: t.DefaultName, Rate: t.DefaultRate}
}

func (t TariffTable) Validate() error {
	if t.DefaultRate < 0 {
		return errors.New("DefaultRate must be >= 0")
	}
	covered := map[int]string{}
	for _, b := range t.Bands {
		if b.StartHour < 0 || b.StartHour > 23 || b.EndHour < 0 || b.EndHour > 24 {
			return fmt.Errorf("band %q: hours must satisfy 0<=start<=23, 0<=end<=24", b.Name)
		}
		if b.StartHour == b.EndHour {
			return fmt.Errorf("band %q: empty window", b.Name)
		}
		if b.Rate < 0 {
			return fmt.Errorf("band %q: rate must be >= 0", b.Name)
		}
		for h := 0; h < 24; h++ {
			if !inWindow(h, b.StartHour, b.EndHour) {
				continue
			}
			if prev, ok := covered[h]; ok {
				return fmt.Errorf("band %q overlaps %q at hour %d", b.Name, prev, h)
			}
			covered[h] = b.Name
		}
	}
	return nil
}

// inWindow checks whether h is in [start, end) on a 24h clock.
// If start == end, the window is empty (always false).
// If start > end, it wraps across midnight.
func inWindow(h, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return h >= start && h < end
	}
	return h >= start || h < end
}
