package models

import "time"

// ReportResponse represents one audit run
type ReportResponse struct {
	ID        string        `json:"id"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	Sources   []string      `json:"sources,omitempty"`
	Summary   ReportSummary `json:"summary"`
	Ledger    []LedgerRow   `json:"ledger,omitempty"`
}

// ReportSummary contains the three reports and their supporting detail
type ReportSummary struct {
	EnergyKWh    map[string]int64      `json:"energy_kwh"`
	Periods      map[string][]Period   `json:"periods"`
	Cost         map[string]int64      `json:"cost"`
	CostUnit     string                `json:"cost_unit"`
	CostByBand   map[string][]BandCost `json:"cost_by_band"`
	SampleCounts map[string]int        `json:"sample_counts"`
	EnergyWindow TimeWindow            `json:"energy_window"`
	PowerWindow  TimeWindow            `json:"power_window"`
	LoadProfile  LoadProfile           `json:"load_profile"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LoadProfile summarises the power readings
type LoadProfile struct {
	Count        int     `json:"count"`
	MinKW        float64 `json:"min_kw"`
	MaxKW        float64 `json:"max_kw"`
	MeanKW       float64 `json:"mean_kw"`
	P05KW        float64 `json:"p05_kw"`
	P95KW        float64 `json:"p95_kw"`
	SpreadP95P05 float64 `json:"spread_p95_p05_kw"`
	LoadFactor   float64 `json:"load_factor"`
}

// Period is one continuous run of a tracked state
type Period struct {
	Start     string    `json:"start"` // HH:MM
	End       string    `json:"end"`   // HH:MM
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Minutes   float64   `json:"minutes"`
}

// BandCost is wasteful energy and cost inside one tariff band
type BandCost struct {
	Band      string  `json:"band"`
	Rate      int     `json:"rate"`
	EnergyKWh float64 `json:"energy_kwh"`
	Cost      float64 `json:"cost"`
}

// LedgerRow represents one sample in the report ledger
type LedgerRow struct {
	Index     int       `json:"index"`
	Time      time.Time `json:"time"`
	P1        float64   `json:"p1"`
	P2        float64   `json:"p2"`
	P3        float64   `json:"p3"`
	PowerKW   float64   `json:"power_kw"`
	State     string    `json:"state"` // "vampire", "idle", "normal", "overload", "unknown"
	EnergyKWh float64   `json:"energy_kwh"`
	Band      string    `json:"band"`
	Rate      int       `json:"rate"`
	Cost      float64   `json:"cost"`
	CumCost   float64   `json:"cum_cost"`
}

// LedgerResponse is the body of GET /api/v1/reports/:id/ledger
type LedgerResponse struct {
	ID     string      `json:"id"`
	Ledger []LedgerRow `json:"ledger"`
}

// MotorInfo describes the configured motor and its state thresholds
type MotorInfo struct {
	Name              string     `json:"name,omitempty"`
	EquipmentRatingKW float64    `json:"equipment_rating_kw"`
	Efficiency        float64    `json:"efficiency"`
	ServiceFactor     float64    `json:"service_factor"`
	RatedPowerKW      float64    `json:"rated_power_kw"`
	Thresholds        Thresholds `json:"thresholds"`
}

// Thresholds are the inclusive upper bounds of the vampire, idle and normal states
type Thresholds struct {
	VampireKW  float64 `json:"vampire_kw"`
	IdleKW     float64 `json:"idle_kw"`
	OverloadKW float64 `json:"overload_kw"`
}

// TariffInfo describes the time-of-use tariff
type TariffInfo struct {
	CurrencyUnit string     `json:"currency_unit"`
	DefaultRate  int        `json:"default_rate"`
	DefaultName  string     `json:"default_name"`
	Bands        []BandInfo `json:"bands"`
}

// BandInfo is one tariff band, hours half-open [start, end)
type BandInfo struct {
	Name      string `json:"name"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Rate      int    `json:"rate"`
}

// RateResponse is the rate in force at a given time
type RateResponse struct {
	Time         time.Time `json:"time"`
	Band         string    `json:"band"`
	Rate         int       `json:"rate"`
	CurrencyUnit string    `json:"currency_unit"`
}

// ClassifyResponse is the state of one power reading
type ClassifyResponse struct {
	PowerKW float64 `json:"power_kw"`
	State   string  `json:"state"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
