package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"motor-audit/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
// Every field has a default (see Default); a file only needs the overrides.
type Config struct {
	// Optional: load the motor nameplate from a separate YAML (e.g. examples/motors/*.yaml).
	// If both MotorFile and Motor are provided, Motor overrides MotorFile.
	MotorFile string        `yaml:"motor_file"`
	Motor     MotorConfig   `yaml:"motor"`
	Tariff    TariffConfig  `yaml:"tariff"`
	Data      DataConfig    `yaml:"data"`
	Logging   LoggingConfig `yaml:"logging"`
	Server    ServerConfig  `yaml:"server"`
}

type MotorConfig struct {
	Name              string  `yaml:"name"`
	EquipmentRatingKW float64 `yaml:"equipment_rating_kw"`
	Efficiency        float64 `yaml:"efficiency"`
	ServiceFactor     float64 `yaml:"service_factor"`
}

type TariffConfig struct {
	// CurrencyUnit labels cost figures in reports, e.g. "paise".
	CurrencyUnit string       `yaml:"currency_unit"`
	DefaultRate  int          `yaml:"default_rate"`
	DefaultName  string       `yaml:"default_name"`
	Bands        []BandConfig `yaml:"bands"`
}

type BandConfig struct {
	Name      string `yaml:"name"`
	StartHour int    `yaml:"start_hour"`
	EndHour   int    `yaml:"end_hour"`
	Rate      int    `yaml:"rate"`
}

type DataConfig struct {
	EnergyCSV string `yaml:"energy_csv"`
	PowerCSV  string `yaml:"power_csv"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	CacheSize   int      `yaml:"cache_size"`
	CORSOrigins []string `yaml:"cors_origins"`
	MaxUploadMB int      `yaml:"max_upload_mb"` // multipart limit for report uploads
}

// Default returns the configuration for the 90 kW motor on the three-band tariff.
func Default() *Config {
	m := model.DefaultMotorProfile()
	t := model.DefaultTariffTable()

	bands := make([]BandConfig, len(t.Bands))
	for i, b := range t.Bands {
		bands[i] = BandConfig{Name: b.Name, StartHour: b.StartHour, EndHour: b.EndHour, Rate: b.Rate}
	}

	return &Config{
		Motor: MotorConfig{
			Name:              "default",
			EquipmentRatingKW: m.EquipmentRatingKW,
			Efficiency:        m.Efficiency,
			ServiceFactor:     m.ServiceFactor,
		},
		Tariff: TariffConfig{
			CurrencyUnit: "paise",
			DefaultRate:  t.DefaultRate,
			DefaultName:  t.DefaultName,
			Bands:        bands,
		},
		Data: DataConfig{
			EnergyCSV: "energy.csv",
			PowerCSV:  "power.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Port:        8080,
			CacheSize:   128,
			CORSOrigins: []string{"*"},
			MaxUploadMB: 32,
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// ${VAR} references are expanded before decoding so secrets and paths can
	// come from the environment.
	expanded := os.ExpandEnv(string(raw))

	var override Config
	if err := yaml.Unmarshal([]byte(expanded), &override); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// If motor_file is set, load it and merge in any explicit overrides from the main file.
	motor := override.Motor
	if override.MotorFile != "" {
		motorPath := override.MotorFile
		if !filepath.IsAbs(motorPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), motorPath)
			if _, err := os.Stat(cand); err == nil {
				motorPath = cand
			}
		}
		loaded, err := loadMotorFile(motorPath)
		if err != nil {
			return nil, err
		}
		motor = MergeMotor(loaded, override.Motor)
		c.MotorFile = override.MotorFile
	}
	c.Motor = MergeMotor(c.Motor, motor)
	c.Tariff = mergeTariff(c.Tariff, override.Tariff)
	c.Data = mergeData(c.Data, override.Data)
	c.Logging = mergeLogging(c.Logging, override.Logging)
	c.Server = mergeServer(c.Server, override.Server)
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.ToMotorProfile().Validate(); err != nil {
		return fmt.Errorf("motor config invalid: %w", err)
	}
	if err := c.ToTariffTable().Validate(); err != nil {
		return fmt.Errorf("tariff config invalid: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.CacheSize <= 0 {
		return errors.New("server.cache_size must be > 0")
	}
	return nil
}

func (c *Config) ToMotorProfile() model.MotorProfile {
	return model.MotorProfile{
		EquipmentRatingKW: c.Motor.EquipmentRatingKW,
		Efficiency:        c.Motor.Efficiency,
		ServiceFactor:     c.Motor.ServiceFactor,
	}
}

func (c *Config) ToTariffTable() model.TariffTable {
	bands := make([]model.TariffBand, len(c.Tariff.Bands))
	for i, b := range c.Tariff.Bands {
		bands[i] = model.TariffBand{Name: b.Name, StartHour: b.StartHour, EndHour: b.EndHour, Rate: b.Rate}
	}
	return model.TariffTable{
		Bands:       bands,
		DefaultRate: c.Tariff.DefaultRate,
		DefaultName: c.Tariff.DefaultName,
	}
}

type motorFileWrapper struct {
	Motor MotorConfig `yaml:"motor"`
}

func loadMotorFile(path string) (MotorConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MotorConfig{}, err
	}
	var w motorFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return MotorConfig{}, err
	}
	return w.Motor, nil
}

// MergeMotor overlays non-zero fields from override onto base.
// This is used when loading a motor file and then applying overrides from the main config.
func MergeMotor(base, override MotorConfig) MotorConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.EquipmentRatingKW != 0 {
		out.EquipmentRatingKW = override.EquipmentRatingKW
	}
	if override.Efficiency != 0 {
		out.Efficiency = override.Efficiency
	}
	if override.ServiceFactor != 0 {
		out.ServiceFactor = override.ServiceFactor
	}
	return out
}

// mergeTariff replaces the band list wholesale when the override has one;
// merging individual bands would make overlaps too easy to create by accident.
func mergeTariff(base, override TariffConfig) TariffConfig {
	out := base
	if override.CurrencyUnit != "" {
		out.CurrencyUnit = override.CurrencyUnit
	}
	if override.DefaultRate != 0 {
		out.DefaultRate = override.DefaultRate
	}
	if override.DefaultName != "" {
		out.DefaultName = override.DefaultName
	}
	if override.Bands != nil {
		out.Bands = override.Bands
	}
	return out
}

func mergeData(base, override DataConfig) DataConfig {
	out := base
	if override.EnergyCSV != "" {
		out.EnergyCSV = override.EnergyCSV
	}
	if override.PowerCSV != "" {
		out.PowerCSV = override.PowerCSV
	}
	return out
}

func mergeLogging(base, override LoggingConfig) LoggingConfig {
	out := base
	if override.Level != "" {
		out.Level = override.Level
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	return out
}

func mergeServer(base, override ServerConfig) ServerConfig {
	out := base
	if override.Port != 0 {
		out.Port = override.Port
	}
	if override.CacheSize != 0 {
		out.CacheSize = override.CacheSize
	}
	if override.CORSOrigins != nil {
		out.CORSOrigins = override.CORSOrigins
	}
	if override.MaxUploadMB != 0 {
		out.MaxUploadMB = override.MaxUploadMB
	}
	return out
}
