package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motor-audit/internal/model"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, model.DefaultMotorProfile(), cfg.ToMotorProfile())
	assert.Equal(t, model.DefaultTariffTable(), cfg.ToTariffTable())
	assert.Equal(t, "energy.csv", cfg.Data.EnergyCSV)
	assert.Equal(t, "power.csv", cfg.Data.PowerCSV)
	assert.Equal(t, "paise", cfg.Tariff.CurrencyUnit)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
motor:
  equipment_rating_kw: 45
  efficiency: 0.9
tariff:
  default_rate: 500
  bands:
    - {name: day, start_hour: 8, end_hour: 20, rate: 900}
data:
  energy_csv: "meter/energy.csv"
logging:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	m := cfg.ToMotorProfile()
	assert.Equal(t, 45.0, m.EquipmentRatingKW)
	assert.Equal(t, 1.2, m.ServiceFactor, "unset fields keep defaults")
	assert.InDelta(t, 50.0, m.RatedPowerKW(), 1e-9)

	tariff := cfg.ToTariffTable()
	require.Len(t, tariff.Bands, 1)
	assert.Equal(t, 900, tariff.Bands[0].Rate)
	assert.Equal(t, 500, tariff.DefaultRate)

	assert.Equal(t, "meter/energy.csv", cfg.Data.EnergyCSV)
	assert.Equal(t, "power.csv", cfg.Data.PowerCSV)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("AUDIT_ENERGY_CSV", "/srv/meter/energy.csv")
	t.Setenv("AUDIT_PORT", "9090")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	configContent := `
data:
  energy_csv: $AUDIT_ENERGY_CSV
server:
  port: ${AUDIT_PORT}
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/srv/meter/energy.csv", cfg.Data.EnergyCSV)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadMotorFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "motors"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "motors", "pump.yaml"), []byte(`
motor:
  name: pump
  equipment_rating_kw: 15
  efficiency: 0.92
  service_factor: 1.15
`), 0o644))

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
motor_file: motors/pump.yaml
motor:
  service_factor: 1.25
`), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "pump", cfg.Motor.Name)
	assert.Equal(t, 15.0, cfg.Motor.EquipmentRatingKW)
	assert.Equal(t, 0.92, cfg.Motor.Efficiency)
	assert.Equal(t, 1.25, cfg.Motor.ServiceFactor, "main file overrides motor file")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad efficiency",
			content: "motor:\n  efficiency: 1.5\n",
			wantErr: "motor config invalid: Efficiency must be in (0, 1]",
		},
		{
			name:    "overlapping bands",
			content: "tariff:\n  bands:\n    - {name: a, start_hour: 6, end_hour: 18, rate: 1}\n    - {name: b, start_hour: 12, end_hour: 20, rate: 2}\n",
			wantErr: `tariff config invalid: band "b" overlaps "a" at hour 12`,
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml\n",
			wantErr: `logging.format must be text or json, got "xml"`,
		},
		{
			name:    "missing motor file",
			content: "motor_file: nowhere.yaml\n",
			wantErr: "nowhere.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0o644))
			_, err := Load(configPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestMergeMotor(t *testing.T) {
	base := MotorConfig{Name: "a", EquipmentRatingKW: 10, Efficiency: 0.8, ServiceFactor: 1.1}
	got := MergeMotor(base, MotorConfig{Efficiency: 0.95})
	assert.Equal(t, MotorConfig{Name: "a", EquipmentRatingKW: 10, Efficiency: 0.95, ServiceFactor: 1.1}, got)
}
