package data

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motor-audit/internal/model"
)

func TestGenerateDayCoversAllStates(t *testing.T) {
	day := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	samples := GenerateDay(day, 5*time.Minute, model.DefaultMotorProfile(), DefaultDay)
	require.Len(t, samples, 288)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), samples[0].Time)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 55, 0, 0, time.UTC), samples[287].Time)

	seen := map[model.State]int{}
	for _, ls := range model.Label(samples, model.DefaultMotorProfile()) {
		seen[ls.State]++
	}
	for _, s := range model.AllStates {
		assert.Positive(t, seen[s], "state %s", s)
	}
	// 03:00 to 03:15 is the meter dropout.
	assert.Equal(t, 3, seen[model.StateUnknown])
}

func TestGenerateDayIsDeterministic(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	a := GenerateDay(day, time.Minute, model.DefaultMotorProfile(), DefaultDay)
	b := GenerateDay(day, time.Minute, model.DefaultMotorProfile(), DefaultDay)
	assert.Equal(t, a, b)
}

func TestEncodeSamplesCSVRoundTrip(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	samples := GenerateDay(day, time.Hour, model.DefaultMotorProfile(), DefaultDay)

	var buf bytes.Buffer
	require.NoError(t, EncodeSamplesCSV(&buf, samples))
	assert.True(t, strings.HasPrefix(buf.String(), "time,p1,p2,p3,energy\n2024-01-15 00:00:00+00,"), buf.String())

	got, err := ReadSamples(&buf, "synthetic")
	require.NoError(t, err)
	require.Len(t, got, len(samples))
	for i := range samples {
		assert.True(t, samples[i].Time.Equal(got[i].Time), "row %d", i)
		assert.Equal(t, samples[i].P1, got[i].P1)
		assert.Equal(t, samples[i].EnergyWh, got[i].EnergyWh)
	}
}

func TestEncodeSamplesCSVHalfHourOffset(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	s := []model.Sample{{Time: time.Date(2024, 1, 15, 18, 0, 0, 0, ist), P1: 1, P2: 1, P3: 1, EnergyWh: 1}}

	var buf bytes.Buffer
	require.NoError(t, EncodeSamplesCSV(&buf, s))
	assert.Contains(t, buf.String(), "2024-01-15 18:00:00+05:30")

	got, err := ReadSamples(&buf, "ist")
	require.NoError(t, err)
	assert.Equal(t, 18, got[0].Time.Hour())
}
