package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motor-audit/internal/model"
)

var day = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// labeled builds samples five minutes apart starting at midnight.
func labeled(states ...model.State) []model.LabeledSample {
	out := make([]model.LabeledSample, len(states))
	for i, s := range states {
		out[i] = model.LabeledSample{
			Sample: model.Sample{Time: day.Add(time.Duration(i) * 5 * time.Minute)},
			State:  s,
		}
	}
	return out
}

func TestSegmentEmpty(t *testing.T) {
	got := Segment(nil)
	require.Len(t, got, 3)
	for _, s := range model.TrackedStates {
		ivs, ok := got[s]
		assert.True(t, ok, "missing key %s", s)
		assert.NotNil(t, ivs)
		assert.Empty(t, ivs)
	}
	_, ok := got[model.StateNormal]
	assert.False(t, ok)
}

func TestSegment(t *testing.T) {
	const (
		V = model.StateVampire
		I = model.StateIdle
		N = model.StateNormal
		O = model.StateOverload
		U = model.StateUnknown
	)

	tests := []struct {
		name   string
		states []model.State
		want   map[model.State][][2]string
	}{
		{
			name:   "single vampire sample",
			states: []model.State{V},
			want: map[model.State][][2]string{
				V: {{"00:00", "00:00"}},
				I: {},
				O: {},
			},
		},
		{
			name:   "mixed run",
			states: []model.State{I, I, V, N, O},
			want: map[model.State][][2]string{
				I: {{"00:00", "00:05"}},
				V: {{"00:10", "00:10"}},
				O: {{"00:20", "00:20"}},
			},
		},
		{
			name:   "same state merges",
			states: []model.State{O, O, O, O},
			want: map[model.State][][2]string{
				V: {},
				I: {},
				O: {{"00:00", "00:15"}},
			},
		},
		{
			name:   "tracked to tracked has no gap",
			states: []model.State{V, V, O, O},
			want: map[model.State][][2]string{
				V: {{"00:00", "00:05"}},
				I: {},
				O: {{"00:10", "00:15"}},
			},
		},
		{
			name:   "untracked only",
			states: []model.State{N, U, N},
			want: map[model.State][][2]string{
				V: {},
				I: {},
				O: {},
			},
		},
		{
			name:   "reopens after normal",
			states: []model.State{I, N, N, I, I, U, I},
			want: map[model.State][][2]string{
				V: {},
				I: {{"00:00", "00:00"}, {"00:15", "00:20"}, {"00:30", "00:30"}},
				O: {},
			},
		},
		{
			name:   "open run at end closes at last sample",
			states: []model.State{N, V, V, V},
			want: map[model.State][][2]string{
				V: {{"00:05", "00:15"}},
				I: {},
				O: {},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(labeled(tt.states...)).Pairs()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegmentIntervalsCarryState(t *testing.T) {
	got := Segment(labeled(model.StateIdle, model.StateOverload))
	require.Len(t, got[model.StateIdle], 1)
	require.Len(t, got[model.StateOverload], 1)
	assert.Equal(t, model.StateIdle, got[model.StateIdle][0].State)
	assert.Equal(t, model.StateOverload, got[model.StateOverload][0].State)
	assert.Equal(t, day, got[model.StateIdle][0].End)
	assert.Equal(t, day.Add(5*time.Minute), got[model.StateOverload][0].Start)
}

func TestSegmenterStreaming(t *testing.T) {
	seg := NewSegmenter()
	for _, ls := range labeled(model.StateVampire, model.StateVampire, model.StateNormal) {
		seg.Step(ls)
	}
	got := seg.Finish()
	assert.Equal(t, [][2]string{{"00:00", "00:05"}}, got.Pairs()[model.StateVampire])
}
