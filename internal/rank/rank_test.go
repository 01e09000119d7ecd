package rank

import (
	"errors"
	"testing"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measurements(scores ...float64) []score.Measurement {
	ms := make([]score.Measurement, len(scores))
	subjects := []string{"ESDPIVAQY", "EVDPIGHFY", "EVDPIGLLY", "AAAAAAAAA", "YYYYYYYYY"}
	for i, s := range scores {
		ms[i] = score.Measurement{Query: "EVDPIGHLY", Subject: subjects[i%len(subjects)], Score: s}
	}
	return ms
}

func TestAnnotate(t *testing.T) {
	tbl, err := Annotate(measurements(0.1, 0.2, 0.3))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	rows := tbl.Rows()
	wantZ := []float64{-1, 0, 1}
	wantP := []float64{0.15865525393145707, 0.5, 0.8413447460685429}
	wantPct := []float64{0, 50, 100}
	for i, r := range rows {
		assert.InDelta(t, wantZ[i], r.ZScore, 1e-9)
		assert.InDelta(t, wantP[i], r.PValue, 1e-9)
		assert.InDelta(t, wantPct[i], r.PercentileRank, 1e-12)
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, Columns, tbl.Columns())
	assert.False(t, tbl.Stale())
}

func TestAnnotate_tableOrder(t *testing.T) {
	// rank and percentile follow row order even when scores are descending
	tbl, err := Annotate(measurements(0.9, 0.5, 0.4, 0.2, 0.1))
	require.NoError(t, err)

	var zsum float64
	for i, r := range tbl.Rows() {
		assert.Equal(t, i+1, r.Rank)
		assert.InDelta(t, 25*float64(i), r.PercentileRank, 1e-12)
		zsum += r.ZScore
	}
	assert.InDelta(t, 0, zsum, 1e-9, "zscores are centered on the mean")
	assert.Greater(t, tbl.Row(0).ZScore, tbl.Row(4).ZScore)
}

func TestAnnotate_undefined(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
	}{
		{"no measurements", nil},
		{"one measurement", []float64{0.3}},
		{"zero variance", []float64{0.2, 0.2, 0.2}},
		{"zero variance at 0.1", []float64{0.1, 0.1, 0.1}},
		{"zero variance at 0.7", []float64{0.7, 0.7, 0.7}},
		{"zero variance, many rows", []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Annotate(measurements(tt.scores...))
			assert.Nil(t, tbl)
			assert.True(t, errors.Is(err, apperr.ErrStatisticsUndefined), "got %v", err)
		})
	}
}

func TestAnnotate_identicalBackground(t *testing.T) {
	background := make([]string, 10)
	for i := range background {
		background[i] = "NAAAAAAAA"
	}
	ms, err := score.Batch("AAAAAAAAA", background, score.DefaultWeights())
	require.NoError(t, err)

	for _, annotate := range []func([]score.Measurement) (*Table, error){Annotate, AnnotateByScore} {
		tbl, err := annotate(ms)
		assert.Nil(t, tbl)
		assert.True(t, errors.Is(err, apperr.ErrStatisticsUndefined), "got %v", err)
	}
}

func TestAnnotateByScore(t *testing.T) {
	ms, err := score.Batch("EVDPIGHLY", []string{"ESDPIVAQY", "EVDPIGHFY", "EVDPIGLLY"}, score.DefaultWeights())
	require.NoError(t, err)

	tbl, err := AnnotateByScore(ms)
	require.NoError(t, err)

	var subjects []string
	for _, r := range tbl.Rows() {
		subjects = append(subjects, r.Subject)
	}
	assert.Equal(t, []string{"EVDPIGLLY", "EVDPIGHFY", "ESDPIVAQY"}, subjects)
	assert.Equal(t, 1, tbl.Row(0).Rank)
	assert.Equal(t, 0.0, tbl.Row(0).PercentileRank)

	// input left alone
	assert.Equal(t, "ESDPIVAQY", ms[0].Subject)
}

func TestEndToEnd(t *testing.T) {
	ms, err := score.Batch("EVDPIGHLY", []string{"ESDPIVAQY", "EVDPIGHFY", "EVDPIGLLY"}, score.DefaultWeights())
	require.NoError(t, err)

	tbl, err := Annotate(ms)
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	far, near := tbl.Row(0), tbl.Row(1)
	assert.Equal(t, "ESDPIVAQY", far.Subject)
	assert.Equal(t, "EVDPIGHFY", near.Subject)
	assert.Greater(t, near.NumPositive, far.NumPositive)
	assert.Less(t, near.Score, far.Score)
	assert.Less(t, near.ZScore, far.ZScore)
	assert.Equal(t, []int{1, 2, 3}, []int{tbl.Row(0).Rank, tbl.Row(1).Rank, tbl.Row(2).Rank})
}
