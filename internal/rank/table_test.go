package rank

import (
	"errors"
	"testing"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_Value(t *testing.T) {
	tbl, err := Annotate(measurements(0.1, 0.2, 0.3))
	require.NoError(t, err)
	r := tbl.Row(2)
	r.NumPositive, r.NumNegative = 7, 2
	r.Extra = map[string]float64{"expression": 12.5}

	tests := []struct {
		name    string
		col     string
		want    float64
		wantErr error
	}{
		{"score", ColScore, 0.3, nil},
		{"positives", ColNumPositive, 7, nil},
		{"negatives", ColNumNegative, 2, nil},
		{"rank", ColRank, 3, nil},
		{"percentile", ColPercentileRank, 100, nil},
		{"extra column", "expression", 12.5, nil},
		{"text column", ColSubject, 0, apperr.ErrInvalidCondition},
		{"unknown column", "tissue", 0, apperr.ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Value(tt.col)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestRow_Text(t *testing.T) {
	r := Row{}
	r.Subject = "EVDPIGHFY"
	r.Score = 5.0 / 171.0
	r.Rank = 2

	s, err := r.Text(ColSubject, 4)
	require.NoError(t, err)
	assert.Equal(t, "EVDPIGHFY", s)

	s, err = r.Text(ColScore, 4)
	require.NoError(t, err)
	assert.Equal(t, "0.0292", s)

	s, err = r.Text(ColScore, -1)
	require.NoError(t, err)
	assert.Equal(t, "0.029239766081871343", s)

	s, err = r.Text(ColRank, 4)
	require.NoError(t, err)
	assert.Equal(t, "2", s)

	_, err = r.Text("missing", 4)
	assert.True(t, errors.Is(err, apperr.ErrMissingColumn))
}

func TestTable_copies(t *testing.T) {
	tbl, err := Annotate(measurements(0.1, 0.2, 0.3))
	require.NoError(t, err)

	rows := tbl.Rows()
	rows[0].Score = 99
	rows[0].Extra = map[string]float64{"x": 1}
	assert.Equal(t, 0.1, tbl.Row(0).Score)
	assert.Nil(t, tbl.Row(0).Extra)

	filtered := tbl.WithRows(rows[1:])
	assert.Equal(t, 2, filtered.Len())
	assert.True(t, filtered.Stale())
	assert.False(t, tbl.Stale())

	re, err := filtered.Recompute()
	require.NoError(t, err)
	assert.False(t, re.Stale())
	assert.Equal(t, 1, re.Row(0).Rank)
	assert.Equal(t, 100.0, re.Row(1).PercentileRank)
}

func TestTable_WithColumns(t *testing.T) {
	tbl, err := Annotate(measurements(0.1, 0.2, 0.3))
	require.NoError(t, err)

	sel, err := tbl.WithColumns([]string{ColSubject, ColScore})
	require.NoError(t, err)
	assert.Equal(t, []string{ColSubject, ColScore}, sel.Columns())
	assert.Equal(t, Columns, tbl.Columns())

	_, err = tbl.WithColumns([]string{ColSubject, "expression"})
	assert.True(t, errors.Is(err, apperr.ErrMissingColumn))
}

func TestNewTable(t *testing.T) {
	src, err := Annotate(measurements(0.1, 0.2, 0.3))
	require.NoError(t, err)

	rows := src.Rows()
	for i := range rows {
		rows[i].Extra = map[string]float64{"tpm": float64(i)}
	}

	tbl, err := NewTable(append(append([]string(nil), Columns...), "tpm"), rows)
	require.NoError(t, err)
	assert.False(t, tbl.Stale())
	assert.Equal(t, 2.0, tbl.Row(2).Extra["tpm"])

	rows[1].Extra = nil
	_, err = NewTable(append(append([]string(nil), Columns...), "tpm"), rows)
	assert.True(t, errors.Is(err, apperr.ErrMissingColumn))
}
