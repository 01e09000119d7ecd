package score

import (
	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/peptide"
	"github.com/montanaflynn/stats"
)

// Summary describes the spread of relatedness scores in a batch
type Summary struct {
	Mean float64 `json:"mean_relatedness"`
	Std  float64 `json:"std_relatedness"`
	Min  float64 `json:"min_relatedness"`
	Max  float64 `json:"max_relatedness"`
}

// Summarize returns the mean, sample standard deviation, min and max of the
// measurements' scores. The standard deviation needs at least two measurements.
func Summarize(measurements []Measurement) (Summary, error) {
	var s Summary
	scores := Scores(measurements)

	var err error
	if s.Mean, err = stats.Mean(scores); err != nil {
		return s, apperr.WithCode(apperr.CodeStatisticsUndefined, err, "no scores to summarize")
	}
	if s.Min, err = stats.Min(scores); err != nil {
		return s, apperr.WithCode(apperr.CodeStatisticsUndefined, err, "failed to find min score")
	}
	if s.Max, err = stats.Max(scores); err != nil {
		return s, apperr.WithCode(apperr.CodeStatisticsUndefined, err, "failed to find max score")
	}
	if len(scores) < 2 {
		return s, apperr.Newf(apperr.CodeStatisticsUndefined, "standard deviation needs 2 or more scores, got %d", len(scores))
	}
	if s.Std, err = stats.StandardDeviationSample(scores); err != nil {
		return s, apperr.WithCode(apperr.CodeStatisticsUndefined, err, "failed to compute standard deviation")
	}

	return s, nil
}

// Scores pulls the relatedness scores out of measurements, in order
func Scores(measurements []Measurement) []float64 {
	scores := make([]float64, len(measurements))
	for i, m := range measurements {
		scores[i] = m.Score
	}
	return scores
}

// OverallSimilarity is the mean exact-match Similarity of query to the background
func OverallSimilarity(query peptide.Peptide, background []peptide.Peptide) (float64, error) {
	sims := make([]float64, len(background))
	for i, c := range background {
		sims[i] = Similarity(query, c)
	}

	mean, err := stats.Mean(sims)
	if err != nil {
		return 0, apperr.WithCode(apperr.CodeStatisticsUndefined, err, "empty background")
	}
	return mean, nil
}

// MismatchDistribution is the mismatch count against each background peptide
func MismatchDistribution(query peptide.Peptide, background []peptide.Peptide) []int {
	counts := make([]int, len(background))
	for i, c := range background {
		counts[i] = Mismatches(query, c)
	}
	return counts
}

// SimilarityMatrix is the pairwise exact-match Similarity between rows and
// columns. Entry [i][j] compares rows[i] to cols[j].
func SimilarityMatrix(rows, cols []peptide.Peptide) [][]float64 {
	matrix := make([][]float64, len(rows))
	for i, r := range rows {
		matrix[i] = make([]float64, len(cols))
		for j, c := range cols {
			matrix[i][j] = Similarity(r, c)
		}
	}
	return matrix
}
