// Package rank turns a batch of relatedness measurements into a ranking
// table: z-score, p-value, percentile rank and ordinal rank per row.
package rank

import (
	"sort"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Annotate computes the statistics over all measurements, in the order given:
//
//	zscore          (s - mean) / sample std
//	pvalue          standard normal CDF at the zscore (lower tail)
//	percentile_rank 100 * i / (N-1), i being the zero-based row index
//	rank            i + 1
//
// percentile_rank and rank follow row order, not score. Sort the
// measurements first, or use AnnotateByScore, for a score ordered ranking.
//
// Fewer than two measurements, or scores that are all equal, leave the
// zscore undefined and fail with STATISTICS_UNDEFINED.
func Annotate(measurements []score.Measurement) (*Table, error) {
	n := len(measurements)
	if n < 2 {
		return nil, apperr.Newf(apperr.CodeStatisticsUndefined, "ranking needs 2 or more measurements, got %d", n)
	}

	scores := score.Scores(measurements)
	lo, _ := stats.Min(scores)
	hi, _ := stats.Max(scores)
	if lo == hi {
		return nil, apperr.Newf(apperr.CodeStatisticsUndefined, "all %d scores equal %v, zscore is undefined", n, lo)
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return nil, apperr.WithCode(apperr.CodeStatisticsUndefined, err, "failed to compute mean score")
	}
	std, err := stats.StandardDeviationSample(scores)
	if err != nil {
		return nil, apperr.WithCode(apperr.CodeStatisticsUndefined, err, "failed to compute score standard deviation")
	}
	if std == 0 {
		return nil, apperr.Newf(apperr.CodeStatisticsUndefined, "scores around %v have no spread, zscore is undefined", mean)
	}

	rows := make([]Row, n)
	for i, m := range measurements {
		z := (m.Score - mean) / std
		rows[i] = Row{
			Measurement:    m,
			ZScore:         z,
			PValue:         distuv.UnitNormal.CDF(z),
			PercentileRank: 100 * float64(i) / float64(n-1),
			Rank:           i + 1,
		}
	}

	t := &Table{
		rows:    rows,
		columns: append([]string(nil), Columns...),
	}
	t.basis = t.subjects()
	return t, nil
}

// AnnotateByScore ranks by score: the measurements are stably sorted from
// most to least related (ascending distance) and then annotated, so rank 1
// is the closest subject and percentile_rank reflects score standing.
// The input slice isn't reordered.
func AnnotateByScore(measurements []score.Measurement) (*Table, error) {
	sorted := append([]score.Measurement(nil), measurements...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score < sorted[j].Score
	})
	return Annotate(sorted)
}
