// Package score compares 9-mer peptides: the position weighted relatedness
// distance, exact match counts, and scoring a query against a background.
package score

import (
	"math"

	"github.com/jjtimmons/crossdome/internal/peptide"
)

// maxCodeDiff is the largest per-position distance between two residue codes
var maxCodeDiff = float64(len(peptide.Alphabet) - 1)

// Relatedness is the normalized, position weighted distance between two
// peptides. 0 means identical and 1 means every weighted position is as far
// apart as two codes can be.
//
// Each position contributes sqrt(w) * sqrt((q-c)^2), and the sum is divided
// by the same sum taken at the maximum code difference (19). With unit weights
// that's 9*19. The denominator follows the weights so the result stays in
// [0,1] whatever the weight scale. If every weight is zero the distance is 0.
//
// Note that this differs from dividing by the fixed 9*19 whenever the
// weights aren't all equal: weighted scores here are the fixed-denominator
// score times 9 / sum(sqrt(w)), so scores from the two conventions only agree
// for unit weights.
func Relatedness(query, candidate peptide.Peptide, w Weights) float64 {
	qc, cc := query.Codes(), candidate.Codes()

	var dist, norm float64
	for i := range qc {
		sw := math.Sqrt(w[i])
		d := float64(qc[i] - cc[i])
		dist += sw * math.Sqrt(d*d)
		norm += sw * maxCodeDiff
	}

	if norm == 0 {
		return 0
	}
	return dist / norm
}

// Matches is the number of positions with the same residue. It compares the
// residues directly, not their codes.
func Matches(query, candidate peptide.Peptide) int {
	n := 0
	for i := range query {
		if query[i] == candidate[i] {
			n++
		}
	}
	return n
}

// Mismatches is peptide.Length - Matches
func Mismatches(query, candidate peptide.Peptide) int {
	return peptide.Length - Matches(query, candidate)
}

// Similarity is the fraction of positions that match exactly, in [0,1]
func Similarity(query, candidate peptide.Peptide) float64 {
	return float64(Matches(query, candidate)) / peptide.Length
}

// Distance is the unweighted mismatch count as a float
func Distance(query, candidate peptide.Peptide) float64 {
	return float64(Mismatches(query, candidate))
}

// SubstitutionMatrix marks each position 0 for a match and 1 for a substitution
func SubstitutionMatrix(query, candidate peptide.Peptide) [peptide.Length]int {
	var m [peptide.Length]int
	for i := range query {
		if query[i] != candidate[i] {
			m[i] = 1
		}
	}
	return m
}
