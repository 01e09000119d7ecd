package score

import (
	"math"
	"strconv"
	"strings"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/peptide"
)

// Weights scales each position's contribution to the relatedness score.
// A zero weight means full tolerance of substitutions at that position.
type Weights [peptide.Length]float64

// DefaultWeights returns the unweighted vector (all ones). It's a fresh value
// on every call.
func DefaultWeights() Weights {
	var w Weights
	for i := range w {
		w[i] = 1
	}
	return w
}

// NewWeights builds Weights from a slice, which must have exactly 9 entries.
func NewWeights(ws []float64) (Weights, error) {
	var w Weights
	if len(ws) != peptide.Length {
		return w, apperr.Newf(apperr.CodeInvalidWeights, "expected %d position weights, got %d", peptide.Length, len(ws))
	}
	copy(w[:], ws)
	return w, w.Validate()
}

// ParseWeights parses a comma separated list like "1,1,0.5,1,1,1,1,1,2"
func ParseWeights(s string) (Weights, error) {
	fields := strings.Split(s, ",")
	ws := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Weights{}, apperr.WithCode(apperr.CodeInvalidWeights, err, "failed to parse weight "+strconv.Quote(f))
		}
		ws = append(ws, v)
	}
	return NewWeights(ws)
}

// Validate checks that no weight is negative, NaN or infinite
func (w Weights) Validate() error {
	for i, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return apperr.Newf(apperr.CodeInvalidWeights, "weight at position %d is %v, must be a finite non-negative number", i+1, v)
		}
	}
	return nil
}

// Slice returns the weights as a new slice
func (w Weights) Slice() []float64 {
	return append([]float64(nil), w[:]...)
}
