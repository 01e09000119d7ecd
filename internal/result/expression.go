package result

import (
	"sort"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
)

// Expression is a tissue by peptide table of expression levels
type Expression struct {
	// Tissues are the row labels
	Tissues []string `json:"tissues"`

	// levels maps a peptide to its level in each tissue
	levels map[string][]float64
}

// NewExpression checks that every peptide has one level per tissue
func NewExpression(tissues []string, levels map[string][]float64) (*Expression, error) {
	e := &Expression{
		Tissues: append([]string(nil), tissues...),
		levels:  make(map[string][]float64, len(levels)),
	}
	for p, ls := range levels {
		if len(ls) != len(tissues) {
			return nil, apperr.Newf(apperr.CodeMissingColumn, "peptide %s has %d expression levels for %d tissues", p, len(ls), len(tissues))
		}
		e.levels[p] = append([]float64(nil), ls...)
	}
	return e, nil
}

// Column returns the levels of one peptide, one per tissue
func (e *Expression) Column(peptide string) ([]float64, error) {
	ls, ok := e.levels[peptide]
	if !ok {
		return nil, apperr.MissingColumn(peptide)
	}
	return append([]float64(nil), ls...), nil
}

// Peptides are the peptides with expression data, sorted
func (e *Expression) Peptides() []string {
	ps := make([]string, 0, len(e.levels))
	for p := range e.levels {
		ps = append(ps, p)
	}
	sort.Strings(ps)
	return ps
}

// Levels returns a copy of the peptide to levels map, for serialization
func (e *Expression) Levels() map[string][]float64 {
	m := make(map[string][]float64, len(e.levels))
	for p, ls := range e.levels {
		m[p] = append([]float64(nil), ls...)
	}
	return m
}
