// Package background is the set of reference peptides a query is screened against.
package background

import (
	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/peptide"
)

// Stats are summary counts for a background set
type Stats struct {
	// Count is the number of peptides in the set
	Count int `json:"count"`

	// OffTarget is reserved for downstream annotation of off-target hits
	OffTarget int `json:"off_target"`
}

// Set is an allele tagged collection of validated peptides. Its peptides
// can't change after New; only the OffTarget counter can.
type Set struct {
	allele   string
	peptides []peptide.Peptide
	stats    Stats
}

// New validates every peptide and returns the set. If any peptide is invalid
// the error has code CONSTRUCTION (wrapping the validation error) and the
// set is nil.
func New(allele string, peptides []string) (*Set, error) {
	validated, err := peptide.ValidateAll(peptides)
	if err != nil {
		return nil, apperr.WithCode(apperr.CodeConstruction, err, "failed to build background for allele "+allele)
	}

	return &Set{
		allele:   allele,
		peptides: validated,
		stats:    Stats{Count: len(validated)},
	}, nil
}

// Allele is the HLA allele that the set is tagged with
func (s *Set) Allele() string {
	return s.allele
}

// Len is the number of peptides in the set
func (s *Set) Len() int {
	return len(s.peptides)
}

// Peptides returns a copy of the set's peptides
func (s *Set) Peptides() []peptide.Peptide {
	return append([]peptide.Peptide(nil), s.peptides...)
}

// Strings returns the peptides as sequences, in set order
func (s *Set) Strings() []string {
	seqs := make([]string, len(s.peptides))
	for i, p := range s.peptides {
		seqs[i] = p.String()
	}
	return seqs
}

// Stats returns the set's summary counts
func (s *Set) Stats() Stats {
	return s.stats
}

// MarkOffTarget adds n to the off-target counter
func (s *Set) MarkOffTarget(n int) {
	s.stats.OffTarget += n
}
