// Package peptide validates 9-mer peptides and encodes their residues.
package peptide

import (
	apperr "github.com/jjtimmons/crossdome/internal/errors"
)

// Length is the only peptide length crossdome supports
const Length = 9

// Alphabet is the 20 standard amino acids in alphabetical order. A residue's
// index in Alphabet is its code.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// Residue is a single amino acid symbol
type Residue byte

// Peptide is a validated 9-mer. It is a value type, so it can't be changed
// behind the back of whoever validated it.
type Peptide [Length]Residue

// codes maps a residue byte to its code; -1 for non-standard residues
var codes = func() [256]int {
	var c [256]int
	for i := range c {
		c[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		c[Alphabet[i]] = i
	}
	return c
}()

// Validate returns the peptide for seq or fails with an INVALID_LENGTH
// or INVALID_RESIDUE error. seq is never truncated, padded or case-folded.
func Validate(seq string) (Peptide, error) {
	var p Peptide
	if len(seq) != Length {
		return p, apperr.Newf(apperr.CodeInvalidLength, "peptide %q has length %d, must be a %d-mer", seq, len(seq), Length)
	}

	for i := 0; i < Length; i++ {
		if codes[seq[i]] < 0 {
			return p, apperr.Newf(apperr.CodeInvalidResidue, "peptide %q has non-standard residue %q at position %d", seq, seq[i], i+1)
		}
		p[i] = Residue(seq[i])
	}

	return p, nil
}

// MustValidate is Validate for literals in tests and examples. It panics on invalid input.
func MustValidate(seq string) Peptide {
	p, err := Validate(seq)
	if err != nil {
		panic(err)
	}
	return p
}

// ValidateAll validates every sequence and fails on the first invalid one.
func ValidateAll(seqs []string) ([]Peptide, error) {
	peptides := make([]Peptide, len(seqs))
	for i, s := range seqs {
		p, err := Validate(s)
		if err != nil {
			return nil, apperr.Wrapf(err, "peptide %d of %d", i+1, len(seqs))
		}
		peptides[i] = p
	}
	return peptides, nil
}

// String returns the peptide's sequence
func (p Peptide) String() string {
	b := make([]byte, Length)
	for i, r := range p {
		b[i] = byte(r)
	}
	return string(b)
}

// Codes returns the encoding of each position
func (p Peptide) Codes() [Length]int {
	var c [Length]int
	for i, r := range p {
		c[i] = codes[r]
	}
	return c
}

// Encode maps a residue to its code in 0..19
func Encode(r Residue) (int, error) {
	if c := codes[r]; c >= 0 {
		return c, nil
	}
	return -1, apperr.Newf(apperr.CodeInvalidResidue, "non-standard residue %q", byte(r))
}

// Decode is the inverse of Encode
func Decode(code int) (Residue, error) {
	if code < 0 || code >= len(Alphabet) {
		return 0, apperr.Newf(apperr.CodeInvalidResidue, "no residue for code %d", code)
	}
	return Residue(Alphabet[code]), nil
}
