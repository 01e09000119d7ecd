package crossdome

import (
	"fmt"
	"strings"
	"text/tabwriter"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/io"
	"github.com/jjtimmons/crossdome/internal/peptide"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/spf13/cobra"
)

// PairSummary is the spread of scores for a query against a background
type PairSummary struct {
	score.Summary

	// Count of background peptides
	Count int

	// Similarity is the mean fraction of exactly matching positions
	Similarity float64
}

// SummaryCmd logs the distribution of relatedness scores of a query against a background
func SummaryCmd(cmd *cobra.Command, args []string) error {
	flags, conf, err := parseCmdFlags(cmd, args)
	if err != nil {
		return err
	}

	bg, err := io.ReadBackground(flags.background, flags.allele, conf.PeptideColumn)
	if err != nil {
		return err
	}

	s, err := Summarize(flags.query, bg.Peptides(), flags.weights, conf.Workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 3, ' ', 0)
	fmt.Fprintf(w, "query\tallele\tcount\tmean relatedness\tstd relatedness\tmin relatedness\tmax relatedness\tmean similarity\t\n")
	fmt.Fprintf(w, "%s\t%s\t%d\t%.*f\t%.*f\t%.*f\t%.*f\t%.*f\t\n",
		flags.query, bg.Allele(), s.Count,
		conf.Precision, s.Mean, conf.Precision, s.Std, conf.Precision, s.Min, conf.Precision, s.Max, conf.Precision, s.Similarity,
	)
	return w.Flush()
}

// Summarize scores query against background and summarizes the scores
func Summarize(query string, background []peptide.Peptide, w score.Weights, workers int) (PairSummary, error) {
	q, err := peptide.Validate(query)
	if err != nil {
		return PairSummary{}, err
	}

	seqs := make([]string, len(background))
	for i, p := range background {
		seqs[i] = p.String()
	}

	ms, err := score.Batch(query, seqs, w, score.WithWorkers(workers))
	if err != nil {
		return PairSummary{}, err
	}

	s, err := score.Summarize(ms)
	if err != nil {
		return PairSummary{}, err
	}

	sim, err := score.OverallSimilarity(q, background)
	if err != nil {
		return PairSummary{}, err
	}

	return PairSummary{Summary: s, Count: len(ms), Similarity: sim}, nil
}

// CompareCmd logs how a query and one candidate differ, position by position
func CompareCmd(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return apperr.New(apperr.CodeInvalidLength, "expecting two peptides: a query and a candidate")
	}

	conf, err := configFor(cmd)
	if err != nil {
		return err
	}
	weights, err := parseWeights(cmd, conf)
	if err != nil {
		return err
	}

	c, err := Compare(args[0], args[1], weights)
	if err != nil {
		return err
	}

	subs := make([]string, len(c.Substitutions))
	for i, s := range c.Substitutions {
		subs[i] = fmt.Sprint(s)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 3, ' ', 0)
	fmt.Fprintf(w, "query\t%s\t\n", c.Query)
	fmt.Fprintf(w, "candidate\t%s\t\n", c.Candidate)
	fmt.Fprintf(w, "substitutions\t%s\t\n", strings.Join(subs, " "))
	fmt.Fprintf(w, "matches\t%d\t\n", c.Matches)
	fmt.Fprintf(w, "similarity\t%.*f\t\n", conf.Precision, c.Similarity)
	fmt.Fprintf(w, "relatedness\t%.*f\t\n", conf.Precision, c.Relatedness)
	return w.Flush()
}

// Comparison of two peptides
type Comparison struct {
	Query         string
	Candidate     string
	Substitutions [peptide.Length]int
	Matches       int
	Similarity    float64
	Relatedness   float64
}

// Compare validates both peptides and compares them
func Compare(query, candidate string, w score.Weights) (Comparison, error) {
	q, err := peptide.Validate(query)
	if err != nil {
		return Comparison{}, err
	}
	c, err := peptide.Validate(candidate)
	if err != nil {
		return Comparison{}, err
	}
	if err := w.Validate(); err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Query:         query,
		Candidate:     candidate,
		Substitutions: score.SubstitutionMatrix(q, c),
		Matches:       score.Matches(q, c),
		Similarity:    score.Similarity(q, c),
		Relatedness:   score.Relatedness(q, c, w),
	}, nil
}
