package score

import (
	"context"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/peptide"
	"golang.org/x/sync/errgroup"
)

// Measurement is one query/subject comparison. It's never changed after Batch
// creates it.
type Measurement struct {
	// Query is the peptide being screened
	Query string `json:"query"`

	// Subject is the background peptide
	Subject string `json:"subject"`

	// Score is the weighted relatedness distance (0 is identical)
	Score float64 `json:"relatedness_score"`

	// NumPositive is the count of exactly matching positions
	NumPositive int `json:"num_positive"`

	// NumNegative is 9 - NumPositive
	NumNegative int `json:"num_negative"`
}

// Option configures a Batch call
type Option func(*batchOptions)

type batchOptions struct {
	workers int
}

// WithWorkers scores background members on up to n goroutines. n < 2 is serial.
func WithWorkers(n int) Option {
	return func(o *batchOptions) {
		o.workers = n
	}
}

// Measure compares two validated peptides
func Measure(query, subject peptide.Peptide, w Weights) Measurement {
	pos := Matches(query, subject)
	return Measurement{
		Query:       query.String(),
		Subject:     subject.String(),
		Score:       Relatedness(query, subject, w),
		NumPositive: pos,
		NumNegative: peptide.Length - pos,
	}
}

// Batch scores query against every background peptide, in background order.
//
// The query, the weights and every background member are validated. If any
// fails, Batch returns the error and no measurements at all.
func Batch(query string, background []string, w Weights, opts ...Option) ([]Measurement, error) {
	o := batchOptions{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	q, err := peptide.Validate(query)
	if err != nil {
		return nil, apperr.Wrap(err, "invalid query")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	measurements := make([]Measurement, len(background))
	score := func(i int) error {
		s, err := peptide.Validate(background[i])
		if err != nil {
			return apperr.Wrapf(err, "invalid background peptide %d", i+1)
		}
		measurements[i] = Measure(q, s, w)
		return nil
	}

	if o.workers < 2 {
		for i := range background {
			if err := score(i); err != nil {
				return nil, err
			}
		}
		return measurements, nil
	}

	// each goroutine writes only its own slot, so order is kept without locking
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(o.workers)
	for i := range background {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil // another member already failed
			}
			return score(i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return measurements, nil
}
