// Package result holds the outcome of screening one query against a
// background: the ranking table plus the context it was computed in.
//
// Select, Filter, FilterFunc, Mutate and Rerank never change the Result
// they're called on. Each returns a new Result with its own copy of the
// table, so a Result can be shared and chained without aliasing.
package result

import (
	"sort"
	"time"

	"github.com/google/uuid"
	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/peptide"
	"github.com/jjtimmons/crossdome/internal/rank"
	"github.com/jjtimmons/crossdome/internal/score"
)

// TimeFormat is the layout of Result.Time, ex: "2018-01-01 20:41:00"
const TimeFormat = "2006-01-02 15:04:05"

// Result is a query's ranking table and the context it was computed in
type Result struct {
	// ID identifies this result, ex: for naming exported files
	ID uuid.UUID

	// Query is the screened peptide
	Query string

	// Allele of the background set
	Allele string

	// Weights used to score the table
	Weights score.Weights

	// Time the result was created
	Time string

	table      *rank.Table
	expression *Expression
	analysis   map[string]string
}

// Option sets optional Result fields in New
type Option func(*Result)

// WithExpression attaches expression data
func WithExpression(e *Expression) Option {
	return func(r *Result) {
		r.expression = e
	}
}

// WithAnalysis attaches free-form analysis notes
func WithAnalysis(analysis map[string]string) Option {
	return func(r *Result) {
		for k, v := range analysis {
			r.analysis[k] = v
		}
	}
}

// WithTime overrides the creation time
func WithTime(t time.Time) Option {
	return func(r *Result) {
		r.Time = t.Format(TimeFormat)
	}
}

// New wraps a copy of table. The caller's table isn't held onto.
func New(query string, table *rank.Table, allele string, weights score.Weights, opts ...Option) *Result {
	r := &Result{
		ID:       uuid.New(),
		Query:    query,
		Allele:   allele,
		Weights:  weights,
		Time:     time.Now().Format(TimeFormat),
		table:    table.Clone(),
		analysis: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// derive copies r's context around a new table
func (r *Result) derive(table *rank.Table) *Result {
	d := *r
	d.ID = uuid.New()
	d.table = table
	d.analysis = r.Analysis()
	return &d
}

// Table returns a copy of the ranking table
func (r *Result) Table() *rank.Table {
	return r.table.Clone()
}

// Len is the number of rows in the table
func (r *Result) Len() int {
	return r.table.Len()
}

// Select returns a Result showing only columns, in the given order
func (r *Result) Select(columns ...string) (*Result, error) {
	for _, c := range columns {
		if !rank.IsCore(c) && !r.hasColumn(c) {
			return nil, apperr.MissingColumn(c)
		}
	}
	t, err := r.table.WithColumns(columns)
	if err != nil {
		return nil, err
	}
	return r.derive(t), nil
}

func (r *Result) hasColumn(col string) bool {
	for _, c := range r.table.Columns() {
		if c == col {
			return true
		}
	}
	return false
}

// Filter returns a Result with the rows matching cond, ex:
// "relatedness_score < 0.1 && num_positive >= 7". Rows keep the statistics
// they had, so the new Result is Stale unless every row matched.
func (r *Result) Filter(cond string) (*Result, error) {
	cmps, err := parseCondition(cond, r.table.Columns())
	if err != nil {
		return nil, err
	}

	var kept []rank.Row
	for _, row := range r.table.Rows() {
		ok, err := match(row, cmps)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, row)
		}
	}
	return r.derive(r.table.WithRows(kept)), nil
}

// FilterFunc returns a Result with the rows for which keep is true
func (r *Result) FilterFunc(keep func(rank.Row) bool) *Result {
	var kept []rank.Row
	for _, row := range r.table.Rows() {
		if keep(row) {
			kept = append(kept, row)
		}
	}
	return r.derive(r.table.WithRows(kept))
}

// Mutate returns a Result with a column added (or replaced) for each entry of
// columns, valued by calling the function on each row. Core columns can't be
// replaced: they're derived from each other and from the whole batch.
func (r *Result) Mutate(columns map[string]func(rank.Row) float64) (*Result, error) {
	names := make([]string, 0, len(columns))
	for name := range columns {
		if rank.IsCore(name) {
			return nil, apperr.Newf(apperr.CodeInvalidCondition, "column %q is computed by the ranking and can't be replaced", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	rows := r.table.Rows()
	for i := range rows {
		if rows[i].Extra == nil {
			rows[i].Extra = make(map[string]float64, len(names))
		}
		for _, name := range names {
			rows[i].Extra[name] = columns[name](rows[i])
		}
	}

	visible := r.table.Columns()
	for _, name := range names {
		if !r.hasColumn(name) {
			visible = append(visible, name)
		}
	}

	t, err := r.table.WithRows(rows).WithColumns(visible)
	if err != nil {
		return nil, err
	}
	return r.derive(t), nil
}

// Stale reports whether rows were filtered since the statistics were computed
func (r *Result) Stale() bool {
	return r.table.Stale()
}

// Rerank returns a Result with the statistics recomputed over the current rows
func (r *Result) Rerank() (*Result, error) {
	t, err := r.table.Recompute()
	if err != nil {
		return nil, err
	}
	return r.derive(t), nil
}

// SetExpression attaches expression data after the fact. The table is untouched.
func (r *Result) SetExpression(e *Expression) {
	r.expression = e
}

// Expression returns the attached expression data, or nil
func (r *Result) Expression() *Expression {
	return r.expression
}

// SetAnalysis records a free-form analysis note
func (r *Result) SetAnalysis(key, value string) {
	r.analysis[key] = value
}

// Analysis returns a copy of the analysis notes
func (r *Result) Analysis() map[string]string {
	m := make(map[string]string, len(r.analysis))
	for k, v := range r.analysis {
		m[k] = v
	}
	return m
}

// Scores are the relatedness scores, in table order
func (r *Result) Scores() []float64 {
	return score.Scores(r.table.Measurements())
}

// MismatchCounts are the mismatch counts, in table order
func (r *Result) MismatchCounts() []int {
	ms := r.table.Measurements()
	counts := make([]int, len(ms))
	for i, m := range ms {
		counts[i] = m.NumNegative
	}
	return counts
}

// Subjects are the background peptides, in table order
func (r *Result) Subjects() []string {
	ms := r.table.Measurements()
	subjects := make([]string, len(ms))
	for i, m := range ms {
		subjects[i] = m.Subject
	}
	return subjects
}

// SimilarityMatrix is the pairwise exact-match similarity of the subjects
func (r *Result) SimilarityMatrix() ([][]float64, error) {
	ps, err := peptide.ValidateAll(r.Subjects())
	if err != nil {
		return nil, err
	}
	return score.SimilarityMatrix(ps, ps), nil
}

// ExpressionFor returns the tissue levels of one peptide
func (r *Result) ExpressionFor(p string) ([]float64, error) {
	if r.expression == nil {
		return nil, apperr.MissingColumn(p)
	}
	return r.expression.Column(p)
}
