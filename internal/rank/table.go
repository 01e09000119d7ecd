package rank

import (
	"strconv"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/score"
)

// Column names. Exported tables use these as headers and consumers depend on them.
const (
	ColQuery          = "query"
	ColSubject        = "subject"
	ColScore          = "relatedness_score"
	ColNumPositive    = "num_positive"
	ColNumNegative    = "num_negative"
	ColZScore         = "zscore"
	ColPValue         = "pvalue"
	ColPercentileRank = "percentile_rank"
	ColRank           = "rank"
)

// Columns is the core column set in table order
var Columns = []string{
	ColQuery,
	ColSubject,
	ColScore,
	ColNumPositive,
	ColNumNegative,
	ColZScore,
	ColPValue,
	ColPercentileRank,
	ColRank,
}

// IsCore reports whether col is one of Columns
func IsCore(col string) bool {
	for _, c := range Columns {
		if c == col {
			return true
		}
	}
	return false
}

// IsText reports whether col holds a peptide rather than a number
func IsText(col string) bool {
	return col == ColQuery || col == ColSubject
}

// Row is one measurement and the statistics derived for it
type Row struct {
	score.Measurement

	ZScore         float64 `json:"zscore"`
	PValue         float64 `json:"pvalue"`
	PercentileRank float64 `json:"percentile_rank"`
	Rank           int     `json:"rank"`

	// Extra holds added columns, like annotations computed by a caller
	Extra map[string]float64 `json:"extra,omitempty"`
}

// Value returns a numeric column. The peptide columns aren't numeric.
func (r Row) Value(col string) (float64, error) {
	switch col {
	case ColScore:
		return r.Score, nil
	case ColNumPositive:
		return float64(r.NumPositive), nil
	case ColNumNegative:
		return float64(r.NumNegative), nil
	case ColZScore:
		return r.ZScore, nil
	case ColPValue:
		return r.PValue, nil
	case ColPercentileRank:
		return r.PercentileRank, nil
	case ColRank:
		return float64(r.Rank), nil
	case ColQuery, ColSubject:
		return 0, apperr.Newf(apperr.CodeInvalidCondition, "column %q is not numeric", col)
	}

	if v, ok := r.Extra[col]; ok {
		return v, nil
	}
	return 0, apperr.MissingColumn(col)
}

// Text formats a column for export. precision < 0 uses the fewest digits
// that read back to the same float.
func (r Row) Text(col string, precision int) (string, error) {
	switch col {
	case ColQuery:
		return r.Query, nil
	case ColSubject:
		return r.Subject, nil
	case ColNumPositive, ColNumNegative, ColRank:
		v, _ := r.Value(col)
		return strconv.Itoa(int(v)), nil
	}

	v, err := r.Value(col)
	if err != nil {
		return "", err
	}
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}
	return strconv.FormatFloat(v, 'f', precision, 64), nil
}

// copyRow deep copies r so tables never share an Extra map
func copyRow(r Row) Row {
	if r.Extra != nil {
		extra := make(map[string]float64, len(r.Extra))
		for k, v := range r.Extra {
			extra[k] = v
		}
		r.Extra = extra
	}
	return r
}

// Table is the ranking of one query against one background.
//
// The statistics are computed once over all rows. basis records the row
// order they were computed over, so a table whose rows were filtered or
// reordered since reports Stale and should be Recomputed.
type Table struct {
	rows    []Row
	columns []string
	basis   []string
}

// NewTable builds a table from rows that already carry their statistics,
// such as a table read back from a file. columns must be core columns or
// keys present in every row's Extra.
func NewTable(columns []string, rows []Row) (*Table, error) {
	t := &Table{rows: make([]Row, len(rows))}
	for i, r := range rows {
		t.rows[i] = copyRow(r)
	}
	if err := t.setColumns(columns); err != nil {
		return nil, err
	}
	t.basis = t.subjects()
	return t, nil
}

func (t *Table) setColumns(columns []string) error {
	for _, c := range columns {
		if IsCore(c) {
			continue
		}
		for _, r := range t.rows {
			if _, ok := r.Extra[c]; !ok {
				return apperr.MissingColumn(c)
			}
		}
	}
	t.columns = append([]string(nil), columns...)
	return nil
}

func (t *Table) subjects() []string {
	s := make([]string, len(t.rows))
	for i, r := range t.rows {
		s[i] = r.Subject
	}
	return s
}

// Len is the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a deep copy of the rows, in table order
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = copyRow(r)
	}
	return rows
}

// Row returns a copy of row i
func (t *Table) Row(i int) Row {
	return copyRow(t.rows[i])
}

// Columns are the visible columns, in order
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Measurements strips the statistics, leaving the raw comparisons
func (t *Table) Measurements() []score.Measurement {
	ms := make([]score.Measurement, len(t.rows))
	for i, r := range t.rows {
		ms[i] = r.Measurement
	}
	return ms
}

// Stale reports whether the rows differ from those the statistics were computed over
func (t *Table) Stale() bool {
	if len(t.basis) != len(t.rows) {
		return true
	}
	for i, r := range t.rows {
		if t.basis[i] != r.Subject {
			return true
		}
	}
	return false
}

// Clone deep copies the table
func (t *Table) Clone() *Table {
	return &Table{
		rows:    t.Rows(),
		columns: t.Columns(),
		basis:   append([]string(nil), t.basis...),
	}
}

// WithRows returns a copy of the table holding rows instead. The statistics
// on rows are kept as is, so the copy is Stale if rows differ.
func (t *Table) WithRows(rows []Row) *Table {
	c := &Table{
		rows:    make([]Row, len(rows)),
		columns: t.Columns(),
		basis:   append([]string(nil), t.basis...),
	}
	for i, r := range rows {
		c.rows[i] = copyRow(r)
	}
	return c
}

// WithColumns returns a copy of the table showing only columns.
func (t *Table) WithColumns(columns []string) (*Table, error) {
	c := t.Clone()
	if err := c.setColumns(columns); err != nil {
		return nil, err
	}
	return c, nil
}

// Recompute returns a new table with the statistics computed over the
// current rows, in the current order. Extra columns are kept.
func (t *Table) Recompute() (*Table, error) {
	fresh, err := Annotate(t.Measurements())
	if err != nil {
		return nil, err
	}
	for i := range fresh.rows {
		fresh.rows[i].Extra = copyRow(t.rows[i]).Extra
	}
	fresh.columns = t.Columns()
	return fresh, nil
}
