package result

import (
	"regexp"
	"strconv"
	"strings"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/rank"
)

// clause is one "column op value" comparison of a filter condition
var clause = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*(<=|>=|==|!=|<|>|=)\s*(.+?)\s*$`)

// andSplit splits a condition on "&&" or a standalone "and"
var andSplit = regexp.MustCompile(`\s*&&\s*|\s+(?i:and)\s+`)

type comparison struct {
	col   string
	op    string
	num   float64
	text  string
	isTxt bool
}

// parseCondition compiles a condition like
//
//	relatedness_score < 0.1 && num_positive >= 7
//	subject == EVDPIGHFY
//
// against the table's visible columns.
func parseCondition(cond string, columns []string) ([]comparison, error) {
	visible := make(map[string]bool, len(columns))
	for _, c := range columns {
		visible[c] = true
	}

	if strings.TrimSpace(cond) == "" {
		return nil, apperr.New(apperr.CodeInvalidCondition, "empty filter condition")
	}

	var cmps []comparison
	for _, part := range andSplit.Split(cond, -1) {
		m := clause.FindStringSubmatch(part)
		if m == nil {
			return nil, apperr.Newf(apperr.CodeInvalidCondition, "failed to parse %q, expected: column op value", part)
		}

		c := comparison{col: m[1], op: m[2]}
		if c.op == "=" {
			c.op = "=="
		}
		if !visible[c.col] {
			return nil, apperr.MissingColumn(c.col)
		}

		value := strings.Trim(m[3], `"'`)
		if rank.IsText(c.col) {
			if c.op != "==" && c.op != "!=" {
				return nil, apperr.Newf(apperr.CodeInvalidCondition, "column %q only supports == and !=", c.col)
			}
			c.isTxt, c.text = true, value
		} else {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, apperr.WithCode(apperr.CodeInvalidCondition, err, "column "+c.col+" needs a numeric value")
			}
			c.num = v
		}
		cmps = append(cmps, c)
	}

	return cmps, nil
}

// match reports whether the row passes every comparison
func match(r rank.Row, cmps []comparison) (bool, error) {
	for _, c := range cmps {
		var ok bool
		if c.isTxt {
			v, _ := r.Text(c.col, -1)
			ok = (v == c.text) == (c.op == "==")
		} else {
			v, err := r.Value(c.col)
			if err != nil {
				return false, err
			}
			switch c.op {
			case "<":
				ok = v < c.num
			case "<=":
				ok = v <= c.num
			case ">":
				ok = v > c.num
			case ">=":
				ok = v >= c.num
			case "==":
				ok = v == c.num
			case "!=":
				ok = v != c.num
			}
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
