// Package io reads backgrounds, expression data and position weights from
// delimited text or Excel files, and writes ranking tables and results back out.
package io

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jjtimmons/crossdome/internal/background"
	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/rank"
	"github.com/jjtimmons/crossdome/internal/result"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// Records is a header row and the data rows beneath it
type Records struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of column in the header
func (r *Records) Index(column string) (int, error) {
	for i, h := range r.Header {
		if strings.TrimSpace(h) == column {
			return i, nil
		}
	}
	return -1, apperr.MissingColumn(column)
}

// Column returns every value of one column, in row order and untrimmed.
// Rows too short to reach the column give "".
func (r *Records) Column(column string) ([]string, error) {
	i, err := r.Index(column)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(r.Rows))
	for j, row := range r.Rows {
		if i < len(row) {
			values[j] = row[i]
		}
	}
	return values, nil
}

// ReadRecords reads a .csv, .tsv or .xlsx file (the first sheet). FASTA
// files (.fa, .fasta, .faa) are read as "id" and "peptide" columns.
func ReadRecords(path string) (*Records, error) {
	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case isFASTA(ext):
		rows, err = readFASTA(path)
	case ext == ".xlsx":
		rows, err = readExcel(path)
	case ext == ".tsv" || ext == ".txt":
		rows, err = readDelimited(path, '\t')
	default:
		rows, err = readDelimited(path, ',')
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 1 {
		return nil, apperr.Newf(apperr.CodeIO, "%s has no header row", path)
	}
	return &Records{Header: rows[0], Rows: rows[1:]}, nil
}

func readDelimited(path string, comma rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperr.IO(err, "failed to open "+path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.IO(err, "failed to read "+path)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperr.IO(err, "failed to open "+path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Newf(apperr.CodeIO, "%s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperr.IO(err, "failed to read sheet "+sheets[0])
	}
	return rows, nil
}

// ReadBackground builds a background set from the peptides in one column of
// a peptide database file. Cells are passed on as read: a blank, padded or
// lower case cell fails the whole set. FASTA files ignore column.
func ReadBackground(path, allele, column string) (*background.Set, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}
	if isFASTA(strings.ToLower(filepath.Ext(path))) {
		column = fastaHeader[1]
	}

	values, err := records.Column(column)
	if err != nil {
		return nil, apperr.Wrapf(err, "no peptide column in %s", path)
	}

	return background.New(allele, values)
}

// ReadTable reads a ranking table written by WriteTable. The header decides
// the columns; columns that aren't core columns are read as Extra values.
func ReadTable(path string) (*rank.Table, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}

	header := make([]string, len(records.Header))
	for i, h := range records.Header {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]rank.Row, len(records.Rows))
	for i, rec := range records.Rows {
		for j, col := range header {
			cell := ""
			if j < len(rec) {
				cell = strings.TrimSpace(rec[j])
			}
			if err := setCell(&rows[i], col, cell); err != nil {
				return nil, apperr.Wrapf(err, "%s row %d", path, i+2)
			}
		}
	}
	return rank.NewTable(header, rows)
}

func setCell(r *rank.Row, col, cell string) error {
	switch col {
	case rank.ColQuery:
		r.Query = cell
		return nil
	case rank.ColSubject:
		r.Subject = cell
		return nil
	case rank.ColNumPositive, rank.ColNumNegative, rank.ColRank:
		v, err := strconv.Atoi(cell)
		if err != nil {
			return apperr.IO(err, "bad integer in column "+col)
		}
		switch col {
		case rank.ColNumPositive:
			r.NumPositive = v
		case rank.ColNumNegative:
			r.NumNegative = v
		default:
			r.Rank = v
		}
		return nil
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return apperr.IO(err, "bad number in column "+col)
	}
	switch col {
	case rank.ColScore:
		r.Score = v
	case rank.ColZScore:
		r.ZScore = v
	case rank.ColPValue:
		r.PValue = v
	case rank.ColPercentileRank:
		r.PercentileRank = v
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]float64)
		}
		r.Extra[col] = v
	}
	return nil
}

// ReadExpression reads an expression table: the first column labels the
// tissues and every other column holds one peptide's expression levels.
// Every tissue needs a level for every peptide; blank cells fail.
func ReadExpression(path string) (*result.Expression, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records.Header) < 2 {
		return nil, apperr.Newf(apperr.CodeMissingColumn, "%s needs a tissue column and at least one peptide column", path)
	}

	tissues := make([]string, len(records.Rows))
	levels := make(map[string][]float64, len(records.Header)-1)
	for i, row := range records.Rows {
		if len(row) > 0 {
			tissues[i] = strings.TrimSpace(row[0])
		}
	}

	for j, p := range records.Header[1:] {
		p = strings.TrimSpace(p)
		col := make([]float64, len(records.Rows))
		for i, row := range records.Rows {
			if j+1 >= len(row) || strings.TrimSpace(row[j+1]) == "" {
				return nil, apperr.Newf(apperr.CodeMissingColumn, "no expression level for %s in %s", p, tissues[i])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j+1]), 64)
			if err != nil {
				return nil, apperr.IO(err, "bad expression level for "+p)
			}
			col[i] = v
		}
		levels[p] = col
	}

	return result.NewExpression(tissues, levels)
}

// ReadWeights reads nine position weights from a JSON document, ex: a
// structural hotspot file. path is a gjson path to an array of numbers,
// like "weights" or "positions.#.weight".
func ReadWeights(file, path string) (score.Weights, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return score.Weights{}, apperr.IO(err, "failed to read "+file)
	}
	if !gjson.ValidBytes(data) {
		return score.Weights{}, apperr.Newf(apperr.CodeInvalidWeights, "%s is not valid JSON", file)
	}

	res := gjson.GetBytes(data, path)
	if !res.Exists() || !res.IsArray() {
		return score.Weights{}, apperr.Newf(apperr.CodeInvalidWeights, "no weight array at %q in %s", path, file)
	}

	var ws []float64
	for _, v := range res.Array() {
		if v.Type != gjson.Number {
			return score.Weights{}, apperr.Newf(apperr.CodeInvalidWeights, "weight %q in %s is not a number", v.Raw, file)
		}
		ws = append(ws, v.Float())
	}
	return score.NewWeights(ws)
}
