package io

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/rank"
	"github.com/jjtimmons/crossdome/internal/result"
	"github.com/xuri/excelize/v2"
)

// sheet is the name of the worksheet tables are written to
const sheet = "ranking"

// Output is the JSON document written for a Result
type Output struct {
	// ID of the result
	ID string `json:"id"`

	// Query peptide
	Query string `json:"query"`

	// Allele of the background
	Allele string `json:"allele"`

	// Time, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Weights per position
	Weights []float64 `json:"position_weights"`

	// Stale is true if rows were filtered after the statistics were computed
	Stale bool `json:"stale"`

	// Columns that are visible
	Columns []string `json:"columns"`

	// Rows of the ranking table
	Rows []rank.Row `json:"rows"`

	// Tissues and Expression are the attached expression data, if any
	Tissues    []string             `json:"tissues,omitempty"`
	Expression map[string][]float64 `json:"expression,omitempty"`

	// Analysis notes
	Analysis map[string]string `json:"analysis,omitempty"`
}

// Write saves r to path. The extension picks the format: .json for the
// whole result, otherwise the ranking table as .csv, .tsv or .xlsx.
func Write(path string, r *result.Result, precision int) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		_, err := WriteJSON(path, r)
		return err
	}
	return WriteTable(path, r.Table(), precision)
}

// WriteJSON writes r as an Output document, returning the bytes written
func WriteJSON(path string, r *result.Result) ([]byte, error) {
	t := r.Table()
	out := Output{
		ID:       r.ID.String(),
		Query:    r.Query,
		Allele:   r.Allele,
		Time:     r.Time,
		Weights:  r.Weights.Slice(),
		Stale:    t.Stale(),
		Columns:  t.Columns(),
		Rows:     t.Rows(),
		Analysis: r.Analysis(),
	}
	if e := r.Expression(); e != nil {
		out.Tissues = e.Tissues
		out.Expression = e.Levels()
	}

	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, apperr.IO(err, "failed to serialize the result")
	}
	if err = os.WriteFile(path, output, 0666); err != nil {
		return output, apperr.IO(err, "failed to write the result")
	}
	return output, nil
}

// WriteTable writes the table's visible columns to a .csv, .tsv or .xlsx file.
// precision is the number of decimals for real valued columns; < 0 writes
// as many digits as it takes to read back the same value.
func WriteTable(path string, t *rank.Table, precision int) error {
	records, err := tableRecords(t, precision)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeExcel(path, t.Columns(), records)
	case ".tsv", ".txt":
		return writeDelimited(path, '\t', records)
	default:
		return writeDelimited(path, ',', records)
	}
}

func tableRecords(t *rank.Table, precision int) ([][]string, error) {
	columns := t.Columns()
	records := make([][]string, 0, t.Len()+1)
	records = append(records, columns)
	for _, r := range t.Rows() {
		rec := make([]string, len(columns))
		for i, c := range columns {
			v, err := r.Text(c, precision)
			if err != nil {
				return nil, err
			}
			rec[i] = v
		}
		records = append(records, rec)
	}
	return records, nil
}

func writeDelimited(path string, comma rune, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return apperr.IO(err, "failed to create "+path)
	}

	w := csv.NewWriter(file)
	w.Comma = comma
	if err := w.WriteAll(records); err != nil {
		file.Close()
		return apperr.IO(err, "failed to write "+path)
	}
	if err := file.Close(); err != nil {
		return apperr.IO(err, "failed to close "+path)
	}
	return nil
}

// writeExcel writes numbers as numeric cells so the sheet is usable as is
func writeExcel(path string, columns []string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return apperr.IO(err, "failed to name sheet")
	}

	for i, rec := range records {
		cells := make([]interface{}, len(rec))
		for j, v := range rec {
			cells[j] = v
			if i > 0 && !rank.IsText(columns[j]) {
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					cells[j] = n
				}
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return apperr.IO(err, "bad cell")
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return apperr.IO(err, "failed to write row "+strconv.Itoa(i+1))
		}
	}

	if err := f.SaveAs(path); err != nil {
		return apperr.IO(err, "failed to save "+path)
	}
	return nil
}
