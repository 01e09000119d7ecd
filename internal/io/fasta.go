package io

import (
	"os"
	"regexp"
	"strings"

	apperr "github.com/jjtimmons/crossdome/internal/errors"
)

// fastaHeader is the header of records read from a FASTA file
var fastaHeader = []string{"id", "peptide"}

// lineEnd splits FASTA lines, with or without carriage returns
var lineEnd = regexp.MustCompile(`\r?\n`)

func isFASTA(ext string) bool {
	switch ext {
	case ".fa", ".fasta", ".faa":
		return true
	}
	return false
}

// readFASTA reads a multi-FASTA file of peptides to rows of [id, sequence].
// Only line breaks are removed from sequences.
func readFASTA(path string) ([][]string, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.IO(err, "failed to open "+path)
	}

	lines := lineEnd.Split(string(dat), -1)

	var headerIndices []int
	for i, line := range lines {
		if strings.HasPrefix(line, ">") {
			headerIndices = append(headerIndices, i)
		}
	}
	if len(headerIndices) == 0 && strings.TrimSpace(string(dat)) != "" {
		return nil, apperr.Newf(apperr.CodeIO, "%s has no FASTA headers", path)
	}

	rows := [][]string{fastaHeader}
	for i, headerIndex := range headerIndices {
		nextLine := len(lines)
		if i < len(headerIndices)-1 {
			nextLine = headerIndices[i+1]
		}
		id := strings.TrimSpace(lines[headerIndex][1:])
		// sequence lines are joined as is, background.New validates them
		seq := strings.Join(lines[headerIndex+1:nextLine], "")
		rows = append(rows, []string{id, seq})
	}
	return rows, nil
}
