// Package crossdome runs the crossdome commands: it parses their flags and
// settings, screens the query against a background and writes the ranking.
package crossdome

import (
	"strings"

	"github.com/jjtimmons/crossdome/config"
	"github.com/jjtimmons/crossdome/internal"
	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/io"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/spf13/cobra"
)

// logger writes to stderr; its level is set from the settings when flags are parsed
var logger = internal.NewLogger(internal.LogLevelInfo)

// Flags contains parsed cobra Flags like "background", "out", "weights", etc
type Flags struct {
	// the peptide being screened
	query string

	// path to the background peptide file
	background string

	// allele of the background
	allele string

	// position weights to score with
	weights score.Weights

	// rank by score rather than background order
	sorted bool

	// condition rows must meet to be reported
	filter string

	// columns to report, all if empty
	columns []string

	// the name of the file to write the output to, stdout if empty
	out string

	// path to an expression table to attach
	expression string

	// background peptides within this many mismatches are counted as off-target. < 0 disables
	maxMismatches int
}

// NewFlags makes a new flags object manually. for testing.
func NewFlags(query, background, allele, out string, weights score.Weights, sorted bool) *Flags {
	return &Flags{
		query:         query,
		background:    background,
		allele:        allele,
		weights:       weights,
		sorted:        sorted,
		out:           out,
		maxMismatches: -1,
	}
}

// parseCmdFlags gathers the query, background path, weights etc from a cobra cmd object
func parseCmdFlags(cmd *cobra.Command, args []string) (*Flags, *config.Config, error) {
	conf, err := configFor(cmd)
	if err != nil {
		return nil, nil, err
	}

	if len(args) < 1 {
		return nil, nil, apperr.New(apperr.CodeInvalidLength, "no query peptide passed")
	}

	fs := &Flags{query: strings.TrimSpace(args[0])}

	if fs.background, err = cmd.Flags().GetString("background"); err != nil || fs.background == "" {
		return nil, nil, apperr.New(apperr.CodeIO, "no background file passed, see --background")
	}

	if fs.allele, _ = cmd.Flags().GetString("allele"); fs.allele == "" {
		fs.allele = conf.Allele
	}

	if fs.weights, err = parseWeights(cmd, conf); err != nil {
		return nil, nil, err
	}

	fs.sorted, _ = cmd.Flags().GetBool("sorted")
	fs.filter, _ = cmd.Flags().GetString("filter")
	fs.out, _ = cmd.Flags().GetString("out")
	fs.expression, _ = cmd.Flags().GetString("expression")
	if fs.maxMismatches, err = cmd.Flags().GetInt("max-mismatches"); err != nil {
		fs.maxMismatches = -1 // not every command has the flag
	}

	if selected, _ := cmd.Flags().GetString("select"); selected != "" {
		for _, c := range strings.Split(selected, ",") {
			fs.columns = append(fs.columns, strings.TrimSpace(c))
		}
	}

	return fs, conf, nil
}

// configFor reads the settings and sets the log level from them
func configFor(cmd *cobra.Command) (*config.Config, error) {
	conf, err := config.New()
	if err != nil {
		return nil, err
	}
	logger = internal.NewLogger(internal.ParseLevel(conf.LogLevel))
	logger.Debug("running %s with %d workers", cmd.Name(), conf.Workers)
	return conf, nil
}

// parseWeights takes weights from --weights, then --weights-file, then the settings
func parseWeights(cmd *cobra.Command, conf *config.Config) (score.Weights, error) {
	if ws, _ := cmd.Flags().GetString("weights"); ws != "" {
		return score.ParseWeights(ws)
	}

	if file, _ := cmd.Flags().GetString("weights-file"); file != "" {
		path, _ := cmd.Flags().GetString("weights-path")
		logger.Debug("reading position weights from %s at %q", file, path)
		return io.ReadWeights(file, path)
	}

	return conf.PositionWeights()
}
