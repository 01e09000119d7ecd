package crossdome

import (
	"fmt"
	goio "io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/jjtimmons/crossdome/config"
	"github.com/jjtimmons/crossdome/internal/background"
	"github.com/jjtimmons/crossdome/internal/io"
	"github.com/jjtimmons/crossdome/internal/rank"
	"github.com/jjtimmons/crossdome/internal/result"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/spf13/cobra"
)

// RankCmd takes a cobra command (with its flags) and runs Rank.
func RankCmd(cmd *cobra.Command, args []string) error {
	flags, conf, err := parseCmdFlags(cmd, args)
	if err != nil {
		return err
	}

	r, err := Rank(flags, conf)
	if err != nil {
		return err
	}

	if flags.out == "" {
		return writeTable(cmd.OutOrStdout(), r, conf.Precision)
	}
	return nil
}

// Rank screens the query against the background file and writes the
// ranking to flags.out, if set.
func Rank(flags *Flags, conf *config.Config) (*result.Result, error) {
	start := time.Now()

	bg, err := io.ReadBackground(flags.background, flags.allele, conf.PeptideColumn)
	if err != nil {
		return nil, err
	}
	logger.Debug("read %d background peptides for %s", bg.Len(), bg.Allele())

	r, err := Compose(flags.query, bg, flags.weights, conf.Workers, flags.sorted)
	if err != nil {
		return nil, err
	}

	if flags.maxMismatches >= 0 {
		n := 0
		for _, c := range r.MismatchCounts() {
			if c <= flags.maxMismatches {
				n++
			}
		}
		bg.MarkOffTarget(n)
		r.SetAnalysis("off_target", strconv.Itoa(bg.Stats().OffTarget))
		logger.Info("%d of %d background peptides are within %d mismatches of %s", n, bg.Len(), flags.maxMismatches, flags.query)
	}

	if flags.expression != "" {
		e, err := io.ReadExpression(flags.expression)
		if err != nil {
			return nil, err
		}
		r.SetExpression(e)
	}

	if flags.filter != "" {
		if r, err = r.Filter(flags.filter); err != nil {
			return nil, err
		}
		if r.Stale() {
			logger.Warn("%d rows match %q; zscore, pvalue and ranks describe the unfiltered table", r.Len(), flags.filter)
		}
	}

	if len(flags.columns) > 0 {
		if r, err = r.Select(flags.columns...); err != nil {
			return nil, err
		}
	}

	if flags.out != "" {
		if err = io.Write(flags.out, r, conf.Precision); err != nil {
			return nil, err
		}
		logger.Info("wrote %d rows to %s", r.Len(), flags.out)
	}

	logger.Debug("ranked %s in %s", flags.query, time.Since(start))
	return r, nil
}

// Compose scores query against every peptide in bg and ranks the results.
// sorted ranks by score instead of background order.
func Compose(query string, bg *background.Set, w score.Weights, workers int, sorted bool) (*result.Result, error) {
	ms, err := score.Batch(query, bg.Strings(), w, score.WithWorkers(workers))
	if err != nil {
		return nil, err
	}

	annotate, order := rank.Annotate, "background"
	if sorted {
		annotate, order = rank.AnnotateByScore, "score"
	}

	t, err := annotate(ms)
	if err != nil {
		return nil, err
	}

	return result.New(query, t, bg.Allele(), w, result.WithAnalysis(map[string]string{
		"rank_order": order,
	})), nil
}

// writeTable logs the visible columns of the ranking in a table
func writeTable(out goio.Writer, r *result.Result, precision int) error {
	t := r.Table()
	columns := t.Columns()

	w := tabwriter.NewWriter(out, 0, 4, 3, ' ', 0)
	for _, c := range columns {
		fmt.Fprintf(w, "%s\t", c)
	}
	fmt.Fprintln(w)

	for _, row := range t.Rows() {
		for _, c := range columns {
			v, err := row.Text(c, precision)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t", v)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
