package crossdome

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jjtimmons/crossdome/config"
	"github.com/jjtimmons/crossdome/internal/background"
	apperr "github.com/jjtimmons/crossdome/internal/errors"
	"github.com/jjtimmons/crossdome/internal/io"
	"github.com/jjtimmons/crossdome/internal/peptide"
	"github.com/jjtimmons/crossdome/internal/rank"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const query = "EVDPIGHLY"

var subjects = []string{"ESDPIVAQY", "EVDPIGHFY", "EVDPIGLLY"}

func writeBackground(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "background.csv")
	content := "peptide\n" + strings.Join(subjects, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig() *config.Config {
	return &config.Config{Workers: 2, Precision: 6, LogLevel: "ERROR", PeptideColumn: "peptide", Allele: "HLA-A*01:01"}
}

func TestCompose(t *testing.T) {
	bg, err := background.New("HLA-A*01:01", subjects)
	require.NoError(t, err)

	tests := []struct {
		name      string
		sorted    bool
		wantOrder []string
	}{
		{"background order", false, subjects},
		{"score order", true, []string{"EVDPIGLLY", "EVDPIGHFY", "ESDPIVAQY"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compose(query, bg, score.DefaultWeights(), 2, tt.sorted)
			require.NoError(t, err)

			assert.Equal(t, tt.wantOrder, r.Subjects())
			assert.Equal(t, "HLA-A*01:01", r.Allele)
			assert.False(t, r.Stale())

			for i, row := range r.Table().Rows() {
				assert.Equal(t, i+1, row.Rank)
			}
		})
	}
}

func TestCompose_scores(t *testing.T) {
	bg, err := background.New("HLA-A*01:01", subjects)
	require.NoError(t, err)

	r, err := Compose(query, bg, score.DefaultWeights(), 1, false)
	require.NoError(t, err)

	want := []float64{24.0 / 171, 5.0 / 171, 3.0 / 171}
	for i, s := range r.Scores() {
		assert.InDelta(t, want[i], s, 1e-9)
	}
	assert.Equal(t, []int{4, 1, 1}, r.MismatchCounts())
	assert.Equal(t, "background", r.Analysis()["rank_order"])
}

func TestCompose_badQuery(t *testing.T) {
	bg, err := background.New("HLA-A*01:01", subjects)
	require.NoError(t, err)

	_, err = Compose("EVDPIGHL", bg, score.DefaultWeights(), 1, false)
	assert.Equal(t, apperr.CodeInvalidLength, apperr.GetCode(err))
}

func TestRank(t *testing.T) {
	out := filepath.Join(t.TempDir(), "ranking.csv")

	flags := NewFlags(query, writeBackground(t), "HLA-A*01:01", out, score.DefaultWeights(), false)
	flags.filter = "relatedness_score < 0.1"
	flags.maxMismatches = 1

	r, err := Rank(flags, testConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Stale(), "filtered rows keep the statistics of the full table")
	assert.Equal(t, "2", r.Analysis()["off_target"])

	written, err := io.ReadTable(out)
	require.NoError(t, err)
	assert.Equal(t, 2, written.Len())
	assert.Equal(t, "EVDPIGHFY", written.Row(0).Subject)
}

func TestRank_select(t *testing.T) {
	flags := NewFlags(query, writeBackground(t), "", "", score.DefaultWeights(), true)
	flags.columns = []string{rank.ColSubject, rank.ColScore}

	r, err := Rank(flags, testConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{rank.ColSubject, rank.ColScore}, r.Table().Columns())
}

func TestRank_missingBackground(t *testing.T) {
	flags := NewFlags(query, filepath.Join(t.TempDir(), "missing.csv"), "", "", score.DefaultWeights(), false)

	_, err := Rank(flags, testConfig())
	assert.Equal(t, apperr.CodeIO, apperr.GetCode(err))
}

func rankCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "rank", RunE: RankCmd}
	cmd.Flags().StringP("background", "b", "", "")
	cmd.Flags().StringP("allele", "a", "", "")
	cmd.Flags().StringP("weights", "w", "", "")
	cmd.Flags().String("weights-file", "", "")
	cmd.Flags().String("weights-path", "", "")
	cmd.Flags().Bool("sorted", false, "")
	cmd.Flags().StringP("filter", "f", "", "")
	cmd.Flags().StringP("select", "s", "", "")
	cmd.Flags().StringP("out", "o", "", "")
	cmd.Flags().StringP("expression", "e", "", "")
	cmd.Flags().Int("max-mismatches", -1, "")
	return cmd
}

func TestRankCmd(t *testing.T) {
	config.SetDefaults(viper.GetViper())

	var buf bytes.Buffer
	cmd := rankCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{query, "--background", writeBackground(t), "--select", "subject,rank", "--weights", "1,1,1,1,1,1,1,1,1"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"subject", "rank"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"ESDPIVAQY", "1"}, strings.Fields(lines[1]))
}

func TestRankCmd_noBackground(t *testing.T) {
	config.SetDefaults(viper.GetViper())

	cmd := rankCommand()
	cmd.SetArgs([]string{query})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	assert.Equal(t, apperr.CodeIO, apperr.GetCode(err))
}

func TestSummarize(t *testing.T) {
	bg, err := background.New("HLA-A*01:01", subjects)
	require.NoError(t, err)

	s, err := Summarize(query, bg.Peptides(), score.DefaultWeights(), 2)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 32.0/171/3, s.Mean, 1e-9)
	assert.InDelta(t, 3.0/171, s.Min, 1e-9)
	assert.InDelta(t, 24.0/171, s.Max, 1e-9)
	assert.InDelta(t, 21.0/27, s.Similarity, 1e-9)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		candidate   string
		wantMatches int
		wantScore   float64
		wantCode    string
	}{
		{"identical", query, query, 9, 0, ""},
		{"one substitution", query, "EVDPIGHFY", 8, 5.0 / 171, ""},
		{"short candidate", query, "EVDPIG", 0, 0, apperr.CodeInvalidLength},
		{"unknown residue", query, "EVDPIGHLB", 0, 0, apperr.CodeInvalidResidue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compare(tt.query, tt.candidate, score.DefaultWeights())
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperr.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMatches, c.Matches)
			assert.InDelta(t, tt.wantScore, c.Relatedness, 1e-9)
			assert.InDelta(t, float64(tt.wantMatches)/peptide.Length, c.Similarity, 1e-9)
		})
	}
}
