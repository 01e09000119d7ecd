package crossdome

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jjtimmons/crossdome/internal/io"
	"github.com/jjtimmons/crossdome/internal/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_rank_e2e(t *testing.T) {
	dir := t.TempDir()
	bg := writeBackground(t)

	expression := filepath.Join(dir, "expression.tsv")
	require.NoError(t, os.WriteFile(expression, []byte("tissue\tESDPIVAQY\tEVDPIGHFY\nheart\t1.5\t0\nlung\t0.25\t12\n"), 0644))

	type testFlags struct {
		out        string
		weights    score.Weights
		sorted     bool
		filter     string
		expression string
		wantRows   int
		wantFirst  string
	}

	tests := []testFlags{
		{
			filepath.Join(dir, "unweighted.json"),
			score.DefaultWeights(),
			false,
			"",
			expression,
			3,
			"ESDPIVAQY",
		},
		{
			filepath.Join(dir, "sorted.xlsx"),
			score.DefaultWeights(),
			true,
			"",
			"",
			3,
			"EVDPIGLLY",
		},
		{
			filepath.Join(dir, "anchors.tsv"),
			score.Weights{1, 4, 1, 1, 1, 1, 1, 1, 4},
			false,
			"num_positive >= 8",
			"",
			2,
			"EVDPIGHFY",
		},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.out), func(t *testing.T) {
			flags := NewFlags(query, bg, "HLA-A*01:01", tt.out, tt.weights, tt.sorted)
			flags.filter = tt.filter
			flags.expression = tt.expression

			_, err := Rank(flags, testConfig())
			require.NoError(t, err)

			if filepath.Ext(tt.out) == ".json" {
				b, err := os.ReadFile(tt.out)
				require.NoError(t, err)

				var out io.Output
				require.NoError(t, json.Unmarshal(b, &out))
				require.Len(t, out.Rows, tt.wantRows)
				assert.Equal(t, tt.wantFirst, out.Rows[0].Subject)
				assert.Equal(t, "HLA-A*01:01", out.Allele)
				assert.Equal(t, []string{"heart", "lung"}, out.Tissues)
				assert.Equal(t, []float64{0, 12}, out.Expression["EVDPIGHFY"])
				return
			}

			table, err := io.ReadTable(tt.out)
			require.NoError(t, err)
			require.Equal(t, tt.wantRows, table.Len())
			assert.Equal(t, tt.wantFirst, table.Row(0).Subject)
			if tt.filter == "" {
				assert.Equal(t, 1, table.Row(0).Rank)
			}
		})
	}
}
