package cmd

import (
	"github.com/jjtimmons/crossdome/internal/crossdome"
	"github.com/spf13/cobra"
)

// rankCmd is for screening a query against a background.
var rankCmd = &cobra.Command{
	Use:   "rank [query]",
	Short: "Rank background peptides by their relatedness to a query peptide",
	Long: `Rank background peptides by their relatedness to a query peptide

The query is compared to each 9-mer in the background, position by position.
Each peptide gets a relatedness score between 0 (identical) and 1, a z-score
and p-value against the background's scores, a percentile rank and a rank.

The ranking is printed to stdout unless an output file is passed. The output
type follows the file's extension: .json, .csv, .tsv or .xlsx.`,
	Example: `  crossdome rank EVDPIGHLY --background hla-a01.csv --sorted
  crossdome rank EVDPIGHLY -b hla-a01.xlsx --filter "relatedness_score < 0.1" -o ranking.json`,
	Args:                       cobra.ExactArgs(1),
	RunE:                       crossdome.RankCmd,
	SuggestionsMinimumDistance: 3,
}

// set flags
func init() {
	rankCmd.Flags().StringP("background", "b", "", "background peptide file (csv, tsv or xlsx)")
	rankCmd.Flags().StringP("allele", "a", "", "allele of the background")
	rankCmd.Flags().StringP("weights", "w", "", "comma separated weights for the 9 positions")
	rankCmd.Flags().String("weights-file", "", "JSON file with position weights")
	rankCmd.Flags().String("weights-path", "", "path to the weights array in --weights-file, ex: alleles.A0101")
	rankCmd.Flags().Bool("sorted", false, "rank by score instead of background order")
	rankCmd.Flags().StringP("filter", "f", "", "condition rows must meet, ex: \"relatedness_score < 0.1 && num_positive >= 7\"")
	rankCmd.Flags().StringP("select", "s", "", "comma separated columns to report")
	rankCmd.Flags().StringP("out", "o", "", "output file name")
	rankCmd.Flags().StringP("expression", "e", "", "expression table (tissues by peptides) to attach")
	rankCmd.Flags().IntP("max-mismatches", "m", -1, "count background peptides within this many mismatches as off-target")

	rankCmd.MarkFlagRequired("background")

	RootCmd.AddCommand(rankCmd)
}
