package cmd

import (
	"github.com/jjtimmons/crossdome/internal/crossdome"
	"github.com/spf13/cobra"
)

// summaryCmd is for the spread of a query's scores against a background.
var summaryCmd = &cobra.Command{
	Use:                        "summary [query]",
	Short:                      "Summarize the relatedness of a query to a background",
	Example:                    "  crossdome summary EVDPIGHLY --background hla-a01.csv",
	Args:                       cobra.ExactArgs(1),
	RunE:                       crossdome.SummaryCmd,
	SuggestionsMinimumDistance: 3,
}

// compareCmd is for comparing a query against one candidate.
var compareCmd = &cobra.Command{
	Use:                        "compare [query] [candidate]",
	Short:                      "Compare a query to a single candidate peptide",
	Example:                    "  crossdome compare EVDPIGHLY ESDPIVAQY --weights 1,1,1,1,1,1,1,1,2",
	Args:                       cobra.ExactArgs(2),
	RunE:                       crossdome.CompareCmd,
	SuggestionsMinimumDistance: 3,
}

// set flags
func init() {
	summaryCmd.Flags().StringP("background", "b", "", "background peptide file (csv, tsv or xlsx)")
	summaryCmd.Flags().StringP("allele", "a", "", "allele of the background")
	summaryCmd.Flags().StringP("weights", "w", "", "comma separated weights for the 9 positions")
	summaryCmd.Flags().String("weights-file", "", "JSON file with position weights")
	summaryCmd.Flags().String("weights-path", "", "path to the weights array in --weights-file")
	summaryCmd.MarkFlagRequired("background")

	compareCmd.Flags().StringP("weights", "w", "", "comma separated weights for the 9 positions")
	compareCmd.Flags().String("weights-file", "", "JSON file with position weights")
	compareCmd.Flags().String("weights-path", "", "path to the weights array in --weights-file")

	RootCmd.AddCommand(summaryCmd)
	RootCmd.AddCommand(compareCmd)
}
