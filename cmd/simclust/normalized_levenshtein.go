package main

import (
	"github.com/spf13/cobra"

	"github.com/steveyegge/simclust/internal/metric"
)

func newNormalizedLevenshteinCmd(a *app) *cobra.Command {
	var (
		ratio   string
		damerau bool
		flags   ioFlags
	)

	cmd := &cobra.Command{
		Use:     "normalized-levenshtein",
		Aliases: []string{"n"},
		Short:   "Cluster records by length-normalized edit similarity",
		Long: `Similarity is one minus the edit distance divided by the longer record's
length in characters. Two records are linked when it is greater than the ratio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := metric.ParseRatio(ratio)
			if err != nil {
				return usageError(err)
			}
			return a.runCluster(cmd, metric.Params{Kind: metric.KindNormalizedLevenshtein, Ratio: r, Damerau: damerau}, &flags)
		},
	}

	cmd.Flags().StringVarP(&ratio, "ratio", "r", "", "Minimum similarity, between 0 and 1 (exclusive)")
	cmd.Flags().BoolVarP(&damerau, "damerau", "d", false, "Use Damerau-Levenshtein distance")
	addIOFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("ratio")
	return cmd
}
