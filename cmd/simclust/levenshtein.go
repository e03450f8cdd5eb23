package main

import (
	"github.com/spf13/cobra"

	"github.com/steveyegge/simclust/internal/metric"
)

func newLevenshteinCmd(a *app) *cobra.Command {
	var (
		threshold string
		damerau   bool
		flags     ioFlags
	)

	cmd := &cobra.Command{
		Use:     "levenshtein",
		Aliases: []string{"l"},
		Short:   "Cluster records by edit distance",
		Long: `Two records are linked when their Levenshtein distance is less than the
threshold. With --damerau adjacent transpositions count as a single edit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := metric.ParseThreshold(threshold)
			if err != nil {
				return usageError(err)
			}
			return a.runCluster(cmd, metric.Params{Kind: metric.KindLevenshtein, Threshold: t, Damerau: damerau}, &flags)
		},
	}

	cmd.Flags().StringVarP(&threshold, "threshold", "t", "", "Maximum edit distance (exclusive)")
	cmd.Flags().BoolVarP(&damerau, "damerau", "d", false, "Use Damerau-Levenshtein distance")
	addIOFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("threshold")
	return cmd
}
