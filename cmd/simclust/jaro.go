package main

import (
	"github.com/spf13/cobra"

	"github.com/steveyegge/simclust/internal/metric"
)

func newJaroCmd(a *app) *cobra.Command {
	var (
		ratio   string
		winkler bool
		flags   ioFlags
	)

	cmd := &cobra.Command{
		Use:     "jaro",
		Aliases: []string{"j"},
		Short:   "Cluster records by Jaro similarity",
		Long: `Two records are linked when their Jaro similarity is greater than the
ratio. With --winkler the Jaro-Winkler variant rewards a shared prefix.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := metric.ParseRatio(ratio)
			if err != nil {
				return usageError(err)
			}
			return a.runCluster(cmd, metric.Params{Kind: metric.KindJaro, Ratio: r, Winkler: winkler}, &flags)
		},
	}

	cmd.Flags().StringVarP(&ratio, "ratio", "r", "", "Minimum similarity, between 0 and 1 (exclusive)")
	cmd.Flags().BoolVarP(&winkler, "winkler", "w", false, "Use Jaro-Winkler similarity")
	addIOFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("ratio")
	return cmd
}
