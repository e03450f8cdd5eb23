package main

import (
	"github.com/spf13/cobra"

	"github.com/steveyegge/simclust/internal/metric"
)

func newOSACmd(a *app) *cobra.Command {
	var (
		threshold string
		flags     ioFlags
	)

	cmd := &cobra.Command{
		Use:     "osa",
		Aliases: []string{"o"},
		Short:   "Cluster records by optimal string alignment distance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := metric.ParseThreshold(threshold)
			if err != nil {
				return usageError(err)
			}
			return a.runCluster(cmd, metric.Params{Kind: metric.KindOSA, Threshold: t}, &flags)
		},
	}

	cmd.Flags().StringVarP(&threshold, "threshold", "t", "", "Maximum OSA distance (exclusive)")
	addIOFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("threshold")
	return cmd
}
