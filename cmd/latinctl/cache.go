package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latinrect/latinrect/derangement"
)

func cacheCmd(cfg *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "inspect or rebuild the derangement cache",
	}
	cmd.AddCommand(cacheInspectCmd(cfg))
	return cmd
}

func cacheInspectCmd(cfg *rootConfig) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "print sign distribution and prefix-index sizes for a cached n",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig[rootConfig](cmd.Root(), cfg); err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			h, err := derangement.LoadOrBuild(cfg.CacheDir, n, logger)
			if err != nil {
				return err
			}
			stats := h.Stats()
			fmt.Fprintf(cmd.OutOrStdout(),
				"n=%d count=%d positive=%d negative=%d single_prefix_buckets=%d pair_prefix_buckets=%d\n",
				stats.N, stats.Count, stats.PositiveCount, stats.NegativeCount,
				stats.SinglePrefixBuckets, stats.PairPrefixBuckets)
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "n", 0, "cache dimension to inspect")
	return cmd
}
