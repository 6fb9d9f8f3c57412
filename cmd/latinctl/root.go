package main

import (
	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	cfg := &rootConfig{}

	cmd := &cobra.Command{
		Use:           "latinctl",
		Short:         "latinctl counts normalized Latin rectangles by sign",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfg.CacheDir, "cache-dir", ".", "directory holding the derangement cache files")
	cmd.PersistentFlags().IntVar(&cfg.Workers, "workers", 0, "worker count override (0 = auto)")
	cmd.PersistentFlags().StringVar(&cfg.Mode, "mode", "auto", "backend mode: auto, single, or parallel")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&cfg.Store, "store", "", "path to a YAML result-store file (empty = no store)")

	cmd.AddCommand(countCmd(cfg))
	cmd.AddCommand(rangeCmd(cfg))
	cmd.AddCommand(cacheCmd(cfg))

	return cmd
}
