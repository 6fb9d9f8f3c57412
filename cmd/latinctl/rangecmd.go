package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/latinrect/latinrect/dispatch"
)

type rangeFlags struct {
	rMin, rMax int
	nMin, nMax int
	file       string
}

// rangeJob is the declarative batch-file shape --file reads, in place
// of scripting a sequence of count invocations — the CLI-adjacent role
// original_source/scripts/generate_cache.py plays for cache warmup,
// reimagined here as a job file instead of a script.
type rangeJob struct {
	RMin int `yaml:"r_min"`
	RMax int `yaml:"r_max"`
	NMin int `yaml:"n_min"`
	NMax int `yaml:"n_max"`
}

func rangeCmd(cfg *rootConfig) *cobra.Command {
	flags := &rangeFlags{}

	cmd := &cobra.Command{
		Use:   "range",
		Short: "count every (r, n) pair with r <= n in a rectangular range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig[rootConfig](cmd.Root(), cfg); err != nil {
				return err
			}
			opts, err := buildOptions(cfg)
			if err != nil {
				return err
			}

			req := dispatch.RangeRequest{RMin: flags.rMin, RMax: flags.rMax, NMin: flags.nMin, NMax: flags.nMax}
			if flags.file != "" {
				data, err := os.ReadFile(flags.file)
				if err != nil {
					return err
				}
				var job rangeJob
				if err := yaml.Unmarshal(data, &job); err != nil {
					return err
				}
				req = dispatch.RangeRequest{RMin: job.RMin, RMax: job.RMax, NMin: job.NMin, NMax: job.NMax}
			}

			results, err := dispatch.CountRange(cmd.Context(), req, opts)
			if err != nil {
				return err
			}
			for _, result := range results {
				printResult(cmd, result)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.rMin, "r-min", 0, "minimum r")
	cmd.Flags().IntVar(&flags.rMax, "r-max", 0, "maximum r")
	cmd.Flags().IntVar(&flags.nMin, "n-min", 0, "minimum n")
	cmd.Flags().IntVar(&flags.nMax, "n-max", 0, "maximum n")
	cmd.Flags().StringVar(&flags.file, "file", "", "YAML job file (r_min/r_max/n_min/n_max), overrides the range flags")

	return cmd
}
