package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latinrect/latinrect/dispatch"
	"github.com/latinrect/latinrect/rectangle"
)

type countFlags struct {
	r, n int
	fuse bool
}

func countCmd(cfg *rootConfig) *cobra.Command {
	flags := &countFlags{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "count normalized (r, n) Latin rectangles by sign",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig[rootConfig](cmd.Root(), cfg); err != nil {
				return err
			}
			opts, err := buildOptions(cfg)
			if err != nil {
				return err
			}

			if flags.fuse {
				base, completion, err := dispatch.CountWithCompletion(cmd.Context(), flags.r, flags.n, opts)
				if err != nil {
					return err
				}
				printResult(cmd, base)
				printResult(cmd, completion)
				return nil
			}

			result, err := dispatch.Count(cmd.Context(), flags.r, flags.n, opts)
			if err != nil {
				return err
			}
			printResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.r, "r", 0, "number of rows")
	cmd.Flags().IntVar(&flags.n, "n", 0, "number of columns")
	cmd.Flags().BoolVar(&flags.fuse, "fuse", false, "also derive (r+1, n) via completion fusion (requires r = n-1)")

	return cmd
}

func printResult(cmd *cobra.Command, result rectangle.CountResult) {
	fmt.Fprintln(cmd.OutOrStdout(), result.String())
}
