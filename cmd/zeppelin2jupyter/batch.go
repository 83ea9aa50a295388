// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zeppelin2jupyter/internal/convert"
	"github.com/pdiddy/zeppelin2jupyter/internal/ledger"
)

var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Convert many notebooks, walking directories",
	Long: `Batch converts every notebook named on the command line. Directories are
walked for note.json and .zpln files; each notebook is written next to its
source, or under --out-dir keeping its relative path.

With --ledger, conversions are recorded in a SQLite database and notebooks
whose source is unchanged since the last run are skipped. Use --force to
convert them anyway.`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("out-dir", "", "directory for converted notebooks (default: beside each source)")
	batchCmd.Flags().Bool("force", false, "convert notebooks the ledger reports as unchanged")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	var tracker convert.Tracker
	if cfg.Ledger != "" {
		l, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer l.Close()
		tracker = l
	}

	result := convert.ConvertBatch(cmd.Context(), args, cfg, tracker, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if result.HasFailures() {
		return fmt.Errorf("%w: %d notebook(s) failed conversion", ErrBatch, result.Failed)
	}
	return nil
}
