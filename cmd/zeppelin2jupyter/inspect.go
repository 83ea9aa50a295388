// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/zeppelin2jupyter/internal/convert"
	"github.com/pdiddy/zeppelin2jupyter/internal/zeppelin"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect src",
	Short: "Summarize a Zeppelin notebook as YAML",
	Long: `Inspect validates a Zeppelin notebook and prints a YAML summary: paragraph
counts per editor language, result message counts per type, and how many
cells and dropped messages a conversion would produce. Nothing is written.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	note, err := zeppelin.ReadFile(args[0])
	if err != nil {
		return err
	}
	summary, err := convert.Summarize(note)
	if err != nil {
		return err
	}
	return convert.WriteSummary(cmd.OutOrStdout(), summary)
}
