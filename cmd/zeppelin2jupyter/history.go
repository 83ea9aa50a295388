// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zeppelin2jupyter/internal/ledger"
	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List conversions recorded in the ledger",
	Long: `History lists the notebooks recorded in the conversion ledger given by
--ledger (or the ledger config key), with their destination, cell count,
dropped result messages, and conversion time.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Bool("json", false, "output entries as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig()
	if err != nil {
		return err
	}
	if cfg.Ledger == "" {
		return fmt.Errorf("%w: no ledger configured, pass --ledger", ErrUsage)
	}

	l, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer l.Close()

	entries, err := l.Entries(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []types.ConversionRecord{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-40s  %-40s  %5s  %7s  %s\n", "Source", "Destination", "Cells", "Dropped", "Converted")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, e := range entries {
		fmt.Fprintf(w, "%-40s  %-40s  %5d  %7d  %s\n",
			truncate(e.Src, 40), truncate(e.Dst, 40), e.Cells, e.Dropped,
			e.ConvertedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(w, "\n%d conversion(s)\n", len(entries))
	return nil
}

// truncate shortens s to n runes, keeping the end of long paths.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-n+3:])
}
