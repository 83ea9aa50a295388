// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the zeppelin2jupyter CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/zeppelin2jupyter/internal/convert"
	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfgViper holds the configuration for the current invocation. It is
// rebuilt by initConfig on every execution.
var cfgViper = viper.New()

// configErr records a config file that was requested but could not be
// loaded; it is reported before any command runs.
var configErr error

// rootCmd converts a single notebook and hosts the other subcommands.
var rootCmd = &cobra.Command{
	Use:   "zeppelin2jupyter src [dst]",
	Short: "Convert Zeppelin notebooks to Jupyter notebooks",
	Long: `zeppelin2jupyter converts a Zeppelin notebook (note.json or .zpln) into a
Jupyter notebook. Markdown paragraphs become markdown cells, other paragraphs
become code cells with their text and inline-image results as outputs, and
paragraph titles become level-3 headings.

When dst is omitted the notebook is written next to src with an .ipynb
extension.

A source file named like a subcommand (batch, completion, help, history,
inspect, version) must be given as a path, for example ./batch.`,
	Args:          usageArgs(cobra.RangeArgs(1, 2)),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configErr
	},
	RunE: runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: zeppelin2jupyter.yaml in . or ~/.config/zeppelin2jupyter/)")
	rootCmd.PersistentFlags().String("indent", types.DefaultIndent, "JSON indentation of written notebooks (spaces or tabs)")
	rootCmd.PersistentFlags().String("ledger", "", "SQLite conversion ledger used by batch and history")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})
}

// boundFlags maps configuration keys to the flags that override them.
func boundFlags() map[string]*pflag.Flag {
	return map[string]*pflag.Flag{
		"indent":  rootCmd.PersistentFlags().Lookup("indent"),
		"ledger":  rootCmd.PersistentFlags().Lookup("ledger"),
		"out_dir": batchCmd.Flags().Lookup("out-dir"),
		"force":   batchCmd.Flags().Lookup("force"),
	}
}

func initConfig() {
	cfgViper = viper.New()
	configErr = nil

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		cfgViper.SetConfigFile(cfgFile)
	} else {
		cfgViper.SetConfigName("zeppelin2jupyter")
		cfgViper.SetConfigType("yaml")
		cfgViper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			cfgViper.AddConfigPath(filepath.Join(home, ".config", "zeppelin2jupyter"))
		}
	}

	cfgViper.SetEnvPrefix("ZEPPELIN2JUPYTER")
	cfgViper.AutomaticEnv()

	for key, flag := range boundFlags() {
		if err := cfgViper.BindPFlag(key, flag); err != nil {
			configErr = fmt.Errorf("%w: binding %s: %w", ErrConfig, key, err)
			return
		}
	}

	err := cfgViper.ReadInConfig()
	if err == nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Using config file:", cfgViper.ConfigFileUsed())
		return
	}
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		return
	}
	configErr = fmt.Errorf("%w: %w", ErrConfig, err)
}

// conversionConfig assembles and validates the conversion settings from
// flags, environment, and config file.
func conversionConfig() (types.ConversionConfig, error) {
	cfg := types.ConversionConfig{
		Indent: cfgViper.GetString("indent"),
		OutDir: cfgViper.GetString("out_dir"),
		Ledger: cfgViper.GetString("ledger"),
		Force:  cfgViper.GetBool("force"),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	src := args[0]
	var dst string
	if len(args) > 1 {
		dst = args[1]
	} else {
		dst = convert.DefaultDestination(src)
		fmt.Fprintf(out, "dst not given, writing to %s\n", dst)
	}

	res, err := convert.ConvertFile(src, dst, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "converted: %s -> %s (%d cells)\n", res.Src, res.Dst, res.Cells)
	if res.Dropped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: dropped %d unsupported result message(s)\n", res.Dropped)
	}
	return nil
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}

// execute runs the CLI with args and returns the process exit code. Errors
// are reported on stdout.
func execute(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stdout, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
