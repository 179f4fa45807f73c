package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marsson/sfdx-scanner/internal/cli"
	"github.com/marsson/sfdx-scanner/internal/cli/config"
)

var (
	// Set at build time via -ldflags.
	version = "dev"
	commit  = "none"
	date    = "unknown"

	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "sfdx-scanner",
	Short: "Selects the source files a scan should process.",
	Long: `sfdx-scanner enumerates a project directory and filters the candidate
files through a declarative set of target patterns: inclusion globs,
exclusion globs (prefixed with "!"), with optional restriction to files
changed in Git. The selected paths are printed one per line.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		cfg, logger, err := config.LoadAndValidate(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		return cli.Run(ctx, cfg, logger, cmd.OutOrStdout())
	},
}

// Execute runs the root command. Cobra prints the error and exits non-zero
// when RunE fails.
func Execute() {
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default searches . and $HOME/.config/sfdx-scanner/)")

	rootCmd.Flags().StringP("project-dir", "p", ".", "Project directory to enumerate")
	rootCmd.Flags().StringArrayP("target", "t", []string{},
		`Target pattern (repeatable); prefix with "!" to exclude`)
	rootCmd.Flags().Int("concurrency", 0, "Parallel match evaluations (0 for auto-detect)")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.Flags().Bool("git-diff-only", false,
		"Consider only files changed in the Git index/working tree vs HEAD")
	rootCmd.Flags().String("git-since", "",
		"Consider only files changed since the given Git reference")
}
