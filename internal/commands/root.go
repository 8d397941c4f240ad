package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cashflow/internal/buildinfo"
	"github.com/cleared-dev/cashflow/internal/config"
	"github.com/cleared-dev/cashflow/internal/logger"
	"github.com/cleared-dev/cashflow/internal/pipeline"
)

// CompletionMessage is the single line printed on stdout after a successful run.
const CompletionMessage = "ETL complete. Outputs saved in data/processed and dashboards/."

// NewRootCommand creates the CLI command. It takes no arguments and works
// relative to the current directory.
func NewRootCommand() *cobra.Command {
	return newRootCommand(".")
}

func newRootCommand(baseDir string) *cobra.Command {
	return &cobra.Command{
		Use:     "cashflow",
		Short:   "Summarize bank transactions into cash-flow tables and charts",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, baseDir, cmd.OutOrStdout())
		},
	}
}

func runReport(cmd *cobra.Command, baseDir string, out io.Writer) error {
	ctx := logger.WithContext(cmd.Context(), logger.NewConsole(cmd.ErrOrStderr()))

	if _, err := pipeline.Run(ctx, config.Default(baseDir)); err != nil {
		return err
	}

	fmt.Fprintln(out, CompletionMessage)
	return nil
}
