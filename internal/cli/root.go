package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/paydesk/paydesk/internal/config"
	"github.com/paydesk/paydesk/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the paydesk CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for
// testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:           "paydesk",
		Short:         "Role-based payments operations dashboard",
		Long:          "paydesk: browse transactions, terminals and settlements through paginated, sortable, searchable tables",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			cfg, err := config.Load(config.LoadOptions{
				Path:       configPath,
				ProjectDir: config.ResolveProjectDir(cmd.Context(), projectDir, cwd),
				LookupEnv:  lookupEnv,
			})
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $PAYDESK_HOME/config.yaml)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "project .paydesk directory merged over the global config")
	cmd.AddCommand(
		NewTUICmd(), NewListCmd(), NewPagesCmd(), NewPortalsCmd(),
		NewLoginCmd(), NewLogoutCmd(), NewWhoamiCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Sign in to the merchant portal
  paydesk login --user ada --role merchant

  # Open the interactive portal for the signed-in role
  paydesk tui

  # Print page 3 of settlements sorted by net amount
  paydesk list --role partner-bank --page 3 --sort net:desc

  # Export matching transactions as CSV
  paydesk list --search "acme" --page-size 50 --output csv

  # Show the page window for page 6 of 20
  paydesk pages --current 6 --total 20 --max 5`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
