package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paydesk/paydesk/internal/config"
)

// NewConfigInitCmd creates the config init command, which writes the default
// configuration.
func NewConfigInitCmd() *cobra.Command {
	var (
		force   bool
		project string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a configuration file with default values at $PAYDESK_HOME/config.yaml,
or at <dir>/config.yaml with --project.`,
		Example: `  # Create global configuration
  paydesk config init

  # Create a project overlay in ./.paydesk
  paydesk config init --project .paydesk

  # Overwrite an existing file
  paydesk config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			if project != "" {
				path = filepath.Join(project, "config.yaml")
			}

			if !force {
				_, statErr := os.Stat(path)
				if statErr == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(statErr) {
					return fmt.Errorf("cannot access config path %s: %w", path, statErr)
				}
			}

			if err = config.New().WriteFile(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&project, "project", "", "write a project overlay into this directory")

	return cmd
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := parseOutputFormat(output, outputYAML, outputJSON)
			if err != nil {
				return err
			}
			cfg := configFrom(cmd)
			if out == outputJSON {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&output, "output", string(outputYAML), "output format: yaml or json")
	return cmd
}
