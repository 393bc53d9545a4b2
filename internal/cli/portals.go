package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewPortalsCmd creates the portals command, which lists every portal with
// its record count.
func NewPortalsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "portals",
		Short: "List the role portals and their record counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := parseOutputFormat(output, outputTable, outputJSON)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cmd.Context(), configFrom(cmd), false)
			if err != nil {
				return err
			}
			sums := cat.Summaries()
			if out == outputJSON {
				return writeJSON(cmd.OutOrStdout(), sums)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "Role\tPortal\tRecords\tRows")
			fmt.Fprintln(w, "----\t------\t-------\t----")
			for _, s := range sums {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", s.Role, s.Title, s.Entity, s.Rows)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&output, "output", string(outputTable), "output format: table or json")
	return cmd
}
