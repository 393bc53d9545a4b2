package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/internal/pager"
)

// pagesResult is the JSON form of a page window.
type pagesResult struct {
	Current int      `json:"current"`
	Total   int      `json:"total"`
	Max     int      `json:"max"`
	Tokens  []string `json:"tokens"`
}

// NewPagesCmd creates the pages command, which prints the page window the
// pagination bar would show.
func NewPagesCmd() *cobra.Command {
	var (
		current int
		total   int
		maxVis  int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Print the page window for a position",
		Example: `  # Page 6 of 20 with five visible pages
  paydesk pages --current 6 --total 20 --max 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := parseOutputFormat(output, outputTable, outputJSON)
			if err != nil {
				return err
			}
			if total < 0 {
				return fmt.Errorf("total must not be negative, got %d", total)
			}
			if maxVis < 1 {
				return fmt.Errorf("max must be at least 1, got %d", maxVis)
			}
			if total > 0 && (current < 1 || current > total) {
				return fmt.Errorf("current must be between 1 and %d, got %d", total, current)
			}

			tokens := pager.Window(current, total, maxVis)
			texts := make([]string, len(tokens))
			for i, tok := range tokens {
				texts[i] = tok.String()
			}
			if out == outputJSON {
				return writeJSON(cmd.OutOrStdout(), pagesResult{Current: current, Total: total, Max: maxVis, Tokens: texts})
			}
			if len(texts) == 0 {
				cmd.Println("(single page)")
				return nil
			}
			for i, tok := range tokens {
				if !tok.IsEllipsis() && tok.Page == current {
					texts[i] = "[" + texts[i] + "]"
				}
			}
			cmd.Println(strings.Join(texts, " "))
			return nil
		},
	}

	cmd.Flags().IntVar(&current, "current", 1, "current page (1-based)")
	cmd.Flags().IntVar(&total, "total", 1, "total number of pages")
	cmd.Flags().IntVar(&maxVis, "max", pager.DefaultMaxVisiblePages, "maximum contiguous pages shown")
	cmd.Flags().StringVar(&output, "output", string(outputTable), "output format: table or json")

	return cmd
}
