package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/internal/dataset"
	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/pager"
	"github.com/paydesk/paydesk/internal/portal"
)

type listFlags struct {
	role     string
	page     int
	pageSize int
	sort     string
	search   string
	hide     []string
	output   string
}

// listResult is the JSON form of one listed page.
type listResult[R any] struct {
	Role       portal.Role      `json:"role"`
	Entity     portal.Entity    `json:"entity"`
	Search     string           `json:"search,omitempty"`
	Sort       string           `json:"sort,omitempty"`
	Pagination pager.Descriptor `json:"pagination"`
	Rows       []R              `json:"rows"`
}

// NewListCmd creates the list command, which renders one page of a portal
// table without the interactive UI.
func NewListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of a portal table",
		Long: `Fetches one page of the portal's records and renders it through the same
table engine the interactive UI uses. The role defaults to the signed-in one.`,
		Example: `  # First page of the signed-in portal
  paydesk list

  # Page 2 of terminals, 20 per page, hiding the location column
  paydesk list --role sub-merchant --page 2 --page-size 20 --hide location

  # Search and sort, as JSON
  paydesk list --search pending --sort amount:desc --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.role, "role", "", "portal role (admin, merchant, partner-bank, sub-merchant)")
	cmd.Flags().IntVar(&flags.page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "rows per page (0 = config default)")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort column as field or field:asc|desc")
	cmd.Flags().StringVar(&flags.search, "search", "", "case-insensitive search text")
	cmd.Flags().StringSliceVar(&flags.hide, "hide", nil, "columns to hide")
	cmd.Flags().StringVar(&flags.output, "output", string(outputTable), "output format: table, json or csv")

	return cmd
}

func runList(cmd *cobra.Command, flags listFlags) error {
	if flags.page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", flags.page)
	}
	out, err := parseOutputFormat(flags.output, outputTable, outputJSON, outputCSV)
	if err != nil {
		return err
	}
	cfg := configFrom(cmd)
	role, err := resolveRole(cfg, flags.role)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	exp := portal.NewExporter(cfg.Export.Dir)

	switch role.Entity() {
	case portal.EntityTerminals:
		return listPage(cmd, portal.Terminals(cat.Terminals, exp), flags, out)
	case portal.EntitySettlements:
		return listPage(cmd, portal.Settlements(cat.Settlements, exp), flags, out)
	default:
		return listPage(cmd, portal.Transactions(role, cat.Transactions, exp), flags, out)
	}
}

func listPage[R any](cmd *cobra.Command, def portal.Definition[R], flags listFlags, out outputFormat) error {
	ctx := cmd.Context()
	gcfg := configFrom(cmd).Table.GridConfig()
	if flags.pageSize != 0 {
		if len(gcfg.PageSizeOptions) > 0 && !slices.Contains(gcfg.PageSizeOptions, flags.pageSize) {
			return fmt.Errorf("page size must be one of %v, got %d", gcfg.PageSizeOptions, flags.pageSize)
		}
		gcfg.PageSize = flags.pageSize
	}

	tbl, err := def.NewTable(gcfg, grid.WithLogger[R](logger))
	if err != nil {
		return err
	}
	defer tbl.Close()

	for _, id := range flags.hide {
		if !tbl.ToggleColumn(strings.TrimSpace(id)) {
			return fmt.Errorf("column %q cannot be hidden", id)
		}
	}

	q := dataset.Query{Search: flags.search, Page: flags.page - 1, PageSize: gcfg.PageSize}
	if flags.sort != "" {
		field, order, sortErr := pager.ParseSort(flags.sort)
		if sortErr != nil {
			return sortErr
		}
		col, ok := def.Column(field)
		if !ok {
			return fmt.Errorf("%w: %q", grid.ErrUnknownColumn, field)
		}
		dir, sortErr := grid.ParseDirection(order)
		if sortErr != nil {
			return sortErr
		}
		if sortErr = tbl.SetSort(col.ID, dir); sortErr != nil {
			return sortErr
		}
		q.SortKey, q.SortDesc = tbl.Sort().Key, tbl.Sort().Desc()
	}

	page, fetchErr := def.Source.Fetch(ctx, q)
	view := tbl.Render(grid.Input[R]{
		Rows:       page.Rows,
		Pagination: page.Pagination,
		Status:     grid.Status{Err: fetchErr},
	})
	if view.Kind == grid.ViewError {
		return fmt.Errorf("listing %s: %w", def.Entity, view.Err)
	}
	logger.Debug().Ctx(ctx).
		Str("entity", string(def.Entity)).
		Stringer("state", view.Kind).
		Int("rows", len(view.Rows)).
		Msg("page rendered")

	switch out {
	case outputJSON:
		rows := tbl.Rows()
		if rows == nil {
			rows = []R{}
		}
		res := listResult[R]{
			Role:       def.Role,
			Entity:     def.Entity,
			Search:     flags.search,
			Pagination: view.Pagination.Descriptor,
			Rows:       rows,
		}
		if s := view.Sort; s.Active() {
			res.Sort = s.Key + ":" + s.Direction.String()
		}
		return writeJSON(cmd.OutOrStdout(), res)
	case outputCSV:
		return portal.WriteCSV(cmd.OutOrStdout(), tbl.VisibleColumns(), tbl.Rows())
	case outputTable:
	}
	return renderTable(cmd.OutOrStdout(), view)
}

// renderTable prints the view as aligned columns followed by the
// pagination bar.
func renderTable[R any](w io.Writer, view grid.View[R]) error {
	if view.Kind == grid.ViewEmpty {
		fmt.Fprintln(w, view.EmptyMessage)
		if view.EmptyDescription != "" {
			fmt.Fprintln(w, view.EmptyDescription)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	titles := make([]string, len(view.Columns))
	for i, h := range view.Columns {
		titles[i] = h.Title
		if ind := h.Sort.Indicator(); ind != "" {
			titles[i] += " " + ind
		}
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, r := range view.Rows {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = c.Text
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if view.Pagination.Enabled {
		fmt.Fprintln(w)
		if bar := paginationBar(view.Pagination); bar != "" {
			fmt.Fprintln(w, bar)
		}
		fmt.Fprintln(w, view.Pagination.Summary)
	}
	return nil
}

// paginationBar renders the page tokens with the current page bracketed.
func paginationBar(p grid.PaginationView) string {
	if len(p.Tokens) == 0 {
		return ""
	}
	current := p.Descriptor.Page()
	parts := make([]string, 0, len(p.Tokens))
	for _, tok := range p.Tokens {
		if !tok.IsEllipsis() && tok.Page == current {
			parts = append(parts, "["+tok.String()+"]")
			continue
		}
		parts = append(parts, tok.String())
	}
	return strings.Join(parts, " ")
}
