package grid_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/pager"
)

type payment struct {
	ID     string
	Ref    string
	Amount decimal.Decimal
	Status string
}

func paymentID(p payment) string { return p.ID }

func paymentColumns() []grid.Column[payment] {
	return []grid.Column[payment]{
		{
			ID:            "ref",
			Header:        "Reference",
			Value:         func(p payment) any { return p.Ref },
			EnableSorting: true,
		},
		{
			ID:            "amount",
			Header:        "Amount",
			Value:         func(p payment) any { return p.Amount },
			Cell:          grid.TextCell[payment]{Value: func(p payment) string { return p.Amount.StringFixed(2) }, Align: grid.AlignRight},
			EnableSorting: true,
			EnableHiding:  true,
		},
		{
			ID:     "status",
			Header: "Status",
			Cell: grid.BadgeCell[payment]{
				Value:    func(p payment) string { return p.Status },
				Variants: map[string]grid.BadgeVariant{"settled": grid.BadgeSuccess, "failed": grid.BadgeDanger},
			},
			EnableHiding: true,
		},
	}
}

func payments(prefix string, n int) []payment {
	out := make([]payment, n)
	for i := range out {
		out[i] = payment{
			ID:     fmt.Sprintf("%s-%d", prefix, i+1),
			Ref:    fmt.Sprintf("TXN-%d", i+1),
			Amount: decimal.NewFromInt(int64(100 * (i + 1))),
			Status: "settled",
		}
	}
	return out
}

func desc(t *testing.T, total, size, page int) pager.Descriptor {
	t.Helper()
	d, err := pager.NewDescriptor(total, size, page)
	require.NoError(t, err)
	return d
}

type recorder struct {
	pages    []int
	sizes    []int
	sorts    []grid.SortState
	searches chan string
}

func newRecorder() *recorder {
	return &recorder{searches: make(chan string, 8)}
}

func (r *recorder) options() []grid.Option[payment] {
	return []grid.Option[payment]{
		grid.OnPageChange[payment](func(p int) { r.pages = append(r.pages, p) }),
		grid.OnPageSizeChange[payment](func(s int) { r.sizes = append(r.sizes, s) }),
		grid.OnSortChange[payment](func(s grid.SortState) { r.sorts = append(r.sorts, s) }),
		grid.OnSearch[payment](func(q string) { r.searches <- q }),
	}
}

func newTable(t *testing.T, cfg grid.Config, actions []grid.Action[payment], opts ...grid.Option[payment]) *grid.Table[payment] {
	t.Helper()
	tbl, err := grid.New(cfg, paymentColumns(), actions, paymentID, opts...)
	require.NoError(t, err)
	t.Cleanup(tbl.Close)
	return tbl
}

func renderPage(t *testing.T, tbl *grid.Table[payment], rows []payment, total, size, page int) grid.View[payment] {
	t.Helper()
	return tbl.Render(grid.Input[payment]{Rows: rows, Pagination: desc(t, total, size, page)})
}

func noop(context.Context, []payment) error { return nil }

func TestNew_ConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     func() grid.Config
		columns []grid.Column[payment]
		actions []grid.Action[payment]
		rowID   func(payment) string
		field   string
	}{
		{
			name:    "no columns",
			cfg:     grid.DefaultConfig,
			columns: nil,
			rowID:   paymentID,
			field:   "columns",
		},
		{
			name:    "empty column id",
			cfg:     grid.DefaultConfig,
			columns: []grid.Column[payment]{{Value: func(payment) any { return "" }}},
			rowID:   paymentID,
			field:   "columns[0].ID",
		},
		{
			name: "duplicate column id",
			cfg:  grid.DefaultConfig,
			columns: []grid.Column[payment]{
				{ID: "ref", Value: func(payment) any { return "" }},
				{ID: "ref", Value: func(payment) any { return "" }},
			},
			rowID: paymentID,
			field: "columns[1].ID",
		},
		{
			name:    "column without renderer",
			cfg:     grid.DefaultConfig,
			columns: []grid.Column[payment]{{ID: "ref"}},
			rowID:   paymentID,
			field:   "columns[0].Cell",
		},
		{
			name:    "missing row id",
			cfg:     grid.DefaultConfig,
			columns: paymentColumns(),
			field:   "rowID",
		},
		{
			name:    "action without handler",
			cfg:     grid.DefaultConfig,
			columns: paymentColumns(),
			actions: []grid.Action[payment]{{Label: "Export"}},
			rowID:   paymentID,
			field:   "actions[0].Handler",
		},
		{
			name:    "duplicate action label",
			cfg:     grid.DefaultConfig,
			columns: paymentColumns(),
			actions: []grid.Action[payment]{{Label: "Export", Handler: noop}, {Label: "Export", Handler: noop}},
			rowID:   paymentID,
			field:   "actions[1].Label",
		},
		{
			name: "page size not offered",
			cfg: func() grid.Config {
				c := grid.DefaultConfig()
				c.PageSize = 25
				return c
			},
			columns: paymentColumns(),
			rowID:   paymentID,
			field:   "PageSize",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := grid.New(tt.cfg(), tt.columns, tt.actions, tt.rowID)
			require.Error(t, err)
			assert.ErrorIs(t, err, grid.ErrInvalidConfig)

			var cfgErr *grid.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestRender_StatePrecedence(t *testing.T) {
	t.Parallel()

	rows := payments("a", 3)
	boom := errors.New("upstream unavailable")

	tests := []struct {
		name   string
		status grid.Status
		rows   []payment
		want   grid.ViewKind
	}{
		{name: "loading beats error", status: grid.Status{IsLoading: true, IsError: true, Err: boom}, rows: rows, want: grid.ViewLoading},
		{name: "loading beats empty", status: grid.Status{IsLoading: true}, want: grid.ViewLoading},
		{name: "error beats empty", status: grid.Status{IsError: true, Err: boom}, want: grid.ViewError},
		{name: "error with rows", status: grid.Status{Err: boom}, rows: rows, want: grid.ViewError},
		{name: "derived empty", want: grid.ViewEmpty},
		{name: "forced empty", status: grid.Status{IsEmpty: true}, rows: rows, want: grid.ViewEmpty},
		{name: "data", rows: rows, want: grid.ViewData},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl := newTable(t, grid.DefaultConfig(), nil)
			v := tbl.Render(grid.Input[payment]{
				Rows:       tt.rows,
				Pagination: desc(t, len(tt.rows), 10, 0),
				Status:     tt.status,
			})
			assert.Equal(t, tt.want, v.Kind)
			if tt.want != grid.ViewData {
				assert.Empty(t, v.Rows)
				assert.False(t, v.Interactive())
			}
		})
	}
}

func TestRender_ErrorCarriesCause(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	boom := errors.New("upstream unavailable")

	v := tbl.Render(grid.Input[payment]{Status: grid.Status{Err: boom}})
	require.Equal(t, grid.ViewError, v.Kind)
	assert.ErrorIs(t, v.Err, boom)

	v = tbl.Render(grid.Input[payment]{Status: grid.Status{IsError: true}})
	require.Equal(t, grid.ViewError, v.Kind)
	assert.Error(t, v.Err)
}

func TestRender_EmptyTexts(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfig()
	cfg.EmptyMessage = "No transactions"
	cfg.EmptyDescription = "Try a different search."
	tbl := newTable(t, cfg, nil)

	v := tbl.Render(grid.Input[payment]{Pagination: pager.Empty(10)})
	assert.Equal(t, grid.ViewEmpty, v.Kind)
	assert.Equal(t, "No transactions", v.EmptyMessage)
	assert.Equal(t, "Try a different search.", v.EmptyDescription)
	assert.Equal(t, pager.NoEntriesText, v.Pagination.Summary)
}

func TestRender_RejectsInconsistentDescriptor(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	bad := desc(t, 30, 10, 0)
	bad.HasNextPage = false

	v := tbl.Render(grid.Input[payment]{Rows: payments("a", 10), Pagination: bad})
	assert.Equal(t, grid.ViewError, v.Kind)
	assert.ErrorIs(t, v.Err, pager.ErrInconsistentFlags)
}

func TestRender_ZeroDescriptorIsSinglePage(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	v := tbl.Render(grid.Input[payment]{Rows: payments("a", 4)})
	require.Equal(t, grid.ViewData, v.Kind)
	assert.Equal(t, 4, v.Pagination.Descriptor.Total)
	assert.Equal(t, 1, v.Pagination.Descriptor.PageCount)
	assert.False(t, v.Pagination.Controls.Next)
}

func TestRender_Cells(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	rows := payments("a", 2)
	rows[1].Status = "Failed"

	v := renderPage(t, tbl, rows, 2, 10, 0)
	require.Len(t, v.Rows, 2)
	require.Len(t, v.Columns, 3)
	assert.Equal(t, "Reference", v.Columns[0].Title)

	first := v.Rows[0]
	assert.Equal(t, "a-1", first.ID)
	assert.Equal(t, "TXN-1", first.Cells[0].Text)
	assert.Equal(t, "100.00", first.Cells[1].Text)
	assert.Equal(t, grid.AlignRight, first.Cells[1].Align)
	assert.Equal(t, grid.CellBadge, first.Cells[2].Kind)
	assert.Equal(t, grid.BadgeSuccess, first.Cells[2].Variant)
	assert.Equal(t, grid.BadgeDanger, v.Rows[1].Cells[2].Variant)
}

func TestSelection_HeaderCheckbox(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	renderPage(t, tbl, payments("a", 3), 3, 10, 0)

	assert.Equal(t, grid.Unchecked, tbl.HeaderCheckbox())

	require.True(t, tbl.ToggleRow("a-1"))
	assert.Equal(t, grid.Indeterminate, tbl.HeaderCheckbox())

	require.True(t, tbl.ToggleRow("a-2"))
	require.True(t, tbl.ToggleRow("a-3"))
	assert.Equal(t, grid.Checked, tbl.HeaderCheckbox())

	require.True(t, tbl.ToggleRow("a-2"))
	assert.Equal(t, grid.Indeterminate, tbl.HeaderCheckbox())
	assert.Equal(t, []string{"a-1", "a-3"}, tbl.SelectedIDs())

	assert.False(t, tbl.ToggleRow("missing"))
}

func TestSelection_ToggleHeader(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	renderPage(t, tbl, payments("a", 3), 3, 10, 0)

	require.True(t, tbl.ToggleRow("a-1"))
	require.True(t, tbl.ToggleHeader())
	assert.Equal(t, grid.Unchecked, tbl.HeaderCheckbox())

	require.True(t, tbl.ToggleHeader())
	assert.Equal(t, grid.Checked, tbl.HeaderCheckbox())
	assert.Len(t, tbl.SelectedRows(), 3)
}

func TestSelection_ToggleAllOnlyAffectsCurrentPage(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfig()
	cfg.PersistSelection = true
	tbl := newTable(t, cfg, nil)

	renderPage(t, tbl, payments("p1", 10), 25, 10, 0)
	require.True(t, tbl.ToggleRow("p1-4"))

	renderPage(t, tbl, payments("p2", 10), 25, 10, 1)
	require.True(t, tbl.ToggleAllOnPage(true))
	assert.Equal(t, 11, len(tbl.SelectedIDs()))
	assert.Len(t, tbl.SelectedRows(), 10)

	require.True(t, tbl.ToggleAllOnPage(false))
	assert.Equal(t, []string{"p1-4"}, tbl.SelectedIDs())
	assert.Equal(t, grid.Unchecked, tbl.HeaderCheckbox())
}

func TestSelection_ClearsWhenRowSetChanges(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	renderPage(t, tbl, payments("a", 3), 6, 3, 0)
	require.True(t, tbl.ToggleRow("a-2"))

	// Same rows in a different order keep the selection.
	rows := payments("a", 3)
	rows[0], rows[2] = rows[2], rows[0]
	renderPage(t, tbl, rows, 6, 3, 0)
	assert.Equal(t, []string{"a-2"}, tbl.SelectedIDs())

	renderPage(t, tbl, payments("b", 3), 6, 3, 1)
	assert.Empty(t, tbl.SelectedIDs())
	assert.Equal(t, grid.Unchecked, tbl.HeaderCheckbox())
}

func TestSelection_SurvivesLoading(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	rows := payments("a", 3)
	renderPage(t, tbl, rows, 3, 10, 0)
	require.True(t, tbl.ToggleRow("a-1"))

	v := tbl.Render(grid.Input[payment]{Status: grid.Status{IsLoading: true}})
	assert.Equal(t, grid.ViewLoading, v.Kind)
	assert.False(t, tbl.ToggleRow("a-2"), "rows are inert while loading")
	assert.False(t, tbl.ToggleAllOnPage(true))

	renderPage(t, tbl, rows, 3, 10, 0)
	assert.Equal(t, []string{"a-1"}, tbl.SelectedIDs())
}

func TestSelection_Disabled(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfig()
	cfg.EnableRowSelection = false
	tbl := newTable(t, cfg, nil)
	v := renderPage(t, tbl, payments("a", 3), 3, 10, 0)

	assert.False(t, v.Selectable)
	assert.False(t, tbl.ToggleRow("a-1"))
	assert.False(t, tbl.ToggleAllOnPage(true))
}

func TestActions_Gating(t *testing.T) {
	t.Parallel()

	actions := []grid.Action[payment]{
		{Label: "Refresh", Handler: noop},
		{Label: "Export", RequiresSelection: true, Handler: noop},
		{
			Label:             "Refund",
			RequiresSelection: true,
			Variant:           grid.ActionDestructive,
			Disabled: func(sel []payment) bool {
				for _, p := range sel {
					if p.Status != "settled" {
						return true
					}
				}
				return false
			},
			Handler: noop,
		},
	}
	tbl := newTable(t, grid.DefaultConfig(), actions)
	rows := payments("a", 3)
	rows[2].Status = "pending"
	renderPage(t, tbl, rows, 3, 10, 0)

	enabled := func() map[string]bool {
		out := map[string]bool{}
		for _, s := range tbl.ActionStates() {
			out[s.Label] = s.Enabled
		}
		return out
	}

	assert.Equal(t, map[string]bool{"Refresh": true, "Export": false, "Refund": false}, enabled())

	require.True(t, tbl.ToggleRow("a-1"))
	assert.Equal(t, map[string]bool{"Refresh": true, "Export": true, "Refund": true}, enabled())

	require.True(t, tbl.ToggleRow("a-3"))
	assert.Equal(t, map[string]bool{"Refresh": true, "Export": true, "Refund": false}, enabled())

	ok, err := tbl.ActionEnabled("Refund")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = tbl.ActionEnabled("Delete")
	assert.ErrorIs(t, err, grid.ErrUnknownAction)
}

func TestActions_PersistedSelectionAcrossPages(t *testing.T) {
	t.Parallel()

	var got []payment
	actions := []grid.Action[payment]{{
		Label:             "Export",
		RequiresSelection: true,
		Handler: func(_ context.Context, sel []payment) error {
			got = sel
			return nil
		},
	}}
	cfg := grid.DefaultConfig()
	cfg.PersistSelection = true
	tbl := newTable(t, cfg, actions)

	renderPage(t, tbl, payments("p1", 10), 25, 10, 0)
	require.True(t, tbl.ToggleAllOnPage(true))

	view := renderPage(t, tbl, payments("p2", 10), 25, 10, 1)
	assert.Equal(t, 10, view.SelectedCount)
	require.Len(t, view.Actions, 1)
	assert.True(t, view.Actions[0].Enabled)
	ok, err := tbl.ActionEnabled("Export")
	require.NoError(t, err)
	assert.True(t, ok)

	require.True(t, tbl.ToggleRow("p2-3"))
	ran, err := tbl.Invoke(context.Background(), "Export")
	require.NoError(t, err)
	require.True(t, ran)
	require.Len(t, got, 11)
	assert.Equal(t, "p2-3", got[0].ID, "current page rows come first")
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.ElementsMatch(t, tbl.SelectedIDs(), ids)

	renderPage(t, tbl, payments("p1", 10), 25, 10, 0)
	assert.Len(t, tbl.SelectedRows(), 10)
	assert.Len(t, tbl.AllSelectedRows(), 11)

	tbl.ClearSelection()
	assert.Empty(t, tbl.AllSelectedRows())
	ok, err = tbl.ActionEnabled("Export")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestActions_DisabledOutsideDataState(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), []grid.Action[payment]{{Label: "Refresh", Handler: noop}})

	v := tbl.Render(grid.Input[payment]{Status: grid.Status{IsLoading: true}})
	require.Len(t, v.Actions, 1)
	assert.False(t, v.Actions[0].Enabled)

	ran, err := tbl.Invoke(context.Background(), "Refresh")
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestActions_InvokeReceivesSelection(t *testing.T) {
	t.Parallel()

	var got []payment
	handlerErr := errors.New("export failed")
	actions := []grid.Action[payment]{{
		Label:             "Export",
		RequiresSelection: true,
		Handler: func(_ context.Context, sel []payment) error {
			got = sel
			return handlerErr
		},
	}}
	tbl := newTable(t, grid.DefaultConfig(), actions)
	renderPage(t, tbl, payments("a", 3), 3, 10, 0)

	ran, err := tbl.Invoke(context.Background(), "Export")
	require.NoError(t, err)
	assert.False(t, ran, "requires a selection")

	require.True(t, tbl.ToggleRow("a-3"))
	require.True(t, tbl.ToggleRow("a-1"))

	ran, err = tbl.Invoke(context.Background(), "Export")
	assert.True(t, ran)
	require.ErrorIs(t, err, handlerErr)
	require.Len(t, got, 2)
	assert.Equal(t, "a-1", got[0].ID, "selected rows are delivered in page order")
	assert.Equal(t, "a-3", got[1].ID)
}

func TestActions_BindSnapshotsSelection(t *testing.T) {
	t.Parallel()

	var got []payment
	actions := []grid.Action[payment]{{
		Label:             "Export",
		RequiresSelection: true,
		Handler: func(_ context.Context, sel []payment) error {
			got = sel
			return nil
		},
	}}
	tbl := newTable(t, grid.DefaultConfig(), actions)
	renderPage(t, tbl, payments("a", 3), 3, 10, 0)
	require.True(t, tbl.ToggleRow("a-2"))

	inv, err := tbl.Bind("Export")
	require.NoError(t, err)
	require.True(t, inv.Enabled)
	assert.Equal(t, 1, inv.Count)

	tbl.ClearSelection()
	require.NoError(t, inv.Run(context.Background()))
	require.Len(t, got, 1)
	assert.Equal(t, "a-2", got[0].ID)
}

func TestSort_Cycle(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	tbl := newTable(t, grid.DefaultConfig(), nil, rec.options()...)

	require.NoError(t, tbl.ToggleSort("amount"))
	assert.Equal(t, grid.SortState{ColumnID: "amount", Key: "amount", Direction: grid.SortAsc}, tbl.Sort())

	require.NoError(t, tbl.ToggleSort("amount"))
	assert.Equal(t, grid.SortDesc, tbl.Sort().Direction)

	require.NoError(t, tbl.ToggleSort("amount"))
	assert.False(t, tbl.Sort().Active())

	require.NoError(t, tbl.ToggleSort("amount"))
	require.NoError(t, tbl.ToggleSort("ref"))
	assert.Equal(t, "ref", tbl.Sort().ColumnID)
	assert.Equal(t, grid.SortAsc, tbl.Sort().Direction, "a new column starts ascending")

	require.Len(t, rec.sorts, 5)
	assert.Equal(t, grid.SortState{}, rec.sorts[2])
}

func TestSort_HeaderIndicator(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	require.NoError(t, tbl.ToggleSort("ref"))
	v := renderPage(t, tbl, payments("a", 2), 2, 10, 0)

	assert.Equal(t, grid.SortAsc, v.Columns[0].Sort)
	assert.Equal(t, grid.SortNone, v.Columns[1].Sort)
	assert.True(t, v.Columns[0].Sortable)
	assert.False(t, v.Columns[2].Sortable)
}

func TestSort_Rejections(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)
	require.ErrorIs(t, tbl.ToggleSort("status"), grid.ErrNotSortable)
	require.ErrorIs(t, tbl.ToggleSort("nope"), grid.ErrUnknownColumn)

	cfg := grid.DefaultConfig()
	cfg.EnableSorting = false
	off := newTable(t, cfg, nil)
	require.ErrorIs(t, off.ToggleSort("ref"), grid.ErrSortingDisabled)
	v := renderPage(t, off, payments("a", 1), 1, 10, 0)
	assert.False(t, v.Columns[0].Sortable)
}

func TestSort_AccessorIsForwarded(t *testing.T) {
	t.Parallel()

	cols := paymentColumns()
	cols[1].Accessor = "amount_minor"
	var got grid.SortState
	tbl, err := grid.New(grid.DefaultConfig(), cols, nil, paymentID,
		grid.OnSortChange[payment](func(s grid.SortState) { got = s }))
	require.NoError(t, err)
	t.Cleanup(tbl.Close)

	require.NoError(t, tbl.SetSort("amount", grid.SortDesc))
	assert.Equal(t, "amount_minor", got.Key)
	assert.True(t, got.Desc())
}

func TestPagination_Callbacks(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	tbl := newTable(t, grid.DefaultConfig(), nil, rec.options()...)
	v := renderPage(t, tbl, payments("a", 10), 95, 10, 0)

	assert.Equal(t, "Showing 1 to 10 of 95 entries", v.Pagination.Summary)
	assert.False(t, v.Pagination.Controls.Previous)
	assert.True(t, v.Pagination.Controls.Next)

	assert.False(t, tbl.PreviousPage())
	assert.True(t, tbl.NextPage())
	assert.True(t, tbl.LastPage())
	assert.False(t, tbl.GoToPage(10), "out of range is rejected, not clamped")
	assert.False(t, tbl.GoToPage(0), "current page is not a change")
	assert.Equal(t, []int{1, 9}, rec.pages)

	tbl.SetJumpInput("4")
	assert.True(t, tbl.SubmitJump())
	tbl.SetJumpInput("abc")
	assert.False(t, tbl.SubmitJump())
	assert.Equal(t, []int{1, 9, 3}, rec.pages)
}

func TestPagination_PageSizeChangeResetsPage(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	tbl := newTable(t, grid.DefaultConfig(), nil, rec.options()...)
	renderPage(t, tbl, payments("a", 10), 95, 10, 3)
	require.True(t, tbl.ToggleRow("a-1"))

	assert.False(t, tbl.SetPageSize(10), "unchanged size")
	assert.False(t, tbl.SetPageSize(25), "not an option")
	require.True(t, tbl.SetPageSize(20))

	assert.Equal(t, []int{20}, rec.sizes)
	assert.Equal(t, []int{0}, rec.pages)
	assert.Empty(t, tbl.SelectedIDs())

	require.True(t, tbl.StepPageSize(1))
	assert.Equal(t, []int{20, 20}, rec.sizes, "steps from the rendered size until new data arrives")
}

func TestPagination_InertWhileLoading(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	tbl := newTable(t, grid.DefaultConfig(), nil, rec.options()...)
	renderPage(t, tbl, payments("a", 10), 95, 10, 0)

	v := tbl.Render(grid.Input[payment]{Status: grid.Status{IsLoading: true}})
	assert.False(t, v.Pagination.Controls.Next)
	assert.Nil(t, v.Pagination.Tokens)
	assert.False(t, tbl.NextPage())
	assert.False(t, tbl.SetPageSize(20))
	assert.Empty(t, rec.pages)
}

func TestPagination_Disabled(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfig()
	cfg.EnablePagination = false
	rec := newRecorder()
	tbl := newTable(t, cfg, nil, rec.options()...)
	v := renderPage(t, tbl, payments("a", 10), 95, 10, 0)

	assert.False(t, v.Pagination.Enabled)
	assert.False(t, tbl.NextPage())
	assert.Empty(t, rec.pages)
}

func TestSearch_Debounced(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfig()
	cfg.SearchDebounce = 40 * time.Millisecond
	rec := newRecorder()
	tbl := newTable(t, cfg, nil, rec.options()...)

	assert.True(t, tbl.SetSearch("a"))
	assert.True(t, tbl.SetSearch("ab"))
	assert.True(t, tbl.SetSearch("abc"))
	assert.Equal(t, "abc", tbl.SearchInput())
	assert.Empty(t, tbl.AppliedSearch(), "nothing applied on the leading edge")

	select {
	case q := <-rec.searches:
		assert.Equal(t, "abc", q)
	case <-time.After(2 * time.Second):
		t.Fatal("search was never applied")
	}
	assert.Equal(t, "abc", tbl.AppliedSearch())

	select {
	case q := <-rec.searches:
		t.Fatalf("unexpected extra search %q", q)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestSearch_RevertCancelsPending(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfig()
	cfg.SearchDebounce = time.Hour
	rec := newRecorder()
	tbl := newTable(t, cfg, nil, rec.options()...)

	tbl.SetSearch("x")
	assert.True(t, tbl.SearchPending())
	tbl.SetSearch("")
	assert.False(t, tbl.SearchPending())

	tbl.SetSearch("visa")
	assert.True(t, tbl.FlushSearch())
	assert.Equal(t, "visa", <-rec.searches)
	assert.Equal(t, "visa", tbl.AppliedSearch())
}

func TestSearch_Disabled(t *testing.T) {
	t.Parallel()

	cfg := grid.DefaultConfig()
	cfg.EnableFiltering = false
	tbl := newTable(t, cfg, nil)
	assert.False(t, tbl.SetSearch("x"))
	assert.Empty(t, tbl.SearchInput())
}

func TestColumnVisibility(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, grid.DefaultConfig(), nil)

	assert.False(t, tbl.ToggleColumn("ref"), "ref is not hideable")
	require.True(t, tbl.ToggleColumn("amount"))
	assert.False(t, tbl.IsColumnVisible("amount"))

	v := renderPage(t, tbl, payments("a", 1), 1, 10, 0)
	require.Len(t, v.Columns, 2)
	assert.Equal(t, "status", v.Columns[1].ColumnID)
	require.Len(t, v.Rows[0].Cells, 2)

	require.True(t, tbl.ToggleColumn("amount"))
	assert.True(t, tbl.IsColumnVisible("amount"))
	assert.False(t, tbl.ToggleColumn("missing"))
}

func TestColumnVisibility_KeepsOneColumn(t *testing.T) {
	t.Parallel()

	cols := []grid.Column[payment]{{ID: "ref", Value: func(p payment) any { return p.Ref }, EnableHiding: true}}
	tbl, err := grid.New(grid.DefaultConfig(), cols, nil, paymentID)
	require.NoError(t, err)
	t.Cleanup(tbl.Close)

	assert.False(t, tbl.ToggleColumn("ref"))
}

func pagerDescriptor(size int) (pager.Descriptor, error) {
	return pager.NewDescriptor(size, 50, 0)
}
