package grid

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/paydesk/paydesk/internal/debounce"
	"github.com/paydesk/paydesk/internal/pager"
)

// Option configures a Table.
type Option[R any] func(*Table[R])

// WithLogger sets the logger used for gesture diagnostics.
func WithLogger[R any](l zerolog.Logger) Option[R] {
	return func(t *Table[R]) { t.logger = l }
}

// OnSearch is called with the debounced search text. It runs on the
// debounce timer goroutine unless FlushSearch triggers it.
func OnSearch[R any](fn func(query string)) Option[R] {
	return func(t *Table[R]) { t.onSearch = fn }
}

// OnSortChange is called with the new sort state after every sort gesture.
func OnSortChange[R any](fn func(SortState)) Option[R] {
	return func(t *Table[R]) { t.onSortChange = fn }
}

// OnPageChange is called with the requested 0-based page.
func OnPageChange[R any](fn func(page int)) Option[R] {
	return func(t *Table[R]) { t.onPageChange = fn }
}

// OnPageSizeChange is called with the requested page size. A page size
// change is always followed by OnPageChange(0).
func OnPageSizeChange[R any](fn func(size int)) Option[R] {
	return func(t *Table[R]) { t.onPageSizeChange = fn }
}

// Table is the state machine behind one data table. The data owner pushes
// rows, pagination and status through Render; the table owns selection,
// sort, search text, column visibility and action gating, and reports
// gestures back through callbacks.
//
// A Table is driven from a single goroutine. Only the applied search text
// is shared with the debounce timer.
type Table[R any] struct {
	cfg      Config
	columns  []Column[R]
	colIndex map[string]int
	hidden   map[string]bool
	actions  []Action[R]
	rowID    func(R) string

	rows      []R
	rowIDs    []string
	kind      ViewKind
	err       error
	selection *Selection
	// retained holds selected rows from earlier pages when PersistSelection
	// is set.
	retained map[string]R
	sort     SortState
	pager    *pager.Pager

	searchInput   string
	search        *debounce.Debouncer[string]
	mu            sync.Mutex
	appliedSearch string

	onSearch         func(string)
	onSortChange     func(SortState)
	onPageChange     func(int)
	onPageSizeChange func(int)
	logger           zerolog.Logger
}

// New validates the definition and returns a table in the loading state.
// A malformed definition yields a *ConfigError.
func New[R any](cfg Config, columns []Column[R], actions []Action[R], rowID func(R) string, opts ...Option[R]) (*Table[R], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rowID == nil {
		return nil, configErrorf("rowID", "is required")
	}
	colIndex, err := indexColumns(columns)
	if err != nil {
		return nil, err
	}
	if err := validateActions(actions); err != nil {
		return nil, err
	}

	t := &Table[R]{
		cfg:       cfg,
		columns:   slices.Clone(columns),
		colIndex:  colIndex,
		hidden:    make(map[string]bool),
		actions:   slices.Clone(actions),
		rowID:     rowID,
		kind:      ViewLoading,
		selection: NewSelection(),
		retained:  make(map[string]R),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	maxVisible := cfg.MaxVisiblePages
	if maxVisible == 0 {
		maxVisible = pager.DefaultMaxVisiblePages
	}
	t.pager = pager.New(pager.Empty(cfg.PageSize),
		pager.WithPageSizeOptions(cfg.PageSizeOptions...),
		pager.WithMaxVisiblePages(maxVisible),
		pager.WithLogger(t.logger),
		pager.OnPageChange(t.pageChanged),
		pager.OnItemsPerPageChange(t.pageSizeChanged),
	)
	t.search = debounce.New(cfg.SearchDebounce, t.applySearch)
	return t, nil
}

func indexColumns[R any](columns []Column[R]) (map[string]int, error) {
	if len(columns) == 0 {
		return nil, configErrorf("columns", "at least one column is required")
	}
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		field := fmt.Sprintf("columns[%d]", i)
		if strings.TrimSpace(col.ID) == "" {
			return nil, configErrorf(field+".ID", "must not be empty")
		}
		if _, dup := index[col.ID]; dup {
			return nil, configErrorf(field+".ID", "duplicate column id %q", col.ID)
		}
		if col.Cell == nil && col.Value == nil {
			return nil, configErrorf(field+".Cell", "column %q needs a Cell renderer or a Value accessor", col.ID)
		}
		if col.Width < 0 {
			return nil, configErrorf(field+".Width", "must not be negative, got %d", col.Width)
		}
		index[col.ID] = i
	}
	return index, nil
}

func validateActions[R any](actions []Action[R]) error {
	seen := make(map[string]bool, len(actions))
	for i, a := range actions {
		field := fmt.Sprintf("actions[%d]", i)
		if strings.TrimSpace(a.Label) == "" {
			return configErrorf(field+".Label", "must not be empty")
		}
		if seen[a.Label] {
			return configErrorf(field+".Label", "duplicate action label %q", a.Label)
		}
		if a.Handler == nil {
			return configErrorf(field+".Handler", "action %q has no handler", a.Label)
		}
		seen[a.Label] = true
	}
	return nil
}

// Config returns the table configuration.
func (t *Table[R]) Config() Config { return t.cfg }

// Columns returns all column definitions, including hidden ones.
func (t *Table[R]) Columns() []Column[R] { return slices.Clone(t.columns) }

// Column returns the column with id.
func (t *Table[R]) Column(id string) (Column[R], bool) {
	i, ok := t.colIndex[id]
	if !ok {
		return Column[R]{}, false
	}
	return t.columns[i], true
}

// Pager exposes the pagination controller.
func (t *Table[R]) Pager() *pager.Pager { return t.pager }

// Kind returns the state of the last render.
func (t *Table[R]) Kind() ViewKind { return t.kind }

func (t *Table[R]) interactive() bool { return t.kind == ViewData }

// Render accepts the data owner's input and returns the resulting view.
// Rows and pagination are only adopted in the data and empty states; while
// loading or failed the previous rows and selection are kept but inert.
func (t *Table[R]) Render(in Input[R]) View[R] {
	kind := in.Status.Kind(len(in.Rows))
	t.err = nil
	switch kind {
	case ViewLoading:
	case ViewError:
		t.err = in.Status.Err
		if t.err == nil {
			t.err = errLoadFailed
		}
	case ViewData, ViewEmpty:
		desc, err := t.normalizeDescriptor(in.Pagination, len(in.Rows))
		if err != nil {
			t.logger.Warn().Err(err).Msg("rejecting inconsistent pagination")
			kind, t.err = ViewError, err
			break
		}
		if kind == ViewEmpty {
			t.adoptRows(nil)
		} else {
			t.adoptRows(in.Rows)
		}
		t.pager.SetDescriptor(desc)
	}
	if kind != t.kind {
		t.logger.Debug().Stringer("from", t.kind).Stringer("to", kind).Msg("table state changed")
	}
	t.kind = kind
	return t.View()
}

var errLoadFailed = constError("failed to load data")

func (t *Table[R]) normalizeDescriptor(d pager.Descriptor, rowCount int) (pager.Descriptor, error) {
	if d == (pager.Descriptor{}) {
		size := max(rowCount, t.cfg.PageSize)
		return pager.NewDescriptor(rowCount, size, 0)
	}
	if err := d.Validate(); err != nil {
		return pager.Descriptor{}, fmt.Errorf("pagination descriptor: %w", err)
	}
	return d, nil
}

// adoptRows installs a new page of rows. The selection is dropped when the
// set of row ids changes, unless PersistSelection is set.
func (t *Table[R]) adoptRows(rows []R) {
	ids := make([]string, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, r := range rows {
		ids[i] = t.rowID(r)
		if seen[ids[i]] {
			t.logger.Warn().Str("row_id", ids[i]).Msg("duplicate row id")
		}
		seen[ids[i]] = true
	}
	if t.cfg.PersistSelection {
		for i, id := range t.rowIDs {
			if t.selection.Has(id) {
				t.retained[id] = t.rows[i]
			}
		}
	} else if !sameIDSet(t.rowIDs, ids) && t.selection.Len() > 0 {
		t.logger.Debug().Int("dropped", t.selection.Len()).Msg("row set changed, clearing selection")
		t.selection.Clear()
	}
	t.rows = slices.Clone(rows)
	t.rowIDs = ids
	for id := range t.retained {
		if seen[id] || !t.selection.Has(id) {
			delete(t.retained, id)
		}
	}
}

func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := slices.Clone(a), slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(as, bs)
}

// View renders the current state without new input.
func (t *Table[R]) View() View[R] {
	v := View[R]{
		Kind:             t.kind,
		Err:              t.err,
		EmptyMessage:     t.cfg.EmptyMessage,
		EmptyDescription: t.cfg.EmptyDescription,
		StickyHeader:     t.cfg.StickyHeader,
		Selectable:       t.cfg.EnableRowSelection,
		Sort:             t.sort,
		Search:           t.searchInput,
		AppliedSearch:    t.AppliedSearch(),
		Actions:          t.ActionStates(),
		SelectedCount:    t.selection.Len(),
	}
	if v.EmptyMessage == "" {
		v.EmptyMessage = DefaultEmptyMessage
	}
	for _, col := range t.VisibleColumns() {
		h := HeaderCell{
			ColumnID: col.ID,
			Title:    col.Title(),
			Width:    col.Width,
			Sortable: t.cfg.EnableSorting && col.EnableSorting,
			Hideable: t.cfg.EnableColumnVisibility && col.EnableHiding,
		}
		if t.sort.ColumnID == col.ID {
			h.Sort = t.sort.Direction
		}
		v.Columns = append(v.Columns, h)
	}
	if t.cfg.EnablePagination {
		desc := t.pager.Descriptor()
		_, jumpOK := t.pager.JumpTarget()
		v.Pagination = PaginationView{
			Enabled:         true,
			Descriptor:      desc,
			Tokens:          t.pager.Tokens(),
			Controls:        t.pager.Controls(),
			Summary:         desc.Summary(),
			PageSize:        desc.PageSize,
			PageSizeOptions: t.pager.PageSizeOptions(),
			JumpInput:       t.pager.JumpInput(),
			JumpValid:       jumpOK,
		}
		if !t.interactive() {
			v.Pagination.Controls = pager.Controls{}
			v.Pagination.Tokens = nil
		}
	}
	if !t.interactive() {
		return v
	}

	v.HeaderCheckbox = t.HeaderCheckbox()
	visible := t.VisibleColumns()
	v.Rows = make([]RowView[R], len(t.rows))
	for i, r := range t.rows {
		cells := make([]Cell, len(visible))
		for j, col := range visible {
			cells[j] = RenderCell(col, r)
		}
		v.Rows[i] = RowView[R]{ID: t.rowIDs[i], Row: r, Selected: t.selection.Has(t.rowIDs[i]), Cells: cells}
	}
	return v
}

// Rows returns the rows of the current page.
func (t *Table[R]) Rows() []R { return slices.Clone(t.rows) }

// ToggleRow flips the selection of the row with id on the current page.
func (t *Table[R]) ToggleRow(id string) bool {
	if !t.cfg.EnableRowSelection || !t.interactive() || !slices.Contains(t.rowIDs, id) {
		return false
	}
	t.selection.Toggle(id)
	return true
}

// ToggleAllOnPage selects or deselects every row on the current page. Rows
// on other pages are untouched.
func (t *Table[R]) ToggleAllOnPage(checked bool) bool {
	if !t.cfg.EnableRowSelection || !t.interactive() || len(t.rowIDs) == 0 {
		return false
	}
	for _, id := range t.rowIDs {
		if checked {
			t.selection.Add(id)
		} else {
			t.selection.Remove(id)
		}
	}
	return true
}

// ToggleHeader applies the header checkbox gesture: checked or
// indeterminate clears the page, unchecked selects it.
func (t *Table[R]) ToggleHeader() bool {
	return t.ToggleAllOnPage(t.HeaderCheckbox() == Unchecked)
}

// HeaderCheckbox derives the tri-state header checkbox from the current page.
func (t *Table[R]) HeaderCheckbox() CheckState {
	return t.selection.State(t.rowIDs)
}

// IsSelected reports whether id is selected.
func (t *Table[R]) IsSelected(id string) bool { return t.selection.Has(id) }

// SelectedIDs returns every selected id, including ids retained from other
// pages when PersistSelection is set.
func (t *Table[R]) SelectedIDs() []string { return t.selection.IDs() }

// SelectedRows returns the selected rows of the current page in page order.
func (t *Table[R]) SelectedRows() []R {
	out := make([]R, 0, t.selection.Len())
	for i, id := range t.rowIDs {
		if t.selection.Has(id) {
			out = append(out, t.rows[i])
		}
	}
	return out
}

// AllSelectedRows returns the selected rows of the current page in page
// order, followed by selected rows kept from other pages in id order. The
// latter only exist when PersistSelection is set.
func (t *Table[R]) AllSelectedRows() []R {
	out := t.SelectedRows()
	ids := make([]string, 0, len(t.retained))
	for id := range t.retained {
		if t.selection.Has(id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, t.retained[id])
	}
	return out
}

// ClearSelection empties the selection.
func (t *Table[R]) ClearSelection() {
	t.selection.Clear()
	clear(t.retained)
}

// ActionStates evaluates every action against the whole selection.
func (t *Table[R]) ActionStates() []ActionState {
	selected := t.AllSelectedRows()
	out := make([]ActionState, len(t.actions))
	for i, a := range t.actions {
		out[i] = ActionState{
			Label:             a.Label,
			Icon:              a.Icon,
			Variant:           a.Variant,
			RequiresSelection: a.RequiresSelection,
			Enabled:           t.interactive() && a.enabled(t.selection.Len(), selected),
		}
	}
	return out
}

func (t *Table[R]) action(label string) (Action[R], error) {
	for _, a := range t.actions {
		if a.Label == label {
			return a, nil
		}
	}
	return Action[R]{}, fmt.Errorf("%w: %q", ErrUnknownAction, label)
}

// ActionEnabled reports whether the action with label may be invoked now.
func (t *Table[R]) ActionEnabled(label string) (bool, error) {
	a, err := t.action(label)
	if err != nil {
		return false, err
	}
	return t.interactive() && a.enabled(t.selection.Len(), t.AllSelectedRows()), nil
}

// Bind snapshots the selected rows, including rows kept from other pages,
// for the action with label. The returned invocation is disabled when the
// action is not enabled.
func (t *Table[R]) Bind(label string) (Invocation, error) {
	a, err := t.action(label)
	if err != nil {
		return Invocation{}, err
	}
	selected := t.AllSelectedRows()
	inv := Invocation{Label: a.Label, Count: len(selected)}
	if !t.interactive() || !a.enabled(t.selection.Len(), selected) {
		t.logger.Debug().Str("action", label).Int("selected", len(selected)).Msg("action not enabled")
		return inv, nil
	}
	inv.Enabled = true
	inv.run = func(ctx context.Context) error {
		return a.Handler(ctx, selected)
	}
	return inv, nil
}

// Invoke binds and runs the action with label. It reports whether the
// handler ran.
func (t *Table[R]) Invoke(ctx context.Context, label string) (bool, error) {
	inv, err := t.Bind(label)
	if err != nil || !inv.Enabled {
		return false, err
	}
	return true, inv.Run(ctx)
}

// Sort returns the active sort.
func (t *Table[R]) Sort() SortState { return t.sort }

// ToggleSort advances the sort cycle of column id. Selecting a different
// column starts it at ascending and drops the previous column's sort.
func (t *Table[R]) ToggleSort(id string) error {
	col, err := t.sortableColumn(id)
	if err != nil {
		return err
	}
	dir := SortAsc
	if t.sort.ColumnID == id {
		dir = t.sort.Direction.Next()
	}
	t.setSort(col, dir)
	return nil
}

// SetSort sets the sort of column id directly.
func (t *Table[R]) SetSort(id string, dir SortDirection) error {
	col, err := t.sortableColumn(id)
	if err != nil {
		return err
	}
	t.setSort(col, dir)
	return nil
}

func (t *Table[R]) sortableColumn(id string) (Column[R], error) {
	if !t.cfg.EnableSorting {
		return Column[R]{}, ErrSortingDisabled
	}
	col, ok := t.Column(id)
	if !ok {
		return Column[R]{}, fmt.Errorf("%w: %q", ErrUnknownColumn, id)
	}
	if !col.EnableSorting {
		return Column[R]{}, fmt.Errorf("%w: %q", ErrNotSortable, id)
	}
	return col, nil
}

func (t *Table[R]) setSort(col Column[R], dir SortDirection) {
	if dir == SortNone {
		t.sort = SortState{}
	} else {
		t.sort = SortState{ColumnID: col.ID, Key: col.SortKey(), Direction: dir}
	}
	t.logger.Debug().Str("column", col.ID).Stringer("direction", dir).Msg("sort changed")
	if t.onSortChange != nil {
		t.onSortChange(t.sort)
	}
}

// SetSearch records the search box text and schedules its application.
// Text equal to the applied search cancels any pending application.
func (t *Table[R]) SetSearch(s string) bool {
	if !t.cfg.EnableFiltering {
		return false
	}
	t.searchInput = s
	if s == t.AppliedSearch() {
		t.search.Cancel()
		return true
	}
	t.search.Trigger(s)
	return true
}

// SearchInput returns the raw search box text.
func (t *Table[R]) SearchInput() string { return t.searchInput }

// AppliedSearch returns the last search text delivered to OnSearch.
func (t *Table[R]) AppliedSearch() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appliedSearch
}

// SearchPending reports whether a search application is scheduled.
func (t *Table[R]) SearchPending() bool { return t.search.Pending() }

// FlushSearch applies a pending search immediately.
func (t *Table[R]) FlushSearch() bool { return t.search.Flush() }

func (t *Table[R]) applySearch(s string) {
	t.mu.Lock()
	t.appliedSearch = s
	cb := t.onSearch
	t.mu.Unlock()
	t.logger.Debug().Str("query", s).Msg("search applied")
	if cb != nil {
		cb(s)
	}
}

// NextPage, PreviousPage, FirstPage, LastPage and GoToPage request a page
// change through OnPageChange. They are inert outside the data state.
func (t *Table[R]) NextPage() bool { return t.paging() && t.pager.Next() }

func (t *Table[R]) PreviousPage() bool { return t.paging() && t.pager.Previous() }

func (t *Table[R]) FirstPage() bool { return t.paging() && t.pager.First() }

func (t *Table[R]) LastPage() bool { return t.paging() && t.pager.Last() }

// GoToPage requests the 0-based page.
func (t *Table[R]) GoToPage(page int) bool { return t.paging() && t.pager.GoTo(page) }

// SetJumpInput stores the go-to-page field text.
func (t *Table[R]) SetJumpInput(s string) { t.pager.SetJumpInput(s) }

// SubmitJump requests the page typed into the go-to-page field.
func (t *Table[R]) SubmitJump() bool { return t.paging() && t.pager.SubmitJump() }

// SetPageSize requests a new page size.
func (t *Table[R]) SetPageSize(size int) bool { return t.paging() && t.pager.SetPageSize(size) }

// StepPageSize moves to the adjacent page size option.
func (t *Table[R]) StepPageSize(delta int) bool { return t.paging() && t.pager.StepPageSize(delta) }

func (t *Table[R]) paging() bool {
	return t.cfg.EnablePagination && t.interactive()
}

func (t *Table[R]) pageChanged(page int) {
	if t.onPageChange != nil {
		t.onPageChange(page)
	}
}

func (t *Table[R]) pageSizeChanged(size int) {
	if t.onPageSizeChange != nil {
		t.onPageSizeChange(size)
	}
	if !t.cfg.PersistSelection {
		t.selection.Clear()
	}
	t.pageChanged(0)
}

// ToggleColumn flips the visibility of column id. The last visible column
// cannot be hidden.
func (t *Table[R]) ToggleColumn(id string) bool {
	col, ok := t.Column(id)
	if !ok || !t.cfg.EnableColumnVisibility || !col.EnableHiding {
		return false
	}
	if !t.hidden[id] && len(t.VisibleColumns()) == 1 {
		return false
	}
	t.hidden[id] = !t.hidden[id]
	return true
}

// IsColumnVisible reports whether column id is shown.
func (t *Table[R]) IsColumnVisible(id string) bool {
	_, ok := t.colIndex[id]
	return ok && !t.hidden[id]
}

// VisibleColumns returns the shown columns in definition order.
func (t *Table[R]) VisibleColumns() []Column[R] {
	out := make([]Column[R], 0, len(t.columns))
	for _, col := range t.columns {
		if !t.hidden[col.ID] {
			out = append(out, col)
		}
	}
	return out
}

// Close releases the search debouncer. Pending searches are dropped.
func (t *Table[R]) Close() { t.search.Close() }
