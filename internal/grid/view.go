package grid

import "github.com/paydesk/paydesk/internal/pager"

// ViewKind is the single state a table renders in.
type ViewKind int

const (
	ViewData ViewKind = iota
	ViewLoading
	ViewError
	ViewEmpty
)

func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewEmpty:
		return "empty"
	default:
		return "data"
	}
}

// Status carries the data owner's loading and error flags.
type Status struct {
	IsLoading bool
	IsError   bool
	Err       error
	// IsEmpty forces the empty state. It is also derived when no rows are
	// supplied.
	IsEmpty bool
}

// Kind resolves the status with precedence loading > error > empty > data.
func (s Status) Kind(rowCount int) ViewKind {
	switch {
	case s.IsLoading:
		return ViewLoading
	case s.IsError || s.Err != nil:
		return ViewError
	case s.IsEmpty || rowCount == 0:
		return ViewEmpty
	default:
		return ViewData
	}
}

// Input is everything the data owner supplies for one render.
type Input[R any] struct {
	Rows       []R
	Pagination pager.Descriptor
	Status     Status
}

// HeaderCell is the rendered state of one visible column header.
type HeaderCell struct {
	ColumnID string
	Title    string
	Width    int
	Sortable bool
	Hideable bool
	Sort     SortDirection
}

// RowView is one rendered row.
type RowView[R any] struct {
	ID       string
	Row      R
	Selected bool
	Cells    []Cell
}

// PaginationView is the rendered pagination bar.
type PaginationView struct {
	Enabled         bool
	Descriptor      pager.Descriptor
	Tokens          []pager.Token
	Controls        pager.Controls
	Summary         string
	PageSize        int
	PageSizeOptions []int
	JumpInput       string
	JumpValid       bool
}

// View is the complete render output of a table.
type View[R any] struct {
	Kind             ViewKind
	Err              error
	EmptyMessage     string
	EmptyDescription string
	StickyHeader     bool

	Columns        []HeaderCell
	Rows           []RowView[R]
	Selectable     bool
	HeaderCheckbox CheckState
	SelectedCount  int

	Actions       []ActionState
	Sort          SortState
	Search        string
	AppliedSearch string
	Pagination    PaginationView
}

// Interactive reports whether rows, selection and actions accept input.
func (v View[R]) Interactive() bool {
	return v.Kind == ViewData
}
