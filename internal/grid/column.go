package grid

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Align is the horizontal alignment hint of a cell.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// BadgeVariant names the visual style of a badge cell.
type BadgeVariant string

const (
	BadgeDefault BadgeVariant = "default"
	BadgeSuccess BadgeVariant = "success"
	BadgeWarning BadgeVariant = "warning"
	BadgeDanger  BadgeVariant = "danger"
	BadgeInfo    BadgeVariant = "info"
	BadgeMuted   BadgeVariant = "muted"
)

// CellKind tags the renderer that produced a Cell.
type CellKind int

const (
	CellText CellKind = iota
	CellBadge
	CellCustom
)

// Cell is the presentation-neutral output of a cell renderer. Front ends map
// it onto their own styling.
type Cell struct {
	Kind    CellKind
	Text    string
	Align   Align
	Variant BadgeVariant
	// Style is a free-form style key for custom cells.
	Style string
}

// CellRenderer is implemented by the closed set of cell descriptors:
// TextCell, BadgeCell and CustomCell.
type CellRenderer[R any] interface {
	Render(row R) Cell
	kind() CellKind
}

// TextCell renders a plain string.
type TextCell[R any] struct {
	Value func(R) string
	Align Align
}

func (c TextCell[R]) Render(row R) Cell {
	return Cell{Kind: CellText, Text: c.Value(row), Align: c.Align}
}

func (TextCell[R]) kind() CellKind { return CellText }

// BadgeCell renders a status-like value with a variant picked from Variants
// by the lower-cased value.
type BadgeCell[R any] struct {
	Value    func(R) string
	Variants map[string]BadgeVariant
	Fallback BadgeVariant
}

func (c BadgeCell[R]) Render(row R) Cell {
	text := c.Value(row)
	variant, ok := c.Variants[strings.ToLower(text)]
	if !ok {
		variant = c.Fallback
	}
	if variant == "" {
		variant = BadgeDefault
	}
	return Cell{Kind: CellBadge, Text: text, Align: AlignCenter, Variant: variant}
}

func (BadgeCell[R]) kind() CellKind { return CellBadge }

// CustomCell delegates to an arbitrary function. Its output is never truncated.
type CustomCell[R any] struct {
	Fn func(R) Cell
}

func (c CustomCell[R]) Render(row R) Cell {
	cell := c.Fn(row)
	cell.Kind = CellCustom
	return cell
}

func (CustomCell[R]) kind() CellKind { return CellCustom }

// Column describes one table column. Columns are data only; presentation is
// delegated to the Cell renderer.
type Column[R any] struct {
	// ID is the stable identifier, unique within a table.
	ID string
	// Header is the display title. Defaults to ID.
	Header string
	// Accessor is the data key handed to the data owner when sorting.
	// Defaults to ID.
	Accessor string
	// Value extracts the raw value compared by SortRows and rendered when
	// Cell is nil.
	Value func(R) any
	// Cell renders the column. Optional when Value is set.
	Cell CellRenderer[R]

	EnableSorting bool
	EnableHiding  bool
	// Width is a fixed width hint in characters. Zero means auto.
	Width int
}

// Title returns the header text.
func (c Column[R]) Title() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// SortKey returns the key forwarded to the data owner for this column.
func (c Column[R]) SortKey() string {
	if c.Accessor != "" {
		return c.Accessor
	}
	return c.ID
}

// RenderCell renders row for col. Text and badge output is truncated to the
// column width; custom output is passed through untouched.
func RenderCell[R any](col Column[R], row R) Cell {
	var cell Cell
	switch r := col.Cell.(type) {
	case nil:
		cell = Cell{Kind: CellText, Text: FormatValue(col.Value(row))}
	case TextCell[R]:
		cell = r.Render(row)
	case BadgeCell[R]:
		cell = r.Render(row)
	case CustomCell[R]:
		return r.Render(row)
	default:
		cell = r.Render(row)
		if cell.Kind == CellCustom {
			return cell
		}
	}
	if col.Width > 0 {
		cell.Text = Truncate(cell.Text, col.Width)
	}
	return cell
}

// FormatValue turns a raw column value into display text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case decimal.Decimal:
		return x.StringFixed(2) //nolint:mnd // Monetary precision.
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format("2006-01-02 15:04")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Truncate shortens s to width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
