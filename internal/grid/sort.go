package grid

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/fvbommel/sortorder"
	"github.com/shopspring/decimal"
)

// SortDirection is the direction of the active sort.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// Next advances the cycle none -> asc -> desc -> none.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortNone:
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return SortNone
	}
}

func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// Indicator returns the header glyph for the direction.
func (d SortDirection) Indicator() string {
	switch d {
	case SortAsc:
		return "▲"
	case SortDesc:
		return "▼"
	default:
		return ""
	}
}

// SortState is the single active sort. The zero value means unsorted.
type SortState struct {
	ColumnID  string
	Key       string
	Direction SortDirection
}

func (s SortState) Active() bool { return s.Direction != SortNone && s.ColumnID != "" }

func (s SortState) Desc() bool { return s.Direction == SortDesc }

// CompareValues orders two raw column values. Strings compare naturally, so
// "TXN-9" sorts before "TXN-10". Nil sorts first.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	switch av := a.(type) {
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmp.Compare(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}
	return compareNatural(FormatValue(a), FormatValue(b))
}

func compareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case sortorder.NaturalLess(a, b):
		return -1
	default:
		return 1
	}
}

// SortRows returns a stably sorted copy of rows by col. SortNone returns an
// unsorted copy.
func SortRows[R any](rows []R, col Column[R], dir SortDirection) []R {
	out := slices.Clone(rows)
	if dir == SortNone || col.Value == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		c := CompareValues(col.Value(a), col.Value(b))
		if dir == SortDesc {
			return -c
		}
		return c
	})
	return out
}

// ParseDirection parses "asc", "desc" or "" (none).
func ParseDirection(s string) (SortDirection, error) {
	switch s {
	case "", "none":
		return SortNone, nil
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	default:
		return SortNone, fmt.Errorf("invalid sort direction %q: must be asc or desc", s)
	}
}
