package grid

import "sort"

// CheckState is the state of a tri-state checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	Indeterminate
)

func (s CheckState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// Selection is a set of row ids.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Add(id string) { s.ids[id] = struct{}{} }

func (s *Selection) Remove(id string) { delete(s.ids, id) }

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Clear() { clear(s.ids) }

// IDs returns the selected ids in lexical order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// State derives the header checkbox state for the given page ids.
func (s *Selection) State(pageIDs []string) CheckState {
	if len(pageIDs) == 0 {
		return Unchecked
	}
	n := 0
	for _, id := range pageIDs {
		if s.Has(id) {
			n++
		}
	}
	switch n {
	case 0:
		return Unchecked
	case len(pageIDs):
		return Checked
	default:
		return Indeterminate
	}
}
