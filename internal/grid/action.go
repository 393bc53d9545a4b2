package grid

import "context"

// ActionVariant is the visual weight of an action button.
type ActionVariant string

const (
	ActionDefault     ActionVariant = "default"
	ActionPrimary     ActionVariant = "primary"
	ActionDestructive ActionVariant = "destructive"
	ActionOutline     ActionVariant = "outline"
)

// Action is a named command over the current selection.
type Action[R any] struct {
	Label             string
	Icon              string
	Variant           ActionVariant
	RequiresSelection bool
	// Disabled, when set, is consulted with the selected rows on every
	// render. With PersistSelection these include rows kept from other
	// pages.
	Disabled func(selected []R) bool
	Handler  func(ctx context.Context, selected []R) error
}

func (a Action[R]) enabled(selectedCount int, selected []R) bool {
	if a.RequiresSelection && selectedCount == 0 {
		return false
	}
	if a.Disabled != nil && a.Disabled(selected) {
		return false
	}
	return true
}

// ActionState is the rendered state of an action.
type ActionState struct {
	Label             string
	Icon              string
	Variant           ActionVariant
	RequiresSelection bool
	Enabled           bool
}

// Invocation is an action bound to a snapshot of the selection. Binding and
// running are split so the handler can run off the UI goroutine.
type Invocation struct {
	Label   string
	Enabled bool
	Count   int
	run     func(ctx context.Context) error
}

// Run executes the handler. A disabled invocation is a no-op.
func (i Invocation) Run(ctx context.Context) error {
	if !i.Enabled || i.run == nil {
		return nil
	}
	return i.run(ctx)
}
