package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the top-level state of an interactive model.
type ViewState int

const (
	ViewStateList ViewState = iota
	ViewStateSearch
	ViewStateJump
	ViewStateColumns
	ViewStateQuitting
)

func (s ViewState) String() string {
	switch s {
	case ViewStateSearch:
		return "search"
	case ViewStateJump:
		return "jump"
	case ViewStateColumns:
		return "columns"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "list"
	}
}

// LoadingState wraps a spinner and the message shown beside it.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a loading state with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Loading..."}
}

// WithMessage replaces the message shown beside the spinner.
func (l *LoadingState) WithMessage(msg string) *LoadingState {
	l.message = msg
	return l
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading returns the string to display for a loading screen.
// If loading is nil, it returns the plain text "Loading...".
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return "Loading..."
	}
	return fmt.Sprintf("\n %s %s\n\n", loading.spinner.View(), loading.message)
}
