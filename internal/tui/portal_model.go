package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paydesk/paydesk/internal/grid"
	"github.com/paydesk/paydesk/internal/portal"
	"github.com/paydesk/paydesk/internal/session"
)

// closableModel is a table model of any row type.
type closableModel interface {
	tea.Model
	Close()
}

// PortalModel frames the table of the signed-in role's portal.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type PortalModel struct {
	sess  *session.Session
	inner closableModel
	width int
}

// NewPortalModel picks the portal for the session's role and builds its
// table over the matching catalog source.
func NewPortalModel(
	ctx context.Context,
	sess *session.Session,
	cat *portal.Catalog,
	exp *portal.Exporter,
	cfg grid.Config,
) (PortalModel, error) {
	ctx = session.WithSession(ctx, sess)

	var (
		inner closableModel
		err   error
	)
	switch sess.Role.Entity() {
	case portal.EntityTerminals:
		inner, err = NewTableModel(ctx, portal.Terminals(cat.TerminalFetcher(), exp), cfg)
	case portal.EntitySettlements:
		inner, err = NewTableModel(ctx, portal.Settlements(cat.SettlementFetcher(), exp), cfg)
	case portal.EntityTransactions:
		inner, err = NewTableModel(ctx, portal.Transactions(sess.Role, cat.TransactionFetcher(), exp), cfg)
	}
	if err != nil {
		return PortalModel{}, err
	}
	if inner == nil {
		return PortalModel{}, fmt.Errorf("%w: %q", portal.ErrUnknownRole, sess.Role)
	}
	return PortalModel{sess: sess, inner: inner, width: defaultWidth}, nil
}

// Init initializes the model (Bubble Tea interface).
func (m PortalModel) Init() tea.Cmd {
	return m.inner.Init()
}

// Close releases the table.
func (m PortalModel) Close() {
	m.inner.Close()
}

// Update delegates to the table (Bubble Tea interface).
func (m PortalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		// The header takes two lines.
		msg = tea.WindowSizeMsg{Width: size.Width, Height: max(size.Height-2, 0)}
	}
	next, cmd := m.inner.Update(msg)
	if inner, ok := next.(closableModel); ok {
		m.inner = inner
	}
	return m, cmd
}

// View renders the header above the table (Bubble Tea interface).
func (m PortalModel) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		TitleStyle.Render(m.sess.Role.Title()),
		"  ",
		MutedStyle.Render(fmt.Sprintf("signed in as %s · session %s", m.sess.User, shortID(m.sess.ID))),
	)
	return header + "\n\n" + m.inner.View()
}

func shortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}
	return id[:n]
}
