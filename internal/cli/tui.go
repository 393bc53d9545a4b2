package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/internal/portal"
	"github.com/paydesk/paydesk/internal/session"
	"github.com/paydesk/paydesk/internal/tui"
)

// ErrNotTerminal is returned when the interactive UI is started without a
// terminal on stdout.
var ErrNotTerminal = errors.New("tui requires an interactive terminal; use 'paydesk list' instead")

// NewTUICmd creates the tui command, which opens the interactive portal.
func NewTUICmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive portal",
		Long: `Opens the portal of the signed-in role. --role overrides the stored role,
and works without signing in.`,
		Example: `  paydesk tui
  paydesk tui --role partner-bank`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			cfg := configFrom(cmd)
			sess, err := resolveSession(sessionStore(cfg), role)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cat, err := loadCatalog(ctx, cfg, true)
			if err != nil {
				return err
			}
			model, err := tui.NewPortalModel(ctx, sess, cat, portal.NewExporter(cfg.Export.Dir), cfg.Table.GridConfig())
			if err != nil {
				return err
			}
			defer model.Close()

			logger.Info().Ctx(ctx).Str("portal", describeSession(sess)).Msg("starting tui")
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err = p.Run(); err != nil {
				return fmt.Errorf("running tui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "portal role, overriding the signed-in one")
	return cmd
}

// resolveSession loads the stored session, with the role replaced by
// roleFlag when set. Without a stored session roleFlag yields a guest.
func resolveSession(store *session.Store, roleFlag string) (*session.Session, error) {
	sess, err := store.Load()
	if err != nil && !errors.Is(err, session.ErrNoSession) {
		return nil, err
	}
	if roleFlag == "" {
		if err != nil {
			return nil, fmt.Errorf("%w (or pass --role)", err)
		}
		return sess, nil
	}
	role, err := portal.ParseRole(roleFlag)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return guestSession(role, uuid.NewString()), nil
	}
	override := *sess
	override.Role = role
	return &override, nil
}
