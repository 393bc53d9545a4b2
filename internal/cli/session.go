package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/internal/portal"
	"github.com/paydesk/paydesk/internal/session"
)

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	var user, role string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a role portal",
		Example: `  paydesk login --user ada --role admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := portal.ParseRole(role)
			if err != nil {
				return err
			}
			sess, err := sessionStore(configFrom(cmd)).Login(user, r)
			if err != nil {
				return err
			}
			logger.Info().Ctx(cmd.Context()).Str("user", sess.User).Str("role", string(sess.Role)).Msg("signed in")
			cmd.Printf("Signed in as %s (%s)\n", sess.User, sess.Role.Title())
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user name")
	cmd.Flags().StringVar(&role, "role", "", "portal role (admin, merchant, partner-bank, sub-merchant)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := sessionStore(configFrom(cmd)).Logout()
			if err != nil {
				return err
			}
			if !removed {
				cmd.Println("Not signed in")
				return nil
			}
			cmd.Println("Signed out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user and portal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := parseOutputFormat(output, outputTable, outputJSON)
			if err != nil {
				return err
			}
			sess, err := sessionStore(configFrom(cmd)).Load()
			if errors.Is(err, session.ErrNoSession) {
				cmd.Println("Not signed in")
				return nil
			}
			if err != nil {
				return err
			}
			if out == outputJSON {
				return writeJSON(cmd.OutOrStdout(), sess)
			}
			cmd.Printf("User:    %s\n", sess.User)
			cmd.Printf("Portal:  %s (%s)\n", sess.Role.Title(), sess.Role.Entity())
			cmd.Printf("Since:   %s\n", sess.IssuedAt.Local().Format(time.RFC3339))
			cmd.Printf("Session: %s\n", sess.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", string(outputTable), "output format: table or json")
	return cmd
}

// guestSession is used by the tui command when --role is given without a
// stored session.
func guestSession(role portal.Role, id string) *session.Session {
	return &session.Session{ID: id, User: "guest", Role: role, IssuedAt: time.Now()}
}

func describeSession(sess *session.Session) string {
	return fmt.Sprintf("%s as %s", sess.Role.Title(), sess.User)
}
