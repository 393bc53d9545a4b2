package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/internal/config"
	"github.com/paydesk/paydesk/internal/logging"
	"github.com/paydesk/paydesk/internal/portal"
	"github.com/paydesk/paydesk/internal/session"
)

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration loaded by the root command, or the
// defaults when the command runs detached from it.
func configFrom(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

func sessionStore(cfg *config.Config) *session.Store {
	return session.NewStore(cfg.Session.File)
}

// loadCatalog generates the demo sources. Latency and the page cache only
// apply to interactive use.
func loadCatalog(ctx context.Context, cfg *config.Config, interactive bool) (*portal.Catalog, error) {
	opts := portal.LoadOptions{
		Seed:         cfg.Demo.Seed,
		Transactions: cfg.Demo.Transactions,
		Terminals:    cfg.Demo.Terminals,
		Settlements:  cfg.Demo.Settlements,
		FailTerm:     cfg.Demo.FailTerm,
		Logger:       logging.ComponentLogger(*logging.FromContext(ctx), "dataset"),
	}
	if interactive {
		opts.Latency = cfg.Demo.Latency
		opts.CacheTTL = cfg.Demo.CacheTTL
	}
	return portal.Load(ctx, opts)
}

// resolveRole returns the role named by flag, falling back to the role of
// the signed-in session.
func resolveRole(cfg *config.Config, flag string) (portal.Role, error) {
	if flag != "" {
		return portal.ParseRole(flag)
	}
	sess, err := sessionStore(cfg).Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return "", fmt.Errorf("%w (or pass --role)", err)
		}
		return "", err
	}
	return sess.Role, nil
}
