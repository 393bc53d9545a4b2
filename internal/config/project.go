package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/paydesk/paydesk/internal/logging"
)

// ErrNoProject is returned by FindProject when no project directory exists
// between start and the filesystem root.
var ErrNoProject = errors.New("no .paydesk project directory found")

// ResolveProjectDir determines the project-local .paydesk directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. PAYDESK_PROJECT_DIR env var
//  3. FindProject(startDir) walk-up
//
// Returns an absolute path or "" when no project is found. It never creates
// the directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	projectDir, err := FindProject(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logging.FromContext(ctx).Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}
	return projectDir
}

// FindProject walks up from start looking for a .paydesk directory. The
// global config directory is never treated as a project.
func FindProject(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	global, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, configDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != global {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProject
		}
		dir = parent
	}
}

// toAbsProjectDir converts dir to an absolute path and appends ".paydesk"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}
	return filepath.Join(abs, configDirName)
}
