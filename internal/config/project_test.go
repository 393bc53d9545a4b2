package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paydesk/paydesk/internal/config"
)

func mkProject(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, ".paydesk")
	require.NoError(t, os.MkdirAll(p, 0755))
	return p
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")

	flagDir := t.TempDir()
	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".paydesk"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")
	assert.Equal(t, filepath.Join(flagDir, ".paydesk"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")
	assert.Equal(t, filepath.Join(envDir, ".paydesk"), got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvHome, t.TempDir())

	root := t.TempDir()
	want := mkProject(t, root)
	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)
	assert.Equal(t, want, got)
}

func TestResolveProjectDir_NearestWins(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvHome, t.TempDir())

	root := t.TempDir()
	mkProject(t, root)
	inner := filepath.Join(root, "a", "b")
	want := mkProject(t, inner)
	start := filepath.Join(inner, "c")
	require.NoError(t, os.MkdirAll(start, 0755))

	assert.Equal(t, want, config.ResolveProjectDir(context.Background(), "", start))
}

func TestResolveProjectDir_SkipsGlobalDir(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")

	root := t.TempDir()
	global := mkProject(t, root)
	t.Setenv(config.EnvHome, global)

	_, err := config.FindProject(root)
	require.ErrorIs(t, err, config.ErrNoProject)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvHome, t.TempDir())

	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", "/"))
}

func TestResolveProjectDir_SuffixNotDoubled(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")

	got := config.ResolveProjectDir(context.Background(), "/my/project/.paydesk", "")
	assert.Equal(t, "/my/project/.paydesk", got)
}
