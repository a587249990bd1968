package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appMarkers = []string{"ios", "xcflavor.toml"}

func realpath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir
}

func TestFindRootOutsideRepository(t *testing.T) {
	dir := t.TempDir()

	root, err := FindRoot(dir, appMarkers...)
	require.NoError(t, err)
	assert.Equal(t, realpath(t, dir), realpath(t, root))
}

func TestFindRootFromSubdirectory(t *testing.T) {
	repoDir := initRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, "ios", "Flutter"), 0o755))

	root, err := FindRoot(filepath.Join(repoDir, "ios", "Flutter"), appMarkers...)
	require.NoError(t, err)
	assert.Equal(t, realpath(t, repoDir), realpath(t, root))
}

func TestFindRootAppInMonorepo(t *testing.T) {
	repoDir := initRepo(t)
	app := filepath.Join(repoDir, "apps", "mobile")
	require.NoError(t, os.MkdirAll(filepath.Join(app, "ios", "Flutter"), 0o755))
	// a second app at the repository root must not win
	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, "ios", "Flutter"), 0o755))

	root, err := FindRoot(app, appMarkers...)
	require.NoError(t, err)
	assert.Equal(t, realpath(t, app), realpath(t, root))
}

func TestFindRootConfigFileMarksApp(t *testing.T) {
	repoDir := initRepo(t)
	app := filepath.Join(repoDir, "mobile")
	require.NoError(t, os.MkdirAll(app, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(app, "xcflavor.toml"), nil, 0o644))

	root, err := FindRoot(app, appMarkers...)
	require.NoError(t, err)
	assert.Equal(t, realpath(t, app), realpath(t, root))
}

func TestIsAppDir(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, IsAppDir(dir, appMarkers...))
	assert.False(t, IsAppDir(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "ios"), 0o755))
	assert.True(t, IsAppDir(dir, appMarkers...))
}
