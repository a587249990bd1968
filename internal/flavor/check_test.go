package flavor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkSettings(t *testing.T) *Settings {
	t.Helper()
	s := DefaultSettings(t.TempDir())
	s.Flavors = []string{"alphaDev", "alphaProd"}
	require.NoError(t, os.MkdirAll(s.BaseDirPath(), 0o755))
	return s
}

func writeBase(t *testing.T, s *Settings, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(s.BaseDirPath(), name), []byte(content), 0o644))
}

func TestCheckStates(t *testing.T) {
	s := checkSettings(t)

	good, err := Render(s, "alphaDev", Debug)
	require.NoError(t, err)
	writeBase(t, s, good.Name, good.Content)

	stale := "#include? \"Pods-old.xcconfig\"\n#include \"Release.xcconfig\"\n"
	writeBase(t, s, "alphaDevRelease.xcconfig", stale)

	result, err := Check(s)
	require.NoError(t, err)
	require.Len(t, result.Files, 4)
	assert.False(t, result.Clean())

	states := make(map[string]FileState)
	for _, f := range result.Files {
		states[f.File.Name] = f.State
	}
	assert.Equal(t, map[string]FileState{
		"alphaDevDebug.xcconfig":    StateOK,
		"alphaDevRelease.xcconfig":  StateStale,
		"alphaProdDebug.xcconfig":   StateMissing,
		"alphaProdRelease.xcconfig": StateMissing,
	}, states)

	staleDrift := result.Files[1]
	require.Equal(t, StateStale, staleDrift.State)
	assert.Equal(t, "-#include? \"Pods-old.xcconfig\"\n"+
		"+#include? \"../Pods/Target Support Files/Pods-Runner/Pods-Runner.release-alphadev.xcconfig\"\n"+
		" #include \"Release.xcconfig\"\n", staleDrift.Diff)
	assert.NotContains(t, staleDrift.Diff, "%0A")
	assert.Empty(t, result.Files[0].Diff)
}

func TestLineDiff(t *testing.T) {
	dmp := diffmatchpatch.New()

	tests := []struct {
		name, before, after, want string
	}{
		{"equal", "a\nb\n", "a\nb\n", " a\n b\n"},
		{"added line", "a\n", "a\nb\n", " a\n+b\n"},
		{"removed line", "a\nb\n", "b\n", "-a\n b\n"},
		{"missing final newline", "a", "a\n", "-a\n+a\n"},
		{"escapes are kept as-is", "x = 100%\n", "x = \"y\"\n", "-x = 100%\n+x = \"y\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lineDiff(dmp, tt.before, tt.after))
		})
	}
}

func TestCheckDoesNotWrite(t *testing.T) {
	s := checkSettings(t)

	result, err := Check(s)
	require.NoError(t, err)
	assert.False(t, result.Clean())

	entries, err := os.ReadDir(s.BaseDirPath())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckCleanAfterWrite(t *testing.T) {
	s := checkSettings(t)

	files, err := Plan(s)
	require.NoError(t, err)
	require.NoError(t, Write(files, &bytes.Buffer{}))

	result, err := Check(s)
	require.NoError(t, err)
	assert.True(t, result.Clean())
	assert.Empty(t, result.Unmanaged)
}

func TestCheckUnmanaged(t *testing.T) {
	s := checkSettings(t)
	writeBase(t, s, "Debug.xcconfig", "#include \"Generated.xcconfig\"\n")
	writeBase(t, s, "Release.xcconfig", "#include \"Generated.xcconfig\"\n")
	writeBase(t, s, "Generated.xcconfig", "FLUTTER_ROOT=/flutter\n")
	writeBase(t, s, "betaProdRelease.xcconfig", "")
	writeBase(t, s, "betaDevDebug.xcconfig", "")
	writeBase(t, s, "alphaDevDebug.xcconfig", "")
	require.NoError(t, os.Mkdir(filepath.Join(s.BaseDirPath(), "dirDebug.xcconfig"), 0o755))

	result, err := Check(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"betaDevDebug.xcconfig", "betaProdRelease.xcconfig"}, result.Unmanaged)
}

func TestCheckMissingBaseDir(t *testing.T) {
	s := DefaultSettings(t.TempDir())

	result, err := Check(s)
	require.NoError(t, err)
	assert.Empty(t, result.Unmanaged)
	for _, f := range result.Files {
		assert.Equal(t, StateMissing, f.State)
	}
}

func TestFileStateString(t *testing.T) {
	assert.Equal(t, "ok", StateOK.String())
	assert.Equal(t, "missing", StateMissing.String())
	assert.Equal(t, "stale", StateStale.String())
	assert.Equal(t, "FileState(9)", FileState(9).String())
}
