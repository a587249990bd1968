package flavor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/qobs-build/xcflavor/internal/msg"
)

// ConfigFile is one generated <Flavor><Mode>.xcconfig
type ConfigFile struct {
	Flavor  string
	Mode    Mode
	Name    string
	Path    string
	Content string
}

// FileName returns the xcconfig file name for a flavor and mode, e.g. tucttxDevDebug.xcconfig
func FileName(flavor string, mode Mode) string {
	return flavor + string(mode) + ".xcconfig"
}

// Render expands the xcconfig for a single flavor and mode. It does not touch the file system.
func Render(s *Settings, flavor string, mode Mode) (ConfigFile, error) {
	include, err := evaluateString(s.PodsInclude, templateEnv{Flavor: flavor, Mode: string(mode)})
	if err != nil {
		return ConfigFile{}, fmt.Errorf("pods include for %s: %w", FileName(flavor, mode), err)
	}

	var sb strings.Builder
	writeln(&sb, `#include? "`, include, `"`)
	writeln(&sb, `#include "`, string(mode), `.xcconfig"`)

	name := FileName(flavor, mode)
	return ConfigFile{
		Flavor:  flavor,
		Mode:    mode,
		Name:    name,
		Path:    filepath.Join(s.BaseDirPath(), name),
		Content: sb.String(),
	}, nil
}

// Plan renders every flavor x mode pair, flavors in the given order and modes in settings order
func Plan(s *Settings) ([]ConfigFile, error) {
	files := make([]ConfigFile, 0, len(s.Flavors)*len(s.Modes))
	for _, flavor := range s.Flavors {
		for _, mode := range s.Modes {
			f, err := Render(s, flavor, mode)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	}
	return files, nil
}

// Names returns the file names of the planned files
func Names(files []ConfigFile) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

// Write writes every file, overwriting existing ones. It stops at the first failure and leaves
// files written before it in place. A "Created" line is printed to out for each file.
func Write(files []ConfigFile, out io.Writer) error {
	for _, f := range files {
		if err := os.WriteFile(f.Path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("create file %s: %w", filepath.ToSlash(f.Path), err)
		}
		msg.Created(out, f.Name)
	}
	return nil
}
