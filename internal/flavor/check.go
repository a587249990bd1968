package flavor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type FileState int

const (
	StateOK FileState = iota
	StateMissing
	StateStale
)

func (s FileState) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateMissing:
		return "missing"
	case StateStale:
		return "stale"
	default:
		return fmt.Sprintf("FileState(%d)", int(s))
	}
}

// FileDrift compares one planned file with what is on disk
type FileDrift struct {
	File  ConfigFile
	State FileState
	Diff  string // line diff from the file on disk to the generated one, only when stale
}

type CheckResult struct {
	Files []FileDrift
	// xcconfig files in the base directory that look generated but no configured flavor produces
	Unmanaged []string
}

// Clean reports whether every planned file exists with the expected content
func (r *CheckResult) Clean() bool {
	for _, f := range r.Files {
		if f.State != StateOK {
			return false
		}
	}
	return true
}

// Check compares the generated files with the base directory without writing anything
func Check(s *Settings) (*CheckResult, error) {
	files, err := Plan(s)
	if err != nil {
		return nil, err
	}

	dmp := diffmatchpatch.New()
	result := &CheckResult{Files: make([]FileDrift, 0, len(files))}

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if errors.Is(err, fs.ErrNotExist) {
			result.Files = append(result.Files, FileDrift{File: f, State: StateMissing})
			continue
		} else if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}

		current := string(data)
		if current == f.Content {
			result.Files = append(result.Files, FileDrift{File: f, State: StateOK})
			continue
		}

		result.Files = append(result.Files, FileDrift{
			File:  f,
			State: StateStale,
			Diff:  lineDiff(dmp, current, f.Content),
		})
	}

	result.Unmanaged, err = findUnmanaged(s.BaseDirPath(), Names(files))
	if err != nil {
		return nil, err
	}

	return result, nil
}

// lineDiff renders a whole-line diff of before and after, one line per row prefixed with
// "-", "+" or " ". Every row ends with a newline, even if the input's last line does not.
func lineDiff(dmp *diffmatchpatch.DiffMatchPatch, before, after string) string {
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for line := range strings.Lines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// findUnmanaged lists <something>Debug.xcconfig and <something>Release.xcconfig files in dir that are not in known.
// The base Debug.xcconfig and Release.xcconfig are never reported.
func findUnmanaged(dir string, known []string) ([]string, error) {
	if stat, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "*{Debug,Release}.xcconfig", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("while globbing %s: %w", dir, err)
	}

	var unmanaged []string
	for _, match := range matches {
		if match == FileName("", Debug) || match == FileName("", Release) {
			continue
		}
		if slices.Contains(known, match) {
			continue
		}
		unmanaged = append(unmanaged, match)
	}
	slices.Sort(unmanaged)
	return unmanaged, nil
}
