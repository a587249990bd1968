package flavor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/pelletier/go-toml/v2"
)

// Mode is an Xcode build configuration
type Mode string

const (
	Debug   Mode = "Debug"
	Release Mode = "Release"
)

// ParseMode accepts "Debug" or "Release" in any letter case
func ParseMode(s string) (Mode, error) {
	switch {
	case strings.EqualFold(s, string(Debug)):
		return Debug, nil
	case strings.EqualFold(s, string(Release)):
		return Release, nil
	}
	return "", fmt.Errorf("unknown mode %q, must be %s or %s", s, Debug, Release)
}

const (
	ConfigFilename = "xcflavor.toml"

	DefaultBaseDir     = "ios/Flutter"
	DefaultProject     = "ios/Runner.xcodeproj/project.pbxproj"
	DefaultPodsInclude = "../Pods/Target Support Files/Pods-Runner/Pods-Runner.{{ lower(mode) }}-{{ lower(flavor) }}.xcconfig"
)

var (
	DefaultFlavors = []string{"tucttxDev", "tucttxProd", "tu7eDev", "tu7eProd", "tusvaDev", "tusvaProd"}
	DefaultModes   = []Mode{Debug, Release}
)

// Settings holds everything the generator needs. Relative paths are resolved against Root.
type Settings struct {
	BaseDir     string
	Project     string
	Flavors     []string
	Modes       []Mode
	PodsInclude string

	Root string
}

// DefaultSettings returns the settings used when no xcflavor.toml exists
func DefaultSettings(root string) *Settings {
	return &Settings{
		BaseDir:     DefaultBaseDir,
		Project:     DefaultProject,
		Flavors:     append([]string(nil), DefaultFlavors...),
		Modes:       append([]Mode(nil), DefaultModes...),
		PodsInclude: DefaultPodsInclude,
		Root:        root,
	}
}

func (s *Settings) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.Root, path)
}

// BaseDirPath is the directory the xcconfig files are written to
func (s *Settings) BaseDirPath() string { return s.resolve(s.BaseDir) }

// ProjectPath is the project.pbxproj checked for references
func (s *Settings) ProjectPath() string { return s.resolve(s.Project) }

// Validate checks the modes and compiles every expression in the Pods include template
func (s *Settings) Validate() error {
	if len(s.Modes) == 0 {
		return errors.New("no modes configured")
	}
	seen := make(map[Mode]bool, len(s.Modes))
	for i, m := range s.Modes {
		parsed, err := ParseMode(string(m))
		if err != nil {
			return err
		}
		if seen[parsed] {
			return fmt.Errorf("mode %s listed more than once", parsed)
		}
		seen[parsed] = true
		s.Modes[i] = parsed
	}
	for _, expression := range templateExpressions(s.PodsInclude) {
		if _, err := expr.Compile(expression, expr.Env(templateEnv{})); err != nil {
			return fmt.Errorf("failed to compile expression %q in pods_include: %w", expression, err)
		}
	}
	return nil
}

// settingsFile mirrors Settings with pointers so keys present in the file can be told apart from absent ones
type settingsFile struct {
	BaseDir     *string   `toml:"base_dir"`
	Project     *string   `toml:"project"`
	Flavors     *[]string `toml:"flavors"`
	Modes       *[]Mode   `toml:"modes"`
	PodsInclude *string   `toml:"pods_include"`
}

// ParseSettings decodes an xcflavor.toml. Keys missing from the file keep their defaults.
func ParseSettings(rdr io.Reader, root string) (*Settings, error) {
	var file settingsFile
	dec := toml.NewDecoder(rdr)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			return nil, errors.New(derr.String())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, errors.New(serr.String())
		}
		return nil, err
	}

	s := DefaultSettings(root)
	if file.BaseDir != nil {
		s.BaseDir = *file.BaseDir
	}
	if file.Project != nil {
		s.Project = *file.Project
	}
	if file.Flavors != nil {
		s.Flavors = *file.Flavors
	}
	if file.Modes != nil {
		s.Modes = *file.Modes
	}
	if file.PodsInclude != nil {
		s.PodsInclude = *file.PodsInclude
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSettings reads the settings for the app at root. An empty path means root/xcflavor.toml,
// which may be absent; an explicitly given path must exist.
func LoadSettings(root, path string) (*Settings, error) {
	optional := path == ""
	if optional {
		path = filepath.Join(root, ConfigFilename)
	}

	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(root), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	s, err := ParseSettings(bufio.NewReader(f), root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

//
// expr-lang helpers
//

// templateEnv is the environment {{...}} expressions in pods_include are evaluated in
type templateEnv struct {
	Flavor string `expr:"flavor"`
	Mode   string `expr:"mode"`
}

var exprRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

func templateExpressions(s string) []string {
	matches := exprRegex.FindAllStringSubmatch(s, -1)
	expressions := make([]string, 0, len(matches))
	for _, m := range matches {
		expressions = append(expressions, strings.TrimSpace(m[1]))
	}
	return expressions
}

// evaluateString finds and evaluates all {{...}} expressions in a string
func evaluateString(s string, env templateEnv) (string, error) {
	matches := exprRegex.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var builder strings.Builder
	lastIndex := 0

	for _, matchIndexes := range matches {
		fullMatchStart := matchIndexes[0]
		fullMatchEnd := matchIndexes[1]
		expressionStart := matchIndexes[2]
		expressionEnd := matchIndexes[3]

		builder.WriteString(s[lastIndex:fullMatchStart])

		expression := strings.TrimSpace(s[expressionStart:expressionEnd])
		program, err := expr.Compile(expression, expr.Env(env))
		if err != nil {
			return "", fmt.Errorf("failed to compile expression %q: %w", expression, err)
		}

		result, err := expr.Run(program, env)
		if err != nil {
			return "", fmt.Errorf("failed to run expression %q: %w", expression, err)
		}

		fmt.Fprintf(&builder, "%v", result)
		lastIndex = fullMatchEnd
	}

	builder.WriteString(s[lastIndex:])

	return builder.String(), nil
}
