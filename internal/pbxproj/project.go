// Package pbxproj reads Xcode project files.
//
// The project file is owned by Xcode. This package never writes it: reference checks work on the raw
// text and Inspect gives a read-only structured view.
package pbxproj

import (
	"fmt"
	"os"
	"strings"
)

type Project struct {
	Path string
	text string
}

// Load reads the whole project file into memory
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project %s: %w", path, err)
	}
	return &Project{Path: path, text: string(data)}, nil
}

// FromText wraps project text that is already in memory
func FromText(path, text string) *Project {
	return &Project{Path: path, text: text}
}

func (p *Project) Text() string { return p.text }

// Contains reports whether name appears anywhere in the project text
func (p *Project) Contains(name string) bool {
	return strings.Contains(p.text, name)
}

type Reference struct {
	Name    string
	Present bool
}

type Report struct {
	References []Reference
}

// Missing returns the names that are not referenced by the project
func (r Report) Missing() []string {
	var missing []string
	for _, ref := range r.References {
		if !ref.Present {
			missing = append(missing, ref.Name)
		}
	}
	return missing
}

// UpdateReferences checks which names the project already references. Names that are missing are
// only reported: adding PBXFileReference entries needs identifier allocation and a serializer that
// keeps Xcode's formatting, neither of which exists here, so the project is left untouched.
func (p *Project) UpdateReferences(names []string) Report {
	report := Report{References: make([]Reference, 0, len(names))}
	for _, name := range names {
		// TODO: insert a PBXFileReference into the Flutter group for missing names once there is a writer for the OpenStep format
		report.References = append(report.References, Reference{Name: name, Present: p.Contains(name)})
	}
	return report
}
