package pbxproj

import (
	"errors"
	"fmt"

	"howett.net/plist"
)

var ErrMalformed = errors.New("malformed project file")

// BuildConfiguration is one XCBuildConfiguration of a target
type BuildConfiguration struct {
	ID   string
	Name string
	// path of the base configuration file reference, empty when the configuration has none
	BaseConfiguration   string
	BaseConfigurationID string
}

type Target struct {
	ID             string
	Name           string
	Configurations []BuildConfiguration
}

type objectGraph map[string]map[string]any

func (g objectGraph) get(id, isa string) (map[string]any, error) {
	obj, ok := g[id]
	if !ok {
		return nil, fmt.Errorf("%w: object %s not found", ErrMalformed, id)
	}
	if isa != "" && str(obj, "isa") != isa {
		return nil, fmt.Errorf("%w: object %s is %s, expected %s", ErrMalformed, id, str(obj, "isa"), isa)
	}
	return obj, nil
}

func str(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func ids(obj map[string]any, key string) []string {
	arr, _ := obj[key].([]any)
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Inspect parses project text and lists the project's targets in project order together with their
// build configurations and base configuration references
func Inspect(data []byte) ([]Target, error) {
	var raw map[string]any
	if _, err := plist.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	rawObjects, ok := raw["objects"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: no objects section", ErrMalformed)
	}
	objects := make(objectGraph, len(rawObjects))
	for id, v := range rawObjects {
		if obj, ok := v.(map[string]any); ok {
			objects[id] = obj
		}
	}

	rootID, _ := raw["rootObject"].(string)
	root, err := objects.get(rootID, "PBXProject")
	if err != nil {
		return nil, err
	}

	var targets []Target
	for _, targetID := range ids(root, "targets") {
		obj, err := objects.get(targetID, "")
		if err != nil {
			return nil, err
		}
		target := Target{ID: targetID, Name: str(obj, "name")}

		list, err := objects.get(str(obj, "buildConfigurationList"), "XCConfigurationList")
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", target.Name, err)
		}
		for _, cfgID := range ids(list, "buildConfigurations") {
			cfg, err := objects.get(cfgID, "XCBuildConfiguration")
			if err != nil {
				return nil, fmt.Errorf("target %s: %w", target.Name, err)
			}
			bc := BuildConfiguration{ID: cfgID, Name: str(cfg, "name")}
			if refID := str(cfg, "baseConfigurationReference"); refID != "" {
				ref, err := objects.get(refID, "PBXFileReference")
				if err != nil {
					return nil, fmt.Errorf("target %s, configuration %s: %w", target.Name, bc.Name, err)
				}
				bc.BaseConfigurationID = refID
				bc.BaseConfiguration = str(ref, "path")
				if bc.BaseConfiguration == "" {
					bc.BaseConfiguration = str(ref, "name")
				}
			}
			target.Configurations = append(target.Configurations, bc)
		}
		targets = append(targets, target)
	}

	return targets, nil
}

// Inspect parses the loaded project text
func (p *Project) Inspect() ([]Target, error) {
	targets, err := Inspect([]byte(p.text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}
	return targets, nil
}

// FindTarget returns the target with the given name
func FindTarget(targets []Target, name string) (Target, bool) {
	for _, t := range targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}
