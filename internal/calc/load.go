package calc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Snapshot is a build together with the skill it is evaluated against.
type Snapshot struct {
	Build Build       `json:"build" yaml:"build"`
	Skill SkillConfig `json:"skill" yaml:"skill"`
}

// DefaultSnapshot returns an empty build with the default skill.
func DefaultSnapshot() Snapshot {
	return Snapshot{Build: DefaultBuild(), Skill: DefaultSkill()}
}

// Format names a snapshot encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatBrowser Format = "browser"
)

// FormatFromPath guesses the encoding from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// DecodeSnapshot parses data in the given format. Sections that are absent
// keep their defaults. The result is validated.
func DecodeSnapshot(data []byte, format Format) (Snapshot, error) {
	snap := DefaultSnapshot()
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&snap); err != nil {
			return Snapshot{}, fmt.Errorf("decode json snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return Snapshot{}, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	case FormatBrowser:
		var err error
		if snap, err = ImportBrowser(string(data)); err != nil {
			return Snapshot{}, err
		}
	default:
		return Snapshot{}, fmt.Errorf("unknown snapshot format %q", format)
	}
	if err := snap.Skill.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ImportBrowser reads a {"build":..,"skill":..} document in the browser
// layout. A document without a "build" key is taken to be a bare build.
func ImportBrowser(raw string) (Snapshot, error) {
	if !gjson.Valid(raw) {
		return Snapshot{}, ErrMalformed
	}
	snap := DefaultSnapshot()
	buildRaw := raw
	if b := gjson.Get(raw, "build"); b.Exists() {
		buildRaw = b.Raw
	}
	build, err := ImportBrowserBuild(buildRaw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("import build: %w", err)
	}
	snap.Build = build
	if s := gjson.Get(raw, "skill"); s.Exists() {
		if snap.Skill, err = ImportBrowserSkill(s.Raw); err != nil {
			return Snapshot{}, err
		}
	}
	return snap, nil
}

// ReadSnapshotFile loads a snapshot from disk. browser selects the browser
// layout regardless of extension.
func ReadSnapshotFile(path string, browser bool) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	format := FormatFromPath(path)
	if browser {
		format = FormatBrowser
	}
	snap, err := DecodeSnapshot(data, format)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// ReadSkillFile loads a lone skill config. Missing keys keep their defaults.
func ReadSkillFile(path string, browser bool) (SkillConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SkillConfig{}, err
	}
	s := DefaultSkill()
	switch {
	case browser:
		s, err = ImportBrowserSkill(string(data))
	case FormatFromPath(path) == FormatYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		return SkillConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
