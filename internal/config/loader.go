package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/renato0307/kform/internal/fieldpath"
)

// Loader handles loading and validating form definitions
type Loader struct {
	path string
}

// NewLoader creates a new definition loader
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads a definition file. See Loader.Load.
func Load(path string) (*Definition, error) {
	return NewLoader(path).Load()
}

// Load reads, parses and validates the definition file.
func (l *Loader) Load() (*Definition, error) {
	path, err := ExpandPath(l.path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form definition: %w", err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if def.Schema.File != "" {
		file, err := ExpandPath(def.Schema.File)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(file) {
			file = filepath.Join(filepath.Dir(path), file)
		}
		def.Schema.File = file
	}

	return def, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}
	if err := validate(&def); err != nil {
		return nil, fmt.Errorf("invalid form definition: %w", err)
	}
	return &def, nil
}

// ExpandPath replaces a leading ~/ with the home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

func validate(def *Definition) error {
	src := def.Schema
	if src.FromCluster() && (src.GroupVersion == "" || src.Kind == "") {
		return fmt.Errorf("schema.file or schema.groupVersion and schema.kind are required")
	}
	if (src.GroupVersion == "") != (src.Kind == "") {
		return fmt.Errorf("schema.groupVersion and schema.kind must be set together")
	}

	if def.Fields.Len() == 0 {
		return fmt.Errorf("at least one field must be configured")
	}

	seen := make(map[string]bool, def.Fields.Len())
	for i, entry := range def.Fields.Entries() {
		path := entry.Path.String()
		for _, seg := range entry.Path {
			if fieldpath.IsForbidden(seg) {
				return fmt.Errorf("fields[%d]: reserved segment %q in %q", i, seg, path)
			}
		}
		if !entry.Path.IsValid() {
			return fmt.Errorf("fields[%d]: invalid path %q", i, path)
		}
		if seen[path] {
			return fmt.Errorf("fields[%d]: duplicate path %q", i, path)
		}
		seen[path] = true
	}

	return nil
}
