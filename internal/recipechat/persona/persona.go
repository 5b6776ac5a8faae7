// Package persona loads optional persona files that override the built-in
// recipe assistant instruction. A persona file is a TOML document with a
// "system" key and an optional "model" key.
package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mfukushima/recipechat/internal/recipechat"
)

// Persona represents the structure of a TOML persona file
type Persona struct {
	System string  `toml:"system"`
	Model  *string `toml:"model,omitempty"` // Optional: overrides the default model for this persona
}

// Load loads a persona file and returns its contents
func Load(filePath string) (*Persona, error) {
	var p Persona
	if _, err := toml.DecodeFile(filePath, &p); err != nil {
		return nil, fmt.Errorf("error decoding persona file: %v", err)
	}
	if p.System == "" {
		return nil, fmt.Errorf("persona file %s has no system instruction", filePath)
	}
	if p.Model != nil {
		if _, _, err := recipechat.ParseModelString(*p.Model); err != nil {
			return nil, fmt.Errorf("invalid model in persona file: %w", err)
		}
	}
	return &p, nil
}

// Resolve finds a persona by name across the configured persona
// directories and loads it. Later directories take precedence over
// earlier ones. The .toml extension is optional in the name.
func Resolve(name string, personaDirs []string) (*Persona, error) {
	personaFile := name
	if !strings.HasSuffix(personaFile, ".toml") {
		personaFile = personaFile + ".toml"
	}

	var personaPath string
	var found bool
	for _, personaDir := range personaDirs {
		candidatePath := filepath.Join(personaDir, personaFile)
		if _, err := os.Stat(candidatePath); err == nil {
			personaPath = candidatePath
			found = true
			// Keep scanning so later directories win
		}
	}

	if !found {
		return nil, fmt.Errorf("persona file '%s' not found in any of the persona directories: %v", personaFile, personaDirs)
	}

	return Load(personaPath)
}

// List returns the names of all persona files found across the
// configured persona directories, sorted alphabetically. Names are
// relative paths without the .toml extension; duplicates are reported
// once, from the first directory they appear in.
func List(personaDirs []string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	for _, personaDir := range personaDirs {
		if _, err := os.Stat(personaDir); os.IsNotExist(err) {
			continue
		}

		err := filepath.Walk(personaDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !strings.HasSuffix(info.Name(), ".toml") {
				return nil
			}

			relPath, err := filepath.Rel(personaDir, path)
			if err != nil {
				return nil
			}

			name := filepath.ToSlash(strings.TrimSuffix(relPath, ".toml"))
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking persona directory %s: %w", personaDir, err)
		}
	}

	sort.Strings(names)
	return names, nil
}
