package manifest

// file.go — manifest declarations loaded from a YAML file.
//
// The file mirrors the programmatic API: an ordered list of library
// declarations. Order in the file is declaration order.
//
//	libraries:
//	  - name: x264
//	    mode: static
//	    group: codec
//	    dir: /opt/x264/lib
//	    platforms: [windows]
//	  - name: z
//	    mode: static
//	    group: codec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	velocut "github.com/Eric-Lautanen/velocut-ffmpeg-the-third"
)

type fileDecl struct {
	Libraries []entryDecl `yaml:"libraries"`
}

type entryDecl struct {
	Name      string   `yaml:"name"`
	Mode      string   `yaml:"mode"`
	Group     string   `yaml:"group"`
	Dir       string   `yaml:"dir"`
	Platforms []string `yaml:"platforms"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled"`
}

// Load reads a manifest declaration file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a manifest from YAML declarations.
func Parse(data []byte) (*Manifest, error) {
	var decl fileDecl
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("manifest: unmarshal: %w", err)
	}

	m := New()
	for _, d := range decl.Libraries {
		if d.Name == "" {
			return nil, fmt.Errorf("manifest: library declaration missing name")
		}
		mode, err := velocut.ParseLinkMode(d.Mode)
		if err != nil {
			return nil, fmt.Errorf("manifest: library %s: %w", d.Name, err)
		}
		group, err := ParseGroup(d.Group)
		if err != nil {
			return nil, fmt.Errorf("manifest: library %s: %w", d.Name, err)
		}
		enabled := true
		if d.Enabled != nil {
			enabled = *d.Enabled
		}
		if err := m.Register(Entry{
			Name:      d.Name,
			Mode:      mode,
			Group:     group,
			Enabled:   enabled,
			Dir:       d.Dir,
			Platforms: d.Platforms,
		}); err != nil {
			return nil, err
		}
	}
	return m, nil
}
