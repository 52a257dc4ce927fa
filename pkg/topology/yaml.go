package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseDescriptor() parses the YAML descriptor of a single node. If the descriptor
// has no name, defaultName is used.
func ParseDescriptor(data []byte, defaultName string) (Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("failed to parse the descriptor: %w", err)
	}

	if d.Name == "" {
		d.Name = defaultName
	}

	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// LoadDescriptor() reads the descriptor at path. The node is named after the file
// (without extension) unless the descriptor names it.
func LoadDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, err
	}

	base := filepath.Base(path)
	d, err := ParseDescriptor(data, strings.TrimSuffix(base, filepath.Ext(base)))
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadDir() reads every .yaml or .yml descriptor in dir, one node per file.
func LoadDir(dir string) (Topology, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Topology{}, err
	}

	var t Topology
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		d, err := LoadDescriptor(filepath.Join(dir, entry.Name()))
		if err != nil {
			return Topology{}, err
		}
		t.Nodes = append(t.Nodes, d)
	}

	if err := t.Validate(); err != nil {
		return Topology{}, fmt.Errorf("%s: %w", dir, err)
	}

	t.sortNodes()
	return t, nil
}

// ParseYAML() parses a topology listing every node under "nodes".
func ParseYAML(data []byte) (Topology, error) {
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Topology{}, fmt.Errorf("failed to parse the topology: %w", err)
	}

	if err := t.Validate(); err != nil {
		return Topology{}, err
	}

	t.sortNodes()
	return t, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
