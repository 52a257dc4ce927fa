package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load() reads the topology at path: a directory of per-node descriptors,
// a DOT file (.dot, .gv) or a YAML file listing every node.
func Load(path string) (Topology, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Topology{}, err
	}

	if info.IsDir() {
		return LoadDir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, err
	}

	var t Topology
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".dot", ".gv":
		t, err = ParseDOT(string(data))

	case ".yaml", ".yml":
		t, err = ParseYAML(data)

	default:
		return Topology{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return Topology{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
