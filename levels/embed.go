// Package levels ships the sandbox levels embedded in the binary. Load
// prefers a same-named file on disk, so an edited level wins without a
// rebuild.
package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DefaultLevel is the level the sandbox opens with.
const DefaultLevel = "sandbox.yaml"

// Load returns a level document by name, disk copy first, embedded second.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(diskLevelPath(clean)); err == nil {
		return data, nil
	}
	data, err := LevelsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return data, nil
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "levels/") {
		return strings.TrimPrefix(s, "levels/")
	}
	return s
}

func diskLevelPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}
