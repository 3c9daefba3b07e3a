package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.txt
var LevelsFS embed.FS

// Load returns the rows of the named level grid. Rows keep their trailing
// spaces, which are empty tiles; only the final newline is dropped.
func Load(name string) ([]string, error) {
	if path.Ext(name) == "" {
		name += ".txt"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, fmt.Errorf("level %s is empty", name)
	}
	return strings.Split(text, "\n"), nil
}

// Names lists the embedded levels without their extension.
func Names() []string {
	entries, _ := fs.Glob(LevelsFS, "*.txt")
	for i, e := range entries {
		entries[i] = strings.TrimSuffix(e, ".txt")
	}
	return entries
}
