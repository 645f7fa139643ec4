package fs

import (
	"os"
	"path/filepath"
)

// List returns the direct children of dir in no particular order.
// Missing, unreadable or non-directory paths produce an empty result.
func List(dir string) []Entry {
	entries, err := os.ReadDir(dir)
	if err != nil && len(entries) == 0 {
		return nil
	}

	list := make([]Entry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if name == "" {
			continue
		}
		list = append(list, Entry{Path: filepath.Join(dir, name)})
	}
	return list
}

// Parent returns the parent of path and whether one exists. The filesystem
// root has no parent.
func Parent(path string) (string, bool) {
	clean := filepath.Clean(path)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", false
	}
	return parent, true
}
