package fs

import (
	"os"
	"path/filepath"
	"time"
)

// Entry represents a single file or directory on disk. Only the path is
// stored; everything else is read from the filesystem on each call, so an
// Entry may go stale between refreshes.
type Entry struct {
	Path string
}

// NewEntry builds an Entry for path.
func NewEntry(path string) Entry {
	return Entry{Path: path}
}

// Name returns the last element of the entry's path.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// IsDir reports whether the entry is a directory, following symlinks.
func (e Entry) IsDir() bool {
	return IsDir(e.Path)
}

// ModTime returns the entry's modification time. ok is false when the
// metadata cannot be read.
func (e Entry) ModTime() (t time.Time, ok bool) {
	info, err := os.Stat(e.Path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Size returns the entry's size in bytes, or false when unreadable.
func (e Entry) Size() (int64, bool) {
	info, err := os.Stat(e.Path)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// IsHidden reports whether the entry is a dotfile.
func (e Entry) IsHidden() bool {
	return IsHidden(e.Name())
}

// IsHidden checks if a name starts with a dot.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
