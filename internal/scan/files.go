// Package scan discovers image files in a folder.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileItem represents a discovered image file. Just a path for now.
type FileItem struct {
	Path string
}

// FileItems is a slice of FileItem
type FileItems []FileItem

// NewFileItem creates a new FileItem
func NewFileItem(p string) FileItem {
	return FileItem{
		Path: p,
	}
}

// IsImage checks if a file name has a supported image extension.
func IsImage(n string) bool {
	switch strings.ToLower(filepath.Ext(n)) {
	case ".jpg", ".jpeg", ".png", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// ScanFolder lists the image files directly inside dir, in lexicographic
// order. Subdirectories are not descended into and zero-byte files are
// skipped. An unreadable directory is an error; the caller treats that
// as fatal since there is nothing to show without an artwork list.
func ScanFolder(dir string) (FileItems, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %s: %w", dir, err)
	}

	var items FileItems
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() == 0 {
			continue
		}
		items = append(items, NewFileItem(filepath.Join(dir, entry.Name())))
	}
	return items, nil
}
