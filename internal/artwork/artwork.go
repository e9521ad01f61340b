// Package artwork holds the per-image records of the slideshow: the
// title/artist/year metadata and the path it was loaded for. Metadata
// comes from an optional JSON sidecar next to the image file.
package artwork

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"artslide/internal/scan"
)

const unknownField = "Unknown"

// Metadata describes one artwork. Immutable once loaded.
type Metadata struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   string `json:"year"`
}

// Info pairs an image path with its metadata. One per discovered file,
// created during the startup scan and never mutated afterwards.
type Info struct {
	Path string
	Meta Metadata
}

// sidecarPath returns the descriptor path for an image: the same base
// name with a .json extension, in the same directory.
func sidecarPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".json"
}

// fallbackMetadata derives metadata from the file name alone.
func fallbackMetadata(imagePath string) Metadata {
	base := filepath.Base(imagePath)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	return Metadata{Title: title, Artist: unknownField, Year: unknownField}
}

// LoadMetadata returns the metadata for an image path. If a sidecar
// descriptor exists and carries all three string fields it is returned
// verbatim; a missing, unreadable or malformed sidecar degrades to a
// filename-derived title. This never fails, whatever the path.
func LoadMetadata(imagePath string) Metadata {
	content, err := os.ReadFile(sidecarPath(imagePath))
	if err != nil {
		return fallbackMetadata(imagePath)
	}

	// All three fields are required; pointer fields distinguish a
	// missing key from an empty value.
	var parsed struct {
		Title  *string `json:"title"`
		Artist *string `json:"artist"`
		Year   *string `json:"year"`
	}
	if err := json.Unmarshal(content, &parsed); err != nil {
		return fallbackMetadata(imagePath)
	}
	if parsed.Title == nil || parsed.Artist == nil || parsed.Year == nil {
		return fallbackMetadata(imagePath)
	}
	return Metadata{Title: *parsed.Title, Artist: *parsed.Artist, Year: *parsed.Year}
}

// Discover scans dir for image files and loads the metadata of each.
// The returned slice keeps the scan order.
func Discover(dir string) ([]Info, error) {
	files, err := scan.ScanFolder(dir)
	if err != nil {
		return nil, err
	}
	infos := make([]Info, 0, len(files))
	for _, f := range files {
		infos = append(infos, Info{Path: f.Path, Meta: LoadMetadata(f.Path)})
	}
	return infos, nil
}
