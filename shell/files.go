package shell

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FileFilter selects files by extension, case-insensitively.
type FileFilter struct {
	Name       string
	Extensions []string
}

// Default filters. Their extensions are the defaults of the
// configuration; see [FileFilter.WithExtensions] to apply configured ones.
var (
	VideoFilter = FileFilter{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mkv"}}
	ImageFilter = FileFilter{Name: "Photos", Extensions: []string{".png", ".jpg", ".jpeg", ".bmp"}}
)

// Returns a copy of the filter using exts instead, unless exts is empty.
func (f FileFilter) WithExtensions(exts []string) FileFilter {
	if len(exts) > 0 {
		f.Extensions = slices.Clone(exts)
	}
	return f
}

// Reports whether the file name has one of the filter extensions. A
// filter without extensions matches everything.
func (f FileFilter) Matches(name string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, want := range f.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// List returns the paths of the regular files in dir accepted by filter,
// sorted by name. Subdirectories are not descended into.
func List(dir string, filter FileFilter) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !filter.Matches(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}
