package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageFile is a directory entry whose name carries an image extension.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Name is the base name of the image file.
	Name string
}

// ListImageFiles lists the regular files in dir whose names end in one of
// extensions, compared case-insensitively, sorted by name.
//
// Arguments:
// - dir: Directory path containing image files.
// - extensions: Accepted extensions including the dot, e.g. ".png".
//
// Returns:
// - []ImageFile: The matching files in filename order.
// - error: Error if the directory cannot be read.
func ListImageFiles(dir string, extensions []string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !HasExtension(entry.Name(), extensions) {
			continue
		}

		files = append(files, ImageFile{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// HasExtension reports whether name ends in one of extensions, ignoring case.
func HasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
