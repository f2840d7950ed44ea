// Package fileutil provides file system utility functions.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindFileCaseInsensitive searches for a file with the given name in the specified directory.
// The search is case-insensitive, which is useful for cross-platform compatibility.
//
// Example:
//
//	path, err := FindFileCaseInsensitive("/path/to/dir", "House.PD")
//	// Will find "house.pd", "HOUSE.PD", "House.pd", etc.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	// Normalize the search filename to lowercase for comparison
	searchName := strings.ToLower(filename)

	// Read directory entries
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	// Search for matching file (case-insensitive)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Compare lowercase versions
		if strings.ToLower(entry.Name()) == searchName {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s)", filename, dir)
}

// ResolvePath returns path unchanged when it exists, and otherwise looks for
// a file in the same directory whose name matches ignoring case.
func ResolvePath(path string) (string, error) {
	// まず直接アクセスを試みる
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	// 大文字小文字を無視して検索
	return FindFileCaseInsensitive(filepath.Dir(path), filepath.Base(path))
}

// ListFilesWithExt returns the regular files in dir whose extension matches
// ext ignoring case, sorted by name.
func ListFilesWithExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	ext = strings.ToLower(ext)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) == ext {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	// os.ReadDir は名前順で返す
	return files, nil
}
