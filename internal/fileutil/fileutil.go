// Package fileutil provides file and path utility functions for the
// CLI layer.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// NotebookExtension is the output file extension.
const NotebookExtension = ".nb"

// DeriveOutputPath determines where the notebook for input should be
// written. An empty output means the input's stem plus ".nb" in the
// current directory; an output naming an existing directory gets the
// derived file name appended; anything else is used as given.
func DeriveOutputPath(input, output string) string {
	auto := Stem(input) + NotebookExtension
	switch {
	case output == "":
		return auto
	case DirExists(output):
		return filepath.Join(output, auto)
	default:
		return output
	}
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
