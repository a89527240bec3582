// Package outpath derives the .csv output path for an input file.
package outpath

import (
	"path/filepath"
	"strings"
)

// Ext is the extension appended to every output path.
const Ext = ".csv"

// Derive returns the output path for input: the final extension of the
// last path element is replaced with ".csv", or ".csv" is appended when
// there is none. The directory part is kept exactly as given, so relative
// inputs produce outputs next to them.
//
// Examples:
//   - "data.txt"       → "data.csv"
//   - "archive.tar.gz" → "archive.tar.csv"
//   - "noext"          → "noext.csv"
//   - "dir.d/noext"    → "dir.d/noext.csv"
//   - ".profile"       → ".profile.csv"
func Derive(input string) string {
	_, base := filepath.Split(input)
	ext := extension(base)
	return input[:len(input)-len(ext)] + Ext
}

// extension returns the suffix of base starting at its last dot.
// Leading dots belong to the name, not the extension.
func extension(base string) string {
	name := strings.TrimLeft(base, ".")
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i:]
}
