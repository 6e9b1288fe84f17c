package utils

import (
	"path/filepath"
	"strings"
)

// SourceExt is the conventional extension of source files.
const SourceExt = ".rizz"

// DefaultOutputPath returns where the binary built from inPath goes: next to
// the source, with SourceExt dropped. Any other name gets ".out" appended so
// the build never overwrites its input or a sibling file of another kind.
func DefaultOutputPath(inPath string) string {
	if filepath.Ext(inPath) == SourceExt {
		return strings.TrimSuffix(inPath, SourceExt)
	}
	return inPath + ".out"
}
