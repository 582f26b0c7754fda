package utils

import (
	"crypto/sha1"
	"fmt"
	"path/filepath"
	"strings"

	"grit/internal/object"
)

// ComputeHash calculates the hex object id for an in-memory payload.
// The streaming write path in internal/store produces the same id; this
// helper exists for callers (and tests) that already hold the bytes.
func ComputeHash(content []byte, kind object.Kind) string {
	data := append(object.EncodeHeader(kind, int64(len(content))), content...)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

// BuildDirPath constructs os-agnostic display directory path with trailing separator preserving all components.
// Unlike filepath.Join, does not normalize "." or remove redundant separators.
func BuildDirPath(dirs ...string) string {
	return strings.Join(dirs, string(filepath.Separator)) + string(filepath.Separator)
}
