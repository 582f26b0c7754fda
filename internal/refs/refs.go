// Package refs reads and writes the thin reference files (HEAD, branch
// heads) used by the commit convenience path. Ids are treated as opaque
// trimmed strings; the object store never depends on this package.
package refs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"grit/internal/constants"
)

// ErrDetachedHead reports a HEAD that does not point at a branch.
var ErrDetachedHead = errors.New("HEAD does not reference a branch")

// CurrentBranch parses .grit/HEAD and returns the branch ref path it
// points at, relative to the metadata directory (e.g. "refs/heads/main").
func CurrentBranch(repoPath string) (string, error) {
	headPath := filepath.Join(repoPath, constants.Grit, constants.Head)
	content, err := os.ReadFile(headPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", constants.Head, err)
	}

	ref, found := strings.CutPrefix(strings.TrimSpace(string(content)), "ref: ")
	if !found {
		return "", ErrDetachedHead
	}
	return strings.TrimSpace(ref), nil
}

// Read returns the commit id a ref file contains.
func Read(repoPath, ref string) (string, error) {
	content, err := os.ReadFile(filepath.Join(repoPath, constants.Grit, ref))
	if err != nil {
		return "", fmt.Errorf("failed to read ref %s: %w", ref, err)
	}

	id := strings.TrimSpace(string(content))
	if len(id) != constants.HashStringLength {
		return "", fmt.Errorf("ref %s holds malformed object id %q", ref, id)
	}
	return id, nil
}

// Update points a ref file at a new commit id.
func Update(repoPath, ref, id string) error {
	path := filepath.Join(repoPath, constants.Grit, ref)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create ref directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to update ref %s: %w", ref, err)
	}
	return nil
}
