package worktree

import (
	"fmt"
	"io/fs"
	"os"

	"grit/internal/constants"
)

// DirEntry is one immediate child of a directory as the walker sees it:
// a name, a dir/symlink/file classification, and permission bits.
type DirEntry struct {
	Name    string
	Dir     bool
	Symlink bool
	Perm    fs.FileMode
}

// Walker enumerates the immediate children of a directory. Traversal
// policy (what to skip) lives here, not in the tree builder.
type Walker interface {
	List(dir string) ([]DirEntry, error)
}

type dirWalker struct {
	skip map[string]bool
}

// NewWalker returns a filesystem-backed Walker. The repository metadata
// directory and .git are always skipped, plus any extra names given.
func NewWalker(skip ...string) Walker {
	skipped := map[string]bool{
		constants.Grit: true,
		".git":         true,
	}
	for _, name := range skip {
		skipped[name] = true
	}
	return &dirWalker{skip: skipped}
}

func (w *dirWalker) List(dir string) ([]DirEntry, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", dir, err)
	}

	var entries []DirEntry
	for _, child := range children {
		if w.skip[child.Name()] {
			continue
		}

		// Info is an Lstat for ReadDir entries, so symlinks report
		// their own mode rather than their target's.
		info, err := child.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", child.Name(), err)
		}

		entries = append(entries, DirEntry{
			Name:    child.Name(),
			Dir:     child.IsDir(),
			Symlink: info.Mode()&fs.ModeSymlink != 0,
			Perm:    info.Mode().Perm(),
		})
	}

	return entries, nil
}
