package worktree

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"grit/internal/object"
	"grit/internal/store"
)

// Builder converts a directory subtree into a canonical tree object,
// persisting blobs and subtrees through the object store as it goes.
type Builder struct {
	store  *store.Store
	walker Walker
	log    *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger attaches a logger; the default is a nop.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

func NewBuilder(s *store.Store, w Walker, opts ...Option) *Builder {
	b := &Builder{
		store:  s,
		walker: w,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build recursively persists dir as a tree object and returns its id.
// An empty subtree (no files anywhere below it) returns "" so the
// caller can omit it entirely; empty directories are not representable.
// The result depends only on the (name, content, mode) set, never on
// the order the walker enumerates entries.
func (b *Builder) Build(dir string) (string, error) {
	children, err := b.walker.List(dir)
	if err != nil {
		return "", err
	}

	slices.SortFunc(children, func(x, y DirEntry) int {
		return object.CompareNames([]byte(x.Name), []byte(y.Name), x.Dir, y.Dir)
	})

	var payload []byte
	for _, child := range children {
		path := filepath.Join(dir, child.Name)

		var id, mode string
		switch {
		case child.Dir:
			id, err = b.Build(path)
			if err != nil {
				return "", err
			}
			if id == "" {
				b.log.Debug("skipping empty directory", zap.String("path", path))
				continue
			}
			mode = object.ModeDir

		case child.Symlink:
			id, err = b.writeSymlink(path)
			if err != nil {
				return "", err
			}
			mode = object.ModeSymlink

		default:
			id, err = b.writeBlob(path)
			if err != nil {
				return "", err
			}
			mode = object.ModeRegular
			if child.Perm&0o111 != 0 {
				mode = object.ModeExecutable
			}
		}

		payload, err = object.AppendEntry(payload, object.Entry{Mode: mode, Name: child.Name, ID: id})
		if err != nil {
			return "", err
		}
	}

	if len(payload) == 0 {
		return "", nil
	}

	id, err := b.store.Write(object.KindTree, int64(len(payload)), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to store tree for %s: %w", dir, err)
	}
	return id, nil
}

// writeBlob streams a regular file into the store as a blob.
func (b *Builder) writeBlob(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return b.store.Write(object.KindBlob, info.Size(), file)
}

// writeSymlink stores a symlink as a blob holding its target path.
func (b *Builder) writeSymlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink %s: %w", path, err)
	}
	return b.store.Write(object.KindBlob, int64(len(target)), strings.NewReader(target))
}
