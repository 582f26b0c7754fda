package store

import (
	"bufio"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"

	"grit/internal/constants"
	"grit/internal/object"
)

// seenCacheSize bounds the LRU set of ids known to be on disk. The
// store is append-only, so a cached membership never goes stale.
const seenCacheSize = 4096

// Store is a durable content-addressed object store rooted at a
// repository's .grit/objects directory. Objects are zlib-compressed on
// disk under a two-level fan-out keyed by the first two hex characters
// of their SHA-1 id.
type Store struct {
	repoPath string
	log      *zap.Logger
	seen     *lru.Cache[string, struct{}]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger; the default is a nop.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

func New(repoPath string, opts ...Option) *Store {
	// Cache creation only fails on a non-positive size.
	seen, _ := lru.New[string, struct{}](seenCacheSize)
	s := &Store{
		repoPath: repoPath,
		log:      zap.NewNop(),
		seen:     seen,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) objectsDir() string {
	return filepath.Join(s.repoPath, constants.Grit, constants.Objects)
}

// Write persists an object read from r as kind, returning its hex id.
// The payload streams through a zlib writer while simultaneously
// feeding a SHA-1 accumulator, into a private temporary file that is
// atomically renamed into its fan-out location once complete. Exactly
// size bytes must be available from r; a short read is an input error
// and leaves the store untouched.
func (s *Store) Write(kind object.Kind, size int64, r io.Reader) (string, error) {
	objectsDir := s.objectsDir()
	if err := os.MkdirAll(objectsDir, constants.DirPerms); err != nil {
		return "", fmt.Errorf("failed to create objects directory: %w", err)
	}

	tmpPath := filepath.Join(objectsDir, constants.TmpPrefix+uuid.NewString())
	tmpFile, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePerms)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary object file: %w", err)
	}
	// No-op once the file has been renamed into place.
	defer os.Remove(tmpPath)

	compressor := zlib.NewWriter(tmpFile)
	id, err := encodeObject(compressor, kind, size, r)
	if cerr := compressor.Close(); err == nil {
		err = cerr
	}
	if ferr := tmpFile.Close(); err == nil {
		err = ferr
	}
	if err != nil {
		return "", err
	}

	if s.seen.Contains(id) {
		s.log.Debug("object already exists", zap.String("id", id))
		return id, nil
	}

	objectDir := filepath.Join(objectsDir, id[:constants.HashDirPrefixLength])
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	// Atomic publish: concurrent readers see either no file or the
	// complete file, never a partial write. Renaming over an existing
	// object is safe because equal ids imply byte-identical content.
	finalPath := filepath.Join(objectDir, id[constants.HashDirPrefixLength:])
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to publish object %s: %w", id, err)
	}

	s.seen.Add(id, struct{}{})
	s.log.Debug("object written", zap.String("id", id), zap.Stringer("kind", kind))
	return id, nil
}

// Digest computes the id an object would have without storing it.
func Digest(kind object.Kind, size int64, r io.Reader) (string, error) {
	return encodeObject(io.Discard, kind, size, r)
}

// encodeObject writes "<kind> <size>\0" followed by exactly size bytes
// from r into w, hashing every uncompressed byte on the way through.
func encodeObject(w io.Writer, kind object.Kind, size int64, r io.Reader) (string, error) {
	hasher := sha1.New()
	sink := io.MultiWriter(w, hasher)

	if _, err := sink.Write(object.EncodeHeader(kind, size)); err != nil {
		return "", fmt.Errorf("failed to write object header: %w", err)
	}

	copied, err := io.CopyN(sink, r, size)
	if errors.Is(err, io.EOF) {
		return "", &SizeMismatchError{Declared: size, Actual: copied}
	}
	if err != nil {
		return "", fmt.Errorf("failed to write object payload: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Read resolves an id prefix to a stored object and returns a streaming
// handle over its decompressed payload. The prefix must be at least 3
// characters; zero matches and multiple matches are distinct errors.
func (s *Store) Read(prefix string) (*Object, error) {
	if len(prefix) < constants.MinRefLength {
		return nil, fmt.Errorf("%q: %w", prefix, ErrInvalidReference)
	}

	path, err := s.resolve(prefix)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open object file: %w", err)
	}

	decompressor, err := zlib.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to decompress object %s: %w", prefix, err)
	}

	reader := bufio.NewReader(decompressor)
	kind, size, err := object.DecodeHeader(reader)
	if err != nil {
		decompressor.Close()
		file.Close()
		return nil, err
	}

	return &Object{
		Kind: kind,
		Size: size,
		// The payload is hard-bounded to the declared size so a
		// decompression bomb cannot feed callers trailing data.
		payload:      io.LimitReader(reader, size),
		decompressor: decompressor,
		file:         file,
	}, nil
}

// resolve lists the fan-out bucket for a prefix and narrows it to a
// single object file.
func (s *Store) resolve(prefix string) (string, error) {
	bucket := filepath.Join(s.objectsDir(), prefix[:constants.HashDirPrefixLength])
	entries, err := os.ReadDir(bucket)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &NotFoundError{Prefix: prefix}
	}
	if err != nil {
		return "", fmt.Errorf("failed to list object directory: %w", err)
	}

	rest := prefix[constants.HashDirPrefixLength:]
	var matches []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.HasPrefix(entry.Name(), rest) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Prefix: prefix}
	case 1:
		return filepath.Join(bucket, matches[0]), nil
	default:
		return "", &AmbiguousError{Prefix: prefix, Count: len(matches)}
	}
}

// Exists reports whether an object with the given full id is stored.
func (s *Store) Exists(id string) bool {
	if len(id) != constants.HashStringLength {
		return false
	}
	if s.seen.Contains(id) {
		return true
	}
	path := filepath.Join(s.objectsDir(), id[:constants.HashDirPrefixLength], id[constants.HashDirPrefixLength:])
	if _, err := os.Stat(path); err != nil {
		return false
	}
	s.seen.Add(id, struct{}{})
	return true
}
