package object

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"grit/internal/constants"
)

// Tree entry modes, rendered as octal ASCII in the serialized form.
const (
	ModeRegular    = "100644"
	ModeExecutable = "100755"
	ModeSymlink    = "120000"
	ModeDir        = "40000"
	ModeSubmodule  = "160000"
)

// ErrMalformedEntry reports a truncated or non-text tree entry.
var ErrMalformedEntry = errors.New("malformed tree entry")

// Entry is one row of a tree object: a name bound to a child object id
// with its permission/type mode. ID is the 40-character hex digest; the
// serialized form carries the raw 20-byte digest instead.
type Entry struct {
	Mode string
	Name string
	ID   string
}

// IsDir reports whether the entry references a subtree.
func (e Entry) IsDir() bool {
	return e.Mode == ModeDir
}

// AppendEntry serializes one entry as "<mode> <name>\0<raw digest>" and
// appends it to buf.
func AppendEntry(buf []byte, e Entry) ([]byte, error) {
	digest, err := hex.DecodeString(e.ID)
	if err != nil || len(digest) != constants.HashByteLength {
		return nil, fmt.Errorf("tree entry %q: invalid object id %q", e.Name, e.ID)
	}
	buf = append(buf, e.Mode...)
	buf = append(buf, ' ')
	buf = append(buf, e.Name...)
	buf = append(buf, 0)
	buf = append(buf, digest...)
	return buf, nil
}

// ReadEntries parses a tree payload until the reader is exhausted.
// Each entry's mode token must be valid octal; anything truncated or
// non-text fails with ErrMalformedEntry.
func ReadEntries(r *bufio.Reader) ([]Entry, error) {
	var entries []Entry
	digest := make([]byte, constants.HashByteLength)

	for {
		segment, err := r.ReadBytes(0)
		if err == io.EOF && len(segment) == 0 {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: truncated mode/name segment", ErrMalformedEntry)
		}

		segment = segment[:len(segment)-1]
		if !utf8.Valid(segment) {
			return nil, fmt.Errorf("%w: segment is not valid UTF-8", ErrMalformedEntry)
		}

		mode, name, found := strings.Cut(string(segment), " ")
		if !found || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedEntry, segment)
		}
		if _, err := KindForMode(mode); err != nil {
			return nil, err
		}

		if _, err := io.ReadFull(r, digest); err != nil {
			return nil, fmt.Errorf("%w: truncated object id for %q", ErrMalformedEntry, name)
		}

		entries = append(entries, Entry{
			Mode: mode,
			Name: name,
			ID:   hex.EncodeToString(digest),
		})
	}
}

// CompareNames orders tree entries the canonical way: byte comparison
// over the common prefix, then the first byte past it, where an
// exhausted directory name contributes an implied '/' and an exhausted
// file name contributes nothing (and sorts first). A directory "foo"
// therefore sorts as "foo/", after a file "foo.txt".
func CompareNames(a, b []byte, aDir, bDir bool) int {
	n := min(len(a), len(b))
	if c := bytes.Compare(a[:n], b[:n]); c != 0 {
		return c
	}

	ab, aok := nextByte(a, n, aDir)
	bb, bok := nextByte(b, n, bDir)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	default:
		return int(ab) - int(bb)
	}
}

func nextByte(name []byte, i int, dir bool) (byte, bool) {
	if i < len(name) {
		return name[i], true
	}
	if dir {
		return '/', true
	}
	return 0, false
}
