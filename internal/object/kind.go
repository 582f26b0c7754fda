package object

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind identifies the three object types the store persists.
type Kind int

const (
	KindBlob Kind = iota
	KindTree
	KindCommit
)

var (
	ErrUnknownKind = errors.New("unknown object kind")
	ErrUnknownMode = errors.New("unknown tree entry mode")
)

// String returns the lowercase token used in object headers.
func (k Kind) String() string {
	switch k {
	case KindBlob:
		return "blob"
	case KindTree:
		return "tree"
	case KindCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// ParseKind maps a header token back to its Kind.
func ParseKind(token string) (Kind, error) {
	switch token {
	case "blob":
		return KindBlob, nil
	case "tree":
		return KindTree, nil
	case "commit":
		return KindCommit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, token)
	}
}

// KindForMode maps a tree entry mode to the kind of the referenced object.
// Directories are trees, submodule-like references are commits, everything
// else (regular, executable, symlink) is a blob.
func KindForMode(mode string) (Kind, error) {
	parsed, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	switch parsed {
	case 0o40000:
		return KindTree, nil
	case 0o160000:
		return KindCommit, nil
	default:
		return KindBlob, nil
	}
}
