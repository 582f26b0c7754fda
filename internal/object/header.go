package object

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformedHeader reports an object whose uncompressed form does not
// start with a valid "<kind> <size>\0" header.
var ErrMalformedHeader = errors.New("malformed object header")

// EncodeHeader renders the canonical object header "<kind> <size>\0".
// The header is part of the hashed content, so its exact bytes matter.
func EncodeHeader(kind Kind, size int64) []byte {
	return []byte(fmt.Sprintf("%s %d\x00", kind, size))
}

// DecodeHeader consumes the header from the start of an uncompressed
// object stream, leaving the reader positioned at the payload.
func DecodeHeader(r *bufio.Reader) (Kind, int64, error) {
	header, err := r.ReadString(0)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: missing null terminator", ErrMalformedHeader)
	}
	header = header[:len(header)-1]
	if !utf8.ValidString(header) {
		return 0, 0, fmt.Errorf("%w: header is not valid UTF-8", ErrMalformedHeader)
	}

	token, sizeText, found := strings.Cut(header, " ")
	if !found {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedHeader, header)
	}

	kind, err := ParseKind(token)
	if err != nil {
		return 0, 0, err
	}

	size, err := strconv.ParseInt(sizeText, 10, 64)
	if err != nil || size < 0 {
		return 0, 0, fmt.Errorf("%w: invalid size %q", ErrMalformedHeader, sizeText)
	}

	return kind, size, nil
}
