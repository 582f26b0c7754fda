package store

import (
	"io"

	"grit/internal/object"
)

// Object is a streaming handle over one stored object. The payload
// reader never yields more than Size bytes regardless of what the
// underlying compressed stream contains.
type Object struct {
	Kind object.Kind
	Size int64

	payload      io.Reader
	decompressor io.ReadCloser
	file         io.Closer
}

// Payload returns the bounded payload reader.
func (o *Object) Payload() io.Reader {
	return o.payload
}

// WritePayload copies the payload into w and verifies that exactly the
// declared number of bytes arrived, failing with SizeMismatchError on
// divergence.
func (o *Object) WritePayload(w io.Writer) (int64, error) {
	copied, err := io.Copy(w, o.payload)
	if err != nil {
		return copied, err
	}
	if copied != o.Size {
		return copied, &SizeMismatchError{Declared: o.Size, Actual: copied}
	}
	return copied, nil
}

// Close releases the underlying decompressor and file.
func (o *Object) Close() error {
	err := o.decompressor.Close()
	if cerr := o.file.Close(); err == nil {
		err = cerr
	}
	return err
}
