// Package compress implements transparent value compression: pluggable
// codec backends plus a self-describing frame header, so a compressed
// payload read back later identifies its own backend.
package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
)

// Codec is one compression backend.
type Codec interface {
	// ID is the backend identifier written into the frame header.
	ID() byte
	Compress([]byte) ([]byte, error)
	Decompress([]byte) ([]byte, error)
}

// Backend identifiers. These are part of the stored-payload format and must
// never be renumbered.
const (
	BackendGzip   byte = 1
	BackendSnappy byte = 2
)

// Get returns a codec by name.
func Get(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "gzip":
		return gzipCodec{}, nil
	case "snappy":
		return snappyCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown compression backend: %q", name)
	}
}

func byID(id byte) (Codec, error) {
	switch id {
	case BackendGzip:
		return gzipCodec{}, nil
	case BackendSnappy:
		return snappyCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown compression backend id: %d", id)
	}
}

type gzipCodec struct{}

func (gzipCodec) ID() byte { return BackendGzip }

func (gzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)

	// The writer must be closed (flushing the gzip footer) before the buffer
	// is read, so no defer here.
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("gzip write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip close failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip reader init failed: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip read failed: %w", err)
	}
	return out, nil
}

type snappyCodec struct{}

func (snappyCodec) ID() byte { return BackendSnappy }

func (snappyCodec) Compress(data []byte) ([]byte, error) {
	// snappy.Encode appends to dst; passing nil allocates a right-sized slice.
	return snappy.Encode(nil, data), nil
}

func (snappyCodec) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
