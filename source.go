package netstorage

import (
	"bytes"
	"io"
)

// Source supplies an upload payload. Implementations yield their
// content exactly once; a second open fails with ErrSourceDrained
// rather than silently re-reading.
type Source interface {
	// open returns the payload reader and its size, or -1 when the
	// size is unknown.
	open() (io.Reader, int64, error)
}

// BytesSource adapts an in-memory payload to a Source without copying
// it; the reader forwards directly out of the original slice.
type BytesSource struct {
	payload []byte
	drained bool
}

// Bytes wraps an in-memory payload. The caller retains ownership of
// the slice and must not mutate it until the upload completes.
func Bytes(payload []byte) *BytesSource {
	return &BytesSource{payload: payload}
}

func (s *BytesSource) open() (io.Reader, int64, error) {
	if s.drained {
		return nil, 0, ErrSourceDrained
	}
	s.drained = true
	return bytes.NewReader(s.payload), int64(len(s.payload)), nil
}

// ReaderSource streams an upload payload from an io.Reader.
type ReaderSource struct {
	r       io.Reader
	size    int64
	drained bool
}

// Reader wraps a byte stream of unknown length.
func Reader(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r, size: -1}
}

// ReaderWithSize wraps a byte stream whose length is known up front,
// letting the upload carry a Content-Length.
func ReaderWithSize(r io.Reader, size int64) *ReaderSource {
	return &ReaderSource{r: r, size: size}
}

func (s *ReaderSource) open() (io.Reader, int64, error) {
	if s.drained {
		return nil, 0, ErrSourceDrained
	}
	s.drained = true
	return s.r, s.size, nil
}
