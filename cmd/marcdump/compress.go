package main

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// compression identifies a stream compression by file extension.
type compression int

const (
	compressNone compression = iota
	compressGzip
	compressZstd
)

func compressionOf(name string) compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return compressGzip
	case ".zst", ".zstd":
		return compressZstd
	default:
		return compressNone
	}
}

// decompress wraps r according to the extension of name.
func decompress(name string, r io.Reader) (io.ReadCloser, error) {
	switch compressionOf(name) {
	case compressGzip:
		return gzip.NewReader(r)
	case compressZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}

// compress wraps w according to the extension of name. Close flushes the
// compressor but leaves w open.
func compress(name string, w io.Writer) (io.WriteCloser, error) {
	switch compressionOf(name) {
	case compressGzip:
		return gzip.NewWriter(w), nil
	case compressZstd:
		return zstd.NewWriter(w)
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
