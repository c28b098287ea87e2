// Package mmfile maps record files into memory so that readers can decode
// records in place without copying them into the heap.
package mmfile

import "errors"

// ErrTooLarge is returned for files that do not fit the address space.
var ErrTooLarge = errors.New("mmfile: file too large to map")

// File is a read-only view of a file's contents.
type File struct {
	data  []byte
	unmap func([]byte) error
}

// Bytes returns the file contents. The slice is invalid after Close.
func (f *File) Bytes() []byte {
	return f.data
}

// Len returns the file size.
func (f *File) Len() int {
	return len(f.data)
}

// Close releases the mapping. Calling Close more than once is a no-op.
func (f *File) Close() error {
	data := f.data
	f.data = nil
	if data == nil || f.unmap == nil {
		return nil
	}
	return f.unmap(data)
}
