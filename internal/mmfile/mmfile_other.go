//go:build !unix

package mmfile

import "os"

// Open reads the entire file where mmap is not available.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{data: data}, nil
}
