package arena

// ChunkSize is the size of a regular byte chunk.
const ChunkSize = 4096

// Arena is a bump allocator for byte strings.
type Arena struct {
	chunks [][]byte

	// cur indexes the chunk being bumped; off is the bump pointer inside it.
	cur int
	off int

	used int
}

// New returns an empty Arena. No memory is allocated until first use.
func New() *Arena {
	return &Arena{}
}

// Alloc returns n zeroed bytes. The slice has len == cap == n so appending
// to it never clobbers neighbouring allocations.
func (a *Arena) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	for {
		if a.cur < len(a.chunks) {
			c := a.chunks[a.cur]
			if a.off+n <= len(c) {
				b := c[a.off : a.off+n : a.off+n]
				a.off += n
				a.used += n
				clear(b)
				return b
			}
			if a.cur+1 < len(a.chunks) {
				a.cur++
				a.off = 0
				continue
			}
		}
		a.grow(n)
	}
}

// grow appends a chunk large enough for n bytes and makes it current.
func (a *Arena) grow(n int) {
	size := ChunkSize
	if n > size {
		size = n
	}
	a.chunks = append(a.chunks, make([]byte, size))
	a.cur = len(a.chunks) - 1
	a.off = 0
}

// Copy returns an arena-backed copy of b.
func (a *Arena) Copy(b []byte) []byte {
	dst := a.Alloc(len(b))
	copy(dst, b)
	return dst
}

// CopyString returns an arena-backed copy of s.
func (a *Arena) CopyString(s string) []byte {
	dst := a.Alloc(len(s))
	copy(dst, s)
	return dst
}

// Used reports the number of bytes handed out since the last Reset.
func (a *Arena) Used() int {
	return a.used
}

// Reset rewinds the arena. Chunks are retained for reuse.
func (a *Arena) Reset() {
	a.cur = 0
	a.off = 0
	a.used = 0
}

// Release drops all chunks.
func (a *Arena) Release() {
	a.chunks = nil
	a.Reset()
}
