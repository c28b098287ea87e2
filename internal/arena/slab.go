package arena

// SlabChunk is the number of elements per slab chunk.
const SlabChunk = 64

// Slab is a bump allocator for values of type T. Pointers returned by New
// stay valid until Reset; growth adds chunks rather than moving elements.
type Slab[T any] struct {
	chunks [][]T
	cur    int
	off    int
	n      int
}

// New returns a pointer to a zeroed T.
func (s *Slab[T]) New() *T {
	for {
		if s.cur < len(s.chunks) {
			if s.off < len(s.chunks[s.cur]) {
				p := &s.chunks[s.cur][s.off]
				var zero T
				*p = zero
				s.off++
				s.n++
				return p
			}
			if s.cur+1 < len(s.chunks) {
				s.cur++
				s.off = 0
				continue
			}
		}
		s.chunks = append(s.chunks, make([]T, SlabChunk))
		s.cur = len(s.chunks) - 1
		s.off = 0
	}
}

// Len reports the number of values handed out since the last Reset.
func (s *Slab[T]) Len() int {
	return s.n
}

// Reset rewinds the slab, keeping its chunks.
func (s *Slab[T]) Reset() {
	s.cur = 0
	s.off = 0
	s.n = 0
}

// Release drops all chunks.
func (s *Slab[T]) Release() {
	s.chunks = nil
	s.Reset()
}
