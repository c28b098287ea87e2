package writer

// MemWriter captures output in memory. Buf holds committed output only.
type MemWriter struct {
	Buf []byte

	pending []byte
}

// Write appends p to the pending output.
func (w *MemWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	return len(p), nil
}

// Commit moves the pending output to Buf.
func (w *MemWriter) Commit() error {
	w.Buf = append(w.Buf[:0], w.pending...)
	w.pending = w.pending[:0]
	return nil
}

// Abort drops the pending output.
func (w *MemWriter) Abort() error {
	w.pending = w.pending[:0]
	return nil
}
