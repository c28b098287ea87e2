// Package writer exposes sinks for converted records. A sink collects the
// output of a whole conversion run and makes it visible only on Commit.
package writer

import "io"

// Sink receives encoded records.
type Sink interface {
	io.Writer

	// Commit finishes the output. Nothing may be written afterwards.
	Commit() error

	// Abort discards the output. It is a no-op after Commit.
	Abort() error
}

// Stream returns a sink that writes straight through to w, for standard
// output and other streams that cannot be rolled back.
func Stream(w io.Writer) Sink {
	return stream{w}
}

type stream struct {
	io.Writer
}

func (stream) Commit() error { return nil }
func (stream) Abort() error  { return nil }
