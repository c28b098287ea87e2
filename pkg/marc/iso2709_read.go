package marc

import (
	"fmt"

	"github.com/joshuapare/marckit/internal/buf"
	"github.com/joshuapare/marckit/internal/format"
)

// ReadISO2709 decodes one ISO 2709 record from the start of b into the
// handle's record and returns the number of bytes it occupies.
//
// size is the number of bytes of b known to belong to the input, or
// UnknownSize. The record is never read past len(b) either way.
//
// Damage inside the record does not fail the read: it is reported as
// Comment nodes and the readable part is kept. The read fails only when the
// record length is unreadable (ErrRecordLength) or larger than the available
// bytes (ErrRecordTooLarge).
func (h *Handle) ReadISO2709(b []byte, size int) (int, error) {
	h.rec.Reset()

	n, err := format.RecordLength(b)
	if err != nil {
		h.comment("Bad record length: %v", err)
		h.log.Debug("read failed", "op", "iso2709", "err", err)
		return 0, fmt.Errorf("%w: %w", ErrRecordLength, err)
	}
	if n < format.MinRecordLength {
		h.comment("Record length %d < %d", n, format.MinRecordLength)
		h.log.Debug("read failed", "op", "iso2709", "length", n)
		return 0, fmt.Errorf("%w: %d < %d", ErrRecordLength, n, format.MinRecordLength)
	}
	avail := len(b)
	if size != UnknownSize && size < avail {
		avail = size
	}
	if n > avail {
		h.comment("Record appears to be larger than buffer %d < %d", avail, n)
		h.log.Debug("read failed", "op", "iso2709", "length", n, "available", avail)
		return 0, fmt.Errorf("%w: %d > %d", ErrRecordTooLarge, n, avail)
	}
	if h.debug > 0 {
		h.comment("Record length         %5d", n)
	}

	rec := b[:n]
	l := h.readLeader(rec[:format.LeaderSize])
	end := h.scanDirectory(rec, l)
	if l.BaseAddress != end+1 {
		h.comment("Base address not at end of directory, base %d, end %d", l.BaseAddress, end+1)
	}
	h.readFields(rec, l, end)
	return n, nil
}

// scanDirectory walks the directory and returns the offset of its end: the
// field separator, or the first entry that could not be decoded.
func (h *Handle) scanDirectory(rec []byte, l format.Leader) int {
	entryLen := l.EntryLen()
	p := format.LeaderSize
	for {
		if p >= len(rec) {
			h.comment("Directory offset %d: end of record. Missing FS char", p)
			return p
		}
		if rec[p] == format.FieldSeparator {
			return p
		}
		if p+entryLen >= len(rec) {
			h.comment("Directory offset %d: end of record. Missing FS char", p)
			return p
		}
		if h.debug > 0 {
			h.comment("Directory offset %d: Tag %.3s", p, rec[p:p+format.TagLen])
		}
		if _, ok := format.DecodeDirEntry(rec, p, l); !ok {
			h.comment("Directory offset %d: Bad value for data length and/or length starting", p)
			return p
		}
		p += entryLen
	}
}

// readFields decodes the fields indexed by the directory entries before end.
func (h *Handle) readFields(rec []byte, l format.Leader, end int) {
	entryLen := l.EntryLen()
	for p := format.LeaderSize; p+entryLen <= end; p += entryLen {
		e, ok := format.DecodeDirEntry(rec, p, l)
		if !ok {
			return
		}
		if h.debug > 0 {
			h.comment("Tag: %s. Directory offset %d: data-length %d, data-offset %d",
				e.Tag, p, e.Length, e.Start)
		}
		if e.Length <= 0 {
			h.comment("Directory offset %d: Data length %d for tag %s", p, e.Length, e.Tag)
			return
		}
		start := l.BaseAddress + e.Start
		last := start + e.Length - 1
		if last >= len(rec) {
			h.comment("Directory offset %d: Data out of bounds %d >= %d", p, last, len(rec))
			return
		}
		h.readField(rec, l, e, start, last)
	}
}

// readField decodes the field occupying rec[start:last+1]. last is the
// offset of the byte that should be the field separator.
func (h *Handle) readField(rec []byte, l format.Leader, e format.DirEntry, start, last int) {
	i := start
	ident := 0
	if !format.IsControlTag(e.Tag) {
		ident = 1
	} else if l.IndicatorLength > 0 && l.IndicatorLength < 4 {
		// 00x fields with subfields exist in some formats; only trust the
		// layout when the identifier separator is right after the indicators.
		if c, ok := buf.At(rec, i+l.IndicatorLength); ok && c == format.IdentifierSeparator {
			ident = 1
		} else if c, ok := buf.At(rec, i+l.IndicatorLength+1); ok && c == format.IdentifierSeparator {
			ident = 2
		}
	}

	if ident > 0 {
		i += ident - 1
		h.addDataField(e.Tag, buf.Clamp(rec, i, l.IndicatorLength))
		i += l.IndicatorLength
		for i < last && rec[i] != format.RecordSeparator && rec[i] != format.FieldSeparator {
			code := i + 1
			i++
			for i < last && !isSeparator(rec[i]) {
				i++
			}
			h.addSubfield(rec[code:i])
		}
	} else {
		for i < last && rec[i] != format.RecordSeparator && rec[i] != format.FieldSeparator {
			i++
		}
		h.addControlField(e.Tag, rec[start:i])
	}

	if i < last {
		h.comment("Separator but not at end of field length=%d", e.Length)
	}
	if c, ok := buf.At(rec, i); !ok || (c != format.RecordSeparator && c != format.FieldSeparator) {
		h.comment("No separator at end of field length=%d", e.Length)
	}
}

func isSeparator(c byte) bool {
	return c == format.RecordSeparator || c == format.FieldSeparator || c == format.IdentifierSeparator
}
