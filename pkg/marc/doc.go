/*
Package marc converts bibliographic records between ISO 2709 ("MARC") binary
form and three text serializations: a line dump, MARCXML and MarcXchange.

# Overview

Every conversion goes through a record model owned by a Handle. Readers fill
the model, writers render it; readers and writers never talk to each other.

	h, err := marc.New(marc.DefaultOptions())
	if err != nil {
	    return err
	}
	n, err := h.ReadISO2709(raw, marc.UnknownSize)
	if err != nil {
	    return err // fatal: bad record length or truncated buffer
	}
	xml, err := h.AppendMARCXML(nil)

A Record is an ordered list of nodes: one *Leader, *ControlField and
*DataField values, and *Comment values carrying diagnostics.

# Diagnostics

Reading is tolerant. A damaged leader digit, a directory that stops early or a
field that does not end on a separator does not abort the read; the problem is
recorded as a Comment node at the point where it was found and the reader
carries on. Comments are rendered inline by the line and XML writers, so the
output of a damaged record shows what was wrong with it:

	00066nam a2200037 i 4500
	(Base address not at end of directory, base 37, end 49)
	001 abc

Only a few conditions are fatal and returned as errors: an unreadable record
length, a record longer than its buffer, and, on the XML path, a document
that does not have the MARCXML shape.

Writing is strict. The ISO 2709 writer refuses a leader whose indicator,
identifier or directory widths are not digits instead of guessing.

# Lifetime

Record content lives in a per-handle arena that is rewound by every read.
Slices obtained from a Record are only valid until the next read on the same
Handle; copy them if they must outlive it. A Handle must not be shared
between goroutines, independent Handles can be used in parallel.

# Subfield codes

Subfields are stored as code and value together. Writers split them using the
leader's identifier length; when it is 2 and a character-set converter is set,
the code width is guessed by probing the converter with 1 to 4 leading bytes
(see CodeWidth).
*/
package marc
