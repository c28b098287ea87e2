// Package arena provides the bump allocation used to back one decoded record.
//
// # Overview
//
// A record decode produces many small byte strings (tags, indicators, field
// and subfield content) and a handful of node structs. All of them share the
// lifetime of the record: they become garbage together the moment the next
// record is decoded. Arena and Slab exploit that by handing out memory with a
// bump pointer and reclaiming everything at once with Reset.
//
//   - Arena: byte allocations carved out of 4 KiB chunks
//   - Slab[T]: typed allocations carved out of fixed-size chunks of T
//
// Both are O(1) per allocation and never free individual objects. Chunks are
// kept across Reset, so a handle that decodes records of similar size stops
// allocating after the first few records.
//
// # Lifetime
//
// Memory returned before a Reset is reused afterwards. Callers that need to
// keep data across records must copy it out first.
//
// # Thread Safety
//
// Arena and Slab are not safe for concurrent use.
package arena
