package huffman

import (
	"io"
	"slices"
)

// Table maps a byte symbol to its occurrence count. Entries with zero or
// negative counts are representable but ignored by [Build], [Table.Total],
// and [Table.Symbols], so callers never need to sanitize before handing a
// table over.
type Table map[byte]int

// CountBytes builds a frequency table by scanning data once.
// Returns an empty (non-nil) table for empty input.
func CountBytes(data []byte) Table {
	t := make(Table)
	for _, b := range data {
		t[b]++
	}
	return t
}

// CountReader builds a frequency table by streaming r to EOF.
// It returns the table, the number of bytes scanned, and the first read
// error other than io.EOF. The table never holds partial garbage: on error
// it reflects exactly the bytes consumed before the failure.
func CountReader(r io.Reader) (Table, int64, error) {
	t := make(Table)
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			t[b]++
		}
		total += int64(n)
		if err == io.EOF {
			return t, total, nil
		}
		if err != nil {
			return t, total, err
		}
	}
}

// Total returns the sum of all positive counts. Zero and negative entries
// are ignored, matching the builder's input filtering, so for any table
// Build(t).Frequency == t.Total() whenever the tree is non-nil.
func (t Table) Total() int {
	var sum int
	for _, count := range t {
		if count > 0 {
			sum += count
		}
	}
	return sum
}

// Symbols returns the symbols with positive counts in ascending byte order.
// This is the seeding order for [Build] and the display order for listings.
// Returns an empty slice for a table with no positive entries.
func (t Table) Symbols() []byte {
	syms := make([]byte, 0, len(t))
	for b, count := range t {
		if count > 0 {
			syms = append(syms, b)
		}
	}
	slices.Sort(syms)
	return syms
}
