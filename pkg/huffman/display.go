package huffman

import "fmt"

// SymbolLabel renders a byte for display in node labels, frequency
// listings, and code tables. Whitespace gets visible escapes, bytes above
// the ASCII range get a hex label, and remaining control bytes collapse
// to a dot:
//
//	' '  -> "_"      '\n' -> "\n"     '\t' -> "\t"     '\r' -> "\r"
//	0x80 -> "0x80"   0x07 -> "."     'A'  -> "A"
//
// Every possible byte value has a stable, non-empty label.
func SymbolLabel(b byte) string {
	switch b {
	case ' ':
		return "_"
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if b >= 0x80 {
		return fmt.Sprintf("0x%02X", b)
	}
	if b < 0x20 || b == 0x7F {
		return "."
	}
	return string(b)
}
