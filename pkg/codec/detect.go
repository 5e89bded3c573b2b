package codec

import (
	"os"
	"path/filepath"
	"strings"
)

// Extensions the compressor itself produces: these always decompress.
var compressedExtensions = map[string]bool{
	".huff":       true,
	".bin":        true,
	".compressed": true,
}

// Extensions that are reliably text-like: these always compress.
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".json": true,
	".xml":  true,
	".html": true,
	".log":  true,
	".c":    true,
	".h":    true,
	".go":   true,
	".py":   true,
}

// sniff parameters for extensionless files: read the first 1 KiB and
// treat the file as compressed when more than 30% of it is non-printable.
const (
	sniffLimit     = 1024
	binaryFraction = 0.30
)

// DetectMode picks the compressor operation for a path: known compressed
// extensions decompress, known text extensions compress, and anything
// else is sniffed by content. Unreadable files default to compress so
// the subsequent run surfaces the real error.
func DetectMode(path string) Mode {
	ext := strings.ToLower(filepath.Ext(path))
	if compressedExtensions[ext] {
		return ModeDecompress
	}
	if textExtensions[ext] {
		return ModeCompress
	}
	if looksCompressed(path) {
		return ModeDecompress
	}
	return ModeCompress
}

// DefaultOutputPath derives an output path when the user gave none:
// compressing appends .huff, decompressing strips the compressed
// extension (or appends .out when there is nothing to strip).
func DefaultOutputPath(inputPath string, mode Mode) string {
	if mode == ModeCompress {
		return inputPath + ".huff"
	}
	ext := strings.ToLower(filepath.Ext(inputPath))
	if compressedExtensions[ext] {
		return strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	}
	return inputPath + ".out"
}

func looksCompressed(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, sniffLimit)
	n, err := f.Read(buf)
	if n == 0 || (err != nil && n <= 0) {
		return false
	}

	nonPrintable := 0
	for _, b := range buf[:n] {
		if b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if b < 0x20 || b >= 0x7F {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(n) > binaryFraction
}
