package errors

import (
	"strings"
	"unicode"
)

// ValidateSnapshotID validates a snapshot identifier before it is used as
// a storage key or filename. Snapshot IDs are UUID strings, so the rules
// are conservative: hex digits and dashes only, bounded length. This is
// what keeps a snapshot ID from ever escaping the store directory.
func ValidateSnapshotID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "snapshot id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidID, "snapshot id too long (max 64 characters)")
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		case r == '-':
		default:
			return New(ErrCodeInvalidID, "snapshot id contains invalid character %q", r)
		}
	}
	return nil
}

// ValidateInputPath validates a user-supplied file path before it is
// handed to the codec driver or the scanner. It rejects paths that could
// not name a regular file and catches the obvious injection shapes;
// existence checks are the caller's job.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if len(path) > 4096 {
		return New(ErrCodeInvalidPath, "path too long (max 4096 characters)")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains a null byte")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains control characters")
		}
	}
	return nil
}

// ValidateSnapshotName validates the human-readable name attached to a
// saved snapshot.
func ValidateSnapshotName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "snapshot name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "snapshot name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "snapshot name contains control characters")
		}
	}
	return nil
}
