package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidFormat, "unknown format: %s", "gif"),
			want: "INVALID_FORMAT: unknown format: gif",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeCodecFailed, stderrors.New("exit status 1"), "compress failed"),
			want: "CODEC_FAILED: compress failed: exit status 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeSnapshotNotFound, "no snapshot %s", "abc")

	if !Is(err, ErrCodeSnapshotNotFound) {
		t.Error("Is() = false for matching code, want true")
	}
	if Is(err, ErrCodeInvalidID) {
		t.Error("Is() = true for different code, want false")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeSnapshotNotFound) {
		t.Error("Is() = false through wrapping, want true")
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "save snapshot")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() did not find the wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidID, "bad")); got != ErrCodeInvalidID {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidID)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format: gif")
	if got := UserMessage(err); got != "unknown format: gif" {
		t.Errorf("UserMessage() = %q, want message without code", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() on plain error = %q, want %q", got, "plain")
	}
}
