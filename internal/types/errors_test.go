package types

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestDecodeError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DecodeError
		contains []string
		excludes []string
	}{
		{
			name:     "bad signature with path",
			err:      &DecodeError{Kind: KindBadSignature, Path: "cat.png"},
			contains: []string{"cat.png", "invalid PNG signature"},
			excludes: []string{"offset"},
		},
		{
			name:     "too short",
			err:      &DecodeError{Kind: KindTooShort, Length: 7},
			contains: []string{"7 bytes", "minimum is 12"},
		},
		{
			name: "length mismatch at offset",
			err: &DecodeError{
				Kind:   KindLengthMismatch,
				Type:   "IDAT",
				Length: 100,
				Offset: 33,
				Reason: "frame needs 112 bytes but only 50 are present",
			},
			contains: []string{"at offset 33", "IDAT", "100 data bytes", "only 50"},
		},
		{
			name:     "invalid byte",
			err:      &DecodeError{Kind: KindInvalidByte, Byte: '1'},
			contains: []string{"0x31", "00110001"},
		},
		{
			name:     "invalid length",
			err:      &DecodeError{Kind: KindInvalidLength, Length: 5},
			contains: []string{"length 5", "expected 4"},
		},
		{
			name:     "crc mismatch",
			err:      &DecodeError{Kind: KindCRCMismatch, Type: "RuSt", Got: 1, Want: 2},
			contains: []string{"RuSt", "stored 0x00000001", "computed 0x00000002"},
		},
		{
			name:     "not found",
			err:      &DecodeError{Kind: KindNotFound, Type: "ruSt", Path: "a.png"},
			contains: []string{"a.png", "no ruSt chunk found"},
		},
		{
			name:     "structure",
			err:      &DecodeError{Kind: KindInvalidStructure, Reason: "first chunk is tEXt, not IHDR"},
			contains: []string{"invalid chunk structure", "not IHDR"},
		},
		{
			name:     "unknown kind",
			err:      &DecodeError{Kind: ErrorKind(99)},
			contains: []string{"ErrorKind(99)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("error message %q should contain %q", msg, substr)
				}
			}
			for _, substr := range tt.excludes {
				if strings.Contains(msg, substr) {
					t.Errorf("error message %q should not contain %q", msg, substr)
				}
			}
		})
	}
}

func TestDecodeError_IsMatchesKind(t *testing.T) {
	err := &DecodeError{Kind: KindCRCMismatch, Type: "IDAT", Offset: 40}

	if !errors.Is(err, ErrCRCMismatch) {
		t.Error("errors.Is should match the sentinel of the same kind")
	}
	if errors.Is(err, ErrLengthMismatch) {
		t.Error("errors.Is should not match a different kind")
	}
	if errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should not match unrelated errors")
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "missing.png", Err: fs.ErrNotExist}
	err := &DecodeError{Kind: KindIO, Err: cause}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("I/O errors should unwrap to their cause")
	}
	if !errors.Is(err, ErrIO) {
		t.Error("I/O errors should match ErrIO")
	}
	if !strings.Contains(err.Error(), "missing.png") {
		t.Errorf("message should include cause: %v", err)
	}
}

func TestAtOffset(t *testing.T) {
	orig := &DecodeError{Kind: KindCRCMismatch, Offset: 4}
	shifted := AtOffset(orig, 100)

	var de *DecodeError
	if !errors.As(shifted, &de) {
		t.Fatalf("expected *DecodeError, got %T", shifted)
	}
	if de.Offset != 104 {
		t.Errorf("Offset = %d, want 104", de.Offset)
	}
	if orig.Offset != 4 {
		t.Error("AtOffset must not modify its argument")
	}

	plain := errors.New("plain")
	if AtOffset(plain, 10) != plain {
		t.Error("non-DecodeError values should pass through")
	}
}

func TestErrorKind_String(t *testing.T) {
	if KindCRCMismatch.String() != "CRC mismatch" {
		t.Errorf("String() = %q", KindCRCMismatch.String())
	}
}
