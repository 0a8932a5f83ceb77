package types

import (
	"fmt"
)

// ErrorKind classifies a DecodeError.
type ErrorKind int

const (
	// KindBadSignature means the input does not start with the PNG signature.
	KindBadSignature ErrorKind = iota + 1
	// KindTooShort means fewer than 12 bytes were available for a chunk frame.
	KindTooShort
	// KindLengthOverflow means a chunk length does not fit in 32 bits.
	KindLengthOverflow
	// KindLengthMismatch means the declared chunk length disagrees with the bytes present.
	KindLengthMismatch
	// KindInvalidByte means a chunk type byte is not ASCII alphabetic.
	KindInvalidByte
	// KindInvalidLength means chunk type text is not exactly 4 bytes long.
	KindInvalidLength
	// KindInvalidTypeCode means a chunk type has its reserved bit set.
	KindInvalidTypeCode
	// KindCRCMismatch means the stored CRC disagrees with the computed one.
	KindCRCMismatch
	// KindInvalidEncoding means chunk data is not valid UTF-8.
	KindInvalidEncoding
	// KindNotFound means no chunk of the requested type exists.
	KindNotFound
	// KindIO means reading or writing the underlying file failed.
	KindIO
	// KindInvalidStructure means the chunk sequence violates IHDR/IEND placement.
	KindInvalidStructure
)

var kindNames = map[ErrorKind]string{
	KindBadSignature:     "bad signature",
	KindTooShort:         "too short",
	KindLengthOverflow:   "length overflow",
	KindLengthMismatch:   "length mismatch",
	KindInvalidByte:      "invalid byte",
	KindInvalidLength:    "invalid length",
	KindInvalidTypeCode:  "invalid type code",
	KindCRCMismatch:      "CRC mismatch",
	KindInvalidEncoding:  "invalid encoding",
	KindNotFound:         "not found",
	KindIO:               "I/O error",
	KindInvalidStructure: "invalid structure",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError is returned by every codec and container operation.
//
// Kind tells callers what went wrong; the remaining fields carry whatever
// detail applies to that kind and are zero otherwise. Use errors.Is with
// the Err* sentinels to branch on the kind, or errors.As to get the detail:
//
//	var de *types.DecodeError
//	if errors.As(err, &de) && de.Kind == types.KindCRCMismatch {
//		log.Printf("chunk at offset %d is corrupt", de.Offset)
//	}
type DecodeError struct {
	Err    error // underlying cause (I/O errors)
	Path   string
	Type   string // chunk type text, when known
	Reason string
	Offset int64 // byte offset of the offending chunk within the parsed input
	Length int64 // declared or observed length, depending on Kind
	Want   uint32
	Got    uint32
	Kind   ErrorKind
	Byte   byte
}

func (e *DecodeError) Error() string {
	msg := e.message()
	if e.Offset > 0 {
		msg = fmt.Sprintf("at offset %d: %s", e.Offset, msg)
	}
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	return msg
}

func (e *DecodeError) message() string {
	switch e.Kind {
	case KindBadSignature:
		return "invalid PNG signature"
	case KindTooShort:
		return fmt.Sprintf("chunk too short: %d bytes (minimum is %d)", e.Length, FrameOverhead)
	case KindLengthOverflow:
		return fmt.Sprintf("chunk length %d exceeds 32 bits", e.Length)
	case KindLengthMismatch:
		return fmt.Sprintf("%s chunk declares %d data bytes, %s", e.Type, e.Length, e.Reason)
	case KindInvalidByte:
		return fmt.Sprintf("invalid chunk type byte 0x%02x (%08b)", e.Byte, e.Byte)
	case KindInvalidLength:
		return fmt.Sprintf("invalid chunk type length %d (expected 4)", e.Length)
	case KindInvalidTypeCode:
		return fmt.Sprintf("chunk type %q has the reserved bit set", e.Type)
	case KindCRCMismatch:
		return fmt.Sprintf("%s chunk CRC mismatch: stored 0x%08x, computed 0x%08x", e.Type, e.Got, e.Want)
	case KindInvalidEncoding:
		return fmt.Sprintf("%s chunk data is not valid UTF-8", e.Type)
	case KindNotFound:
		return fmt.Sprintf("no %s chunk found", e.Type)
	case KindIO:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "I/O error"
	case KindInvalidStructure:
		return "invalid chunk structure: " + e.Reason
	}
	return e.Kind.String()
}

// Unwrap returns the underlying cause, if any.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *DecodeError of the same kind.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is. They carry no detail; never return them directly.
var (
	ErrBadSignature     = &DecodeError{Kind: KindBadSignature}
	ErrTooShort         = &DecodeError{Kind: KindTooShort}
	ErrLengthOverflow   = &DecodeError{Kind: KindLengthOverflow}
	ErrLengthMismatch   = &DecodeError{Kind: KindLengthMismatch}
	ErrInvalidByte      = &DecodeError{Kind: KindInvalidByte}
	ErrInvalidLength    = &DecodeError{Kind: KindInvalidLength}
	ErrInvalidTypeCode  = &DecodeError{Kind: KindInvalidTypeCode}
	ErrCRCMismatch      = &DecodeError{Kind: KindCRCMismatch}
	ErrInvalidEncoding  = &DecodeError{Kind: KindInvalidEncoding}
	ErrNotFound         = &DecodeError{Kind: KindNotFound}
	ErrIO               = &DecodeError{Kind: KindIO}
	ErrInvalidStructure = &DecodeError{Kind: KindInvalidStructure}
)

// AtOffset returns a copy of err with its offset shifted by base when err
// is a *DecodeError. Other errors are returned unchanged.
func AtOffset(err error, base int64) error {
	de, ok := err.(*DecodeError)
	if !ok {
		return err
	}
	shifted := *de
	shifted.Offset += base
	return &shifted
}
