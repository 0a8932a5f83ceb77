package pngme

import (
	"github.com/simonhull/pngme/internal/types"
)

// DecodeError is an alias to types.DecodeError.
// Re-exporting from internal/types to maintain public API.
type DecodeError = types.DecodeError

// ErrorKind is an alias to types.ErrorKind.
type ErrorKind = types.ErrorKind

// Error kinds. See DecodeError.
const (
	KindBadSignature     = types.KindBadSignature
	KindTooShort         = types.KindTooShort
	KindLengthOverflow   = types.KindLengthOverflow
	KindLengthMismatch   = types.KindLengthMismatch
	KindInvalidByte      = types.KindInvalidByte
	KindInvalidLength    = types.KindInvalidLength
	KindInvalidTypeCode  = types.KindInvalidTypeCode
	KindCRCMismatch      = types.KindCRCMismatch
	KindInvalidEncoding  = types.KindInvalidEncoding
	KindNotFound         = types.KindNotFound
	KindIO               = types.KindIO
	KindInvalidStructure = types.KindInvalidStructure
)

// Sentinels for errors.Is, one per kind.
//
//	if errors.Is(err, pngme.ErrNotFound) {
//		fmt.Println("no hidden message")
//	}
var (
	ErrBadSignature     = types.ErrBadSignature
	ErrTooShort         = types.ErrTooShort
	ErrLengthOverflow   = types.ErrLengthOverflow
	ErrLengthMismatch   = types.ErrLengthMismatch
	ErrInvalidByte      = types.ErrInvalidByte
	ErrInvalidLength    = types.ErrInvalidLength
	ErrInvalidTypeCode  = types.ErrInvalidTypeCode
	ErrCRCMismatch      = types.ErrCRCMismatch
	ErrInvalidEncoding  = types.ErrInvalidEncoding
	ErrNotFound         = types.ErrNotFound
	ErrIO               = types.ErrIO
	ErrInvalidStructure = types.ErrInvalidStructure
)
