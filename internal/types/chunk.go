package types

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/simonhull/pngme/internal/binary"
)

// FrameOverhead is the number of bytes a chunk frame adds around its data:
// 4 length + 4 type + 4 CRC.
const FrameOverhead = 12

// maxDataLength is the largest data length a chunk frame can carry on
// this platform: the 32-bit length field, further capped so that the
// whole frame still fits in an int.
var maxDataLength = uint64(min(math.MaxUint32, math.MaxInt-FrameOverhead))

// Chunk is a single PNG chunk: a type code, its data, and the CRC over both.
//
// The length and CRC are always derived from the type and data; there is
// no way to construct a Chunk whose CRC disagrees with its contents.
type Chunk struct {
	data []byte
	crc  uint32
	typ  ChunkType
}

// NewChunk builds a chunk from trusted parts. It does not check the
// reserved bit of t; use NewCheckedChunk for user-supplied types.
//
// The chunk takes ownership of data. NewChunk panics if data is longer
// than a chunk can describe (2^32-1 bytes).
func NewChunk(t ChunkType, data []byte) Chunk {
	if uint64(len(data)) > maxDataLength {
		panic(fmt.Sprintf("pngme: chunk data too large: %d bytes", len(data)))
	}
	return Chunk{
		typ:  t,
		data: data,
		crc:  checksum(t, data),
	}
}

// NewCheckedChunk is like NewChunk but applies the same type checks as
// decoding: the reserved bit must be clear and the data must fit in a frame.
func NewCheckedChunk(t ChunkType, data []byte) (Chunk, error) {
	if t.IsZero() {
		return Chunk{}, &DecodeError{Kind: KindInvalidByte}
	}
	if !t.IsValid() {
		return Chunk{}, &DecodeError{Kind: KindInvalidTypeCode, Type: t.String()}
	}
	if uint64(len(data)) > maxDataLength {
		return Chunk{}, &DecodeError{Kind: KindLengthOverflow, Length: int64(len(data))}
	}
	return NewChunk(t, data), nil
}

func checksum(t ChunkType, data []byte) uint32 {
	return crc32.Update(crc32.ChecksumIEEE(t.b[:]), crc32.IEEETable, data)
}

// Length returns the number of data bytes.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type code.
func (c Chunk) Type() ChunkType {
	return c.typ
}

// CRC returns the CRC-32 over the type and data bytes.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// Data returns the chunk data. The slice must not be modified.
func (c Chunk) Data() []byte {
	return c.data
}

// FrameSize returns the number of bytes the serialized chunk occupies.
func (c Chunk) FrameSize() int {
	return FrameOverhead + len(c.data)
}

// DataString returns the data as text. Invalid UTF-8 is an error, not
// replaced.
func (c Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", &DecodeError{Kind: KindInvalidEncoding, Type: c.typ.String()}
	}
	return string(c.data), nil
}

// Equal reports whether c and o have the same type, data and CRC.
func (c Chunk) Equal(o Chunk) bool {
	return c.typ == o.typ && c.crc == o.crc && bytes.Equal(c.data, o.data)
}

// WriteTo writes the chunk frame: big-endian length, type, data,
// big-endian CRC.
func (c Chunk) WriteTo(w io.Writer) (int64, error) {
	sw := binary.NewSafeWriter(w)
	_ = binary.Write(sw, c.Length())
	_ = sw.WriteBytes(c.typ.b[:])
	_ = sw.WriteBytes(c.data)
	_ = binary.Write(sw, c.crc)
	return sw.Offset(), sw.Err()
}

// Bytes returns the serialized chunk frame.
func (c Chunk) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(c.FrameSize())
	_, _ = c.WriteTo(&buf) // bytes.Buffer writes cannot fail
	return buf.Bytes()
}

// String renders the chunk header fields for display.
func (c Chunk) String() string {
	var b strings.Builder
	b.WriteString("Chunk {\n")
	fmt.Fprintf(&b, "  Length: %d\n", c.Length())
	fmt.Fprintf(&b, "  Type: %s\n", c.typ)
	fmt.Fprintf(&b, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&b, "  Crc: %d\n", c.crc)
	b.WriteString("}")
	return b.String()
}

// PeekFrameSize reads the length field at the start of b and returns the
// size of the frame it announces. b may hold more or fewer bytes than that.
func PeekFrameSize(b []byte) (int, error) {
	if len(b) < FrameOverhead {
		return 0, &DecodeError{Kind: KindTooShort, Length: int64(len(b))}
	}
	length, err := binary.Read[uint32](binary.NewBytesReader(b, "chunk"), 0, "chunk length")
	if err != nil {
		return 0, err
	}
	if uint64(length) > maxDataLength {
		return 0, &DecodeError{Kind: KindLengthOverflow, Length: int64(length)}
	}
	return FrameOverhead + int(length), nil
}

// ParseChunk decodes exactly one chunk frame from b.
//
// b must hold the whole frame and nothing else. The type must consist of
// letters with the reserved bit clear, and the stored CRC must match.
// The returned chunk owns a copy of the data.
func ParseChunk(b []byte) (Chunk, error) {
	size, err := PeekFrameSize(b)
	if err != nil {
		return Chunk{}, err
	}
	length := int64(size - FrameOverhead)

	r := binary.NewReader(binary.NewBytesReader(b, "chunk"), 4)
	raw, err := r.ReadBytes(4, "chunk type")
	if err != nil {
		return Chunk{}, err
	}
	t, err := ChunkTypeFromBytes([4]byte(raw))
	if err != nil {
		return Chunk{}, err
	}
	if !t.IsValid() {
		return Chunk{}, &DecodeError{Kind: KindInvalidTypeCode, Type: t.String()}
	}

	switch {
	case len(b) < size:
		return Chunk{}, &DecodeError{
			Kind:   KindLengthMismatch,
			Type:   t.String(),
			Length: length,
			Reason: fmt.Sprintf("frame needs %d bytes but only %d are present", size, len(b)),
		}
	case len(b) > size:
		return Chunk{}, &DecodeError{
			Kind:   KindLengthMismatch,
			Type:   t.String(),
			Length: length,
			Reason: fmt.Sprintf("%d trailing bytes follow the frame", len(b)-size),
		}
	}

	data, err := r.ReadBytes(int(length), "chunk data")
	if err != nil {
		return Chunk{}, err
	}
	stored, err := binary.ReadValue[uint32](r, "chunk CRC")
	if err != nil {
		return Chunk{}, err
	}

	computed := checksum(t, data)
	if computed != stored {
		return Chunk{}, &DecodeError{
			Kind: KindCRCMismatch,
			Type: t.String(),
			Want: computed,
			Got:  stored,
		}
	}

	return Chunk{typ: t, data: data, crc: computed}, nil
}
