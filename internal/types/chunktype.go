package types

// flagBit is bit 5 of each chunk type byte, the ASCII lowercase bit.
const flagBit = 0x20

// ChunkType is the 4-byte type code of a PNG chunk.
//
// Every byte is an ASCII letter; bit 5 of each byte carries a property:
//
//	byte 0: ancillary (set) or critical (clear)
//	byte 1: private (set) or public (clear)
//	byte 2: reserved, must be clear
//	byte 3: safe to copy (set) or unsafe (clear)
//
// ChunkType is a comparable value type; == compares the bytes.
type ChunkType struct {
	b [4]byte
}

// ChunkTypeFromBytes validates b and returns it as a ChunkType.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isAlpha(c) {
			return ChunkType{}, &DecodeError{Kind: KindInvalidByte, Byte: c}
		}
	}
	return ChunkType{b: b}, nil
}

// ParseChunkType parses the 4-letter text form of a chunk type.
// A wrong length is reported before any invalid byte.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &DecodeError{Kind: KindInvalidLength, Length: int64(len(s))}
	}
	return ChunkTypeFromBytes([4]byte{s[0], s[1], s[2], s[3]})
}

// MustParseChunkType is like ParseChunkType but panics on error.
// It is meant for well-known constants such as "IHDR".
func MustParseChunkType(s string) ChunkType {
	t, err := ParseChunkType(s)
	if err != nil {
		panic(err)
	}
	return t
}

func isAlpha(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

// Bytes returns a copy of the type code bytes.
func (t ChunkType) Bytes() [4]byte {
	return t.b
}

// IsCritical reports whether decoders must understand this chunk.
func (t ChunkType) IsCritical() bool {
	return t.b[0]&flagBit == 0
}

// IsPublic reports whether the type is part of the public PNG registry.
func (t ChunkType) IsPublic() bool {
	return t.b[1]&flagBit == 0
}

// IsReservedBitValid reports whether the reserved bit (byte 2) is clear.
func (t ChunkType) IsReservedBitValid() bool {
	return t.b[2]&flagBit == 0
}

// IsSafeToCopy reports whether editors may copy the chunk after
// modifying critical chunks.
func (t ChunkType) IsSafeToCopy() bool {
	return t.b[3]&flagBit != 0
}

// IsValid reports whether the type may appear in a decoded stream.
// Only the reserved bit is checked; the letters were checked on construction.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

// IsZero reports whether t is the zero value, which is not a valid type.
func (t ChunkType) IsZero() bool {
	return t == ChunkType{}
}

func (t ChunkType) String() string {
	return string(t.b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (t ChunkType) MarshalText() ([]byte, error) {
	return t.b[:], nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ChunkType) UnmarshalText(text []byte) error {
	parsed, err := ParseChunkType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
