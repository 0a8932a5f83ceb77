package pngme

import (
	"github.com/simonhull/pngme/internal/types"
)

// FrameOverhead is the number of bytes a chunk frame adds around its data.
const FrameOverhead = types.FrameOverhead

// ChunkType is an alias to types.ChunkType.
// Re-exporting from internal/types to maintain public API.
type ChunkType = types.ChunkType

// Chunk is an alias to types.Chunk.
// Re-exporting from internal/types to maintain public API.
type Chunk = types.Chunk

// ParseChunkType parses the 4-letter text form of a chunk type, such as "ruSt".
func ParseChunkType(s string) (ChunkType, error) {
	return types.ParseChunkType(s)
}

// ChunkTypeFromBytes validates raw type bytes.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	return types.ChunkTypeFromBytes(b)
}

// NewChunk builds a chunk without checking the reserved bit of t.
//
// Use it for chunk types you control. For types that come from users,
// prefer NewCheckedChunk, which rejects anything a decoder would reject.
func NewChunk(t ChunkType, data []byte) Chunk {
	return types.NewChunk(t, data)
}

// NewCheckedChunk builds a chunk after checking t the same way ParseChunk does.
//
// Example:
//
//	t, err := pngme.ParseChunkType("ruSt")
//	if err != nil {
//		return err
//	}
//	c, err := pngme.NewCheckedChunk(t, []byte("hello"))
func NewCheckedChunk(t ChunkType, data []byte) (Chunk, error) {
	return types.NewCheckedChunk(t, data)
}

// ParseChunk decodes exactly one chunk frame.
func ParseChunk(b []byte) (Chunk, error) {
	return types.ParseChunk(b)
}
