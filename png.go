package pngme

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/simonhull/pngme/internal/types"
)

// Signature is the fixed 8-byte prefix of every PNG datastream.
var Signature = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// Well-known chunk types.
var (
	TypeIHDR = types.MustParseChunkType("IHDR")
	TypeIEND = types.MustParseChunkType("IEND")
)

// PNG is an ordered, mutable sequence of chunks behind the PNG signature.
//
// Order is preserved exactly and chunk types may repeat. Lookups and
// removals by type act on the first match.
//
// A PNG is not safe for concurrent use; each goroutine should own its
// own value or synchronize access.
type PNG struct {
	// Path is the file the PNG was read from. Empty for in-memory values.
	Path string

	chunks []Chunk
}

// Parse decodes a complete PNG datastream.
//
// The input must start with Signature and consist of whole chunk frames
// with no trailing bytes. The first invalid chunk stops parsing; the
// returned *DecodeError carries its byte offset. Parse does not require
// IHDR or IEND; call ValidateStructure for that.
//
// Example:
//
//	data, err := os.ReadFile("cat.png")
//	if err != nil {
//		return err
//	}
//	png, err := pngme.Parse(data)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%d chunks\n", png.Len())
func Parse(data []byte) (*PNG, error) {
	return parse(data, discardLogger)
}

func parse(data []byte, logger *slog.Logger) (*PNG, error) {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature[:]) {
		return nil, &DecodeError{Kind: KindBadSignature}
	}

	p := &PNG{}
	off := len(Signature)
	for off < len(data) {
		rest := data[off:]
		size, err := types.PeekFrameSize(rest)
		if err != nil {
			return nil, types.AtOffset(err, int64(off))
		}
		// an oversized length makes ParseChunk report the mismatch
		size = min(size, len(rest))

		c, err := types.ParseChunk(rest[:size])
		if err != nil {
			return nil, types.AtOffset(err, int64(off))
		}
		logger.Debug("parsed chunk",
			slog.Int("offset", off),
			slog.String("type", c.Type().String()),
			slog.Uint64("length", uint64(c.Length())))

		p.chunks = append(p.chunks, c)
		off += size
	}

	return p, nil
}

// FromChunks builds a PNG from chunks in the given order.
func FromChunks(chunks ...Chunk) *PNG {
	return &PNG{chunks: slices.Clone(chunks)}
}

// Len returns the number of chunks.
func (p *PNG) Len() int {
	return len(p.chunks)
}

// Chunks returns a copy of the chunk sequence.
func (p *PNG) Chunks() []Chunk {
	return slices.Clone(p.chunks)
}

// AppendChunk adds c to the end of the sequence.
func (p *PNG) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// ChunksByType returns an iterator over the chunks whose type renders as
// typ, in order. The pointers are valid until the PNG is next modified.
func (p *PNG) ChunksByType(typ string) iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for i := range p.chunks {
			if p.chunks[i].Type().String() != typ {
				continue
			}
			if !yield(&p.chunks[i]) {
				return
			}
		}
	}
}

// ChunkByType returns the first chunk whose type renders as typ.
func (p *PNG) ChunkByType(typ string) (*Chunk, bool) {
	for c := range p.ChunksByType(typ) {
		return c, true
	}
	return nil, false
}

// RemoveFirstChunk removes and returns the first chunk whose type renders
// as typ. Later chunks shift down by one. If no chunk matches, the error
// is a *DecodeError of kind KindNotFound.
func (p *PNG) RemoveFirstChunk(typ string) (Chunk, error) {
	i := slices.IndexFunc(p.chunks, func(c Chunk) bool {
		return c.Type().String() == typ
	})
	if i < 0 {
		return Chunk{}, &DecodeError{Kind: KindNotFound, Type: typ, Path: p.Path}
	}
	removed := p.chunks[i]
	p.chunks = slices.Delete(p.chunks, i, i+1)
	return removed, nil
}

// Size returns the number of bytes Bytes would produce.
func (p *PNG) Size() int {
	n := len(Signature)
	for _, c := range p.chunks {
		n += c.FrameSize()
	}
	return n
}

// WriteTo writes the signature followed by every chunk frame.
func (p *PNG) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(Signature[:])
	total := int64(n)
	if err != nil {
		return total, err
	}
	for _, c := range p.chunks {
		m, err := c.WriteTo(w)
		total += m
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Bytes returns the serialized datastream.
func (p *PNG) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(p.Size())
	_, _ = p.WriteTo(&buf) // bytes.Buffer writes cannot fail
	return buf.Bytes()
}

// ValidateStructure checks the placement rules the codec itself does not
// enforce: exactly one IHDR, first, and exactly one IEND, last.
func (p *PNG) ValidateStructure() error {
	fail := func(format string, args ...any) error {
		return &DecodeError{
			Kind:   KindInvalidStructure,
			Path:   p.Path,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	if len(p.chunks) == 0 {
		return fail("no chunks")
	}
	if first := p.chunks[0].Type(); first != TypeIHDR {
		return fail("first chunk is %s, not IHDR", first)
	}
	if last := p.chunks[len(p.chunks)-1].Type(); last != TypeIEND {
		return fail("last chunk is %s, not IEND", last)
	}

	var ihdr, iend int
	for _, c := range p.chunks {
		switch c.Type() {
		case TypeIHDR:
			ihdr++
		case TypeIEND:
			iend++
		}
	}
	if ihdr != 1 {
		return fail("%d IHDR chunks", ihdr)
	}
	if iend != 1 {
		return fail("%d IEND chunks", iend)
	}
	return nil
}

// String renders the signature and every chunk.
func (p *PNG) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PNG {\n  Signature: % X\n  Chunks: %d\n", Signature, len(p.chunks))
	for _, c := range p.chunks {
		for line := range strings.Lines(c.String()) {
			b.WriteString("  ")
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
