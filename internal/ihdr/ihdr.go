// Package ihdr decodes the fields of a PNG image header chunk.
//
// Only the 13 header bytes are interpreted; pixel data is never touched.
package ihdr

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/simonhull/pngme/internal/binary"
	"github.com/simonhull/pngme/internal/registry"
	"github.com/simonhull/pngme/internal/types"
)

// Size is the fixed length of IHDR data.
const Size = 13

// Type is the IHDR chunk type.
var Type = types.MustParseChunkType("IHDR")

// allowed bit depths per color type
var depthsByColorType = map[uint8][]uint8{
	0: {1, 2, 4, 8, 16},
	2: {8, 16},
	3: {1, 2, 4, 8},
	4: {8, 16},
	6: {8, 16},
}

var colorTypeNames = map[uint8]string{
	0: "greyscale",
	2: "truecolour",
	3: "indexed",
	4: "greyscale+alpha",
	6: "truecolour+alpha",
}

// Header holds the decoded IHDR fields.
type Header struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColorType   uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// Parse decodes IHDR data and checks the field ranges.
func Parse(data []byte) (Header, error) {
	if len(data) != Size {
		return Header{}, fmt.Errorf("invalid IHDR length: got %d, expected %d", len(data), Size)
	}

	cr := binary.NewChainReader(binary.NewReader(binary.NewBytesReader(data, "IHDR data"), 0))
	h := Header{
		Width:       binary.ReadChained[uint32](cr, "width"),
		Height:      binary.ReadChained[uint32](cr, "height"),
		BitDepth:    binary.ReadChained[uint8](cr, "bit depth"),
		ColorType:   binary.ReadChained[uint8](cr, "color type"),
		Compression: binary.ReadChained[uint8](cr, "compression method"),
		Filter:      binary.ReadChained[uint8](cr, "filter method"),
		Interlace:   binary.ReadChained[uint8](cr, "interlace method"),
	}
	if err := cr.Error(); err != nil {
		return Header{}, err
	}

	// dimensions are PNG four-byte unsigned integers: 1..2^31-1
	if h.Width == 0 || h.Width > 1<<31-1 {
		return Header{}, fmt.Errorf("invalid width %d", h.Width)
	}
	if h.Height == 0 || h.Height > 1<<31-1 {
		return Header{}, fmt.Errorf("invalid height %d", h.Height)
	}

	depths, ok := depthsByColorType[h.ColorType]
	if !ok {
		return Header{}, fmt.Errorf("invalid color type %d", h.ColorType)
	}
	if !slices.Contains(depths, h.BitDepth) {
		return Header{}, fmt.Errorf("bit depth %d not allowed for color type %d (allowed: %v)",
			h.BitDepth, h.ColorType, depths)
	}
	if h.Interlace > 1 {
		return Header{}, fmt.Errorf("invalid interlace method %d", h.Interlace)
	}

	return h, nil
}

// ColorTypeName returns a readable name for the color type.
func (h Header) ColorTypeName() string {
	return colorTypeNames[h.ColorType]
}

type describer struct{}

func (describer) Describe(c types.Chunk) ([]registry.Field, error) {
	h, err := Parse(c.Data())
	if err != nil {
		return nil, err
	}
	interlace := "none"
	if h.Interlace == 1 {
		interlace = "Adam7"
	}
	return []registry.Field{
		{Name: "size", Value: fmt.Sprintf("%dx%d", h.Width, h.Height)},
		{Name: "bit depth", Value: strconv.Itoa(int(h.BitDepth))},
		{Name: "color type", Value: fmt.Sprintf("%d (%s)", h.ColorType, h.ColorTypeName())},
		{Name: "interlace", Value: interlace},
	}, nil
}

// init registers the IHDR describer
func init() {
	registry.Register(Type, describer{})
}
