// Package registry maps chunk types to the describers that render their
// payloads for inspection.
package registry

import (
	"github.com/simonhull/pngme/internal/types"
)

// Field is one named value extracted from a chunk payload.
type Field struct {
	Name  string
	Value string
}

// Describer is the interface chunk describers implement.
type Describer interface {
	// Describe decodes the payload of c into display fields.
	// It must not modify c and must return an error, not panic, on
	// malformed data.
	Describe(c types.Chunk) ([]Field, error)
}

// DescriberFunc adapts a function to the Describer interface.
type DescriberFunc func(c types.Chunk) ([]Field, error)

// Describe calls f(c).
func (f DescriberFunc) Describe(c types.Chunk) ([]Field, error) {
	return f(c)
}

// describers maps chunk types to their describers.
var describers = make(map[types.ChunkType]Describer)

// Register registers a describer for a chunk type.
// This is called by describer packages during initialization (init functions).
func Register(t types.ChunkType, d Describer) {
	describers[t] = d
}

// Get returns the describer for a chunk type.
// Returns nil if no describer is registered for the type.
func Get(t types.ChunkType) Describer {
	return describers[t]
}
