package pngme

import (
	"strings"

	_ "github.com/simonhull/pngme/internal/ihdr" // Register IHDR describer
	"github.com/simonhull/pngme/internal/registry"
	_ "github.com/simonhull/pngme/internal/text" // Register tEXt/iTXt describers
)

// Field is an alias to registry.Field.
type Field = registry.Field

// Describe decodes the payload of well-known chunk types (IHDR, tEXt,
// iTXt) into display fields. ok is false when no describer exists for
// the chunk's type; err reports a malformed payload.
func Describe(c Chunk) (fields []Field, ok bool, err error) {
	d := registry.Get(c.Type())
	if d == nil {
		return nil, false, nil
	}
	fields, err = d.Describe(c)
	return fields, true, err
}

// Flags renders the property bits of t as a comma-separated list,
// for example "ancillary,private,safe-to-copy".
func Flags(t ChunkType) string {
	flags := make([]string, 0, 4)
	if t.IsCritical() {
		flags = append(flags, "critical")
	} else {
		flags = append(flags, "ancillary")
	}
	if t.IsPublic() {
		flags = append(flags, "public")
	} else {
		flags = append(flags, "private")
	}
	if !t.IsReservedBitValid() {
		flags = append(flags, "reserved")
	}
	if t.IsSafeToCopy() {
		flags = append(flags, "safe-to-copy")
	} else {
		flags = append(flags, "unsafe-to-copy")
	}
	return strings.Join(flags, ",")
}
