// Package text decodes PNG textual chunks (tEXt and iTXt).
//
// tEXt payloads are ISO 8859-1; iTXt payloads are UTF-8. Compressed iTXt
// text is reported as such and left undecoded.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/simonhull/pngme/internal/registry"
	"github.com/simonhull/pngme/internal/types"
)

// Chunk types handled by this package.
var (
	TypeText  = types.MustParseChunkType("tEXt")
	TypeIText = types.MustParseChunkType("iTXt")
)

// maxKeywordLength is the PNG limit on keyword length.
const maxKeywordLength = 79

var errNoSeparator = errors.New("missing null separator")

// Entry is a decoded textual chunk.
type Entry struct {
	Keyword    string
	Text       string
	Language   string // iTXt only
	Translated string // iTXt only, translated keyword
	Compressed bool   // iTXt only; Text is empty when set
}

// ParseText decodes a tEXt payload.
func ParseText(data []byte) (Entry, error) {
	rawKey, rawText, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return Entry{}, fmt.Errorf("tEXt: %w", errNoSeparator)
	}
	if err := checkKeyword(rawKey); err != nil {
		return Entry{}, fmt.Errorf("tEXt: %w", err)
	}

	dec := charmap.ISO8859_1.NewDecoder()
	key, err := dec.Bytes(rawKey)
	if err != nil {
		return Entry{}, fmt.Errorf("tEXt keyword: %w", err)
	}
	text, err := dec.Bytes(rawText)
	if err != nil {
		return Entry{}, fmt.Errorf("tEXt text: %w", err)
	}
	return Entry{Keyword: string(key), Text: string(text)}, nil
}

// ParseIText decodes an iTXt payload:
// keyword 0 flag method language 0 translated-keyword 0 text.
func ParseIText(data []byte) (Entry, error) {
	rawKey, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return Entry{}, fmt.Errorf("iTXt: %w", errNoSeparator)
	}
	if err := checkKeyword(rawKey); err != nil {
		return Entry{}, fmt.Errorf("iTXt: %w", err)
	}
	if len(rest) < 2 {
		return Entry{}, fmt.Errorf("iTXt: truncated compression fields")
	}
	flag, method := rest[0], rest[1]
	if flag > 1 {
		return Entry{}, fmt.Errorf("iTXt: invalid compression flag %d", flag)
	}
	if flag == 1 && method != 0 {
		return Entry{}, fmt.Errorf("iTXt: unknown compression method %d", method)
	}

	lang, rest, ok := bytes.Cut(rest[2:], []byte{0})
	if !ok {
		return Entry{}, fmt.Errorf("iTXt language tag: %w", errNoSeparator)
	}
	translated, body, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return Entry{}, fmt.Errorf("iTXt translated keyword: %w", errNoSeparator)
	}
	if !utf8.Valid(translated) {
		return Entry{}, fmt.Errorf("iTXt: translated keyword is not valid UTF-8")
	}

	key, err := charmap.ISO8859_1.NewDecoder().Bytes(rawKey)
	if err != nil {
		return Entry{}, fmt.Errorf("iTXt keyword: %w", err)
	}
	e := Entry{
		Keyword:    string(key),
		Language:   string(lang),
		Translated: string(translated),
		Compressed: flag == 1,
	}
	if !e.Compressed {
		if !utf8.Valid(body) {
			return Entry{}, fmt.Errorf("iTXt: text is not valid UTF-8")
		}
		e.Text = string(body)
	}
	return e, nil
}

func checkKeyword(key []byte) error {
	if len(key) == 0 || len(key) > maxKeywordLength {
		return fmt.Errorf("keyword length %d outside 1..%d", len(key), maxKeywordLength)
	}
	return nil
}

func describeText(c types.Chunk) ([]registry.Field, error) {
	e, err := ParseText(c.Data())
	if err != nil {
		return nil, err
	}
	return []registry.Field{{Name: e.Keyword, Value: e.Text}}, nil
}

func describeIText(c types.Chunk) ([]registry.Field, error) {
	e, err := ParseIText(c.Data())
	if err != nil {
		return nil, err
	}
	value := e.Text
	if e.Compressed {
		value = "(compressed)"
	}
	fields := []registry.Field{{Name: e.Keyword, Value: value}}
	if e.Language != "" {
		fields = append(fields, registry.Field{Name: "language", Value: e.Language})
	}
	return fields, nil
}

func init() {
	registry.Register(TypeText, registry.DescriberFunc(describeText))
	registry.Register(TypeIText, registry.DescriberFunc(describeIText))
}
