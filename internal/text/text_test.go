package text

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/simonhull/pngme/internal/registry"
	"github.com/simonhull/pngme/internal/types"
)

func TestParseText(t *testing.T) {
	// 0xE9 is é in ISO 8859-1
	got, err := ParseText([]byte("Author\x00Ren\xe9e"))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	want := Entry{Keyword: "Author", Text: "Renée"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseText() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseText_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		contains string
	}{
		{"no separator", "Comment", "missing null separator"},
		{"empty keyword", "\x00text", "keyword length 0"},
		{"long keyword", strings.Repeat("k", 80) + "\x00x", "keyword length 80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("ParseText() error = %v, want it to contain %q", err, tt.contains)
			}
		})
	}
}

func TestParseIText(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Entry
	}{
		{
			name: "uncompressed",
			data: "Title\x00\x00\x00de\x00Titel\x00Grüße",
			want: Entry{Keyword: "Title", Language: "de", Translated: "Titel", Text: "Grüße"},
		},
		{
			name: "compressed",
			data: "Comment\x00\x01\x00\x00\x00\x78\x9c",
			want: Entry{Keyword: "Comment", Compressed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIText([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseIText: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseIText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseIText_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no separator", "Title"},
		{"truncated flags", "Title\x00\x00"},
		{"bad flag", "Title\x00\x02\x00\x00\x00x"},
		{"bad method", "Title\x00\x01\x05\x00\x00x"},
		{"no language end", "Title\x00\x00\x00en"},
		{"no translated end", "Title\x00\x00\x00en\x00Titel"},
		{"bad utf8 text", "Title\x00\x00\x00\x00\x00\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseIText([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDescribersRegistered(t *testing.T) {
	c := types.NewChunk(types.MustParseChunkType("tEXt"), []byte("Software\x00pngme"))
	d := registry.Get(c.Type())
	if d == nil {
		t.Fatal("tEXt describer not registered")
	}
	fields, err := d.Describe(c)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]registry.Field{{Name: "Software", Value: "pngme"}}, fields); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}

	c = types.NewChunk(types.MustParseChunkType("iTXt"), []byte("Comment\x00\x01\x00en\x00\x00zz"))
	fields, err = registry.Get(c.Type()).Describe(c)
	if err != nil {
		t.Fatal(err)
	}
	want := []registry.Field{
		{Name: "Comment", Value: "(compressed)"},
		{Name: "language", Value: "en"},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}
