package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/simonhull/pngme"
	"github.com/simonhull/pngme/internal/binary"
)

func sample(t *testing.T) []byte {
	t.Helper()
	ruSt, err := pngme.ParseChunkType("ruSt")
	if err != nil {
		t.Fatal(err)
	}
	return pngme.FromChunks(
		pngme.NewChunk(ruSt, []byte("hello")),
		pngme.NewChunk(pngme.TypeIEND, nil),
	).Bytes()
}

func dump(t *testing.T, data []byte) string {
	t.Helper()
	var out bytes.Buffer
	if err := dumpChunks(&out, binary.NewBytesReader(data, "test.png")); err != nil {
		t.Fatalf("dumpChunks: %v", err)
	}
	return out.String()
}

func TestDumpChunks(t *testing.T) {
	got := dump(t, sample(t))
	want := `"ruSt" (length: 5, offset: 8, crc: 0x`
	if !strings.HasPrefix(got, want) {
		t.Errorf("output = %q, want prefix %q", got, want)
	}
	if strings.Count(got, " ok)") != 2 {
		t.Errorf("expected two valid chunks:\n%s", got)
	}
}

func TestDumpChunks_KeepsGoingPastBadCRC(t *testing.T) {
	data := sample(t)
	data[8+8] ^= 0xFF // first data byte of ruSt

	got := dump(t, data)
	if !strings.Contains(got, "BAD (computed") {
		t.Errorf("corrupt chunk not flagged:\n%s", got)
	}
	if !strings.Contains(got, `"IEND"`) {
		t.Errorf("dump stopped at the corrupt chunk:\n%s", got)
	}
}

func TestDumpChunks_Truncated(t *testing.T) {
	data := sample(t)

	tests := []struct {
		name string
		cut  int
		want string
	}{
		{"inside data", 8 + 14, "truncated"},
		{"short tail", len(data) - 3, "trailing bytes at offset 25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dump(t, data[:tt.cut]); !strings.Contains(got, tt.want) {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}
