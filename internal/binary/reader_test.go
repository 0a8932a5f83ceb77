package binary

import (
	"encoding/binary"
	"io"
	"strings"
	"testing"
)

// mockReader implements io.ReaderAt for testing.
type mockReader struct {
	data []byte
}

func (m *mockReader) ReadAt(p []byte, off int64) (n int, err error) {
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestSafeReader_ReadAt_Success(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4E, 0x47}
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.png")

	buf := make([]byte, 2)
	err := sr.ReadAt(buf, 0, "signature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf[0] != 0x89 || buf[1] != 0x50 {
		t.Errorf("expected [0x89, 0x50], got [0x%02x, 0x%02x]", buf[0], buf[1])
	}
}

func TestSafeReader_ReadAt_OutOfBounds(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewBytesReader(data, "test.png")

	tests := []struct {
		name     string
		off      int64
		n        int
		contains []string
	}{
		{
			name:     "offset beyond size",
			off:      10,
			n:        2,
			contains: []string{"test.png", "offset 10 out of bounds", "chunk length"},
		},
		{
			name:     "read crosses end",
			off:      2,
			n:        4,
			contains: []string{"test.png", "read of 4 bytes at offset 2", "exceed size 4", "chunk length"},
		},
		{
			name:     "negative offset",
			off:      -1,
			n:        1,
			contains: []string{"out of bounds"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sr.ReadAt(make([]byte, tt.n), tt.off, "chunk length")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			for _, substr := range tt.contains {
				if !strings.Contains(err.Error(), substr) {
					t.Errorf("error %q should contain %q", err.Error(), substr)
				}
			}
		})
	}
}

func TestSafeReader_ReadAt_Empty(t *testing.T) {
	sr := NewBytesReader(nil, "empty")
	if err := sr.ReadAt(nil, 0, "nothing"); err != nil {
		t.Errorf("zero-length read should succeed, got %v", err)
	}
}

func TestRead_BigEndian(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, 0x123456789ABCDEF0)
	sr := NewBytesReader(data, "test.png")

	tests := []struct {
		name     string
		readFunc func() (uint64, error)
		want     uint64
	}{
		{
			name: "uint8",
			want: 0x12,
			readFunc: func() (uint64, error) {
				v, err := Read[uint8](sr, 0, "byte")
				return uint64(v), err
			},
		},
		{
			name: "uint16",
			want: 0x1234,
			readFunc: func() (uint64, error) {
				v, err := Read[uint16](sr, 0, "word")
				return uint64(v), err
			},
		},
		{
			name: "uint32",
			want: 0x9ABCDEF0,
			readFunc: func() (uint64, error) {
				v, err := Read[uint32](sr, 4, "chunk CRC")
				return uint64(v), err
			},
		},
		{
			name: "uint64",
			want: 0x123456789ABCDEF0,
			readFunc: func() (uint64, error) {
				v, err := Read[uint64](sr, 0, "signature")
				return uint64(v), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.readFunc()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Read() = 0x%x, want 0x%x", got, tt.want)
			}
		})
	}
}

func TestReader_Sequential(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R', 0x01}
	r := NewReader(NewBytesReader(data, "test.png"), 0)

	length, err := ReadValue[uint32](r, "chunk length")
	if err != nil {
		t.Fatalf("read length failed: %v", err)
	}
	if length != 13 {
		t.Errorf("expected length 13, got %d", length)
	}

	typ, err := r.ReadBytes(4, "chunk type")
	if err != nil {
		t.Fatalf("read type failed: %v", err)
	}
	if string(typ) != "IHDR" {
		t.Errorf("expected IHDR, got %q", typ)
	}

	if r.Offset() != 8 {
		t.Errorf("expected offset 8, got %d", r.Offset())
	}
	if r.Remaining() != 1 {
		t.Errorf("expected 1 remaining byte, got %d", r.Remaining())
	}
}

func TestReader_ReadBytes(t *testing.T) {
	data := []byte("Hello, World!")
	r := NewReader(NewBytesReader(data, "test.png"), 7)

	b, err := r.ReadBytes(5, "greeting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != "World" {
		t.Errorf("expected 'World', got %q", b)
	}

	// the returned slice must not alias the source
	b[0] = 'X'
	if data[7] != 'W' {
		t.Error("ReadBytes returned a slice sharing memory with the source")
	}

	if _, err := r.ReadBytes(5, "past end"); err == nil {
		t.Error("expected error reading past end")
	}
	if r.Offset() != 12 {
		t.Errorf("failed read must not advance offset, got %d", r.Offset())
	}
}

func TestReader_Remaining(t *testing.T) {
	r := NewReader(NewBytesReader(make([]byte, 100), "test.png"), 90)

	if r.Remaining() != 10 {
		t.Errorf("expected 10 remaining, got %d", r.Remaining())
	}
	if _, err := r.ReadBytes(10, "tail"); err != nil {
		t.Fatal(err)
	}
	if r.Remaining() != 0 {
		t.Errorf("expected 0 remaining at end, got %d", r.Remaining())
	}
}

func TestChainReader_Success(t *testing.T) {
	data := []byte{0x00, 0x00, 0x01, 0x00, 0x08, 0x06}
	cr := NewChainReader(NewReader(NewBytesReader(data, "test.png"), 0))

	width := ReadChained[uint32](cr, "width")
	depth := ReadChained[uint8](cr, "bit depth")
	color := ReadChained[uint8](cr, "color type")

	if err := cr.Error(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if width != 256 || depth != 8 || color != 6 {
		t.Errorf("unexpected values: %d %d %d", width, depth, color)
	}
}

func TestChainReader_ErrorAccumulation(t *testing.T) {
	data := []byte{0x01, 0x02}
	cr := NewChainReader(NewReader(NewBytesReader(data, "test.png"), 0))

	_ = ReadChained[uint8](cr, "first")  // OK
	_ = ReadChained[uint8](cr, "second") // OK
	_ = ReadChained[uint8](cr, "third")  // Error - out of bounds

	if cr.Error() == nil {
		t.Fatal("expected error, got nil")
	}
	first := cr.Error()

	// Once error occurs, subsequent reads should not execute
	if v := ReadChained[uint32](cr, "fourth"); v != 0 {
		t.Errorf("expected zero value after error, got %d", v)
	}
	if cr.Error() != first {
		t.Errorf("error should persist unchanged, got %v", cr.Error())
	}
}

func BenchmarkRead_Uint32(b *testing.B) {
	data := make([]byte, 1024*1024) // 1MB
	for i := 0; i < len(data); i += 4 {
		binary.BigEndian.PutUint32(data[i:], uint32(i))
	}
	sr := NewBytesReader(data, "bench.png")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		offset := int64((i % (len(data) / 4)) * 4)
		_, _ = Read[uint32](sr, offset, "benchmark")
	}
}
