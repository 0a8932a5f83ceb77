package main

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/simonhull/pngme"
	"github.com/simonhull/pngme/internal/binary"
)

// Useful for damaged files: walks the chunk frames without validating
// them, so a bad CRC or type byte does not stop the listing.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: chunk-dump <file.png>")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := dumpChunks(os.Stdout, binary.NewSafeReader(f, stat.Size(), f.Name())); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func dumpChunks(w io.Writer, sr *binary.SafeReader) error {
	sig := make([]byte, len(pngme.Signature))
	if err := sr.ReadAt(sig, 0, "signature"); err != nil {
		return err
	}
	if [8]byte(sig) != pngme.Signature {
		fmt.Fprintf(w, "signature % X (not PNG)\n", sig)
	}

	r := binary.NewReader(sr, int64(len(sig)))
	for r.Remaining() > 0 {
		offset := r.Offset()
		if r.Remaining() < pngme.FrameOverhead {
			fmt.Fprintf(w, "%d trailing bytes at offset %d\n", r.Remaining(), offset)
			return nil
		}

		length, err := binary.ReadValue[uint32](r, "chunk length")
		if err != nil {
			return err
		}
		typ, err := r.ReadBytes(4, "chunk type")
		if err != nil {
			return err
		}

		if int64(length)+4 > r.Remaining() {
			fmt.Fprintf(w, "%q (length: %d, offset: %d) truncated, %d bytes left\n",
				typ, length, offset, r.Remaining())
			return nil
		}
		data, err := r.ReadBytes(int(length), "chunk data")
		if err != nil {
			return err
		}
		stored, err := binary.ReadValue[uint32](r, "chunk CRC")
		if err != nil {
			return err
		}

		status := "ok"
		if computed := crc32.Update(crc32.ChecksumIEEE(typ), crc32.IEEETable, data); computed != stored {
			status = fmt.Sprintf("BAD (computed 0x%08x)", computed)
		}
		fmt.Fprintf(w, "%q (length: %d, offset: %d, crc: 0x%08x %s)\n", typ, length, offset, stored, status)
	}
	return nil
}
