// Package pngme reads, edits, and writes the chunk structure of PNG files.
//
// It is built for hiding short messages in private ancillary chunks: a
// message goes into its own chunk, the rest of the image is left byte for
// byte as it was, and any PNG viewer keeps displaying the picture.
//
// # Quick Start
//
// Hide a message:
//
//	png, err := pngme.Open("cat.png")
//	if err != nil {
//		log.Fatal(err)
//	}
//	t, _ := pngme.ParseChunkType("ruSt")
//	c, err := pngme.NewCheckedChunk(t, []byte("meet at noon"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	png.AppendChunk(c)
//	if err := png.Save(); err != nil {
//		log.Fatal(err)
//	}
//
// Read it back:
//
//	if c, ok := png.ChunkByType("ruSt"); ok {
//		msg, err := c.DataString()
//		...
//	}
//
// # Architecture
//
//	[PNG]             - Signature + ordered chunk sequence (Parse, Open)
//	  └─ [Chunk]      - Length, type, data, CRC-32 frame
//	       └─ [ChunkType] - 4 letters with property bits
//
// Chunk and ChunkType live in an internal package and are re-exported here.
// The codec is pure: Parse and Bytes work on in-memory buffers, and
// Bytes(Parse(b)) == b for every b that parses.
//
// # Error Handling
//
// Every failure is a *DecodeError whose Kind says what went wrong.
// Branch with errors.Is against the Err* sentinels:
//
//	png, err := pngme.Open("cat.png")
//	switch {
//	case errors.Is(err, pngme.ErrBadSignature):
//		// not a PNG
//	case errors.Is(err, pngme.ErrCRCMismatch):
//		// corrupt chunk; errors.As gives the offset
//	}
//
// Malformed input never panics.
//
// # Validation
//
// Chunks decoded from bytes must have the reserved bit of their type clear.
// NewChunk does not check this, so programs can build any chunk they need;
// NewCheckedChunk applies the decoder's rules and is what the pngme command
// uses for user-supplied types.
package pngme
