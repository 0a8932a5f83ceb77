// Package types provides the PNG chunk codec: chunk type codes, chunk
// frames, and the error taxonomy shared by every decoding path.
//
// The root pngme package re-exports these types; the container and file
// handling live there.
package types
