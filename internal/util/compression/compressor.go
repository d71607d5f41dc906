// Package compression wraps the codecs used for document blobs stored in
// the database.
package compression

type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}
