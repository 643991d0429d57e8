package compressor

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// zstdCompressor is a supplemental built-in beyond spec.md's minimum
// (identity/GZIP/DEFLATE): spec.md's Non-goals never exclude additional
// compressors, and arloliu-mebo's go.mod grounds zstd as a real
// ecosystem choice for this corpus. klauspost/compress/zstd is used
// (pure Go, no cgo) rather than valyala/gozstd to keep the module
// cgo-free like the rest of the stack.
type zstdCompressor struct{}

// Zstd is the built-in Zstandard Compressor, registered under "zstd".
var Zstd Compressor = zstdCompressor{}

func (zstdCompressor) Name() string { return "zstd" }

// zstdReadCloser adapts *zstd.Decoder's Close() (no error) to io.Closer.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func (zstdCompressor) WrapReader(source io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(source)
	if err != nil {
		return nil, err
	}
	return zstdReadCloser{dec}, nil
}

func (zstdCompressor) WrapWriter(sink io.Writer) (WriteCloser, error) {
	return zstd.NewWriter(sink)
}
