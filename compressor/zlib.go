package compressor

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibCompressor implements the DEFLATE/ZLIB built-in named in spec.md
// §4.5, via klauspost/compress/zlib (same family as the gzip built-in).
type zlibCompressor struct{}

// Zlib is the built-in DEFLATE/ZLIB Compressor, registered under "zlib".
var Zlib Compressor = zlibCompressor{}

func (zlibCompressor) Name() string { return "zlib" }

func (zlibCompressor) WrapReader(source io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(source)
}

func (zlibCompressor) WrapWriter(sink io.Writer) (WriteCloser, error) {
	return zlib.NewWriter(sink), nil
}
