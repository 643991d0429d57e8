package compressor

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// gzipCompressor wraps klauspost/compress/gzip, a drop-in, faster
// replacement for compress/gzip already pulled in by the corpus
// (arloliu-mebo's go.mod) for its own blob compression.
type gzipCompressor struct{}

// GZIP is the built-in GZIP Compressor, registered under "gzip".
var GZIP Compressor = gzipCompressor{}

func (gzipCompressor) Name() string { return "gzip" }

func (gzipCompressor) WrapReader(source io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(source)
}

func (gzipCompressor) WrapWriter(sink io.Writer) (WriteCloser, error) {
	return gzip.NewWriter(sink), nil
}
