package compressor

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Compressor is a supplemental built-in, grounded on arloliu-mebo's
// go.mod dependency on pierrec/lz4/v4 for its own blob compression.
type lz4Compressor struct{}

// LZ4 is the built-in LZ4 Compressor, registered under "lz4".
var LZ4 Compressor = lz4Compressor{}

func (lz4Compressor) Name() string { return "lz4" }

type lz4ReadCloser struct {
	*lz4.Reader
}

func (lz4ReadCloser) Close() error { return nil }

func (lz4Compressor) WrapReader(source io.Reader) (io.ReadCloser, error) {
	return lz4ReadCloser{lz4.NewReader(source)}, nil
}

func (lz4Compressor) WrapWriter(sink io.Writer) (WriteCloser, error) {
	return lz4.NewWriter(sink), nil
}
