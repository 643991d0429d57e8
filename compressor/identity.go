package compressor

import "io"

// identityCompressor is the no-op Compressor: WrapReader/WrapWriter
// return source/sink unchanged, wrapped only to satisfy the interface's
// Close requirement. No third-party library has a role here — there is
// nothing to compress, so nothing to delegate.
type identityCompressor struct{}

// Identity is the built-in no-op Compressor, registered under "identity".
var Identity Compressor = identityCompressor{}

func (identityCompressor) Name() string { return "identity" }

type identityReadCloser struct {
	io.Reader
}

func (identityReadCloser) Close() error { return nil }

func (identityCompressor) WrapReader(source io.Reader) (io.ReadCloser, error) {
	return identityReadCloser{source}, nil
}

type identityWriteCloser struct {
	io.Writer
}

func (identityWriteCloser) Close() error { return nil }

func (identityCompressor) WrapWriter(sink io.Writer) (WriteCloser, error) {
	return identityWriteCloser{sink}, nil
}
