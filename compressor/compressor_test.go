package compressor_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryandw11/ODS/compressor"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"identity", "gzip", "zlib", "zstd", "lz4"} {
		_, ok := compressor.Lookup(name)
		assert.True(t, ok, "expected %q to be registered", name)
	}
}

func TestRoundTrip(t *testing.T) {
	payload := []byte("This is an example string! This is an example string! This is an example string!")

	testCases := []struct {
		name string
		c    compressor.Compressor
	}{
		{"identity", compressor.Identity},
		{"gzip", compressor.GZIP},
		{"zlib", compressor.Zlib},
		{"zstd", compressor.Zstd},
		{"lz4", compressor.LZ4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w, err := tc.c.WrapWriter(&buf)
			require.NoError(t, err)
			_, err = w.Write(payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := tc.c.WrapReader(&buf)
			require.NoError(t, err)
			defer r.Close()
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
		})
	}
}

func TestReregisterAndLookup(t *testing.T) {
	compressor.Register(compressor.Identity) // re-registering is idempotent
	_, ok := compressor.Lookup("identity")
	assert.True(t, ok)

	_, ok = compressor.Lookup("does-not-exist")
	assert.False(t, ok)
}
