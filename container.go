package ods

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/ryandw11/ODS/compressor"
	"github.com/ryandw11/ODS/internal/atomicfile"
)

// Container is the file-or-buffer-backed facade over the navigator and
// editor: it owns a single encoded byte image (the concatenation of its
// top-level tags) and offers keyed access and in-place edits over it
// without the caller ever touching scout frames or splice math directly.
//
// A zero Container is ready to use as an empty, in-memory container.
type Container struct {
	buf            []byte
	path           string
	ra             *mmap.ReaderAt
	compressorName string
}

// NewContainer returns an empty, purely in-memory container, associated
// with the "identity" compressor until SaveAs or ImportFile says
// otherwise.
func NewContainer() *Container {
	return &Container{compressorName: "identity"}
}

// compressor resolves the container's active Compressor, defaulting to
// "identity" for containers that predate any compressor association.
func (c *Container) compressor() (compressor.Compressor, error) {
	name := c.compressorName
	if name == "" {
		name = "identity"
	}
	comp, ok := LookupCompressor(name)
	if !ok {
		return nil, UnknownCompressorErrorf("no compressor registered under name %q", name)
	}
	return comp, nil
}

// OpenContainer opens the file at path as a Container, using the
// compressor named by Config.DefaultCompressor. When that compressor is
// "identity", the file is memory-mapped rather than read wholesale, so a
// large container never needs to fit in the process's working set just
// to be opened (spec.md §6's file-container requirement). The first read
// or edit copies the whole mapping into a heap buffer, and the navigator
// and editor work on that copy, not on the mapping itself. Any other
// default compressor requires the whole file to be read through it up
// front. The resolved compressor is remembered so a later Save/SaveAs
// writes the file back out the same way it was read (spec.md §4.6).
func OpenContainer(path string) (*Container, error) {
	cfg := GetConfig()
	compressorName := cfg.DefaultCompressor
	if compressorName == "" {
		compressorName = "identity"
	}

	if compressorName == "identity" {
		ra, err := mmap.Open(path)
		if err != nil {
			return nil, IOErrorf(err, "mmap open %s", path)
		}
		return &Container{path: path, ra: ra, compressorName: compressorName}, nil
	}

	c, ok := LookupCompressor(compressorName)
	if !ok {
		return nil, UnknownCompressorErrorf("no compressor registered under name %q", compressorName)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, IOErrorf(err, "open %s", path)
	}
	defer f.Close()
	rc, err := c.WrapReader(f)
	if err != nil {
		return nil, IOErrorf(err, "wrap compressor reader for %q", compressorName)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, IOErrorf(err, "decompress container %s", path)
	}
	return &Container{path: path, buf: raw, compressorName: compressorName}, nil
}

// bytes returns the container's current byte image, materializing it
// out of the mmap'd region on first access after OpenContainer.
func (c *Container) bytes() []byte {
	if c.buf != nil {
		return c.buf
	}
	if c.ra == nil {
		return nil
	}
	buf := make([]byte, c.ra.Len())
	// ReaderAt.ReadAt over the full length never returns io.EOF for a
	// correctly sized destination, matching the teacher's bulk-ReadAt
	// idiom in reader.go's whole-element slurp path.
	if _, err := c.ra.ReadAt(buf, 0); err != nil && err != io.EOF {
		Logger.Error().Err(err).Str("path", c.path).Msg("read mmap'd container")
		return nil
	}
	c.buf = buf
	return c.buf
}

// detach copies out of the mmap'd region (if any) into an owned buffer,
// so that subsequent edits never write through a read-only mapping.
func (c *Container) detach() {
	if c.ra != nil {
		c.buf = c.bytes()
		c.ra.Close()
		c.ra = nil
	}
}

// Find reports whether key resolves to a tag in the container.
func (c *Container) Find(key string) (bool, error) {
	return Find(c.bytes(), key)
}

// Get resolves key to a materialized Tag.
func (c *Container) Get(key string) (Tag, bool, error) {
	return Get(c.bytes(), key)
}

// GetAll returns every top-level tag in the container, in wire order.
func (c *Container) GetAll() ([]Tag, error) {
	return Decode(bytes.NewReader(c.bytes()))
}

// Append adds tag as a new top-level tag, after any existing ones.
func (c *Container) Append(tag Tag) error {
	return c.AppendAll([]Tag{tag})
}

// AppendAll adds tags as new top-level tags, in order, after any
// existing ones.
func (c *Container) AppendAll(tags []Tag) error {
	c.detach()
	var encoded bytes.Buffer
	for _, t := range tags {
		if _, err := WriteTag(&encoded, t); err != nil {
			return err
		}
	}
	c.buf = append(c.buf, encoded.Bytes()...)
	return nil
}

// Delete removes the tag at key. The bool result is true when a tag was
// actually removed.
func (c *Container) Delete(key string) (bool, error) {
	c.detach()
	out, removed, err := Delete(c.buf, key)
	if err != nil {
		return false, err
	}
	c.buf = out
	return removed, nil
}

// Replace overwrites the tag at key with newTag. The bool result is true
// when a tag was actually replaced.
func (c *Container) Replace(key string, newTag Tag) (bool, error) {
	c.detach()
	out, replaced, err := Replace(c.buf, key, newTag)
	if err != nil {
		return false, err
	}
	c.buf = out
	return replaced, nil
}

// Set applies the unified editor entry point to the container in place
// (spec.md §4.4).
func (c *Container) Set(key string, tag *Tag) error {
	c.detach()
	out, err := Set(c.buf, key, tag)
	if err != nil {
		return err
	}
	c.buf = out
	return nil
}

// Clear discards every top-level tag, leaving an empty container.
func (c *Container) Clear() {
	c.detach()
	c.buf = c.buf[:0]
}

// Export re-emits the container's current tags wrapped in compressorName
// rather than whatever compressor the container is currently associated
// with (spec.md §4.6, "decompress with the current compressor, re-emit
// with another; used for bulk transcoding"). It does not mutate the
// container or its compressor association.
func (c *Container) Export(compressorName string) ([]byte, error) {
	comp, ok := LookupCompressor(compressorName)
	if !ok {
		return nil, UnknownCompressorErrorf("no compressor registered under name %q", compressorName)
	}
	var out bytes.Buffer
	w, err := comp.WrapWriter(&out)
	if err != nil {
		return nil, IOErrorf(err, "wrap compressor writer for %q", compressorName)
	}
	if _, err := w.Write(c.bytes()); err != nil {
		return nil, IOErrorf(err, "write exported container body")
	}
	if err := w.Close(); err != nil {
		return nil, IOErrorf(err, "finalize exported container")
	}
	return out.Bytes(), nil
}

// ImportFile replaces the container's contents by reading path through
// compressorName and decoding the resulting tag stream, the inverse of
// Export (spec.md §4.6). The container adopts path and compressorName as
// its own for future Save/SaveAs calls.
func (c *Container) ImportFile(path, compressorName string) error {
	comp, ok := LookupCompressor(compressorName)
	if !ok {
		return UnknownCompressorErrorf("no compressor registered under name %q", compressorName)
	}
	f, err := os.Open(path)
	if err != nil {
		return IOErrorf(err, "open %s", path)
	}
	defer f.Close()
	rc, err := comp.WrapReader(f)
	if err != nil {
		return IOErrorf(err, "wrap compressor reader for %q", compressorName)
	}
	defer rc.Close()
	tags, err := Decode(rc)
	if err != nil {
		return err
	}

	c.detach()
	var encoded bytes.Buffer
	for _, t := range tags {
		if _, err := WriteTag(&encoded, t); err != nil {
			return err
		}
	}
	c.buf = encoded.Bytes()
	c.path = path
	c.compressorName = compressorName
	return nil
}

// Save persists the container back to the path it was opened from,
// using a sibling-file-write-then-rename so a crash mid-write never
// leaves a truncated file at that path (spec.md §6.2). It fails if the
// container was never associated with a path; use SaveAs instead.
func (c *Container) Save() error {
	if c.path == "" {
		return IOErrorf(os.ErrInvalid, "container has no associated path; use SaveAs")
	}
	return c.SaveAs(c.path)
}

// SaveAs persists the container to path, wrapped in the compressor it is
// currently associated with ("identity" unless it was opened or imported
// through another one), so a subsequent OpenContainer/ImportFile using
// that same compressor reads back exactly what was written (spec.md
// §4.6's decompress-edit-recompress cycle). It adopts path as its path
// for future Save calls, and detaches from any mmap'd source file (so
// the source and destination may safely be the same path).
func (c *Container) SaveAs(path string) error {
	comp, err := c.compressor()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	w, err := comp.WrapWriter(&out)
	if err != nil {
		return IOErrorf(err, "wrap compressor writer for %q", c.compressorName)
	}
	if _, err := w.Write(c.bytes()); err != nil {
		return IOErrorf(err, "write container body")
	}
	if err := w.Close(); err != nil {
		return IOErrorf(err, "finalize compressed container")
	}
	if err := atomicfile.Write(path, out.Bytes(), 0o644); err != nil {
		return IOErrorf(err, "save container to %s", path)
	}
	c.detach()
	c.path = path
	return nil
}

// Close releases the container's memory-mapped file handle, if any. It
// is a no-op for purely in-memory or already-detached containers.
func (c *Container) Close() error {
	if c.ra == nil {
		return nil
	}
	err := c.ra.Close()
	c.ra = nil
	return err
}
