package ods_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ods "github.com/ryandw11/ODS"
)

func TestContainerAppendGetDelete(t *testing.T) {
	c := ods.NewContainer()
	require.NoError(t, c.Append(ods.NewStringTag("greeting", "hello")))
	require.NoError(t, c.Append(ods.NewIntTag("count", 3)))

	tag, found, err := c.Get("greeting")
	require.NoError(t, err)
	require.True(t, found)
	v, _ := tag.StringValue()
	assert.Equal(t, "hello", v)

	removed, err := c.Delete("count")
	require.NoError(t, err)
	assert.True(t, removed)

	found, err = c.Find("count")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestContainerSetAutoCreate(t *testing.T) {
	c := ods.NewContainer()
	// auto-creation needs at least the first key segment to resolve; a key
	// that resolves nowhere is appended at the top level instead.
	require.NoError(t, c.Append(ods.NewObjectTag("stats", nil)))
	tag := ods.NewIntTag("hp", 20)
	require.NoError(t, c.Set("stats.player.hp", &tag))

	got, found, err := c.Get("stats.player.hp")
	require.NoError(t, err)
	require.True(t, found)
	v, _ := got.IntValue()
	assert.Equal(t, int32(20), v)
}

func TestContainerSaveAndReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.ods")

	c := ods.NewContainer()
	require.NoError(t, c.Append(ods.NewStringTag("world", "overworld")))
	require.NoError(t, c.SaveAs(path))

	reopened, err := ods.OpenContainer(path)
	require.NoError(t, err)
	defer reopened.Close()

	tag, found, err := reopened.Get("world")
	require.NoError(t, err)
	require.True(t, found)
	v, _ := tag.StringValue()
	assert.Equal(t, "overworld", v)
}

func TestContainerExportTranscodes(t *testing.T) {
	c := ods.NewContainer()
	require.NoError(t, c.Append(ods.NewIntTag("a", 1)))
	require.NoError(t, c.Append(ods.NewIntTag("b", 2)))

	gzipBytes, err := c.Export("gzip")
	require.NoError(t, err)

	plainBytes, err := c.Export("identity")
	require.NoError(t, err)
	assert.NotEqual(t, gzipBytes, plainBytes)

	tags, err := ods.Decode(bytes.NewReader(plainBytes))
	require.NoError(t, err)
	require.Len(t, tags, 2)
}

func TestContainerImportFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.ods.gz")

	c := ods.NewContainer()
	require.NoError(t, c.Append(ods.NewIntTag("a", 1)))
	require.NoError(t, c.Append(ods.NewIntTag("b", 2)))

	gzipBytes, err := c.Export("gzip")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, gzipBytes, 0o644))

	other := ods.NewContainer()
	require.NoError(t, other.ImportFile(path, "gzip"))

	tags, err := other.GetAll()
	require.NoError(t, err)
	require.Len(t, tags, 2)

	// the imported container remembers gzip as its own compressor, so
	// saving it back out and reopening under the same compressor round-trips.
	savePath := filepath.Join(dir, "resaved.ods.gz")
	require.NoError(t, other.SaveAs(savePath))

	orig := ods.GetConfig()
	defer ods.OverrideConfig(orig)
	cfg := orig
	cfg.DefaultCompressor = "gzip"
	ods.OverrideConfig(cfg)

	reopened, err := ods.OpenContainer(savePath)
	require.NoError(t, err)
	defer reopened.Close()

	reopenedTags, err := reopened.GetAll()
	require.NoError(t, err)
	require.Len(t, reopenedTags, 2)
}

func TestContainerClear(t *testing.T) {
	c := ods.NewContainer()
	require.NoError(t, c.Append(ods.NewIntTag("a", 1)))
	c.Clear()

	tags, err := c.GetAll()
	require.NoError(t, err)
	assert.Len(t, tags, 0)
}

func TestContainerSaveWithoutPathFails(t *testing.T) {
	c := ods.NewContainer()
	err := c.Save()
	assert.Error(t, err)
}

func TestContainerEditAfterOpenDetachesFromMmap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "edit.ods")

	c := ods.NewContainer()
	require.NoError(t, c.Append(ods.NewIntTag("version", 1)))
	require.NoError(t, c.SaveAs(path))

	reopened, err := ods.OpenContainer(path)
	require.NoError(t, err)
	defer reopened.Close()

	newVal := ods.NewIntTag("version", 2)
	require.NoError(t, reopened.Set("version", &newVal))

	tag, found, err := reopened.Get("version")
	require.NoError(t, err)
	require.True(t, found)
	v, _ := tag.IntValue()
	assert.Equal(t, int32(2), v)

	// original file on disk is untouched until Save/SaveAs is called again.
	_, err = os.Stat(path)
	require.NoError(t, err)
}
