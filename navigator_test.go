package ods_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ods "github.com/ryandw11/ODS"
)

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func encodeTags(t *testing.T, tags ...ods.Tag) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, tag := range tags {
		_, err := ods.WriteTag(&buf, tag)
		require.NoError(t, err)
	}
	return buf.Bytes()
}

func sampleContainer(t *testing.T) []byte {
	t.Helper()
	return encodeTags(t,
		ods.NewObjectTag("player", []ods.Tag{
			ods.NewStringTag("name", "Steve"),
			ods.NewObjectTag("position", []ods.Tag{
				ods.NewDoubleTag("x", 1.5),
				ods.NewDoubleTag("y", 64),
				ods.NewDoubleTag("z", -3.5),
			}),
		}),
		ods.NewIntTag("version", 3),
	)
}

func TestFindTopLevel(t *testing.T) {
	buf := sampleContainer(t)
	found, err := ods.Find(buf, "version")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = ods.Find(buf, "nonexistent")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindNested(t *testing.T) {
	buf := sampleContainer(t)
	found, err := ods.Find(buf, "player.position.x")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = ods.Find(buf, "player.position.w")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindEmptyKeyAlwaysResolves(t *testing.T) {
	buf := sampleContainer(t)
	found, err := ods.Find(buf, "")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestGetNested(t *testing.T) {
	buf := sampleContainer(t)
	tag, found, err := ods.Get(buf, "player.position.y")
	require.NoError(t, err)
	require.True(t, found)
	v, ok := tag.DoubleValue()
	require.True(t, ok)
	assert.Equal(t, 64.0, v)
}

func TestGetAbsentKey(t *testing.T) {
	buf := sampleContainer(t)
	_, found, err := ods.Get(buf, "player.inventory")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetWholeContainer(t *testing.T) {
	buf := sampleContainer(t)
	tag, found, err := ods.Get(buf, "")
	require.NoError(t, err)
	require.True(t, found)
	children, ok := tag.Children()
	require.True(t, ok)
	assert.Len(t, children, 2)
}

func TestGetIntoCompressedObjectFails(t *testing.T) {
	buf := encodeTags(t, ods.NewCompressedObjectTag("blob", "gzip", []ods.Tag{
		ods.NewIntTag("inner", 1),
	}))
	_, _, err := ods.Get(buf, "blob.inner")
	require.Error(t, err)
	var compErr *ods.CompressedTraversalError
	assert.ErrorAs(t, err, &compErr)
}

func TestGetDescendIntoNonCompositeFails(t *testing.T) {
	buf := sampleContainer(t)
	_, _, err := ods.Get(buf, "version.sub")
	assert.Error(t, err)
}
