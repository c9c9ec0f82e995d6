// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/engine"
)

func TestMappedViewAccessors(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 512, engine.StorageDevice)
	defer buf.Release()

	view, err := Map(buf, 64, 128, AccessReadWrite)
	require.NoError(t, err)
	defer view.Release()

	assert.True(t, view.HasData())
	assert.NotNil(t, view.Data())
	assert.Equal(t, 128, view.ByteSize())
	assert.Equal(t, engine.StorageHost, view.Storage())
	assert.Equal(t, AccessReadWrite, view.Access())
	assert.Equal(t, buf.Engine(), view.Engine())
	assert.Equal(t, buf.Device(), view.Device())
}

func TestMappedViewPointerStability(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 512, engine.StorageDevice)
	defer buf.Release()

	view, err := Map(buf, 0, 256, AccessWrite)
	require.NoError(t, err)

	p := view.Data()
	copy(p, bytes.Repeat([]byte{0x10}, 256))
	require.NoError(t, view.Write(128, bytes.Repeat([]byte{0x20}, 128), engine.Sync))
	assert.Same(t, &p[0], &view.Data()[0], "window must be stable for the view's lifetime")

	view.Release()
	assert.Equal(t, 0, buf.MappedCount())
}

func TestMappedViewSingleUnmapWithDisjointViews(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 1024, engine.StorageDevice)
	defer buf.Release()

	a, err := Map(buf, 0, 256, AccessWrite)
	require.NoError(t, err)
	b, err := Map(buf, 256, 256, AccessWrite)
	require.NoError(t, err)
	assert.Equal(t, 2, buf.MappedCount())

	copy(a.Data(), bytes.Repeat([]byte{0xAA}, 256))
	copy(b.Data(), bytes.Repeat([]byte{0xBB}, 256))

	a.Release()
	assert.Equal(t, 1, buf.MappedCount(), "releasing one view must unmap exactly its region")

	// The surviving view stays usable.
	copy(b.Data()[:16], bytes.Repeat([]byte{0xBC}, 16))
	b.Release()
	assert.Equal(t, 0, buf.MappedCount())

	dst := make([]byte, 512)
	require.NoError(t, buf.Read(0, dst, engine.Sync))
	assert.Equal(t, bytes.Repeat([]byte{0xAA}, 256), dst[:256])
	assert.Equal(t, bytes.Repeat([]byte{0xBC}, 16), dst[256:272])
}

func TestMappedViewUnsupportedOperations(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 256, engine.StorageHost)
	defer buf.Release()

	view, err := Map(buf, 0, 128, AccessRead)
	require.NoError(t, err)
	defer view.Release()

	_, err = view.Map(0, 64, AccessRead)
	assert.ErrorIs(t, err, ErrUnsupported)

	assert.ErrorIs(t, view.Realloc(64), ErrUnsupported)
	assert.ErrorIs(t, view.Unmap(view.Data()), ErrInvalidArgument)
}

func TestMappedViewKeepsSourceAlive(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 256, engine.StorageHost)

	view, err := Map(buf, 0, 256, AccessReadWrite)
	require.NoError(t, err)

	// Drop the creator's reference; the view still holds one.
	buf.Release()
	assert.Equal(t, 1, eng.outstanding(), "source must survive while a view is live")

	copy(view.Data(), bytes.Repeat([]byte{0x66}, 256))
	view.Release()
	assert.Equal(t, 0, eng.outstanding())
}

func TestMappedViewReadWriteBounds(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 256, engine.StorageHost)
	defer buf.Release()

	view, err := Map(buf, 0, 64, AccessReadWrite)
	require.NoError(t, err)
	defer view.Release()

	assert.ErrorIs(t, view.Read(32, make([]byte, 64), engine.Sync), ErrOutOfBounds)
	assert.ErrorIs(t, view.Write(64, []byte{1}, engine.Sync), ErrOutOfBounds)

	src := bytes.Repeat([]byte{0x4F}, 32)
	require.NoError(t, view.Write(16, src, engine.Sync))
	dst := make([]byte, 32)
	require.NoError(t, view.Read(16, dst, engine.Sync))
	assert.Equal(t, src, dst)
}

func TestMappedViewRetainRelease(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 256, engine.StorageHost)
	defer buf.Release()

	view, err := Map(buf, 0, 128, AccessRead)
	require.NoError(t, err)

	view.Retain()
	view.Release()
	assert.Equal(t, 1, buf.MappedCount(), "view must stay mapped while references remain")

	view.Release()
	assert.Equal(t, 0, buf.MappedCount())
}

func TestMappedViewNilSource(t *testing.T) {
	_, err := Map(nil, 0, 64, AccessRead)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMappedViewPropagatesMapError(t *testing.T) {
	eng := newMockEngine()
	buf := newTestBuffer(t, eng, 64, engine.StorageHost)
	defer buf.Release()

	_, err := Map(buf, 32, 64, AccessRead)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, 0, buf.MappedCount())
}
