// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/internal/buffer"
	"github.com/lumen-ml/lumen/internal/engine"
	"github.com/lumen-ml/lumen/internal/engine/cpu"
)

func newHostBuffer(t *testing.T, byteSize int) (*cpu.Engine, *buffer.USMBuffer) {
	t.Helper()
	eng := cpu.New()
	t.Cleanup(eng.Close)
	buf, err := buffer.NewUSM(eng, byteSize, engine.StorageHost)
	require.NoError(t, err)
	t.Cleanup(buf.Release)
	return eng, buf
}

func TestTensorNewFromBuffer(t *testing.T) {
	_, buf := newHostBuffer(t, 1024)

	desc := Desc{DType: Float32, Shape: Shape{4, 8}}
	tsr, err := NewFromBuffer(buf, desc, 128)
	require.NoError(t, err)
	defer tsr.Close()

	assert.Equal(t, desc, tsr.Desc())
	assert.Equal(t, Float32, tsr.DType())
	assert.True(t, Shape{4, 8}.Equal(tsr.Shape()))
	assert.Equal(t, 128, tsr.ByteSize())
	assert.Equal(t, 128, tsr.ByteOffset())
	require.Len(t, tsr.Data(), 128)
	assert.Same(t, &buf.Data()[128], &tsr.Data()[0])
}

func TestTensorNewFromBufferErrors(t *testing.T) {
	_, buf := newHostBuffer(t, 64)

	desc := Desc{DType: Float32, Shape: Shape{4, 4}}

	_, err := NewFromBuffer(nil, desc, 0)
	assert.ErrorIs(t, err, buffer.ErrInvalidArgument)

	_, err = NewFromBuffer(buf, Desc{DType: DataType(9), Shape: Shape{4}}, 0)
	assert.ErrorIs(t, err, buffer.ErrInvalidArgument)

	_, err = NewFromBuffer(buf, Desc{DType: Float32, Shape: Shape{4, 0}}, 0)
	assert.ErrorIs(t, err, buffer.ErrInvalidArgument)

	// 64-byte footprint at offset 8 exceeds the 64-byte buffer.
	_, err = NewFromBuffer(buf, desc, 8)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)

	_, err = NewFromBuffer(buf, desc, -4)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)
}

func TestTensorAsFloat32(t *testing.T) {
	_, buf := newHostBuffer(t, 256)

	tsr, err := NewFromBuffer(buf, Desc{DType: Float32, Shape: Shape{16}}, 0)
	require.NoError(t, err)
	defer tsr.Close()

	f := tsr.AsFloat32()
	require.Len(t, f, 16)
	f[3] = 2.5

	// The view is zero-copy: the write lands in the buffer's bytes.
	again := tsr.AsFloat32()
	assert.Equal(t, float32(2.5), again[3])
	assert.NotEqual(t, []byte{0, 0, 0, 0}, tsr.Data()[12:16])

	assert.Panics(t, func() {
		bad, _ := NewFromBuffer(buf, Desc{DType: Uint8, Shape: Shape{8}}, 0)
		defer bad.Close()
		bad.AsFloat32()
	})
}

func TestTensorAsUint8(t *testing.T) {
	_, buf := newHostBuffer(t, 64)

	tsr, err := NewFromBuffer(buf, Desc{DType: Uint8, Shape: Shape{32}}, 16)
	require.NoError(t, err)
	defer tsr.Close()

	u := tsr.AsUint8()
	require.Len(t, u, 32)
	u[0] = 0xCD
	assert.Equal(t, byte(0xCD), buf.Data()[16])
}

func TestTensorRefreshAfterRealloc(t *testing.T) {
	_, buf := newHostBuffer(t, 256)

	require.NoError(t, buf.Write(0, []byte{1, 2, 3, 4}, engine.Sync))

	tsr, err := NewFromBuffer(buf, Desc{DType: Uint8, Shape: Shape{4}}, 0)
	require.NoError(t, err)
	defer tsr.Close()

	require.NoError(t, buf.Realloc(1024))

	// The window must track the new storage.
	require.Len(t, tsr.Data(), 4)
	assert.Same(t, &buf.Data()[0], &tsr.Data()[0])
}

func TestTensorReallocBelowFootprint(t *testing.T) {
	_, buf := newHostBuffer(t, 256)

	tsr, err := NewFromBuffer(buf, Desc{DType: Float32, Shape: Shape{32}}, 64)
	require.NoError(t, err)
	defer tsr.Close()

	// 128-byte footprint at offset 64 no longer fits in 100 bytes.
	err = buf.Realloc(100)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)
	assert.Nil(t, tsr.Data())
}

func TestTensorKeepsBufferAlive(t *testing.T) {
	eng := cpu.New()
	defer eng.Close()
	buf, err := buffer.NewUSM(eng, 128, engine.StorageHost)
	require.NoError(t, err)

	tsr, err := NewFromBuffer(buf, Desc{DType: Uint8, Shape: Shape{64}}, 0)
	require.NoError(t, err)

	buf.Release()
	assert.True(t, buf.HasData(), "tensor must keep the buffer alive")

	tsr.Close()
	assert.False(t, buf.HasData())
}

func TestTensorCloseIdempotent(t *testing.T) {
	_, buf := newHostBuffer(t, 64)

	tsr, err := NewFromBuffer(buf, Desc{DType: Uint8, Shape: Shape{16}}, 0)
	require.NoError(t, err)

	tsr.Close()
	tsr.Close()
	assert.False(t, tsr.Bound())
	assert.Nil(t, tsr.Data())
}
