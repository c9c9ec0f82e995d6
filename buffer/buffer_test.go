// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-ml/lumen/buffer"
	"github.com/lumen-ml/lumen/engine"
	"github.com/lumen-ml/lumen/engine/cpu"
	"github.com/lumen-ml/lumen/image"
	"github.com/lumen-ml/lumen/tensor"
)

// End-to-end walk through the public surface: allocate device storage,
// write through a scoped mapped view, read back, then hang typed views off
// the buffer and reallocate underneath them.
func TestDevicePipelineRoundTrip(t *testing.T) {
	eng := cpu.New()
	defer eng.Close()

	buf, err := buffer.New(eng, 4096, engine.StorageDevice)
	require.NoError(t, err)
	defer buf.Release()

	payload := bytes.Repeat([]byte{0xAB}, 1024)

	view, err := buffer.Map(buf, 0, 1024, buffer.AccessWriteDiscard)
	require.NoError(t, err)
	copy(view.Data(), payload)
	view.Release()

	got := make([]byte, 1024)
	require.NoError(t, buf.Read(0, got, engine.Sync))
	assert.Equal(t, payload, got)
}

func TestTypedViewsSurviveRealloc(t *testing.T) {
	eng := cpu.New()
	defer eng.Close()

	buf, err := buffer.New(eng, 4096, engine.StorageHost)
	require.NoError(t, err)
	defer buf.Release()

	tsr, err := tensor.NewFromBuffer(buf, tensor.Desc{
		DType: tensor.Float32,
		Shape: tensor.Shape{16, 16},
	}, 0)
	require.NoError(t, err)
	defer tsr.Close()

	img, err := image.NewFromBuffer(buf, image.Desc{
		Width:  16,
		Height: 16,
		Format: image.FormatFloat1,
	}, 1024)
	require.NoError(t, err)
	defer img.Close()

	require.NoError(t, buf.Realloc(8192))

	assert.Same(t, &buf.Data()[0], &tsr.Data()[0])
	assert.Same(t, &buf.Data()[1024], &img.Data()[0])
	assert.Equal(t, 8192, buf.ByteSize())
}

func TestWrapExternalMemory(t *testing.T) {
	eng := cpu.New()
	defer eng.Close()

	backing := make([]byte, 256)
	buf, err := buffer.Wrap(eng, backing, engine.StorageUndefined)
	require.NoError(t, err)
	defer buf.Release()

	require.NoError(t, buf.Write(0, []byte("lumen"), engine.Sync))
	assert.Equal(t, []byte("lumen"), backing[:5])

	assert.ErrorIs(t, buf.Realloc(512), buffer.ErrUnsupported)
}

func TestErrorKindsCrossPackage(t *testing.T) {
	eng := cpu.New()
	defer eng.Close()

	buf, err := buffer.New(eng, 64, engine.StorageHost)
	require.NoError(t, err)
	defer buf.Release()

	err = buf.Read(60, make([]byte, 16), engine.Sync)
	assert.ErrorIs(t, err, buffer.ErrOutOfBounds)

	var be *buffer.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, buffer.KindOutOfBounds, be.Kind)
}
