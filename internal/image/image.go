// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package image provides image descriptors and the buffer-backed image
// view for the Lumen compute pipeline.
package image

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/buffer"
)

// Format describes the pixel layout of an image.
type Format int

// Supported pixel formats.
const (
	FormatFloat3 Format = iota // 3 x float32 channels
	FormatHalf3                // 3 x float16 channels
	FormatFloat1               // 1 x float32 channel
	FormatByte3                // 3 x uint8 channels
)

// PixelSize returns the byte size of one pixel.
func (f Format) PixelSize() int {
	switch f {
	case FormatFloat3:
		return 12
	case FormatHalf3:
		return 6
	case FormatFloat1:
		return 4
	case FormatByte3:
		return 3
	default:
		panic("unknown image format")
	}
}

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatFloat3:
		return "float3"
	case FormatHalf3:
		return "half3"
	case FormatFloat1:
		return "float1"
	case FormatByte3:
		return "byte3"
	default:
		return "unknown"
	}
}

func (f Format) valid() bool {
	return f >= FormatFloat3 && f <= FormatByte3
}

// Desc describes an image's dimensions and pixel layout. RowStride is in
// bytes; zero means tightly packed rows.
type Desc struct {
	Width     int
	Height    int
	Format    Format
	RowStride int
}

// Validate checks the descriptor for a supported format, positive
// dimensions, and a row stride wide enough for one row of pixels.
func (d Desc) Validate() error {
	if !d.Format.valid() {
		return fmt.Errorf("invalid image format %d", int(d.Format))
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", d.Width, d.Height)
	}
	if d.RowStride != 0 && d.RowStride < d.Width*d.Format.PixelSize() {
		return fmt.Errorf("row stride %d narrower than row of %d bytes",
			d.RowStride, d.Width*d.Format.PixelSize())
	}
	return nil
}

// rowStride returns the effective row stride in bytes.
func (d Desc) rowStride() int {
	if d.RowStride != 0 {
		return d.RowStride
	}
	return d.Width * d.Format.PixelSize()
}

// ByteSize returns the footprint the descriptor requires from its backing
// buffer. The trailing row needs no stride padding.
func (d Desc) ByteSize() int {
	return (d.Height-1)*d.rowStride() + d.Width*d.Format.PixelSize()
}

// Compile-time check that Image participates in reallocation refresh.
var _ buffer.Updater = (*Image)(nil)

// Image is a typed view over a region of a Buffer. Like Tensor it embeds
// buffer.Memory and caches its byte window, refreshed through UpdatePtr
// after buffer reallocation.
type Image struct {
	buffer.Memory
	desc Desc
	data []byte
}

// NewFromBuffer creates an image view of desc over buf starting at
// byteOffset. Fails with ErrOutOfBounds when the descriptor's footprint
// does not fit the buffer's current capacity.
func NewFromBuffer(buf buffer.Buffer, desc Desc, byteOffset int) (*Image, error) {
	const op = "image.NewFromBuffer"
	if buf == nil {
		return nil, buffer.NewInvalidArgument(op, "nil buffer")
	}
	if err := desc.Validate(); err != nil {
		return nil, buffer.NewInvalidArgument(op, err.Error())
	}
	if byteOffset < 0 || byteOffset > buf.ByteSize()-desc.ByteSize() {
		return nil, buffer.NewOutOfBounds(op, fmt.Sprintf(
			"image of %d bytes at offset %d exceeds buffer size %d",
			desc.ByteSize(), byteOffset, buf.ByteSize()))
	}

	img := &Image{desc: desc}
	if err := img.Bind(buf, byteOffset, img); err != nil {
		return nil, err
	}
	if err := img.UpdatePtr(); err != nil {
		img.Close()
		return nil, err
	}
	return img, nil
}

// Desc returns the image's descriptor.
func (img *Image) Desc() Desc {
	return img.desc
}

// Width returns the image width in pixels.
func (img *Image) Width() int {
	return img.desc.Width
}

// Height returns the image height in pixels.
func (img *Image) Height() int {
	return img.desc.Height
}

// Format returns the image's pixel format.
func (img *Image) Format() Format {
	return img.desc.Format
}

// ByteSize returns the image's footprint in bytes.
func (img *Image) ByteSize() int {
	return img.desc.ByteSize()
}

// Data returns the cached byte window over the image's region, valid
// until the next reallocation of the buffer.
func (img *Image) Data() []byte {
	return img.data
}

// Row returns the byte window for one row of pixels.
// Panics if y is outside the image.
func (img *Image) Row(y int) []byte {
	if y < 0 || y >= img.desc.Height {
		panic(fmt.Sprintf("row %d outside image of height %d", y, img.desc.Height))
	}
	start := y * img.desc.rowStride()
	return img.data[start : start+img.desc.Width*img.desc.Format.PixelSize()]
}

// UpdatePtr recomputes the cached window from the buffer's current storage
// and the image's byte offset.
func (img *Image) UpdatePtr() error {
	const op = "Image.UpdatePtr"
	buf := img.Buffer()
	if buf == nil {
		return buffer.NewPrecondition(op, "image is not bound to a buffer")
	}
	if !buf.HasData() {
		img.data = nil
		return nil
	}
	off, size := img.ByteOffset(), img.desc.ByteSize()
	if off > buf.ByteSize()-size {
		img.data = nil
		return buffer.NewOutOfBounds(op, fmt.Sprintf(
			"image of %d bytes at offset %d exceeds buffer size %d", size, off, buf.ByteSize()))
	}
	img.data = buf.Data()[off : off+size : off+size]
	return nil
}

// Close detaches the image from its buffer and drops the strong
// reference.
func (img *Image) Close() {
	img.Memory.Close()
	img.data = nil
}
