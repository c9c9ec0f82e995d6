// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package image provides the public API for image descriptors and
// buffer-backed image views in the Lumen framework.
//
// Example:
//
//	buf, _ := buffer.New(eng, desc.ByteSize(), engine.StorageHost)
//	defer buf.Release()
//
//	img, err := image.NewFromBuffer(buf, image.Desc{
//	    Width:  1920,
//	    Height: 1080,
//	    Format: image.FormatFloat3,
//	}, 0)
//	if err != nil {
//	    return err
//	}
//	defer img.Close()
package image

import (
	"github.com/lumen-ml/lumen/internal/buffer"
	"github.com/lumen-ml/lumen/internal/image"
)

// Type aliases for public API

// Format describes the pixel layout of an image.
type Format = image.Format

// Pixel formats.
const (
	FormatFloat3 Format = image.FormatFloat3
	FormatHalf3  Format = image.FormatHalf3
	FormatFloat1 Format = image.FormatFloat1
	FormatByte3  Format = image.FormatByte3
)

// Desc describes an image's dimensions and pixel layout.
type Desc = image.Desc

// Image is a typed view over a region of a Buffer.
type Image = image.Image

// NewFromBuffer creates an image view of desc over buf starting at
// byteOffset, validating that the descriptor's footprint fits the
// buffer's current capacity.
func NewFromBuffer(buf buffer.Buffer, desc Desc, byteOffset int) (*Image, error) {
	return image.NewFromBuffer(buf, desc, byteOffset)
}
