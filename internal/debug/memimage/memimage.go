// seehuhn.de/go/pngembed - embed PNG images into PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package memimage provides an in-memory image sink for use in unit tests.
package memimage

import (
	"seehuhn.de/go/pngembed"
	"seehuhn.de/go/pngembed/color"
)

// Image records everything the converter writes to one image object.
type Image struct {
	Width, Height    int
	BitsPerComponent int

	Data   []byte
	Filter pngembed.Filter
	Parms  *pngembed.DecodeParms

	ColorSpace color.Space
	Intent     pngembed.RenderingIntent

	SoftMask *Image
}

// SetCompressedData implements the [pngembed.Object] interface.
func (img *Image) SetCompressedData(data []byte, kind pngembed.Filter) {
	img.Data = data
	img.Filter = kind
}

// SetDecodeParms implements the [pngembed.Object] interface.
func (img *Image) SetDecodeParms(parms *pngembed.DecodeParms) {
	img.Parms = parms
}

// SetColorSpace implements the [pngembed.Object] interface.
func (img *Image) SetColorSpace(space color.Space) {
	img.ColorSpace = space
}

// SetRenderingIntent implements the [pngembed.Object] interface.
func (img *Image) SetRenderingIntent(intent pngembed.RenderingIntent) {
	img.Intent = intent
}

// AttachSoftMask implements the [pngembed.Object] interface.
func (img *Image) AttachSoftMask(mask pngembed.Object) {
	img.SoftMask = mask.(*Image)
}

// Allocator creates [Image] objects and keeps track of all images
// allocated, in order of allocation.
type Allocator struct {
	Objects []*Image
}

// Alloc is a [pngembed.Allocator].
func (a *Allocator) Alloc(width, height, bitsPerComponent int) pngembed.Object {
	img := &Image{
		Width:            width,
		Height:           height,
		BitsPerComponent: bitsPerComponent,
	}
	a.Objects = append(a.Objects, img)
	return img
}
