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

package pngembed

import (
	"seehuhn.de/go/pngembed/color"
)

// Object is the sink for one embedded image.  Implementations are provided
// by the surrounding document model; this package only calls the methods
// listed here and never defines how the data is persisted.
//
// The converter populates an Object completely or not at all: if a
// conversion fails, any objects obtained from the [Allocator] are abandoned
// without further method calls, and the caller discards them.
type Object interface {
	// SetCompressedData stores the compressed image data.
	SetCompressedData(data []byte, kind Filter)

	// SetDecodeParms stores the parameters needed to decode the
	// compressed data.
	SetDecodeParms(parms *DecodeParms)

	// SetColorSpace stores the color space of the image samples.
	SetColorSpace(space color.Space)

	// SetRenderingIntent stores the color rendering intent.
	SetRenderingIntent(intent RenderingIntent)

	// AttachSoftMask attaches a single-channel image supplying per-pixel
	// opacity for this image.
	AttachSoftMask(mask Object)
}

// Allocator creates a new, empty image object with the given dimensions.
// The converter uses it both for the image itself and for an optional
// soft mask.
type Allocator func(width, height, bitsPerComponent int) Object

// Filter identifies the compression applied to the data passed to
// [Object.SetCompressedData].
type Filter string

// FilterFlate indicates zlib/deflate compressed data.  This is the only
// filter this package produces.
const FilterFlate Filter = "FlateDecode"

// DecodeParms describes how predictor-filtered image data has to be
// post-processed after decompression.  The field names follow the PDF
// FlateDecode parameter dictionary.
type DecodeParms struct {
	// Predictor is the predictor algorithm.  The value 15 selects the
	// adaptive PNG predictors, where each row carries its own filter
	// type marker.
	Predictor int

	// Colors is the number of interleaved color components per pixel.
	Colors int

	// Columns is the number of pixels per row.
	Columns int

	// BitsPerComponent is the number of bits per color component.
	BitsPerComponent int
}

// RenderingIntent specifies how colors outside the target gamut are mapped
// during rendering.
type RenderingIntent string

// The four rendering intents.
const (
	RenderingIntentPerceptual           RenderingIntent = "Perceptual"
	RenderingIntentRelativeColorimetric RenderingIntent = "RelativeColorimetric"
	RenderingIntentSaturation           RenderingIntent = "Saturation"
	RenderingIntentAbsoluteColorimetric RenderingIntent = "AbsoluteColorimetric"
)

// intentForByte maps the value of a PNG sRGB chunk to a rendering intent.
// Values outside 0-3 map to "no intent".
func intentForByte(b byte) (RenderingIntent, bool) {
	switch b {
	case 0:
		return RenderingIntentPerceptual, true
	case 1:
		return RenderingIntentRelativeColorimetric, true
	case 2:
		return RenderingIntentSaturation, true
	case 3:
		return RenderingIntentAbsoluteColorimetric, true
	default:
		return "", false
	}
}
