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

// adaptivePredictor is the decode parameter value for PNG data where every
// row carries its own filter type marker.
const adaptivePredictor = 15

// ConvertPNG converts the PNG byte stream data into an embedded image
// object, copying the deflate-compressed pixel data without recompression.
// New image objects (the image itself and, for indexed images with
// transparency, a soft mask) are obtained from alloc.
//
// Damaged inputs are rejected with a [StructuralError] or [IntegrityError];
// well-formed PNGs outside the supported subset (see the package
// documentation) are rejected with an [UnsupportedError].  On rejection no
// populated image object is returned and callers should fall back to
// decoding and re-encoding the image.
func ConvertPNG(data []byte, alloc Allocator) (Object, error) {
	state, err := parsePNG(data)
	if err != nil {
		return nil, err
	}
	if err := state.check(); err != nil {
		return nil, err
	}
	return convert(state, alloc)
}

// imageHeader holds the decoded fields of an IHDR chunk.
type imageHeader struct {
	width, height     int
	bitDepth          int
	colorType         int
	compressionMethod int
	filterMethod      int
	interlaceMethod   int
}

const ihdrLength = 13

func (s *converterState) header() (*imageHeader, error) {
	ihdr := s.IHDR
	if ihdr.Length != ihdrLength {
		return nil, structuralf(int64(ihdr.Start),
			"IHDR chunk with %d data bytes", ihdr.Length)
	}
	b := ihdr.Bytes()
	return &imageHeader{
		width:             int(int32(readU32(b, 0))),
		height:            int(int32(readU32(b, 4))),
		bitDepth:          int(b[8]),
		colorType:         int(b[9]),
		compressionMethod: int(b[10]),
		filterMethod:      int(b[11]),
		interlaceMethod:   int(b[12]),
	}, nil
}

// convert validates the header fields and dispatches on the color type.
func convert(state *converterState, alloc Allocator) (Object, error) {
	h, err := state.header()
	if err != nil {
		return nil, err
	}

	switch h.bitDepth {
	case 1, 2, 4, 8, 16:
		// ok
	default:
		return nil, unsupportedf("bit depth %d", h.bitDepth)
	}
	if h.width <= 0 || h.height <= 0 {
		return nil, unsupportedf("image size %d x %d", h.width, h.height)
	}
	if h.compressionMethod != 0 {
		return nil, unsupportedf("compression method %d", h.compressionMethod)
	}
	if h.filterMethod != 0 {
		return nil, unsupportedf("filter method %d", h.filterMethod)
	}
	if h.interlaceMethod != 0 {
		return nil, unsupportedf("interlace method %d", h.interlaceMethod)
	}

	switch h.colorType {
	case 0: // grayscale
		if state.TRNS != nil {
			return nil, unsupportedf("transparent color on grayscale image")
		}
		return buildImage(state, h, color.DeviceGray, alloc)
	case 2: // truecolor
		if state.TRNS != nil {
			return nil, unsupportedf("transparent color on truecolor image")
		}
		return buildImage(state, h, color.DeviceRGB, alloc)
	case 3: // indexed
		return buildIndexedImage(state, h, alloc)
	case 4, 6:
		// Separating the interleaved alpha channel would require
		// decoding the pixel data.
		return nil, unsupportedf("color type %d with alpha channel", h.colorType)
	default:
		return nil, unsupportedf("color type %d", h.colorType)
	}
}

// buildImage populates an image object for a grayscale or truecolor PNG.
// The deflate-compressed IDAT data is copied unchanged.
func buildImage(state *converterState, h *imageHeader, base color.Space, alloc Allocator) (Object, error) {
	space, intent, err := resolveColorSpace(state, base)
	if err != nil {
		return nil, err
	}

	obj := alloc(h.width, h.height, h.bitDepth)
	obj.SetCompressedData(state.imageData(), FilterFlate)
	obj.SetDecodeParms(&DecodeParms{
		Predictor:        adaptivePredictor,
		Colors:           base.Channels(),
		Columns:          h.width,
		BitsPerComponent: h.bitDepth,
	})
	obj.SetColorSpace(space)
	if intent != "" {
		obj.SetRenderingIntent(intent)
	}
	return obj, nil
}

// buildIndexedImage populates an image object for a palette-based PNG.
// If a transparency table is present, a second image object reusing the
// same encoded row data is attached as a soft mask.
func buildIndexedImage(state *converterState, h *imageHeader, alloc Allocator) (Object, error) {
	plte := state.PLTE
	if plte == nil {
		return nil, structuralf(0, "indexed image without PLTE chunk")
	}
	if plte.Length%3 != 0 {
		return nil, unsupportedf("PLTE table with incomplete (r,g,b) tuple")
	}
	if h.bitDepth > 8 {
		return nil, unsupportedf("indexed image with bit depth %d", h.bitDepth)
	}
	hival := plte.Length/3 - 1
	if hival > 255 {
		return nil, unsupportedf("PLTE table with %d colors", hival+1)
	}

	base, intent, err := resolveColorSpace(state, color.DeviceRGB)
	if err != nil {
		return nil, err
	}
	space, err := color.Indexed(base, hival, plte.Bytes())
	if err != nil {
		return nil, unsupportedf("PLTE: %s", err)
	}

	var maskSpace *color.SpaceIndexed
	if state.TRNS != nil {
		if state.TRNS.Length > hival+1 {
			return nil, unsupportedf("tRNS table with %d entries for %d colors",
				state.TRNS.Length, hival+1)
		}
		// missing entries are fully opaque
		maskSpace, err = color.Indexed(color.DeviceGray, hival, state.TRNS.Bytes())
		if err != nil {
			return nil, unsupportedf("tRNS: %s", err)
		}
	}

	data := state.imageData()
	parms := &DecodeParms{
		Predictor:        adaptivePredictor,
		Colors:           1,
		Columns:          h.width,
		BitsPerComponent: h.bitDepth,
	}

	obj := alloc(h.width, h.height, h.bitDepth)
	obj.SetCompressedData(data, FilterFlate)
	obj.SetDecodeParms(parms)
	obj.SetColorSpace(space)
	if intent != "" {
		obj.SetRenderingIntent(intent)
	}

	if maskSpace != nil {
		mask := alloc(h.width, h.height, h.bitDepth)
		mask.SetCompressedData(data, FilterFlate)
		mask.SetDecodeParms(parms)
		mask.SetColorSpace(maskSpace)
		obj.AttachSoftMask(mask)
	}
	return obj, nil
}

// imageData returns the deflate-compressed pixel data: the payload of all
// IDAT chunks in file order.  In the common case of a single IDAT chunk no
// bytes are copied.
func (s *converterState) imageData() []byte {
	if len(s.IDAT) == 1 {
		return s.IDAT[0].Bytes()
	}
	var n int
	for _, c := range s.IDAT {
		n += c.Length
	}
	data := make([]byte, 0, n)
	for _, c := range s.IDAT {
		data = append(data, c.Bytes()...)
	}
	return data
}
