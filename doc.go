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

// Package pngembed converts PNG images into document image objects without
// re-compressing the pixel data.
//
// A PNG file already stores its pixel data filtered with the PNG scanline
// predictors and compressed with deflate.  Since PDF-style image objects can
// describe exactly this encoding via their decode parameters, the compressed
// bytes of a PNG can be copied into an image stream unchanged.  The
// [ConvertPNG] function implements this zero-recompression path: it splits
// the PNG byte stream into chunks, verifies the CRC-32 checksum of every
// chunk used, maps the color information (palette, ICC profile, sRGB marker,
// gamma and chromaticity data) onto a color space descriptor, and hands the
// untouched deflate stream to the caller's image object.
//
// ConvertPNG deliberately supports only a subset of the PNG format:
// non-interlaced images of color type 0 (grayscale), 2 (truecolor) and
// 3 (indexed), without a transparent-color key on types 0 and 2.  All other
// inputs are rejected with an [UnsupportedError]; damaged inputs are
// rejected with a [StructuralError] or [IntegrityError].  A rejection never
// leaves a partially populated image object behind; callers are expected to
// fall back to decoding the image and re-encoding it, for example using
// [seehuhn.de/go/pngembed/predict].
//
// The conversion result is delivered through the [Object] interface, which
// is implemented by the surrounding document model.  This package never
// defines how image objects are stored.
package pngembed
