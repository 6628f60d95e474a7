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

package predict

import (
	"image"

	"seehuhn.de/go/geom/rect"
)

// Source provides row-wise access to the pixels of an in-memory image.
// The implementations in this package form the closed set of pixel layouts
// the encoder understands: packed byte tuples ([ByteTuple]), one packed
// 32-bit integer per pixel ([Packed32]), and 16-bit component values
// ([Shorts16]).
type Source interface {
	// Bounds returns the image extent in pixels.
	Bounds() rect.IntRect

	// Channels returns the number of color channels, excluding alpha.
	Channels() int

	// BytesPerComponent returns the size of one sample in bytes, 1 or 2.
	BytesPerComponent() int

	// HasAlpha reports whether the pixels carry an alpha channel.
	HasAlpha() bool

	// ReadRow fills row with the component bytes of row y, alpha
	// excluded.  Multi-byte samples are stored most significant byte
	// first.  If the source has an alpha channel and alpha is non-nil,
	// alpha receives one 8-bit opacity sample per pixel.
	ReadRow(y int, row, alpha []byte)
}

// ByteTuple is a [Source] where each pixel is a tuple of single-byte
// components in output order, optionally followed by one alpha byte.
type ByteTuple struct {
	// Pix holds the pixel data, row by row.
	Pix []byte

	// Stride is the distance in bytes between vertically adjacent pixels.
	Stride int

	// Width and Height are the image dimensions in pixels.
	Width, Height int

	// Colors is the number of color channels, excluding alpha.
	Colors int

	// Alpha indicates a trailing alpha byte in each pixel tuple.
	Alpha bool
}

// Bounds implements the [Source] interface.
func (s *ByteTuple) Bounds() rect.IntRect {
	return rect.IntRect{XMax: s.Width, YMax: s.Height}
}

// Channels implements the [Source] interface.
func (s *ByteTuple) Channels() int { return s.Colors }

// BytesPerComponent implements the [Source] interface.
func (s *ByteTuple) BytesPerComponent() int { return 1 }

// HasAlpha implements the [Source] interface.
func (s *ByteTuple) HasAlpha() bool { return s.Alpha }

// ReadRow implements the [Source] interface.
func (s *ByteTuple) ReadRow(y int, row, alpha []byte) {
	pixBytes := s.Colors
	if s.Alpha {
		pixBytes++
	}
	src := s.Pix[y*s.Stride:]
	di := 0
	for x := 0; x < s.Width; x++ {
		base := x * pixBytes
		di += copy(row[di:], src[base:base+s.Colors])
		if s.Alpha && alpha != nil {
			alpha[x] = src[base+s.Colors]
		}
	}
}

// PixelOrder describes the channel layout of a [Packed32] pixel.
type PixelOrder int

// The supported packed-pixel channel layouts.
const (
	// OrderRGB has red in bits 16-23, green in bits 8-15 and blue in
	// bits 0-7.  The top byte is unused.
	OrderRGB PixelOrder = iota

	// OrderARGB is like OrderRGB with alpha in bits 24-31.
	OrderARGB

	// OrderBGR has red in bits 0-7, green in bits 8-15 and blue in
	// bits 16-23.  The top byte is unused.
	OrderBGR
)

// Packed32 is a [Source] where each pixel is one 32-bit integer with
// packed 8-bit channels.
type Packed32 struct {
	// Pix holds one integer per pixel, row by row.
	Pix []uint32

	// Stride is the distance in integers between vertically adjacent
	// pixels.
	Stride int

	// Width and Height are the image dimensions in pixels.
	Width, Height int

	// Order is the channel layout of each pixel.
	Order PixelOrder
}

// Bounds implements the [Source] interface.
func (s *Packed32) Bounds() rect.IntRect {
	return rect.IntRect{XMax: s.Width, YMax: s.Height}
}

// Channels implements the [Source] interface.
func (s *Packed32) Channels() int { return 3 }

// BytesPerComponent implements the [Source] interface.
func (s *Packed32) BytesPerComponent() int { return 1 }

// HasAlpha implements the [Source] interface.
func (s *Packed32) HasAlpha() bool { return s.Order == OrderARGB }

// ReadRow implements the [Source] interface.
func (s *Packed32) ReadRow(y int, row, alpha []byte) {
	src := s.Pix[y*s.Stride:]
	di := 0
	for x := 0; x < s.Width; x++ {
		v := src[x]
		switch s.Order {
		case OrderBGR:
			row[di] = byte(v)
			row[di+1] = byte(v >> 8)
			row[di+2] = byte(v >> 16)
		default: // OrderRGB, OrderARGB
			row[di] = byte(v >> 16)
			row[di+1] = byte(v >> 8)
			row[di+2] = byte(v)
		}
		if s.Order == OrderARGB && alpha != nil {
			alpha[x] = byte(v >> 24)
		}
		di += 3
	}
}

// Shorts16 is a [Source] where each component is a 16-bit value.
type Shorts16 struct {
	// Pix holds the component values, row by row.
	Pix []uint16

	// Stride is the distance in components between vertically adjacent
	// pixels.
	Stride int

	// Width and Height are the image dimensions in pixels.
	Width, Height int

	// Colors is the number of color channels, excluding alpha.
	Colors int

	// Alpha indicates a trailing 16-bit alpha component in each pixel.
	Alpha bool
}

// Bounds implements the [Source] interface.
func (s *Shorts16) Bounds() rect.IntRect {
	return rect.IntRect{XMax: s.Width, YMax: s.Height}
}

// Channels implements the [Source] interface.
func (s *Shorts16) Channels() int { return s.Colors }

// BytesPerComponent implements the [Source] interface.
func (s *Shorts16) BytesPerComponent() int { return 2 }

// HasAlpha implements the [Source] interface.
func (s *Shorts16) HasAlpha() bool { return s.Alpha }

// ReadRow implements the [Source] interface.
func (s *Shorts16) ReadRow(y int, row, alpha []byte) {
	comps := s.Colors
	if s.Alpha {
		comps++
	}
	src := s.Pix[y*s.Stride:]
	di := 0
	for x := 0; x < s.Width; x++ {
		base := x * comps
		for c := 0; c < s.Colors; c++ {
			v := src[base+c]
			row[di] = byte(v >> 8)
			row[di+1] = byte(v)
			di += 2
		}
		if s.Alpha && alpha != nil {
			alpha[x] = byte(src[base+s.Colors] >> 8)
		}
	}
}

// FromImage wraps m in a [Source] if its pixel layout maps onto one of the
// supported variants.  The second return value is false if the encoder
// cannot handle the layout; callers must then fall back to a different
// encoding strategy.
func FromImage(m image.Image) (Source, bool) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	switch m := m.(type) {
	case *image.Gray:
		return &ByteTuple{Pix: m.Pix, Stride: m.Stride, Width: w, Height: h, Colors: 1}, true
	case *image.NRGBA:
		return &ByteTuple{Pix: m.Pix, Stride: m.Stride, Width: w, Height: h, Colors: 3, Alpha: true}, true
	case *image.CMYK:
		return &ByteTuple{Pix: m.Pix, Stride: m.Stride, Width: w, Height: h, Colors: 4}, true
	case *image.Gray16:
		return &Shorts16{Pix: toShorts(m.Pix), Stride: m.Stride / 2, Width: w, Height: h, Colors: 1}, true
	case *image.NRGBA64:
		return &Shorts16{Pix: toShorts(m.Pix), Stride: m.Stride / 2, Width: w, Height: h, Colors: 3, Alpha: true}, true
	default:
		// Pre-multiplied and exotic layouts are not supported.
		return nil, false
	}
}

// toShorts reassembles big-endian byte pairs into 16-bit values.
func toShorts(pix []byte) []uint16 {
	shorts := make([]uint16, len(pix)/2)
	for i := range shorts {
		shorts[i] = uint16(pix[2*i])<<8 | uint16(pix[2*i+1])
	}
	return shorts
}
