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

package pngembed_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	stdcolor "image/color"
	"image/png"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zlib"

	"seehuhn.de/go/pngembed"
	"seehuhn.de/go/pngembed/color"
	"seehuhn.de/go/pngembed/internal/debug/memimage"
)

type rawChunk struct {
	typ  string
	data []byte
}

// buildPNG assembles a PNG stream with valid checksums from the given
// chunks.
func buildPNG(chunks ...rawChunk) []byte {
	buf := []byte{137, 80, 78, 71, 13, 10, 26, 10}
	for _, c := range chunks {
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(c.data)))
		buf = append(buf, c.typ...)
		buf = append(buf, c.data...)
		crc := pngembed.CRC(append([]byte(c.typ), c.data...))
		buf = binary.BigEndian.AppendUint32(buf, crc)
	}
	return buf
}

func encodePNG(t *testing.T, m image.Image) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, m); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func inflate(t *testing.T, data []byte) []byte {
	t.Helper()
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

// unfilter reverses the per-row PNG filters.  Each input row starts with a
// filter type byte; the output rows do not.
func unfilter(t *testing.T, data []byte, rowLen, bpp int) []byte {
	t.Helper()
	if len(data)%(rowLen+1) != 0 {
		t.Fatalf("%d data bytes do not frame rows of %d+1 bytes", len(data), rowLen)
	}
	height := len(data) / (rowLen + 1)
	out := make([]byte, 0, height*rowLen)
	prev := make([]byte, rowLen)
	for y := 0; y < height; y++ {
		ft := data[y*(rowLen+1)]
		row := append([]byte{}, data[y*(rowLen+1)+1:(y+1)*(rowLen+1)]...)
		for i := range row {
			var a, c byte
			if i >= bpp {
				a = row[i-bpp]
				c = prev[i-bpp]
			}
			b := prev[i]
			switch ft {
			case 0:
				// nothing to do
			case 1:
				row[i] += a
			case 2:
				row[i] += b
			case 3:
				row[i] += byte((int(a) + int(b)) / 2)
			case 4:
				row[i] += paethPredictor(a, b, c)
			default:
				t.Fatalf("invalid filter type %d in row %d", ft, y)
			}
		}
		out = append(out, row...)
		prev = row
	}
	return out
}

func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := p-int(a), p-int(b), p-int(c)
	if pa < 0 {
		pa = -pa
	}
	if pb < 0 {
		pb = -pb
	}
	if pc < 0 {
		pc = -pc
	}
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

// pixels decodes the embedded image data of img back into unfiltered rows.
func pixels(t *testing.T, img *memimage.Image) []byte {
	t.Helper()
	parms := img.Parms
	if parms == nil {
		t.Fatal("no decode parameters set")
	}
	rowLen := (parms.Columns*parms.Colors*parms.BitsPerComponent + 7) / 8
	bpp := (parms.Colors*parms.BitsPerComponent + 7) / 8
	return unfilter(t, inflate(t, img.Data), rowLen, bpp)
}

func TestConvertGray(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 8, 5))
	for i := range m.Pix {
		m.Pix[i] = byte(i * 5)
	}

	alloc := &memimage.Allocator{}
	obj, err := pngembed.ConvertPNG(encodePNG(t, m), alloc.Alloc)
	if err != nil {
		t.Fatal(err)
	}
	img := obj.(*memimage.Image)

	if img.Width != 8 || img.Height != 5 || img.BitsPerComponent != 8 {
		t.Errorf("got %dx%d/%d bits", img.Width, img.Height, img.BitsPerComponent)
	}
	if img.Filter != pngembed.FilterFlate {
		t.Errorf("filter = %q", img.Filter)
	}
	wantParms := &pngembed.DecodeParms{
		Predictor:        15,
		Colors:           1,
		Columns:          8,
		BitsPerComponent: 8,
	}
	if d := cmp.Diff(wantParms, img.Parms); d != "" {
		t.Errorf("decode parameters differ (-want +got):\n%s", d)
	}
	// without profile chunks, grayscale images get a default ICC profile
	if img.ColorSpace.Family() != color.FamilyICCBased {
		t.Errorf("color space family = %q", img.ColorSpace.Family())
	}
	if img.ColorSpace.Channels() != 1 {
		t.Errorf("color space has %d channels", img.ColorSpace.Channels())
	}

	if d := cmp.Diff(m.Pix, pixels(t, img)); d != "" {
		t.Errorf("pixel data differs (-want +got):\n%s", d)
	}
}

func TestConvertRGB(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 7, 4))
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i] = byte(i)
		m.Pix[i+1] = byte(i / 2)
		m.Pix[i+2] = byte(255 - i)
		m.Pix[i+3] = 255 // fully opaque, encodes as color type 2
	}

	alloc := &memimage.Allocator{}
	obj, err := pngembed.ConvertPNG(encodePNG(t, m), alloc.Alloc)
	if err != nil {
		t.Fatal(err)
	}
	img := obj.(*memimage.Image)

	if img.ColorSpace != color.DeviceRGB {
		t.Errorf("color space = %v", img.ColorSpace)
	}
	if img.Parms.Colors != 3 || img.Parms.Columns != 7 {
		t.Errorf("decode parameters = %+v", img.Parms)
	}
	if img.SoftMask != nil {
		t.Error("unexpected soft mask on opaque image")
	}

	want := make([]byte, 0, 7*4*3)
	for i := 0; i < len(m.Pix); i += 4 {
		want = append(want, m.Pix[i], m.Pix[i+1], m.Pix[i+2])
	}
	if d := cmp.Diff(want, pixels(t, img)); d != "" {
		t.Errorf("pixel data differs (-want +got):\n%s", d)
	}
}

func TestConvertGray16(t *testing.T) {
	m := image.NewGray16(image.Rect(0, 0, 4, 3))
	for i := 0; i < 4*3; i++ {
		m.SetGray16(i%4, i/4, stdcolor.Gray16{Y: uint16(i * 4111)})
	}

	alloc := &memimage.Allocator{}
	obj, err := pngembed.ConvertPNG(encodePNG(t, m), alloc.Alloc)
	if err != nil {
		t.Fatal(err)
	}
	img := obj.(*memimage.Image)

	if img.BitsPerComponent != 16 {
		t.Errorf("bits per component = %d", img.BitsPerComponent)
	}
	if d := cmp.Diff(m.Pix, pixels(t, img)); d != "" {
		t.Errorf("pixel data differs (-want +got):\n%s", d)
	}
}

func TestConvertIndexed(t *testing.T) {
	// more than 16 colors, to force 8-bit samples
	pal := make(stdcolor.Palette, 20)
	var plte []byte
	for i := range pal {
		r, g, b := byte(10*i), byte(255-10*i), byte(7*i)
		pal[i] = stdcolor.NRGBA{R: r, G: g, B: b, A: 255}
		plte = append(plte, r, g, b)
	}
	m := image.NewPaletted(image.Rect(0, 0, 6, 6), pal)
	for i := range m.Pix {
		m.Pix[i] = byte(i % len(pal))
	}

	alloc := &memimage.Allocator{}
	obj, err := pngembed.ConvertPNG(encodePNG(t, m), alloc.Alloc)
	if err != nil {
		t.Fatal(err)
	}
	img := obj.(*memimage.Image)

	space, ok := img.ColorSpace.(*color.SpaceIndexed)
	if !ok {
		t.Fatalf("color space = %v", img.ColorSpace)
	}
	if space.Base != color.DeviceRGB {
		t.Errorf("base color space = %v", space.Base)
	}
	if space.HiVal != len(pal)-1 {
		t.Errorf("hival = %d, want %d", space.HiVal, len(pal)-1)
	}
	if d := cmp.Diff(plte, space.Lookup()); d != "" {
		t.Errorf("lookup table differs (-want +got):\n%s", d)
	}
	if img.Parms.Colors != 1 {
		t.Errorf("decode parameters = %+v", img.Parms)
	}
	if img.SoftMask != nil {
		t.Error("unexpected soft mask on opaque palette")
	}
	if d := cmp.Diff(m.Pix, pixels(t, img)); d != "" {
		t.Errorf("pixel data differs (-want +got):\n%s", d)
	}
}

// deflate compresses filtered row data the way an encoder would store it
// in an IDAT chunk.
func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestConvertIndexedMask checks that a transparency table shorter than the
// palette yields a soft mask padded with fully opaque entries, sharing the
// encoded rows of the color image.
func TestConvertIndexedMask(t *testing.T) {
	// 4 palette entries, alpha known for the first 2 only
	plte := []byte{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
		255, 255, 255,
	}
	trns := []byte{0, 128}
	rows := []byte{
		0, 0, 1, 2, 3, // filter type 0 per row
		0, 3, 2, 1, 0,
	}
	data := buildPNG(
		rawChunk{"IHDR", ihdrRaw(4, 2, 8, 3)},
		rawChunk{"PLTE", plte},
		rawChunk{"tRNS", trns},
		rawChunk{"IDAT", deflate(t, rows)},
		rawChunk{"IEND", nil},
	)

	alloc := &memimage.Allocator{}
	obj, err := pngembed.ConvertPNG(data, alloc.Alloc)
	if err != nil {
		t.Fatal(err)
	}
	img := obj.(*memimage.Image)

	mask := img.SoftMask
	if mask == nil {
		t.Fatal("no soft mask attached")
	}
	space, ok := mask.ColorSpace.(*color.SpaceIndexed)
	if !ok {
		t.Fatalf("mask color space = %v", mask.ColorSpace)
	}
	if space.Base != color.DeviceGray {
		t.Errorf("mask base color space = %v", space.Base)
	}
	wantLookup := []byte{0, 128, 255, 255}
	if d := cmp.Diff(wantLookup, space.Lookup()); d != "" {
		t.Errorf("mask lookup differs (-want +got):\n%s", d)
	}
	if !bytes.Equal(mask.Data, img.Data) {
		t.Error("mask does not share the encoded rows")
	}
	if d := cmp.Diff(img.Parms, mask.Parms); d != "" {
		t.Errorf("mask decode parameters differ (-image +mask):\n%s", d)
	}
	if mask.Width != 4 || mask.Height != 2 || mask.BitsPerComponent != 8 {
		t.Errorf("mask is %dx%d/%d bits", mask.Width, mask.Height, mask.BitsPerComponent)
	}
}

// ihdrRaw builds IHDR data bytes with all fields explicit.
func ihdrRaw(width, height, bitDepth, colorType int) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b, uint32(width))
	binary.BigEndian.PutUint32(b[4:], uint32(height))
	b[8] = byte(bitDepth)
	b[9] = byte(colorType)
	return b
}

func TestConvertUnsupported(t *testing.T) {
	idat := rawChunk{"IDAT", []byte{1, 2, 3}}
	iend := rawChunk{"IEND", nil}
	plte := rawChunk{"PLTE", []byte{0, 0, 0}}

	mutate := func(f func(ihdr []byte)) []byte {
		b := ihdrRaw(1, 1, 8, 0)
		f(b)
		return b
	}

	tests := []struct {
		name   string
		chunks []rawChunk
	}{
		{"bit depth", []rawChunk{{"IHDR", ihdrRaw(1, 1, 3, 0)}, idat, iend}},
		{"zero width", []rawChunk{{"IHDR", ihdrRaw(0, 1, 8, 0)}, idat, iend}},
		{"zero height", []rawChunk{{"IHDR", ihdrRaw(1, 0, 8, 0)}, idat, iend}},
		{"compression method", []rawChunk{{"IHDR", mutate(func(b []byte) { b[10] = 1 })}, idat, iend}},
		{"filter method", []rawChunk{{"IHDR", mutate(func(b []byte) { b[11] = 1 })}, idat, iend}},
		{"interlace", []rawChunk{{"IHDR", mutate(func(b []byte) { b[12] = 1 })}, idat, iend}},
		{"gray alpha", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 4)}, idat, iend}},
		{"rgb alpha", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 6)}, idat, iend}},
		{"bad color type", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 5)}, idat, iend}},
		{"gray transparent color", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 0)},
			{"tRNS", []byte{0, 0}}, idat, iend}},
		{"rgb transparent color", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 2)},
			{"tRNS", []byte{0, 0, 0, 0, 0, 0}}, idat, iend}},
		{"indexed 16 bit", []rawChunk{{"IHDR", ihdrRaw(1, 1, 16, 3)}, plte, idat, iend}},
		{"ragged palette", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 3)},
			{"PLTE", []byte{0, 0, 0, 1}}, idat, iend}},
		{"oversized transparency", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 3)},
			plte, {"tRNS", []byte{0, 0}}, idat, iend}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			alloc := &memimage.Allocator{}
			_, err := pngembed.ConvertPNG(buildPNG(test.chunks...), alloc.Alloc)
			var unsupportedErr *pngembed.UnsupportedError
			if !errors.As(err, &unsupportedErr) {
				t.Errorf("got %v, want an UnsupportedError", err)
			}
			if len(alloc.Objects) != 0 {
				t.Errorf("%d objects allocated for rejected input", len(alloc.Objects))
			}
		})
	}
}

func TestConvertStructural(t *testing.T) {
	idat := rawChunk{"IDAT", []byte{1, 2, 3}}
	iend := rawChunk{"IEND", nil}

	tests := []struct {
		name   string
		chunks []rawChunk
	}{
		{"short IHDR", []rawChunk{{"IHDR", make([]byte, 12)}, idat, iend}},
		{"indexed without PLTE", []rawChunk{{"IHDR", ihdrRaw(1, 1, 8, 3)}, idat, iend}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := pngembed.ConvertPNG(buildPNG(test.chunks...), nil)
			var structuralErr *pngembed.StructuralError
			if !errors.As(err, &structuralErr) {
				t.Errorf("got %v, want a StructuralError", err)
			}
		})
	}
}

func TestConvertCorrupt(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 4, 4))
	data := encodePNG(t, m)

	// flip one bit inside the IDAT payload
	idx := bytes.Index(data, []byte("IDAT")) + 6
	data[idx] ^= 0x40

	_, err := pngembed.ConvertPNG(data, nil)
	var integrityErr *pngembed.IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("got %v, want an IntegrityError", err)
	}
	if integrityErr.Type != pngembed.ChunkIDAT {
		t.Errorf("damaged chunk reported as %s", integrityErr.Type)
	}
}
