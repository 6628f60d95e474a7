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

// Package predict losslessly encodes in-memory images as PDF image data,
// using the adaptive row filters of the PNG format ahead of zlib
// compression.  It complements the zero-recompression path of the parent
// package for images which did not originate from a PNG stream.
package predict

import (
	"bytes"
	"strconv"

	"github.com/klauspost/compress/zlib"

	"seehuhn.de/go/pngembed"
	"seehuhn.de/go/pngembed/color"
)

// Options control the encoder.  A nil *Options is equivalent to the zero
// value and selects default settings throughout.
type Options struct {
	// CompressionLevel is the zlib compression level for the image data,
	// in the range of [zlib.BestSpeed] to [zlib.BestCompression].  The
	// value 0 selects the default level.
	CompressionLevel int

	// ICCProfile, if non-nil, is a raw ICC profile describing the source
	// colors.  It is used in place of the device color space implied by
	// the channel count, and must have a matching number of components.
	ICCProfile []byte
}

func (o *Options) level() int {
	if o == nil || o.CompressionLevel == 0 {
		return zlib.DefaultCompression
	}
	return o.CompressionLevel
}

func (o *Options) profile() []byte {
	if o == nil {
		return nil
	}
	return o.ICCProfile
}

// Encode losslessly encodes the pixels of src as a PDF image.  Each pixel
// row is filtered with whichever of the five PNG filter types compresses
// best, then the filtered rows are zlib-compressed in one pass.  Sources
// with an alpha channel produce a DeviceGray soft mask which is attached
// to the returned image.
func Encode(src Source, alloc pngembed.Allocator, opts *Options) (pngembed.Object, error) {
	bounds := src.Bounds()
	width := bounds.XMax - bounds.XMin
	height := bounds.YMax - bounds.YMin
	if width <= 0 || height <= 0 {
		return nil, &pngembed.UnsupportedError{Feature: "empty image"}
	}
	colors := src.Channels()
	if colors != 1 && colors != 3 && colors != 4 {
		return nil, &pngembed.UnsupportedError{
			Feature: "pixel sources with " + strconv.Itoa(colors) + " color channels",
		}
	}
	sampleBytes := src.BytesPerComponent()
	if sampleBytes != 1 && sampleBytes != 2 {
		return nil, &pngembed.UnsupportedError{
			Feature: "samples of " + strconv.Itoa(sampleBytes) + " bytes",
		}
	}

	cs, err := encodeColorSpace(colors, opts.profile())
	if err != nil {
		return nil, err
	}

	rowLen := width * colors * sampleBytes
	bpp := colors * sampleBytes

	cur := make([]byte, rowLen)
	prev := make([]byte, rowLen)
	cand := make([][]byte, 5)
	for i := range cand {
		cand[i] = make([]byte, rowLen+1)
		cand[i][0] = byte(i)
	}

	var alphaData []byte
	var alphaRow []byte
	if src.HasAlpha() {
		alphaData = make([]byte, 0, width*height)
		alphaRow = make([]byte, width)
	}

	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, opts.level())
	if err != nil {
		return nil, err
	}
	needClose := true
	defer func() {
		if needClose {
			zw.Close()
		}
	}()

	for y := 0; y < height; y++ {
		src.ReadRow(y, cur, alphaRow)
		if alphaRow != nil {
			alphaData = append(alphaData, alphaRow...)
		}
		filterRow(cur, prev, bpp, cand)
		if _, err := zw.Write(chooseRow(cand)); err != nil {
			return nil, err
		}
		cur, prev = prev, cur
	}
	needClose = false
	if err := zw.Close(); err != nil {
		return nil, err
	}

	// all fallible work happens before the first object is allocated
	var maskData []byte
	if alphaData != nil {
		maskData, err = compress(alphaData, opts.level())
		if err != nil {
			return nil, err
		}
	}

	img := alloc(width, height, sampleBytes*8)
	img.SetCompressedData(buf.Bytes(), pngembed.FilterFlate)
	img.SetDecodeParms(&pngembed.DecodeParms{
		Predictor:        15,
		Colors:           colors,
		Columns:          width,
		BitsPerComponent: sampleBytes * 8,
	})
	img.SetColorSpace(cs)

	if maskData != nil {
		mask := alloc(width, height, 8)
		mask.SetCompressedData(maskData, pngembed.FilterFlate)
		mask.SetColorSpace(color.DeviceGray)
		img.AttachSoftMask(mask)
	}
	return img, nil
}

func encodeColorSpace(colors int, profile []byte) (color.Space, error) {
	if profile != nil {
		cs, err := color.ICCBased(profile)
		if err != nil {
			return nil, err
		}
		if cs.Channels() != colors {
			return nil, &pngembed.UnsupportedError{
				Feature: "ICC profiles with a foreign channel count",
			}
		}
		return cs, nil
	}
	switch colors {
	case 1:
		return color.DeviceGray, nil
	case 4:
		return color.DeviceCMYK, nil
	default:
		return color.DeviceRGB, nil
	}
}

// compress returns data as a zlib stream.  This is used for the soft mask,
// which is stored without a predictor.
func compress(data []byte, level int) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw, err := zlib.NewWriterLevel(buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// filterRow computes the five PNG filter variants of cur into cand.  Each
// candidate row starts with its filter type marker.  prev is the
// unfiltered previous row, all zero for the first row of the image.
func filterRow(cur, prev []byte, bpp int, cand [][]byte) {
	for i, x := range cur {
		var a, c byte
		if i >= bpp {
			a = cur[i-bpp]
			c = prev[i-bpp]
		}
		b := prev[i]
		cand[0][i+1] = x
		cand[1][i+1] = x - a
		cand[2][i+1] = x - b
		cand[3][i+1] = x - byte((int(a)+int(b))/2)
		cand[4][i+1] = x - paeth(a, b, c)
	}
}

// paeth returns the Paeth predictor for the left, above and upper-left
// neighbour samples.  Ties are broken in the order a, b, c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

// chooseRow returns the candidate row with the smallest estimated
// compressed size.  Ties keep the earlier candidate, so that the filter
// types are preferred in the order None, Sub, Up, Average, Paeth.
func chooseRow(cand [][]byte) []byte {
	best := cand[0]
	bestSum := estimate(best)
	for _, row := range cand[1:] {
		if sum := estimate(row); sum < bestSum {
			best = row
			bestSum = sum
		}
	}
	return best
}

// estimate sums the absolute values of the filtered bytes, interpreting
// each byte as a signed 8-bit value.  This is the heuristic recommended
// by the PNG specification, not a true compressed size.
func estimate(row []byte) int64 {
	var sum int64
	for _, v := range row[1:] {
		if v > 127 {
			sum += 256 - int64(v)
		} else {
			sum += int64(v)
		}
	}
	return sum
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
