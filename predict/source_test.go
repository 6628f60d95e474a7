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
	stdcolor "image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPacked32Orders(t *testing.T) {
	tests := []struct {
		name      string
		order     PixelOrder
		pixel     uint32
		wantRow   []byte
		wantAlpha byte
		hasAlpha  bool
	}{
		{"RGB", OrderRGB, 0x00112233, []byte{0x11, 0x22, 0x33}, 0, false},
		{"ARGB", OrderARGB, 0x44112233, []byte{0x11, 0x22, 0x33}, 0x44, true},
		{"BGR", OrderBGR, 0x00332211, []byte{0x11, 0x22, 0x33}, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src := &Packed32{
				Pix:    []uint32{test.pixel},
				Stride: 1,
				Width:  1,
				Height: 1,
				Order:  test.order,
			}
			if src.HasAlpha() != test.hasAlpha {
				t.Errorf("HasAlpha() = %t", src.HasAlpha())
			}
			row := make([]byte, 3)
			alpha := make([]byte, 1)
			src.ReadRow(0, row, alpha)
			if d := cmp.Diff(test.wantRow, row); d != "" {
				t.Errorf("row differs (-want +got):\n%s", d)
			}
			if test.hasAlpha && alpha[0] != test.wantAlpha {
				t.Errorf("alpha = %d, want %d", alpha[0], test.wantAlpha)
			}
		})
	}
}

func TestShorts16Alpha(t *testing.T) {
	src := &Shorts16{
		Pix:    []uint16{0x1234, 0x5678, 0x9ABC, 0xDEF0},
		Stride: 4,
		Width:  2,
		Height: 1,
		Colors: 1,
		Alpha:  true,
	}
	row := make([]byte, 4)
	alpha := make([]byte, 2)
	src.ReadRow(0, row, alpha)

	wantRow := []byte{0x12, 0x34, 0x9A, 0xBC}
	if d := cmp.Diff(wantRow, row); d != "" {
		t.Errorf("row differs (-want +got):\n%s", d)
	}
	// the alpha mask keeps the high byte of each 16-bit sample
	wantAlpha := []byte{0x56, 0xDE}
	if d := cmp.Diff(wantAlpha, alpha); d != "" {
		t.Errorf("alpha differs (-want +got):\n%s", d)
	}
}

func TestByteTupleStride(t *testing.T) {
	// rows with trailing padding bytes in the buffer
	src := &ByteTuple{
		Pix: []byte{
			1, 2, 99,
			3, 4, 99,
		},
		Stride: 3,
		Width:  2,
		Height: 2,
		Colors: 1,
	}
	row := make([]byte, 2)
	src.ReadRow(1, row, nil)
	if row[0] != 3 || row[1] != 4 {
		t.Errorf("row = %v", row)
	}
}

func TestFromImage(t *testing.T) {
	type layout struct {
		channels int
		bytes    int
		alpha    bool
	}
	tests := []struct {
		name string
		img  image.Image
		want *layout
	}{
		{"Gray", image.NewGray(image.Rect(0, 0, 2, 2)), &layout{1, 1, false}},
		{"NRGBA", image.NewNRGBA(image.Rect(0, 0, 2, 2)), &layout{3, 1, true}},
		{"CMYK", image.NewCMYK(image.Rect(0, 0, 2, 2)), &layout{4, 1, false}},
		{"Gray16", image.NewGray16(image.Rect(0, 0, 2, 2)), &layout{1, 2, false}},
		{"NRGBA64", image.NewNRGBA64(image.Rect(0, 0, 2, 2)), &layout{3, 2, true}},
		{"RGBA", image.NewRGBA(image.Rect(0, 0, 2, 2)), nil},
		{"RGBA64", image.NewRGBA64(image.Rect(0, 0, 2, 2)), nil},
		{"Paletted", image.NewPaletted(image.Rect(0, 0, 2, 2), nil), nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src, ok := FromImage(test.img)
			if (test.want != nil) != ok {
				t.Fatalf("ok = %t", ok)
			}
			if test.want == nil {
				return
			}
			got := &layout{src.Channels(), src.BytesPerComponent(), src.HasAlpha()}
			if d := cmp.Diff(test.want, got, cmp.AllowUnexported(layout{})); d != "" {
				t.Errorf("layout differs (-want +got):\n%s", d)
			}
		})
	}
}

func TestFromImageNRGBA64(t *testing.T) {
	m := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	m.SetNRGBA64(0, 0, stdcolor.NRGBA64{R: 0x1122, G: 0x3344, B: 0x5566, A: 0x7788})
	m.SetNRGBA64(1, 0, stdcolor.NRGBA64{R: 0x99AA, G: 0xBBCC, B: 0xDDEE, A: 0xFFFF})

	src, ok := FromImage(m)
	if !ok {
		t.Fatal("NRGBA64 image not supported")
	}
	row := make([]byte, 2*3*2)
	alpha := make([]byte, 2)
	src.ReadRow(0, row, alpha)

	wantRow := []byte{
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66,
		0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE,
	}
	if d := cmp.Diff(wantRow, row); d != "" {
		t.Errorf("row differs (-want +got):\n%s", d)
	}
	if alpha[0] != 0x77 || alpha[1] != 0xFF {
		t.Errorf("alpha = %v", alpha)
	}
}

// TestBoundsSubimage makes sure the row access of a sub-image view stays
// within the view.
func TestGraySubimage(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range m.Pix {
		m.Pix[i] = byte(i)
	}
	sub := m.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)

	src, ok := FromImage(sub)
	if !ok {
		t.Fatal("sub-image not supported")
	}
	b := src.Bounds()
	if b.XMax-b.XMin != 2 || b.YMax-b.YMin != 2 {
		t.Fatalf("bounds = %v", b)
	}
	row := make([]byte, 2)
	src.ReadRow(0, row, nil)
	if row[0] != 5 || row[1] != 6 {
		t.Errorf("row = %v", row)
	}
}
