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

package color

import (
	"encoding/binary"
	"fmt"
	"math"

	"seehuhn.de/go/icc"
)

// Synthesized ICC profiles.
//
// ICC-based color spaces decode noticeably faster than CalGray/CalRGB in
// common PDF viewers, so the converter attaches a small synthesized profile
// where the two are behaviorally equivalent.  The grayscale profile built
// here is a minimal version 2 profile: a display-class header, required
// description and copyright tags, the media white point, and a pure-gamma
// tone curve.  RGB images use the stock sRGB profile instead.

// DefaultGray returns an ICC-based grayscale color space with a pure-gamma
// tone curve.
func DefaultGray(gamma float64) (*SpaceICCBased, error) {
	if gamma <= 0 || gamma >= 256 {
		return nil, fmt.Errorf("DefaultGray: invalid gamma %f", gamma)
	}
	p := newProfileBuilder("GRAY")
	p.addDesc("gray built-in")
	p.addXYZ("wtpt", 0.9642, 1.0, 0.8249)
	p.addCurve("kTRC", gamma)
	p.addText("cprt", "no copyright, use freely")
	return ICCBased(p.bytes())
}

// DefaultRGB returns an ICC-based RGB color space using the reference
// sRGB (version 2) profile.
func DefaultRGB() (*SpaceICCBased, error) {
	return ICCBased(icc.SRGBv2Profile)
}

const profileHeaderLen = 128

type profileTag struct {
	sig  string
	data []byte
}

type profileBuilder struct {
	colorSpace string
	tags       []profileTag
}

func newProfileBuilder(colorSpace string) *profileBuilder {
	return &profileBuilder{colorSpace: colorSpace}
}

func (p *profileBuilder) add(sig string, data []byte) {
	p.tags = append(p.tags, profileTag{sig: sig, data: data})
}

// padded returns the length of data rounded up to 4-byte alignment.
func padded(n int) int {
	return (n + 3) &^ 3
}

// addDesc adds a textDescriptionType tag with the given ASCII name.
func (p *profileBuilder) addDesc(name string) {
	data := make([]byte, 0, 90+len(name)+1)
	data = append(data, "desc"...)
	data = append(data, 0, 0, 0, 0)
	data = binary.BigEndian.AppendUint32(data, uint32(len(name)+1))
	data = append(data, name...)
	data = append(data, 0)
	// no unicode and no scriptcode localizations
	data = binary.BigEndian.AppendUint32(data, 0) // unicode language code
	data = binary.BigEndian.AppendUint32(data, 0) // unicode count
	data = append(data, 0, 0)                     // scriptcode
	data = append(data, 0)                        // macintosh count
	data = append(data, make([]byte, 67)...)
	p.add("desc", data)
}

// addXYZ adds an XYZType tag holding one XYZ value.
func (p *profileBuilder) addXYZ(sig string, x, y, z float64) {
	data := make([]byte, 0, 20)
	data = append(data, "XYZ "...)
	data = append(data, 0, 0, 0, 0)
	data = binary.BigEndian.AppendUint32(data, s15Fixed16(x))
	data = binary.BigEndian.AppendUint32(data, s15Fixed16(y))
	data = binary.BigEndian.AppendUint32(data, s15Fixed16(z))
	p.add(sig, data)
}

// addCurve adds a curveType tag holding a pure gamma curve.
func (p *profileBuilder) addCurve(sig string, gamma float64) {
	data := make([]byte, 0, 14)
	data = append(data, "curv"...)
	data = append(data, 0, 0, 0, 0)
	data = binary.BigEndian.AppendUint32(data, 1)
	u := uint16(math.Round(gamma * 256)) // u8Fixed8
	data = binary.BigEndian.AppendUint16(data, u)
	p.add(sig, data)
}

// addText adds a textType tag.
func (p *profileBuilder) addText(sig, text string) {
	data := make([]byte, 0, 12+len(text)+1)
	data = append(data, "text"...)
	data = append(data, 0, 0, 0, 0)
	data = append(data, text...)
	data = append(data, 0)
	p.add(sig, data)
}

func (p *profileBuilder) bytes() []byte {
	tagTableLen := 4 + 12*len(p.tags)
	size := profileHeaderLen + tagTableLen
	for _, tag := range p.tags {
		size += padded(len(tag.data))
	}

	buf := make([]byte, 0, size)

	// profile header
	buf = binary.BigEndian.AppendUint32(buf, uint32(size))
	buf = binary.BigEndian.AppendUint32(buf, 0)          // preferred CMM
	buf = binary.BigEndian.AppendUint32(buf, 0x02100000) // version 2.1
	buf = append(buf, "mntr"...)
	buf = append(buf, p.colorSpace...)
	buf = append(buf, "XYZ "...)
	buf = appendDateTime(buf, 2026, 1, 1)
	buf = append(buf, "acsp"...)
	buf = binary.BigEndian.AppendUint32(buf, 0) // platform
	buf = binary.BigEndian.AppendUint32(buf, 0) // flags
	buf = binary.BigEndian.AppendUint32(buf, 0) // manufacturer
	buf = binary.BigEndian.AppendUint32(buf, 0) // model
	buf = binary.BigEndian.AppendUint64(buf, 0) // attributes
	buf = binary.BigEndian.AppendUint32(buf, 0) // rendering intent
	// PCS illuminant, D50
	buf = binary.BigEndian.AppendUint32(buf, 0x0000F6D6)
	buf = binary.BigEndian.AppendUint32(buf, 0x00010000)
	buf = binary.BigEndian.AppendUint32(buf, 0x0000D32D)
	buf = binary.BigEndian.AppendUint32(buf, 0) // creator
	buf = append(buf, make([]byte, profileHeaderLen-len(buf))...)

	// tag table
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(p.tags)))
	offset := profileHeaderLen + tagTableLen
	for _, tag := range p.tags {
		buf = append(buf, tag.sig...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(offset))
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(tag.data)))
		offset += padded(len(tag.data))
	}

	// tag data, 4-byte aligned
	for _, tag := range p.tags {
		buf = append(buf, tag.data...)
		buf = append(buf, make([]byte, padded(len(tag.data))-len(tag.data))...)
	}
	return buf
}

func appendDateTime(buf []byte, year, month, day int) []byte {
	buf = binary.BigEndian.AppendUint16(buf, uint16(year))
	buf = binary.BigEndian.AppendUint16(buf, uint16(month))
	buf = binary.BigEndian.AppendUint16(buf, uint16(day))
	buf = append(buf, make([]byte, 6)...) // hour, minute, second
	return buf
}

func s15Fixed16(v float64) uint32 {
	return uint32(int32(math.Round(v * 65536)))
}
