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
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zlib"
)

// SpaceIndexed represents an indexed color space: image samples are integer
// indices into a lookup table of colors in a base color space.
type SpaceIndexed struct {
	// Base is the color space the lookup table entries are specified in.
	Base Space

	// HiVal is the largest valid index value.
	HiVal int

	// lookup contains HiVal+1 color entries of Base.Channels() bytes each.
	lookup []byte
}

// Indexed returns a new indexed color space.  The lookup table must contain
// (hival+1)*base.Channels() bytes; a shorter table is padded with 0xFF
// bytes (this is used for transparency tables, where missing entries mean
// fully opaque).
func Indexed(base Space, hival int, lookup []byte) (*SpaceIndexed, error) {
	if base == nil {
		return nil, fmt.Errorf("Indexed: missing base color space")
	}
	if base.Family() == FamilyIndexed {
		return nil, fmt.Errorf("Indexed: invalid base color space")
	}
	if hival < 0 || hival > 255 {
		return nil, fmt.Errorf("Indexed: invalid hival %d", hival)
	}
	need := (hival + 1) * base.Channels()
	if len(lookup) > need {
		return nil, fmt.Errorf("Indexed: lookup table has %d bytes, expected at most %d",
			len(lookup), need)
	}

	table := make([]byte, need)
	n := copy(table, lookup)
	for i := n; i < need; i++ {
		table[i] = 0xFF
	}

	return &SpaceIndexed{
		Base:   base,
		HiVal:  hival,
		lookup: table,
	}, nil
}

// Family returns /Indexed.
// This implements the [Space] interface.
func (s *SpaceIndexed) Family() string { return FamilyIndexed }

// Channels returns 1: each image sample is a single index.
// This implements the [Space] interface.
func (s *SpaceIndexed) Channels() int { return 1 }

// Lookup returns the padded lookup table.
func (s *SpaceIndexed) Lookup() []byte {
	return s.lookup
}

// EncodedLookup returns the lookup table as a zlib stream, ready to be
// embedded behind a flate filter.
func (s *SpaceIndexed) EncodedLookup() ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write(s.lookup); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
