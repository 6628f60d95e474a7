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
	"errors"
	"fmt"

	"seehuhn.de/go/icc"
)

// SpaceICCBased represents an ICC-based color space.
type SpaceICCBased struct {
	// N is the number of color components.
	N int

	// Alternate (optional) is the color space to use if the profile
	// cannot be processed.
	Alternate Space

	// profile contains the ICC profile data.
	profile []byte

	// compressed is set if profile holds a zlib stream copied verbatim
	// from the source instead of raw profile bytes.
	compressed bool
}

// ICCBased returns a new ICC-based color space for a raw (uncompressed)
// ICC profile.  The number of components is taken from the profile.
func ICCBased(profile []byte) (*SpaceICCBased, error) {
	if len(profile) == 0 {
		return nil, errors.New("ICCBased: missing profile")
	}

	p, err := icc.Decode(profile)
	if err != nil {
		return nil, err
	}

	n := p.ColorSpace.NumComponents()
	var alternate Space
	switch n {
	case 1:
		alternate = DeviceGray
	case 3:
		alternate = DeviceRGB
	case 4:
		alternate = DeviceCMYK
	default:
		return nil, fmt.Errorf("ICCBased: invalid number of components %d", n)
	}

	return &SpaceICCBased{
		N:         n,
		Alternate: alternate,
		profile:   profile,
	}, nil
}

// ICCBasedCompressed returns an ICC-based color space wrapping a profile
// which is still zlib-compressed.  The compressed bytes are kept verbatim;
// they must be embedded behind a flate filter.  Since the profile is not
// decompressed, the number of components must be supplied by the caller.
func ICCBasedCompressed(compressed []byte, n int, alternate Space) (*SpaceICCBased, error) {
	if len(compressed) == 0 {
		return nil, errors.New("ICCBased: missing profile")
	}
	if n != 1 && n != 3 && n != 4 {
		return nil, fmt.Errorf("ICCBased: invalid number of components %d", n)
	}
	return &SpaceICCBased{
		N:          n,
		Alternate:  alternate,
		profile:    compressed,
		compressed: true,
	}, nil
}

// Family returns /ICCBased.
// This implements the [Space] interface.
func (s *SpaceICCBased) Family() string { return FamilyICCBased }

// Channels returns the number of color components.
// This implements the [Space] interface.
func (s *SpaceICCBased) Channels() int { return s.N }

// Profile returns the profile data together with a flag indicating whether
// the bytes are a zlib stream (to be embedded behind a flate filter) or raw
// profile bytes.
func (s *SpaceICCBased) Profile() (data []byte, compressed bool) {
	return s.profile, s.compressed
}
