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
	"bytes"

	"seehuhn.de/go/pngembed/color"
)

// resolveColorSpace layers the PNG's color profile information on top of
// the base device space.  The precedence order is: embedded ICC profile,
// sRGB marker, gamma, chromaticities, synthesized default profile.
// Where an ICC-based space and a CalGray/CalRGB space would be equivalent,
// the ICC-based space is preferred because it decodes faster in common
// consumers.
func resolveColorSpace(state *converterState, base color.Space) (color.Space, RenderingIntent, error) {
	grayscale := base.Channels() == 1

	gamma := 1.0
	if state.GAMA != nil {
		if state.GAMA.Length != 4 {
			return nil, "", unsupportedf("gAMA chunk with %d bytes", state.GAMA.Length)
		}
		raw := readU32(state.GAMA.Data, state.GAMA.Start)
		if raw == 0 {
			return nil, "", unsupportedf("gAMA value 0")
		}
		gamma = 1 / (float64(raw) / 100000)
	}

	if state.ICCP != nil {
		profile, err := compressedProfile(state.ICCP)
		if err != nil {
			return nil, "", err
		}
		cs, err := color.ICCBasedCompressed(profile, base.Channels(), base)
		if err != nil {
			return nil, "", err
		}
		return cs, "", nil
	}

	if state.SRGB != nil {
		if state.SRGB.Length != 1 {
			return nil, "", unsupportedf("sRGB chunk with %d bytes", state.SRGB.Length)
		}
		intent, _ := intentForByte(state.SRGB.Bytes()[0])

		// the sRGB marker implies gamma 2.2
		var cs *color.SpaceICCBased
		var err error
		if grayscale {
			cs, err = color.DefaultGray(2.2)
		} else {
			cs, err = color.DefaultRGB()
		}
		if err != nil {
			return nil, "", err
		}
		return cs, intent, nil
	}

	if grayscale {
		if state.GAMA != nil {
			if gamma == 1 {
				return base, "", nil
			}
			cs, err := color.CalGray(color.WhitePointD65, nil, gamma)
			if err != nil {
				return nil, "", unsupportedf("gAMA: %s", err)
			}
			return cs, "", nil
		}
		// No profile information at all: attach a default profile for
		// faster downstream decoding.
		cs, err := color.DefaultGray(1)
		if err != nil {
			return nil, "", err
		}
		return cs, "", nil
	}

	if state.CHRM != nil {
		if state.CHRM.Length != 32 {
			return nil, "", unsupportedf("cHRM chunk with %d bytes", state.CHRM.Length)
		}
		v := make([]float64, 8)
		for i := range v {
			raw := int32(readU32(state.CHRM.Data, state.CHRM.Start+4*i))
			v[i] = float64(raw) / 100000
		}
		cs, err := color.CalRGBFromChromaticity(
			v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], gamma)
		if err != nil {
			return nil, "", unsupportedf("cHRM: %s", err)
		}
		return cs, "", nil
	}

	return base, "", nil
}

// compressedProfile extracts the still-compressed ICC profile from an iCCP
// chunk, stripping the profile name and the compression method byte.  The
// zlib stream is returned unchanged, preserving the zero-recompression
// property of the conversion.
func compressedProfile(iccp *Chunk) ([]byte, error) {
	data := iccp.Bytes()
	// profile name: 1-79 bytes, NUL-terminated
	sep := bytes.IndexByte(data, 0)
	if sep < 1 || sep > 79 {
		return nil, unsupportedf("iCCP chunk with invalid profile name")
	}
	rest := data[sep+1:]
	if len(rest) < 2 {
		return nil, unsupportedf("iCCP chunk with %d bytes", iccp.Length)
	}
	if method := rest[0]; method != 0 {
		return nil, unsupportedf("iCCP compression method %d", method)
	}
	return rest[1:], nil
}
