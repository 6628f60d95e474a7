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
)

// WhitePointD65 is the CIE 1931 XYZ D65 white point, using the CCIR XA/11
// recommended values.
var WhitePointD65 = []float64{0.9505, 1.0000, 1.0890}

// == CalGray ================================================================

// SpaceCalGray represents a calibrated grayscale color space.
type SpaceCalGray struct {
	// WhitePoint is the diffuse white point in CIE 1931 XYZ coordinates.
	WhitePoint []float64

	// BlackPoint is the diffuse black point in CIE 1931 XYZ coordinates.
	BlackPoint []float64

	// Gamma is the exponent of the gray transfer function.
	Gamma float64
}

// CalGray returns a new CalGray color space.
//
// WhitePoint must be a slice of length 3 with positive entries.
// BlackPoint (optional) may be nil, in which case [0 0 0] is used.
// Gamma must be positive.
func CalGray(whitePoint, blackPoint []float64, gamma float64) (*SpaceCalGray, error) {
	if !isPosVec3(whitePoint) {
		return nil, errors.New("CalGray: invalid white point")
	}
	if blackPoint == nil {
		blackPoint = []float64{0, 0, 0}
	} else if len(blackPoint) != 3 {
		return nil, errors.New("CalGray: invalid black point")
	}
	if gamma <= 0 {
		return nil, fmt.Errorf("CalGray: expected gamma > 0, got %f", gamma)
	}

	return &SpaceCalGray{
		WhitePoint: whitePoint,
		BlackPoint: blackPoint,
		Gamma:      gamma,
	}, nil
}

// Family returns /CalGray.
// This implements the [Space] interface.
func (s *SpaceCalGray) Family() string { return FamilyCalGray }

// Channels returns 1.
// This implements the [Space] interface.
func (s *SpaceCalGray) Channels() int { return 1 }

// == CalRGB =================================================================

// SpaceCalRGB represents a calibrated RGB color space.
type SpaceCalRGB struct {
	// WhitePoint is the diffuse white point in CIE 1931 XYZ coordinates.
	WhitePoint []float64

	// BlackPoint is the diffuse black point in CIE 1931 XYZ coordinates.
	BlackPoint []float64

	// Gamma gives the transfer function exponents for the red, green and
	// blue components.
	Gamma []float64

	// Matrix is the 3x3 RGB-to-XYZ transform, stored column-major as
	// [XA YA ZA XB YB ZB XC YC ZC].
	Matrix []float64
}

// CalRGB returns a new CalRGB color space.
//
// WhitePoint must be a slice of length 3 with positive entries.
// BlackPoint, Gamma and Matrix are optional and default to [0 0 0],
// [1 1 1] and the identity matrix.
func CalRGB(whitePoint, blackPoint, gamma, matrix []float64) (*SpaceCalRGB, error) {
	if !isPosVec3(whitePoint) {
		return nil, errors.New("CalRGB: invalid white point")
	}
	if blackPoint == nil {
		blackPoint = []float64{0, 0, 0}
	} else if len(blackPoint) != 3 {
		return nil, errors.New("CalRGB: invalid black point")
	}
	if gamma == nil {
		gamma = []float64{1, 1, 1}
	} else if len(gamma) != 3 {
		return nil, errors.New("CalRGB: invalid gamma")
	}
	if matrix == nil {
		matrix = []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	} else if len(matrix) != 9 {
		return nil, errors.New("CalRGB: invalid matrix")
	}

	return &SpaceCalRGB{
		WhitePoint: whitePoint,
		BlackPoint: blackPoint,
		Gamma:      gamma,
		Matrix:     matrix,
	}, nil
}

// CalRGBFromChromaticity derives a CalRGB color space from the CIE xy
// chromaticity coordinates of the white point and the three primaries, as
// stored in a PNG cHRM chunk.  The whitepoint and transform matrix follow
// the CalRGB derivation of the PDF specification (ISO 32000, CalRGB colour
// spaces); gamma is applied uniformly to all three channels.
func CalRGBFromChromaticity(xW, yW, xR, yR, xG, yG, xB, yB, gamma float64) (*SpaceCalRGB, error) {
	if yW <= 0 || yR <= 0 || yG <= 0 || yB <= 0 {
		return nil, errors.New("CalRGB: invalid chromaticity y coordinate")
	}

	z := yW * ((xG-xB)*yR - (xR-xB)*yG + (xR-xG)*yB)
	if z == 0 {
		return nil, errors.New("CalRGB: degenerate chromaticities")
	}

	// all three of R, G, B are taken as 1
	YA := yR * ((xG-xB)*yW - (xW-xB)*yG + (xW-xG)*yB) / z
	XA := YA * xR / yR
	ZA := YA * ((1-xR)/yR - 1)
	YB := -yG * ((xR-xB)*yW - (xW-xB)*yR + (xW-xR)*yB) / z
	XB := YB * xG / yG
	ZB := YB * ((1-xG)/yG - 1)
	YC := yB * ((xR-xG)*yW - (xW-xG)*yR + (xW-xR)*yG) / z
	XC := YC * xB / yB
	ZC := YC * ((1-xB)/yB - 1)

	whitePoint := []float64{
		XA + XB + XC,
		YA + YB + YC,
		ZA + ZB + ZC,
	}
	matrix := []float64{XA, YA, ZA, XB, YB, ZB, XC, YC, ZC}

	return CalRGB(whitePoint, nil, []float64{gamma, gamma, gamma}, matrix)
}

// Family returns /CalRGB.
// This implements the [Space] interface.
func (s *SpaceCalRGB) Family() string { return FamilyCalRGB }

// Channels returns 3.
// This implements the [Space] interface.
func (s *SpaceCalRGB) Channels() int { return 3 }
