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

// Package color provides color space descriptors for embedded images.
//
// A descriptor is a transient value object: the converter builds it while
// processing one image and the surrounding document model decides how it is
// persisted.  Descriptors never reference a document.
package color

// Space describes the color space of an embedded image.
type Space interface {
	// Family returns the family name of the color space.
	Family() string

	// Channels returns the number of color components per sample.
	Channels() int
}

// Color space families used by this package.
const (
	FamilyDeviceGray = "DeviceGray"
	FamilyDeviceRGB  = "DeviceRGB"
	FamilyDeviceCMYK = "DeviceCMYK"
	FamilyCalGray    = "CalGray"
	FamilyCalRGB     = "CalRGB"
	FamilyICCBased   = "ICCBased"
	FamilyIndexed    = "Indexed"
)

// Singleton objects for the color spaces which do not require any
// parameters.
var (
	DeviceGray = spaceDeviceGray{}
	DeviceRGB  = spaceDeviceRGB{}
	DeviceCMYK = spaceDeviceCMYK{}
)

type spaceDeviceGray struct{}

// Family returns /DeviceGray.
// This implements the [Space] interface.
func (spaceDeviceGray) Family() string { return FamilyDeviceGray }

// Channels returns 1.
// This implements the [Space] interface.
func (spaceDeviceGray) Channels() int { return 1 }

type spaceDeviceRGB struct{}

// Family returns /DeviceRGB.
// This implements the [Space] interface.
func (spaceDeviceRGB) Family() string { return FamilyDeviceRGB }

// Channels returns 3.
// This implements the [Space] interface.
func (spaceDeviceRGB) Channels() int { return 3 }

type spaceDeviceCMYK struct{}

// Family returns /DeviceCMYK.
// This implements the [Space] interface.
func (spaceDeviceCMYK) Family() string { return FamilyDeviceCMYK }

// Channels returns 4.
// This implements the [Space] interface.
func (spaceDeviceCMYK) Channels() int { return 4 }

func isPosVec3(x []float64) bool {
	if len(x) != 3 {
		return false
	}
	for _, v := range x {
		if v <= 0 {
			return false
		}
	}
	return true
}
