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

// CRC-32 as defined in the PNG specification, annex D.
// The table holds the CRCs of all eight-bit messages for the reflected
// polynomial 0xEDB88320.

var crcTable [256]uint32

func init() {
	for n := range crcTable {
		c := uint32(n)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = 0xEDB88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crcTable[n] = c
	}
}

// CRC returns the PNG CRC-32 checksum of data.
func CRC(data []byte) uint32 {
	c := ^uint32(0)
	for _, b := range data {
		c = crcTable[(c^uint32(b))&0xff] ^ (c >> 8)
	}
	return ^c
}
