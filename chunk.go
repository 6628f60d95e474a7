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

// ChunkType is a four-byte PNG chunk type code, stored as a big-endian
// integer.
type ChunkType uint32

// Chunk type codes consumed or explicitly skipped by the converter.
const (
	ChunkIHDR ChunkType = 0x49484452
	ChunkPLTE ChunkType = 0x504C5445
	ChunkIDAT ChunkType = 0x49444154
	ChunkIEND ChunkType = 0x49454E44
	ChunktRNS ChunkType = 0x74524E53
	ChunkcHRM ChunkType = 0x6348524D
	ChunkgAMA ChunkType = 0x67414D41
	ChunkiCCP ChunkType = 0x69434350
	ChunksBIT ChunkType = 0x73424954
	ChunksRGB ChunkType = 0x73524742
	ChunktEXt ChunkType = 0x74455874
	ChunkzTXt ChunkType = 0x7A545874
	ChunkiTXt ChunkType = 0x69545874
	ChunkkBKG ChunkType = 0x6B424B47
	ChunkhIST ChunkType = 0x68495354
	ChunkpHYs ChunkType = 0x70485973
	ChunksPLT ChunkType = 0x73504C54
	ChunktIME ChunkType = 0x74494D45
)

// String returns the four ASCII characters of the type code.
func (t ChunkType) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// chunkKind classifies how the converter treats a chunk type.
type chunkKind int

const (
	kindHeader chunkKind = iota
	kindPalette
	kindImageData
	kindEnd
	kindTransparency
	kindGamma
	kindChromaticity
	kindICCProfile
	kindSignificantBits
	kindSRGB

	// kindIgnored covers text, metadata, timing and physical-size chunks
	// as well as all type codes the converter does not know.
	kindIgnored
)

func kindOf(t ChunkType) chunkKind {
	switch t {
	case ChunkIHDR:
		return kindHeader
	case ChunkPLTE:
		return kindPalette
	case ChunkIDAT:
		return kindImageData
	case ChunkIEND:
		return kindEnd
	case ChunktRNS:
		return kindTransparency
	case ChunkgAMA:
		return kindGamma
	case ChunkcHRM:
		return kindChromaticity
	case ChunkiCCP:
		return kindICCProfile
	case ChunksBIT:
		return kindSignificantBits
	case ChunksRGB:
		return kindSRGB
	default:
		return kindIgnored
	}
}

// Chunk is a read-only view into one chunk of a PNG byte stream.  A Chunk
// never owns a copy of the data; Start and Length locate the chunk's data
// bytes within the complete input buffer.  The four type bytes immediately
// precede the data, so Start is at least 4 in any valid chunk.
type Chunk struct {
	// Data is the complete PNG byte stream the chunk points into.
	// The buffer is only ever read, never mutated.
	Data []byte

	// Type is the four-byte chunk type code.
	Type ChunkType

	// Start is the offset of the first data byte within Data.
	Start int

	// Length is the number of data bytes.
	Length int

	// CRC is the checksum stored after the chunk data.
	CRC uint32
}

// Bytes returns the data bytes of the chunk as a view into the original
// buffer.
func (c *Chunk) Bytes() []byte {
	return c.Data[c.Start : c.Start+c.Length]
}

// Sane reports whether the chunk is plausible: a nil chunk is vacuously
// sane; otherwise the data window must lie within the buffer, leaving room
// for the preceding type bytes, and the CRC-32 over the type and data bytes
// must match the stored checksum.
func (c *Chunk) Sane() bool {
	return c.check() == nil
}

func (c *Chunk) check() error {
	if c == nil {
		return nil
	}
	if c.Start+c.Length >= len(c.Data) {
		return structuralf(int64(c.Start),
			"%s chunk data overruns %d byte buffer", c.Type, len(c.Data))
	}
	if c.Start < 4 {
		return structuralf(int64(c.Start), "%s chunk data starts before its type code", c.Type)
	}
	// The type bytes take part in the checksum.
	computed := CRC(c.Data[c.Start-4 : c.Start+c.Length])
	if computed != c.CRC {
		return &IntegrityError{Type: c.Type, Stored: c.CRC, Computed: computed}
	}
	return nil
}

// converterState collects the chunks of one parsed PNG stream.  All chunks
// are views into the same input buffer.
type converterState struct {
	IHDR *Chunk
	PLTE *Chunk
	TRNS *Chunk
	SRGB *Chunk
	GAMA *Chunk
	CHRM *Chunk
	ICCP *Chunk
	IDAT []*Chunk

	// HasSBIT records that an sBIT chunk was present.  The chunk itself
	// is not used.
	HasSBIT bool
}

// check verifies that the state describes a usable image: the IHDR chunk
// exists and is sane, every optional chunk is either absent or sane, and at
// least one sane IDAT chunk is present.
func (s *converterState) check() error {
	if s.IHDR == nil {
		return structuralf(0, "missing IHDR chunk")
	}
	optional := []*Chunk{s.IHDR, s.PLTE, s.ICCP, s.TRNS, s.SRGB, s.CHRM, s.GAMA}
	for _, c := range optional {
		if err := c.check(); err != nil {
			return err
		}
	}
	if len(s.IDAT) == 0 {
		return structuralf(0, "no IDAT chunks")
	}
	for _, c := range s.IDAT {
		if err := c.check(); err != nil {
			return err
		}
	}
	return nil
}
