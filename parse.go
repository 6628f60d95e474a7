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

import "encoding/binary"

// sigLen is the length of the PNG file signature.  The signature bytes
// themselves are not checked here; the IHDR requirement below rejects
// non-PNG inputs anyway.
const sigLen = 8

func readU32(data []byte, offset int) uint32 {
	return binary.BigEndian.Uint32(data[offset:])
}

// parsePNG splits data into chunks and routes each chunk by its type.
// Parsing terminates successfully at the first IEND chunk; any trailing
// bytes are ignored.  Checksums are not verified here, see
// [converterState.check].
func parsePNG(data []byte) (*converterState, error) {
	// The smallest input we can do anything with is the signature plus
	// the framing of an IHDR chunk.
	if len(data) < 20 {
		return nil, structuralf(0, "buffer too short (%d bytes)", len(data))
	}

	state := &converterState{}
	ptr := sigLen
	if first := ChunkType(readU32(data, ptr+4)); first != ChunkIHDR {
		return nil, structuralf(int64(ptr+4), "first chunk is %s, not IHDR", first)
	}

	for ptr+12 <= len(data) {
		chunkLength := int(readU32(data, ptr))
		chunkType := ChunkType(readU32(data, ptr+4))
		ptr += 8

		if chunkLength < 0 || ptr+chunkLength+4 > len(data) {
			return nil, structuralf(int64(ptr),
				"%s chunk with %d data bytes overruns %d byte buffer",
				chunkType, uint32(chunkLength), len(data))
		}

		chunk := &Chunk{
			Data:   data,
			Type:   chunkType,
			Start:  ptr,
			Length: chunkLength,
		}

		switch kindOf(chunkType) {
		case kindHeader:
			if state.IHDR != nil {
				return nil, structuralf(int64(ptr), "second IHDR chunk")
			}
			state.IHDR = chunk
		case kindImageData:
			state.IDAT = append(state.IDAT, chunk)
		case kindPalette:
			if state.PLTE != nil {
				return nil, structuralf(int64(ptr), "second PLTE chunk")
			}
			state.PLTE = chunk
		case kindEnd:
			return state, nil
		case kindTransparency:
			if state.TRNS != nil {
				return nil, structuralf(int64(ptr), "second tRNS chunk")
			}
			state.TRNS = chunk
		case kindGamma:
			state.GAMA = chunk
		case kindChromaticity:
			state.CHRM = chunk
		case kindICCProfile:
			state.ICCP = chunk
		case kindSRGB:
			state.SRGB = chunk
		case kindSignificantBits:
			state.HasSBIT = true
		case kindIgnored:
			// text, metadata, timing, physical size, and unknown types
		}

		ptr += chunkLength
		chunk.CRC = readU32(data, ptr)
		ptr += 4
	}
	return nil, structuralf(int64(len(data)), "no IEND chunk")
}
