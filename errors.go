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
	"fmt"
	"strconv"
)

// StructuralError indicates that the input violates the structural rules of
// the PNG file format: the buffer is too short, a chunk overruns the buffer,
// a chunk which must occur exactly once is missing or duplicated, or the
// IEND chunk is never reached.
type StructuralError struct {
	Pos int64
	Err error
}

func (err *StructuralError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "damaged PNG stream" + middle + tail
}

func (err *StructuralError) Unwrap() error {
	return err.Err
}

// IntegrityError indicates that a chunk failed its CRC-32 check.
type IntegrityError struct {
	Type     ChunkType
	Stored   uint32
	Computed uint32
}

func (err *IntegrityError) Error() string {
	return fmt.Sprintf("CRC mismatch on %s chunk: computed %08X, stored %08X",
		err.Type, err.Computed, err.Stored)
}

// UnsupportedError indicates a well-formed PNG which uses features the
// converter cannot map onto an image object, for example interlacing or an
// interleaved alpha channel.  Callers should fall back to decoding the image
// and re-encoding the pixel data.
type UnsupportedError struct {
	Feature string
}

func (err *UnsupportedError) Error() string {
	return "unsupported PNG feature: " + err.Feature
}

func unsupportedf(format string, a ...interface{}) error {
	return &UnsupportedError{Feature: fmt.Sprintf(format, a...)}
}

func structuralf(pos int64, format string, a ...interface{}) error {
	return &StructuralError{Pos: pos, Err: fmt.Errorf(format, a...)}
}
