/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package bytesource

import "encoding/binary"

// GetU8At reads one unsigned byte at offset.
func (f *FileData) GetU8At(offset int64) (uint8, error) {
	var b [1]byte
	if e := f.ReadChunkExact(b[:], offset); e != nil {
		return 0, e
	}
	return b[0], nil
}

// GetU16At reads a little-endian uint16 at offset.
func (f *FileData) GetU16At(offset int64) (uint16, error) {
	var b [2]byte
	if e := f.ReadChunkExact(b[:], offset); e != nil {
		return 0, e
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// GetU16AtBE reads a big-endian uint16 at offset.
func (f *FileData) GetU16AtBE(offset int64) (uint16, error) {
	var b [2]byte
	if e := f.ReadChunkExact(b[:], offset); e != nil {
		return 0, e
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// GetU32At reads a little-endian uint32 at offset.
func (f *FileData) GetU32At(offset int64) (uint32, error) {
	var b [4]byte
	if e := f.ReadChunkExact(b[:], offset); e != nil {
		return 0, e
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// GetU32AtBE reads a big-endian uint32 at offset.
func (f *FileData) GetU32AtBE(offset int64) (uint32, error) {
	var b [4]byte
	if e := f.ReadChunkExact(b[:], offset); e != nil {
		return 0, e
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// GetU64At reads a little-endian uint64 at offset.
func (f *FileData) GetU64At(offset int64) (uint64, error) {
	var b [8]byte
	if e := f.ReadChunkExact(b[:], offset); e != nil {
		return 0, e
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// GetU64AtBE reads a big-endian uint64 at offset.
func (f *FileData) GetU64AtBE(offset int64) (uint64, error) {
	var b [8]byte
	if e := f.ReadChunkExact(b[:], offset); e != nil {
		return 0, e
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// GetI32At reads a little-endian int32 at offset.
func (f *FileData) GetI32At(offset int64) (int32, error) {
	v, e := f.GetU32At(offset)
	return int32(v), e
}

// GetI16At reads a little-endian int16 at offset.
func (f *FileData) GetI16At(offset int64) (int16, error) {
	v, e := f.GetU16At(offset)
	return int16(v), e
}
