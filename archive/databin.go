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

package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

const (
	databinSiblingName = "slps_026.69"
	databinTableOffset = 0x523E8
	databinEntryCount  = 0xEFC
	databinEntrySize   = 12
	databinNamePtrBase = 0x8000F800
	databinSector      = 2048
	databinMaxNameLen  = 256
)

func siblingPath(f *bytesource.FileData) (string, bool) {
	p, ok := f.Path()
	if !ok {
		return "", false
	}
	return filepath.Join(filepath.Dir(p), databinSiblingName), true
}

func detectDatabin(f *bytesource.FileData) decode.Confidence {
	sib, ok := siblingPath(f)
	if !ok {
		return decode.Impossible
	}
	if _, e := os.Stat(sib); e != nil {
		return decode.Impossible
	}
	return decode.Certain
}

func decodeDatabin(f *bytesource.FileData) (*Archive, error) {
	sib, ok := siblingPath(f)
	if !ok {
		return nil, ErrorSiblingMissing.Error(nil)
	}

	info, e := os.Stat(sib)
	if e != nil {
		return nil, ErrorSiblingMissing.Error(e)
	}

	table := bytesource.NewStream(sib, 0, info.Size())

	var entries []ArchiveEntry
	for i := 0; i < databinEntryCount; i++ {
		off := int64(databinTableOffset + i*databinEntrySize)

		namePtr, e := table.GetU32At(off)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		sector, e := table.GetU32At(off + 4)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		size, e := table.GetU32At(off + 8)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}

		if size == 0 {
			continue
		}

		name := fmt.Sprintf("entry_%04d", i)
		if namePtr >= databinNamePtrBase {
			if s, e := readCString(table, int64(namePtr-databinNamePtrBase)); e == nil && s != "" {
				name = s
			}
		}

		data, e := f.Subfile(int64(sector)*databinSector, int64(size))
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}

		entries = append(entries, ArchiveEntry{Name: name, Data: data})
	}

	if len(entries) == 0 {
		return nil, ErrorTooFewRegions.Error(nil)
	}

	return &Archive{Format: "databin", Entries: entries}, nil
}

func readCString(f *bytesource.FileData, offset int64) (string, error) {
	if offset < 0 || offset >= f.Len() {
		return "", ErrorTruncated.Error(nil)
	}

	buf := make([]byte, 0, 32)
	for i := 0; i < databinMaxNameLen; i++ {
		b, e := f.GetU8At(offset + int64(i))
		if e != nil {
			break
		}
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}
