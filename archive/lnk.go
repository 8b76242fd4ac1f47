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
	"bytes"
	"strings"

	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

const (
	lnkMagic      = "LNK\x00"
	lnkHeaderSize = 16
	lnkRecordSize = 32
	lnkNameSize   = 24
)

func detectLNK(f *bytesource.FileData) decode.Confidence {
	if f.Len() < lnkHeaderSize || !f.StartsWith([]byte(lnkMagic)) {
		return decode.Impossible
	}
	count, e := f.GetU32At(4)
	if e != nil || count == 0 || count >= maxPlausibleEntryCount {
		return decode.Impossible
	}
	return decode.Certain
}

// decodeLNK implements the legacy lnk container. Per the format's own
// history, the compressed flag on an entry is recorded but never acted on
// here - NeedsDecompress just surfaces it so a later compression decoder in
// the auto-decode chain can pick the entry up.
func decodeLNK(f *bytesource.FileData) (*Archive, error) {
	count, e := f.GetU32At(4)
	if e != nil {
		return nil, ErrorBadMagic.Error(e)
	}
	if count == 0 || count >= maxPlausibleEntryCount {
		return nil, ErrorImplausibleCount.Error(nil)
	}

	dataStart := int64(lnkHeaderSize) + int64(count)*lnkRecordSize

	entries := make([]ArchiveEntry, count)
	for i := uint32(0); i < count; i++ {
		recOff := int64(lnkHeaderSize) + int64(i)*lnkRecordSize

		offset, e := f.GetU32At(recOff)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		packedLen, e := f.GetU32At(recOff + 4)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}

		compressed := packedLen&1 != 0
		length := packedLen >> 1

		nameRaw := make([]byte, lnkNameSize)
		if e := f.ReadChunkExact(nameRaw, recOff+8); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		name := strings.TrimRight(string(bytes.TrimRight(nameRaw, "\x00")), "\x00")

		data, e := f.Subfile(dataStart+int64(offset), int64(length))
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}

		entries[i] = ArchiveEntry{Name: name, Data: data, NeedsDecompress: compressed}
	}

	return &Archive{Format: "lnk", Entries: entries}, nil
}
