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

const afsMagic = "AFS\x00"

// maxPlausibleEntryCount rejects a declared count that is almost certainly
// a misread of the magic, not a real table size.
const maxPlausibleEntryCount = 65535

func detectAFS(f *bytesource.FileData) decode.Confidence {
	if f.Len() < 8 || !f.StartsWith([]byte(afsMagic)) {
		return decode.Impossible
	}
	count, e := f.GetU32At(4)
	if e != nil || count == 0 || count >= maxPlausibleEntryCount {
		return decode.Impossible
	}
	return decode.Certain
}

func decodeAFS(f *bytesource.FileData) (*Archive, error) {
	count, e := f.GetU32At(4)
	if e != nil {
		return nil, ErrorBadMagic.Error(e)
	}
	if count == 0 || count >= maxPlausibleEntryCount {
		return nil, ErrorImplausibleCount.Error(nil)
	}

	type span struct{ offset, length uint32 }
	spans := make([]span, count)
	var dataEnd int64

	for i := uint32(0); i < count; i++ {
		off := int64(8 + i*8)
		o, e := f.GetU32At(off)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		l, e := f.GetU32At(off + 4)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		spans[i] = span{o, l}
		if end := int64(o) + int64(l); end > dataEnd {
			dataEnd = end
		}
	}

	tableOff := alignUp2048(dataEnd)

	entries := make([]ArchiveEntry, count)
	for i, s := range spans {
		data, e := f.Subfile(int64(s.offset), int64(s.length))
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}

		recOff := tableOff + int64(i)*48
		name := ""
		var ts *Timestamp

		if recOff+48 <= f.Len() {
			raw := make([]byte, 48)
			if e := f.ReadChunkExact(raw, recOff); e == nil {
				name = strings.TrimRight(string(bytes.TrimRight(raw[:32], "\x00")), "\x00")

				fields := make([]uint16, 6)
				for j := range fields {
					fields[j] = uint16(raw[32+j*2]) | uint16(raw[32+j*2+1])<<8
				}
				ts = &Timestamp{
					Year: fields[0], Month: fields[1], Day: fields[2],
					Hour: fields[3], Minute: fields[4], Second: fields[5],
				}
			}
		}

		entries[i] = ArchiveEntry{Name: name, Data: data, Timestamp: ts}
	}

	return &Archive{Format: "afs", Entries: entries}, nil
}

func alignUp2048(n int64) int64 {
	const block = 2048
	if n%block == 0 {
		return n
	}
	return (n/block + 1) * block
}
