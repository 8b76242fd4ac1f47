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

package compress

import (
	"fmt"

	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

// Classic Okumura LZSS parameters.
const (
	lzssRingSize  = 4096
	lzssMaxMatch  = 18
	lzssThreshold = 2
	lzssMinSize   = 32
	lzssMaxSize   = 32 * 1024 * 1024
)

func detectLZSS(f *bytesource.FileData) decode.Confidence {
	if f.Len() < 5 {
		return decode.Impossible
	}
	size, e := f.GetU32At(0)
	if e != nil || size <= lzssMinSize || size >= lzssMaxSize {
		return decode.Impossible
	}
	// A bare 32-bit size header is exactly as plausible for half a dozen
	// other formats (CPS-PC's packed_size, a raw data.bin entry, ...);
	// this decoder only ever claims Possible, never Certain.
	return decode.Possible
}

func decodeLZSS(f *bytesource.FileData) (*bytesource.FileData, error) {
	size, e := f.GetU32At(0)
	if e != nil {
		return nil, ErrorBadHeader.Error(e)
	}
	if size <= lzssMinSize || size >= lzssMaxSize {
		return nil, ErrorSizeOutOfRange.Error(nil)
	}

	body, e := f.Subfile(4, f.Len()-4)
	if e != nil {
		return nil, ErrorBadHeader.Error(e)
	}
	input, e := body.Read()
	if e != nil {
		return nil, ErrorBadHeader.Error(e)
	}

	growable := int64(size) == int64(len(input))

	out, e := lzssRingDecode(input, int64(size), growable)
	if e != nil {
		return nil, e
	}

	return bytesource.NewMemory(out), nil
}

// lzssRingDecode implements the classic Okumura ring-buffer LZSS decode:
// an 8-token flag byte (LSB first) selects literal vs back-reference per
// token; a back-reference packs its 12-bit ring offset across two bytes
// and its length (minus lzssThreshold) into the second byte's low nibble.
func lzssRingDecode(input []byte, target int64, growable bool) ([]byte, error) {
	ring := make([]byte, lzssRingSize)
	for i := 0; i < lzssRingSize-lzssMaxMatch; i++ {
		ring[i] = 0x20
	}
	r := lzssRingSize - lzssMaxMatch

	var out []byte
	if !growable {
		out = make([]byte, 0, target)
	}

	pos := 0
	getByte := func() (byte, bool) {
		if pos >= len(input) {
			return 0, false
		}
		b := input[pos]
		pos++
		return b, true
	}

	emit := func(c byte) {
		out = append(out, c)
		ring[r] = c
		r = (r + 1) & (lzssRingSize - 1)
	}

	flags := uint32(0)
	for {
		if !growable && int64(len(out)) >= target {
			break
		}

		flags >>= 1
		if flags&0x100 == 0 {
			c, ok := getByte()
			if !ok {
				break
			}
			flags = uint32(c) | 0xFF00
		}

		if flags&1 != 0 {
			c, ok := getByte()
			if !ok {
				break
			}
			emit(c)
			continue
		}

		i, ok := getByte()
		if !ok {
			break
		}
		j, ok := getByte()
		if !ok {
			break
		}

		offset := int(i) | (int(j&0xF0) << 4)
		length := int(j&0x0F) + lzssThreshold

		for k := 0; k <= length; k++ {
			emit(ring[(offset+k)&(lzssRingSize-1)])
			if !growable && int64(len(out)) >= target {
				break
			}
		}
	}

	if !growable && int64(len(out)) < target {
		return out, ErrorTruncatedStream.Error(fmt.Errorf("expected %#x bytes, got only %d", target, len(out)))
	}

	return out, nil
}
