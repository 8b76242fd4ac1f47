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
	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

func detectLZSSDC(f *bytesource.FileData) decode.Confidence {
	if f.Len() < 4 {
		return decode.Impossible
	}
	chunkLen, e := f.GetU16AtBE(0)
	if e != nil || chunkLen == 0 || int64(chunkLen)+2 > f.Len() {
		return decode.Impossible
	}
	return decode.Possible
}

// decodeLZSSDC shares lzss-be's chunk framing but rejects a back-reference
// whose offset exceeds the bytes produced so far in its chunk instead of
// clamping it.
func decodeLZSSDC(f *bytesource.FileData) (*bytesource.FileData, error) {
	input, e := f.Read()
	if e != nil {
		return nil, ErrorBadHeader.Error(e)
	}

	out, e := chunkedLZSSDecode(input, true)
	if e != nil {
		return nil, e
	}

	return bytesource.NewMemory(out), nil
}
