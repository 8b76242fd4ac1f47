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

const (
	cpsMinSize = 0
	cpsMaxSize = 32 * 1024 * 1024
)

var cpsPreambles = [][]byte{[]byte("ogdt"), []byte("TIM2")}

// cpsHeaderSize returns the declared decompressed size: the top 24 bits of
// the first big-endian u32.
func cpsHeaderSize(f *bytesource.FileData) (int64, error) {
	header, e := f.GetU32AtBE(0)
	if e != nil {
		return 0, ErrorBadHeader.Error(e)
	}
	return int64(header >> 8), nil
}

// detectCPS peeks at the decoded output's first few bytes - the body
// always opens with an ogdt or TIM2 image - without requiring the full
// stream to decode successfully, since the whole point of detect is to
// run before committing to this decoder.
func detectCPS(f *bytesource.FileData) decode.Confidence {
	if f.Len() < 8 {
		return decode.Impossible
	}

	size, e := cpsHeaderSize(f)
	if e != nil || size <= cpsMinSize || size > cpsMaxSize {
		return decode.Impossible
	}

	body, e := f.Subfile(4, f.Len()-4)
	if e != nil {
		return decode.Impossible
	}
	input, e := body.Read()
	if e != nil {
		return decode.Impossible
	}

	prefix, _ := cpsTokenDecode(input, 4)
	if len(prefix) == 0 {
		return decode.Impossible
	}

	for _, sig := range cpsPreambles {
		n := len(sig)
		if n > len(prefix) {
			n = len(prefix)
		}
		if string(prefix[:n]) == string(sig[:n]) {
			return decode.Certain
		}
	}

	return decode.Impossible
}

func decodeCPS(f *bytesource.FileData) (*bytesource.FileData, error) {
	size, e := cpsHeaderSize(f)
	if e != nil {
		return nil, e
	}
	if size <= cpsMinSize || size > cpsMaxSize {
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

	out, e := cpsTokenDecode(input, size)
	if e != nil {
		return nil, e
	}

	return bytesource.NewMemory(out), nil
}

// cpsTokenDecode runs CPS's token stream: MSB=1 is a back-reference
// (offset = ((b&3)<<8 | next) + 1, length = ((b&0x7C)>>2) + 3); MSB=0 is a
// raw literal chunk of b+1 bytes. A zero control byte with no input left
// to follow it is a clean end-of-stream marker, not a truncation.
func cpsTokenDecode(input []byte, target int64) ([]byte, error) {
	pos := 0
	var out []byte

	truncated := func() ([]byte, error) {
		return out, ErrorTruncatedStream.Error(fmt.Errorf("expected %#x bytes, got only %d", target, len(out)))
	}

	for int64(len(out)) < target {
		if pos >= len(input) {
			return truncated()
		}
		b := input[pos]
		pos++

		if b&0x80 != 0 {
			if pos >= len(input) {
				return truncated()
			}
			next := input[pos]
			pos++

			offset := ((int(b)&3)<<8 | int(next)) + 1
			length := ((int(b) & 0x7C) >> 2) + 3

			srcStart := len(out) - offset
			if srcStart < 0 {
				return out, ErrorBadBackReference.Error(nil)
			}
			for k := 0; k < length && int64(len(out)) < target; k++ {
				out = append(out, out[srcStart+k])
			}
			continue
		}

		if b == 0 && pos >= len(input) {
			return out, nil
		}

		n := int(b) + 1
		for i := 0; i < n; i++ {
			if pos >= len(input) {
				return truncated()
			}
			out = append(out, input[pos])
			pos++
			if int64(len(out)) >= target {
				break
			}
		}
	}

	return out, nil
}
