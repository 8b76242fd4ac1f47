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

import "encoding/binary"

// chunkedLZSSDecode implements the framing shared by lzss-be and lzss-dc:
// an outer loop of chunks, each starting with a u16-BE byte count bounding
// how much input belongs to that chunk; within a chunk, LSB-first flag
// bytes drive 8 tokens each (0 = literal, 1 = back-reference packed as a
// single u16-BE with offset=(v>>5)+1, length=(v&0x1F)+3).
//
// A back-reference may not read before its own chunk's output
// (chunk_out_start). strict additionally rejects - rather than clamps - a
// reference whose offset exceeds the bytes produced so far in the current
// chunk; this is the one behavioral difference between lzss-be (lenient,
// clamps) and lzss-dc (strict, fails).
func chunkedLZSSDecode(input []byte, strict bool) ([]byte, error) {
	pos := 0
	var out []byte

	for pos+2 <= len(input) {
		chunkLen := int(binary.BigEndian.Uint16(input[pos : pos+2]))
		pos += 2
		if chunkLen == 0 {
			break
		}

		chunkEnd := pos + chunkLen
		if chunkEnd > len(input) {
			chunkEnd = len(input)
		}
		chunkOutStart := len(out)

		flags := uint32(0)
		for pos < chunkEnd {
			flags >>= 1
			if flags&0x100 == 0 {
				flags = uint32(input[pos]) | 0xFF00
				pos++
				if pos >= chunkEnd {
					break
				}
			}

			if flags&1 == 0 {
				out = append(out, input[pos])
				pos++
				continue
			}

			if pos+2 > chunkEnd {
				break
			}
			v := binary.BigEndian.Uint16(input[pos : pos+2])
			pos += 2

			offset := int(v>>5) + 1
			length := int(v&0x1F) + 3

			producedInChunk := len(out) - chunkOutStart
			if offset > producedInChunk {
				if strict {
					return out, ErrorBadBackReference.Error(nil)
				}
				offset = producedInChunk
				if offset == 0 {
					// nothing produced yet in this chunk: the clamped
					// reference copies nothing
					continue
				}
			}
			if offset == 0 {
				return out, ErrorBadBackReference.Error(nil)
			}

			srcStart := len(out) - offset
			for k := 0; k < length; k++ {
				out = append(out, out[srcStart+k])
			}
		}

		pos = chunkEnd
	}

	return out, nil
}
