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

package pixel

// UnshufflePalette reverses the PS2 GS's 256-entry CLUT storage order. The
// hardware stores 8-entry groups in blocks of 32, with the second and
// third groups of each 32-entry band swapped relative to a linear palette:
// for i, j in 0..8, entries [8+32i+j] and [16+32i+j] trade places. stride is
// the per-entry byte width (3 or 4). A palette shorter than 256 entries (16
// and 8-bit CLUTs below full size) is returned unchanged.
func UnshufflePalette(palette []byte, stride int) []byte {
	entries := len(palette) / stride
	if entries < 256 {
		return palette
	}

	out := make([]byte, len(palette))
	copy(out, palette)

	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			a := (8 + 32*i + j) * stride
			b := (16 + 32*i + j) * stride
			for k := 0; k < stride; k++ {
				out[a+k], out[b+k] = palette[b+k], palette[a+k]
			}
		}
	}

	return out
}
