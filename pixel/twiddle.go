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

// BitTwiddle spreads the low bits of v into even bit positions (a Morton
// code), so bit i of v becomes bit 2i of the result. Dreamcast twiddled
// textures interleave an x and a y coordinate this way: index =
// BitTwiddle(y) | BitTwiddle(x)<<1.
func BitTwiddle(v uint32) uint32 {
	v &= 0x0000FFFF
	v = (v | (v << 8)) & 0x00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F
	v = (v | (v << 2)) & 0x33333333
	v = (v | (v << 1)) & 0x55555555
	return v
}

// twiddleUnitSize is expressed in units of a single texel (2 bytes for the
// 16-bit-per-pixel PVR formats this operates on).
const twiddleUnitSize = 2

// Untwiddle reverses Dreamcast's Morton-interleaved texel layout: each
// output texel (x, y) is read from linear index BitTwiddle(y) |
// BitTwiddle(x)<<1 in the input, with data addressed in twiddleUnitSize-
// byte texels.
func Untwiddle(data []byte, width, height int) []byte {
	out := make([]byte, width*height*twiddleUnitSize)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			srcTexel := int(BitTwiddle(uint32(y)) | BitTwiddle(uint32(x))<<1)
			srcOff := srcTexel * twiddleUnitSize
			dstOff := (y*width + x) * twiddleUnitSize
			if srcOff+twiddleUnitSize <= len(data) {
				copy(out[dstOff:dstOff+twiddleUnitSize], data[srcOff:srcOff+twiddleUnitSize])
			}
		}
	}
	return out
}
