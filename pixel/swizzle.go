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

// UnswizzlePSP reverses the PSP's 16-byte × 8-row block-interleaved pixel
// layout. widthBytes is the row stride in bytes (not pixels - the caller
// divides by bytes-per-pixel itself when indexing by pixel x), height the
// row count. Both must be multiples of 16 and 8 respectively for the block
// grid to tile evenly; this function does not itself enforce that -
// callers that know their dimensions are not aligned should not swizzle at
// all, per the format's own convention.
func UnswizzlePSP(data []byte, widthBytes, height int) []byte {
	out := make([]byte, widthBytes*height)
	blocksPerRow := widthBytes / 16

	for y := 0; y < height; y++ {
		for x := 0; x < widthBytes; x++ {
			srcIdx := ((y/8)*blocksPerRow+x/16)*128 + (y%8)*16 + (x % 16)
			if srcIdx < len(data) {
				out[y*widthBytes+x] = data[srcIdx]
			}
		}
	}
	return out
}

// SwizzlePSP is UnswizzlePSP's inverse, used only by tests to check the
// involution property: re-swizzling an unswizzled block must reproduce the
// original bytes.
func SwizzlePSP(data []byte, widthBytes, height int) []byte {
	out := make([]byte, widthBytes*height)
	blocksPerRow := widthBytes / 16

	for y := 0; y < height; y++ {
		for x := 0; x < widthBytes; x++ {
			dstIdx := ((y/8)*blocksPerRow+x/16)*128 + (y%8)*16 + (x % 16)
			if dstIdx < len(out) {
				out[dstIdx] = data[y*widthBytes+x]
			}
		}
	}
	return out
}
