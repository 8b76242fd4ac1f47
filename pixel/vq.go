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

const (
	vqCodebookEntries = 256
	vqEntrySize       = 8 // four 16-bit texels: TL, BL, TR, BR
)

// DecodeVQ expands a PVR vector-quantized texture: a 2048-byte codebook of
// 256 entries, each a 2×2 block of 16-bit texels in TL/BL/TR/BR order, and
// one index byte per 2×2 output block. Block indices are themselves
// twiddled, so indexData is untwiddled (at one byte per "texel") before
// being read.
func DecodeVQ(codebook []byte, indexData []byte, width, height int) ([]byte, error) {
	if len(codebook) < vqCodebookEntries*vqEntrySize {
		return nil, ErrorBufferTooSmall.Error(nil)
	}

	blocksW := width / 2
	blocksH := height / 2
	indices := untwiddleIndices(indexData, blocksW, blocksH)

	out := make([]byte, width*height*2)
	putTexel := func(x, y int, texel []byte) {
		off := (y*width + x) * 2
		if off+2 <= len(out) {
			copy(out[off:off+2], texel)
		}
	}

	for by := 0; by < blocksH; by++ {
		for bx := 0; bx < blocksW; bx++ {
			idx := int(indices[by*blocksW+bx])
			entry := codebook[idx*vqEntrySize : idx*vqEntrySize+vqEntrySize]
			x0, y0 := bx*2, by*2
			putTexel(x0, y0, entry[0:2])   // TL
			putTexel(x0, y0+1, entry[2:4]) // BL
			putTexel(x0+1, y0, entry[4:6]) // TR
			putTexel(x0+1, y0+1, entry[6:8]) // BR
		}
	}

	return out, nil
}

func untwiddleIndices(data []byte, blocksW, blocksH int) []byte {
	out := make([]byte, blocksW*blocksH)
	for y := 0; y < blocksH; y++ {
		for x := 0; x < blocksW; x++ {
			src := int(BitTwiddle(uint32(y)) | BitTwiddle(uint32(x))<<1)
			if src < len(data) {
				out[y*blocksW+x] = data[src]
			}
		}
	}
	return out
}
