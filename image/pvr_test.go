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

package image_test

import (
	"bytes"
	"testing"
)

func buildPVRT(pixelFormat, dataFormat uint8, width, height uint16, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("PVRT")
	buf.Write(u32le(uint32(8 + len(body)))) // chunk size (body after the 8-byte PVRT fields)
	buf.WriteByte(pixelFormat)
	buf.WriteByte(dataFormat)
	buf.Write(make([]byte, 2)) // reserved
	buf.Write(u16le(width))
	buf.Write(u16le(height))
	buf.Write(body)
	return buf.Bytes()
}

func TestPVRDecodesDirectBGR565(t *testing.T) {
	// top5=B=0x1F, mid6=G=0, low5=R=0 -> pure blue after expansion.
	raw := buildPVRT(1 /* BGR565 */, 0, 1, 1, []byte{0x00, 0xF8})

	img := decodeAsImage(t, raw, "pvr")
	px := img.Frames[0].AsRGBABytes()
	want := []byte{0, 0, 255, 255}
	if !bytes.Equal(px, want) {
		t.Fatalf("pixels: got %v want %v", px, want)
	}
}

func TestPVRHandlesGBIXPrefix(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("GBIX")
	buf.Write(make([]byte, 12)) // 16-byte GBIX chunk total
	buf.Write(buildPVRT(1, 0, 1, 1, []byte{0x00, 0xF8}))

	img := decodeAsImage(t, buf.Bytes(), "pvr")
	px := img.Frames[0].AsRGBABytes()
	if px[2] != 255 {
		t.Fatalf("expected blue channel 255 after GBIX skip, got %v", px)
	}
}

func TestPVRDecodesVQCompressed(t *testing.T) {
	// a 2x2 image is exactly one VQ block: codebook entry 0 supplies all
	// four texels, so the whole frame becomes codebook entry 0's colors.
	codebook := make([]byte, 2048)
	// entry 0: TL, BL, TR, BR as 16-bit BGR565 little-endian texels.
	copy(codebook[0:2], []byte{0x00, 0xF8}) // TL: blue
	copy(codebook[2:4], []byte{0x00, 0xF8}) // BL: blue
	copy(codebook[4:6], []byte{0x00, 0xF8}) // TR: blue
	copy(codebook[6:8], []byte{0x00, 0xF8}) // BR: blue

	indexData := []byte{0} // single 2x2 block, index 0

	body := append(append([]byte{}, codebook...), indexData...)
	raw := buildPVRT(1 /* BGR565 */, 3 /* VQ */, 2, 2, body)

	img := decodeAsImage(t, raw, "pvr")
	f := img.Frames[0]
	if f.Width != 2 || f.Height != 2 {
		t.Fatalf("unexpected dimensions: %dx%d", f.Width, f.Height)
	}
	px := f.AsRGBABytes()
	for i := 0; i < 4; i++ {
		if px[i*4+2] != 255 {
			t.Fatalf("texel %d: expected blue channel 255, got %v", i, px[i*4:i*4+4])
		}
	}
}
