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

func buildOGDTHeader(format uint32, tileW, tileH uint16, cols, rows uint8) *bytes.Buffer {
	var buf bytes.Buffer
	buf.WriteString("ogdt")
	buf.Write(u32le(format))
	buf.Write(u16le(tileW))
	buf.Write(u16le(tileH))
	buf.WriteByte(cols)
	buf.WriteByte(rows)
	return &buf
}

func TestOGDTDecodesRGBADirectTileGrid(t *testing.T) {
	buf := buildOGDTHeader(0x00, 1, 1, 2, 1)
	buf.Write([]byte{1, 2, 3, 4})
	buf.Write([]byte{5, 6, 7, 8})

	img := decodeAsImage(t, buf.Bytes(), "ogdt")
	f := img.Frames[0]
	if f.Width != 2 || f.Height != 1 {
		t.Fatalf("unexpected canvas size: %dx%d", f.Width, f.Height)
	}
	px := f.AsRGBABytes()
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(px, want) {
		t.Fatalf("pixels: got %v want %v", px, want)
	}
}

func TestOGDTDecodesAmbiguous24AsRGB888WhenSizeFits(t *testing.T) {
	buf := buildOGDTHeader(0x01, 1, 1, 1, 1)
	buf.Write([]byte{11, 22, 33})

	img := decodeAsImage(t, buf.Bytes(), "ogdt")
	px := img.Frames[0].AsRGBABytes()
	want := []byte{11, 22, 33, 255}
	if !bytes.Equal(px, want) {
		t.Fatalf("pixels: got %v want %v", px, want)
	}
}

func TestOGDTDecodesClut8AndUnshufflesUnaffectedEntry(t *testing.T) {
	buf := buildOGDTHeader(0x13, 1, 1, 1, 1)
	buf.Write([]byte{0}) // single index, pointing at palette entry 0

	palette := make([]byte, 256*4)
	// entry 0 falls outside every swap window (i in 0..8 touches entries
	// 8..15 and 16..23 per block of 32), so it survives UnshufflePalette
	// unchanged and is safe to assert on directly.
	palette[0], palette[1], palette[2], palette[3] = 9, 8, 7, 255 // BGRA
	buf.Write(palette)

	img := decodeAsImage(t, buf.Bytes(), "ogdt")
	px := img.Frames[0].AsRGBABytes()
	want := []byte{7, 8, 9, 255} // BGRA -> RGBA swap
	if !bytes.Equal(px, want) {
		t.Fatalf("pixels: got %v want %v", px, want)
	}
}
