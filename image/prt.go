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

package image

import (
	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
	"github.com/malucard/kidfile-go/pixel"
)

const (
	prtMagicOffsetA = 0
	prtMagicOffsetB = 16
	prtHeaderSize   = 8 // version(2) + width(2) + height(2) + bpp(1) + hasAlpha(1)
)

func findPRTMagic(f *bytesource.FileData) (int64, bool) {
	if f.StartsWithAt([]byte("PRT\x00"), prtMagicOffsetA) {
		return prtMagicOffsetA, true
	}
	if f.StartsWithAt([]byte("PRT\x00"), prtMagicOffsetB) {
		return prtMagicOffsetB, true
	}
	return 0, false
}

func detectPRT(f *bytesource.FileData) decode.Confidence {
	magicOff, ok := findPRTMagic(f)
	if !ok {
		return decode.Impossible
	}
	version, e := f.GetU16At(magicOff + 4)
	if e != nil {
		return decode.Impossible
	}
	if version != 101 && version != 102 {
		return decode.Impossible
	}
	return decode.Certain
}

func decodePRT(f *bytesource.FileData) (*pixel.Image, error) {
	magicOff, ok := findPRTMagic(f)
	if !ok {
		return nil, ErrorBadMagic.Error(nil)
	}

	width, e := f.GetU16At(magicOff + 6)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	height, e := f.GetU16At(magicOff + 8)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	bpp, e := f.GetU8At(magicOff + 10)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	hasAlpha, e := f.GetU8At(magicOff + 11)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	pixelOff := magicOff + 4 + prtHeaderSize

	var bytesPerPixel int
	switch bpp {
	case 8:
		bytesPerPixel = 1
	case 24:
		bytesPerPixel = 3
	default:
		return nil, ErrorUnknownFormat.Error(nil)
	}

	rowBytes := int(width) * bytesPerPixel
	alignedRowBytes := (rowBytes + 3) &^ 3

	packed := make([]byte, rowBytes*int(height))
	for row := 0; row < int(height); row++ {
		// rows are stored bottom-up; read row (height-1-row) from the
		// file into output row `row` to produce a top-down buffer.
		srcRow := int(height) - 1 - row
		srcOff := pixelOff + int64(srcRow)*int64(alignedRowBytes)
		if e := f.ReadChunkExact(packed[row*rowBytes:(row+1)*rowBytes], srcOff); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
	}

	dataEnd := pixelOff + int64(alignedRowBytes)*int64(height)

	if bpp == 8 {
		palette := make([]byte, 256*4)
		if e := f.ReadChunkExact(palette, dataEnd); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		bgr := compactBGRXTo3(palette)
		frame, e := pixel.FrameFromFormat(pixel.ClutBGR8, packed, bgr, int(width), int(height))
		if e != nil {
			return nil, e
		}
		return &pixel.Image{Format: "prt", Frames: []*pixel.Frame{frame}}, nil
	}

	frame, e := pixel.FrameFromFormat(pixel.BGR888, packed, nil, int(width), int(height))
	if e != nil {
		return nil, e
	}

	if hasAlpha != 0 {
		alpha := make([]byte, int(width)*int(height))
		if e := f.ReadChunkExact(alpha, dataEnd); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		px := frame.AsRGBABytes()
		for row := 0; row < int(height); row++ {
			srcRow := int(height) - 1 - row
			for col := 0; col < int(width); col++ {
				px[(row*int(width)+col)*4+3] = alpha[srcRow*int(width)+col]
			}
		}
	}

	return &pixel.Image{Format: "prt", Frames: []*pixel.Frame{frame}}, nil
}

func compactBGRXTo3(bgrx []byte) []byte {
	entries := len(bgrx) / 4
	out := make([]byte, entries*3)
	for i := 0; i < entries; i++ {
		copy(out[i*3:i*3+3], bgrx[i*4:i*4+3])
	}
	return out
}
