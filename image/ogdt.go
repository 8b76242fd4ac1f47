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

const ogdtHeaderSize = 14

const (
	ogdtFormatRGBADirect  = 0x00
	ogdtFormatAmbiguous24 = 0x01
	ogdtFormatClut8       = 0x13
	ogdtFormatClut4       = 0x14
)

func detectOGDT(f *bytesource.FileData) decode.Confidence {
	if f.Len() < ogdtHeaderSize || !f.StartsWith([]byte("ogdt")) {
		return decode.Impossible
	}
	return decode.Certain
}

func decodeOGDT(f *bytesource.FileData) (*pixel.Image, error) {
	format, e := f.GetU32At(4)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	tileW, e := f.GetU16At(8)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	tileH, e := f.GetU16At(10)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	cols, e := f.GetU8At(12)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	rows, e := f.GetU8At(13)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	tileCount := int(cols) * int(rows)
	tilePixels := int(tileW) * int(tileH)

	var pf pixel.PixelFormat
	var bytesPerTile int
	var shufflePalette bool
	remaining := f.Len() - ogdtHeaderSize

	switch format {
	case ogdtFormatRGBADirect:
		pf = pixel.RGBA8888
		bytesPerTile = tilePixels * 4
	case ogdtFormatAmbiguous24:
		if remaining >= int64(tileCount*tilePixels*3) {
			pf = pixel.RGB888
			bytesPerTile = tilePixels * 3
		} else {
			pf = pixel.RGBA5551
			bytesPerTile = tilePixels * 2
		}
	case ogdtFormatClut8:
		pf = pixel.ClutBGRA8
		bytesPerTile = tilePixels
		shufflePalette = true
	case ogdtFormatClut4:
		pf = pixel.ClutBGRA4
		bytesPerTile = (tilePixels + 1) / 2
	default:
		return nil, ErrorUnknownFormat.Error(nil)
	}

	pixelDataSize := tileCount * bytesPerTile
	pixelData := make([]byte, pixelDataSize)
	if e := f.ReadChunkExact(pixelData, ogdtHeaderSize); e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	var palette []byte
	if pf.IsPalettized() {
		entries := 16
		if pf == pixel.ClutBGRA8 {
			entries = 256
		}
		palette = make([]byte, entries*pf.PaletteStride())
		if e := f.ReadChunkExact(palette, int64(ogdtHeaderSize)+int64(pixelDataSize)); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		if shufflePalette {
			palette = pixel.UnshufflePalette(palette, pf.PaletteStride())
		}
	}

	canvas := pixel.NewFrame(int(tileW)*int(cols), int(tileH)*int(rows), pf)
	for t := 0; t < tileCount; t++ {
		tileRaw := pixelData[t*bytesPerTile : (t+1)*bytesPerTile]
		tile, e := pixel.FrameFromFormat(pf, tileRaw, palette, int(tileW), int(tileH))
		if e != nil {
			return nil, e
		}
		tx := t % int(cols)
		ty := t / int(cols)
		canvas.Paste(tx*int(tileW), ty*int(tileH), tile)
	}

	return &pixel.Image{Format: "ogdt", Frames: []*pixel.Frame{canvas}}, nil
}
