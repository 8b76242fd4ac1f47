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

const timMagic = 0x00000010

const (
	timFormatClut4  = 0
	timFormatClut8  = 1
	timFormatPSX16  = 2
	timFormatRGB24  = 3
	timFlagHasClut  = 0x08
	timFormatMask   = 0x03
)

func detectTIM(f *bytesource.FileData) decode.Confidence {
	if f.Len() < 8 {
		return decode.Impossible
	}
	magic, e := f.GetU32At(0)
	if e != nil || magic != timMagic {
		return decode.Impossible
	}
	return decode.Certain
}

func decodeTIM(f *bytesource.FileData) (*pixel.Image, error) {
	tag, e := f.GetU32At(4)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	format := uint8(tag & timFormatMask)
	hasClut := tag&timFlagHasClut != 0

	offset := int64(8)

	var palette []byte
	if hasClut {
		clutSize, e := f.GetU32At(offset)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		clutW, e := f.GetU16At(offset + 8)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		clutH, e := f.GetU16At(offset + 10)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}

		clutEntries := int(clutW) * int(clutH)
		clutRaw := make([]byte, clutEntries*2)
		if e := f.ReadChunkExact(clutRaw, offset+12); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		palette, e = psxColorsToRGBA(clutRaw, clutEntries)
		if e != nil {
			return nil, e
		}
		// a CLUT shorter than 256 entries is padded with transparent black
		if full := 256 * 4; len(palette) < full {
			palette = append(palette, make([]byte, full-len(palette))...)
		}

		offset += int64(clutSize)
	}

	imageSize, e := f.GetU32At(offset)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	if offset+int64(imageSize) > f.Len() {
		return nil, ErrorTruncated.Error(nil)
	}
	halfwordWidth, e := f.GetU16At(offset + 8)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	height, e := f.GetU16At(offset + 10)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	pixelOff := offset + 12

	var frame *pixel.Frame
	switch format {
	case timFormatClut4:
		width := int(halfwordWidth) * 4
		raw := make([]byte, (width*int(height)+1)/2)
		if e := f.ReadChunkExact(raw, pixelOff); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		frame, e = pixel.FrameFromFormat(pixel.ClutRGBA4, raw, palette, width, int(height))
	case timFormatClut8:
		width := int(halfwordWidth) * 2
		raw := make([]byte, width*int(height))
		if e := f.ReadChunkExact(raw, pixelOff); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		frame, e = pixel.FrameFromFormat(pixel.ClutRGBA8, raw, palette, width, int(height))
	case timFormatPSX16:
		width := int(halfwordWidth)
		raw := make([]byte, width*int(height)*2)
		if e := f.ReadChunkExact(raw, pixelOff); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		frame, e = pixel.FrameFromFormat(pixel.RGBX5551, raw, nil, width, int(height))
		if e == nil {
			applyPSXZeroAlpha(raw, frame)
		}
	case timFormatRGB24:
		width := int(halfwordWidth) * 2 / 3
		raw := make([]byte, width*int(height)*3)
		if e := f.ReadChunkExact(raw, pixelOff); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		frame, e = pixel.FrameFromFormat(pixel.RGB888, raw, nil, width, int(height))
	default:
		return nil, ErrorUnknownFormat.Error(nil)
	}
	if e != nil {
		return nil, e
	}

	return &pixel.Image{Format: "tim", Frames: []*pixel.Frame{frame}}, nil
}

// psxColorsToRGBA expands 15-bit PSX colors (R low 5 bits, G mid 5, B high
// 5, top bit a semi-transparency flag this decoder ignores) into an RGBA8
// stride-4 array, with an all-zero source word - PS1's universal
// "transparent" sentinel - mapped to alpha 0 rather than opaque black.
func psxColorsToRGBA(raw []byte, count int) ([]byte, error) {
	frame, e := pixel.FrameFromFormat(pixel.RGBX5551, raw, nil, count, 1)
	if e != nil {
		return nil, e
	}
	out := frame.AsRGBABytes()
	applyPSXZeroAlpha(raw, frame)
	return out, nil
}

func applyPSXZeroAlpha(raw []byte, frame *pixel.Frame) {
	px := frame.AsRGBABytes()
	n := len(raw) / 2
	for i := 0; i < n; i++ {
		if raw[i*2] == 0 && raw[i*2+1] == 0 {
			px[i*4+3] = 0
		}
	}
}
