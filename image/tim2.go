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

const tim2HeaderSize = 16
const tim2FrameHeaderSize = 16

// tim2 pixel-depth codes: the storage width and indexing of a frame's
// pixel data, as distinct from the clut entry format used when palettized.
const (
	tim2Depth16Direct = 0
	tim2Depth24Direct = 1
	tim2Depth32Direct = 2
	tim2Depth4Index   = 3
	tim2Depth8Index   = 4
)

// tim2 clut-entry format codes, used only when the frame's depth is
// indexed.
const (
	tim2ClutBGRA8888 = 0
	tim2ClutBGRA5551 = 1
)

func detectTIM2(f *bytesource.FileData) decode.Confidence {
	if f.Len() < tim2HeaderSize || !f.StartsWith([]byte("TIM2")) {
		return decode.Impossible
	}
	// KLZ concatenates TIM2 headers each followed by a PNGFILE3 tag at
	// +0x40; a bare TIM2 file never carries that tag, so its presence
	// rules this decoder out in favor of klz.
	if f.StartsWithAt([]byte("PNGFILE3"), 0x40) {
		return decode.Impossible
	}
	return decode.Certain
}

func decodeTIM2(f *bytesource.FileData) (*pixel.Image, error) {
	frameCount, e := f.GetU16At(6)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	if frameCount == 0 {
		frameCount = 1
	}

	format, e := f.GetU8At(5)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	offset := int64(tim2HeaderSize)
	var frameSizes []uint32
	if format == 0x01 {
		frameSizes = make([]uint32, frameCount)
		for i := range frameSizes {
			sz, e := f.GetU32At(offset)
			if e != nil {
				return nil, ErrorTruncated.Error(e)
			}
			frameSizes[i] = sz
			offset += 4
		}
	}

	img := &pixel.Image{Format: "tim2"}
	for i := uint16(0); i < frameCount; i++ {
		frame, size, e := decodeTIM2Frame(f, offset)
		if e != nil {
			return nil, e
		}
		img.Frames = append(img.Frames, frame)
		if format == 0x01 && int(i) < len(frameSizes) {
			offset += int64(frameSizes[i])
		} else {
			offset += int64(size)
		}
	}

	return img, nil
}

func decodeTIM2Frame(f *bytesource.FileData, offset int64) (*pixel.Frame, uint32, error) {
	totalSize, e := f.GetU32At(offset)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}
	paletteSize, e := f.GetU32At(offset + 4)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}
	imageSize, e := f.GetU32At(offset + 8)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}
	headerSize, e := f.GetU16At(offset + 12)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}
	depth, e := f.GetU8At(offset + 14)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}
	clutFormat, e := f.GetU8At(offset + 15)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}

	bodyOff := offset + int64(headerSize)
	width, e := f.GetU16At(bodyOff)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}
	height, e := f.GetU16At(bodyOff + 2)
	if e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}

	pixelOff := offset + int64(tim2FrameHeaderSize)
	paletteOff := pixelOff + int64(imageSize)

	palette := make([]byte, paletteSize)
	if paletteSize > 0 {
		if e := f.ReadChunkExact(palette, paletteOff); e != nil {
			return nil, 0, ErrorTruncated.Error(e)
		}
	}

	pixels := make([]byte, imageSize)
	if e := f.ReadChunkExact(pixels, pixelOff); e != nil {
		return nil, 0, ErrorTruncated.Error(e)
	}

	pf, needsDoubleAlpha, e := tim2PixelFormat(depth, clutFormat)
	if e != nil {
		return nil, 0, e
	}

	frame, e := pixel.FrameFromFormat(pf, pixels, palette, int(width), int(height))
	if e != nil {
		return nil, 0, e
	}
	if needsDoubleAlpha {
		frame.WithDoubleAlpha()
	}

	return frame, totalSize, nil
}

func tim2PixelFormat(depth, clutFormat uint8) (pixel.PixelFormat, bool, error) {
	switch depth {
	case tim2Depth16Direct:
		return pixel.BGRA5551, false, nil
	case tim2Depth24Direct:
		return pixel.BGR888, false, nil
	case tim2Depth32Direct:
		return pixel.BGRA8888, true, nil
	case tim2Depth4Index:
		if clutFormat == tim2ClutBGRA5551 {
			return pixel.ClutBGRA4, false, nil
		}
		return pixel.ClutBGRA4, true, nil
	case tim2Depth8Index:
		if clutFormat == tim2ClutBGRA5551 {
			return pixel.ClutBGRA8, false, nil
		}
		return pixel.ClutBGRA8, true, nil
	}
	return 0, false, ErrorUnknownFormat.Error(nil)
}
