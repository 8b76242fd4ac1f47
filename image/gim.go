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

const gimMagic = "MIG.00.1PSP\x00"
const gimRootOffset = 16 // magic occupies the first 16 bytes, zero-padded
const gimBlockHeaderSize = 16

const (
	gimBlockPicture = 3
	gimBlockImage   = 4
	gimBlockPalette = 5
)

const (
	gimFormatRGB16   = 0
	gimFormatRGBA16  = 1
	gimFormatRGBA32  = 3
	gimFormatClut4   = 4
	gimFormatClut8   = 5
)

type gimBlock struct {
	id       uint16
	start    int64
	size     uint32
	sizeSkip uint32
	dataOff  uint32
}

func readGIMBlockHeader(f *bytesource.FileData, pos int64) (gimBlock, error) {
	id, e := f.GetU16At(pos)
	if e != nil {
		return gimBlock{}, e
	}
	sizeSkip, e := f.GetU32At(pos + 4)
	if e != nil {
		return gimBlock{}, e
	}
	size, e := f.GetU32At(pos + 8)
	if e != nil {
		return gimBlock{}, e
	}
	dataOff, e := f.GetU32At(pos + 12)
	if e != nil {
		return gimBlock{}, e
	}
	return gimBlock{id: id, start: pos, size: size, sizeSkip: sizeSkip, dataOff: dataOff}, nil
}

// searchGIMBlock depth-first searches [start, end) and every block's child
// region for the first block with the given id - picture, palette and
// image blocks can nest at any depth in GIM's block tree.
func searchGIMBlock(f *bytesource.FileData, start, end int64, wantID uint16) (gimBlock, bool, error) {
	cur := start
	for cur < end {
		blk, e := readGIMBlockHeader(f, cur)
		if e != nil {
			return gimBlock{}, false, e
		}
		if blk.id == wantID {
			return blk, true, nil
		}
		if blk.dataOff > gimBlockHeaderSize {
			childEnd := cur + int64(blk.sizeSkip)
			if found, ok, e := searchGIMBlock(f, cur+int64(blk.dataOff), childEnd, wantID); e != nil {
				return gimBlock{}, false, e
			} else if ok {
				return found, true, nil
			}
		}
		if blk.sizeSkip == 0 {
			break
		}
		cur += int64(blk.sizeSkip)
	}
	return gimBlock{}, false, nil
}

func detectGIM(f *bytesource.FileData) decode.Confidence {
	if f.Len() < gimRootOffset || !f.StartsWith([]byte(gimMagic)) {
		return decode.Impossible
	}
	return decode.Certain
}

func decodeGIM(f *bytesource.FileData) (*pixel.Image, error) {
	picture, ok, e := searchGIMBlock(f, gimRootOffset, f.Len(), gimBlockPicture)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	if !ok {
		return nil, ErrorBadMagic.Error(nil)
	}

	childStart := picture.start + int64(picture.dataOff)
	childEnd := picture.start + int64(picture.sizeSkip)

	imageBlk, ok, e := searchGIMBlock(f, childStart, childEnd, gimBlockImage)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	if !ok {
		return nil, ErrorBadMagic.Error(nil)
	}

	paletteBlk, hasPalette, e := searchGIMBlock(f, childStart, childEnd, gimBlockPalette)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	frame, e := decodeGIMImageBlock(f, imageBlk, paletteBlk, hasPalette)
	if e != nil {
		return nil, e
	}

	return &pixel.Image{Format: "gim", Frames: []*pixel.Frame{frame}}, nil
}

func decodeGIMImageBlock(f *bytesource.FileData, imageBlk, paletteBlk gimBlock, hasPalette bool) (*pixel.Frame, error) {
	fieldsOff := imageBlk.start + int64(imageBlk.dataOff)
	format, e := f.GetU8At(fieldsOff)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	swizzled, e := f.GetU8At(fieldsOff + 1)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	width, e := f.GetU16At(fieldsOff + 2)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	height, e := f.GetU16At(fieldsOff + 4)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	widthAlignBytes, e := f.GetU16At(fieldsOff + 6)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	pixelOff := fieldsOff + 8

	var palette []byte
	if hasPalette {
		paletteOff := paletteBlk.start + int64(paletteBlk.dataOff)
		palette = make([]byte, paletteBlk.size)
		if e := f.ReadChunkExact(palette, paletteOff); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
	}

	var pf pixel.PixelFormat
	var rowBytesUnaligned int
	switch format {
	case gimFormatRGB16:
		pf = pixel.RGB565
		rowBytesUnaligned = int(width) * 2
	case gimFormatRGBA16:
		pf = pixel.RGBA5551
		rowBytesUnaligned = int(width) * 2
	case gimFormatRGBA32:
		pf = pixel.RGBA8888
		rowBytesUnaligned = int(width) * 4
	case gimFormatClut4:
		pf = pixel.ClutRGBA4
		rowBytesUnaligned = (int(width) + 1) / 2
	case gimFormatClut8:
		pf = pixel.ClutRGBA8
		rowBytesUnaligned = int(width)
	default:
		return nil, ErrorUnknownFormat.Error(nil)
	}

	storedRowBytes := rowBytesUnaligned
	if widthAlignBytes > 0 {
		a := int(widthAlignBytes)
		storedRowBytes = ((rowBytesUnaligned + a - 1) / a) * a
	}

	raw := make([]byte, storedRowBytes*int(height))
	if e := f.ReadChunkExact(raw, pixelOff); e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	if swizzled != 0 {
		raw = pixel.UnswizzlePSP(raw, storedRowBytes, int(height))
	}

	storedWidth := storedRowBytes * 8 / bitsPerPixelForGIMFormat(format)

	frame, e := pixel.FrameFromFormat(pf, raw, palette, storedWidth, int(height))
	if e != nil {
		return nil, e
	}

	if storedWidth != int(width) {
		frame.Resize(int(width), int(height))
	}

	return frame, nil
}

func bitsPerPixelForGIMFormat(format uint8) int {
	switch format {
	case gimFormatRGB16, gimFormatRGBA16:
		return 16
	case gimFormatRGBA32:
		return 32
	case gimFormatClut4:
		return 4
	case gimFormatClut8:
		return 8
	}
	return 8
}
