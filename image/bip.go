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
	"bytes"
	"image/png"

	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
	"github.com/malucard/kidfile-go/pixel"
)

const bipHeaderSize = 11

const (
	bipBlockDefault    = 32
	bipBlockRemember11 = 16
)

const (
	bipTileRecordBlock = 2
	bipTileRecordPNG   = 7
)

const (
	bipFormatDirect = 0
	bipFormatClut8  = 1
)

func detectBIP(f *bytesource.FileData) decode.Confidence {
	if f.Len() < bipHeaderSize {
		return decode.Impossible
	}
	magic, e := f.GetU32At(0)
	if e != nil {
		return decode.Impossible
	}
	if magic == 5 || magic == 10 {
		return decode.Certain
	}
	return decode.Impossible
}

// decodeBIP assembles the declared tile grid at the default block size
// first; if a tile's position would land outside the canvas by more than
// one block, the file is almost certainly using Remember11's smaller block
// size, so the whole placement pass restarts once with that profile rather
// than patching up positions mid-loop.
func decodeBIP(f *bytesource.FileData) (*pixel.Image, error) {
	magic, e := f.GetU32At(0)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	canvasW, e := f.GetU16At(4)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	canvasH, e := f.GetU16At(6)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	format, e := f.GetU8At(8)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	tileCount, e := f.GetU16At(9)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	recordSize := bipTileRecordBlock
	if magic == 10 {
		recordSize = bipTileRecordPNG
	}

	blockSize := bipBlockDefault
	for attempt := 0; attempt < 2; attempt++ {
		canvas, overflowed, e := composeBIPTiles(f, int(canvasW), int(canvasH), int(tileCount), recordSize, blockSize, format)
		if e != nil {
			return nil, e
		}
		if !overflowed {
			return &pixel.Image{Format: "bip", Frames: []*pixel.Frame{canvas}}, nil
		}
		blockSize = bipBlockRemember11
	}

	return nil, ErrorUnsupportedVariant.Error(nil)
}

func composeBIPTiles(f *bytesource.FileData, canvasW, canvasH, tileCount, recordSize, blockSize int, format uint8) (*pixel.Frame, bool, error) {
	cols := (canvasW + blockSize - 1) / blockSize
	canvas := pixel.NewFrame(canvasW, canvasH, pixel.RGBA8888)

	var palette []byte
	if format == bipFormatClut8 {
		// a short read leaves palette as all-zero entries (solid black)
		// rather than failing the whole tile pass.
		palette = make([]byte, 256*4)
		_ = f.ReadChunkExact(palette, bipHeaderSize+int64(tileCount)*int64(recordSize))
	}

	blockPoolOff := int64(bipHeaderSize) + int64(tileCount)*int64(recordSize)
	if format == bipFormatClut8 {
		blockPoolOff += 1024
	}

	for i := 0; i < tileCount; i++ {
		recOff := int64(bipHeaderSize) + int64(i)*int64(recordSize)
		tileX := (i % cols) * blockSize
		tileY := (i / cols) * blockSize

		if tileX > canvasW+blockSize || tileY > canvasH+blockSize {
			return nil, true, nil
		}

		tile, e := decodeBIPTile(f, recOff, recordSize, blockPoolOff, blockSize, format, palette)
		if e != nil {
			return nil, false, e
		}
		canvas.Paste(tileX, tileY, tile)
	}

	return canvas, false, nil
}

func decodeBIPTile(f *bytesource.FileData, recOff int64, recordSize int, blockPoolOff int64, blockSize int, format uint8, palette []byte) (*pixel.Frame, error) {
	if recordSize == bipTileRecordPNG {
		pngOffset, e := f.GetU32At(recOff + 1)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		pngLength, e := f.GetU16At(recOff + 5)
		if e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		raw := make([]byte, pngLength)
		if e := f.ReadChunkExact(raw, int64(pngOffset)); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		std, e := png.Decode(bytes.NewReader(raw))
		if e != nil {
			return nil, ErrorBadMagic.Error(e)
		}
		return frameFromStdImage(std), nil
	}

	blockIndex, e := f.GetU16At(recOff)
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}

	if format == bipFormatClut8 {
		raw := make([]byte, blockSize*blockSize)
		if e := f.ReadChunkExact(raw, blockPoolOff+int64(blockIndex)*int64(blockSize*blockSize)); e != nil {
			return nil, ErrorTruncated.Error(e)
		}
		return pixel.FrameFromFormat(pixel.ClutRGBA8, raw, palette, blockSize, blockSize)
	}

	raw := make([]byte, blockSize*blockSize*4)
	if e := f.ReadChunkExact(raw, blockPoolOff+int64(blockIndex)*int64(blockSize*blockSize*4)); e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	return pixel.FrameFromFormat(pixel.RGBA8888, raw, nil, blockSize, blockSize)
}
