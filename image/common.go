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
	stdimage "image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"

	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
	"github.com/malucard/kidfile-go/pixel"
)

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	gifMagic  = []byte("GIF8")
	bmpMagic  = []byte("BM")
)

func detectPNG(f *bytesource.FileData) decode.Confidence {
	return detectMagic(f, pngMagic)
}

func decodePNG(f *bytesource.FileData) (*pixel.Image, error) {
	return decodeStdlib(f, png.Decode, "png")
}

func detectJPEG(f *bytesource.FileData) decode.Confidence {
	return detectMagic(f, jpegMagic)
}

func decodeJPEG(f *bytesource.FileData) (*pixel.Image, error) {
	return decodeStdlib(f, jpeg.Decode, "jpeg")
}

func detectGIF(f *bytesource.FileData) decode.Confidence {
	return detectMagic(f, gifMagic)
}

func decodeGIF(f *bytesource.FileData) (*pixel.Image, error) {
	raw, e := f.Read()
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	g, e := gif.DecodeAll(bytes.NewReader(raw))
	if e != nil {
		return nil, ErrorBadMagic.Error(e)
	}
	img := &pixel.Image{Format: "gif"}
	for _, frameImg := range g.Image {
		img.Frames = append(img.Frames, frameFromStdImage(frameImg))
	}
	return img, nil
}

func detectBMP(f *bytesource.FileData) decode.Confidence {
	return detectMagic(f, bmpMagic)
}

func decodeBMP(f *bytesource.FileData) (*pixel.Image, error) {
	return decodeStdlib(f, bmp.Decode, "bmp")
}

func detectMagic(f *bytesource.FileData, magic []byte) decode.Confidence {
	if f.Len() < int64(len(magic)) {
		return decode.Impossible
	}
	if f.StartsWith(magic) {
		return decode.Certain
	}
	return decode.Impossible
}

func decodeStdlib(f *bytesource.FileData, decodeFn func(r io.Reader) (stdimage.Image, error), format string) (*pixel.Image, error) {
	raw, e := f.Read()
	if e != nil {
		return nil, ErrorTruncated.Error(e)
	}
	std, e := decodeFn(bytes.NewReader(raw))
	if e != nil {
		return nil, ErrorBadMagic.Error(e)
	}
	return &pixel.Image{Format: format, Frames: []*pixel.Frame{frameFromStdImage(std)}}, nil
}

// frameFromStdImage converts any standard library image.Image into a
// canonical RGBA8 pixel.Frame by reading it through its color.Color
// interface - the common formats are few enough, and varied enough in
// their native color models, that a generic per-pixel copy is simpler than
// a conversion path per concrete image type.
func frameFromStdImage(src stdimage.Image) *pixel.Frame {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := pixel.NewFrame(w, h, pixel.RGBA8888)
	px := out.AsRGBABytes()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*w + x) * 4
			px[off+0] = byte(r >> 8)
			px[off+1] = byte(g >> 8)
			px[off+2] = byte(b >> 8)
			px[off+3] = byte(a >> 8)
		}
	}
	return out
}
