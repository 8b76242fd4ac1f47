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

// PixelFormat names a source pixel layout a container format may declare.
// Every value here converges on the same canonical RGBA8 Frame; the name
// only matters for FrameFromFormat's dispatch and for Frame.OriginalFormat
// labeling.
type PixelFormat uint8

const (
	RGB888 PixelFormat = iota
	BGR888
	RGBX8888
	BGRX8888
	RGBA8888
	BGRA8888
	RGB565
	BGR565
	RGBA5551
	BGRA5551
	RGBX5551
	BGRX5551
	RGBA4444
	BGRA4444
	RGBX4444
	BGRX4444
	Gray8
	ClutRGB8
	ClutBGR8
	ClutRGBA8
	ClutBGRA8
	ClutRGB4
	ClutBGR4
	ClutRGBA4
	ClutBGRA4
)

// String implements fmt.Stringer, used for a decoded Frame's
// OriginalFormat label.
func (f PixelFormat) String() string {
	switch f {
	case RGB888:
		return "RGB888"
	case BGR888:
		return "BGR888"
	case RGBX8888:
		return "RGBX8888"
	case BGRX8888:
		return "BGRX8888"
	case RGBA8888:
		return "RGBA8888"
	case BGRA8888:
		return "BGRA8888"
	case RGB565:
		return "RGB565"
	case BGR565:
		return "BGR565"
	case RGBA5551:
		return "RGBA5551"
	case BGRA5551:
		return "BGRA5551"
	case RGBX5551:
		return "RGBX5551"
	case BGRX5551:
		return "BGRX5551"
	case RGBA4444:
		return "RGBA4444"
	case BGRA4444:
		return "BGRA4444"
	case RGBX4444:
		return "RGBX4444"
	case BGRX4444:
		return "BGRX4444"
	case Gray8:
		return "Gray8"
	case ClutRGB8:
		return "ClutRGB8"
	case ClutBGR8:
		return "ClutBGR8"
	case ClutRGBA8:
		return "ClutRGBA8"
	case ClutBGRA8:
		return "ClutBGRA8"
	case ClutRGB4:
		return "ClutRGB4"
	case ClutBGR4:
		return "ClutBGR4"
	case ClutRGBA4:
		return "ClutRGBA4"
	case ClutBGRA4:
		return "ClutBGRA4"
	}
	return "unknown"
}

// IsPalettized reports whether this format indexes into a palette rather
// than encoding color directly.
func (f PixelFormat) IsPalettized() bool {
	switch f {
	case ClutRGB8, ClutBGR8, ClutRGBA8, ClutBGRA8, ClutRGB4, ClutBGR4, ClutRGBA4, ClutBGRA4:
		return true
	}
	return false
}

// PaletteStride returns the number of bytes one palette entry occupies for
// a palettized format: 3 for RGB/BGR, 4 for formats carrying alpha.
func (f PixelFormat) PaletteStride() int {
	switch f {
	case ClutRGB8, ClutBGR8, ClutRGB4, ClutBGR4:
		return 3
	}
	return 4
}

// Frame is one decoded image surface in canonical RGBA8, row-major,
// top-to-bottom, 4 bytes per pixel.
type Frame struct {
	Width          int
	Height         int
	OriginalFormat PixelFormat
	Pixels         []byte // len == Width*Height*4
}

// NewFrame allocates a zeroed (transparent black) Frame of the given
// dimensions.
func NewFrame(width, height int, format PixelFormat) *Frame {
	return &Frame{
		Width:          width,
		Height:         height,
		OriginalFormat: format,
		Pixels:         make([]byte, width*height*4),
	}
}

// AsRGBABytes returns the frame's canonical RGBA8 row-major buffer.
func (f *Frame) AsRGBABytes() []byte {
	return f.Pixels
}

func (f *Frame) at(x, y int) int {
	return (y*f.Width + x) * 4
}

// Image is an ordered sequence of decoded frames - almost always one, but
// KLZ and TIM2 multi-frame containers produce more than one.
type Image struct {
	Format string
	Frames []*Frame
}
