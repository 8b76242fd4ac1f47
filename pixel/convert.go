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

import "encoding/binary"

// expand5to8 replicates a 5-bit channel's low 3 bits into the vacated low
// bits of an 8-bit channel, the standard bit-replication upsample.
func expand5to8(v uint8) uint8 {
	return v<<3 | v>>2
}

// expand6to8 replicates a 6-bit channel's low 2 bits.
func expand6to8(v uint8) uint8 {
	return v<<2 | v>>4
}

// expand4to8 replicates a 4-bit channel onto itself.
func expand4to8(v uint8) uint8 {
	return v<<4 | v
}

func boolAlpha(bit bool) uint8 {
	if bit {
		return 255
	}
	return 0
}

// FrameFromFormat decodes raw into a canonical RGBA8 Frame according to
// format. palette is required for palettized formats and must hold the
// full table (16 entries for the 4-bit formats, 256 for the 8-bit ones, at
// PaletteStride bytes each); it is ignored otherwise.
func FrameFromFormat(format PixelFormat, raw []byte, palette []byte, width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 || width > 1<<20 || height > 1<<20 {
		return nil, ErrorBadDimensions.Error(nil)
	}

	n := width * height
	if err := checkLen(format, raw, n); err != nil {
		return nil, err
	}
	if format.IsPalettized() {
		if err := checkPaletteLen(format, palette); err != nil {
			return nil, err
		}
	}

	f := NewFrame(width, height, format)
	px := f.Pixels

	switch format {
	case RGB888:
		for i := 0; i < n; i++ {
			px[i*4+0] = raw[i*3+0]
			px[i*4+1] = raw[i*3+1]
			px[i*4+2] = raw[i*3+2]
			px[i*4+3] = 255
		}
	case BGR888:
		for i := 0; i < n; i++ {
			px[i*4+0] = raw[i*3+2]
			px[i*4+1] = raw[i*3+1]
			px[i*4+2] = raw[i*3+0]
			px[i*4+3] = 255
		}
	case RGBX8888, RGBA8888:
		alpha := format == RGBA8888
		for i := 0; i < n; i++ {
			copy(px[i*4:i*4+3], raw[i*4:i*4+3])
			if alpha {
				px[i*4+3] = raw[i*4+3]
			} else {
				px[i*4+3] = 255
			}
		}
	case BGRX8888, BGRA8888:
		alpha := format == BGRA8888
		for i := 0; i < n; i++ {
			px[i*4+0] = raw[i*4+2]
			px[i*4+1] = raw[i*4+1]
			px[i*4+2] = raw[i*4+0]
			if alpha {
				px[i*4+3] = raw[i*4+3]
			} else {
				px[i*4+3] = 255
			}
		}
	case RGB565:
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(raw[i*2:])
			px[i*4+0] = expand5to8(uint8(v >> 11 & 0x1F))
			px[i*4+1] = expand6to8(uint8(v >> 5 & 0x3F))
			px[i*4+2] = expand5to8(uint8(v & 0x1F))
			px[i*4+3] = 255
		}
	case BGR565:
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(raw[i*2:])
			px[i*4+2] = expand5to8(uint8(v >> 11 & 0x1F))
			px[i*4+1] = expand6to8(uint8(v >> 5 & 0x3F))
			px[i*4+0] = expand5to8(uint8(v & 0x1F))
			px[i*4+3] = 255
		}
	case RGBA5551, RGBX5551:
		alpha := format == RGBA5551
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(raw[i*2:])
			px[i*4+0] = expand5to8(uint8(v & 0x1F))
			px[i*4+1] = expand5to8(uint8(v >> 5 & 0x1F))
			px[i*4+2] = expand5to8(uint8(v >> 10 & 0x1F))
			if alpha {
				px[i*4+3] = boolAlpha(v&0x8000 != 0)
			} else {
				px[i*4+3] = 255
			}
		}
	case BGRA5551, BGRX5551:
		alpha := format == BGRA5551
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(raw[i*2:])
			px[i*4+2] = expand5to8(uint8(v & 0x1F))
			px[i*4+1] = expand5to8(uint8(v >> 5 & 0x1F))
			px[i*4+0] = expand5to8(uint8(v >> 10 & 0x1F))
			if alpha {
				px[i*4+3] = boolAlpha(v&0x8000 != 0)
			} else {
				px[i*4+3] = 255
			}
		}
	case RGBA4444, RGBX4444:
		alpha := format == RGBA4444
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(raw[i*2:])
			px[i*4+0] = expand4to8(uint8(v & 0xF))
			px[i*4+1] = expand4to8(uint8(v >> 4 & 0xF))
			px[i*4+2] = expand4to8(uint8(v >> 8 & 0xF))
			if alpha {
				px[i*4+3] = expand4to8(uint8(v >> 12 & 0xF))
			} else {
				px[i*4+3] = 255
			}
		}
	case BGRX4444, BGRA4444:
		alpha := format == BGRA4444
		for i := 0; i < n; i++ {
			v := binary.LittleEndian.Uint16(raw[i*2:])
			px[i*4+2] = expand4to8(uint8(v & 0xF))
			px[i*4+1] = expand4to8(uint8(v >> 4 & 0xF))
			px[i*4+0] = expand4to8(uint8(v >> 8 & 0xF))
			if alpha {
				px[i*4+3] = expand4to8(uint8(v >> 12 & 0xF))
			} else {
				px[i*4+3] = 255
			}
		}
	case Gray8:
		for i := 0; i < n; i++ {
			px[i*4+0] = raw[i]
			px[i*4+1] = raw[i]
			px[i*4+2] = raw[i]
			px[i*4+3] = 255
		}
	case ClutRGB8, ClutBGR8, ClutRGBA8, ClutBGRA8:
		stride := format.PaletteStride()
		bgr := format == ClutBGR8 || format == ClutBGRA8
		hasAlpha := format == ClutRGBA8 || format == ClutBGRA8
		for i := 0; i < n; i++ {
			idx := int(raw[i])
			decodePaletteEntry(px[i*4:i*4+4], palette, idx, stride, bgr, hasAlpha)
		}
	case ClutRGB4, ClutBGR4, ClutRGBA4, ClutBGRA4:
		stride := format.PaletteStride()
		bgr := format == ClutBGR4 || format == ClutBGRA4
		hasAlpha := format == ClutRGBA4 || format == ClutBGRA4
		for i := 0; i < n; i++ {
			b := raw[i/2]
			var idx int
			if i%2 == 0 {
				idx = int(b & 0x0F)
			} else {
				idx = int(b >> 4)
			}
			decodePaletteEntry(px[i*4:i*4+4], palette, idx, stride, bgr, hasAlpha)
		}
	default:
		return nil, ErrorUnsupportedFormat.Error(nil)
	}

	return f, nil
}

func decodePaletteEntry(dst []byte, palette []byte, idx, stride int, bgr, hasAlpha bool) {
	off := idx * stride
	if off+stride > len(palette) {
		dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, 0
		return
	}
	r, g, b := palette[off+0], palette[off+1], palette[off+2]
	if bgr {
		r, b = b, r
	}
	dst[0], dst[1], dst[2] = r, g, b
	if hasAlpha {
		dst[3] = palette[off+3]
	} else {
		dst[3] = 255
	}
}

func bytesPerPixel(format PixelFormat) int {
	switch format {
	case RGB888, BGR888:
		return 3
	case RGBX8888, BGRX8888, RGBA8888, BGRA8888:
		return 4
	case RGB565, BGR565, RGBA5551, BGRA5551, RGBX5551, BGRX5551, RGBA4444, BGRA4444, RGBX4444, BGRX4444:
		return 2
	case Gray8, ClutRGB8, ClutBGR8, ClutRGBA8, ClutBGRA8:
		return 1
	}
	return 0 // ClutRGB4/ClutBGR4/ClutRGBA4/ClutBGRA4: handled separately, 2 pixels/byte
}

func checkLen(format PixelFormat, raw []byte, n int) error {
	switch format {
	case ClutRGB4, ClutBGR4, ClutRGBA4, ClutBGRA4:
		if len(raw) < (n+1)/2 {
			return ErrorBufferTooSmall.Error(nil)
		}
		return nil
	}
	bpp := bytesPerPixel(format)
	if bpp == 0 {
		return ErrorUnsupportedFormat.Error(nil)
	}
	if len(raw) < n*bpp {
		return ErrorBufferTooSmall.Error(nil)
	}
	return nil
}

func checkPaletteLen(format PixelFormat, palette []byte) error {
	stride := format.PaletteStride()
	entries := 16
	switch format {
	case ClutRGB8, ClutBGR8, ClutRGBA8, ClutBGRA8:
		entries = 256
	}
	if len(palette) < entries*stride {
		return ErrorBufferTooSmall.Error(nil)
	}
	return nil
}
