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

// Paste copies src into self at (x, y), clipping at self's right and
// bottom edges. Negative x/y or a src fully outside self is a no-op.
func (f *Frame) Paste(x, y int, src *Frame) {
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= f.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= f.Width {
				continue
			}
			copy(f.Pixels[f.at(dx, dy):f.at(dx, dy)+4], src.Pixels[src.at(sx, sy):src.at(sx, sy)+4])
		}
	}
}

// PasteResizing grows self (in place) so src fits at (x, y) before
// pasting, rather than clipping.
func (f *Frame) PasteResizing(x, y int, src *Frame) {
	needW := x + src.Width
	needH := y + src.Height
	if needW > f.Width || needH > f.Height {
		f.Resize(maxInt(f.Width, needW), maxInt(f.Height, needH))
	}
	f.Paste(x, y, src)
}

// Resize extends or truncates the frame to w×h in place, preserving the
// existing top-left content; new area (on grow) is transparent black.
func (f *Frame) Resize(w, h int) {
	if w == f.Width && h == f.Height {
		return
	}
	next := make([]byte, w*h*4)
	copyW := minInt(w, f.Width)
	copyH := minInt(h, f.Height)
	for y := 0; y < copyH; y++ {
		srcOff := (y*f.Width + 0) * 4
		dstOff := (y*w + 0) * 4
		copy(next[dstOff:dstOff+copyW*4], f.Pixels[srcOff:srcOff+copyW*4])
	}
	f.Width = w
	f.Height = h
	f.Pixels = next
}

// CrushedDown extracts the leading dst_chunk×32 sub-rows of each 32-pixel
// chunk row: the source is treated as a stack of 32-row bands, and only
// the first h rows of each band survive, producing a w×(bands*h) frame.
// No decoder in this module calls it; bip.go composes its canvas with
// Paste.
func (f *Frame) CrushedDown(w, h int) *Frame {
	const band = 32
	bands := (f.Height + band - 1) / band
	out := NewFrame(w, bands*h, f.OriginalFormat)

	for b := 0; b < bands; b++ {
		for y := 0; y < h; y++ {
			srcY := b*band + y
			if srcY >= f.Height {
				break
			}
			dstY := b*h + y
			copyW := minInt(w, f.Width)
			srcOff := (srcY*f.Width + 0) * 4
			dstOff := (dstY*w + 0) * 4
			copy(out.Pixels[dstOff:dstOff+copyW*4], f.Pixels[srcOff:srcOff+copyW*4])
		}
	}
	return out
}

// WithDoubleAlpha rewrites every alpha byte in place from a PS2-style
// 7-bit range (0-128 meaning 0-255) to full 8-bit: a' = a<<1 | (a&1),
// equivalent to a*255/128 clamped to 255 - the clamp matters only at the
// single fixed point a=128, where the bit trick alone would overflow.
func (f *Frame) WithDoubleAlpha() {
	for i := 3; i < len(f.Pixels); i += 4 {
		a := int(f.Pixels[i])
		doubled := a<<1 | (a & 1)
		if doubled > 255 {
			doubled = 255
		}
		f.Pixels[i] = byte(doubled)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
