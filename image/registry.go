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
	"github.com/malucard/kidfile-go/decode"
	"github.com/malucard/kidfile-go/pixel"
)

// Registry holds every image container decoder in this package. klz is
// checked before tim2 even though tim2's own detector already excludes
// klz's PNGFILE3-tagged files, to keep the stronger, more specific
// container check first; common desktop formats (png/jpeg/gif/bmp) go
// last since nothing about their magics overlaps any console format here.
var Registry = decode.NewRegistry("image")

func init() {
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "gim",
		Description: "GIM: MIG.00.1PSP block tree, picture/palette/image blocks",
		Detect:      detectGIM,
		DecodeFn:    decodeGIM,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "klz",
		Description: "KLZ: concatenated TIM2 headers with PNGFILE3-tagged payloads",
		Detect:      detectKLZ,
		DecodeFn:    decodeKLZ,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "tim2",
		Description: "TIM2: magic + per-frame header table",
		Detect:      detectTIM2,
		DecodeFn:    decodeTIM2,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "pvr",
		Description: "PVR: optional GBIX/PVPL chunks + PVRT texture chunk",
		Detect:      detectPVR,
		DecodeFn:    decodePVR,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "ogdt",
		Description: "OGDT: magic + tile grid header",
		Detect:      detectOGDT,
		DecodeFn:    decodeOGDT,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "bip",
		Description: "BIP: tile-index-driven canvas composition",
		Detect:      detectBIP,
		DecodeFn:    decodeBIP,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "prt",
		Description: "PRT: bottom-up stride-aligned 8bpp/24bpp rows",
		Detect:      detectPRT,
		DecodeFn:    decodePRT,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "tim",
		Description: "TIM: PS1 native clut4/clut8/PSX16/RGB24",
		Detect:      detectTIM,
		DecodeFn:    decodeTIM,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "png",
		Description: "PNG via the standard library",
		Detect:      detectPNG,
		DecodeFn:    decodePNG,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "jpeg",
		Description: "JPEG via the standard library",
		Detect:      detectJPEG,
		DecodeFn:    decodeJPEG,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "gif",
		Description: "GIF (all frames) via the standard library",
		Detect:      detectGIF,
		DecodeFn:    decodeGIF,
	})
	decode.Register(Registry, decode.Decoder[*pixel.Image]{
		ID:          "bmp",
		Description: "BMP via golang.org/x/image/bmp",
		Detect:      detectBMP,
		DecodeFn:    decodeBMP,
	})
}
