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

package compress

import (
	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

// Registry holds every compression decoder in this package. cps-pc and cps
// carry strong magics/preamble checks and go first; the two chunked
// variants and classic lzss only ever claim Possible, so their order among
// themselves only matters when more than one would otherwise decode the
// same bytes without error.
var Registry = decode.NewRegistry("compress")

func init() {
	decode.Register(Registry, decode.Decoder[*bytesource.FileData]{
		ID:          "cps-pc",
		Description: "CPS\\0 obfuscated archive wrapper",
		Detect:      detectCPSPC,
		DecodeFn:    decodeCPSPC,
	})
	decode.Register(Registry, decode.Decoder[*bytesource.FileData]{
		ID:          "cps",
		Description: "CPS: back-reference/literal token stream",
		Detect:      detectCPS,
		DecodeFn:    decodeCPS,
	})
	decode.Register(Registry, decode.Decoder[*bytesource.FileData]{
		ID:          "lzss-be",
		Description: "chunked LZSS, big-endian back-references, lenient",
		Detect:      detectLZSSBE,
		DecodeFn:    decodeLZSSBE,
	})
	decode.Register(Registry, decode.Decoder[*bytesource.FileData]{
		ID:          "lzss-dc",
		Description: "chunked LZSS, big-endian back-references, strict",
		Detect:      detectLZSSDC,
		DecodeFn:    decodeLZSSDC,
	})
	decode.Register(Registry, decode.Decoder[*bytesource.FileData]{
		ID:          "lzss",
		Description: "classic Okumura ring-buffer LZSS",
		Detect:      detectLZSS,
		DecodeFn:    decodeLZSS,
	})
}
