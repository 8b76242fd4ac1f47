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

package archive

import "github.com/malucard/kidfile-go/decode"

// Registry holds every archive decoder in this package, in the order the
// auto-decode orchestrator should try them. afs and lnk are checked first
// since their magics make them cheap Certain-or-Impossible calls; databin
// depends on a sibling file lookup; concat2k is the heuristic fallback and
// is deliberately last.
var Registry = decode.NewRegistry("archive")

func init() {
	decode.Register(Registry, decode.Decoder[*Archive]{
		ID:          "afs",
		Description: "AFS: magic + offset/length table + name/timestamp table",
		Detect:      detectAFS,
		DecodeFn:    decodeAFS,
	})
	decode.Register(Registry, decode.Decoder[*Archive]{
		ID:          "lnk",
		Description: "LNK: magic + 32-byte index records",
		Detect:      detectLNK,
		DecodeFn:    decodeLNK,
	})
	decode.Register(Registry, decode.Decoder[*Archive]{
		ID:          "databin",
		Description: "sibling-indexed data.bin/slps_026.69 sector table",
		Detect:      detectDatabin,
		DecodeFn:    decodeDatabin,
	})
	decode.Register(Registry, decode.Decoder[*Archive]{
		ID:          "concat2k",
		Description: "heuristic 2048-byte-aligned signature scan",
		Detect:      detectConcat2k,
		DecodeFn:    decodeConcat2k,
	})
}
