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

package decode

import "github.com/malucard/kidfile-go/bytesource"

// Registries bundles the three ordered registries the auto-decode loop
// walks on every step. Compression always loops back to KindRaw; Archive
// and Image are terminal.
type Registries struct {
	Archive     *Registry
	Image       *Registry
	Compression *Registry
}

// AutoDecodeStep runs one round of detection against cur: first a certain
// pass over Archive, then Image, then Compression (in that order, since an
// archive magic is the strongest possible signal and a bare compression
// codec the weakest); then, only if nothing was certain, a possible pass in
// the same order. disallow excludes a single decoder id from both passes -
// the auto-decode loop's only cycle guard is refusing to immediately re-run
// the decoder that produced cur.
//
// When inArchiveID is non-empty, the caller is iterating entries of an
// archive produced by the decoder with that id, and the possible pass skips
// the archive registry entirely: a heuristic archive match (concat2k, most
// notably) must never be allowed to recurse into a leaf file that is simply
// large enough to look like one.
func AutoDecodeStep(cur *bytesource.FileData, disallow string, inArchiveID string, regs Registries) (id string, out DynData, err error) {
	type probe struct {
		kind Kind
		reg  *Registry
	}
	order := []probe{
		{KindArchive, regs.Archive},
		{KindImage, regs.Image},
		{KindRaw, regs.Compression},
	}

	for _, p := range order {
		if p.reg == nil {
			continue
		}
		cid, val, ok, decErr := p.reg.firstAt(cur, disallow, Certain)
		if !ok {
			continue
		}
		if decErr != nil {
			return cid, DynData{}, ErrorCertainDecodeFailed.Error(decErr)
		}
		return cid, wrap(p.kind, val), nil
	}

	for _, p := range order {
		if p.reg == nil {
			continue
		}
		if p.kind == KindArchive && inArchiveID != "" {
			continue
		}
		for _, e := range p.reg.allPossible(cur, disallow) {
			val, decErr := e.decode(cur)
			if decErr != nil {
				continue
			}
			return e.id, wrap(p.kind, val), nil
		}
	}

	return "", DynData{}, ErrorNoDecoderMatched.Error(nil)
}

func wrap(k Kind, val any) DynData {
	if k == KindRaw {
		return DynData{Kind: KindRaw, Raw: val.(*bytesource.FileData)}
	}
	return DynData{Kind: k, Value: val}
}

// FullResult is the outcome of AutoDecodeFull: the final DynData reached
// (Raw if decoding stalled), the ordered list of decoder ids applied, and a
// human-readable error message, empty on success.
type FullResult struct {
	Out    DynData
	Steps  []string
	ErrMsg string
}

// AutoDecodeFull repeatedly applies AutoDecodeStep to initial, feeding each
// KindRaw result back in as the next step's input, until a step produces a
// terminal KindArchive or KindImage, or no decoder matches at all. The
// decoder id used on a step is disallowed on the very next step only; two
// non-adjacent steps may reuse the same decoder id (for instance an LZSS
// blob found inside another LZSS blob, two archive layers apart).
//
// inArchiveID is forwarded unchanged to every step; pass the id of the
// archive decoder that produced initial's entries when decoding inside an
// archive, or "" at the top level.
func AutoDecodeFull(initial *bytesource.FileData, inArchiveID string, regs Registries) FullResult {
	steps := make([]string, 0, 4)
	cur := initial
	disallow := ""

	for {
		id, out, err := AutoDecodeStep(cur, disallow, inArchiveID, regs)
		if err != nil {
			return FullResult{
				Out:    DynData{Kind: KindRaw, Raw: cur},
				Steps:  steps,
				ErrMsg: err.Error(),
			}
		}

		steps = append(steps, id)

		if out.Kind != KindRaw {
			return FullResult{Out: out, Steps: steps}
		}

		cur = out.Raw
		disallow = id
	}
}
