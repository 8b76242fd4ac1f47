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

// entry is the type-erased form of a Decoder[T]. Registry stores entries
// rather than Decoder[T] directly so that a single Registry can hold
// decoders registered from different call sites with different T, and so
// the auto-decode loop in this package can walk archive, image and
// compression registries uniformly without ever naming their T.
type entry struct {
	id          string
	description string
	detect      func(f *bytesource.FileData) Confidence
	decode      func(f *bytesource.FileData) (any, error)
}

// Registry is an ordered list of decoders for one format family (archive,
// image, or compression). Order within a registry is semantically
// significant: when two decoders both report the same confidence for a
// source, the first one registered wins.
type Registry struct {
	name    string
	entries []entry
}

// NewRegistry returns an empty, named Registry. name is used only for
// diagnostics.
func NewRegistry(name string) *Registry {
	return &Registry{name: name}
}

// Name returns the registry's diagnostic name.
func (r *Registry) Name() string {
	return r.name
}

// Register appends d to r, type-erasing its result type. It is meant to be
// called from a format package's init(), once per decoder, in the order
// that package wants its decoders tried.
func Register[T any](r *Registry, d Decoder[T]) {
	r.entries = append(r.entries, entry{
		id:          d.ID,
		description: d.Description,
		detect:      d.Detect,
		decode: func(f *bytesource.FileData) (any, error) {
			return d.DecodeFn(f)
		},
	})
}

// IDs returns the registered decoder ids in registration order, for
// diagnostics and tests.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// firstAt returns the first entry (in registration order) whose id is not
// disallow and whose Detect reports exactly want, decoding it immediately.
// ok is false when no entry matched at all; a matched-but-failed decode is
// reported via err with ok true.
func (r *Registry) firstAt(f *bytesource.FileData, disallow string, want Confidence) (id string, val any, ok bool, err error) {
	for _, e := range r.entries {
		if e.id == disallow {
			continue
		}
		if e.detect(f) != want {
			continue
		}
		v, decErr := e.decode(f)
		return e.id, v, true, decErr
	}
	return "", nil, false, nil
}

// allPossible returns, in registration order, every entry (other than
// disallow) whose Detect reports Possible. The auto-decode loop tries these
// in turn until one actually decodes successfully.
func (r *Registry) allPossible(f *bytesource.FileData, disallow string) []entry {
	var out []entry
	for _, e := range r.entries {
		if e.id == disallow {
			continue
		}
		if e.detect(f) != Possible {
			continue
		}
		out = append(out, e)
	}
	return out
}
