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

// Confidence is a decoder's self-reported belief that it can decode a given
// source. It forms a total order: Impossible < Possible < Certain.
type Confidence uint8

const (
	// Impossible means the decoder is sure it cannot handle the source -
	// a magic mismatch, a length below the format's minimum header size.
	Impossible Confidence = iota

	// Possible means the source is not ruled out but nothing pins it down
	// either - a heuristic signature scan, a plausible-but-unverified size.
	Possible

	// Certain means the decoder has verified enough structure (a magic plus
	// an internally consistent table, typically) to stake its claim ahead
	// of every Possible decoder in the same registry.
	Certain
)

// String implements fmt.Stringer.
func (c Confidence) String() string {
	switch c {
	case Impossible:
		return "impossible"
	case Possible:
		return "possible"
	case Certain:
		return "certain"
	}
	return "unknown"
}

// Decoder pairs a detector with a decode function for a single format. T is
// the concrete result type the format produces - *archive.Archive,
// *pixel.Image, or *bytesource.FileData for a compression codec that just
// unwraps to more raw bytes.
//
// Detect must be cheap: it is called against every candidate source during
// both the certain and the possible pass, and must never mutate f beyond
// whatever lazy materialization FileData itself performs internally.
type Decoder[T any] struct {
	ID          string
	Description string
	Detect      func(f *bytesource.FileData) Confidence
	DecodeFn    func(f *bytesource.FileData) (T, error)
}

// Kind tags which arm of a DynData union is populated.
type Kind uint8

const (
	// KindRaw means Value is unset and Raw holds undecoded bytes - the
	// auto-decode loop feeds these back in as the next step's input.
	KindRaw Kind = iota

	// KindArchive means Value holds a *archive.Archive.
	KindArchive

	// KindImage means Value holds a *pixel.Image.
	KindImage
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindArchive:
		return "archive"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// DynData is the polymorphic result of a single auto-decode step: either
// more raw bytes to keep decoding, or a terminal Archive or Image. Value is
// deliberately untyped so that this package never has to import archive or
// pixel - callers type-assert Value against the concrete type Kind promises.
type DynData struct {
	Kind  Kind
	Raw   *bytesource.FileData
	Value any
}
