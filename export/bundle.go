/*
 *  MIT License
 *
 *  Copyright (c) 2025 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package export

import (
	"archive/tar"
	"io"
	"time"
)

// Item is one already-decoded piece of output to bundle: a raw blob
// extracted from an archive, or a PNG-encoded frame. Name should
// already be a clean slash-separated path, typically built from the
// archive's entry name and the decode steps that produced Data.
type Item struct {
	Name    string
	Data    []byte
	ModTime time.Time
}

// Bundle tars every Item and writes the result through algo's
// compressing writer. algo == None produces a plain .tar.
func Bundle(algo Algorithm, items []Item, w io.Writer) error {
	wc, ok := w.(io.WriteCloser)
	if !ok {
		wc = newWCloser(w)
	}

	cw, err := algo.Writer(wc)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(cw)

	for _, it := range items {
		mt := it.ModTime
		if mt.IsZero() {
			mt = time.Unix(0, 0)
		}

		hdr := &tar.Header{
			Name:    it.Name,
			Size:    int64(len(it.Data)),
			Mode:    0o644,
			ModTime: mt,
		}

		if err = tw.WriteHeader(hdr); err != nil {
			return err
		}

		if _, err = tw.Write(it.Data); err != nil {
			return err
		}
	}

	if err = tw.Close(); err != nil {
		return err
	}

	return cw.Close()
}
