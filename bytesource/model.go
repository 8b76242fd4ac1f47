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

package bytesource

import (
	"bytes"
	"io"
	"os"
	"sync"
)

// Decompressor turns a compressed stream into its decompressed form. It is
// a plain function value rather than a closure over state so that the
// compressed and streamed-compressed variants stay trivially cloneable -
// cloning never has to deep-copy whatever state produced the function.
type Decompressor func(r io.Reader) (io.Reader, error)

type kind uint8

const (
	kindMemory kind = iota
	kindMemoryCompressed
	kindStream
	kindStreamCompressed
)

// FileData is a polymorphic lazy byte source. It has four variants: an
// owned in-memory buffer, a compressed in-memory buffer, a streamed region
// of a file on disk, and a compressed streamed region. All four expose the
// same operations; compressed and streamed variants materialize into an
// in-memory buffer only when a caller actually needs the bytes.
//
// A FileData is not safe for concurrent use by multiple goroutines without
// external synchronization beyond what is documented per-method; Clone
// produces an independent value safe to hand to another goroutine.
type FileData struct {
	mu sync.Mutex

	k kind

	// populated once materialized, for every variant
	mem []byte

	// kindMemoryCompressed
	compressed []byte

	// kindStream / kindStreamCompressed
	path   string
	start  int64
	length int64
	file   *os.File

	// kindMemoryCompressed / kindStreamCompressed
	logicalSize int64
	decompress  Decompressor
}

// NewMemory returns a FileData backed by an owned, already-decoded buffer.
func NewMemory(data []byte) *FileData {
	return &FileData{k: kindMemory, mem: data}
}

// NewMemoryCompressed returns a FileData backed by a compressed buffer that
// decompresses to logicalSize bytes via decompress on first access.
func NewMemoryCompressed(compressed []byte, logicalSize int64, decompress Decompressor) *FileData {
	return &FileData{
		k:           kindMemoryCompressed,
		compressed:  compressed,
		logicalSize: logicalSize,
		decompress:  decompress,
	}
}

// NewStream returns a FileData referencing [start, start+length) of the
// file at path. The file is opened lazily on first read.
func NewStream(path string, start, length int64) *FileData {
	return &FileData{k: kindStream, path: path, start: start, length: length}
}

// NewStreamCompressed returns a FileData referencing a compressed region of
// the file at path that decompresses to logicalSize bytes via decompress.
func NewStreamCompressed(path string, start, length, logicalSize int64, decompress Decompressor) *FileData {
	return &FileData{
		k:           kindStreamCompressed,
		path:        path,
		start:       start,
		length:      length,
		logicalSize: logicalSize,
		decompress:  decompress,
	}
}

// Len returns the logical (uncompressed) size of the source.
func (f *FileData) Len() int64 {
	switch f.k {
	case kindMemory:
		return int64(len(f.mem))
	case kindMemoryCompressed, kindStreamCompressed:
		return f.logicalSize
	case kindStream:
		if f.mem != nil {
			return int64(len(f.mem))
		}
		return f.length
	}
	return 0
}

// ensureMaterializedLocked promotes the source to an in-memory buffer.
// Caller must hold f.mu.
func (f *FileData) ensureMaterializedLocked() error {
	if f.mem != nil || f.k == kindMemory {
		return nil
	}

	switch f.k {
	case kindMemoryCompressed:
		r, e := f.decompress(bytes.NewReader(f.compressed))
		if e != nil {
			return ErrorDecompress.Error(e)
		}
		buf := make([]byte, f.logicalSize)
		if _, e = io.ReadFull(r, buf); e != nil && e != io.EOF && e != io.ErrUnexpectedEOF {
			return ErrorDecompress.Error(e)
		}
		f.mem = buf
		return nil

	case kindStream:
		buf := make([]byte, f.length)
		if e := f.readRangeLocked(buf, 0); e != nil {
			return e
		}
		f.mem = buf
		return nil

	case kindStreamCompressed:
		raw := make([]byte, f.length)
		if e := f.readRangeLocked(raw, 0); e != nil {
			return e
		}
		r, e := f.decompress(bytes.NewReader(raw))
		if e != nil {
			return ErrorDecompress.Error(e)
		}
		buf := make([]byte, f.logicalSize)
		if _, e = io.ReadFull(r, buf); e != nil && e != io.EOF && e != io.ErrUnexpectedEOF {
			return ErrorDecompress.Error(e)
		}
		f.mem = buf
		return nil
	}

	return nil
}

// openLocked lazily opens the backing file. Caller must hold f.mu.
func (f *FileData) openLocked() error {
	if f.file != nil {
		return nil
	}

	fh, e := os.Open(f.path)
	if e != nil {
		return ErrorFileOpen.Error(e)
	}

	f.file = fh
	return nil
}

// readRangeLocked reads len(out) bytes from the raw (compressed, for a
// compressed variant) region at relative offset into out, without touching
// f.mem. Caller must hold f.mu.
func (f *FileData) readRangeLocked(out []byte, offset int64) error {
	if offset < 0 || offset+int64(len(out)) > f.length {
		return ErrorOutOfRange.Error(nil)
	}

	if e := f.openLocked(); e != nil {
		return e
	}

	if _, e := f.file.Seek(f.start+offset, io.SeekStart); e != nil {
		return ErrorFileSeek.Error(e)
	}

	if _, e := io.ReadFull(f.file, out); e != nil {
		return ErrorFileRead.Error(e)
	}

	return nil
}

// Read returns a stable reference to the full logical contents, promoting
// the source to in-memory on first call. The returned slice must not be
// mutated by callers.
func (f *FileData) Read() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e := f.ensureMaterializedLocked(); e != nil {
		return nil, e
	}

	return f.mem, nil
}

// ReadChunkExact fills out with Len(offset, len(out)) without forcing a
// streamed-uncompressed variant to fully materialize.
func (f *FileData) ReadChunkExact(out []byte, offset int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if offset < 0 || offset+int64(len(out)) > f.Len() {
		return ErrorOutOfRange.Error(nil)
	}

	if f.mem != nil {
		copy(out, f.mem[offset:offset+int64(len(out))])
		return nil
	}

	if f.k == kindStream {
		return f.readRangeLocked(out, offset)
	}

	// compressed variants promote; there is no way to seek inside a
	// compressed stream without decompressing everything before it.
	if e := f.ensureMaterializedLocked(); e != nil {
		return e
	}

	copy(out, f.mem[offset:offset+int64(len(out))])
	return nil
}

// StartsWith reports whether the source's first len(needle) bytes equal
// needle. It never materializes more than len(needle) bytes for a
// streamed-uncompressed source.
func (f *FileData) StartsWith(needle []byte) bool {
	return f.StartsWithAt(needle, 0)
}

// StartsWithAt reports whether the source's bytes at [offset, offset+len(needle))
// equal needle.
func (f *FileData) StartsWithAt(needle []byte, offset int64) bool {
	if offset < 0 || offset+int64(len(needle)) > f.Len() {
		return false
	}

	out := make([]byte, len(needle))
	if e := f.ReadChunkExact(out, offset); e != nil {
		return false
	}

	for i := range needle {
		if out[i] != needle[i] {
			return false
		}
	}

	return true
}

// Subfile returns a FileData over [start, start+length) of the receiver.
// When the receiver is a streamed-uncompressed variant, the result is
// another streamed variant with a shifted origin (zero-copy); otherwise the
// bytes are read and copied into a new in-memory variant.
func (f *FileData) Subfile(start, length int64) (*FileData, error) {
	if start < 0 || length < 0 || start+length > f.Len() {
		return nil, ErrorOutOfRange.Error(nil)
	}

	f.mu.Lock()
	plainStream := f.k == kindStream && f.mem == nil
	path, base := f.path, f.start
	f.mu.Unlock()

	if plainStream {
		return NewStream(path, base+start, length), nil
	}

	buf := make([]byte, length)
	if e := f.ReadChunkExact(buf, start); e != nil {
		return nil, e
	}

	return NewMemory(buf), nil
}

// Clone returns an independent FileData preserving the receiver's variant
// and logical contents but dropping any cached file handle - handles are
// never shared across clones, and are re-opened lazily on first read by
// the clone.
func (f *FileData) Clone() *FileData {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := &FileData{
		k:           f.k,
		path:        f.path,
		start:       f.start,
		length:      f.length,
		logicalSize: f.logicalSize,
		decompress:  f.decompress,
	}

	if f.mem != nil {
		c.mem = append([]byte(nil), f.mem...)
	}

	if f.compressed != nil {
		c.compressed = append([]byte(nil), f.compressed...)
	}

	return c
}

// Path returns the backing file path and true for a streamed variant
// referencing a real on-disk file, or "", false otherwise (in-memory
// variants, including the in-memory result of Subfile on a source that was
// already materialized). Clone keeps the path.
func (f *FileData) Path() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if (f.k == kindStream || f.k == kindStreamCompressed) && f.path != "" {
		return f.path, true
	}
	return "", false
}

// Close releases the backing file handle, if any was opened. It is safe to
// call on any variant and safe to call multiple times.
func (f *FileData) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		return nil
	}

	e := f.file.Close()
	f.file = nil
	return e
}
