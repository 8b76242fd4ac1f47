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

import "github.com/malucard/kidfile-go/bytesource"

// Timestamp is an AFS entry's six-field creation time. AFS stores these as
// raw little-endian u16 fields with no timezone; they are kept exactly as
// stored rather than converted to time.Time, since several observed values
// (month 0, day 0) aren't valid calendar dates.
type Timestamp struct {
	Year, Month, Day, Hour, Minute, Second uint16
}

// ArchiveEntry is one member of a decoded Archive. Data typically
// references a zero-copy subfile of the parent archive's own FileData.
//
// NeedsDecompress is set by the lnk decoder only: the legacy format this
// game family uses marks some entries compressed but the lnk container
// itself never decompresses them - that is left to whichever compression
// decoder later claims the entry's bytes during auto-decode. Every other
// decoder in this package leaves it false.
type ArchiveEntry struct {
	Name            string
	Data            *bytesource.FileData
	Timestamp       *Timestamp
	NeedsDecompress bool
}

// Archive is the uniform result of every decoder in this package: a stable
// format tag plus an ordered list of entries.
type Archive struct {
	Format  string
	Entries []ArchiveEntry
}
