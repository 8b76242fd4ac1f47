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

package worker

import "strings"

// PhysicalPath locates one decode target: the filesystem file it ultimately
// lives in, the chain of archive decoder ids descended through to reach it,
// and its name inside the innermost archive. A root-level seed file has an
// empty Chain and Entry.
//
// This is a minimal stand-in for the GUI explorer's richer ComplexPath: it
// carries exactly what the worker pool needs to requeue a freshly
// discovered archive entry and to label a Result for reporting, nothing
// more (no bookmarking, no display-name caching).
type PhysicalPath struct {
	Root  string
	Chain []string
	Entry string
}

// NewPhysicalPath returns a root-level path seeded from a filesystem file.
func NewPhysicalPath(root string) PhysicalPath {
	return PhysicalPath{Root: root}
}

// Descend returns the path of an entry named name found inside the archive
// decoded by archiveID at the current path. The receiver is left untouched;
// Descend always returns a new value with its own Chain slice.
func (p PhysicalPath) Descend(archiveID, name string) PhysicalPath {
	chain := make([]string, len(p.Chain), len(p.Chain)+1)
	copy(chain, p.Chain)
	chain = append(chain, archiveID)
	return PhysicalPath{Root: p.Root, Chain: chain, Entry: name}
}

// String renders the path as root + "::" separated chain segments + entry,
// e.g. "game.bin::afs::lnk::texture.tim2" for an entry of an LNK archive
// found inside an AFS archive (intermediate entry names are not kept).
func (p PhysicalPath) String() string {
	var b strings.Builder
	b.WriteString(p.Root)
	for _, c := range p.Chain {
		b.WriteString("::")
		b.WriteString(c)
	}
	if p.Entry != "" {
		b.WriteString("::")
		b.WriteString(p.Entry)
	}
	return b.String()
}
