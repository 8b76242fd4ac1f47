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

// Package decode holds the generic detect/decode contract (Decoder,
// Confidence, Registry) and the auto-decode orchestration loop that drives
// any three registries - archive, image, compression - to a terminal
// Archive or Image result, or loops on raw bytes.
//
// This package intentionally never imports the archive, compress, image or
// pixel packages: those packages import decode to register their decoders,
// and a Registry is type-erased past registration time via Go generics, so
// the orchestration loop here only ever deals in *bytesource.FileData and
// `any` payloads. The composition root (cmd/kidfile) is what ties concrete
// registries together and type-asserts DynData.Value back to *archive.Archive
// or *pixel.Image.
package decode
