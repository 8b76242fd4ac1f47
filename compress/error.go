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
	"fmt"

	liberr "github.com/malucard/kidfile-go/errors"
)

const (
	ErrorSizeOutOfRange liberr.CodeError = iota + liberr.MinPkgCompress
	ErrorTruncatedStream
	ErrorBadBackReference
	ErrorBadHeader
)

func init() {
	if liberr.ExistInMapMessage(ErrorSizeOutOfRange) {
		panic(fmt.Errorf("error code collision kidfile-go/compress"))
	}
	liberr.RegisterIdFctMessage(ErrorSizeOutOfRange, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorSizeOutOfRange:
		return "declared decompressed size is out of range"
	case ErrorTruncatedStream:
		return "compressed stream ended before producing the declared size"
	case ErrorBadBackReference:
		return "back-reference points before the start of output"
	case ErrorBadHeader:
		return "compressed stream header is malformed"
	}

	return liberr.NullMessage
}
