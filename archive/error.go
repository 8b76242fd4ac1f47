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

import (
	"fmt"

	liberr "github.com/malucard/kidfile-go/errors"
)

const (
	ErrorBadMagic liberr.CodeError = iota + liberr.MinPkgArchive
	ErrorImplausibleCount
	ErrorTruncated
	ErrorSiblingMissing
	ErrorTooFewRegions
)

func init() {
	if liberr.ExistInMapMessage(ErrorBadMagic) {
		panic(fmt.Errorf("error code collision kidfile-go/archive"))
	}
	liberr.RegisterIdFctMessage(ErrorBadMagic, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorBadMagic:
		return "archive magic mismatch"
	case ErrorImplausibleCount:
		return "declared entry count is implausible"
	case ErrorTruncated:
		return "archive table extends past end of file"
	case ErrorSiblingMissing:
		return "required sibling file not found next to this one"
	case ErrorTooFewRegions:
		return "heuristic split found fewer than two regions"
	}

	return liberr.NullMessage
}
