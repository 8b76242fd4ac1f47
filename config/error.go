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

package config

import (
	"fmt"

	liberr "github.com/malucard/kidfile-go/errors"
)

const (
	ErrorBindFlags liberr.CodeError = iota + liberr.MinPkgConfig
	ErrorUnmarshal
	ErrorInvalidLogLevel
	ErrorInvalidBundleFormat
)

func init() {
	if liberr.ExistInMapMessage(ErrorBindFlags) {
		panic(fmt.Errorf("error code collision kidfile-go/config"))
	}
	liberr.RegisterIdFctMessage(ErrorBindFlags, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case ErrorBindFlags:
		return "could not bind command-line flags to configuration"
	case ErrorUnmarshal:
		return "could not unmarshal configuration"
	case ErrorInvalidLogLevel:
		return "invalid log level"
	case ErrorInvalidBundleFormat:
		return "invalid bundle format"
	}

	return liberr.NullMessage
}
