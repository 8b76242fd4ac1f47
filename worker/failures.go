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

import (
	"errors"
	"sync"
)

// Failure pairs one job's path with the stall reason AutoDecodeFull gave up
// with.
type Failure struct {
	Path PhysicalPath
	Err  error
}

// failures is a minimal thread-safe collector: every worker goroutine
// appends to it as jobs finish, and the caller reads the accumulated list
// once Run returns. A mutex-protected slice is enough here - unlike queue's
// pop, nothing ever blocks waiting for a failure to appear.
type failures struct {
	mu   sync.Mutex
	list []Failure
}

func (f *failures) add(path PhysicalPath, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = append(f.list, Failure{Path: path, Err: err})
}

func (f *failures) slice() []Failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Failure(nil), f.list...)
}

// Error joins every collected failure into one error, or nil if there were
// none.
func (f *failures) Error() error {
	list := f.slice()
	if len(list) == 0 {
		return nil
	}
	errs := make([]error, len(list))
	for i, fl := range list {
		errs[i] = fl.Err
	}
	return errors.Join(errs...)
}
