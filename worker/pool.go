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

// Package worker implements the batch-extract concurrency pattern: a work
// queue of paths, N worker goroutines each popping a path, running the full
// auto-decode, and pushing newly discovered archive entries back onto the
// queue. It is a minimal stand-in for the external GUI collaborator that
// would otherwise drive decode.AutoDecodeFull concurrently over a directory
// tree.
package worker

import (
	"errors"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/malucard/kidfile-go/archive"
	"github.com/malucard/kidfile-go/bytesource"
	"github.com/malucard/kidfile-go/decode"
)

// Result is what one completed job reports back to the caller.
type Result struct {
	Path PhysicalPath
	Full decode.FullResult
}

// Pool runs N workers against a shared queue of PhysicalPaths, feeding each
// through decode.AutoDecodeFull and requeuing any archive entries it
// discovers. Found and Processed are exact counts of jobs ever queued and
// ever completed; both only grow, so they are safe to sample from any
// goroutine at any time for progress reporting.
type Pool struct {
	Registries decode.Registries

	// N is the worker goroutine count. Zero means runtime.NumCPU().
	N int

	// OnResult is called from whichever worker goroutine finishes a job;
	// it must not block and must be safe to call concurrently, since every
	// worker may call it at once.
	OnResult func(Result)

	q         *queue
	found     atomic.Int64
	processed atomic.Int64
	cancel    atomic.Bool
	started   atomic.Bool
	fails     failures
}

// NewPool returns a Pool ready to accept seed files via Enqueue/EnqueueFile.
func NewPool(regs decode.Registries) *Pool {
	return &Pool{Registries: regs, q: newQueue()}
}

// EnqueueFile seeds the pool with the file at path, opened lazily as a
// streamed FileData covering the whole file.
func (p *Pool) EnqueueFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return ErrorStatFailed.Error(err)
	}
	p.enqueue(job{path: NewPhysicalPath(path), data: bytesource.NewStream(path, 0, info.Size())})
	return nil
}

// Enqueue seeds the pool with an already-open FileData at the given path
// (for callers that already have one in hand, e.g. tests).
func (p *Pool) Enqueue(path PhysicalPath, data *bytesource.FileData) {
	p.enqueue(job{path: path, data: data})
}

func (p *Pool) enqueue(j job) {
	p.found.Add(1)
	p.q.push(j)
}

// Found returns the total number of jobs ever queued, seeds included.
func (p *Pool) Found() int64 { return p.found.Load() }

// Processed returns the total number of jobs that have finished decoding.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Failures returns every job whose decode stalled (no decoder matched, or
// a certain decoder's Decode returned an error), most-recently-finished
// order not guaranteed. Safe to call while Run is still in progress.
func (p *Pool) Failures() []Failure { return p.fails.slice() }

// Cancel requests every worker stop taking new jobs. In-flight decodes
// still run to completion - decoders are expected to terminate in bounded
// time on any input, so there is nothing to interrupt mid-decode.
func (p *Pool) Cancel() {
	p.cancel.Store(true)
	p.q.stop()
}

// Run spawns the worker goroutines and blocks until the queue drains or
// Cancel is called. It must be called exactly once per Pool; calling it
// again after it returns (or concurrently) returns ErrorAlreadyRunning.
func (p *Pool) Run() error {
	if !p.started.CompareAndSwap(false, true) {
		return ErrorAlreadyRunning.Error(nil)
	}

	n := p.N
	if n <= 0 {
		n = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			p.runWorker()
		}()
	}
	wg.Wait()
	return nil
}

func (p *Pool) runWorker() {
	for {
		if p.cancel.Load() {
			return
		}
		j, ok := p.q.pop()
		if !ok {
			return
		}
		p.runJob(j)
	}
}

func (p *Pool) runJob(j job) {
	full := decode.AutoDecodeFull(j.data, j.inArchiveID, p.Registries)

	if full.ErrMsg != "" {
		p.fails.add(j.path, errors.New(full.ErrMsg))
	}

	if full.Out.Kind == decode.KindArchive {
		arc := full.Out.Value.(*archive.Archive)
		if len(arc.Entries) > 0 {
			id := arc.Format
			if len(full.Steps) > 0 {
				id = full.Steps[len(full.Steps)-1]
			}
			children := make([]job, 0, len(arc.Entries))
			for _, e := range arc.Entries {
				children = append(children, job{
					path:        j.path.Descend(id, e.Name),
					data:        e.Data,
					inArchiveID: id,
				})
			}
			p.found.Add(int64(len(children)))
			p.q.pushMany(children)
		}
	}

	p.processed.Add(1)
	if p.OnResult != nil {
		p.OnResult(Result{Path: j.path, Full: full})
	}
	p.q.done()
}
