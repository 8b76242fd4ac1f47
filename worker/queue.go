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
	"sync"

	"github.com/malucard/kidfile-go/bytesource"
)

// job is one queued decode target: a path for reporting, the FileData to
// feed auto-decode, and the archive decoder id (if any) that produced it -
// forwarded to AutoDecodeFull's inArchiveID so a heuristic archive match
// never recurses into a leaf file nested inside an already-identified
// archive.
type job struct {
	path        PhysicalPath
	data        *bytesource.FileData
	inArchiveID string
}

// queue is a mutex-protected FIFO of pending jobs. Pop blocks until a job
// is available or the queue is drained: every push increments pending,
// every completed job (via done) decrements it, and pending reaching zero
// closes the queue and wakes every blocked popper with no more work to do.
//
// Workers take the lock only for push, pushMany, pop and done - never while
// running a decode - matching the "mutex held only for pop/push-many"
// shape described for the batch-extract queue.
type queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []job
	pending int
	closed  bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push enqueues a single job, typically the initial seed file.
func (q *queue) push(j job) {
	q.mu.Lock()
	q.items = append(q.items, j)
	q.pending++
	q.mu.Unlock()
	q.cond.Signal()
}

// pushMany enqueues the archive entries discovered by one completed job.
// Called before that job's done, so pending never transiently drops to
// zero while its children are still in flight.
func (q *queue) pushMany(js []job) {
	if len(js) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, js...)
	q.pending += len(js)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// pop removes and returns the front job, blocking if the queue is
// momentarily empty but not yet closed. ok is false once closed and
// drained - the caller should exit its worker loop.
func (q *queue) pop() (j job, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return job{}, false
	}
	j, q.items = q.items[0], q.items[1:]
	return j, true
}

// done marks one popped job as fully processed (including any children it
// pushed). Once pending reaches zero there is no more work anywhere in the
// pipeline, so the queue closes and every blocked pop returns.
func (q *queue) done() {
	q.mu.Lock()
	q.pending--
	if q.pending <= 0 {
		q.closed = true
		q.cond.Broadcast()
	}
	q.mu.Unlock()
}

// stop forces the queue closed regardless of pending work, waking every
// blocked pop immediately. Used by Pool.Cancel.
func (q *queue) stop() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
