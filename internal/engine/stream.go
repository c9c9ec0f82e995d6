// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package engine

import "sync"

// Stream is an ordered sequence of tasks executed by a single worker
// goroutine. Tasks submitted to one stream run in FIFO order; tasks on
// different streams may run concurrently.
type Stream struct {
	tasks chan func()
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewStream creates a stream and starts its worker goroutine.
func NewStream() *Stream {
	s := &Stream{
		tasks: make(chan func(), 1024),
		done:  make(chan struct{}),
	}
	go s.worker()
	return s
}

// worker drains the task queue in submission order.
func (s *Stream) worker() {
	for task := range s.tasks {
		task()
		s.wg.Done()
	}
	close(s.done)
}

// Submit adds a task to the stream.
func (s *Stream) Submit(task func()) {
	s.wg.Add(1)
	s.tasks <- task
}

// Synchronize waits for all submitted tasks to complete.
func (s *Stream) Synchronize() {
	s.wg.Wait()
}

// Close drains outstanding tasks and stops the worker. The stream must not
// be used after Close.
func (s *Stream) Close() {
	s.wg.Wait()
	close(s.tasks)
	<-s.done
}
