// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO queue of pointer events.
// Input goroutines call [Queue.Send] while the render loop drains the
// queue with [Queue.Next]. The zero value is ready to use.
// It is based on https://github.com/fyne-io/fyne/blob/master/internal/async/queue_canvasobject.go
type Queue struct {
	head atomic.Pointer[queueEvent]
	tail atomic.Pointer[queueEvent]
	len  atomic.Uint64
	once sync.Once
}

type queueEvent struct {
	next atomic.Pointer[queueEvent]
	v    Pointer
}

func (q *Queue) init() {
	q.once.Do(func() {
		head := &queueEvent{}
		q.head.Store(head)
		q.tail.Store(head)
	})
}

// Next removes and returns the next event in the queue.
// It returns false if the queue is empty.
func (q *Queue) Next() (Pointer, bool) {
	q.init()
	var first, last, firstnext *queueEvent
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					return Pointer{}, false
				}
				q.tail.CompareAndSwap(last, firstnext)
			} else {
				v := firstnext.v
				if q.head.CompareAndSwap(first, firstnext) {
					q.len.Add(^uint64(0))
					return v, true
				}
			}
		}
	}
}

// Send adds an event to the end of the queue.
func (q *Queue) Send(ev Pointer) {
	q.init()
	i := &queueEvent{v: ev}

	var last, lastnext *queueEvent
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, i) {
					q.tail.CompareAndSwap(last, i)
					q.len.Add(1)
					return
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
}

// Len returns the length of the queue.
func (q *Queue) Len() uint64 {
	return q.len.Load()
}

// Latest holds at most one pending event: each [Latest.Store] replaces
// the previous one. It coalesces high-rate events such as pointer moves.
type Latest struct {
	v atomic.Pointer[Pointer]
}

// Store replaces the pending event.
func (l *Latest) Store(ev Pointer) {
	l.v.Store(&ev)
}

// Take removes and returns the pending event, if any.
func (l *Latest) Take() (Pointer, bool) {
	p := l.v.Swap(nil)
	if p == nil {
		return Pointer{}, false
	}
	return *p, true
}

// Pending returns whether an event is waiting.
func (l *Latest) Pending() bool {
	return l.v.Load() != nil
}
