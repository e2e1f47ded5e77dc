// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes(t *testing.T) {
	assert.Equal(t, "mousedown", MouseDown.String())
	assert.Equal(t, "doubleclick", DoubleClick.String())
	assert.Equal(t, "Types(99)", Types(99).String())

	tp, err := ParseType("on_Click")
	require.NoError(t, err)
	assert.Equal(t, Click, tp)
	_, err = ParseType("wheel")
	assert.Error(t, err)

	assert.False(t, MouseMove.IsDiscrete())
	assert.True(t, MouseUp.IsDiscrete())
}

func TestPointer(t *testing.T) {
	ev := NewPointer(MouseDown, 0.5, 0.25, time.Now())
	assert.True(t, ev.InBounds())
	ev.X = 1.5
	assert.False(t, ev.InBounds())
}

func TestPointerJSON(t *testing.T) {
	var ev Pointer
	require.NoError(t, json.Unmarshal([]byte(`{"type":"mouseup","x":0.25,"y":0.75}`), &ev))
	assert.Equal(t, MouseUp, ev.Type)
	assert.Equal(t, 0.75, ev.Y)

	b, err := json.Marshal(NewPointer(Click, 0, 0, time.Time{}))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"click"`)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"wheel"}`), &ev))
}

func TestListenersOrder(t *testing.T) {
	var ls Listeners
	var got []int
	ls.Add("click", func(any) { got = append(got, 1) })
	ls.Add("click", func(any) { got = append(got, 2) })
	assert.True(t, ls.Has("click"))
	assert.False(t, ls.Has("mouseup"))
	assert.Equal(t, 2, ls.Call("click", nil))
	assert.Equal(t, []int{1, 2}, got)

	ls.Set("click", func(d any) { got = append(got, d.(int)) })
	ls.Call("click", 3)
	assert.Equal(t, []int{1, 2, 3}, got)

	ls.Set("click")
	assert.False(t, ls.Has("click"))
	assert.Equal(t, 0, ls.Call("click", nil))
}

func TestQueueFIFO(t *testing.T) {
	var q Queue
	_, ok := q.Next()
	assert.False(t, ok)

	for i := range 5 {
		q.Send(Pointer{Type: MouseDown, X: float64(i)})
	}
	assert.Equal(t, uint64(5), q.Len())
	for i := range 5 {
		ev, ok := q.Next()
		require.True(t, ok)
		assert.Equal(t, float64(i), ev.X)
	}
	_, ok = q.Next()
	assert.False(t, ok)
	assert.Equal(t, uint64(0), q.Len())
}

func TestQueueConcurrentSend(t *testing.T) {
	var q Queue
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				q.Send(Pointer{Type: MouseUp})
			}
		}()
	}
	wg.Wait()
	n := 0
	for {
		if _, ok := q.Next(); !ok {
			break
		}
		n++
	}
	assert.Equal(t, 800, n)
}

func TestLatest(t *testing.T) {
	var l Latest
	_, ok := l.Take()
	assert.False(t, ok)
	l.Store(Pointer{Type: MouseMove, X: 0.1})
	l.Store(Pointer{Type: MouseMove, X: 0.2})
	assert.True(t, l.Pending())
	ev, ok := l.Take()
	require.True(t, ok)
	assert.Equal(t, 0.2, ev.X)
	assert.False(t, l.Pending())
}
