// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Handler is a function registered to receive a named event.
// The data depends on the event: pick events carry the pick info,
// Inactive carries nil.
type Handler func(data any)

// Listeners registers ordered lists of handler functions by event name.
// A single handler and a list of handlers are the same thing here:
// a list of length one.
type Listeners map[string][]Handler

// Init ensures that map is constructed
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[string][]Handler)
}

// Add appends handlers for the given event name.
func (ls *Listeners) Add(name string, funs ...Handler) {
	ls.Init()
	(*ls)[name] = append((*ls)[name], funs...)
}

// Set replaces all handlers for the given event name.
// Calling it with no handlers removes the event.
func (ls *Listeners) Set(name string, funs ...Handler) {
	ls.Init()
	if len(funs) == 0 {
		delete(*ls, name)
		return
	}
	(*ls)[name] = funs
}

// Has returns whether any handler is registered for the name.
func (ls Listeners) Has(name string) bool {
	return len(ls[name]) > 0
}

// Call calls all handlers for the given name, in the order added.
// It returns the number of handlers called.
func (ls Listeners) Call(name string, data any) int {
	funs := ls[name]
	for _, fun := range funs {
		fun(data)
	}
	return len(funs)
}
