// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"
	"sync"
	"sync/atomic"
)

// NodeID is the opaque handle of a node in the graph index.
// The zero NodeID refers to no node.
type NodeID uint64

// entry is the index record of one node. Topology is stored as handles,
// so parents and children never hold references to each other.
type entry struct {
	node     Node
	parent   NodeID
	root     NodeID
	children []NodeID
}

// graphIndex is the process-wide table of all live nodes.
type graphIndex struct {
	mu      sync.RWMutex
	entries map[NodeID]*entry
	roots   []*Scene
	lastID  atomic.Uint64
}

var index = &graphIndex{entries: map[NodeID]*entry{}}

func (gi *graphIndex) add(n Node) NodeID {
	id := NodeID(gi.lastID.Add(1))
	gi.mu.Lock()
	gi.entries[id] = &entry{node: n}
	gi.mu.Unlock()
	return id
}

func (gi *graphIndex) get(id NodeID) *entry {
	if id == 0 {
		return nil
	}
	gi.mu.RLock()
	defer gi.mu.RUnlock()
	return gi.entries[id]
}

func (gi *graphIndex) delete(id NodeID) {
	gi.mu.Lock()
	delete(gi.entries, id)
	gi.mu.Unlock()
}

func (gi *graphIndex) addRoot(sc *Scene) {
	gi.mu.Lock()
	gi.roots = append(gi.roots, sc)
	gi.mu.Unlock()
}

func (gi *graphIndex) deleteRoot(sc *Scene) {
	gi.mu.Lock()
	gi.roots = slices.DeleteFunc(gi.roots, func(r *Scene) bool { return r == sc })
	gi.mu.Unlock()
}

// Lookup returns the live node with the given id, or nil.
func Lookup(id NodeID) Node {
	e := index.get(id)
	if e == nil {
		return nil
	}
	return e.node
}

// Roots returns all live scenes, in creation order.
func Roots() []*Scene {
	index.mu.RLock()
	defer index.mu.RUnlock()
	return slices.Clone(index.roots)
}

// NumNodes returns the number of live nodes in the index.
func NumNodes() int {
	index.mu.RLock()
	defer index.mu.RUnlock()
	return len(index.entries)
}
