// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"mgrl.dev/core/anim"
	"mgrl.dev/core/events"
)

// DefaultAssetHint is the state sort key of nodes that have no asset hint.
const DefaultAssetHint = "unknown_asset"

// Node is the interface for all scene graph nodes.
// All nodes embed [NodeBase] and return it from AsNode.
type Node interface {

	// AsNode returns the embedded [NodeBase] of the node.
	AsNode() *NodeBase
}

// Bounds is the axis aligned extent of a node's geometry in local
// coordinates, as recorded from its vertex buffer. It is used to decode
// location picking colors back into positions.
type Bounds struct {
	Min  mgl64.Vec3
	Size mgl64.Vec3
}

// NodeBase is the basic scene graph node, which has a transform
// made of animatable values, a table of shader variables, flags that
// control drawing and picking, and named event handlers. Its parent,
// children and graph root are tracked in the process-wide graph index
// by [NodeID] handles.
type NodeBase struct {

	// This is the node as its concrete type, for the
	// node types that embed NodeBase.
	This Node `copier:"-"`

	// Name is a user facing label for the node.
	Name string

	// Location is the translation of the node relative to its parent.
	Location *anim.Tripple `copier:"-"`

	// Rotation is the euler orientation in degrees, applied in
	// Z, Y, X order. It is authoritative in [EulerMode] and
	// a derived view of Quaternion otherwise.
	Rotation *anim.Tripple `copier:"-"`

	// Quaternion is the orientation as an (x, y, z, w) quaternion.
	// It is authoritative in [QuaternionMode] and a derived view
	// of Rotation otherwise.
	Quaternion *anim.Quad `copier:"-"`

	// Scale is the scale of the node relative to its parent.
	Scale *anim.Tripple `copier:"-"`

	// WorldMatrix is the parent world matrix times the local matrix.
	WorldMatrix *anim.Property[mgl64.Mat4] `copier:"-"`

	// NormalMatrix is the transposed inverse of the upper 3x3
	// of the world matrix.
	NormalMatrix *anim.Property[mgl64.Mat3] `copier:"-"`

	// WorldLocation is the world position of the local origin.
	WorldLocation *anim.Property[mgl64.Vec3] `copier:"-"`

	// Shader is the table of variables uploaded to the bound
	// program before the node is drawn.
	Shader anim.Vars `copier:"-"`

	// Visible nodes, whose ancestors are also visible, are drawn.
	Visible bool

	// Selectable nodes receive pointer events from picking,
	// including those on their non-selectable descendants.
	Selectable bool

	// Drawable nodes are placed in the draw buckets each tick.
	Drawable bool

	// AssetHint is the state sort key; nodes sharing a hint are drawn together.
	AssetHint string

	// IsLight marks lights, which are kept apart from the drawables.
	// It must be set before the node is added to a graph.
	IsLight bool

	// CastShadows marks nodes that are drawn into shadow maps.
	CastShadows bool

	// PickExclude nodes are left out of picking passes.
	PickExclude bool

	// Bounds is the local extent of the geometry, for location picking.
	Bounds Bounds

	// BindFunc, if set, is called before drawing to bind graphics state.
	BindFunc func(r Renderer)

	// DrawFunc draws the node. Nodes without one are never drawn.
	DrawFunc func(r Renderer)

	id           NodeID
	sortMode     SortMode
	drawType     DrawType
	billboard    Billboard
	rotationMode RotationMode
	pickIndex    int
	alpha        *anim.Property[float64]
	cache        anim.Cache
	manualCache  bool
	listeners    events.Listeners
}

// NewNode returns a new empty node with the given name.
func NewNode(name string) *NodeBase {
	nb := &NodeBase{}
	nb.Init(nb, name)
	return nb
}

// Init initializes the node, registering it in the graph index.
// It must be called exactly once, with this set to the node
// as its concrete type.
func (nb *NodeBase) Init(this Node, name string) {
	nb.This = this
	nb.Name = name
	nb.Visible = true
	nb.AssetHint = DefaultAssetHint
	nb.id = index.add(this)

	nb.Location = anim.NewTripple(0, 0, 0)
	nb.Rotation = anim.NewTripple(0, 0, 0)
	nb.Quaternion = anim.NewQuad(0, 0, 0, 1)
	nb.Scale = anim.NewTripple(1, 1, 1)
	nb.Rotation.OnSet(func() { nb.orientationWrite(EulerMode) })
	nb.Quaternion.OnSet(func() { nb.orientationWrite(QuaternionMode) })
	nb.Quaternion.Derive(nb.eulerQuat)

	nb.WorldMatrix = anim.NewDriven(nb.worldMatrix)
	nb.NormalMatrix = anim.NewDriven(func() mgl64.Mat3 {
		return nb.WorldMatrix.Get().Mat3().Inv().Transpose()
	})
	nb.WorldLocation = anim.NewDriven(func() mgl64.Vec3 {
		return nb.WorldMatrix.Get().Col(3).Vec3()
	})
	nb.alpha = anim.NewProperty(1.0)

	nb.Shader.Bind("world_matrix", nb.WorldMatrix)
	nb.Shader.Bind("normal_matrix", nb.NormalMatrix)
	nb.Shader.Bind("alpha", nb.alpha)
	nb.Shader.Bind("is_sprite", anim.NewDriven(func() bool { return nb.drawType == Sprite }))
	nb.Shader.Bind("is_transparent", anim.NewDriven(func() bool { return nb.sortMode == Alpha }))
	nb.Shader.Bind("object_index", anim.NewDriven(nb.objectIndex))
	nb.Shader.Bind("billboard_mode", anim.NewDriven(func() int { return int(nb.billboard) }))

	nb.cache.Add(nb.Location, nb.Rotation, nb.Quaternion, nb.Scale,
		nb.WorldMatrix, nb.NormalMatrix, nb.WorldLocation, &nb.Shader)
}

// AsNode satisfies the [Node] interface.
func (nb *NodeBase) AsNode() *NodeBase {
	return nb
}

// ID returns the handle of the node in the graph index.
func (nb *NodeBase) ID() NodeID {
	return nb.id
}

func (nb *NodeBase) String() string {
	return fmt.Sprintf("%s#%d", nb.Name, nb.id)
}

// rec returns the index record of the node, or nil once destroyed.
func (nb *NodeBase) rec() *entry {
	return index.get(nb.id)
}

// IsDestroyed returns whether [NodeBase.Destroy] has been called.
func (nb *NodeBase) IsDestroyed() bool {
	return nb.rec() == nil
}

// Parent returns the parent node, or nil.
func (nb *NodeBase) Parent() Node {
	e := nb.rec()
	if e == nil {
		return nil
	}
	return Lookup(e.parent)
}

// GraphRoot returns the scene this node is currently part of, or nil.
func (nb *NodeBase) GraphRoot() *Scene {
	e := nb.rec()
	if e == nil {
		return nil
	}
	sc, _ := Lookup(e.root).(*Scene)
	return sc
}

// Children returns a snapshot of the children of the node, in order.
func (nb *NodeBase) Children() []Node {
	e := nb.rec()
	if e == nil {
		return nil
	}
	kids := make([]Node, 0, len(e.children))
	for _, id := range e.children {
		if c := Lookup(id); c != nil {
			kids = append(kids, c)
		}
	}
	return kids
}

// NumChildren returns the number of children of the node.
func (nb *NodeBase) NumChildren() int {
	e := nb.rec()
	if e == nil {
		return 0
	}
	return len(e.children)
}

// HasChild returns whether n is an immediate child of this node.
func (nb *NodeBase) HasChild(n Node) bool {
	ce := n.AsNode().rec()
	return ce != nil && nb.id != 0 && ce.parent == nb.id
}

// Add reparents the given nodes under this node, in order. A node is
// first removed from its current parent. Adding a node that is
// already a child of this node does nothing. The new graph root is
// propagated down each added subtree, and any newly reachable nodes
// are tracked by that root.
//
// Add panics with [ErrCameraChild] on a camera, with [ErrSceneChild]
// for a scene, and with [ErrCycle] for an ancestor of this node.
func (nb *NodeBase) Add(children ...Node) {
	for _, c := range children {
		nb.add(c)
	}
}

func (nb *NodeBase) add(child Node) {
	if _, ok := nb.This.(*Camera); ok {
		panic(fmt.Errorf("%w: cannot add %v to %v", ErrCameraChild, child.AsNode(), nb))
	}
	if _, ok := child.(*Scene); ok {
		panic(fmt.Errorf("%w: cannot add %v to %v", ErrSceneChild, child.AsNode(), nb))
	}
	cb := child.AsNode()
	e, ce := nb.rec(), cb.rec()
	if e == nil || ce == nil {
		panic(fmt.Errorf("%w: cannot add %v to %v", ErrDestroyed, cb, nb))
	}
	if ce.parent == nb.id {
		return
	}
	for a := Node(nb); a != nil; a = a.AsNode().Parent() {
		if a.AsNode() == cb {
			panic(fmt.Errorf("%w: cannot add %v to its descendant %v", ErrCycle, cb, nb))
		}
	}
	sc := nb.GraphRoot()
	if par := cb.Parent(); par != nil {
		pb := par.AsNode()
		if psc := pb.GraphRoot(); psc != nil && psc == sc {
			psc.untrack(child, true)
		}
		pb.Remove(child)
	}
	ce.parent = nb.id
	e.children = append(e.children, cb.id)
	cb.setRoot(e.root)
	if sc != nil {
		sc.track(child)
	}
}

// Remove detaches the given child and its whole subtree from this
// node and from the graph root. It returns false if child is not a
// child of this node. The detached subtree stays valid, undrawn,
// until it is added somewhere else or destroyed.
func (nb *NodeBase) Remove(child Node) bool {
	cb := child.AsNode()
	ce := cb.rec()
	if ce == nil || nb.id == 0 || ce.parent != nb.id {
		return false
	}
	if sc := nb.GraphRoot(); sc != nil {
		sc.ignore(child)
	}
	if e := nb.rec(); e != nil {
		e.children = slices.DeleteFunc(e.children, func(id NodeID) bool { return id == cb.id })
	}
	ce.parent = 0
	cb.setRoot(0)
	return true
}

// Destroy detaches the node from its parent, orphans its children
// without destroying them, and removes the node from the graph index.
// The node must not be used afterwards.
func (nb *NodeBase) Destroy() {
	e := nb.rec()
	if e == nil {
		return
	}
	if par := nb.Parent(); par != nil {
		par.AsNode().Remove(nb.This)
	}
	if sc, ok := nb.This.(*Scene); ok {
		sc.release()
	}
	for _, id := range e.children {
		if ce := index.get(id); ce != nil {
			ce.parent = 0
			ce.node.AsNode().setRoot(0)
		}
	}
	e.children = nil
	index.delete(nb.id)
}

// setRoot sets the graph root of the node and all of its descendants.
func (nb *NodeBase) setRoot(root NodeID) {
	e := nb.rec()
	if e == nil {
		return
	}
	e.root = root
	for _, id := range e.children {
		if c := Lookup(id); c != nil {
			c.AsNode().setRoot(root)
		}
	}
}

// Propagate calls fun on the node (unless skipRoot) and all of its
// descendants, depth first in pre-order. Children are snapshot before
// they are visited, so fun may change the topology.
func (nb *NodeBase) Propagate(fun func(n Node), skipRoot bool) {
	if !skipRoot {
		fun(nb.This)
	}
	for _, c := range nb.Children() {
		c.AsNode().Propagate(fun, false)
	}
}

// IsVisible returns whether the node and all of its ancestors are visible.
func (nb *NodeBase) IsVisible() bool {
	for n := Node(nb); n != nil; n = n.AsNode().Parent() {
		if !n.AsNode().Visible {
			return false
		}
	}
	return true
}

// FindSelection returns the nearest selectable node among this node
// and its ancestors, or nil.
func (nb *NodeBase) FindSelection() Node {
	for n := Node(nb); n != nil; n = n.AsNode().Parent() {
		if n.AsNode().Selectable {
			return n.AsNode().This
		}
	}
	return nil
}

// On adds handlers for the named event, such as "click".
func (nb *NodeBase) On(name string, funs ...events.Handler) {
	nb.listeners.Add(name, funs...)
}

// SetHandlers replaces all handlers for the named event.
func (nb *NodeBase) SetHandlers(name string, funs ...events.Handler) {
	nb.listeners.Set(name, funs...)
}

// HasHandler returns whether the node handles the named event.
func (nb *NodeBase) HasHandler(name string) bool {
	return nb.listeners.Has(name)
}

// Dispatch calls all handlers for the named event, in order.
// It does nothing if there are none.
func (nb *NodeBase) Dispatch(name string, data any) {
	nb.listeners.Call(name, data)
}

// SortMode returns which draw pass the node goes through.
func (nb *NodeBase) SortMode() SortMode {
	return nb.sortMode
}

// SetSortMode sets which draw pass the node goes through.
// It panics on an undefined value.
func (nb *NodeBase) SetSortMode(m SortMode) {
	if !m.IsValid() {
		panic(fmt.Errorf("xyz.NodeBase: invalid sort mode %v", m))
	}
	nb.sortMode = m
}

// DrawType returns the kind of geometry the node draws.
func (nb *NodeBase) DrawType() DrawType {
	return nb.drawType
}

// SetDrawType sets the kind of geometry the node draws.
// It panics on an undefined value.
func (nb *NodeBase) SetDrawType(t DrawType) {
	if !t.IsValid() {
		panic(fmt.Errorf("xyz.NodeBase: invalid draw type %v", t))
	}
	nb.drawType = t
}

// Billboard returns the billboard mode of the node.
func (nb *NodeBase) Billboard() Billboard {
	return nb.billboard
}

// SetBillboard sets the billboard mode of the node.
// It panics on an undefined value.
func (nb *NodeBase) SetBillboard(b Billboard) {
	if !b.IsValid() {
		panic(fmt.Errorf("xyz.NodeBase: invalid billboard mode %v", b))
	}
	nb.billboard = b
}

// Alpha returns the alpha shader variable, which defaults to 1.
func (nb *NodeBase) Alpha() *anim.Property[float64] {
	return nb.alpha
}

// PickIndex returns the 1-based picking id assigned at the last tick,
// or 0 if the node has not been ticked in a scene.
func (nb *NodeBase) PickIndex() int {
	return nb.pickIndex
}

// objectIndex is the object_index shader variable: the picking id
// as an RGB color with channels in [0, 1].
func (nb *NodeBase) objectIndex() mgl64.Vec3 {
	c := IndexColor(nb.pickIndex)
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// IndexColor encodes a picking id as a color.
func IndexColor(i int) color.RGBA {
	return color.RGBA{uint8(i), uint8(i>>8), uint8(i>>16), 255}
}

// ColorIndex decodes a picking color back to its id. Black is 0, no hit.
func ColorIndex(c color.RGBA) int {
	return int(c.R) + int(c.G)*256 + int(c.B)*65536
}

// ClearCache drops the memoized values of all of the node's animatable
// values, unless the node uses manual cache invalidation.
func (nb *NodeBase) ClearCache() {
	if nb.manualCache {
		return
	}
	nb.cache.Clear()
}

// UseManualCacheInvalidation stops ticks from clearing the node's
// cache, so drivers keep their first result until
// [NodeBase.ManualCacheClear]. It is used for static geometry.
func (nb *NodeBase) UseManualCacheInvalidation() {
	nb.manualCache = true
}

// UseAutomaticCacheInvalidation restores clearing the cache every tick.
func (nb *NodeBase) UseAutomaticCacheInvalidation() {
	nb.manualCache = false
}

// IsManualCache returns whether the node uses manual cache invalidation.
func (nb *NodeBase) IsManualCache() bool {
	return nb.manualCache
}

// ManualCacheClear drops the memoized values of the named shader
// variables, or of everything when no names are given.
func (nb *NodeBase) ManualCacheClear(names ...string) {
	if len(names) == 0 {
		nb.cache.Clear()
		return
	}
	for _, nm := range names {
		nb.Shader.InvalidateVar(nm)
	}
}
