// Package scene defines the actor tree the stage paints: a small closed
// interface with paint, pick, preferred-size and allocate capabilities,
// plus a Group container. The stage itself is the root Group.
package scene

import (
	"sync/atomic"

	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/geom"
)

// Painter is the narrow drawing surface handed to actors during a paint
// traversal. The stage provides a GL-backed implementation; tests provide
// recorders.
type Painter interface {
	FillRect(b geom.Box, c colors.Color)
}

// PaintContext carries per-traversal state. During a pick traversal
// Picking is set and actors must draw flat silhouettes in their id color
// instead of their visual appearance.
type PaintContext struct {
	Painter Painter
	Picking bool
}

// Actor is a paintable, pickable node.
type Actor interface {
	Paint(ctx *PaintContext)
	PickPaint(ctx *PaintContext)
	PreferredSize(c geom.Constraints) (min, natural geom.Size)
	Allocate(box geom.Box, originChanged bool)

	// SetRedrawFunc wires the actor to its stage's damage API; nil
	// detaches. Leaf actors get the Base implementation; containers must
	// propagate to their whole subtree.
	SetRedrawFunc(fn func(geom.Rect))

	Node() *Base
}

// Base holds the state every actor shares: geometry, visibility, a
// process-unique id for pick encoding, the redraw hookup back to the
// owning stage, and teardown observers.
type Base struct {
	id        uint32
	box       geom.Box
	visible   bool
	redraw    func(geom.Rect)
	onDestroy []func()
}

var nextID atomic.Uint32

// NewBase allocates the shared actor state with a fresh id. Actors start
// hidden, matching explicit Show semantics.
func NewBase() Base {
	return Base{id: nextID.Add(1)}
}

func (b *Base) ID() uint32    { return b.id }
func (b *Base) Box() geom.Box { return b.box }
func (b *Base) Visible() bool { return b.visible }

// SetRedrawFunc wires the actor to its stage's damage API. The stage sets
// this when the actor enters the tree; nil detaches.
func (b *Base) SetRedrawFunc(fn func(geom.Rect)) { b.redraw = fn }

// QueueRedraw reports the actor's current extent as damaged.
func (b *Base) QueueRedraw() {
	if b.redraw == nil {
		return
	}
	b.redraw(b.extent())
}

func (b *Base) extent() geom.Rect {
	x1, y1 := int(b.box.X1), int(b.box.Y1)
	x2, y2 := int(b.box.X2+0.5), int(b.box.Y2+0.5)
	return geom.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

func (b *Base) Show() {
	if b.visible {
		return
	}
	b.visible = true
	b.QueueRedraw()
}

func (b *Base) Hide() {
	if !b.visible {
		return
	}
	b.visible = false
	b.QueueRedraw()
}

// SetBox moves/resizes the actor, damaging both the old and new extents.
func (b *Base) SetBox(box geom.Box) {
	old := b.extent()
	b.box = box
	if b.redraw != nil && b.visible {
		b.redraw(old)
		b.redraw(b.extent())
	}
}

// Allocate implements the layout half of the Actor contract for plain
// actors. originChanged is unused by leaves but forwarded by containers.
func (b *Base) Allocate(box geom.Box, originChanged bool) {
	b.SetBox(box)
}

// OnDestroy registers fn to run when the actor is torn down. This is how
// the stage learns to drop a key-focus reference: the focused actor
// notifies on its own teardown rather than relying on weak pointers.
func (b *Base) OnDestroy(fn func()) {
	b.onDestroy = append(b.onDestroy, fn)
}

// Destroy runs teardown observers and detaches the redraw hookup.
func (b *Base) Destroy() {
	for _, fn := range b.onDestroy {
		fn()
	}
	b.onDestroy = nil
	b.redraw = nil
	b.visible = false
}
