package scene

import "github.com/clutterkit/clutter/engine/geom"

// Group is a container actor painting its children in insertion order
// (later children on top). Children keep their own coordinates; a Group
// imposes no layout.
type Group struct {
	Base
	children []Actor
}

func NewGroup() *Group {
	return &Group{Base: NewBase()}
}

func (g *Group) Node() *Base { return &g.Base }

func (g *Group) Children() []Actor { return g.children }

// Add appends child on top of the current children and wires it to the
// group's redraw hookup.
func (g *Group) Add(child Actor) {
	g.children = append(g.children, child)
	child.SetRedrawFunc(g.redraw)
	child.Node().QueueRedraw()
}

// Remove detaches child, damaging the area it occupied.
func (g *Group) Remove(child Actor) {
	for i, c := range g.children {
		if c == child {
			child.Node().QueueRedraw()
			child.SetRedrawFunc(nil)
			g.children = append(g.children[:i], g.children[i+1:]...)
			return
		}
	}
}

// RaiseToTop moves child to the end of the paint order.
func (g *Group) RaiseToTop(child Actor) {
	for i, c := range g.children {
		if c == child {
			g.children = append(append(g.children[:i], g.children[i+1:]...), child)
			child.Node().QueueRedraw()
			return
		}
	}
}

// LowerToBottom moves child to the start of the paint order.
func (g *Group) LowerToBottom(child Actor) {
	for i, c := range g.children {
		if c == child {
			rest := append([]Actor{child}, g.children[:i]...)
			g.children = append(rest, g.children[i+1:]...)
			child.Node().QueueRedraw()
			return
		}
	}
}

// SetRedrawFunc propagates the stage hookup down the subtree.
func (g *Group) SetRedrawFunc(fn func(geom.Rect)) {
	g.Base.SetRedrawFunc(fn)
	for _, c := range g.children {
		c.SetRedrawFunc(fn)
	}
}

func (g *Group) Paint(ctx *PaintContext) {
	for _, c := range g.children {
		if c.Node().Visible() {
			c.Paint(ctx)
		}
	}
}

func (g *Group) PickPaint(ctx *PaintContext) {
	for _, c := range g.children {
		if c.Node().Visible() {
			c.PickPaint(ctx)
		}
	}
}

// PreferredSize of a group is the bounding box of its children's natural
// extents, origin-relative.
func (g *Group) PreferredSize(cons geom.Constraints) (geom.Size, geom.Size) {
	var w, h float32
	for _, c := range g.children {
		b := c.Node().Box()
		if b.X2 > w {
			w = b.X2
		}
		if b.Y2 > h {
			h = b.Y2
		}
	}
	natural := geom.Size{Width: w, Height: h}
	return natural, natural
}

// Allocate records the group's own box; children keep their coordinates
// but are told when the group origin moved.
func (g *Group) Allocate(box geom.Box, originChanged bool) {
	g.Base.Allocate(box, originChanged)
	if originChanged {
		for _, c := range g.children {
			c.Allocate(c.Node().Box(), true)
		}
	}
}

// FindByID searches the subtree for the actor with the given pick id.
func (g *Group) FindByID(id uint32) Actor {
	for _, c := range g.children {
		if c.Node().ID() == id {
			return c
		}
		if sub, ok := c.(*Group); ok {
			if found := sub.FindByID(id); found != nil {
				return found
			}
		}
	}
	return nil
}

// Destroy tears down the subtree depth-first, then the group itself.
func (g *Group) Destroy() {
	for _, c := range g.children {
		if sub, ok := c.(*Group); ok {
			sub.Destroy()
		} else {
			c.Node().Destroy()
		}
	}
	g.children = nil
	g.Base.Destroy()
}
