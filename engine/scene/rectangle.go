package scene

import (
	"github.com/clutterkit/clutter/engine/colors"
	"github.com/clutterkit/clutter/engine/geom"
)

// Rectangle is the simplest concrete actor: a flat colored quad.
type Rectangle struct {
	Base
	color colors.Color
}

func NewRectangle(c colors.Color) *Rectangle {
	return &Rectangle{Base: NewBase(), color: c}
}

func (r *Rectangle) Node() *Base { return &r.Base }

func (r *Rectangle) Color() colors.Color { return r.color }

// SetColor changes the fill color and damages the actor's extent.
func (r *Rectangle) SetColor(c colors.Color) {
	if c == r.color {
		return
	}
	r.color = c
	r.QueueRedraw()
}

func (r *Rectangle) Paint(ctx *PaintContext) {
	ctx.Painter.FillRect(r.Box(), r.color)
}

// PickPaint draws the same silhouette in the actor's id color.
func (r *Rectangle) PickPaint(ctx *PaintContext) {
	ctx.Painter.FillRect(r.Box(), colors.EncodeID(r.ID()))
}

func (r *Rectangle) PreferredSize(cons geom.Constraints) (geom.Size, geom.Size) {
	natural := geom.Size{Width: r.Box().Width(), Height: r.Box().Height()}
	return geom.Size{}, natural
}
