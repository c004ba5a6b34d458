package geom

// Box is an actor allocation box: two corners in stage coordinates.
// Unlike Rect it is continuous; layout hands these to Allocate.
type Box struct {
	X1, Y1, X2, Y2 float32
}

func BoxFromRect(r Rect) Box {
	return Box{float32(r.X), float32(r.Y), float32(r.X + r.Width), float32(r.Y + r.Height)}
}

func (b Box) Width() float32  { return abs32(b.X2 - b.X1) }
func (b Box) Height() float32 { return abs32(b.Y2 - b.Y1) }

// Size is a width/height pair used by preferred-size negotiation.
type Size struct {
	Width, Height float32
}

// Constraints bound a preferred-size request. Zero max means unbounded.
type Constraints struct {
	MaxWidth, MaxHeight float32
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
