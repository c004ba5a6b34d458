package geom

// Rect is an axis-aligned rectangle in surface pixel space.
// A Rect with non-positive Width or Height is "invalid": depending on
// context it means either "nothing" (no pending damage) or "everything"
// (redraw the whole surface). Valid() distinguishes the two for callers.
type Rect struct {
	X, Y, Width, Height int
}

// FromSize returns the rectangle covering a w×h surface at the origin.
func FromSize(w, h int) Rect { return Rect{0, 0, w, h} }

// Valid reports whether r has positive area.
func (r Rect) Valid() bool { return r.Width > 0 && r.Height > 0 }

// Clip intersects r with bounds. Any rectangle partially or fully outside
// bounds is cut down; a rectangle with no overlap degrades to the zero Rect.
func (r Rect) Clip(bounds Rect) Rect {
	if !r.Valid() || !bounds.Valid() {
		return Rect{}
	}
	x1 := max(r.X, bounds.X)
	y1 := max(r.Y, bounds.Y)
	x2 := min(r.X+r.Width, bounds.X+bounds.Width)
	y2 := min(r.Y+r.Height, bounds.Y+bounds.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{x1, y1, x2 - x1, y2 - y1}
}

// Union returns the smallest rectangle enclosing both r and other.
// An invalid operand contributes nothing, so Union with the zero Rect is
// the identity.
func (r Rect) Union(other Rect) Rect {
	if !r.Valid() {
		return other
	}
	if !other.Valid() {
		return r
	}
	x1 := min(r.X, other.X)
	y1 := min(r.Y, other.Y)
	x2 := max(r.X+r.Width, other.X+other.Width)
	y2 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{x1, y1, x2 - x1, y2 - y1}
}

// Covers reports whether r fully encloses bounds.
func (r Rect) Covers(bounds Rect) bool {
	if !r.Valid() || !bounds.Valid() {
		return false
	}
	return r.X <= bounds.X && r.Y <= bounds.Y &&
		r.X+r.Width >= bounds.X+bounds.Width &&
		r.Y+r.Height >= bounds.Y+bounds.Height
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return r.Valid() && x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
