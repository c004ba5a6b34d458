package colors

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// FromRGBA8 converts 8-bit channels to a Color.
func FromRGBA8(r, g, b, a uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// EncodeID packs an actor id into an opaque color for pick rendering.
// Only the low 24 bits are representable; id 0 is reserved for "no actor"
// and encodes as black.
func EncodeID(id uint32) Color {
	return FromRGBA8(uint8(id>>16), uint8(id>>8), uint8(id), 255)
}

// DecodeID recovers the actor id from pick-buffer channels.
func DecodeID(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// PickID recovers the id a Color was encoded from. Channels are rounded,
// not truncated, so a float round trip through the GPU clear color cannot
// shift an id by one.
func (c Color) PickID() uint32 {
	r := uint8(c[0]*255 + 0.5)
	g := uint8(c[1]*255 + 0.5)
	b := uint8(c[2]*255 + 0.5)
	return DecodeID(r, g, b)
}
