package game

// Rect is an axis-aligned box in surface pixels, origin top-left, y grows downward.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Overlaps is the strict AABB test, touching edges do not count.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

type Obstacle struct {
	Rect
	Asset AssetName
}
