package world

// Vector2D is an integer offset in noise space.
type Vector2D struct {
	X, Y int
}

// Add returns v + o.
func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}
