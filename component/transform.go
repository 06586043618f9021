package component

import "github.com/go-gl/mathgl/mgl32"

// Position is the top-left placement of an actor in window coordinates
type Position struct {
	X int32
	Y int32
}

// NewPosition creates a position at x, y
func NewPosition(x, y int32) Position {
	return Position{X: x, Y: y}
}

// Translate returns the position offset by dx, dy
func (p Position) Translate(dx, dy int32) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Scale is a uniform scale factor, 1.0 draws a sprite at native size
type Scale float32

// DefaultScale leaves sprites unscaled
const DefaultScale Scale = 1.0

// Apply scales a length, truncating toward zero
func (s Scale) Apply(n int) int {
	return int(float32(n) * float32(s))
}

// Rotation is an angle in radians
type Rotation float32

// RotationZero is the unrotated orientation
const RotationZero Rotation = 0

// RotationFromDegrees converts degrees to a rotation
func RotationFromDegrees(degrees float32) Rotation {
	return Rotation(mgl32.DegToRad(degrees))
}

// RotationFromRadians wraps a radian angle
func RotationFromRadians(radians float32) Rotation {
	return Rotation(radians)
}

// Radians returns the angle in radians
func (r Rotation) Radians() float32 {
	return float32(r)
}

// Degrees returns the angle in degrees
func (r Rotation) Degrees() float32 {
	return mgl32.RadToDeg(float32(r))
}

// Matrix returns the 2D rotation matrix for the angle
func (r Rotation) Matrix() mgl32.Mat2 {
	return mgl32.Rotate2D(float32(r))
}

// AssetRef identifies the sprite drawn for an actor
// ID is the cache key in the asset store, Path is where the bytes live
// An empty Path means the actor has no engine-drawn sprite
type AssetRef struct {
	ID   uint32
	Path string
}

// IsZero reports whether the reference points at nothing
func (a AssetRef) IsZero() bool {
	return a.Path == ""
}
