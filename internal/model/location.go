package model

import "math"

// Location is a 2D world position. The core never inspects terrain; any
// movement it produces goes through the host's safe-resolve clamp.
type Location struct {
	X float64
	Y float64
}

// Vector is a 2D direction/offset.
type Vector struct {
	X float64
	Y float64
}

// DistanceTo returns the euclidean distance to other.
func (l Location) DistanceTo(other Location) float64 {
	dx := other.X - l.X
	dy := other.Y - l.Y
	return math.Hypot(dx, dy)
}

// AngleTo returns the angle in radians from l toward other.
func (l Location) AngleTo(other Location) float64 {
	return math.Atan2(other.Y-l.Y, other.X-l.X)
}

// Offset returns l translated by v.
func (l Location) Offset(v Vector) Location {
	return Location{X: l.X + v.X, Y: l.Y + v.Y}
}

// Scale returns v multiplied by factor.
func (v Vector) Scale(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the magnitude of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns v scaled to unit length. Zero vectors stay zero.
func (v Vector) Normalized() Vector {
	length := v.Length()
	if length == 0 {
		return Vector{}
	}
	return Vector{X: v.X / length, Y: v.Y / length}
}

// UnitFromAngle returns the unit vector pointing along angle (radians).
func UnitFromAngle(angle float64) Vector {
	return Vector{X: math.Cos(angle), Y: math.Sin(angle)}
}

// NormalizeAngle wraps angle into (-π, π].
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
