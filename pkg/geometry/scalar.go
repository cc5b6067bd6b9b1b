package geometry

import "math"

// WrapAngle returns the angle equivalent to a in the range (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// SignedAngle returns the rotation (radians, in (-Pi, Pi]) that brings the
// direction of from onto the direction of to. Positive is counter-clockwise
// in a Y-up frame. It is zero when either vector has no direction.
func SignedAngle(from, to Vector2D) float64 {
	if from.IsZero() || to.IsZero() {
		return 0
	}
	return math.Atan2(from.Cross(to), from.Dot(to))
}

// Clamp limits x to the closed interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Approach moves current toward target by at most maxDelta.
func Approach(current, target, maxDelta float64) float64 {
	return current + Clamp(target-current, -maxDelta, maxDelta)
}
