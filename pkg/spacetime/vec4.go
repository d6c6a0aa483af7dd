// Package spacetime provides the coordinate primitives for the schwarzviz
// toolkit: a 4-component double-precision vector and conversions from
// Schwarzschild coordinates to rectangular (Cartesian) coordinates.
//
// Geometrized units (G = c = 1) are assumed throughout by the caller.
package spacetime

import "math"

// Vec4 is a point in R^4 stored as four unlabeled slots.
//
// The same storage represents either rectangular (x, y, z, t) or
// Schwarzschild (r, phi, theta, t) coordinates; the type carries no tag, so
// the caller tracks which system a given value is currently expressed in.
// Slot 3 is the time component in both systems. Values compare with == and
// copy independently.
type Vec4 [4]float64

// Rect builds a vector from rectangular coordinates, storing the arguments
// verbatim in slots 0 through 3. No validation is performed; non-finite
// inputs are stored as given.
func Rect(x, y, z, t float64) Vec4 {
	return Vec4{x, y, z, t}
}

// RectFromSchwarzschild builds the rectangular vector equivalent to the
// Schwarzschild point (r, phi, theta, t).
//
// The spatial part is the standard spherical-to-rectangular transform with
// the physics angle convention: theta is measured from the polar (+z) axis
// and phi is the azimuth in the equatorial plane. The time component is
// identical in both systems and is carried through unchanged.
func RectFromSchwarzschild(r, phi, theta, t float64) Vec4 {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)

	return Vec4{
		r * sinTheta * cosPhi,
		r * sinTheta * sinPhi,
		r * cosTheta,
		t,
	}
}

// SchwarzschildToRect interprets v as Schwarzschild coordinates
// (r, phi, theta, t) and returns the equivalent rectangular vector.
func (v Vec4) SchwarzschildToRect() Vec4 {
	return RectFromSchwarzschild(v[0], v[1], v[2], v[3])
}

// ConvertSchwarzschildToRect converts v from Schwarzschild to rectangular
// coordinates in place, overwriting slots 0 through 2. Slot 3 (time) is
// never touched.
func (v *Vec4) ConvertSchwarzschildToRect() {
	// All reads of the Schwarzschild components happen before any slot is
	// overwritten; r in particular shares a slot with x.
	r := v[0]
	sinPhi, cosPhi := math.Sincos(v[1])
	sinTheta, cosTheta := math.Sincos(v[2])

	v[0] = r * sinTheta * cosPhi
	v[1] = r * sinTheta * sinPhi
	v[2] = r * cosTheta
}

// X returns slot 0 of a vector in rectangular coordinates.
func (v Vec4) X() float64 { return v[0] }

// Y returns slot 1 of a vector in rectangular coordinates.
func (v Vec4) Y() float64 { return v[1] }

// Z returns slot 2 of a vector in rectangular coordinates.
func (v Vec4) Z() float64 { return v[2] }

// T returns slot 3, the time component in either coordinate system.
func (v Vec4) T() float64 { return v[3] }

// R returns slot 0 of a vector in Schwarzschild coordinates.
func (v Vec4) R() float64 { return v[0] }

// Phi returns slot 1, the azimuthal angle, of a vector in Schwarzschild
// coordinates.
func (v Vec4) Phi() float64 { return v[1] }

// Theta returns slot 2, the angle from the polar axis, of a vector in
// Schwarzschild coordinates.
func (v Vec4) Theta() float64 { return v[2] }
