package main

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

var (
	ErrZeroVector = errors.New("vector3: cannot normalize a zero-length vector")
	ErrNotFinite  = errors.New("vector3: magnitude is not finite")
)

// Vector3 is a plain value; copies never share state.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func NewVector3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func ZeroVector3() Vector3 {
	return NewVector3(0, 0, 0)
}

func (v Vector3) Copy() Vector3 {
	return v
}

func (v Vector3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func (v Vector3) IsFinite() bool {
	for _, c := range [...]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vector3) Magnitude() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize scales v to unit length in place. A zero vector ends up with
// every component NaN.
func (v *Vector3) Normalize() {
	mag := v.Magnitude()

	v.X /= mag
	v.Y /= mag
	v.Z /= mag
}

// Normalized is the checked form of Normalize. It reports ErrZeroVector
// instead of producing NaN components and leaves v untouched.
func (v Vector3) Normalized() (Vector3, error) {
	mag := v.Magnitude()
	switch {
	case mag == 0:
		return v, ErrZeroVector
	case math32.IsNaN(mag) || math32.IsInf(mag, 0):
		return v, ErrNotFinite
	}

	v.Normalize()
	return v, nil
}

func (v *Vector3) Add(vec Vector3) *Vector3 {
	v.X += vec.X
	v.Y += vec.Y
	v.Z += vec.Z
	return v
}

func (v Vector3) String() string {
	return fmt.Sprintf("Vector3 {\n\t.x = %.6g\n\t.y = %.6g\n\t.z = %.6g\n}", v.X, v.Y, v.Z)
}
