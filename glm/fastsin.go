package glm

import (
	"golang.org/x/mobile/exp/f32"
)

// sincos in single precision.
func sincos(r Rad) (sin, cos float32) {
	v := float32(r)
	return f32.Sin(v), f32.Cos(v)
}
