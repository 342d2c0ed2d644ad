package glm

import "math"

// Quaternion represents a rotation as a vector part V and a scalar part S.
type Quaternion[T float] struct {
	V Vec3[T]
	S T
}

func IdentityQuaternion[T float]() Quaternion[T] {
	return Quaternion[T]{S: 1}
}

// QuaternionFromAxisAngle builds a rotation of angle around axis. The axis
// must be normalized.
func QuaternionFromAxisAngle[T float](axis Vec3[T], angle Rad) Quaternion[T] {
	s, c := sincos(angle * 0.5)

	return Quaternion[T]{
		V: axis.MulScalar(T(s)),
		S: T(c),
	}
}

// Mul composes two rotations. The result applies rhs first, then lhs.
func (lhs Quaternion[T]) Mul(rhs Quaternion[T]) Quaternion[T] {
	return Quaternion[T]{
		V: rhs.V.MulScalar(lhs.S).
			Add(lhs.V.MulScalar(rhs.S)).
			Add(lhs.V.Cross(rhs.V)),
		S: lhs.S*rhs.S - lhs.V.Dot(rhs.V),
	}
}

func (lhs Quaternion[T]) Dot(rhs Quaternion[T]) T {
	return lhs.V.Dot(rhs.V) + lhs.S*rhs.S
}

func (lhs Quaternion[T]) Length() T {
	return T(math.Sqrt(float64(lhs.Dot(lhs))))
}

func (lhs Quaternion[T]) Normalize() Quaternion[T] {
	length := lhs.Length()
	if length == 0 {
		return lhs
	}

	return Quaternion[T]{
		V: lhs.V.MulScalar(1 / length),
		S: lhs.S / length,
	}
}

func (lhs Quaternion[T]) Conjugate() Quaternion[T] {
	return Quaternion[T]{V: lhs.V.MulScalar(-1), S: lhs.S}
}

// Rotate applies the rotation to the given vector.
func (lhs Quaternion[T]) Rotate(v Vec3[T]) Vec3[T] {
	p := Quaternion[T]{V: v}
	return lhs.Mul(p).Mul(lhs.Conjugate()).V
}

// Angle returns the rotation angle of a unit quaternion in [0, 2*pi].
func (lhs Quaternion[T]) Angle() Rad {
	s := math.Max(-1, math.Min(1, float64(lhs.S)))
	return Rad(2 * math.Acos(s))
}
