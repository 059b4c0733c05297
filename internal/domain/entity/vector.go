package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis
var Up = mgl64.Vec3{0, 1, 0}

// smallNumber is the squared length under which a vector has no usable direction
const smallNumber = 1e-8

// SafeNormal returns v scaled to unit length, or the zero vector when v is too
// short to have a direction.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	lenSq := v.Dot(v)
	if lenSq < smallNumber || math.IsNaN(lenSq) || math.IsInf(lenSq, 0) {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / math.Sqrt(lenSq))
}

// IsZero reports whether v has no usable direction
func IsZero(v mgl64.Vec3) bool {
	return v.Dot(v) < smallNumber
}

// ForwardFromYaw returns the horizontal facing direction for a yaw in degrees.
// Yaw 0 faces +Z; positive yaw turns toward +X.
func ForwardFromYaw(yawDeg float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(yawDeg)
	return mgl64.Vec3{math.Sin(rad), 0, math.Cos(rad)}
}

// RightFromYaw returns the horizontal right-hand direction for a yaw in degrees.
// Right x Up == Forward, which keeps the along-wall direction pointing ahead.
func RightFromYaw(yawDeg float64) mgl64.Vec3 {
	return Up.Cross(ForwardFromYaw(yawDeg))
}
