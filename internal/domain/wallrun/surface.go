package wallrun

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/wallrun/internal/domain/entity"
)

// OverhangLimit is the lowest up-component a runnable wall normal may have.
// Anything below faces downward like a ceiling.
const OverhangLimit = -0.005

// IsRunnable reports whether a contact normal belongs to a runnable wall.
// walkableFloorY is the movement model's walkable-floor threshold: normals at
// or above it are floor, normals at or below OverhangLimit are overhangs.
func IsRunnable(normal mgl64.Vec3, walkableFloorY float64) bool {
	up := normal.Dot(entity.Up)
	return up > OverhangLimit && up < walkableFloorY
}

// Classify determines the run side and along-wall direction for a wall normal
// relative to the actor's right vector.
//
// A normal pointing along actorRight means the wall is on the left. ok is false
// when the normal yields no usable direction (zero, or parallel to up).
func Classify(normal, actorRight mgl64.Vec3) (side entity.RunSide, direction mgl64.Vec3, ok bool) {
	if normal.Dot(actorRight) > 0 {
		side = entity.SideLeft
		direction = entity.SafeNormal(normal.Cross(entity.Up))
	} else {
		side = entity.SideRight
		direction = entity.SafeNormal(entity.Up.Cross(normal))
	}
	if entity.IsZero(direction) {
		return entity.SideNone, mgl64.Vec3{}, false
	}
	return side, direction, true
}
