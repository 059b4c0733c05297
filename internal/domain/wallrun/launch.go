package wallrun

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/younwookim/wallrun/internal/domain/entity"
)

// LaunchVector computes the jump-off velocity for a run on side travelling along
// direction: away from the wall and upward, scaled to impulse.
func LaunchVector(side entity.RunSide, direction mgl64.Vec3, impulse float64) mgl64.Vec3 {
	var push mgl64.Vec3
	switch side {
	case entity.SideRight:
		push = entity.SafeNormal(direction.Cross(entity.Up))
	case entity.SideLeft:
		push = entity.SafeNormal(entity.Up.Cross(direction))
	default:
		return mgl64.Vec3{}
	}

	return entity.SafeNormal(push.Add(entity.Up)).Mul(impulse)
}
