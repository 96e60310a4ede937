package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/TNRProtography/spot-the-aurora-solar-dashbaord-sub002/sim"
)

// PickCloud raycasts the pointer against every visible CME cloud's bounding
// sphere and returns the nearest hit's CME id.
func PickCloud(mouse rl.Vector2, camera rl.Camera3D, clouds []*sim.ParticleCloud) (string, bool) {
	ray := rl.GetScreenToWorldRay(mouse, camera)
	origin := fromRL(ray.Position)
	dir := fromRL(ray.Direction)

	bestID := ""
	bestT := math.Inf(1)
	for _, cloud := range clouds {
		if !cloud.Visible {
			continue
		}
		t, hit := raySphere(origin, dir, cloud.Center(), cloud.BoundingRadius())
		if hit && t < bestT {
			bestT = t
			bestID = cloud.CMEID
		}
	}
	return bestID, bestID != ""
}

// raySphere returns the nearest positive intersection parameter of a ray and
// a sphere.
func raySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2.0 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - 4*a*c

	if discriminant < 0 || a == 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-b - sqrtD) / (2.0 * a)
	if t < 0 {
		t = (-b + sqrtD) / (2.0 * a)
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}
