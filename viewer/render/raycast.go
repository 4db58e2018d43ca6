package render

import (
	"github.com/chewxy/math32"

	"github.com/helios3d/helios-go/common"
	"github.com/helios3d/helios-go/viewer/scene"
)

// screenRay builds a world-space picking ray through the given screen pixel
// from a pinhole camera at position looking at target with world up (0,1,0).
//
// Parameters:
//   - position: camera position in world space
//   - target: camera look-at point in world space
//   - fovY: vertical field of view in radians
//   - width, height: framebuffer dimensions in pixels
//   - screenX, screenY: pixel coordinates, origin top-left
//
// Returns:
//   - origin: the ray origin (the camera position)
//   - dir: the normalized ray direction
func screenRay(position, target [3]float32, fovY float32, width, height int, screenX, screenY float32) (origin, dir [3]float32) {
	origin = position

	forward := common.Normalize3(common.Sub3(target, position))
	right := common.Normalize3(common.Cross3(forward, [3]float32{0, 1, 0}))
	up := common.Cross3(right, forward)

	// Pixel coordinates to normalized device coordinates, Y flipped so +1 is
	// the top of the screen.
	ndcX := 2*screenX/float32(width) - 1
	ndcY := 1 - 2*screenY/float32(height)

	tanHalf := math32.Tan(fovY / 2)
	aspect := float32(width) / float32(height)

	dir = common.Normalize3(common.Add3(
		forward,
		common.Add3(
			common.Scale3(right, ndcX*tanHalf*aspect),
			common.Scale3(up, ndcY*tanHalf),
		),
	))
	return origin, dir
}

// intersectGround intersects a ray with the ground plane y = 0.
//
// Parameters:
//   - origin: ray origin in world space
//   - dir: normalized ray direction
//
// Returns:
//   - [3]float32: the intersection point
//   - bool: false when the ray is parallel to the plane or points away
func intersectGround(origin, dir [3]float32) ([3]float32, bool) {
	const epsilon = 1e-6
	if math32.Abs(dir[1]) < epsilon {
		return [3]float32{}, false
	}
	t := -origin[1] / dir[1]
	if t < 0 {
		return [3]float32{}, false
	}
	return common.Add3(origin, common.Scale3(dir, t)), true
}

// intersectSphere returns the nearest non-negative ray parameter at which the
// ray hits a sphere, or false if it misses.
func intersectSphere(origin, dir, center [3]float32, radius float32) (float32, bool) {
	oc := common.Sub3(origin, center)
	b := common.Dot3(oc, dir)
	c := common.Dot3(oc, oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math32.Sqrt(disc)
	t := -b - sqrtDisc
	if t < 0 {
		t = -b + sqrtDisc
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// pickMarker tests the ray against every marker sphere and reports the
// closest hit.
//
// Parameters:
//   - origin: ray origin in world space
//   - dir: normalized ray direction
//   - markers: the current marker set
//   - radius: the pick sphere radius per marker
//
// Returns:
//   - string: the ID of the closest hit marker
//   - bool: false when no marker is hit
func pickMarker(origin, dir [3]float32, markers []scene.Marker, radius float32) (string, bool) {
	bestID := ""
	bestT := float32(math32.MaxFloat32)
	for _, m := range markers {
		if t, ok := intersectSphere(origin, dir, m.Position, radius); ok && t < bestT {
			bestT = t
			bestID = m.ID
		}
	}
	return bestID, bestID != ""
}
