// Package camera provides the first-person pose used to cast rays.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/midgard-ray/pkg/math"
)

// Camera errors.
var (
	ErrFOV  = errors.New("field of view must be in (0, pi)")
	ErrPose = errors.New("camera position and heading must be finite")
)

// Camera is the viewer's position and orientation on the map plane.
// It is a plain value; callers mutate a copy between frames.
type Camera struct {
	X, Y float64 // Position in cell units
	A    float64 // Heading (radians, 0 = +X, pi/2 = +Y)
	FOV  float64 // Horizontal field of view (radians)
}

// New creates a camera, validating the pose and field of view.
func New(x, y, heading, fov float64) (Camera, error) {
	c := Camera{X: x, Y: y, A: heading, FOV: fov}
	if err := c.Validate(); err != nil {
		return Camera{}, err
	}
	return c, nil
}

// FromDegrees creates a camera with heading and FOV given in degrees.
func FromDegrees(x, y, headingDeg, fovDeg float64) (Camera, error) {
	return New(x, y, math.Radians(headingDeg), math.Radians(fovDeg))
}

// Validate checks that the pose is finite and the FOV lies in (0, pi).
func (c Camera) Validate() error {
	for _, v := range [...]float64{c.X, c.Y, c.A} {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: got (%v, %v) heading %v", ErrPose, c.X, c.Y, c.A)
		}
	}
	if !(c.FOV > 0 && c.FOV < gomath.Pi) {
		return fmt.Errorf("%w: got %.4f", ErrFOV, c.FOV)
	}
	return nil
}

// Position returns the camera position as a vector.
func (c Camera) Position() math.Vec2 {
	return math.Vec2{X: c.X, Y: c.Y}
}

// Direction returns the unit view direction.
func (c Camera) Direction() math.Vec2 {
	return math.FromAngle(c.A)
}

// RayAngle returns the angle of ray column out of rays, spreading rays
// evenly from the left edge of the FOV (column 0) towards the right.
func (c Camera) RayAngle(column, rays int) float64 {
	return (c.A - c.FOV/2) + c.FOV*float64(column)/float64(rays)
}

// Rotate returns a copy turned by delta radians.
func (c Camera) Rotate(delta float64) Camera {
	c.A += delta
	return c
}

// WithHeading returns a copy facing heading radians.
func (c Camera) WithHeading(heading float64) Camera {
	c.A = heading
	return c
}

// String formats the pose for logs.
func (c Camera) String() string {
	return fmt.Sprintf("(%.3f, %.3f) heading %.1f° fov %.1f°", c.X, c.Y, math.Degrees(c.A), math.Degrees(c.FOV))
}
