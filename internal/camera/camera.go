// Package camera provides a perspective camera that turns viewport screen
// positions into world-space rays.
package camera

import (
	"sync"

	"cogentcore.org/core/math32"

	"github.com/dshills/viewctl/internal/input/mouse"
)

// Config describes a camera's placement and lens.
type Config struct {
	// Position is the eye position in world space.
	Position math32.Vector3

	// Target is the point the camera looks at.
	Target math32.Vector3

	// Up is the world up direction.
	Up math32.Vector3

	// FOV is the vertical field of view in degrees.
	FOV float32

	// PixelAspect is the width/height ratio of one screen unit. Terminal
	// cells are roughly twice as tall as they are wide, so 0.5 is typical
	// there; pixels use 1.
	PixelAspect float32
}

// DefaultConfig returns a camera 10 units back from the origin looking
// down -Z.
func DefaultConfig() Config {
	return Config{
		Position:    math32.Vec3(0, 0, 10),
		Target:      math32.Vec3(0, 0, 0),
		Up:          math32.Vec3(0, 1, 0),
		FOV:         60,
		PixelAspect: 1,
	}
}

// Camera is a perspective camera bound to a viewport size. It is safe for
// concurrent use; resizes may arrive from a different goroutine than ray
// queries.
type Camera struct {
	mu     sync.RWMutex
	config Config
	width  int
	height int

	// basis, recomputed on change
	forward math32.Vector3
	right   math32.Vector3
	up      math32.Vector3
	tanHalf float32
}

// New creates a camera for a viewport of the given size.
func New(config Config, width, height int) *Camera {
	if config.PixelAspect <= 0 {
		config.PixelAspect = 1
	}
	if config.FOV <= 0 || config.FOV >= 180 {
		config.FOV = DefaultConfig().FOV
	}
	c := &Camera{config: config, width: width, height: height}
	c.updateBasis()
	return c
}

// updateBasis recomputes the orthonormal camera basis. Caller holds mu.
func (c *Camera) updateBasis() {
	c.forward = c.config.Target.Sub(c.config.Position).Normal()
	c.right = c.forward.Cross(c.config.Up).Normal()
	c.up = c.right.Cross(c.forward)
	c.tanHalf = math32.Tan(math32.DegToRad(c.config.FOV) / 2)
}

// SetSize updates the viewport size.
func (c *Camera) SetSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
}

// Size returns the viewport size.
func (c *Camera) Size() (int, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// LookAt moves the camera.
func (c *Camera) LookAt(position, target math32.Vector3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config.Position = position
	c.config.Target = target
	c.updateBasis()
}

// Config returns the camera configuration.
func (c *Camera) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Contains reports whether p lies inside the viewport.
func (c *Camera) Contains(p mouse.ScreenPoint) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contains(p)
}

func (c *Camera) contains(p mouse.ScreenPoint) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.width && p.Y < c.height
}

// ScreenToWorldRay returns the ray from the eye through the center of the
// screen unit at p. It returns false when p is outside the viewport or the
// viewport has no area.
func (c *Camera) ScreenToWorldRay(_ mouse.ViewportID, p mouse.ScreenPoint) (math32.Ray, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.width <= 0 || c.height <= 0 || !c.contains(p) {
		return math32.Ray{}, false
	}

	w := float32(c.width)
	h := float32(c.height)
	ndcX := 2*(float32(p.X)+0.5)/w - 1
	ndcY := 1 - 2*(float32(p.Y)+0.5)/h
	aspect := w * c.config.PixelAspect / h

	dir := c.forward.
		Add(c.right.MulScalar(ndcX * c.tanHalf * aspect)).
		Add(c.up.MulScalar(ndcY * c.tanHalf)).
		Normal()

	return math32.Ray{Origin: c.config.Position, Dir: dir}, true
}
