package viz

import (
	"math"

	"github.com/StendArts/Astronomic-Objects/internal/view"
	"gonum.org/v1/gonum/spatial/r3"
)

var xAxis = r3.Vec{X: 1}

// Camera projects world positions in km onto canvas sub-pixels. With zero
// tilt it looks straight down the z axis; tilting rotates the scene about
// the x axis through the centre of the view box so inclined orbits show.
type Camera struct {
	Box  view.Box
	Tilt float64 // degrees
	Zoom float64
}

func NewCamera(box view.Box) *Camera {
	return &Camera{Box: box.Square(0.1), Zoom: 1}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(100, c.Zoom*1.5) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.5) }

// TiltBy adds deg to the tilt, clamped to [0, 90].
func (c *Camera) TiltBy(deg float64) {
	c.Tilt = math.Max(0, math.Min(90, c.Tilt+deg))
}

// Project maps p into a w x h sub-pixel grid, y growing downwards. The
// boolean reports whether the point falls inside the grid.
func (c *Camera) Project(p r3.Vec, w, h int) (int, int, bool) {
	centre := r3.Scale(0.5, r3.Add(c.Box.Min, c.Box.Max))
	p = r3.Sub(p, centre)
	if c.Tilt != 0 {
		p = r3.NewRotation(-c.Tilt*math.Pi/180, xAxis).Rotate(p)
	}

	side := c.Box.Max.X - c.Box.Min.X
	if side <= 0 {
		side = 1
	}
	scale := c.Zoom * math.Min(float64(w), float64(h)) / side
	sx := int(math.Round(p.X*scale)) + w/2
	sy := int(math.Round(-p.Y*scale)) + h/2
	return sx, sy, sx >= 0 && sx < w && sy >= 0 && sy < h
}
