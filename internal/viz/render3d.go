package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits the origin. World coordinates are divided by Extent, so the
// bounds box fits the screen at zoom 1 whatever its size in pm.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	Distance   float64
	Near       float64
	Extent     float64
}

func NewCamera(extent float64) *Camera {
	return &Camera{Yaw: 0.6, Pitch: 0.35, Zoom: 1.0, Distance: 4, Near: 0.1, Extent: extent}
}

func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Pitch+dPitch))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) view() mgl64.Quat {
	return mgl64.QuatRotate(c.Pitch, mgl64.Vec3{1, 0, 0}).Mul(mgl64.QuatRotate(c.Yaw, mgl64.Vec3{0, 1, 0}))
}

func (c *Camera) extent() float64 {
	if c.Extent <= 0 {
		return 1
	}
	return c.Extent
}

// Project converts world coordinates to screen sub-pixels.
// Returns x, y, depth, the pixels per world unit at that depth, and visibility.
func (c *Camera) Project(p mgl64.Vec3, sw, sh int) (int, int, float64, float64, bool) {
	ext := c.extent()
	rot := c.view().Rotate(p.Mul(1 / ext)).Mul(c.Zoom)
	dist := c.Distance
	if rot.Z() >= dist-c.Near {
		return 0, 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z())
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X()*scale*pScale) + sw/2
	sy := int(-rot.Y()*scale*pScale) + sh/2
	perUnit := scale * pScale * c.Zoom / ext
	return sx, sy, rot.Z(), perUnit, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End mgl64.Vec3
	Color      string
}

type Sphere struct {
	Center mgl64.Vec3
	Radius float64
	Color  string
}

type Wireframe struct {
	Edges   []Edge
	Spheres []Sphere
}

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e mgl64.Vec3, color string) {
	w.Edges = append(w.Edges, Edge{s, e, color})
}

func (w *Wireframe) AddSphere(p mgl64.Vec3, r float64, color string) {
	w.Spheres = append(w.Spheres, Sphere{p, r, color})
}

func (w *Wireframe) Clear() {
	w.Edges = w.Edges[:0]
	w.Spheres = w.Spheres[:0]
}

type projected struct {
	x1, y1, x2, y2 int
	radius         int
	depth          float64
	color          string
	sphere         bool
}

// Render3D draws the wireframe to the canvas using a simple painter's algorithm.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.PixelSize()
	proj := make([]projected, 0, len(w.Edges)+len(w.Spheres))
	for _, e := range w.Edges {
		x1, y1, d1, _, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, _, v2 := cam.Project(e.End, cw, ch)
		if v1 || v2 {
			proj = append(proj, projected{x1: x1, y1: y1, x2: x2, y2: y2, depth: (d1 + d2) / 2, color: e.Color})
		}
	}
	for _, s := range w.Spheres {
		x, y, d, perUnit, ok := cam.Project(s.Center, cw, ch)
		if ok {
			proj = append(proj, projected{x1: x, y1: y, radius: int(s.Radius * perUnit), depth: d, color: s.Color, sphere: true})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, p := range proj {
		switch {
		case p.sphere:
			c.FillCircle(p.x1, p.y1, p.radius, p.color)
		case p.x1 == p.x2 && p.y1 == p.y2:
			c.Set(p.x1, p.y1, p.color)
		default:
			c.DrawLine(p.x1, p.y1, p.x2, p.y2, p.color)
		}
	}
}

// AddBox adds the twelve edges of the axis-aligned box [-half, half].
func (w *Wireframe) AddBox(half mgl64.Vec3, color string) {
	x, y, z := half.X(), half.Y(), half.Z()
	v := []mgl64.Vec3{{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, {-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], color)
	}
}
