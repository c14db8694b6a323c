package metrics

import "github.com/san-kum/molsim/internal/engine"

type Collisions struct {
	name  string
	total int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(e *engine.Engine) {
	c.total += e.Stats().Collisions
}

func (c *Collisions) Value() float64 { return float64(c.total) }
func (c *Collisions) Reset()         { c.total = 0 }

type WallHits struct {
	name  string
	total int
}

func NewWallHits() *WallHits {
	return &WallHits{name: "wall_hits"}
}

func (w *WallHits) Name() string { return w.name }

func (w *WallHits) Observe(e *engine.Engine) {
	w.total += e.Stats().WallHits
}

func (w *WallHits) Value() float64 { return float64(w.total) }
func (w *WallHits) Reset()         { w.total = 0 }
