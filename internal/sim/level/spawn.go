package level

import (
	"math/rand"

	"dinerline.ai/internal/sim/model"
)

// SpawnPool holds the points still free for customer placement.
// Draw removes the point it returns, so no point is issued twice.
type SpawnPool struct {
	pts []model.Point
}

func NewSpawnPool(pts ...model.Point) *SpawnPool {
	p := &SpawnPool{}
	p.pts = append(p.pts, pts...)
	return p
}

func (p *SpawnPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pts)
}

func (p *SpawnPool) add(pt model.Point) { p.pts = append(p.pts, pt) }

func (p *SpawnPool) Contains(pt model.Point) bool {
	if p == nil {
		return false
	}
	for _, q := range p.pts {
		if q == pt {
			return true
		}
	}
	return false
}

// Points returns a copy of the remaining points.
func (p *SpawnPool) Points() []model.Point {
	if p == nil {
		return nil
	}
	out := make([]model.Point, len(p.pts))
	copy(out, p.pts)
	return out
}

// Draw removes and returns a uniformly chosen point.
func (p *SpawnPool) Draw(rng *rand.Rand) (model.Point, bool) {
	if p.Len() == 0 {
		return model.Point{}, false
	}
	i := rng.Intn(len(p.pts))
	pt := p.pts[i]
	p.pts = append(p.pts[:i], p.pts[i+1:]...)
	return pt, true
}
