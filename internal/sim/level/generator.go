package level

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"dinerline.ai/internal/sim/model"
)

var (
	ErrBadDimensions = errors.New("level: width and height must be positive")
	ErrEmptyCatalog  = errors.New("level: template catalog is empty")
	ErrNoDoor        = errors.New("level: template has no edge door")
	ErrNegativeLevel = errors.New("level: negative level number")
	ErrNoPlayerSpawn = errors.New("level: no player spawn")
)

// TemplateCatalog is the raw tile-template source. Rows are y, columns are x.
// ok is false when the template or cell does not exist.
type TemplateCatalog interface {
	Size() int
	TileCodeAt(templateID, row, col int) (code int, ok bool)
}

type Level struct {
	Number     int
	TemplateID int
	Difficulty float64

	Grid      Grid
	SpawnPool *SpawnPool

	PlayerSpawn    model.Point
	HasPlayerSpawn bool

	// CustomerCount is the most customers this level may hold.
	CustomerCount int
}

// Generator rasterises templates. TableChancePercent and TablesPerCustomer are
// used as given; zero in either places no tables.
type Generator struct {
	Catalog TemplateCatalog
	Width   int
	Height  int

	TableChancePercent int
	TablesPerCustomer  int
}

// Difficulty grows as log10(n+1): 0 at level 0, 1 at level 9, 2 at level 99.
func Difficulty(levelNumber int) float64 {
	return math.Log10(float64(levelNumber + 1))
}

// CustomerCount is floor((m+1)^1.25) where m is the level number for the first
// ten levels and the level number mod 10 afterwards (a remainder of 0 counts as 10).
func CustomerCount(levelNumber int) int {
	mod := levelNumber
	if levelNumber > 10 {
		mod = levelNumber % 10
		if mod == 0 {
			mod = 10
		}
	}
	return int(math.Floor(math.Pow(float64(mod+1), 1.25)))
}

// Generate builds a fresh level from the template selected by levelNumber.
func (g Generator) Generate(levelNumber int, rng *rand.Rand) (*Level, error) {
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("generate level %d: %w (%dx%d)", levelNumber, ErrBadDimensions, g.Width, g.Height)
	}
	if levelNumber < 0 {
		return nil, fmt.Errorf("generate level %d: %w", levelNumber, ErrNegativeLevel)
	}
	if g.Catalog == nil || g.Catalog.Size() <= 0 {
		return nil, fmt.Errorf("generate level %d: %w", levelNumber, ErrEmptyCatalog)
	}

	templateID := levelNumber % g.Catalog.Size()
	if _, ok := g.Catalog.TileCodeAt(templateID, 0, 0); !ok {
		templateID = 0
	}

	lv := &Level{
		Number:        levelNumber,
		TemplateID:    templateID,
		Difficulty:    Difficulty(levelNumber),
		CustomerCount: CustomerCount(levelNumber),
		SpawnPool:     NewSpawnPool(),
	}
	lv.Grid = g.rasterize(templateID, rng, lv)
	if !lv.HasPlayerSpawn {
		return nil, fmt.Errorf("generate level %d (template %d): %w", levelNumber, templateID, ErrNoDoor)
	}
	g.populate(lv, rng)
	return lv, nil
}

func (g Generator) rasterize(templateID int, rng *rand.Rand, lv *Level) Grid {
	floor := FloorA
	if rng.Intn(2) == 1 {
		floor = FloorB
	}

	grid := NewGrid(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			code, ok := g.Catalog.TileCodeAt(templateID, y, x)
			if !ok {
				code = CodeWall
			}
			t := tileFromCode(code, floor)
			grid.Set(x, y, t)

			if t != Door || lv.HasPlayerSpawn {
				continue
			}
			if p, ok := g.doorSpawn(x, y); ok {
				lv.PlayerSpawn = p
				lv.HasPlayerSpawn = true
			}
		}
	}
	return grid
}

// doorSpawn projects one cell inward from a door on the outer ring.
func (g Generator) doorSpawn(x, y int) (model.Point, bool) {
	switch {
	case x == 0:
		return model.Point{X: x + 1, Y: y}, true
	case x == g.Width-1:
		return model.Point{X: x - 1, Y: y}, true
	case y == 0:
		return model.Point{X: x, Y: y + 1}, true
	case y == g.Height-1:
		return model.Point{X: x, Y: y - 1}, true
	}
	return model.Point{}, false
}

// populate places tables on interior floor and pools the remaining spawn cells.
func (g Generator) populate(lv *Level, rng *rand.Rand) {
	chance := g.TableChancePercent
	tables := lv.CustomerCount * g.TablesPerCustomer

	grid := lv.Grid
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if !grid.At(x, y).IsFloor() {
				continue
			}
			if grid.NextToDoorOrFood(x, y) {
				continue
			}
			pt := model.Point{X: x, Y: y}
			if !grid.FlankedByTable(x, y) {
				roll := rng.Intn(100) + 1
				if roll <= chance && tables > 0 {
					grid.Set(x, y, Table)
					tables--
					continue
				}
			}
			if lv.HasPlayerSpawn && pt == lv.PlayerSpawn {
				continue
			}
			lv.SpawnPool.add(pt)
		}
	}
}
