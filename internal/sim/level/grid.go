package level

import (
	"strings"

	"dinerline.ai/internal/sim/model"
)

// Grid is a fixed-size tile array stored row-major.
type Grid struct {
	W, H  int
	tiles []Tile
}

func NewGrid(w, h int) Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Grid{W: w, H: h, tiles: make([]Tile, w*h)}
}

func (g Grid) InBounds(x, y int) bool { return x >= 0 && y >= 0 && x < g.W && y < g.H }

// At returns Wall outside the grid.
func (g Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.tiles[y*g.W+x]
}

func (g Grid) AtPoint(p model.Point) Tile { return g.At(p.X, p.Y) }

// Set is only used while a level is being generated.
func (g Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.tiles[y*g.W+x] = t
}

func (g Grid) Clone() Grid {
	out := Grid{W: g.W, H: g.H, tiles: make([]Tile, len(g.tiles))}
	copy(out.tiles, g.tiles)
	return out
}

// Rows renders one string per row using Tile.Rune.
func (g Grid) Rows() []string {
	rows := make([]string, 0, g.H)
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		sb.Reset()
		for x := 0; x < g.W; x++ {
			sb.WriteRune(g.At(x, y).Rune())
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func (g Grid) String() string { return strings.Join(g.Rows(), "\n") }

// NextToDoorOrFood reports whether any 4-neighbour of (x,y) is a door or food tile.
func (g Grid) NextToDoorOrFood(x, y int) bool {
	for _, d := range model.Directions {
		dp := d.Delta()
		n := g.At(x+dp.X, y+dp.Y)
		if n == Door {
			return true
		}
		if _, ok := n.Food(); ok {
			return true
		}
	}
	return false
}

// FlankedByTable reports whether the cell left or right of (x,y) is a table.
func (g Grid) FlankedByTable(x, y int) bool {
	return g.At(x-1, y) == Table || g.At(x+1, y) == Table
}
