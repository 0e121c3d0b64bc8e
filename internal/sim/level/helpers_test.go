package level

import "dinerline.ai/internal/sim/model"

// gridCatalog serves templates held in memory as [template][row][col].
type gridCatalog [][][]int

func (c gridCatalog) Size() int { return len(c) }

func (c gridCatalog) TileCodeAt(id, row, col int) (int, bool) {
	if id < 0 || id >= len(c) {
		return 0, false
	}
	t := c[id]
	if row < 0 || row >= len(t) || col < 0 || col >= len(t[row]) {
		return 0, false
	}
	return t[row][col], true
}

// roomTemplate is a walled w*h room with open floor inside.
func roomTemplate(w, h int) [][]int {
	rows := make([][]int, h)
	for y := range rows {
		rows[y] = make([]int, w)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				rows[y][x] = CodeWall
			} else {
				rows[y][x] = CodeFloor
			}
		}
	}
	return rows
}

// dinerTemplate has a door on the given edge and a row of food stations.
func dinerTemplate(w, h int, door model.Point) [][]int {
	rows := roomTemplate(w, h)
	rows[door.Y][door.X] = CodeDoor
	rows[1][w-3] = CodeFoodA
	rows[2][w-3] = CodeFoodB
	rows[3][w-3] = CodeFoodC
	return rows
}

func neighbours(p model.Point) []model.Point {
	out := make([]model.Point, 0, 4)
	for _, d := range model.Directions {
		out = append(out, p.Add(d.Delta()))
	}
	return out
}

func poolContains(p *SpawnPool, pt model.Point) bool {
	for _, q := range p.pts {
		if q == pt {
			return true
		}
	}
	return false
}

func countTiles(g Grid, t Tile) int {
	n := 0
	for _, v := range g.tiles {
		if v == t {
			n++
		}
	}
	return n
}
