package combat

import "math"

// arena holds the fixed geometry of a match: bounds, padding and cores.
type arena struct {
	width, height float64
	padding       float64
	coreRadius    float64
	coreX, coreY  [2]float64
}

func newArena(width, height, padding, coreRadius float64) arena {
	return arena{
		width:      width,
		height:     height,
		padding:    padding,
		coreRadius: coreRadius,
		coreX:      [2]float64{padding, width - padding},
		coreY:      [2]float64{height * 0.5, height * 0.5},
	}
}

func (a *arena) clampX(v float64) float64 {
	if v < a.padding {
		return a.padding
	}
	if max := a.width - a.padding; v > max {
		return max
	}
	return v
}

func (a *arena) clampY(v float64) float64 {
	if v < a.padding {
		return a.padding
	}
	if max := a.height - a.padding; v > max {
		return max
	}
	return v
}

// bucketGrid is a uniform grid of singly linked lists, one sub-grid per
// (team, layer) group. It is rebuilt from scratch, never updated in place.
type bucketGrid struct {
	size       float64
	cols, rows int
	count      int
	heads      []int32 // groupCount * count
	next       []int32 // per entity
}

const groupCount = 4

func groupOf(t Team, l Layer) int { return int(t)*2 + int(l) }

func newBucketGrid(width, height, size float64, maxEntities int) *bucketGrid {
	cols := int(math.Ceil(width / size))
	rows := int(math.Ceil(height / size))
	g := &bucketGrid{
		size:  size,
		cols:  cols,
		rows:  rows,
		count: cols * rows,
		heads: make([]int32, groupCount*cols*rows),
		next:  make([]int32, maxEntities),
	}
	fill(g.heads, -1)
	fill(g.next, -1)
	return g
}

func (g *bucketGrid) cellX(v float64) int {
	return clampInt(int(math.Floor(v/g.size)), 0, g.cols-1)
}

func (g *bucketGrid) cellY(v float64) int {
	return clampInt(int(math.Floor(v/g.size)), 0, g.rows-1)
}

func (g *bucketGrid) index(x, y float64) int {
	return g.cellY(y)*g.cols + g.cellX(x)
}

// radiusCells is how many rings of cells a query of radius r must cover.
func (g *bucketGrid) radiusCells(r float64) int {
	return int(math.Ceil(r / g.size))
}

// rebuild prepends every living entity to its bucket. Lists therefore run
// from highest to lowest index, which queries rely on for tie-break order.
func (g *bucketGrid) rebuild(st *state) {
	fill(g.heads, -1)
	for i := 0; i < st.entityCount; i++ {
		if st.alive[i] == 0 {
			continue
		}
		x, y := st.pos(i)
		head := groupOf(st.team[i], st.layer[i])*g.count + g.index(x, y)
		g.next[i] = g.heads[head]
		g.heads[head] = int32(i)
	}
}

// visitNear calls fn for every entity in the cells within rings of
// (cx, cy) for group. It stops early and returns false once fn does.
func (g *bucketGrid) visitNear(group, cx, cy, rings int, fn func(i int) bool) bool {
	minY := max(0, cy-rings)
	maxY := min(g.rows-1, cy+rings)
	minX := max(0, cx-rings)
	maxX := min(g.cols-1, cx+rings)
	base := group * g.count
	for by := minY; by <= maxY; by++ {
		for bx := minX; bx <= maxX; bx++ {
			for idx := g.heads[base+by*g.cols+bx]; idx >= 0; idx = g.next[idx] {
				if !fn(int(idx)) {
					return false
				}
			}
		}
	}
	return true
}

// visitAll walks every bucket of group in bucket order.
func (g *bucketGrid) visitAll(group int, fn func(i int)) {
	base := group * g.count
	for b := 0; b < g.count; b++ {
		for idx := g.heads[base+b]; idx >= 0; idx = g.next[idx] {
			fn(int(idx))
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
