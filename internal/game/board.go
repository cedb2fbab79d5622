package game

import "fmt"

// Chebyshev returns max(|x1-x2|, |y1-y2|), the distance metric used for
// every range and adjacency check on the grid.
func Chebyshev(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// Board is a fixed-size grid holding at most one minion per cell. Tower
// positions are tracked separately from minions but block placement and
// movement all the same.
type Board struct {
	rows, cols int
	grid       [][]*Minion
	towers     map[[2]int]*Tower
}

// NewBoard creates an empty rows×cols board.
func NewBoard(rows, cols int) *Board {
	grid := make([][]*Minion, rows)
	for y := range grid {
		grid[y] = make([]*Minion, cols)
	}
	return &Board{
		rows:   rows,
		cols:   cols,
		grid:   grid,
		towers: make(map[[2]int]*Tower),
	}
}

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// Cols returns the board width.
func (b *Board) Cols() int { return b.cols }

// InBounds reports whether (x,y) is a valid cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// IsEmpty reports whether the cell holds neither minion nor tower.
// Out-of-range coordinates are an error; callers are expected to
// bounds-check first.
func (b *Board) IsEmpty(x, y int) (bool, error) {
	if !b.InBounds(x, y) {
		return false, fmt.Errorf("cell (%d,%d) out of bounds for %dx%d board", x, y, b.cols, b.rows)
	}
	if b.grid[y][x] != nil {
		return false, nil
	}
	if _, blocked := b.towers[[2]int{x, y}]; blocked {
		return false, nil
	}
	return true, nil
}

// PlaceMinion stores the minion at (x,y) and updates its position copy.
// Fails when the cell is occupied by a minion or tower.
func (b *Board) PlaceMinion(m *Minion, x, y int) error {
	empty, err := b.IsEmpty(x, y)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("cell (%d,%d) is occupied", x, y)
	}
	b.grid[y][x] = m
	m.X, m.Y = x, y
	return nil
}

// RemoveMinion clears the cell at (x,y). No-op when the cell is empty or
// out of range.
func (b *Board) RemoveMinion(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	b.grid[y][x] = nil
}

// MoveMinion relocates the minion at the source cell to the destination.
// Fails when the source is empty or the destination is blocked.
func (b *Board) MoveMinion(fromX, fromY, toX, toY int) error {
	if !b.InBounds(fromX, fromY) {
		return fmt.Errorf("source cell (%d,%d) out of bounds", fromX, fromY)
	}
	m := b.grid[fromY][fromX]
	if m == nil {
		return fmt.Errorf("source cell (%d,%d) is empty", fromX, fromY)
	}
	empty, err := b.IsEmpty(toX, toY)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("destination cell (%d,%d) is occupied", toX, toY)
	}
	b.grid[fromY][fromX] = nil
	b.grid[toY][toX] = m
	m.X, m.Y = toX, toY
	return nil
}

// MinionAt returns the minion occupying (x,y), or nil.
func (b *Board) MinionAt(x, y int) *Minion {
	if !b.InBounds(x, y) {
		return nil
	}
	return b.grid[y][x]
}

// PlaceTower registers a tower cell. Towers never relocate; a destroyed
// tower frees its cell through RemoveTower.
func (b *Board) PlaceTower(t *Tower) error {
	if !b.InBounds(t.X, t.Y) {
		return fmt.Errorf("tower cell (%d,%d) out of bounds", t.X, t.Y)
	}
	key := [2]int{t.X, t.Y}
	if _, taken := b.towers[key]; taken {
		return fmt.Errorf("tower cell (%d,%d) already holds a tower", t.X, t.Y)
	}
	if b.grid[t.Y][t.X] != nil {
		return fmt.Errorf("tower cell (%d,%d) holds a minion", t.X, t.Y)
	}
	b.towers[key] = t
	return nil
}

// RemoveTower unregisters a destroyed tower's cell.
func (b *Board) RemoveTower(t *Tower) {
	delete(b.towers, [2]int{t.X, t.Y})
}

// TowerAt returns the tower occupying (x,y), or nil.
func (b *Board) TowerAt(x, y int) *Tower {
	return b.towers[[2]int{x, y}]
}

// HasTower reports whether (x,y) holds a tower.
func (b *Board) HasTower(x, y int) bool {
	_, ok := b.towers[[2]int{x, y}]
	return ok
}

// Minions returns a snapshot of all minions on the board in row-major
// order. Callers may mutate the board freely while ranging over it.
func (b *Board) Minions() []*Minion {
	var out []*Minion
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			if m := b.grid[y][x]; m != nil {
				out = append(out, m)
			}
		}
	}
	return out
}

// MinionsOwnedBy returns a snapshot of the named player's minions.
func (b *Board) MinionsOwnedBy(owner string) []*Minion {
	var out []*Minion
	for _, m := range b.Minions() {
		if m.Owner == owner {
			out = append(out, m)
		}
	}
	return out
}

// ForEachMinion visits every minion with its position. The traversal runs
// over a snapshot, so visitors may place or remove minions without
// invalidating the iteration.
func (b *Board) ForEachMinion(visit func(m *Minion, x, y int)) {
	for _, m := range b.Minions() {
		visit(m, m.X, m.Y)
	}
}
