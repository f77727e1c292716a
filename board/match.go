package board

import (
	"sort"

	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// FindMatches returns the indexes of every cell that belongs to a run of
// MinMatch or more equal, non-null colours in a row or a column, in ascending
// order. A cell claimed by both a row and a column run appears once.
func (b *Board) FindMatches() []int {
	matched := map[int]struct{}{}
	w, h := b.bounds.Width, b.bounds.Height

	for y := 0; y < h; y++ {
		b.scanLine(w, func(i int) int { return i + y*w }, matched)
	}
	for x := 0; x < w; x++ {
		b.scanLine(h, func(i int) int { return x + i*w }, matched)
	}

	out := make([]int, 0, len(matched))
	for idx := range matched {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// scanLine walks one row or column of length n, where at maps the position
// along the line to a cell index, and records runs into matched.
func (b *Board) scanLine(n int, at func(int) int, matched map[int]struct{}) {
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && b.tiles[at(i)].Color == b.tiles[at(start)].Color {
			continue
		}
		if i-start >= MinMatch && b.tiles[at(start)].Color != NullColor {
			for j := start; j < i; j++ {
				matched[at(j)] = struct{}{}
			}
		}
		start = i
	}
}

// CheckForMatches replaces every matched tile with a fresh random one. The
// old tile goes to the removed set and the new one to the added set. When
// removeEnemies is set, enemies standing on a replaced cell are killed. It
// reports whether anything matched.
func (b *Board) CheckForMatches(removeEnemies bool) (bool, error) {
	matched := b.FindMatches()
	if len(matched) == 0 {
		return false, nil
	}

	cells := make(map[grid.Point]struct{}, len(matched))
	for _, idx := range matched {
		old := b.tiles[idx]
		fresh := b.newTile(b.randomColor())
		b.tiles[idx] = fresh
		b.removedTiles.add(old)
		b.addedTiles.add(fresh)
		cells[b.bounds.Point(idx)] = struct{}{}
		b.removedCells.add(b.bounds.Point(idx))
	}

	if !removeEnemies {
		return true, nil
	}
	for _, e := range b.enemies.slice() {
		loc, err := b.location(e)
		if err != nil {
			return true, err
		}
		if _, hit := cells[loc.Point()]; !hit {
			continue
		}
		if err := b.KillEnemy(e); err != nil {
			return true, err
		}
	}
	return true, nil
}
