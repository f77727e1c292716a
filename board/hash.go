package board

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Hash fingerprints the colours and pawn positions. Two boards built from the
// same config and seed hash the same.
func (b *Board) Hash() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 8)

	buf = binary.LittleEndian.AppendUint32(buf[:0], uint32(b.bounds.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(b.bounds.Height))
	_, _ = d.Write(buf)

	for _, t := range b.tiles {
		buf = binary.LittleEndian.AppendUint32(buf[:0], uint32(int32(t.Color)))
		_, _ = d.Write(buf)
	}
	for _, a := range b.allies {
		if !a.Alive {
			_, _ = d.Write([]byte{0})
			continue
		}
		buf = binary.LittleEndian.AppendUint32(buf[:0], uint32(a.Pos.X))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(a.Pos.Y))
		_, _ = d.Write(buf)
	}
	for _, e := range b.enemies.items {
		loc, err := b.location(e)
		if err != nil {
			continue
		}
		buf = binary.LittleEndian.AppendUint32(buf[:0], uint32(loc.X))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(loc.Y))
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}

// String draws the board top row first: digits are tile colours, A an ally,
// E an enemy.
func (b *Board) String() string {
	cells := make([]byte, len(b.tiles))
	for i, t := range b.tiles {
		if t.Null() {
			cells[i] = '.'
			continue
		}
		cells[i] = colorGlyph(t.Color)
	}
	for _, a := range b.allies {
		if a.Alive {
			cells[b.bounds.Index(a.Pos)] = 'A'
		}
	}
	for _, e := range b.enemies.items {
		loc, err := b.location(e)
		if err == nil && b.bounds.Contains(loc.Point()) {
			cells[b.bounds.Index(loc.Point())] = 'E'
		}
	}

	var sb strings.Builder
	for y := b.bounds.Height - 1; y >= 0; y-- {
		sb.Write(cells[y*b.bounds.Width : (y+1)*b.bounds.Width])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func colorGlyph(c int) byte {
	const glyphs = "0123456789abcdefghijklmnopqrstuvwxyz"
	if c < 0 || c >= len(glyphs) {
		return '?'
	}
	return glyphs[c]
}
