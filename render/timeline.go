package render

import (
	"sort"
	"time"

	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// Timeline is a Scene that keeps sprites and animation clocks in memory. It
// does not draw anything; a front-end reads Sprites and Progress each frame.
// Keys without a configured duration finish immediately.
type Timeline struct {
	durations map[string]time.Duration
	sprites   map[Handle]Sprite
	active    map[Handle]map[string]time.Duration
}

var _ Scene = (*Timeline)(nil)

func NewTimeline(durations map[string]time.Duration) *Timeline {
	d := make(map[string]time.Duration, len(durations))
	for k, v := range durations {
		d[k] = v
	}
	return &Timeline{
		durations: d,
		sprites:   map[Handle]Sprite{},
		active:    map[Handle]map[string]time.Duration{},
	}
}

func (t *Timeline) Attach(h Handle, s Sprite) {
	if h == NoHandle {
		return
	}
	t.sprites[h] = s
}

func (t *Timeline) Detach(h Handle) {
	delete(t.sprites, h)
	delete(t.active, h)
}

func (t *Timeline) Move(h Handle, to grid.Point) {
	s, ok := t.sprites[h]
	if !ok {
		return
	}
	s.Pos = to
	t.sprites[h] = s
}

func (t *Timeline) Activate(h Handle, key string) {
	d := t.durations[key]
	if h == NoHandle || key == "" || d <= 0 {
		return
	}
	keys := t.active[h]
	if keys == nil {
		keys = map[string]time.Duration{}
		t.active[h] = keys
	}
	keys[key] = d
}

func (t *Timeline) IsActive(h Handle, key string) bool {
	return t.active[h][key] > 0
}

// Advance moves every running animation forward by dt.
func (t *Timeline) Advance(dt time.Duration) {
	for h, keys := range t.active {
		for k, left := range keys {
			left -= dt
			if left <= 0 {
				delete(keys, k)
				continue
			}
			keys[k] = left
		}
		if len(keys) == 0 {
			delete(t.active, h)
		}
	}
}

// Progress returns how far key has played on h, in [0, 1]. A key that is not
// running reports 1.
func (t *Timeline) Progress(h Handle, key string) float64 {
	left, ok := t.active[h][key]
	total := t.durations[key]
	if !ok || total <= 0 {
		return 1
	}
	return 1 - float64(left)/float64(total)
}

// Sprite returns the sprite attached under h.
func (t *Timeline) Sprite(h Handle) (Sprite, bool) {
	s, ok := t.sprites[h]
	return s, ok
}

// Handles returns every attached handle in allocation order.
func (t *Timeline) Handles() []Handle {
	out := make([]Handle, 0, len(t.sprites))
	for h := range t.sprites {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Playing returns the keys currently running on h.
func (t *Timeline) Playing(h Handle) []string {
	keys := make([]string, 0, len(t.active[h]))
	for k := range t.active[h] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
