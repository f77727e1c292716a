package render

// Gate holds back turn progress while interrupting animations play. Entries
// drop out on their own once the scene reports the animation finished; the
// gate never waits, it is polled once per frame.
type Gate struct {
	scene   Scene
	pending []gateEntry
}

type gateEntry struct {
	handle Handle
	key    string
}

func NewGate(scene Scene) *Gate {
	return &Gate{scene: scene}
}

// Play starts key on h and registers it as interrupting.
func (g *Gate) Play(h Handle, key string) {
	g.scene.Activate(h, key)
	g.Hold(h, key)
}

// Hold registers an already running animation as interrupting.
func (g *Gate) Hold(h Handle, key string) {
	if h == NoHandle || key == "" {
		return
	}
	g.pending = append(g.pending, gateEntry{handle: h, key: key})
}

// Blocked prunes finished entries and reports whether any remain.
func (g *Gate) Blocked() bool {
	kept := g.pending[:0]
	for _, e := range g.pending {
		if g.scene.IsActive(e.handle, e.key) {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(g.pending); i++ {
		g.pending[i] = gateEntry{}
	}
	g.pending = kept
	return len(g.pending) > 0
}

// Len returns the number of registered entries, finished or not.
func (g *Gate) Len() int {
	return len(g.pending)
}

func (g *Gate) Clear() {
	g.pending = nil
}
