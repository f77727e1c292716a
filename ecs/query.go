package ecs

// Matching returns the live entities whose components are a superset of sig,
// in creation order.
func Matching(w *World, sig Signature) []Entity {
	out := make([]Entity, 0, len(w.order))
	for _, e := range w.order {
		if w.signatures[e].Contains(sig) {
			out = append(out, e)
		}
	}
	return out
}
