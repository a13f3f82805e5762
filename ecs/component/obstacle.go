package component

import (
	"sync"

	"github.com/jakecoffman/cp"
)

// Obstacle is an externally positioned rectangle in arena coordinates.
// Position and Size stay nil until the owning window reports them.
type Obstacle struct {
	Index    int
	Position *cp.Vector
	Size     *cp.Vector
}

// Known reports whether both position and size have been reported.
func (o Obstacle) Known() bool {
	return o.Position != nil && o.Size != nil
}

func (o Obstacle) clone() Obstacle {
	out := Obstacle{Index: o.Index}
	if o.Position != nil {
		pos := *o.Position
		out.Position = &pos
	}
	if o.Size != nil {
		size := *o.Size
		out.Size = &size
	}
	return out
}

// ObstacleRegistry stores obstacles by index. Indices are handed out in order
// and never reused; a removed slot stays empty for the rest of the session.
// Feeds write to it from their own goroutines while the frame step reads it.
type ObstacleRegistry struct {
	mu    sync.RWMutex
	slots []*Obstacle
}

func NewObstacleRegistry() *ObstacleRegistry {
	return &ObstacleRegistry{}
}

// Register allocates the next index with position and size unknown.
func (r *ObstacleRegistry) Register() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := len(r.slots)
	r.slots = append(r.slots, &Obstacle{Index: idx})
	return idx
}

// Upsert stores the latest position and size for a registered obstacle. A nil
// field marks that value unknown again. Unregistered or removed indices are
// ignored and Upsert returns false.
func (r *ObstacleRegistry) Upsert(index int, position, size *cp.Vector) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := r.slotLocked(index)
	if o == nil {
		return false
	}
	next := Obstacle{Index: index, Position: position, Size: size}.clone()
	o.Position = next.Position
	o.Size = next.Size
	return true
}

// Remove empties a slot. Removing an empty or unknown slot is a no-op.
func (r *ObstacleRegistry) Remove(index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotLocked(index) == nil {
		return false
	}
	r.slots[index] = nil
	return true
}

// Get returns a copy of the obstacle at index.
func (r *ObstacleRegistry) Get(index int) (Obstacle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o := r.slotLocked(index)
	if o == nil {
		return Obstacle{}, false
	}
	return o.clone(), true
}

// ForEachKnown calls fn, in index order, for every live obstacle with both
// position and size reported. It works on a snapshot, so fn may call back
// into the registry.
func (r *ObstacleRegistry) ForEachKnown(fn func(Obstacle)) {
	if fn == nil {
		return
	}
	for _, o := range r.snapshot(true) {
		fn(o)
	}
}

// Live returns the indices of every slot that has not been removed.
func (r *ObstacleRegistry) Live() []int {
	snap := r.snapshot(false)
	out := make([]int, 0, len(snap))
	for _, o := range snap {
		out = append(out, o.Index)
	}
	return out
}

// Len is the number of indices ever handed out, holes included.
func (r *ObstacleRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

func (r *ObstacleRegistry) snapshot(knownOnly bool) []Obstacle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Obstacle, 0, len(r.slots))
	for _, o := range r.slots {
		if o == nil || (knownOnly && !o.Known()) {
			continue
		}
		out = append(out, o.clone())
	}
	return out
}

func (r *ObstacleRegistry) slotLocked(index int) *Obstacle {
	if index < 0 || index >= len(r.slots) {
		return nil
	}
	return r.slots[index]
}
