package player

import (
	"fmt"
	"strings"
)

// Player is one entry of the canonical name registry.
type Player struct {
	ID   int64
	Name string
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// Registry is an in-run view of known player ids. It never changes a
// known id's name; Admit reports only ids seen for the first time.
type Registry struct {
	known map[int64]struct{}
}

func NewRegistry(ids []int64) *Registry {
	known := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return &Registry{known: known}
}

func (r *Registry) Has(id int64) bool {
	_, ok := r.known[id]
	return ok
}

// Missing returns the players whose ids are not yet known, first occurrence
// per id, without recording them.
func (r *Registry) Missing(candidates []Player) []Player {
	var out []Player
	seen := make(map[int64]struct{})
	for _, p := range candidates {
		if r.Has(p.ID) {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Admit records ids as known.
func (r *Registry) Admit(players []Player) {
	for _, p := range players {
		r.known[p.ID] = struct{}{}
	}
}

func (r *Registry) Len() int {
	return len(r.known)
}
