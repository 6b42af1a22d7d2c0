package rebuild

import (
	"github.com/pable/go-cs-replay/internal/model"
)

// Resolver maintains the steam id → Player registry. The first-seen name and
// team string win; later observations of the same id never overwrite them.
type Resolver struct {
	players map[string]*model.Player
}

func NewResolver() *Resolver {
	return &Resolver{players: make(map[string]*model.Player)}
}

// Observe registers a player on first sight and returns the registry entry.
func (r *Resolver) Observe(steamID, name, teamName string) *model.Player {
	if p, ok := r.players[steamID]; ok {
		return p
	}
	p := &model.Player{
		SteamID: steamID,
		Name:    name,
		Team:    model.ParseTeam(teamName),
	}
	r.players[steamID] = p
	return p
}

// Lookup returns the registered player without creating one.
func (r *Resolver) Lookup(steamID string) (*model.Player, bool) {
	p, ok := r.players[steamID]
	return p, ok
}

// Players hands the registry to the match being built.
func (r *Resolver) Players() map[string]*model.Player {
	return r.players
}
