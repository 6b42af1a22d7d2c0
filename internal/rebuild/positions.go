package rebuild

import (
	"sort"

	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/model"
)

// PositionIndex answers "where was this player at (or just before) tick" from
// the per-tick samples. Samples per player are kept sorted by tick.
type PositionIndex struct {
	samples map[string][]model.Position
}

func NewPositionIndex(ticks []ingest.TickRow) *PositionIndex {
	idx := &PositionIndex{samples: make(map[string][]model.Position)}
	for _, t := range ticks {
		idx.samples[t.SteamID] = append(idx.samples[t.SteamID], t.Position())
	}
	for id := range idx.samples {
		s := idx.samples[id]
		sort.SliceStable(s, func(i, j int) bool { return s[i].Tick < s[j].Tick })
	}
	return idx
}

// At returns the latest sample at or before tick for the given player.
func (idx *PositionIndex) At(steamID string, tick int) (model.Position, bool) {
	s := idx.samples[steamID]
	if len(s) == 0 {
		return model.Position{}, false
	}
	// First sample strictly after tick; the one before it is the answer.
	i := sort.Search(len(s), func(i int) bool { return s[i].Tick > tick })
	if i == 0 {
		return model.Position{}, false
	}
	return s[i-1], true
}
