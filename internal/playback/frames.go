// Package playback turns discretely-sampled player positions into a
// continuous, interpolated render stream.
package playback

import (
	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/model"
)

// PlayerState is one player's snapshot inside a frame.
type PlayerState struct {
	SteamID string
	Name    string
	Team    model.Team
	Pos     model.Position
	Yaw     float64
	Health  int
	Armor   int
	Alive   bool
	Weapon  string
}

// Frame is one discrete sample of the whole match at a tick.
type Frame struct {
	Tick    int
	Time    float64
	Players []PlayerState
}

func (f *Frame) player(steamID string) (PlayerState, bool) {
	for _, p := range f.Players {
		if p.SteamID == steamID {
			return p, true
		}
	}
	return PlayerState{}, false
}

// BuildFrames downsamples the per-tick table to roughly sampleFPS frames per
// second of game time. Rows must be sorted by tick (ingest.Ticks guarantees
// this). A non-positive tick rate falls back to 64.
func BuildFrames(ticks []ingest.TickRow, tickRate, sampleFPS float64) []Frame {
	if len(ticks) == 0 {
		return nil
	}
	if tickRate <= 0 {
		tickRate = 64
	}
	if sampleFPS <= 0 {
		sampleFPS = 4
	}
	step := int(tickRate / sampleFPS)
	if step < 1 {
		step = 1
	}

	var frames []Frame
	nextSample := ticks[0].Tick
	var cur *Frame
	for _, row := range ticks {
		if cur != nil && row.Tick == cur.Tick {
			cur.Players = append(cur.Players, stateFromRow(row))
			continue
		}
		if row.Tick < nextSample {
			continue
		}
		frames = append(frames, Frame{Tick: row.Tick, Time: float64(row.Tick) / tickRate})
		cur = &frames[len(frames)-1]
		cur.Players = append(cur.Players, stateFromRow(row))
		nextSample = row.Tick + step
	}
	return frames
}

func stateFromRow(r ingest.TickRow) PlayerState {
	return PlayerState{
		SteamID: r.SteamID,
		Name:    r.Name,
		Team:    model.ParseTeam(r.TeamName),
		Pos:     r.Position(),
		Yaw:     r.Yaw,
		Health:  r.Health,
		Armor:   r.Armor,
		Alive:   r.IsAlive,
		Weapon:  r.ActiveWeapon,
	}
}
