// Package rebuild reconstructs a temporally consistent match model from the
// normalized feeds: entity registry, round partition of the tick axis, and
// kills bound to their containing rounds.
package rebuild

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/model"
)

// Input is the full set of normalized feeds for one demo.
type Input struct {
	MapName  string
	TickRate float64

	Ticks     []ingest.TickRow
	Deaths    []ingest.DeathRow
	RoundEnds []ingest.RoundEndRow
	Hurts     []ingest.HurtRow
}

// Diagnostics counts the events the pipeline absorbed instead of failing on.
type Diagnostics struct {
	DroppedRounds   int
	UnresolvedKills int
	OutOfRangeKills int
	OutOfRangeDamage int
}

// Build runs the reconstruction as one logical pass. The context is checked
// between stages only (cooperative, not preemptive); on cancellation all
// partial state is discarded and no Match is exposed.
func Build(ctx context.Context, log zerolog.Logger, in Input) (*model.Match, Diagnostics, error) {
	var diag Diagnostics

	// Stage 1: entity registry. Tick samples are observed first so that the
	// richer per-tick name/team strings win over event-side ones. Empty ids
	// (killer-less deaths, world damage) are never registered; the events
	// referencing them fail resolution later and take the drop path.
	res := NewResolver()
	for _, t := range in.Ticks {
		if t.SteamID == "" {
			continue
		}
		res.Observe(t.SteamID, t.Name, t.TeamName)
	}
	for _, d := range in.Deaths {
		if d.AttackerID != "" {
			res.Observe(d.AttackerID, d.AttackerName, d.AttackerTeam)
		}
		if d.VictimID != "" {
			res.Observe(d.VictimID, d.VictimName, d.VictimTeam)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, Diagnostics{}, err
	}

	// Stage 2: round partition.
	rounds := binRounds(log, in.RoundEnds, &diag)
	if err := ctx.Err(); err != nil {
		return nil, Diagnostics{}, err
	}

	// Stage 3: kill attribution.
	posIdx := NewPositionIndex(in.Ticks)
	attributeKills(log, rounds, in.Deaths, res, posIdx, &diag)
	if err := ctx.Err(); err != nil {
		return nil, Diagnostics{}, err
	}

	// Stage 4: optional damage feed.
	applyDamage(log, rounds, in.Hurts, res, &diag)
	if err := ctx.Err(); err != nil {
		return nil, Diagnostics{}, err
	}

	m := &model.Match{
		MapName:  in.MapName,
		TickRate: in.TickRate,
		Players:  res.Players(),
		Rounds:   rounds,
	}
	for i := range rounds {
		switch rounds[i].Winner {
		case model.TeamT:
			m.TScore++
		case model.TeamCT:
			m.CTScore++
		}
	}

	log.Info().
		Str("map", m.MapName).
		Int("players", len(m.Players)).
		Int("rounds", len(m.Rounds)).
		Int("kills", m.TotalKills()).
		Int("dropped_rounds", diag.DroppedRounds).
		Int("dropped_kills", diag.UnresolvedKills+diag.OutOfRangeKills).
		Msg("match rebuilt")
	return m, diag, nil
}
