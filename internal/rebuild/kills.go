package rebuild

import (
	"github.com/rs/zerolog"

	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/model"
)

// attributeKills resolves each death event to registry entities and to its
// containing round, then appends the kill and bumps the counters. Events that
// fail entity resolution or fall outside every round are dropped with a
// diagnostic; neither condition touches any counter.
func attributeKills(log zerolog.Logger, rounds []model.Round, deaths []ingest.DeathRow, res *Resolver, posIdx *PositionIndex, diag *Diagnostics) {
	for _, d := range deaths {
		killer, okK := res.Lookup(d.AttackerID)
		victim, okV := res.Lookup(d.VictimID)
		if !okK || !okV {
			diag.UnresolvedKills++
			log.Warn().Err(ErrUnresolvedEntity).Int("tick", d.Tick).
				Str("attacker", d.AttackerID).Str("victim", d.VictimID).
				Msg("dropping kill")
			continue
		}

		ri := findRound(rounds, d.Tick)
		if ri < 0 {
			diag.OutOfRangeKills++
			log.Warn().Err(ErrOutOfRangeEvent).Int("tick", d.Tick).
				Str("weapon", d.Weapon).Msg("dropping kill outside round ranges")
			continue
		}

		k := model.Kill{
			Tick:     d.Tick,
			KillerID: killer.SteamID,
			VictimID: victim.SteamID,
			Weapon:   d.Weapon,
			Headshot: d.Headshot,
			Wallbang: d.Penetrated,
			Teamkill: killer.Team == victim.Team && killer.SteamID != victim.SteamID,
		}

		vp := d.VictimPos
		k.VictimPos = &vp
		if d.AttackerPos != nil {
			ap := *d.AttackerPos
			k.KillerPos = &ap
		} else if p, ok := posIdx.At(d.AttackerID, d.Tick); ok {
			k.KillerPos = &p
		}
		if k.KillerPos != nil && k.VictimPos != nil {
			k.Distance = k.KillerPos.DistanceTo(*k.VictimPos)
		}

		rounds[ri].Kills = append(rounds[ri].Kills, k)
		killer.Kills++
		if d.Headshot {
			killer.Headshots++
		}
		victim.Deaths++
	}
}

// applyDamage feeds the optional hurt rows into the attacker damage counters.
// Rows outside every round are dropped like any other out-of-range event.
func applyDamage(log zerolog.Logger, rounds []model.Round, hurts []ingest.HurtRow, res *Resolver, diag *Diagnostics) {
	for _, h := range hurts {
		attacker, ok := res.Lookup(h.AttackerID)
		if !ok || h.AttackerID == h.VictimID {
			continue
		}
		if findRound(rounds, h.Tick) < 0 {
			diag.OutOfRangeDamage++
			log.Warn().Err(ErrOutOfRangeEvent).Int("tick", h.Tick).Msg("dropping damage outside round ranges")
			continue
		}
		attacker.DamageDealt += h.HealthDamage
	}
}
