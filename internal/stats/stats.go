// Package stats is a pure read over a finalized match model. Nothing here
// mutates the match; every function may run concurrently with other readers.
package stats

import (
	"sort"

	"github.com/pable/go-cs-replay/internal/model"
)

// PlayerLine is one leaderboard row with the derived per-player metrics.
type PlayerLine struct {
	SteamID string
	Name    string
	Team    model.Team

	Kills     int
	Deaths    int
	Headshots int
	Damage    int

	RoundsPlayed int
	KD           float64
	HSPercent    float64
	ADR          float64
}

// Leaderboard computes all player lines sorted by the named numeric field,
// descending, with the player name as deterministic tie-break. Unknown sort
// fields fall back to kills.
func Leaderboard(m *model.Match, sortBy string) []PlayerLine {
	rounds := len(m.Rounds)
	lines := make([]PlayerLine, 0, len(m.Players))
	for _, p := range m.Players {
		l := PlayerLine{
			SteamID:      p.SteamID,
			Name:         p.Name,
			Team:         p.Team,
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Headshots:    p.Headshots,
			Damage:       p.DamageDealt,
			RoundsPlayed: rounds,
			KD:           p.KDRatio(),
			HSPercent:    p.HSPercent(),
		}
		if rounds > 0 {
			l.ADR = float64(p.DamageDealt) / float64(rounds)
		}
		lines = append(lines, l)
	}

	key := sortKey(sortBy)
	sort.Slice(lines, func(i, j int) bool {
		ki, kj := key(&lines[i]), key(&lines[j])
		if ki != kj {
			return ki > kj
		}
		return lines[i].Name < lines[j].Name
	})
	return lines
}

// SortFields lists the accepted leaderboard sort field names.
func SortFields() []string {
	return []string{"kills", "deaths", "headshots", "damage", "kd", "hs", "adr"}
}

func sortKey(field string) func(*PlayerLine) float64 {
	switch field {
	case "deaths":
		return func(l *PlayerLine) float64 { return float64(l.Deaths) }
	case "headshots":
		return func(l *PlayerLine) float64 { return float64(l.Headshots) }
	case "damage":
		return func(l *PlayerLine) float64 { return float64(l.Damage) }
	case "kd":
		return func(l *PlayerLine) float64 { return l.KD }
	case "hs":
		return func(l *PlayerLine) float64 { return l.HSPercent }
	case "adr":
		return func(l *PlayerLine) float64 { return l.ADR }
	default:
		return func(l *PlayerLine) float64 { return float64(l.Kills) }
	}
}

// TeamRollup aggregates one side's totals and per-player averages.
type TeamRollup struct {
	Team    model.Team
	Score   int
	Players int

	Kills  int
	Deaths int
	Damage int

	AvgKills  float64
	AvgDeaths float64
	AvgDamage float64
	KD        float64
}

// Teams computes the T and CT rollups.
func Teams(m *model.Match) (t, ct TeamRollup) {
	t = rollup(m, model.TeamT)
	ct = rollup(m, model.TeamCT)
	t.Score = m.TScore
	ct.Score = m.CTScore
	return t, ct
}

func rollup(m *model.Match, team model.Team) TeamRollup {
	r := TeamRollup{Team: team}
	for _, p := range m.Players {
		if p.Team != team {
			continue
		}
		r.Players++
		r.Kills += p.Kills
		r.Deaths += p.Deaths
		r.Damage += p.DamageDealt
	}
	if r.Players > 0 {
		r.AvgKills = float64(r.Kills) / float64(r.Players)
		r.AvgDeaths = float64(r.Deaths) / float64(r.Players)
		r.AvgDamage = float64(r.Damage) / float64(r.Players)
	}
	if r.Deaths > 0 {
		r.KD = float64(r.Kills) / float64(r.Deaths)
	} else {
		r.KD = float64(r.Kills)
	}
	return r
}

// WeaponLine is one weapon table row.
type WeaponLine struct {
	Weapon      string
	Kills       int
	Headshots   int
	UniqueUsers int
	HSPercent   float64
}

// Weapons builds the weapon table, sorted by kills descending with the
// weapon name as tie-break.
func Weapons(m *model.Match) []WeaponLine {
	type accum struct {
		kills     int
		headshots int
		users     map[string]struct{}
	}
	byWeapon := make(map[string]*accum)
	for ri := range m.Rounds {
		for _, k := range m.Rounds[ri].Kills {
			a := byWeapon[k.Weapon]
			if a == nil {
				a = &accum{users: make(map[string]struct{})}
				byWeapon[k.Weapon] = a
			}
			a.kills++
			if k.Headshot {
				a.headshots++
			}
			a.users[k.KillerID] = struct{}{}
		}
	}

	lines := make([]WeaponLine, 0, len(byWeapon))
	for w, a := range byWeapon {
		l := WeaponLine{Weapon: w, Kills: a.kills, Headshots: a.headshots, UniqueUsers: len(a.users)}
		if a.kills > 0 {
			l.HSPercent = float64(a.headshots) / float64(a.kills) * 100
		}
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Kills != lines[j].Kills {
			return lines[i].Kills > lines[j].Kills
		}
		return lines[i].Weapon < lines[j].Weapon
	})
	return lines
}

// KillFeedEntry is one chronological kill feed row.
type KillFeedEntry struct {
	Round      int
	Tick       int
	Time       float64
	KillerName string
	KillerTeam model.Team
	VictimName string
	VictimTeam model.Team
	Weapon     string
	Headshot   bool
	Wallbang   bool
	Teamkill   bool
	Distance   float64
}

// KillFeed returns the kill feed for one round, or for the whole match when
// roundNumber is 0. Unknown round numbers yield an empty feed.
func KillFeed(m *model.Match, roundNumber int) []KillFeedEntry {
	var feed []KillFeedEntry
	for ri := range m.Rounds {
		r := &m.Rounds[ri]
		if roundNumber != 0 && r.Number != roundNumber {
			continue
		}
		for _, k := range r.Kills {
			e := KillFeedEntry{
				Round:    r.Number,
				Tick:     k.Tick,
				Weapon:   k.Weapon,
				Headshot: k.Headshot,
				Wallbang: k.Wallbang,
				Teamkill: k.Teamkill,
				Distance: k.Distance,
			}
			if m.TickRate > 0 {
				e.Time = float64(k.Tick) / m.TickRate
			}
			if p := m.Player(k.KillerID); p != nil {
				e.KillerName, e.KillerTeam = p.Name, p.Team
			}
			if p := m.Player(k.VictimID); p != nil {
				e.VictimName, e.VictimTeam = p.Name, p.Team
			}
			feed = append(feed, e)
		}
	}
	return feed
}

// Summary condenses a match for the parse output and list views.
type Summary struct {
	MapName string
	TScore  int
	CTScore int
	Winner  model.Team
	Rounds  int
	Kills   int
	Players int
}

func Summarize(m *model.Match) Summary {
	return Summary{
		MapName: m.MapName,
		TScore:  m.TScore,
		CTScore: m.CTScore,
		Winner:  m.Winner(),
		Rounds:  len(m.Rounds),
		Kills:   m.TotalKills(),
		Players: len(m.Players),
	}
}
