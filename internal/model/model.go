package model

import (
	"math"
	"strings"
)

// Team represents which side a player is on.
type Team int

const (
	TeamUnassigned Team = 0
	TeamSpectator  Team = 1
	TeamT          Team = 2
	TeamCT         Team = 3
)

func (t Team) String() string {
	switch t {
	case TeamT:
		return "T"
	case TeamCT:
		return "CT"
	case TeamSpectator:
		return "SPEC"
	default:
		return "?"
	}
}

// ParseTeam normalizes a raw team string from the decoding collaborator.
// Order matters: "SPECTATOR" contains "CT" and "COUNTER-TERRORIST" contains
// "TERRORIST", so the more specific keywords are checked first.
func ParseTeam(raw string) Team {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "SPEC"):
		return TeamSpectator
	case strings.Contains(s, "COUNTER"):
		return TeamCT
	case strings.Contains(s, "TERRORIST") || s == "T":
		return TeamT
	case strings.Contains(s, "CT"):
		return TeamCT
	default:
		return TeamUnassigned
	}
}

// Position is a point in world space (Hammer units). Tick and Yaw are set
// when the position comes from a player tick sample, zero otherwise.
type Position struct {
	X, Y, Z float64
	Tick    int
	Yaw     float64
}

// DistanceTo returns the 3D euclidean distance to q.
func (p Position) DistanceTo(q Position) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Player is one entry in the match's entity registry. Name and Team are
// fixed at first observation; the counters are mutated only while the match
// is being rebuilt.
type Player struct {
	SteamID string
	Name    string
	Team    Team

	Kills       int
	Deaths      int
	Headshots   int
	DamageDealt int
}

func (p *Player) KDRatio() float64 {
	if p.Deaths == 0 {
		return float64(p.Kills)
	}
	return float64(p.Kills) / float64(p.Deaths)
}

func (p *Player) HSPercent() float64 {
	if p.Kills == 0 {
		return 0
	}
	return float64(p.Headshots) / float64(p.Kills) * 100
}

// Kill references killer and victim by steam id into the match registry
// rather than holding back-pointers. Positions are optional: nil when the
// sample was not available at the kill tick.
type Kill struct {
	Tick     int
	KillerID string
	VictimID string
	Weapon   string

	Headshot bool
	Wallbang bool
	Teamkill bool

	KillerPos *Position
	VictimPos *Position
	Distance  float64
}

// Round is one play segment. Rounds partition the observed tick axis:
// round[i].EndTick < round[i+1].StartTick.
type Round struct {
	Number    int
	StartTick int
	EndTick   int

	Winner    Team
	EndReason string

	BombPlanted bool
	BombDefused bool

	Kills []Kill
}

// Contains reports whether tick falls inside the round's interval.
func (r *Round) Contains(tick int) bool {
	return r.StartTick <= tick && tick <= r.EndTick
}

// Match is the reconstructed model. It is built incrementally by the rebuild
// pipeline and treated as an immutable snapshot afterwards.
type Match struct {
	MapName  string
	TickRate float64

	TScore  int
	CTScore int

	Players map[string]*Player
	Rounds  []Round
}

// Player returns the registered player for the given steam id, nil if unknown.
func (m *Match) Player(steamID string) *Player {
	return m.Players[steamID]
}

// TotalKills counts kills across all rounds.
func (m *Match) TotalKills() int {
	n := 0
	for i := range m.Rounds {
		n += len(m.Rounds[i].Kills)
	}
	return n
}

// Winner returns the side with the higher score, TeamUnassigned on a draw.
func (m *Match) Winner() Team {
	switch {
	case m.TScore > m.CTScore:
		return TeamT
	case m.CTScore > m.TScore:
		return TeamCT
	default:
		return TeamUnassigned
	}
}

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	DemoHash  string
	MapName   string
	MatchDate string
	TickRate  float64
	TScore    int
	CTScore   int
	Rounds    int
	Kills     int
	Players   int
}
