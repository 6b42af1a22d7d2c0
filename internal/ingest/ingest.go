// Package ingest normalizes the raw tabular feeds produced by the demo
// decoding collaborator into typed rows. Missing numeric fields default to 0,
// missing strings to "Unknown", missing booleans to false. Identity columns
// (steamids) are the exception: a missing id stays empty so downstream stages
// can drop the event instead of minting a phantom entity. Column absence is
// a capability probe, not an error: a table without an optional column simply
// yields rows with the defaults.
package ingest

import (
	"sort"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pable/go-cs-replay/internal/model"
)

// Row is one raw record: column name → dynamically typed value.
type Row map[string]any

// Table is an ordered raw feed from the decoding collaborator.
type Table struct {
	Name string
	Rows []Row
}

// HasColumn probes the table for a column. A column counts as present when
// any row carries it; decoders that omit a capability omit it everywhere.
func (t Table) HasColumn(name string) bool {
	for _, r := range t.Rows {
		if _, ok := r[name]; ok {
			return true
		}
	}
	return false
}

// TickRow is one normalized per-tick player sample.
type TickRow struct {
	Tick         int
	SteamID      string
	Name         string
	TeamName     string
	X, Y, Z      float64
	Yaw          float64
	Health       int
	Armor        int
	IsAlive      bool
	ActiveWeapon string
}

// Position returns the sample as a world position.
func (r TickRow) Position() model.Position {
	return model.Position{X: r.X, Y: r.Y, Z: r.Z, Tick: r.Tick, Yaw: r.Yaw}
}

// DeathRow is one normalized player_death event.
type DeathRow struct {
	Tick         int
	AttackerID   string
	AttackerName string
	AttackerTeam string
	VictimID     string
	VictimName   string
	VictimTeam   string
	Weapon       string
	Headshot     bool
	Penetrated   bool
	VictimPos    model.Position
	// AttackerPos is nil unless the feed carries attacker_X/Y/Z columns.
	AttackerPos *model.Position
}

// RoundEndRow is one normalized round_end event. The bomb flags come from
// optional columns and default to false.
type RoundEndRow struct {
	Tick        int
	Winner      string
	Reason      string
	BombPlanted bool
	BombDefused bool
}

// HurtRow is one normalized player_hurt event from the optional damage feed.
type HurtRow struct {
	Tick         int
	AttackerID   string
	VictimID     string
	HealthDamage int
	Weapon       string
}

// Ticks normalizes the per-tick position table, sorted by tick ascending.
func Ticks(log zerolog.Logger, t Table) []TickRow {
	if len(t.Rows) == 0 {
		log.Warn().Str("table", t.Name).Msg("empty or malformed tick table, continuing without positions")
		return nil
	}
	rows := make([]TickRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, TickRow{
			Tick:         asInt(r["tick"]),
			SteamID:      asID(r["steamid"]),
			Name:         asString(r["name"]),
			TeamName:     asString(r["team_name"]),
			X:            asFloat(r["X"]),
			Y:            asFloat(r["Y"]),
			Z:            asFloat(r["Z"]),
			Yaw:          asFloat(r["yaw"]),
			Health:       asInt(r["health"]),
			Armor:        asInt(r["armor"]),
			IsAlive:      asBool(r["is_alive"]),
			ActiveWeapon: asString(r["active_weapon"]),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Tick < rows[j].Tick })
	return rows
}

// Deaths normalizes the player_death event table.
func Deaths(log zerolog.Logger, t Table) []DeathRow {
	if len(t.Rows) == 0 {
		log.Warn().Str("table", t.Name).Msg("empty or malformed death table, match will have no kills")
		return nil
	}
	hasAttackerPos := t.HasColumn("attacker_X")
	rows := make([]DeathRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		d := DeathRow{
			Tick:         asInt(r["tick"]),
			AttackerID:   asID(r["attacker_steamid"]),
			AttackerName: asString(r["attacker_name"]),
			AttackerTeam: asString(r["attacker_team_name"]),
			VictimID:     asID(r["user_steamid"]),
			VictimName:   asString(r["user_name"]),
			VictimTeam:   asString(r["user_team_name"]),
			Weapon:       asString(r["weapon"]),
			Headshot:     asBool(r["headshot"]),
			Penetrated:   asBool(r["penetrated"]),
			VictimPos: model.Position{
				X:    asFloat(r["user_X"]),
				Y:    asFloat(r["user_Y"]),
				Z:    asFloat(r["user_Z"]),
				Tick: asInt(r["tick"]),
			},
		}
		if hasAttackerPos {
			d.AttackerPos = &model.Position{
				X:    asFloat(r["attacker_X"]),
				Y:    asFloat(r["attacker_Y"]),
				Z:    asFloat(r["attacker_Z"]),
				Tick: d.Tick,
			}
		}
		rows = append(rows, d)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Tick < rows[j].Tick })
	return rows
}

// RoundEnds normalizes the round_end event table, sorted by tick with the
// original processing order preserved for equal ticks.
func RoundEnds(log zerolog.Logger, t Table) []RoundEndRow {
	if len(t.Rows) == 0 {
		log.Warn().Str("table", t.Name).Msg("empty or malformed round_end table, match will have no rounds")
		return nil
	}
	rows := make([]RoundEndRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, RoundEndRow{
			Tick:        asInt(r["tick"]),
			Winner:      asString(r["winner"]),
			Reason:      asString(r["reason"]),
			BombPlanted: asBool(r["bomb_planted"]),
			BombDefused: asBool(r["bomb_defused"]),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Tick < rows[j].Tick })
	return rows
}

// Hurts normalizes the optional player_hurt table. An absent feed is normal
// and logged at debug level only: damage stats simply stay at zero.
func Hurts(log zerolog.Logger, t Table) []HurtRow {
	if len(t.Rows) == 0 {
		log.Debug().Str("table", t.Name).Msg("no damage feed, ADR will be zero")
		return nil
	}
	rows := make([]HurtRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, HurtRow{
			Tick:         asInt(r["tick"]),
			AttackerID:   asID(r["attacker_steamid"]),
			VictimID:     asID(r["user_steamid"]),
			HealthDamage: asInt(r["dmg_health"]),
			Weapon:       asString(r["weapon"]),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Tick < rows[j].Tick })
	return rows
}

func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint64:
		return int(x)
	case float64:
		return int(x)
	case float32:
		return int(x)
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		if x == "" {
			return "Unknown"
		}
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return "Unknown"
	}
}

// asID extracts a steamid column. Unlike asString there is no "Unknown"
// fallback: events with no actor (world kills, fall damage) carry no id, and
// the empty string keeps them unresolvable.
func asID(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return ""
	}
}

func asBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false
		}
		return b
	default:
		return false
	}
}
