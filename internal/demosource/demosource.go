// Package demosource adapts the demoinfocs decoding library into the raw
// tabular feeds the rest of the pipeline consumes. It is the only package
// that touches the binary demo format, and the only source of a fatal error:
// everything downstream degrades instead of failing.
package demosource

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	demoinfocs "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs"
	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/events"
	"github.com/rs/zerolog"

	"github.com/pable/go-cs-replay/internal/ingest"
)

// ErrSourceUnavailable means the upstream decoder failed entirely. This is
// fatal: it propagates to the caller and no partial feed is produced.
var ErrSourceUnavailable = errors.New("demo source unavailable")

// DefaultSampleFPS is how many position snapshots per second of game time
// the tick table carries.
const DefaultSampleFPS = 4.0

// Feed is the raw output of one decoded demo.
type Feed struct {
	DemoHash string
	MapName  string
	TickRate float64

	Ticks     ingest.Table
	Deaths    ingest.Table
	RoundEnds ingest.Table
	Hurts     ingest.Table
}

// Extract decodes the demo at path into raw tables, sampling positions at
// sampleFPS (DefaultSampleFPS when <= 0).
func Extract(log zerolog.Logger, path string, sampleFPS float64) (*Feed, error) {
	if sampleFPS <= 0 {
		sampleFPS = DefaultSampleFPS
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	// Hash the file for an idempotency key, then rewind for the parser.
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("%w: hash demo: %v", ErrSourceUnavailable, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek demo: %v", ErrSourceUnavailable, err)
	}

	p := demoinfocs.NewParser(f)
	defer p.Close()

	feed := &Feed{
		DemoHash:  fmt.Sprintf("%x", h.Sum(nil)),
		Ticks:     ingest.Table{Name: "ticks"},
		Deaths:    ingest.Table{Name: "player_death"},
		RoundEnds: ingest.Table{Name: "round_end"},
		Hurts:     ingest.Table{Name: "player_hurt"},
	}

	var (
		bombPlanted bool
		bombDefused bool
		nextSample  int
		sampleStep  int
	)

	p.RegisterEventHandler(func(e events.RoundStart) {
		bombPlanted = false
		bombDefused = false
	})

	p.RegisterEventHandler(func(e events.BombPlanted) {
		bombPlanted = true
	})

	p.RegisterEventHandler(func(e events.BombDefused) {
		bombDefused = true
	})

	p.RegisterEventHandler(func(e events.RoundEnd) {
		if p.GameState().IsWarmupPeriod() {
			return
		}
		feed.RoundEnds.Rows = append(feed.RoundEnds.Rows, ingest.Row{
			"tick":         p.GameState().IngameTick(),
			"winner":       teamName(e.Winner),
			"reason":       int(e.Reason),
			"bomb_planted": bombPlanted,
			"bomb_defused": bombDefused,
		})
	})

	p.RegisterEventHandler(func(e events.Kill) {
		if p.GameState().IsWarmupPeriod() {
			return
		}
		row := ingest.Row{
			"tick":       p.GameState().IngameTick(),
			"headshot":   e.IsHeadshot,
			"penetrated": e.PenetratedObjects > 0,
		}
		if e.Weapon != nil {
			row["weapon"] = e.Weapon.Type.String()
		}
		if e.Killer != nil {
			pos := e.Killer.Position()
			row["attacker_steamid"] = steamID(e.Killer)
			row["attacker_name"] = e.Killer.Name
			row["attacker_team_name"] = teamName(e.Killer.Team)
			row["attacker_X"] = pos.X
			row["attacker_Y"] = pos.Y
			row["attacker_Z"] = pos.Z
		}
		if e.Victim != nil {
			pos := e.Victim.Position()
			row["user_steamid"] = steamID(e.Victim)
			row["user_name"] = e.Victim.Name
			row["user_team_name"] = teamName(e.Victim.Team)
			row["user_X"] = pos.X
			row["user_Y"] = pos.Y
			row["user_Z"] = pos.Z
		}
		feed.Deaths.Rows = append(feed.Deaths.Rows, row)
	})

	p.RegisterEventHandler(func(e events.PlayerHurt) {
		if p.GameState().IsWarmupPeriod() {
			return
		}
		if e.Attacker == nil || e.Player == nil {
			return
		}
		row := ingest.Row{
			"tick":             p.GameState().IngameTick(),
			"attacker_steamid": steamID(e.Attacker),
			"user_steamid":     steamID(e.Player),
			"dmg_health":       e.HealthDamage,
		}
		if e.Weapon != nil {
			row["weapon"] = e.Weapon.Type.String()
		}
		feed.Hurts.Rows = append(feed.Hurts.Rows, row)
	})

	p.RegisterEventHandler(func(e events.FrameDone) {
		gs := p.GameState()
		if gs.IsWarmupPeriod() {
			return
		}
		tick := gs.IngameTick()
		if sampleStep == 0 {
			tr := p.TickRate()
			if tr <= 0 {
				tr = 64
			}
			sampleStep = int(tr / sampleFPS)
			if sampleStep < 1 {
				sampleStep = 1
			}
		}
		if tick < nextSample {
			return
		}
		nextSample = tick + sampleStep

		for _, pl := range gs.Participants().Playing() {
			if pl == nil || pl.SteamID64 == 0 {
				continue
			}
			pos := pl.Position()
			row := ingest.Row{
				"tick":      tick,
				"steamid":   steamID(pl),
				"name":      pl.Name,
				"team_name": teamName(pl.Team),
				"X":         pos.X,
				"Y":         pos.Y,
				"Z":         pos.Z,
				"yaw":       float64(pl.ViewDirectionX()),
				"health":    pl.Health(),
				"armor":     pl.Armor(),
				"is_alive":  pl.IsAlive(),
			}
			if w := pl.ActiveWeapon(); w != nil {
				row["active_weapon"] = w.Type.String()
			}
			feed.Ticks.Rows = append(feed.Ticks.Rows, row)
		}
	})

	if err := p.ParseToEnd(); err != nil {
		return nil, fmt.Errorf("%w: parse demo: %v", ErrSourceUnavailable, err)
	}

	feed.MapName = p.Header().MapName
	feed.TickRate = p.TickRate()

	log.Info().
		Str("map", feed.MapName).
		Int("tick_rows", len(feed.Ticks.Rows)).
		Int("deaths", len(feed.Deaths.Rows)).
		Int("round_ends", len(feed.RoundEnds.Rows)).
		Msg("demo decoded")
	return feed, nil
}

func steamID(p *common.Player) string {
	return strconv.FormatUint(p.SteamID64, 10)
}

func teamName(t common.Team) string {
	switch t {
	case common.TeamTerrorists:
		return "TERRORIST"
	case common.TeamCounterTerrorists:
		return "CT"
	case common.TeamSpectators:
		return "SPECTATOR"
	default:
		return "UNASSIGNED"
	}
}
