package storage

import (
	"path/filepath"
	"testing"

	"github.com/pable/go-cs-replay/internal/model"
)

func openTempDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch() *model.Match {
	return &model.Match{
		MapName:  "de_nuke",
		TickRate: 64,
		TScore:   13,
		CTScore:  9,
		Players: map[string]*model.Player{
			"1001": {SteamID: "1001", Name: "alpha", Team: model.TeamT, Kills: 20, Deaths: 15, Headshots: 8, DamageDealt: 2100},
			"1002": {SteamID: "1002", Name: "bravo", Team: model.TeamCT, Kills: 15, Deaths: 20, Headshots: 3, DamageDealt: 1600},
		},
		Rounds: []model.Round{
			{Number: 1, StartTick: 1, EndTick: 5000, Winner: model.TeamT, EndReason: "t_killed",
				BombPlanted: true,
				Kills: []model.Kill{
					{Tick: 2000, KillerID: "1001", VictimID: "1002", Weapon: "ak47", Headshot: true,
						KillerPos: &model.Position{X: 10, Y: 20, Z: 5},
						VictimPos: &model.Position{X: 110, Y: 20, Z: 5},
						Distance:  100},
					{Tick: 3000, KillerID: "1002", VictimID: "1001", Weapon: "m4a1", Wallbang: true},
				}},
			{Number: 2, StartTick: 5001, EndTick: 9000, Winner: model.TeamCT, EndReason: "bomb_defused",
				BombPlanted: true, BombDefused: true},
		},
	}
}

func TestMatchExists(t *testing.T) {
	db := openTempDB(t)

	exists, err := db.MatchExists("nothing")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if exists {
		t.Error("expected no match before save")
	}

	if err := db.SaveMatch("hash1", "2026-01-15", sampleMatch()); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}
	exists, err = db.MatchExists("hash1")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after save")
	}
}

// TestSaveLoad_RoundTrip: everything written comes back, rounds in order and
// kills in their original sequence.
func TestSaveLoad_RoundTrip(t *testing.T) {
	db := openTempDB(t)
	in := sampleMatch()
	if err := db.SaveMatch("hash1", "2026-01-15", in); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}

	out, err := db.LoadMatch("hash1")
	if err != nil {
		t.Fatalf("LoadMatch: %v", err)
	}

	if out.MapName != in.MapName || out.TickRate != in.TickRate {
		t.Errorf("header = %s/%v", out.MapName, out.TickRate)
	}
	if out.TScore != 13 || out.CTScore != 9 {
		t.Errorf("score = %d:%d", out.TScore, out.CTScore)
	}
	if len(out.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(out.Players))
	}
	p := out.Player("1001")
	if p == nil || p.Name != "alpha" || p.Team != model.TeamT || p.Kills != 20 || p.DamageDealt != 2100 {
		t.Errorf("player 1001 = %+v", p)
	}

	if len(out.Rounds) != 2 {
		t.Fatalf("rounds = %d, want 2", len(out.Rounds))
	}
	r1 := out.Rounds[0]
	if r1.Number != 1 || r1.StartTick != 1 || r1.EndTick != 5000 || r1.Winner != model.TeamT {
		t.Errorf("round 1 = %+v", r1)
	}
	if !r1.BombPlanted || r1.BombDefused {
		t.Errorf("round 1 bomb flags = %v/%v", r1.BombPlanted, r1.BombDefused)
	}
	if len(r1.Kills) != 2 {
		t.Fatalf("round 1 kills = %d, want 2", len(r1.Kills))
	}
	k := r1.Kills[0]
	if k.KillerID != "1001" || !k.Headshot || k.Distance != 100 {
		t.Errorf("kill 1 = %+v", k)
	}
	if k.KillerPos == nil || k.KillerPos.X != 10 || k.VictimPos == nil || k.VictimPos.X != 110 {
		t.Errorf("kill 1 positions = %+v / %+v", k.KillerPos, k.VictimPos)
	}
	if r1.Kills[1].KillerPos != nil {
		t.Error("kill without positions should load a nil KillerPos")
	}
	if !r1.Kills[1].Wallbang {
		t.Error("wallbang flag lost")
	}

	if out.Rounds[1].EndReason != "bomb_defused" || !out.Rounds[1].BombDefused {
		t.Errorf("round 2 = %+v", out.Rounds[1])
	}
}

// TestSaveMatch_Replaces: re-saving the same hash replaces children instead
// of accumulating them.
func TestSaveMatch_Replaces(t *testing.T) {
	db := openTempDB(t)
	if err := db.SaveMatch("hash1", "2026-01-15", sampleMatch()); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}
	if err := db.SaveMatch("hash1", "2026-01-16", sampleMatch()); err != nil {
		t.Fatalf("SaveMatch (again): %v", err)
	}

	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	s := matches[0]
	if s.Rounds != 2 || s.Kills != 2 || s.Players != 2 {
		t.Errorf("counts after re-save = rounds:%d kills:%d players:%d", s.Rounds, s.Kills, s.Players)
	}
	if s.MatchDate != "2026-01-16" {
		t.Errorf("date = %s, want the re-save date", s.MatchDate)
	}
}

func TestListMatches_NewestFirst(t *testing.T) {
	db := openTempDB(t)
	if err := db.SaveMatch("old", "2026-01-01", sampleMatch()); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}
	if err := db.SaveMatch("new", "2026-02-01", sampleMatch()); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}

	matches, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 2 || matches[0].DemoHash != "new" {
		t.Errorf("order = %+v", matches)
	}
}

func TestLoadMatch_Unknown(t *testing.T) {
	db := openTempDB(t)
	if _, err := db.LoadMatch("missing"); err == nil {
		t.Error("expected error for unknown hash")
	}
}
