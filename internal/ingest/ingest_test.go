package ingest

import (
	"testing"

	"github.com/rs/zerolog"
)

var nop = zerolog.Nop()

// ---- Defaulting ----

// TestDeaths_MissingFieldsDefault: a row missing numeric, string and bool
// columns normalizes without error and carries the documented defaults.
func TestDeaths_MissingFieldsDefault(t *testing.T) {
	tbl := Table{Name: "player_death", Rows: []Row{
		{"tick": 1500},
	}}
	rows := Deaths(nop, tbl)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	d := rows[0]
	if d.Tick != 1500 {
		t.Errorf("tick = %d, want 1500", d.Tick)
	}
	if d.Weapon != "Unknown" || d.AttackerName != "Unknown" {
		t.Errorf("missing strings should default to Unknown, got weapon=%q attacker=%q", d.Weapon, d.AttackerName)
	}
	if d.AttackerID != "" || d.VictimID != "" {
		t.Errorf("missing steamids must stay empty, got attacker=%q victim=%q", d.AttackerID, d.VictimID)
	}
	if d.Headshot || d.Penetrated {
		t.Error("missing booleans should default to false")
	}
	if d.VictimPos.X != 0 || d.VictimPos.Y != 0 {
		t.Errorf("missing position should default to origin, got %+v", d.VictimPos)
	}
}

// TestDeaths_AttackerPosRequiresColumn: AttackerPos stays nil unless the
// table carries attacker_X columns; when present it is populated per row.
func TestDeaths_AttackerPosRequiresColumn(t *testing.T) {
	without := Table{Name: "player_death", Rows: []Row{
		{"tick": 100, "user_X": 3.0},
	}}
	if rows := Deaths(nop, without); rows[0].AttackerPos != nil {
		t.Error("expected nil AttackerPos without attacker_X column")
	}

	with := Table{Name: "player_death", Rows: []Row{
		{"tick": 100, "attacker_X": 10.0, "attacker_Y": 20.0, "attacker_Z": 5.0},
	}}
	rows := Deaths(nop, with)
	ap := rows[0].AttackerPos
	if ap == nil {
		t.Fatal("expected AttackerPos with attacker_X column present")
	}
	if ap.X != 10 || ap.Y != 20 || ap.Z != 5 {
		t.Errorf("AttackerPos = %+v", *ap)
	}
}

func TestRoundEnds_OptionalBombColumns(t *testing.T) {
	tbl := Table{Name: "round_end", Rows: []Row{
		{"tick": 5000, "winner": "CT", "reason": "bomb_defused", "bomb_planted": true, "bomb_defused": true},
		{"tick": 9000, "winner": "TERRORIST", "reason": "t_killed"},
	}}
	rows := RoundEnds(nop, tbl)
	if !rows[0].BombPlanted || !rows[0].BombDefused {
		t.Error("expected bomb flags from present columns")
	}
	if rows[1].BombPlanted || rows[1].BombDefused {
		t.Error("expected false bomb flags when columns are absent")
	}
}

// ---- Empty tables ----

func TestEmptyTablesYieldNil(t *testing.T) {
	empty := Table{Name: "x"}
	if Ticks(nop, empty) != nil {
		t.Error("Ticks on empty table should be nil")
	}
	if Deaths(nop, empty) != nil {
		t.Error("Deaths on empty table should be nil")
	}
	if RoundEnds(nop, empty) != nil {
		t.Error("RoundEnds on empty table should be nil")
	}
	if Hurts(nop, empty) != nil {
		t.Error("Hurts on empty table should be nil")
	}
}

// ---- Ordering ----

func TestTicks_SortedByTick(t *testing.T) {
	tbl := Table{Name: "ticks", Rows: []Row{
		{"tick": 300, "steamid": uint64(1)},
		{"tick": 100, "steamid": uint64(2)},
		{"tick": 200, "steamid": uint64(3)},
	}}
	rows := Ticks(nop, tbl)
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Tick > rows[i].Tick {
			t.Fatalf("rows not sorted: tick %d before %d", rows[i-1].Tick, rows[i].Tick)
		}
	}
	// uint64 ids are rendered as decimal strings.
	if rows[0].SteamID != "2" {
		t.Errorf("steamid = %q, want \"2\"", rows[0].SteamID)
	}
}

// ---- Dynamic typing ----

// TestNumericCoercion: decoders variously hand ints, int64s and float64s for
// the same column; all coerce.
func TestNumericCoercion(t *testing.T) {
	tbl := Table{Name: "ticks", Rows: []Row{
		{"tick": int64(50), "health": float64(87), "X": 12, "is_alive": int(1)},
	}}
	r := Ticks(nop, tbl)[0]
	if r.Tick != 50 || r.Health != 87 || r.X != 12.0 || !r.IsAlive {
		t.Errorf("coerced row = %+v", r)
	}
}

func TestHasColumn(t *testing.T) {
	tbl := Table{Name: "x", Rows: []Row{
		{"tick": 1},
		{"tick": 2, "extra": "y"},
	}}
	if !tbl.HasColumn("extra") {
		t.Error("expected extra column to be detected on any row")
	}
	if tbl.HasColumn("nope") {
		t.Error("expected missing column to probe false")
	}
}
