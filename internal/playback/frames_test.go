package playback

import (
	"testing"

	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/model"
)

func tickRow(tick int, steamID string, x float64) ingest.TickRow {
	return ingest.TickRow{Tick: tick, SteamID: steamID, Name: "p" + steamID, TeamName: "CT", X: x, Health: 100, IsAlive: true}
}

// TestBuildFrames_Downsamples: 64hz ticks at 4 samples/s keep every 16th
// tick.
func TestBuildFrames_Downsamples(t *testing.T) {
	var rows []ingest.TickRow
	for tick := 0; tick < 64; tick++ {
		rows = append(rows, tickRow(tick, "1001", float64(tick)))
	}
	frames := BuildFrames(rows, 64, 4)

	if len(frames) != 4 {
		t.Fatalf("expected 4 frames from 1s of ticks, got %d", len(frames))
	}
	for i, wantTick := range []int{0, 16, 32, 48} {
		if frames[i].Tick != wantTick {
			t.Errorf("frame %d tick = %d, want %d", i, frames[i].Tick, wantTick)
		}
	}
}

// TestBuildFrames_GroupsPlayersByTick: all rows sharing a sampled tick land
// in the same frame.
func TestBuildFrames_GroupsPlayersByTick(t *testing.T) {
	rows := []ingest.TickRow{
		tickRow(0, "1001", 1),
		tickRow(0, "1002", 2),
		tickRow(16, "1001", 3),
		tickRow(16, "1002", 4),
	}
	frames := BuildFrames(rows, 64, 4)

	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if len(frames[0].Players) != 2 || len(frames[1].Players) != 2 {
		t.Errorf("players per frame = %d/%d, want 2/2", len(frames[0].Players), len(frames[1].Players))
	}
	if frames[0].Players[1].SteamID != "1002" {
		t.Errorf("second player = %q", frames[0].Players[1].SteamID)
	}
}

func TestBuildFrames_Empty(t *testing.T) {
	if frames := BuildFrames(nil, 64, 4); frames != nil {
		t.Errorf("expected nil frames for empty input, got %d", len(frames))
	}
}

// TestBuildFrames_SparseTicks: demos sampled coarser than the requested rate
// just keep every sample.
func TestBuildFrames_SparseTicks(t *testing.T) {
	rows := []ingest.TickRow{
		tickRow(0, "1001", 0),
		tickRow(100, "1001", 1),
		tickRow(200, "1001", 2),
	}
	frames := BuildFrames(rows, 64, 4)
	if len(frames) != 3 {
		t.Errorf("expected all sparse samples kept, got %d frames", len(frames))
	}
}

func TestBuildFrames_StateFields(t *testing.T) {
	rows := []ingest.TickRow{{
		Tick: 0, SteamID: "1001", Name: "zed", TeamName: "TERRORIST",
		X: 1, Y: 2, Z: 3, Yaw: 90, Health: 73, Armor: 50, IsAlive: true, ActiveWeapon: "awp",
	}}
	f := BuildFrames(rows, 64, 4)[0]
	p := f.Players[0]
	if p.Team != model.TeamT || p.Yaw != 90 || p.Health != 73 || p.Weapon != "awp" || !p.Alive {
		t.Errorf("player state = %+v", p)
	}
	if p.Pos.X != 1 || p.Pos.Y != 2 || p.Pos.Z != 3 {
		t.Errorf("position = %+v", p.Pos)
	}
}
