package model

import (
	"math"
	"testing"
)

// ---- Team normalization ----

func TestParseTeam(t *testing.T) {
	cases := []struct {
		raw  string
		want Team
	}{
		{"CT", TeamCT},
		{"ct", TeamCT},
		{"COUNTER-TERRORIST", TeamCT},
		{"CounterTerrorist", TeamCT},
		{"TERRORIST", TeamT},
		{"Terrorist", TeamT},
		{"T", TeamT},
		{" t ", TeamT},
		{"SPECTATOR", TeamSpectator},
		{"Spec", TeamSpectator},
		{"Unknown", TeamUnassigned},
		{"", TeamUnassigned},
	}
	for _, c := range cases {
		if got := ParseTeam(c.raw); got != c.want {
			t.Errorf("ParseTeam(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

// TestParseTeam_SpectatorIsNotCT: "SPECTATOR" contains the substring "CT",
// which must not win over the spectator match.
func TestParseTeam_SpectatorIsNotCT(t *testing.T) {
	if got := ParseTeam("SPECTATOR"); got == TeamCT {
		t.Error("SPECTATOR parsed as CT via substring match")
	}
}

// TestParseTeam_CounterTerroristIsNotT: "COUNTER-TERRORIST" contains
// "TERRORIST", which must not win over the CT match.
func TestParseTeam_CounterTerroristIsNotT(t *testing.T) {
	if got := ParseTeam("COUNTER-TERRORIST"); got != TeamCT {
		t.Errorf("COUNTER-TERRORIST parsed as %v, want CT", got)
	}
}

// ---- Player ratios ----

func TestKDRatio_ZeroDeaths(t *testing.T) {
	p := Player{Kills: 7}
	if got := p.KDRatio(); got != 7.0 {
		t.Errorf("KDRatio with zero deaths = %v, want 7", got)
	}
}

func TestHSPercent_ZeroKills(t *testing.T) {
	p := Player{Headshots: 3}
	if got := p.HSPercent(); got != 0 {
		t.Errorf("HSPercent with zero kills = %v, want 0", got)
	}
}

func TestHSPercent(t *testing.T) {
	p := Player{Kills: 4, Headshots: 1}
	if got := p.HSPercent(); math.Abs(got-25.0) > 1e-9 {
		t.Errorf("HSPercent = %v, want 25", got)
	}
}

// ---- Geometry ----

func TestDistanceTo(t *testing.T) {
	a := Position{X: 0, Y: 0, Z: 0}
	b := Position{X: 3, Y: 4, Z: 0}
	if got := a.DistanceTo(b); math.Abs(got-5.0) > 1e-9 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
}

func TestRoundContains(t *testing.T) {
	r := Round{StartTick: 1001, EndTick: 2500}
	for _, tick := range []int{1001, 1500, 2500} {
		if !r.Contains(tick) {
			t.Errorf("expected round to contain tick %d", tick)
		}
	}
	for _, tick := range []int{1000, 2501} {
		if r.Contains(tick) {
			t.Errorf("expected round to not contain tick %d", tick)
		}
	}
}

func TestMatchWinner(t *testing.T) {
	if w := (&Match{TScore: 13, CTScore: 7}).Winner(); w != TeamT {
		t.Errorf("Winner = %v, want T", w)
	}
	if w := (&Match{TScore: 5, CTScore: 13}).Winner(); w != TeamCT {
		t.Errorf("Winner = %v, want CT", w)
	}
	if w := (&Match{TScore: 12, CTScore: 12}).Winner(); w != TeamUnassigned {
		t.Errorf("Winner on draw = %v, want unassigned", w)
	}
}
