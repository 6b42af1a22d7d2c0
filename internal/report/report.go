// Package report renders match views as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cs-replay/internal/model"
	"github.com/pable/go-cs-replay/internal/radar"
	"github.com/pable/go-cs-replay/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintSummary prints a one-line match header.
func PrintSummary(w io.Writer, s stats.Summary) {
	winner := "Draw"
	if s.Winner != model.TeamUnassigned {
		winner = s.Winner.String()
	}
	fmt.Fprintf(w, "\nMap: %s  |  Score: T %d – CT %d  |  Winner: %s  |  Rounds: %d  |  Kills: %d  |  Players: %d\n\n",
		s.MapName, s.TScore, s.CTScore, winner, s.Rounds, s.Kills, s.Players)
}

// PrintLeaderboard prints the player leaderboard. If focusSteamID is
// non-empty, that player's row is marked with ">".
func PrintLeaderboard(w io.Writer, lines []stats.PlayerLine, focusSteamID string) {
	table := newTable(w)
	table.Header(" ", "NAME", "TEAM", "K", "D", "K/D", "HS", "HS%", "DMG", "ADR")
	for _, l := range lines {
		marker := " "
		if focusSteamID != "" && l.SteamID == focusSteamID {
			marker = ">"
		}
		table.Append(
			marker,
			l.Name,
			l.Team.String(),
			strconv.Itoa(l.Kills),
			strconv.Itoa(l.Deaths),
			fmt.Sprintf("%.2f", l.KD),
			strconv.Itoa(l.Headshots),
			fmt.Sprintf("%.0f%%", l.HSPercent),
			strconv.Itoa(l.Damage),
			fmt.Sprintf("%.1f", l.ADR),
		)
	}
	table.Render()
}

// PrintTeams prints the side-by-side team comparison.
func PrintTeams(w io.Writer, t, ct stats.TeamRollup) {
	table := newTable(w)
	table.Header("SIDE", "SCORE", "PLAYERS", "K", "D", "K/D", "AVG_K", "AVG_D", "AVG_DMG")
	for _, r := range []stats.TeamRollup{t, ct} {
		table.Append(
			r.Team.String(),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Players),
			strconv.Itoa(r.Kills),
			strconv.Itoa(r.Deaths),
			fmt.Sprintf("%.2f", r.KD),
			fmt.Sprintf("%.1f", r.AvgKills),
			fmt.Sprintf("%.1f", r.AvgDeaths),
			fmt.Sprintf("%.1f", r.AvgDamage),
		)
	}
	table.Render()
}

// PrintRounds prints one row per round.
func PrintRounds(w io.Writer, m *model.Match) {
	table := newTable(w)
	table.Header("ROUND", "START", "END", "WINNER", "REASON", "KILLS", "BOMB")
	for i := range m.Rounds {
		r := &m.Rounds[i]
		bomb := "-"
		switch {
		case r.BombDefused:
			bomb = "defused"
		case r.BombPlanted:
			bomb = "planted"
		}
		table.Append(
			strconv.Itoa(r.Number),
			strconv.Itoa(r.StartTick),
			strconv.Itoa(r.EndTick),
			r.Winner.String(),
			r.EndReason,
			strconv.Itoa(len(r.Kills)),
			bomb,
		)
	}
	table.Render()
}

// PrintWeapons prints the weapon table.
func PrintWeapons(w io.Writer, lines []stats.WeaponLine) {
	table := newTable(w)
	table.Header("WEAPON", "K", "HS", "HS%", "USERS")
	for _, l := range lines {
		table.Append(
			l.Weapon,
			strconv.Itoa(l.Kills),
			strconv.Itoa(l.Headshots),
			fmt.Sprintf("%.0f%%", l.HSPercent),
			strconv.Itoa(l.UniqueUsers),
		)
	}
	table.Render()
}

// PrintKillFeed prints the chronological kill feed.
func PrintKillFeed(w io.Writer, feed []stats.KillFeedEntry) {
	table := newTable(w)
	table.Header("ROUND", "TIME", "KILLER", "WEAPON", "VICTIM", "DIST", "FLAGS")
	for _, e := range feed {
		flags := ""
		if e.Headshot {
			flags += "HS "
		}
		if e.Wallbang {
			flags += "WB "
		}
		if e.Teamkill {
			flags += "TK"
		}
		table.Append(
			strconv.Itoa(e.Round),
			fmt.Sprintf("%.1fs", e.Time),
			fmt.Sprintf("%s (%s)", e.KillerName, e.KillerTeam),
			e.Weapon,
			fmt.Sprintf("%s (%s)", e.VictimName, e.VictimTeam),
			fmt.Sprintf("%.0f", e.Distance),
			flags,
		)
	}
	table.Render()
}

// PrintMatchList prints stored match summaries.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("HASH", "MAP", "DATE", "SCORE", "ROUNDS", "KILLS", "PLAYERS")
	for _, s := range matches {
		hash := s.DemoHash
		if len(hash) > 12 {
			hash = hash[:12]
		}
		table.Append(
			hash,
			s.MapName,
			s.MatchDate,
			fmt.Sprintf("T %d – CT %d", s.TScore, s.CTScore),
			strconv.Itoa(s.Rounds),
			strconv.Itoa(s.Kills),
			strconv.Itoa(s.Players),
		)
	}
	table.Render()
}

// PrintMapTable prints the calibration table.
func PrintMapTable(w io.Writer, t radar.Table) {
	table := newTable(w)
	table.Header("MAP", "MIN_X", "MAX_X", "MIN_Y", "MAX_Y")
	for _, name := range t.Names() {
		b, _ := t.Lookup(name)
		table.Append(
			name,
			fmt.Sprintf("%.0f", b.MinX),
			fmt.Sprintf("%.0f", b.MaxX),
			fmt.Sprintf("%.0f", b.MinY),
			fmt.Sprintf("%.0f", b.MaxY),
		)
	}
	table.Render()
}
