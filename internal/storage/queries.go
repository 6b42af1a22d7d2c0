package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-cs-replay/internal/model"
)

// MatchExists returns true if a match with the given demo hash is stored.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveMatch stores the finalized match under the demo hash. Re-parsing the
// same demo replaces the previous record.
func (db *DB) SaveMatch(hash, date string, m *model.Match) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO matches(hash, map_name, match_date, tick_rate, t_score, ct_score)
		VALUES (?, ?, ?, ?, ?, ?)`,
		hash, m.MapName, date, m.TickRate, m.TScore, m.CTScore,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	// Clear children first so re-parses don't accumulate rows.
	for _, table := range []string{"players", "rounds", "kills"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE match_hash = ?", hash); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	pstmt, err := tx.Prepare(`
		INSERT INTO players(match_hash, steam_id, name, team, kills, deaths, headshots, damage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer pstmt.Close()
	for _, p := range m.Players {
		if _, err := pstmt.Exec(hash, p.SteamID, p.Name, int(p.Team), p.Kills, p.Deaths, p.Headshots, p.DamageDealt); err != nil {
			return fmt.Errorf("insert player %s: %w", p.SteamID, err)
		}
	}

	rstmt, err := tx.Prepare(`
		INSERT INTO rounds(match_hash, number, start_tick, end_tick, winner, end_reason, bomb_planted, bomb_defused)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer rstmt.Close()

	kstmt, err := tx.Prepare(`
		INSERT INTO kills(match_hash, round_number, seq, tick, killer_id, victim_id, weapon,
			headshot, wallbang, teamkill, distance,
			killer_x, killer_y, killer_z, victim_x, victim_y, victim_z)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer kstmt.Close()

	for ri := range m.Rounds {
		r := &m.Rounds[ri]
		if _, err := rstmt.Exec(hash, r.Number, r.StartTick, r.EndTick, int(r.Winner), r.EndReason,
			boolInt(r.BombPlanted), boolInt(r.BombDefused)); err != nil {
			return fmt.Errorf("insert round %d: %w", r.Number, err)
		}
		for seq, k := range r.Kills {
			kx, ky, kz := posCols(k.KillerPos)
			vx, vy, vz := posCols(k.VictimPos)
			if _, err := kstmt.Exec(hash, r.Number, seq, k.Tick, k.KillerID, k.VictimID, k.Weapon,
				boolInt(k.Headshot), boolInt(k.Wallbang), boolInt(k.Teamkill), k.Distance,
				kx, ky, kz, vx, vy, vz); err != nil {
				return fmt.Errorf("insert kill round %d seq %d: %w", r.Number, seq, err)
			}
		}
	}

	return tx.Commit()
}

// ListMatches returns summaries of all stored matches, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT m.hash, m.map_name, m.match_date, m.tick_rate, m.t_score, m.ct_score,
			(SELECT COUNT(1) FROM rounds r WHERE r.match_hash = m.hash),
			(SELECT COUNT(1) FROM kills k WHERE k.match_hash = m.hash),
			(SELECT COUNT(1) FROM players p WHERE p.match_hash = m.hash)
		FROM matches m
		ORDER BY m.match_date DESC, m.hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.DemoHash, &s.MapName, &s.MatchDate, &s.TickRate,
			&s.TScore, &s.CTScore, &s.Rounds, &s.Kills, &s.Players); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LoadMatch rebuilds the full match model for one stored demo hash.
func (db *DB) LoadMatch(hash string) (*model.Match, error) {
	m := &model.Match{Players: make(map[string]*model.Player)}

	err := db.conn.QueryRow(
		"SELECT map_name, tick_rate, t_score, ct_score FROM matches WHERE hash = ?", hash,
	).Scan(&m.MapName, &m.TickRate, &m.TScore, &m.CTScore)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no match with hash %s", hash)
	}
	if err != nil {
		return nil, err
	}

	prows, err := db.conn.Query(
		"SELECT steam_id, name, team, kills, deaths, headshots, damage FROM players WHERE match_hash = ?", hash)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var p model.Player
		var team int
		if err := prows.Scan(&p.SteamID, &p.Name, &team, &p.Kills, &p.Deaths, &p.Headshots, &p.DamageDealt); err != nil {
			return nil, err
		}
		p.Team = model.Team(team)
		m.Players[p.SteamID] = &p
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	rrows, err := db.conn.Query(`
		SELECT number, start_tick, end_tick, winner, end_reason, bomb_planted, bomb_defused
		FROM rounds WHERE match_hash = ? ORDER BY number`, hash)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()
	for rrows.Next() {
		var r model.Round
		var winner, planted, defused int
		if err := rrows.Scan(&r.Number, &r.StartTick, &r.EndTick, &winner, &r.EndReason, &planted, &defused); err != nil {
			return nil, err
		}
		r.Winner = model.Team(winner)
		r.BombPlanted = planted != 0
		r.BombDefused = defused != 0
		m.Rounds = append(m.Rounds, r)
	}
	if err := rrows.Err(); err != nil {
		return nil, err
	}

	roundIdx := make(map[int]int, len(m.Rounds))
	for i := range m.Rounds {
		roundIdx[m.Rounds[i].Number] = i
	}

	krows, err := db.conn.Query(`
		SELECT round_number, tick, killer_id, victim_id, weapon, headshot, wallbang, teamkill, distance,
			killer_x, killer_y, killer_z, victim_x, victim_y, victim_z
		FROM kills WHERE match_hash = ? ORDER BY round_number, seq`, hash)
	if err != nil {
		return nil, err
	}
	defer krows.Close()
	for krows.Next() {
		var k model.Kill
		var roundNumber, headshot, wallbang, teamkill int
		var kx, ky, kz, vx, vy, vz sql.NullFloat64
		if err := krows.Scan(&roundNumber, &k.Tick, &k.KillerID, &k.VictimID, &k.Weapon,
			&headshot, &wallbang, &teamkill, &k.Distance,
			&kx, &ky, &kz, &vx, &vy, &vz); err != nil {
			return nil, err
		}
		k.Headshot = headshot != 0
		k.Wallbang = wallbang != 0
		k.Teamkill = teamkill != 0
		k.KillerPos = posFromCols(kx, ky, kz, k.Tick)
		k.VictimPos = posFromCols(vx, vy, vz, k.Tick)
		if i, ok := roundIdx[roundNumber]; ok {
			m.Rounds[i].Kills = append(m.Rounds[i].Kills, k)
		}
	}
	return m, krows.Err()
}

func posCols(p *model.Position) (x, y, z any) {
	if p == nil {
		return nil, nil, nil
	}
	return p.X, p.Y, p.Z
}

func posFromCols(x, y, z sql.NullFloat64, tick int) *model.Position {
	if !x.Valid || !y.Valid || !z.Valid {
		return nil
	}
	return &model.Position{X: x.Float64, Y: y.Float64, Z: z.Float64, Tick: tick}
}
