package rebuild

import (
	"github.com/rs/zerolog"

	"github.com/pable/go-cs-replay/internal/ingest"
	"github.com/pable/go-cs-replay/internal/model"
)

// binRounds partitions the tick axis into non-overlapping round intervals
// from round_end events. Each event i produces
// Round{StartTick: previous.EndTick + 1, EndTick: event.Tick}; the virtual
// previous end before the first round is tick 0. A candidate whose interval
// would be empty or inverted is dropped. When two events share a tick the
// later one wins: it overwrites the winner and reason of the round the
// earlier event produced.
func binRounds(log zerolog.Logger, ends []ingest.RoundEndRow, diag *Diagnostics) []model.Round {
	var rounds []model.Round
	prevEnd := 0
	for _, e := range ends {
		if e.Tick == prevEnd && len(rounds) > 0 {
			last := &rounds[len(rounds)-1]
			last.Winner = model.ParseTeam(e.Winner)
			last.EndReason = e.Reason
			last.BombPlanted = e.BombPlanted
			last.BombDefused = e.BombDefused
			log.Warn().Int("tick", e.Tick).Int("round", last.Number).
				Msg("duplicate round_end tick, later event wins")
			continue
		}
		start := prevEnd + 1
		if e.Tick <= prevEnd {
			diag.DroppedRounds++
			log.Warn().Err(ErrRoundBoundary).Int("tick", e.Tick).Int("start_tick", start).
				Msg("dropping out-of-order round_end")
			continue
		}
		rounds = append(rounds, model.Round{
			Number:      len(rounds) + 1,
			StartTick:   start,
			EndTick:     e.Tick,
			Winner:      model.ParseTeam(e.Winner),
			EndReason:   e.Reason,
			BombPlanted: e.BombPlanted,
			BombDefused: e.BombDefused,
		})
		prevEnd = e.Tick
	}
	return rounds
}

// findRound locates the round containing tick by binary search over the
// sorted, non-overlapping intervals. Returns -1 when no round contains it.
func findRound(rounds []model.Round, tick int) int {
	lo, hi := 0, len(rounds)
	for lo < hi {
		mid := (lo + hi) / 2
		if rounds[mid].EndTick < tick {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(rounds) && rounds[lo].Contains(tick) {
		return lo
	}
	return -1
}
