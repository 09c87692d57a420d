// Package mapper turns raw OpenDota match payloads into the tabular records
// the sinks persist. Mapping is pure: no I/O, and a malformed payload yields
// empty results instead of an error.
package mapper

import (
	"encoding/json"
	"log"
	"time"

	"dota-collector/internal/opendota"
)

// Slots below this value belong to the radiant side.
const direSlotThreshold = 128

// Summarize maps one match detail payload to a summary record.
// Returns nil for a nil payload. Missing fields decode to their zero
// values; a side with no players leaves its aggregate group nil.
func Summarize(detail *opendota.MatchDetail) *MatchSummary {
	if detail == nil {
		return nil
	}

	summary := &MatchSummary{
		MatchID:      detail.MatchID,
		StartTime:    detail.StartTime,
		Duration:     detail.Duration,
		GameMode:     detail.GameMode,
		LobbyType:    detail.LobbyType,
		RadiantWin:   detail.RadiantWin,
		LeagueID:     detail.LeagueID,
		LeagueName:   detail.LeagueName,
		SeriesID:     detail.SeriesID,
		SeriesType:   detail.SeriesType,
		Skill:        detail.Skill,
		Patch:        detail.Patch,
		Region:       detail.Region,
		RadiantScore: detail.RadiantScore,
		DireScore:    detail.DireScore,
		PlayersCount: len(detail.Players),
		ParsedAt:     time.Now().Format(time.RFC3339),
	}

	var radiant, dire []opendota.Player
	for _, raw := range detail.Players {
		var p opendota.Player
		if err := json.Unmarshal(raw, &p); err != nil {
			continue // counted in PlayersCount, excluded from aggregates
		}
		if p.PlayerSlot < direSlotThreshold {
			radiant = append(radiant, p)
		} else {
			dire = append(dire, p)
		}
	}

	summary.Radiant = sideTotals(radiant)
	summary.Dire = sideTotals(dire)
	return summary
}

func sideTotals(players []opendota.Player) *SideTotals {
	if len(players) == 0 {
		return nil
	}
	totals := &SideTotals{}
	for _, p := range players {
		totals.Kills += p.Kills
		totals.Deaths += p.Deaths
		totals.Assists += p.Assists
		totals.AvgGPM += float64(p.GoldPerMin)
		totals.AvgXPM += float64(p.XPPerMin)
		totals.LastHits += p.LastHits
		totals.Denies += p.Denies
	}
	totals.AvgGPM /= float64(len(players))
	totals.AvgXPM /= float64(len(players))
	return totals
}

// PlayerRows maps one match detail payload to its player records, one per
// player. A malformed individual player entry is skipped with a log line
// without aborting the rest of the match's player list.
func PlayerRows(detail *opendota.MatchDetail) []*PlayerRow {
	if detail == nil {
		return nil
	}

	rows := make([]*PlayerRow, 0, len(detail.Players))
	for _, raw := range detail.Players {
		var p opendota.Player
		if err := json.Unmarshal(raw, &p); err != nil {
			log.Printf("[Mapper] Skipping malformed player in match %d: %v", detail.MatchID, err)
			continue
		}

		level := p.Level
		if level == 0 {
			level = 1
		}

		team := "radiant"
		if p.PlayerSlot >= direSlotThreshold {
			team = "dire"
		}

		rows = append(rows, &PlayerRow{
			MatchID:     detail.MatchID,
			PlayerSlot:  p.PlayerSlot,
			AccountID:   p.AccountID,
			HeroID:      p.HeroID,
			Kills:       p.Kills,
			Deaths:      p.Deaths,
			Assists:     p.Assists,
			GoldPerMin:  p.GoldPerMin,
			XPPerMin:    p.XPPerMin,
			LastHits:    p.LastHits,
			Denies:      p.Denies,
			HeroDamage:  p.HeroDamage,
			TowerDamage: p.TowerDamage,
			HeroHealing: p.HeroHealing,
			Level:       level,
			NetWorth:    p.TotalGold,
			Items:       [6]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5},
			Backpack:    [3]int{p.Backpack0, p.Backpack1, p.Backpack2},
			Team:        team,
		})
	}
	return rows
}
