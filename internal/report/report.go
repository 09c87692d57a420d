// Package report computes descriptive aggregates (win rates, pick rates,
// item economics) over the collected dataset. It consumes the sink files
// as opaque tables and performs no network I/O.
package report

import (
	"sort"
	"time"

	"dota-collector/internal/refdata"
)

// Summary is the collection-level report.
type Summary struct {
	TotalMatches       int         `json:"total_matches"`
	TotalPlayers       int         `json:"total_players"`
	CollectionDate     string      `json:"collection_date"`
	EarliestMatch      string      `json:"earliest_match"`
	LatestMatch        string      `json:"latest_match"`
	RadiantWinRate     float64     `json:"radiant_win_rate"`
	DireWinRate        float64     `json:"dire_win_rate"`
	AvgDurationSeconds float64     `json:"average_duration"`
	SkillDistribution  map[int]int `json:"skill_distribution"`
	RegionDistribution map[int]int `json:"regions"`
}

// Summarize builds the collection-level report over the matches table.
func Summarize(matches []MatchRow, totalPlayers int) Summary {
	s := Summary{
		TotalMatches:       len(matches),
		TotalPlayers:       totalPlayers,
		CollectionDate:     time.Now().Format("2006-01-02 15:04"),
		SkillDistribution:  make(map[int]int),
		RegionDistribution: make(map[int]int),
	}
	if len(matches) == 0 {
		return s
	}

	earliest, latest := matches[0].StartTime, matches[0].StartTime
	radiantWins := 0
	var durationSum int64
	for _, m := range matches {
		if m.StartTime < earliest {
			earliest = m.StartTime
		}
		if m.StartTime > latest {
			latest = m.StartTime
		}
		if m.RadiantWin {
			radiantWins++
		}
		durationSum += int64(m.Duration)
		s.SkillDistribution[m.Skill]++
		s.RegionDistribution[m.Region]++
	}

	s.EarliestMatch = time.Unix(earliest, 0).UTC().Format("2006-01-02")
	s.LatestMatch = time.Unix(latest, 0).UTC().Format("2006-01-02")
	s.RadiantWinRate = float64(radiantWins) / float64(len(matches))
	s.DireWinRate = 1 - s.RadiantWinRate
	s.AvgDurationSeconds = float64(durationSum) / float64(len(matches))
	return s
}

// WinByMatch indexes the radiant_win outcome by match identifier.
func WinByMatch(matches []MatchRow) map[int64]bool {
	wins := make(map[int64]bool, len(matches))
	for _, m := range matches {
		wins[m.MatchID] = m.RadiantWin
	}
	return wins
}

// won reports whether this player's side took the match. Matches missing
// from the outcome index are excluded from win-rate metrics.
func won(p PlayerRow, wins map[int64]bool) (bool, bool) {
	radiantWin, ok := wins[p.MatchID]
	if !ok {
		return false, false
	}
	return (p.Team == "radiant") == radiantWin, true
}

// HeroStat is the per-hero pick/performance aggregate.
type HeroStat struct {
	HeroID     int     `json:"hero_id"`
	Name       string  `json:"name"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
	PickRate   float64 `json:"pick_rate"`
	AvgKills   float64 `json:"avg_kills"`
	AvgDeaths  float64 `json:"avg_deaths"`
	AvgAssists float64 `json:"avg_assists"`
	AvgGPM     float64 `json:"avg_gpm"`
}

// HeroStats aggregates the players table per hero, ordered by games
// played. Heroes with fewer than minGames appearances are dropped.
func HeroStats(players []PlayerRow, wins map[int64]bool, heroes map[int]string, minGames int) []HeroStat {
	type acc struct {
		games, wins                 int
		kills, deaths, assists, gpm int
	}
	byHero := make(map[int]*acc)
	totalMatches := make(map[int64]struct{})

	for _, p := range players {
		totalMatches[p.MatchID] = struct{}{}
		a := byHero[p.HeroID]
		if a == nil {
			a = &acc{}
			byHero[p.HeroID] = a
		}
		a.games++
		a.kills += p.Kills
		a.deaths += p.Deaths
		a.assists += p.Assists
		a.gpm += p.GoldPerMin
		if w, ok := won(p, wins); ok && w {
			a.wins++
		}
	}

	stats := make([]HeroStat, 0, len(byHero))
	for id, a := range byHero {
		if a.games < minGames {
			continue
		}
		hs := HeroStat{
			HeroID:     id,
			Name:       heroes[id],
			Games:      a.games,
			Wins:       a.wins,
			WinRate:    float64(a.wins) / float64(a.games),
			AvgKills:   float64(a.kills) / float64(a.games),
			AvgDeaths:  float64(a.deaths) / float64(a.games),
			AvgAssists: float64(a.assists) / float64(a.games),
			AvgGPM:     float64(a.gpm) / float64(a.games),
		}
		if len(totalMatches) > 0 {
			hs.PickRate = float64(a.games) / float64(len(totalMatches))
		}
		stats = append(stats, hs)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Games != stats[j].Games {
			return stats[i].Games > stats[j].Games
		}
		return stats[i].HeroID < stats[j].HeroID
	})
	return stats
}

// ItemStat is the per-item purchase/economy aggregate across the six item
// slots and three backpack slots.
type ItemStat struct {
	ItemID      int     `json:"item_id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Cost        int     `json:"cost"`
	Purchases   int     `json:"total_purchases"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
}

// ItemStats aggregates item slots over the players table, ordered by
// purchase count. Slot value 0 means an empty slot and is ignored.
func ItemStats(players []PlayerRow, wins map[int64]bool, names map[int]string, details map[string]refdata.ItemDetail, minPurchases int) []ItemStat {
	type acc struct{ purchases, wins int }
	byItem := make(map[int]*acc)

	count := func(p PlayerRow, itemID int) {
		if itemID == 0 {
			return
		}
		a := byItem[itemID]
		if a == nil {
			a = &acc{}
			byItem[itemID] = a
		}
		a.purchases++
		if w, ok := won(p, wins); ok && w {
			a.wins++
		}
	}

	for _, p := range players {
		for _, id := range p.Items {
			count(p, id)
		}
		for _, id := range p.Backpack {
			count(p, id)
		}
	}

	stats := make([]ItemStat, 0, len(byItem))
	for id, a := range byItem {
		if a.purchases < minPurchases {
			continue
		}
		is := ItemStat{
			ItemID:    id,
			Name:      names[id],
			Purchases: a.purchases,
			Wins:      a.wins,
			WinRate:   float64(a.wins) / float64(a.purchases),
		}
		if d, ok := details[is.Name]; ok {
			is.DisplayName = d.DisplayName
			is.Cost = d.Cost
		}
		stats = append(stats, is)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Purchases != stats[j].Purchases {
			return stats[i].Purchases > stats[j].Purchases
		}
		return stats[i].ItemID < stats[j].ItemID
	})
	return stats
}
