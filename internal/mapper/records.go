package mapper

import "strconv"

// SideTotals holds the aggregated stats for one side of a match.
// A side with no players has no totals at all, so MatchSummary carries
// these as optional pointers.
type SideTotals struct {
	Kills    int
	Deaths   int
	Assists  int
	AvgGPM   float64
	AvgXPM   float64
	LastHits int
	Denies   int
}

// MatchSummary is one row of the matches sink: the match-level fields plus
// per-side aggregates. Exactly one summary is written per match identifier.
type MatchSummary struct {
	MatchID      int64
	StartTime    int64
	Duration     int
	GameMode     int
	LobbyType    int
	RadiantWin   bool
	LeagueID     int64
	LeagueName   string
	SeriesID     int64
	SeriesType   int
	Skill        int
	Patch        int
	Region       int
	RadiantScore int
	DireScore    int
	PlayersCount int
	ParsedAt     string

	Radiant *SideTotals // nil when the radiant side had no players
	Dire    *SideTotals // nil when the dire side had no players
}

var matchHeader = []string{
	"match_id", "start_time", "duration", "game_mode", "lobby_type",
	"radiant_win", "leagueid", "league_name", "series_id", "series_type",
	"skill", "patch", "region", "radiant_score", "dire_score",
	"players_count", "parsed_timestamp",
	"radiant_total_kills", "radiant_total_deaths", "radiant_total_assists",
	"radiant_avg_gpm", "radiant_avg_xpm", "radiant_total_lh", "radiant_total_dn",
	"dire_total_kills", "dire_total_deaths", "dire_total_assists",
	"dire_avg_gpm", "dire_avg_xpm", "dire_total_lh", "dire_total_dn",
}

// Header returns the fixed column set of the matches sink.
func (m *MatchSummary) Header() []string {
	return matchHeader
}

// Row renders the summary in header order. Aggregate columns for a side
// with no players are left blank rather than zero-filled, so a blank cell
// is distinguishable from a genuine zero total.
func (m *MatchSummary) Row() []string {
	row := []string{
		strconv.FormatInt(m.MatchID, 10),
		strconv.FormatInt(m.StartTime, 10),
		strconv.Itoa(m.Duration),
		strconv.Itoa(m.GameMode),
		strconv.Itoa(m.LobbyType),
		strconv.FormatBool(m.RadiantWin),
		strconv.FormatInt(m.LeagueID, 10),
		m.LeagueName,
		strconv.FormatInt(m.SeriesID, 10),
		strconv.Itoa(m.SeriesType),
		strconv.Itoa(m.Skill),
		strconv.Itoa(m.Patch),
		strconv.Itoa(m.Region),
		strconv.Itoa(m.RadiantScore),
		strconv.Itoa(m.DireScore),
		strconv.Itoa(m.PlayersCount),
		m.ParsedAt,
	}
	row = append(row, sideCells(m.Radiant)...)
	row = append(row, sideCells(m.Dire)...)
	return row
}

func sideCells(s *SideTotals) []string {
	if s == nil {
		return []string{"", "", "", "", "", "", ""}
	}
	return []string{
		strconv.Itoa(s.Kills),
		strconv.Itoa(s.Deaths),
		strconv.Itoa(s.Assists),
		strconv.FormatFloat(s.AvgGPM, 'f', -1, 64),
		strconv.FormatFloat(s.AvgXPM, 'f', -1, 64),
		strconv.Itoa(s.LastHits),
		strconv.Itoa(s.Denies),
	}
}

// PlayerRow is one row of the players sink: one per (match, slot).
type PlayerRow struct {
	MatchID     int64
	PlayerSlot  int
	AccountID   int64
	HeroID      int
	Kills       int
	Deaths      int
	Assists     int
	GoldPerMin  int
	XPPerMin    int
	LastHits    int
	Denies      int
	HeroDamage  int
	TowerDamage int
	HeroHealing int
	Level       int
	NetWorth    int
	Items       [6]int
	Backpack    [3]int
	Team        string // "radiant" or "dire", derived from PlayerSlot
}

var playerHeader = []string{
	"match_id", "player_slot", "account_id", "hero_id",
	"kills", "deaths", "assists", "gold_per_min", "xp_per_min",
	"last_hits", "denies", "hero_damage", "tower_damage", "hero_healing",
	"level", "net_worth",
	"item_0", "item_1", "item_2", "item_3", "item_4", "item_5",
	"backpack_0", "backpack_1", "backpack_2", "team",
}

// Header returns the fixed column set of the players sink.
func (p *PlayerRow) Header() []string {
	return playerHeader
}

// Row renders the player record in header order.
func (p *PlayerRow) Row() []string {
	return []string{
		strconv.FormatInt(p.MatchID, 10),
		strconv.Itoa(p.PlayerSlot),
		strconv.FormatInt(p.AccountID, 10),
		strconv.Itoa(p.HeroID),
		strconv.Itoa(p.Kills),
		strconv.Itoa(p.Deaths),
		strconv.Itoa(p.Assists),
		strconv.Itoa(p.GoldPerMin),
		strconv.Itoa(p.XPPerMin),
		strconv.Itoa(p.LastHits),
		strconv.Itoa(p.Denies),
		strconv.Itoa(p.HeroDamage),
		strconv.Itoa(p.TowerDamage),
		strconv.Itoa(p.HeroHealing),
		strconv.Itoa(p.Level),
		strconv.Itoa(p.NetWorth),
		strconv.Itoa(p.Items[0]),
		strconv.Itoa(p.Items[1]),
		strconv.Itoa(p.Items[2]),
		strconv.Itoa(p.Items[3]),
		strconv.Itoa(p.Items[4]),
		strconv.Itoa(p.Items[5]),
		strconv.Itoa(p.Backpack[0]),
		strconv.Itoa(p.Backpack[1]),
		strconv.Itoa(p.Backpack[2]),
		p.Team,
	}
}
