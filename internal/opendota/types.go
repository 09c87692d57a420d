package opendota

import "encoding/json"

// PublicMatch represents one entry from the /publicMatches listing
type PublicMatch struct {
	MatchID    int64 `json:"match_id"`
	StartTime  int64 `json:"start_time"`
	Duration   int   `json:"duration"`
	GameMode   int   `json:"game_mode"`
	LobbyType  int   `json:"lobby_type"`
	RadiantWin bool  `json:"radiant_win"`
	AvgRank    int   `json:"avg_rank_tier"`
}

// MatchDetail represents the response from /matches/{match_id}.
// Players are kept as raw JSON so one malformed player entry can be
// skipped without losing the rest of the match.
type MatchDetail struct {
	MatchID      int64             `json:"match_id"`
	StartTime    int64             `json:"start_time"`
	Duration     int               `json:"duration"`
	GameMode     int               `json:"game_mode"`
	LobbyType    int               `json:"lobby_type"`
	RadiantWin   bool              `json:"radiant_win"`
	LeagueID     int64             `json:"leagueid"`
	LeagueName   string            `json:"league_name"`
	SeriesID     int64             `json:"series_id"`
	SeriesType   int               `json:"series_type"`
	Skill        int               `json:"skill"`
	Patch        int               `json:"patch"`
	Region       int               `json:"region"`
	RadiantScore int               `json:"radiant_score"`
	DireScore    int               `json:"dire_score"`
	Players      []json.RawMessage `json:"players"`
}

// Player represents one player entry inside a match detail payload
type Player struct {
	PlayerSlot  int   `json:"player_slot"`
	AccountID   int64 `json:"account_id"` // 0 when anonymized
	HeroID      int   `json:"hero_id"`
	Kills       int   `json:"kills"`
	Deaths      int   `json:"deaths"`
	Assists     int   `json:"assists"`
	GoldPerMin  int   `json:"gold_per_min"`
	XPPerMin    int   `json:"xp_per_min"`
	LastHits    int   `json:"last_hits"`
	Denies      int   `json:"denies"`
	HeroDamage  int   `json:"hero_damage"`
	TowerDamage int   `json:"tower_damage"`
	HeroHealing int   `json:"hero_healing"`
	Level       int   `json:"level"`
	TotalGold   int   `json:"total_gold"`
	Item0       int   `json:"item_0"`
	Item1       int   `json:"item_1"`
	Item2       int   `json:"item_2"`
	Item3       int   `json:"item_3"`
	Item4       int   `json:"item_4"`
	Item5       int   `json:"item_5"`
	Backpack0   int   `json:"backpack_0"`
	Backpack1   int   `json:"backpack_1"`
	Backpack2   int   `json:"backpack_2"`
}
