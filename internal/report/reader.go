package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// MatchRow is the subset of the matches sink the reports need.
type MatchRow struct {
	MatchID    int64
	StartTime  int64
	Duration   int
	RadiantWin bool
	Skill      int
	Region     int
}

// PlayerRow is the subset of the players sink the reports need.
type PlayerRow struct {
	MatchID     int64
	PlayerSlot  int
	HeroID      int
	Kills       int
	Deaths      int
	Assists     int
	GoldPerMin  int
	XPPerMin    int
	HeroDamage  int
	TowerDamage int
	Items       [6]int
	Backpack    [3]int
	Team        string
}

// row wraps one CSV record with its header index for tolerant lookups:
// a missing column or unparseable cell reads as the zero value, the same
// degradation the mapper applies on the way in.
type row struct {
	index  map[string]int
	record []string
}

func (r row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return r.record[i]
}

func (r row) int(col string) int {
	v, _ := strconv.Atoi(r.str(col))
	return v
}

func (r row) int64(col string) int64 {
	v, _ := strconv.ParseInt(r.str(col), 10, 64)
	return v
}

func (r row) bool(col string) bool {
	v, _ := strconv.ParseBool(r.str(col))
	return v
}

func readTable(path string) (map[string]int, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate files written with evolving schemas
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("%s contains no header", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[col] = i
	}
	return index, records[1:], nil
}

// ReadMatches loads the matches sink.
func ReadMatches(path string) ([]MatchRow, error) {
	index, records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	matches := make([]MatchRow, 0, len(records))
	for _, rec := range records {
		r := row{index: index, record: rec}
		matches = append(matches, MatchRow{
			MatchID:    r.int64("match_id"),
			StartTime:  r.int64("start_time"),
			Duration:   r.int("duration"),
			RadiantWin: r.bool("radiant_win"),
			Skill:      r.int("skill"),
			Region:     r.int("region"),
		})
	}
	return matches, nil
}

// ReadPlayers loads the players sink.
func ReadPlayers(path string) ([]PlayerRow, error) {
	index, records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	players := make([]PlayerRow, 0, len(records))
	for _, rec := range records {
		r := row{index: index, record: rec}
		players = append(players, PlayerRow{
			MatchID:     r.int64("match_id"),
			PlayerSlot:  r.int("player_slot"),
			HeroID:      r.int("hero_id"),
			Kills:       r.int("kills"),
			Deaths:      r.int("deaths"),
			Assists:     r.int("assists"),
			GoldPerMin:  r.int("gold_per_min"),
			XPPerMin:    r.int("xp_per_min"),
			HeroDamage:  r.int("hero_damage"),
			TowerDamage: r.int("tower_damage"),
			Items: [6]int{
				r.int("item_0"), r.int("item_1"), r.int("item_2"),
				r.int("item_3"), r.int("item_4"), r.int("item_5"),
			},
			Backpack: [3]int{
				r.int("backpack_0"), r.int("backpack_1"), r.int("backpack_2"),
			},
			Team: r.str("team"),
		})
	}
	return players, nil
}
