package mapper

import (
	"encoding/json"
	"testing"

	"dota-collector/internal/opendota"
)

func rawPlayer(t *testing.T, p opendota.Player) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Failed to marshal player: %v", err)
	}
	return data
}

func testDetail(t *testing.T) *opendota.MatchDetail {
	t.Helper()
	return &opendota.MatchDetail{
		MatchID:      8000000001,
		StartTime:    1731900000,
		Duration:     2400,
		GameMode:     22,
		RadiantWin:   true,
		RadiantScore: 30,
		DireScore:    22,
		Players: []json.RawMessage{
			rawPlayer(t, opendota.Player{PlayerSlot: 0, HeroID: 1, Kills: 10, Deaths: 2, Assists: 8, GoldPerMin: 600, XPPerMin: 700, LastHits: 200, Denies: 10, Level: 25}),
			rawPlayer(t, opendota.Player{PlayerSlot: 1, HeroID: 2, Kills: 4, Deaths: 6, Assists: 12, GoldPerMin: 400, XPPerMin: 500, LastHits: 100, Denies: 4, Level: 20}),
			rawPlayer(t, opendota.Player{PlayerSlot: 128, HeroID: 3, Kills: 7, Deaths: 7, Assists: 5, GoldPerMin: 500, XPPerMin: 550, LastHits: 150, Denies: 6, Level: 22}),
			rawPlayer(t, opendota.Player{PlayerSlot: 132, HeroID: 4, Kills: 3, Deaths: 9, Assists: 10, GoldPerMin: 300, XPPerMin: 350, LastHits: 80, Denies: 2, Level: 18}),
		},
	}
}

func TestSummarize_NilPayload(t *testing.T) {
	if got := Summarize(nil); got != nil {
		t.Errorf("Expected nil summary for nil payload, got %+v", got)
	}
}

func TestSummarize_SideAggregates(t *testing.T) {
	summary := Summarize(testDetail(t))
	if summary == nil {
		t.Fatal("Expected a summary")
	}

	if summary.MatchID != 8000000001 {
		t.Errorf("MatchID = %d, want 8000000001", summary.MatchID)
	}
	if summary.PlayersCount != 4 {
		t.Errorf("PlayersCount = %d, want 4", summary.PlayersCount)
	}
	if summary.ParsedAt == "" {
		t.Error("ParsedAt should be set")
	}

	if summary.Radiant == nil || summary.Dire == nil {
		t.Fatal("Both sides have players, both aggregate groups should be present")
	}
	if summary.Radiant.Kills != 14 {
		t.Errorf("Radiant kills = %d, want 14", summary.Radiant.Kills)
	}
	if summary.Radiant.AvgGPM != 500 {
		t.Errorf("Radiant avg GPM = %f, want 500", summary.Radiant.AvgGPM)
	}
	if summary.Dire.Kills != 10 {
		t.Errorf("Dire kills = %d, want 10", summary.Dire.Kills)
	}
	if summary.Dire.AvgXPM != 450 {
		t.Errorf("Dire avg XPM = %f, want 450", summary.Dire.AvgXPM)
	}
	if summary.Dire.LastHits != 230 {
		t.Errorf("Dire last hits = %d, want 230", summary.Dire.LastHits)
	}
}

func TestSummarize_EmptySideOmitted(t *testing.T) {
	detail := &opendota.MatchDetail{
		MatchID: 42,
		Players: []json.RawMessage{
			rawPlayer(t, opendota.Player{PlayerSlot: 2, HeroID: 1, Kills: 1}),
		},
	}

	summary := Summarize(detail)
	if summary.Radiant == nil {
		t.Error("Radiant side has a player, aggregates should be present")
	}
	if summary.Dire != nil {
		t.Errorf("Dire side is empty, aggregates should be nil, got %+v", summary.Dire)
	}

	// Blank cells for the missing side, never a short row
	if len(summary.Row()) != len(summary.Header()) {
		t.Errorf("Row has %d cells, header has %d", len(summary.Row()), len(summary.Header()))
	}
	row := summary.Row()
	direKills := row[len(row)-7]
	if direKills != "" {
		t.Errorf("Absent dire aggregate should render blank, got %q", direKills)
	}
}

func TestPlayerRows_SideDerivation(t *testing.T) {
	// Side must be radiant for slot < 128 and dire otherwise, never a
	// third value
	for _, tc := range []struct {
		slot int
		team string
	}{
		{0, "radiant"}, {1, "radiant"}, {127, "radiant"},
		{128, "dire"}, {132, "dire"}, {255, "dire"},
	} {
		detail := &opendota.MatchDetail{
			MatchID: 1,
			Players: []json.RawMessage{rawPlayer(t, opendota.Player{PlayerSlot: tc.slot})},
		}
		rows := PlayerRows(detail)
		if len(rows) != 1 {
			t.Fatalf("slot %d: expected 1 row, got %d", tc.slot, len(rows))
		}
		if rows[0].Team != tc.team {
			t.Errorf("slot %d: team = %q, want %q", tc.slot, rows[0].Team, tc.team)
		}
	}
}

func TestPlayerRows_MalformedPlayerSkipped(t *testing.T) {
	detail := testDetail(t)
	detail.Players = append(detail.Players, json.RawMessage(`{"kills": "not a number"}`))
	detail.Players = append(detail.Players, json.RawMessage(`[1,2,3]`))

	rows := PlayerRows(detail)
	if len(rows) != 4 {
		t.Errorf("Expected 4 rows with malformed entries skipped, got %d", len(rows))
	}
}

func TestPlayerRows_Defaults(t *testing.T) {
	detail := &opendota.MatchDetail{
		MatchID: 7,
		Players: []json.RawMessage{json.RawMessage(`{"player_slot": 130}`)},
	}

	rows := PlayerRows(detail)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	p := rows[0]
	if p.Level != 1 {
		t.Errorf("Missing level should default to 1, got %d", p.Level)
	}
	if p.Kills != 0 || p.GoldPerMin != 0 || p.AccountID != 0 {
		t.Errorf("Missing numeric fields should default to 0, got %+v", p)
	}
	if p.MatchID != 7 {
		t.Errorf("MatchID = %d, want 7", p.MatchID)
	}
}

func TestPlayerRows_RowShape(t *testing.T) {
	rows := PlayerRows(testDetail(t))
	for _, r := range rows {
		if len(r.Row()) != len(r.Header()) {
			t.Errorf("Row has %d cells, header has %d", len(r.Row()), len(r.Header()))
		}
	}
}

func TestPlayerRows_NilPayload(t *testing.T) {
	if rows := PlayerRows(nil); len(rows) != 0 {
		t.Errorf("Expected no rows for nil payload, got %d", len(rows))
	}
}
