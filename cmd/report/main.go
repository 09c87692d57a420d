package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"dota-collector/internal/refdata"
	"dota-collector/internal/report"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load(".env")

	matchesPath := flag.String("matches", "", "Matches CSV produced by the collector")
	playersPath := flag.String("players", "", "Players CSV produced by the collector")
	heroesPath := flag.String("heroes", "heroes.csv", "Hero id/name lookup CSV")
	itemNamesPath := flag.String("items-id", "items_id.json", "Item id/name JSON dump")
	itemDetailsPath := flag.String("items", "items.json", "Item details JSON dump")
	topN := flag.Int("top", 10, "Rows per table")
	minGames := flag.Int("min-games", 5, "Minimum games for a hero to appear")
	minPurchases := flag.Int("min-purchases", 10, "Minimum purchases for an item to appear")
	outPath := flag.String("out", "", "Report JSON output path (default report_<timestamp>.json)")
	flag.Parse()

	if *matchesPath == "" || *playersPath == "" {
		fmt.Println("Usage:")
		fmt.Println("  report --matches=dota_matches.csv --players=dota_players.csv [--heroes=heroes.csv] [--top=10]")
		os.Exit(1)
	}

	matches, err := report.ReadMatches(*matchesPath)
	if err != nil {
		log.Fatalf("Failed to read matches: %v", err)
	}
	players, err := report.ReadPlayers(*playersPath)
	if err != nil {
		log.Fatalf("Failed to read players: %v", err)
	}

	// Reference data is optional; without it the tables show raw ids.
	heroes, err := refdata.LoadHeroes(*heroesPath)
	if err != nil {
		log.Printf("[Report] Hero names unavailable: %v", err)
		heroes = map[int]string{}
	}
	itemNames, err := refdata.LoadItemNames(*itemNamesPath)
	if err != nil {
		log.Printf("[Report] Item names unavailable: %v", err)
		itemNames = map[int]string{}
	}
	itemDetails, err := refdata.LoadItemDetails(*itemDetailsPath)
	if err != nil {
		log.Printf("[Report] Item details unavailable: %v", err)
		itemDetails = map[string]refdata.ItemDetail{}
	}

	summary := report.Summarize(matches, len(players))
	wins := report.WinByMatch(matches)
	heroStats := report.HeroStats(players, wins, heroes, *minGames)
	itemStats := report.ItemStats(players, wins, itemNames, itemDetails, *minPurchases)

	printSummary(summary)
	printHeroTable(heroStats, *topN)
	printItemTable(itemStats, *topN)

	path := *outPath
	if path == "" {
		path = fmt.Sprintf("report_%s.json", time.Now().Format("20060102_1504"))
	}
	if err := writeReport(path, summary, heroStats, itemStats); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Printf("\nReport saved to %s\n", path)
}

func printSummary(s report.Summary) {
	fmt.Printf("\n=== Collection Summary ===\n")
	fmt.Printf("Matches: %d\n", s.TotalMatches)
	fmt.Printf("Player records: %d\n", s.TotalPlayers)
	fmt.Printf("Date range: %s .. %s\n", s.EarliestMatch, s.LatestMatch)
	fmt.Printf("Radiant win rate: %.2f%%\n", s.RadiantWinRate*100)
	fmt.Printf("Average duration: %.1f min\n", s.AvgDurationSeconds/60)
}

func printHeroTable(stats []report.HeroStat, topN int) {
	fmt.Printf("\nTop heroes by games played:\n")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Hero", "Games", "Pick %", "Win %", "Avg K", "Avg D", "Avg A", "Avg GPM"})
	for i, hs := range stats {
		if i >= topN {
			break
		}
		name := hs.Name
		if name == "" {
			name = fmt.Sprintf("hero %d", hs.HeroID)
		}
		t.AppendRow(table.Row{
			name, hs.Games,
			fmt.Sprintf("%.1f", hs.PickRate*100),
			fmt.Sprintf("%.1f", hs.WinRate*100),
			fmt.Sprintf("%.1f", hs.AvgKills),
			fmt.Sprintf("%.1f", hs.AvgDeaths),
			fmt.Sprintf("%.1f", hs.AvgAssists),
			fmt.Sprintf("%.0f", hs.AvgGPM),
		})
	}
	t.Render()
}

func printItemTable(stats []report.ItemStat, topN int) {
	fmt.Printf("\nTop items by purchases:\n")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Item", "Cost", "Purchases", "Win %"})
	for i, is := range stats {
		if i >= topN {
			break
		}
		name := is.DisplayName
		if name == "" {
			name = is.Name
		}
		if name == "" {
			name = fmt.Sprintf("item %d", is.ItemID)
		}
		t.AppendRow(table.Row{
			name, is.Cost, is.Purchases,
			fmt.Sprintf("%.1f", is.WinRate*100),
		})
	}
	t.Render()
}

func writeReport(path string, summary report.Summary, heroes []report.HeroStat, items []report.ItemStat) error {
	out := struct {
		Summary report.Summary    `json:"summary"`
		Heroes  []report.HeroStat `json:"heroes"`
		Items   []report.ItemStat `json:"items"`
	}{summary, heroes, items}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
