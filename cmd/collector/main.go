package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"dota-collector/internal/collector"
	"dota-collector/internal/config"
	"dota-collector/internal/opendota"
	"dota-collector/internal/progress"
	"dota-collector/internal/sink"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present (optional OPENDOTA_API_KEY)
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			break
		}
	}

	configPath := flag.String("config", "", "Path to TOML config file")
	target := flag.Int("target", 0, "Total matches to collect (overrides config)")
	batchSize := flag.Int("batch", 0, "Page size for the public matches listing (overrides config)")
	delay := flag.Float64("delay", -1, "Seconds to wait between detail requests (overrides config)")
	resume := flag.Bool("resume", false, "Resume from the checkpoint file")
	checkpoint := flag.String("checkpoint", "", "Checkpoint file path (overrides config)")
	matchesOut := flag.String("matches-out", "", "Matches sink path (overrides config)")
	playersOut := flag.String("players-out", "", "Players sink path (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *target > 0 {
		cfg.Collector.TargetMatches = *target
	}
	if *batchSize > 0 {
		cfg.Collector.BatchSize = *batchSize
	}
	if *delay >= 0 {
		cfg.Collector.RequestDelaySeconds = *delay
	}
	if *resume {
		cfg.Collector.Resume = true
	}
	if *checkpoint != "" {
		cfg.Collector.CheckpointPath = *checkpoint
	}
	if *matchesOut != "" {
		cfg.Output.MatchesPath = *matchesOut
	}
	if *playersOut != "" {
		cfg.Output.PlayersPath = *playersOut
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	now := time.Now()
	matchesPath := cfg.Output.MatchesFile(now)
	playersPath := cfg.Output.PlayersFile(now)
	fmt.Printf("Matches sink: %s\n", matchesPath)
	fmt.Printf("Players sink: %s\n", playersPath)

	matchesSink, err := sink.NewWriter(matchesPath)
	if err != nil {
		log.Fatalf("Failed to open matches sink: %v", err)
	}
	defer func() {
		if err := matchesSink.Close(); err != nil {
			log.Printf("Error closing matches sink: %v", err)
		}
	}()

	playersSink, err := sink.NewWriter(playersPath)
	if err != nil {
		log.Fatalf("Failed to open players sink: %v", err)
	}
	defer func() {
		if err := playersSink.Close(); err != nil {
			log.Printf("Error closing players sink: %v", err)
		}
	}()

	store := progress.NewStore(cfg.Collector.CheckpointPath)
	client := opendota.NewClient(cfg.Source.BaseURL)

	coll := collector.New(client, matchesSink, playersSink, store, collector.Config{
		TargetMatches: cfg.Collector.TargetMatches,
		BatchSize:     cfg.Collector.BatchSize,
		RequestDelay:  cfg.Collector.RequestDelay(),
		Resume:        cfg.Collector.Resume,
	})

	ctx := collector.SetupSignalHandler()
	if err := run(ctx, coll); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("[Collector] Stopped by user after %d matches", coll.Collected())
			return
		}
		// Sinks are flushed per append, so nothing is lost here.
		log.Fatalf("Collection failed: %v", err)
	}
}

// run executes the loop, converting an unexpected panic into a logged
// error so the deferred sink closes still happen.
func run(ctx context.Context, coll *collector.Collector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()
	return coll.Run(ctx)
}
