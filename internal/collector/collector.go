// Package collector implements the resumable match collection loop: page
// through public matches, fetch details, map, append to the sinks, and
// checkpoint progress so a restarted run picks up where it stopped.
package collector

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"dota-collector/internal/mapper"
	"dota-collector/internal/opendota"
	"dota-collector/internal/progress"
	"dota-collector/internal/sink"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// Checkpoint cadence within a page; a checkpoint is also written
	// unconditionally after every page.
	checkpointEvery = 100

	// Backoff before retrying an empty page. Unbounded retries: a
	// permanently empty upstream stalls the run indefinitely.
	emptyPageBackoff = 10 * time.Second

	// DefaultRequestDelay is the fixed pause after every detail fetch,
	// successful or not, to stay under the remote rate limit.
	DefaultRequestDelay = 1 * time.Second
)

// Source is the capability the loop needs from the remote API. Page and
// detail fetches signal failure with an empty result, never an error;
// failures there are transient by contract and handled by the loop policy.
type Source interface {
	PublicMatches(ctx context.Context, limit int, lessThan int64) []opendota.PublicMatch
	MatchDetails(ctx context.Context, matchID int64) *opendota.MatchDetail
}

// Config holds the operator-facing collection parameters. A RequestDelay
// of zero disables pacing; a negative value selects the default.
type Config struct {
	TargetMatches int
	BatchSize     int
	RequestDelay  time.Duration
	Resume        bool
}

// Collector is the collection session: the pagination cursor, counters and
// open sinks live here rather than in package state so the loop can be
// exercised against a fake Source.
type Collector struct {
	source  Source
	matches *sink.Writer
	players *sink.Writer
	store   *progress.Store
	cfg     Config

	// Guards the one-row-per-match invariant when the upstream repeats
	// an identifier across pages.
	seen *bloom.BloomFilter

	cursor    int64 // last seen match ID; 0 means no pagination bound yet
	collected int
	skipped   int
	pages     int
	startTime time.Time
}

// New creates a collection session over the given source, sinks and
// checkpoint store.
func New(source Source, matches, players *sink.Writer, store *progress.Store, cfg Config) *Collector {
	if cfg.RequestDelay < 0 {
		cfg.RequestDelay = DefaultRequestDelay
	}
	estimate := uint(cfg.TargetMatches) * 2
	if estimate < 100000 {
		estimate = 100000
	}
	return &Collector{
		source:  source,
		matches: matches,
		players: players,
		store:   store,
		cfg:     cfg,
		seen:    bloom.NewWithEstimates(estimate, 0.001),
	}
}

// Run executes the collection loop until the target count is reached or
// the context is cancelled. Transport and mapping failures skip and
// continue; sink and checkpoint I/O errors are fatal to the run.
func (c *Collector) Run(ctx context.Context) error {
	c.startTime = time.Now()

	if c.cfg.Resume {
		cp, err := c.store.Load()
		if err != nil {
			return err
		}
		if cp != nil {
			c.cursor = cp.LastMatchID
			c.collected = cp.CollectedCount
			log.Printf("[Collector] Resuming from match %d, %d already collected", c.cursor, c.collected)
		}
	}

	log.Printf("[Collector] Collecting %d matches (batch size %d, delay %s)",
		c.cfg.TargetMatches, c.cfg.BatchSize, c.cfg.RequestDelay)

	batch := 0
	for c.collected < c.cfg.TargetMatches {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch++
		log.Printf("[Collector] Batch %d, collected %d/%d", batch, c.collected, c.cfg.TargetMatches)

		page := c.source.PublicMatches(ctx, c.cfg.BatchSize, c.cursor)
		if len(page) == 0 {
			log.Printf("[Collector] Empty page, retrying in %s...", emptyPageBackoff)
			if err := wait(ctx, emptyPageBackoff); err != nil {
				return err
			}
			continue
		}
		c.pages++

		for _, m := range page {
			if c.collected >= c.cfg.TargetMatches {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.processMatch(ctx, m.MatchID); err != nil {
				return err
			}
		}

		// Checkpoint after every page, independent of the every-N rule.
		if err := c.store.Save(c.cursor, c.collected); err != nil {
			return fmt.Errorf("checkpoint after batch %d: %w", batch, err)
		}
		log.Printf("[Collector] Batch %d done, collected %d/%d", batch, c.collected, c.cfg.TargetMatches)
	}

	c.printSummary()
	return nil
}

// processMatch runs the fetch → map → append sequence for one identifier.
// The pagination cursor advances to every seen identifier, successful or
// not, so a page of failing matches is never refetched forever.
func (c *Collector) processMatch(ctx context.Context, matchID int64) error {
	c.cursor = matchID

	key := strconv.FormatInt(matchID, 10)
	if c.seen.TestString(key) {
		log.Printf("[Collector] Match %d already seen, skipping", matchID)
		c.skipped++
		return nil
	}
	c.seen.AddString(key)

	fmt.Printf("  Processing match %d (%d/%d)\n", matchID, c.collected+1, c.cfg.TargetMatches)

	detail := c.source.MatchDetails(ctx, matchID)

	// Fixed pacing after every detail fetch, successful or not.
	if err := wait(ctx, c.cfg.RequestDelay); err != nil {
		return err
	}

	if detail == nil {
		c.skipped++
		return nil
	}

	summary := mapper.Summarize(detail)
	players := mapper.PlayerRows(detail)
	if summary == nil || len(players) == 0 {
		log.Printf("[Collector] Match %d produced no records, skipping", matchID)
		c.skipped++
		return nil
	}

	if err := c.matches.Append(summary); err != nil {
		return fmt.Errorf("match %d: %w", matchID, err)
	}
	for _, p := range players {
		if err := c.players.Append(p); err != nil {
			return fmt.Errorf("match %d: %w", matchID, err)
		}
	}

	c.collected++
	if c.collected%checkpointEvery == 0 {
		if err := c.store.Save(matchID, c.collected); err != nil {
			return fmt.Errorf("checkpoint at %d matches: %w", c.collected, err)
		}
		log.Printf("[Collector] Progress saved: %d matches", c.collected)
	}
	return nil
}

// Collected returns how many matches have been fully stored this session.
func (c *Collector) Collected() int {
	return c.collected
}

// Skipped returns how many identifiers were skipped this session, whether
// for a failed fetch, an empty mapping or a repeated identifier.
func (c *Collector) Skipped() int {
	return c.skipped
}

// Cursor returns the last seen match identifier.
func (c *Collector) Cursor() int64 {
	return c.cursor
}

func (c *Collector) printSummary() {
	elapsed := time.Since(c.startTime)
	fmt.Printf("\n=== Collection Complete ===\n")
	fmt.Printf("Total time: %s\n", formatDuration(elapsed))
	fmt.Printf("Matches collected: %d\n", c.collected)
	fmt.Printf("Matches skipped: %d\n", c.skipped)
	fmt.Printf("Pages fetched: %d\n", c.pages)
	if c.collected > 0 {
		avg := elapsed / time.Duration(c.collected)
		fmt.Printf("Avg time per match: %s\n", formatDuration(avg))
	}
	fmt.Printf("Matches sink: %s\n", c.matches.Path())
	fmt.Printf("Players sink: %s\n", c.players.Path())
}

// wait sleeps for d or until the context is cancelled.
func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%02ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%02dm%02ds", hours, mins, secs)
}
