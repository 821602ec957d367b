package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"vlrscraper/internal/components/chrono"
	"vlrscraper/internal/scrapers/vlr"
	"vlrscraper/internal/store"

	"github.com/spf13/cobra"
)

const report_scrape = "scrape"

var (
	scrapeTeamID   int
	scrapeDays     int
	scrapeDB       string
	scrapeSchedule string
)

func init() {
	flags := scrapeCmd.Flags()
	flags.IntVar(&scrapeTeamID, "team", 0, "The team to scrape.")
	flags.IntVar(&scrapeDays, "days", 30, "How many days of matches to scrape.")
	flags.StringVar(&scrapeDB, "db", "results.db", "The database to write scrape results to, a path or a libsql url.")
	flags.StringVar(&scrapeSchedule, "schedule", "", "Keep running and scrape on this cron schedule (UTC).")
	scrapeCmd.MarkFlagRequired("team")

	rootCmd.AddCommand(scrapeCmd)
}

type scrapeResult struct {
	Listed  int
	Scraped int
	Failed  int
}

// scrapeTeam stores a team and every match it played in the window that is
// not stored yet.
func scrapeTeam(ctx context.Context, s *vlr.Scraper, db store.Store, teamID int, w vlr.Window) (scrapeResult, error) {
	team, err := s.Team(ctx, teamID)
	if err != nil {
		return scrapeResult{}, err
	}
	err = db.SaveTeam(ctx, *team)
	if err != nil {
		return scrapeResult{}, fmt.Errorf("save team: %w", err)
	}

	ids, err := s.TeamMatchIDs(ctx, teamID, w)
	if err != nil {
		return scrapeResult{}, err
	}
	stored, err := db.MatchIDs(ctx, teamID)
	if err != nil {
		return scrapeResult{}, fmt.Errorf("stored matches: %w", err)
	}

	var missing []int
	for _, id := range ids {
		if !slices.Contains(stored, id) {
			missing = append(missing, id)
		}
	}

	result := scrapeResult{Listed: len(ids)}
	for _, match := range s.Matches(ctx, missing) {
		if match == nil {
			result.Failed++
			continue
		}
		err = db.SaveMatch(ctx, *match)
		if err != nil {
			return result, fmt.Errorf("save match %d: %w", match.ID(), err)
		}
		result.Scraped++
	}
	return result, nil
}

func runScrape(ctx context.Context, db store.Store) error {
	start := time.Now()
	result, err := scrapeTeam(ctx, scraper, db, scrapeTeamID, scraper.LastDays(scrapeDays))
	if err != nil {
		tel.ReportBroken(report_scrape, err, scrapeTeamID)
		return err
	}
	slog.Info(
		"scraped team",
		"team", scrapeTeamID,
		"listed", result.Listed,
		"new", result.Scraped,
		"failed", result.Failed,
		"seconds", time.Since(start).Seconds(),
	)
	return nil
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape --team <id> [--days 30] [--db results.db] [--schedule <cron>]",
	Short: "Scrapes a team's recent matches into a database.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if scrapeDays < 0 {
			return errors.New("--days must not be negative")
		}

		db, err := store.Open(scrapeDB, tel)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		if scrapeSchedule == "" {
			return runScrape(ctx, db)
		}

		scheduler := chrono.NewScheduler(tel)
		err = scheduler.Schedule("scrape", scrapeSchedule, func() { _ = runScrape(ctx, db) })
		if err != nil {
			scheduler.Stop()
			return err
		}
		slog.Info("waiting for schedule", "schedule", scrapeSchedule)

		<-ctx.Done()
		<-scheduler.Stop().Done()
		return nil
	},
}
