package vlr

import (
	"context"
	"fmt"
	"time"

	"vlrscraper/internal/components/assert"
	"vlrscraper/internal/components/chrono"
	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/entities"

	"golang.org/x/sync/errgroup"
)

const (
	report_scraper_player       = "scraper.player"
	report_scraper_team         = "scraper.team"
	report_scraper_team_history = "scraper.team-history"
	report_scraper_match        = "scraper.match"
	report_scraper_matches      = "scraper.matches"
	report_scraper_listing      = "scraper.listing"
	report_scraper_upcoming     = "scraper.upcoming"
)

const (
	DefaultBaseURL = "https://www.vlr.gg"
	DefaultWorkers = 8
)

type Options struct {
	Transport Transport
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Workers bounds the number of match pages fetched at once, defaults to
	// DefaultWorkers.
	Workers int
	Tel     telemetry.API
	// Time defaults to the wall clock.
	Time chrono.API
}

// Scraper fetches vlr.gg pages through a Transport and maps them into
// entities. It is safe for concurrent use if the Transport is.
type Scraper struct {
	transport Transport
	mapper    Mapper
	res       resources
	workers   int
	time      chrono.API
	tel       telemetry.API
}

func NewScraper(opts Options) *Scraper {
	assert.NotNil(opts.Transport)
	assert.NotNil(opts.Tel)

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Time == nil {
		opts.Time = chrono.NewStandardImpl()
	}

	tel := telemetry.NewScopedAPI("vlr", opts.Tel)
	return &Scraper{
		transport: opts.Transport,
		mapper:    NewMapper(opts.BaseURL, tel),
		res:       siteResources(opts.BaseURL),
		workers:   opts.Workers,
		time:      opts.Time,
		tel:       tel,
	}
}

// LastDays is the window from `days` days ago until now.
func (s *Scraper) LastDays(days int) Window {
	now := s.time.Now()
	return Window{
		From: now.AddDate(0, 0, -days),
		To:   now,
	}
}

func (s *Scraper) Player(ctx context.Context, id int) (*entities.Player, error) {
	page, err := s.res.player.Page(ctx, s.transport, id, s.tel)
	if err != nil {
		s.tel.ReportWarning(report_scraper_player, err, id)
		return nil, err
	}
	player, err := s.mapper.Player(id, page)
	if err != nil {
		s.tel.ReportWarning(report_scraper_player, err, id)
		return nil, err
	}
	return &player, nil
}

func (s *Scraper) Team(ctx context.Context, id int) (*entities.Team, error) {
	page, err := s.res.team.Page(ctx, s.transport, id, s.tel)
	if err != nil {
		s.tel.ReportWarning(report_scraper_team, err, id)
		return nil, err
	}
	team, err := s.mapper.Team(id, page)
	if err != nil {
		s.tel.ReportWarning(report_scraper_team, err, id)
		return nil, err
	}
	return &team, nil
}

// TeamHistory returns every team a player has played for, current teams
// first.
func (s *Scraper) TeamHistory(ctx context.Context, playerID int) ([]entities.Team, error) {
	page, err := s.res.player.Page(ctx, s.transport, playerID, s.tel)
	if err != nil {
		s.tel.ReportWarning(report_scraper_team_history, err, playerID)
		return nil, err
	}
	return s.mapper.TeamHistory(page), nil
}

func (s *Scraper) Match(ctx context.Context, id int) (*entities.Match, error) {
	page, err := s.res.match.Page(ctx, s.transport, id, s.tel)
	if err != nil {
		s.tel.ReportWarning(report_scraper_match, err, id)
		return nil, err
	}
	match, err := s.mapper.Match(id, page)
	if err != nil {
		s.tel.ReportWarning(report_scraper_match, err, id)
		return nil, err
	}
	return &match, nil
}

// Matches scrapes every match concurrently. The result lines up with ids,
// matches that could not be scraped are nil.
func (s *Scraper) Matches(ctx context.Context, ids []int) []*entities.Match {
	start := time.Now()
	results := make([]*entities.Match, len(ids))

	var group errgroup.Group
	group.SetLimit(s.workers)
	for i, id := range ids {
		group.Go(func() error {
			match, err := s.Match(ctx, id)
			if err != nil {
				return nil
			}
			results[i] = match
			return nil
		})
	}
	_ = group.Wait()

	failed := 0
	for _, m := range results {
		if m == nil {
			failed++
		}
	}
	if failed > 0 {
		s.tel.ReportWarning(report_scraper_matches, fmt.Errorf("%d of %d matches failed", failed, len(ids)))
	}
	s.tel.ReportDebug("scraped matches", len(ids), time.Since(start).String())
	return results
}

func (s *Scraper) listing(res func(page int) Resource, sel ListingSelectors, id int) listingFetcher {
	return func(ctx context.Context, n int) (ListingPage, error) {
		page, err := res(n).Page(ctx, s.transport, id, s.tel)
		if err != nil {
			s.tel.ReportWarning(report_scraper_listing, err, id, n)
			return ListingPage{}, err
		}
		return s.mapper.MatchListing(page, sel), nil
	}
}

// PlayerMatchIDs lists the ids of a player's matches played inside the window.
func (s *Scraper) PlayerMatchIDs(ctx context.Context, playerID int, w Window) ([]int, error) {
	return s.walk(ctx, s.listing(s.res.playerMatches, PlayerListing, playerID), w)
}

// TeamMatchIDs lists the ids of a team's matches played inside the window.
func (s *Scraper) TeamMatchIDs(ctx context.Context, teamID int, w Window) ([]int, error) {
	return s.walk(ctx, s.listing(s.res.teamMatches, TeamListing, teamID), w)
}

func compact(matches []*entities.Match) []entities.Match {
	out := make([]entities.Match, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// PlayerMatches scrapes a player's matches inside the window, matches that
// failed to scrape are left out.
func (s *Scraper) PlayerMatches(ctx context.Context, playerID int, w Window) ([]entities.Match, error) {
	ids, err := s.PlayerMatchIDs(ctx, playerID, w)
	if err != nil {
		return nil, err
	}
	return compact(s.Matches(ctx, ids)), nil
}

// TeamMatches scrapes a team's matches inside the window, matches that
// failed to scrape are left out.
func (s *Scraper) TeamMatches(ctx context.Context, teamID int, w Window) ([]entities.Match, error) {
	ids, err := s.TeamMatchIDs(ctx, teamID, w)
	if err != nil {
		return nil, err
	}
	return compact(s.Matches(ctx, ids)), nil
}

// Upcoming lists the matches on page `page` (1-indexed) of the upcoming
// matches schedule.
func (s *Scraper) Upcoming(ctx context.Context, page int) ([]entities.Match, error) {
	doc, err := s.res.upcoming.Page(ctx, s.transport, page, s.tel)
	if err != nil {
		s.tel.ReportWarning(report_scraper_upcoming, err, page)
		return nil, err
	}
	return s.mapper.Upcoming(doc), nil
}
