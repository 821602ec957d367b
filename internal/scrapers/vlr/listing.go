package vlr

import (
	"fmt"

	"vlrscraper/internal/entities"
	"vlrscraper/pkg/htmlutil"
)

// ListingItem is one row of a match listing.
type ListingItem struct {
	ID    int
	Epoch int64
}

// ListingPage is one page of a match listing. Rows counts every row on the
// page, including rows that could not be mapped into Items.
type ListingPage struct {
	Items []ListingItem
	Rows  int
}

// ListingSelectors locates the rows of a match listing and their dates.
type ListingSelectors struct {
	matches string
	dates   string
}

var (
	PlayerListing = ListingSelectors{matches: PLAYER_MATCHES, dates: PLAYER_MATCH_DATES}
	TeamListing   = ListingSelectors{matches: TEAM_MATCHES, dates: TEAM_MATCH_DATES}
)

// MatchListing maps one page of a player's or team's match history into
// (match id, kickoff) pairs, newest first like the page. Rows that cannot
// be parsed are skipped.
func (m Mapper) MatchListing(page *htmlutil.Page, sel ListingSelectors) ListingPage {
	links := page.ElementsAttr(sel.matches, "href")
	dates := page.TextDeepMany(sel.dates)
	if len(links) != len(dates) {
		m.tel.ReportWarning(
			report_mapper_match_listing,
			fmt.Errorf("mismatched listing: %d matches, %d dates", len(links), len(dates)),
		)
		return ListingPage{Rows: len(links)}
	}

	items := make([]ListingItem, 0, len(links))
	for i, link := range links {
		id, err := URLSegment(link, 1)
		if err != nil {
			m.tel.ReportWarning(report_mapper_match_listing, err)
			continue
		}
		epoch, err := ParseListingDate(dates[i])
		if err != nil {
			m.tel.ReportWarning(report_mapper_match_listing, err, id)
			continue
		}
		items = append(items, ListingItem{ID: id, Epoch: epoch})
	}
	return ListingPage{Items: items, Rows: len(links)}
}

// Upcoming maps the upcoming matches page. The page only names the teams,
// so they get PlaceholderTeamID and no logo, and matches are unscheduled.
func (m Mapper) Upcoming(page *htmlutil.Page) []entities.Match {
	links := page.ElementsAttr(UPCOMING_MATCHES, "href")
	names := page.TextMany(UPCOMING_TEAM_NAMES)
	events := page.TextMany(UPCOMING_EVENT_NAMES)
	series := page.TextMany(UPCOMING_EVENT_SERIES)

	if len(names) != 2*len(links) {
		m.tel.ReportWarning(
			report_mapper_upcoming,
			fmt.Errorf("expected 2 team names per match: %d matches, %d names", len(links), len(names)),
		)
		return []entities.Match{}
	}
	if len(events) != len(links) || len(series) != len(links) {
		m.tel.ReportWarning(
			report_mapper_upcoming,
			fmt.Errorf("mismatched event names: %d matches, %d events, %d series", len(links), len(events), len(series)),
		)
		events = make([]string, len(links))
		series = make([]string, len(links))
	}

	matches := make([]entities.Match, 0, len(links))
	for i, link := range links {
		id, err := URLSegment(link, 1)
		if err != nil {
			m.tel.ReportWarning(report_mapper_upcoming, err)
			continue
		}

		teams := make([]entities.Team, 0, 2)
		for _, name := range names[2*i : 2*i+2] {
			team, err := entities.TeamFromListing(entities.TeamInfo{
				ID:   PlaceholderTeamID,
				Name: name,
			})
			if err != nil {
				m.tel.ReportWarning(report_mapper_upcoming, err, id)
				continue
			}
			teams = append(teams, team)
		}

		match, err := entities.MatchFromListing(entities.MatchInfo{
			ID:    id,
			Name:  series[i],
			Event: events[i],
			Epoch: entities.Unscheduled,
			Teams: teams,
		})
		if err != nil {
			m.tel.ReportWarning(report_mapper_upcoming, err, id)
			continue
		}
		matches = append(matches, match)
	}
	return matches
}
