package vlr

import (
	"fmt"

	"vlrscraper/internal/components/assert"
	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/entities"
	"vlrscraper/pkg/htmlutil"
)

const (
	report_mapper_player          = "mapper.player"
	report_mapper_roster          = "mapper.roster"
	report_mapper_team_history    = "mapper.team-history"
	report_mapper_match           = "mapper.match"
	report_mapper_match_listing   = "mapper.match-listing"
	report_mapper_upcoming        = "mapper.upcoming"
	report_mapper_player_from_row = "mapper.player-from-row"
)

// PlaceholderTeamID is given to teams on the upcoming matches page, which
// only names them.
const PlaceholderTeamID = 1

// Mapper turns parsed vlr.gg pages into entities. Methods never fetch
// anything, missing fields become zero values and structural surprises are
// reported as warnings.
type Mapper struct {
	baseURL string
	tel     telemetry.API
}

func NewMapper(baseURL string, tel telemetry.API) Mapper {
	assert.NotNil(tel)
	return Mapper{baseURL: baseURL, tel: tel}
}

func (m Mapper) image(src string) string {
	return ResolveImage(m.baseURL, src)
}

// Player maps a player's own page.
func (m Mapper) Player(id int, page *htmlutil.Page) (entities.Player, error) {
	forename, surname := entities.ParseName(page.Text(PLAYER_FULLNAME))

	team, err := m.TeamFromPlayerPage(page)
	if err != nil {
		m.tel.ReportWarning(report_mapper_player, fmt.Errorf("current team: %w", err), id)
	}

	status := entities.StatusActive
	if page.Text(PLAYER_INACTIVE_CHECK) == "Inactive" {
		status = entities.StatusInactive
	}

	player, err := entities.PlayerFromPlayerPage(entities.PlayerInfo{
		ID:          id,
		DisplayName: page.Text(PLAYER_DISPLAYNAME),
		Forename:    forename,
		Surname:     surname,
		Team:        team,
		Image:       m.image(page.Img(PLAYER_IMAGE_SRC)),
		Status:      status,
	})
	if err != nil {
		return entities.Player{}, fmt.Errorf("map player: %w", err)
	}
	return player, nil
}

// TeamFromPlayerPage maps the current team card of a player page. It
// returns nil without an error when the player has no team.
func (m Mapper) TeamFromPlayerPage(page *htmlutil.Page) (*entities.Team, error) {
	href := page.Href(PLAYER_CURRENT_TEAM)
	if href == "" {
		return nil, nil
	}
	id, err := URLSegment(href, 2)
	if err != nil {
		return nil, err
	}
	team, err := entities.TeamFromPlayerPage(entities.TeamInfo{
		ID:   id,
		Name: page.Text(PLAYER_CURRENT_TEAM_NAME),
		Logo: m.image(page.Img(PLAYER_CURRENT_TEAM_IMG)),
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// TeamHistory maps every team card on a player page, current teams first.
func (m Mapper) TeamHistory(page *htmlutil.Page) []entities.Team {
	count := page.Count(PLAYER_TEAMS)
	teams := make([]entities.Team, 0, count)
	for n := 1; n <= count; n++ {
		id, err := URLSegment(page.Href(playerTeam(n)), 2)
		if err != nil {
			m.tel.ReportWarning(report_mapper_team_history, err, n)
			continue
		}
		team, err := entities.TeamFromPlayerPage(entities.TeamInfo{
			ID:   id,
			Name: page.Text(playerTeamName(n)),
			Logo: m.image(page.Img(playerTeamImg(n))),
		})
		if err != nil {
			m.tel.ReportWarning(report_mapper_team_history, err, n)
			continue
		}
		teams = append(teams, team)
	}
	return teams
}

// Team maps a team's own page including its roster.
func (m Mapper) Team(id int, page *htmlutil.Page) (entities.Team, error) {
	team, err := entities.TeamFromTeamPage(entities.TeamInfo{
		ID:   id,
		Name: page.Text(TEAM_DISPLAY_NAME),
		Tag:  page.Text(TEAM_TAG),
		Logo: m.image(page.Img(TEAM_IMG)),
	})
	if err != nil {
		return entities.Team{}, fmt.Errorf("map team: %w", err)
	}
	team.AddToRoster(m.Roster(page, team)...)
	return team, nil
}

// Roster maps the roster of a team page. The roster entries are read as
// parallel lists and zipped by position, every player keeps `team` as their
// current team.
func (m Mapper) Roster(page *htmlutil.Page, team entities.Team) []entities.Player {
	links := page.ElementsAttr(TEAM_ROSTER_ITEMS, "href")
	aliases := page.TextMany(TEAM_ROSTER_ITEM_ALIAS)
	images := page.ElementsAttr(TEAM_ROSTER_ITEM_IMAGE, "src")
	fullnames := page.TextMany(TEAM_ROSTER_ITEM_FULLNAME)

	if len(aliases) != len(links) || len(images) != len(links) {
		m.tel.ReportWarning(
			report_mapper_roster,
			fmt.Errorf("mismatched roster lists: %d links, %d aliases, %d images", len(links), len(aliases), len(images)),
			team.ID(),
		)
		return []entities.Player{}
	}
	if len(fullnames) != len(links) {
		m.tel.ReportWarning(
			report_mapper_roster,
			fmt.Errorf("mismatched roster names: %d links, %d names", len(links), len(fullnames)),
			team.ID(),
		)
		fullnames = make([]string, len(links))
	}

	roster := make([]entities.Player, 0, len(links))
	for i, link := range links {
		id, err := URLSegment(link, 2)
		if err != nil {
			m.tel.ReportWarning(report_mapper_roster, err, team.ID())
			continue
		}

		status := entities.StatusActive
		if aliases[i] != "" && page.Text(teamRosterTag(aliases[i])) == "Inactive" {
			status = entities.StatusInactive
		}

		forename, surname := entities.ParseName(fullnames[i])
		player, err := entities.PlayerFromTeamPage(entities.PlayerInfo{
			ID:          id,
			DisplayName: aliases[i],
			Forename:    forename,
			Surname:     surname,
			Team:        &team,
			Image:       m.image(images[i]),
			Status:      status,
		})
		if err != nil {
			m.tel.ReportWarning(report_mapper_roster, err, team.ID())
			continue
		}
		roster = append(roster, player)
	}
	return roster
}
