package vlr

import (
	"fmt"

	"vlrscraper/internal/entities"
	"vlrscraper/pkg/htmlutil"
)

// players per side in the stat table
const teamSize = 5

// Match maps a match's own page: header, both teams with the five players
// that played for each, and the all-maps stat line of every player.
func (m Mapper) Match(id int, page *htmlutil.Page) (entities.Match, error) {
	playerLinks := page.ElementsAttr(MATCH_PLAYER_TABLE, "href")
	playerNames := page.TextMany(MATCH_PLAYER_NAMES)

	playerIDs := make([]int, len(playerLinks))
	for i, link := range playerLinks {
		pid, err := URLSegment(link, 2)
		if err != nil {
			m.tel.ReportWarning(report_mapper_match, err, id)
		}
		playerIDs[i] = pid
	}

	epoch := entities.Unscheduled
	dates := page.ElementsAttr(MATCH_DATE, "data-utc-ts")
	if len(dates) > 0 {
		parsed, err := ParseMatchDate(dates[0])
		if err != nil {
			m.tel.ReportWarning(report_mapper_match, err, id)
		} else {
			epoch = parsed
		}
	}

	match, err := entities.NewMatch(entities.MatchInfo{
		ID:    id,
		Name:  page.TextDeep(MATCH_NAME),
		Event: page.Text(MATCH_EVENT_NAME),
		Epoch: epoch,
		Teams: m.matchTeams(id, page, playerIDs, playerNames),
	})
	if err != nil {
		return entities.Match{}, fmt.Errorf("map match: %w", err)
	}
	match.SetStats(m.matchStats(id, playerIDs, page.TextMany(MATCH_PLAYER_STATS)))
	return match, nil
}

func (m Mapper) matchTeams(id int, page *htmlutil.Page, playerIDs []int, playerNames []string) []entities.Team {
	links := page.ElementsAttr(MATCH_TEAMS, "href")
	names := page.TextMany(MATCH_TEAM_NAMES)
	logos := page.ElementsAttr(MATCH_TEAM_LOGOS, "src")

	if len(links) != 2 || len(names) != 2 || len(logos) != 2 {
		m.tel.ReportWarning(
			report_mapper_match,
			fmt.Errorf("expected 2 teams, got %d links, %d names, %d logos", len(links), len(names), len(logos)),
			id,
		)
		return nil
	}

	rows := len(playerIDs) == 2*teamSize && len(playerNames) == 2*teamSize
	if !rows {
		m.tel.ReportWarning(
			report_mapper_match,
			fmt.Errorf("expected %d player rows, got %d ids and %d names", 2*teamSize, len(playerIDs), len(playerNames)),
			id,
		)
	}

	teams := make([]entities.Team, 0, 2)
	for side := range 2 {
		teamID, err := URLSegment(links[side], 2)
		if err != nil {
			m.tel.ReportWarning(report_mapper_match, err, id)
			return nil
		}

		roster := []entities.Player{}
		if rows {
			for row := side * teamSize; row < (side+1)*teamSize; row++ {
				p, err := entities.PlayerFromMatchPage(playerIDs[row], playerNames[row])
				if err != nil {
					m.tel.ReportWarning(report_mapper_player_from_row, err, id, row)
					continue
				}
				roster = append(roster, p)
			}
		}

		team, err := entities.TeamFromMatchPage(entities.TeamInfo{
			ID:   teamID,
			Name: names[side],
			Logo: m.image(logos[side]),
		}, roster)
		if err != nil {
			m.tel.ReportWarning(report_mapper_match, err, id)
			return nil
		}
		teams = append(teams, team)
	}
	return teams
}

func (m Mapper) matchStats(id int, playerIDs []int, cells []string) map[int]entities.MatchStats {
	if len(cells)%entities.MatchStatCount != 0 || len(cells)/entities.MatchStatCount != len(playerIDs) {
		m.tel.ReportWarning(
			report_mapper_match,
			fmt.Errorf("wrong amount of stats: %d cells for %d players", len(cells), len(playerIDs)),
			id,
		)
		return map[int]entities.MatchStats{}
	}

	stats := make(map[int]entities.MatchStats, len(playerIDs))
	for i, pid := range playerIDs {
		if pid <= 0 {
			continue
		}
		row := cells[i*entities.MatchStatCount : (i+1)*entities.MatchStatCount]
		line, err := statLine(row)
		if err != nil {
			m.tel.ReportWarning(report_mapper_match, fmt.Errorf("stats of player %d: %w", pid, err), id)
			return map[int]entities.MatchStats{}
		}
		stats[pid] = line
	}
	return stats
}

// statLine parses one row of a stats table. Blank cells become nil, any other
// cell that is not a number is an error.
func statLine(row []string) (entities.MatchStats, error) {
	ints := make([]*int, entities.MatchStatCount)
	for i := 1; i < entities.MatchStatCount; i++ {
		v, err := ParseStatInt(row[i])
		if err != nil {
			return entities.MatchStats{}, err
		}
		ints[i] = v
	}
	rating, err := ParseStatFloat(row[0])
	if err != nil {
		return entities.MatchStats{}, err
	}

	return entities.MatchStats{
		Rating:  rating,
		ACS:     ints[1],
		Kills:   ints[2],
		Deaths:  ints[3],
		Assists: ints[4],
		KD:      ints[5],
		KAST:    ints[6],
		ADR:     ints[7],
		HS:      ints[8],
		FK:      ints[9],
		FD:      ints[10],
		FKFD:    ints[11],
	}, nil
}
