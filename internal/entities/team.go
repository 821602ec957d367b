package entities

import (
	"fmt"
	"strings"
)

// TeamInfo carries the fields a page exposes about a team.
type TeamInfo struct {
	ID   int
	Name string
	Tag  string
	Logo string
}

type Team struct {
	id           int
	name         string
	tag          string
	logo         string
	roster       []Player
	rosterKnown  bool
	completeness Completeness
}

func newTeam(info TeamInfo, completeness Completeness) (Team, error) {
	if err := ValidateID(info.ID); err != nil {
		return Team{}, fmt.Errorf("team: %w", err)
	}
	if completeness == Complete && (info.Name == "" || info.Tag == "") {
		return Team{}, fmt.Errorf("team %d: %w: name and tag are required", info.ID, ErrIncomplete)
	}
	return Team{
		id:           info.ID,
		name:         info.Name,
		tag:          info.Tag,
		logo:         info.Logo,
		completeness: completeness,
	}, nil
}

// TeamFromTeamPage builds a complete team from the team's own page. The
// roster is usually attached afterwards with SetRoster, since roster players
// refer back to the team.
func TeamFromTeamPage(info TeamInfo) (Team, error) {
	return newTeam(info, Complete)
}

// TeamFromPlayerPage builds a team stub from a team card on a player page.
// Its roster is unknown.
func TeamFromPlayerPage(info TeamInfo) (Team, error) {
	return newTeam(info, Stub)
}

// TeamFromMatchPage builds a team stub from a match header, the roster is
// the five players listed for the team in the match.
func TeamFromMatchPage(info TeamInfo, roster []Player) (Team, error) {
	t, err := newTeam(info, Stub)
	if err != nil {
		return Team{}, err
	}
	t.SetRoster(roster)
	return t, nil
}

// TeamFromListing builds a team stub from a match listing that only names
// the team.
func TeamFromListing(info TeamInfo) (Team, error) {
	return newTeam(info, Stub)
}

func (t Team) ID() int                    { return t.id }
func (t Team) Name() string               { return t.name }
func (t Team) Tag() string                { return t.tag }
func (t Team) Logo() string               { return t.logo }
func (t Team) Completeness() Completeness { return t.completeness }

// Roster returns a copy of the roster and whether it is known at all. A
// known roster may be empty.
func (t Team) Roster() ([]Player, bool) {
	if !t.rosterKnown {
		return nil, false
	}
	roster := make([]Player, len(t.roster))
	copy(roster, t.roster)
	return roster, true
}

// SetRoster replaces the roster, marking it as known.
func (t *Team) SetRoster(roster []Player) {
	t.roster = make([]Player, len(roster))
	copy(t.roster, roster)
	t.rosterKnown = true
}

// AddToRoster appends players to the roster, marking it as known.
func (t *Team) AddToRoster(players ...Player) {
	t.roster = append(t.roster, players...)
	t.rosterKnown = true
}

func (t Team) withoutRoster() Team {
	t.roster = nil
	t.rosterKnown = false
	return t
}

// IsSameTeam compares id, name and tag.
func (t Team) IsSameTeam(other Team) bool {
	return t.id == other.id &&
		t.name == other.name &&
		t.tag == other.tag
}

// HasSameRoster is true when both rosters have the same length and the
// players at each position are the same player.
func (t Team) HasSameRoster(other Team) bool {
	if len(t.roster) != len(other.roster) {
		return false
	}
	for i := range t.roster {
		if !t.roster[i].IsSamePlayer(other.roster[i]) {
			return false
		}
	}
	return true
}

func (t Team) String() string {
	out := fmt.Sprintf("Team(%d, %s, %s, %s", t.id, t.name, t.tag, t.logo)
	if len(t.roster) > 0 {
		aliases := make([]string, len(t.roster))
		for i, p := range t.roster {
			aliases[i] = fmt.Sprintf("'%s'", p.displayName)
		}
		out += fmt.Sprintf(", [%s]", strings.Join(aliases, ", "))
	}
	return out + ")"
}
