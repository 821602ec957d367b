package entities

import (
	"fmt"
	"maps"
	"time"
)

// Unscheduled is the epoch of a match without a known kickoff time.
const Unscheduled int64 = -1

// MatchStats is one player's stat line over every map of a match. A nil
// field means the cell was blank, e.g. old matches have no rating or KAST.
type MatchStats struct {
	Rating  *float64
	ACS     *int
	Kills   *int
	Deaths  *int
	Assists *int
	// KD is the kills minus deaths differential.
	KD   *int
	KAST *int
	ADR  *int
	HS   *int
	FK   *int
	FD   *int
	FKFD *int
}

// MatchStatCount is the number of cells in a MatchStats row.
const MatchStatCount = 12

// MatchInfo carries the fields a page exposes about a match.
type MatchInfo struct {
	ID    int
	Name  string
	Event string
	// Epoch is the kickoff time in unix seconds, or Unscheduled.
	Epoch int64
	// Teams is either empty or holds both teams.
	Teams []Team
}

type Match struct {
	id           int
	name         string
	event        string
	epoch        int64
	teams        []Team
	stats        map[int]MatchStats
	completeness Completeness
}

func newMatch(info MatchInfo, completeness Completeness) (Match, error) {
	if err := ValidateID(info.ID); err != nil {
		return Match{}, fmt.Errorf("match: %w", err)
	}
	if len(info.Teams) != 0 && len(info.Teams) != 2 {
		return Match{}, fmt.Errorf("match %d: expected 0 or 2 teams, got %d", info.ID, len(info.Teams))
	}
	m := Match{
		id:           info.ID,
		name:         info.Name,
		event:        info.Event,
		epoch:        info.Epoch,
		stats:        map[int]MatchStats{},
		completeness: completeness,
	}
	if len(info.Teams) == 2 {
		m.teams = []Team{info.Teams[0], info.Teams[1]}
	}
	return m, nil
}

// NewMatch builds a complete match from the match's own page.
func NewMatch(info MatchInfo) (Match, error) {
	return newMatch(info, Complete)
}

// MatchFromListing builds a match stub from a listing of matches.
func MatchFromListing(info MatchInfo) (Match, error) {
	return newMatch(info, Stub)
}

func (m Match) ID() int                    { return m.id }
func (m Match) Name() string               { return m.name }
func (m Match) EventName() string          { return m.event }
func (m Match) Epoch() int64               { return m.epoch }
func (m Match) Completeness() Completeness { return m.completeness }

// FullName is "<event> - <name>".
func (m Match) FullName() string {
	return fmt.Sprintf("%s - %s", m.event, m.name)
}

// Date returns the kickoff time in UTC, ok is false when the match is not
// scheduled.
func (m Match) Date() (time.Time, bool) {
	if m.epoch < 0 {
		return time.Time{}, false
	}
	return time.Unix(m.epoch, 0).UTC(), true
}

// Teams returns the two teams of the match, or nil when they are unknown.
func (m Match) Teams() []Team {
	if len(m.teams) == 0 {
		return nil
	}
	return []Team{m.teams[0], m.teams[1]}
}

func (m Match) Stats() map[int]MatchStats {
	return maps.Clone(m.stats)
}

func (m Match) PlayerStats(playerID int) (MatchStats, bool) {
	s, ok := m.stats[playerID]
	return s, ok
}

func (m *Match) SetStats(stats map[int]MatchStats) {
	m.stats = maps.Clone(stats)
	if m.stats == nil {
		m.stats = map[int]MatchStats{}
	}
}

func (m *Match) AddStats(playerID int, stats MatchStats) {
	if m.stats == nil {
		m.stats = map[int]MatchStats{}
	}
	m.stats[playerID] = stats
}

// IsSameMatch compares id, full name, date and teams.
func (m Match) IsSameMatch(other Match) bool {
	if m.id != other.id ||
		m.FullName() != other.FullName() ||
		m.epoch != other.epoch ||
		len(m.teams) != len(other.teams) {
		return false
	}
	for i := range m.teams {
		if !m.teams[i].IsSameTeam(other.teams[i]) {
			return false
		}
	}
	return true
}

func (m Match) String() string {
	if len(m.teams) == 0 {
		return fmt.Sprintf("Match(%d, %s)", m.id, m.FullName())
	}
	return fmt.Sprintf(
		"Match(%d, %s, %s vs %s)",
		m.id, m.FullName(), m.teams[0].name, m.teams[1].name,
	)
}
