package entities

import (
	"fmt"
	"log/slog"
)

type PlayerStatus int

const (
	// StatusUnknown is used when the page a player was seen on says nothing
	// about their status, e.g. a match page.
	StatusUnknown PlayerStatus = iota
	StatusActive
	StatusInactive
)

func (s PlayerStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// PlayerInfo carries the fields a page exposes about a player.
type PlayerInfo struct {
	ID          int
	DisplayName string
	Forename    string
	Surname     string
	// Team is copied without its roster.
	Team   *Team
	Image  string
	Status PlayerStatus
}

type Player struct {
	id           int
	displayName  string
	forename     string
	surname      string
	team         *Team
	image        string
	status       PlayerStatus
	completeness Completeness
}

func newPlayer(info PlayerInfo, completeness Completeness) (Player, error) {
	if err := ValidateID(info.ID); err != nil {
		return Player{}, fmt.Errorf("player: %w", err)
	}
	if completeness == Complete && info.DisplayName == "" {
		return Player{}, fmt.Errorf("player %d: %w: no display name", info.ID, ErrIncomplete)
	}

	p := Player{
		id:           info.ID,
		displayName:  info.DisplayName,
		forename:     info.Forename,
		surname:      info.Surname,
		image:        info.Image,
		status:       info.Status,
		completeness: completeness,
	}
	if info.Team != nil {
		snapshot := info.Team.withoutRoster()
		p.team = &snapshot
	}
	return p, nil
}

// PlayerFromPlayerPage builds a complete player from the player's own page.
func PlayerFromPlayerPage(info PlayerInfo) (Player, error) {
	return newPlayer(info, Complete)
}

// PlayerFromTeamPage builds a player stub from a row of a team's roster.
func PlayerFromTeamPage(info PlayerInfo) (Player, error) {
	return newPlayer(info, Stub)
}

// PlayerFromMatchPage builds a player stub from a row of a match's stat
// table, which only carries the id and alias.
func PlayerFromMatchPage(id int, displayName string) (Player, error) {
	return newPlayer(PlayerInfo{ID: id, DisplayName: displayName}, Stub)
}

func (p Player) ID() int                    { return p.id }
func (p Player) DisplayName() string        { return p.displayName }
func (p Player) Forename() string           { return p.forename }
func (p Player) Surname() string            { return p.surname }
func (p Player) Image() string              { return p.image }
func (p Player) Status() PlayerStatus       { return p.status }
func (p Player) Completeness() Completeness { return p.completeness }

// Name is the forename and surname joined, absent parts are omitted.
func (p Player) Name() string {
	return joinName(p.forename, p.surname)
}

// Team is the team the player was on when scraped, nil if none was known.
func (p Player) Team() *Team {
	return p.team
}

// Equal compares ids only. Prefer IsSamePlayer.
func (p Player) Equal(other Player) bool {
	slog.Warn(
		"comparing players by id, use IsSamePlayer to compare scraped fields",
		"left", p.id, "right", other.id,
	)
	return p.id == other.id
}

// IsSamePlayer reports whether both values describe the same player with
// the same scraped details. Team and status are ignored since they depend on
// when and where the player was scraped.
func (p Player) IsSamePlayer(other Player) bool {
	return p.id == other.id &&
		p.displayName == other.displayName &&
		p.Name() == other.Name() &&
		p.image == other.image
}

func (p Player) String() string {
	name := p.Name()
	if name == "" {
		return p.displayName
	}
	return fmt.Sprintf("%s (%s)", p.displayName, name)
}
