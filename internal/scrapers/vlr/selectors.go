package vlr

import (
	"strings"

	"vlrscraper/pkg/htmlutil"
)

// Every expression that depends on vlr.gg's markup lives in this file, a
// redesign of the site should only require changes here.

// player page
var (
	PLAYER_DISPLAYNAME = htmlutil.Xpath("h1", htmlutil.Class("wf-title"))
	PLAYER_FULLNAME    = htmlutil.Xpath("h2", htmlutil.Class("player-real-name"))
	PLAYER_IMAGE_SRC   = htmlutil.Join(htmlutil.Xpath("div", htmlutil.Class("wf-avatar")), "img")

	// every team card, current teams first then past teams
	PLAYER_TEAMS = htmlutil.Xpath("a", htmlutil.Class("wf-module-item"), htmlutil.Attr("href", "/team/"))

	PLAYER_CURRENT_TEAM      = htmlutil.Nth(htmlutil.Xpath("a", htmlutil.Class("wf-module-item mod-first")), 1)
	PLAYER_CURRENT_TEAM_NAME = htmlutil.JoinFrom(PLAYER_CURRENT_TEAM, "div[2]", "div[1]")
	PLAYER_CURRENT_TEAM_IMG  = htmlutil.JoinFrom(PLAYER_CURRENT_TEAM, "img")
	PLAYER_INACTIVE_CHECK    = htmlutil.JoinFrom(PLAYER_CURRENT_TEAM, htmlutil.Xpath("div", htmlutil.Class("wf-tag")))
)

func playerTeam(n int) string {
	return htmlutil.Nth(PLAYER_TEAMS, n)
}

func playerTeamName(n int) string {
	return htmlutil.JoinFrom(playerTeam(n), "div[2]", "div[1]")
}

func playerTeamImg(n int) string {
	return htmlutil.JoinFrom(playerTeam(n), "img")
}

// team page
var (
	TEAM_DISPLAY_NAME = htmlutil.Join(htmlutil.Xpath("div", htmlutil.Class("team-header-name")), "h1")
	TEAM_TAG          = htmlutil.Xpath("h2", htmlutil.Class("team-header-tag"))
	TEAM_IMG          = htmlutil.Join(htmlutil.Xpath("div", htmlutil.Class("team-header-logo")), "img")

	TEAM_ROSTER_ITEMS         = htmlutil.Join(htmlutil.Xpath("div", htmlutil.Class("team-roster-item")), "a")
	TEAM_ROSTER_ITEM_ALIAS    = htmlutil.Join(TEAM_ROSTER_ITEMS, htmlutil.Xpath("div", htmlutil.Class("team-roster-item-name-alias")))
	TEAM_ROSTER_ITEM_FULLNAME = htmlutil.Join(TEAM_ROSTER_ITEMS, htmlutil.Xpath("div", htmlutil.Class("team-roster-item-name-real")))
	TEAM_ROSTER_ITEM_IMAGE    = htmlutil.Join(TEAM_ROSTER_ITEMS, htmlutil.Xpath("div", htmlutil.Class("team-roster-item-img")), "img")
)

// teamRosterTag finds the badge ("Inactive", "Sub", ...) of the roster entry
// linking to the player with the given alias.
func teamRosterTag(alias string) string {
	return htmlutil.Join(
		htmlutil.Xpath("a", htmlutil.Attr("href", strings.ToLower(alias))),
		htmlutil.Xpath("div", htmlutil.Class("wf-tag")),
	)
}

// match page
var (
	MATCH_NAME       = htmlutil.Xpath("div", htmlutil.Class("match-header-event-series"))
	MATCH_EVENT_NAME = htmlutil.Join(htmlutil.Xpath("a", htmlutil.Class("match-header-event")), "div", "div[1]")
	MATCH_DATE       = htmlutil.Join(
		htmlutil.Xpath("div", htmlutil.Class("match-header-date")),
		htmlutil.Xpath("div", htmlutil.Class("moment-tz-convert"), htmlutil.Attr("data__moment__format", "dddd")),
	)

	MATCH_TEAMS      = htmlutil.Xpath("a", htmlutil.Class("match-header-link"))
	MATCH_TEAM_NAMES = htmlutil.Join(MATCH_TEAMS, htmlutil.Xpath("div", htmlutil.Class("wf-title-med")))
	MATCH_TEAM_LOGOS = htmlutil.Join(MATCH_TEAMS, "img")

	// stats over every map of the match
	MATCH_STATS_ALL    = htmlutil.Xpath("div", htmlutil.Class("vm-stats-game"), htmlutil.Attr("data__game__id", "all"))
	MATCH_PLAYER_TABLE = htmlutil.Join(MATCH_STATS_ALL, htmlutil.Xpath("td", htmlutil.Class("mod-player")), "a")
	MATCH_PLAYER_NAMES = htmlutil.Join(MATCH_PLAYER_TABLE, htmlutil.Xpath("div", htmlutil.Class("text-of")))
	MATCH_PLAYER_STATS = htmlutil.Join(MATCH_STATS_ALL, htmlutil.Xpath("td", htmlutil.Class("mod-stat")), htmlutil.Xpath("span", htmlutil.Class("mod-both")))
)

// match listings of a player or a team
var (
	PLAYER_MATCHES     = htmlutil.Xpath("a", htmlutil.Class("m-item"))
	PLAYER_MATCH_DATES = htmlutil.Join(PLAYER_MATCHES, htmlutil.Xpath("div", htmlutil.Class("m-item-date")))
	TEAM_MATCHES       = htmlutil.Xpath("a", htmlutil.Class("m-item"))
	TEAM_MATCH_DATES   = htmlutil.Join(TEAM_MATCHES, htmlutil.Xpath("div", htmlutil.Class("m-item-date")))
)

// upcoming matches
var (
	UPCOMING_MATCHES      = htmlutil.Xpath("a", htmlutil.Class("match-item"))
	UPCOMING_TEAM_NAMES   = htmlutil.Join(UPCOMING_MATCHES, htmlutil.Xpath("div", htmlutil.Class("match-item-vs-team-name")), htmlutil.Xpath("div", htmlutil.Class("text-of")))
	UPCOMING_EVENT_NAMES  = htmlutil.Join(UPCOMING_MATCHES, htmlutil.Xpath("div", htmlutil.Class("match-item-event text-of")))
	UPCOMING_EVENT_SERIES = htmlutil.Join(UPCOMING_MATCHES, htmlutil.Xpath("div", htmlutil.Class("match-item-event-series")))
)
