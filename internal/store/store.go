// Package store persists scraped entities to sqlite (or a remote libsql
// database).
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"vlrscraper/internal/components/assert"
	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/entities"
	"vlrscraper/pkg/sqliteutil"
)

//go:embed schema.sql
var Schema string

const (
	report_db_query = "db.query"
	report_db_tx    = "db.tx"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db  *sql.DB
	tel telemetry.API
}

// Open opens (and migrates) the database at path, see sqliteutil.OpenDB.
func Open(path string, tel telemetry.API) (Store, error) {
	db, err := sqliteutil.OpenDB(Schema, path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(db, tel), nil
}

func NewStore(db *sql.DB, tel telemetry.API) Store {
	assert.NotNil(db)
	assert.NotNil(tel)
	return Store{
		db:  db,
		tel: telemetry.NewScopedAPI("store", tel),
	}
}

func (s Store) Close() error {
	return s.db.Close()
}

func (s Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.tel.ReportBroken(report_db_tx, fmt.Errorf("begin: %w", err))
		return err
	}
	defer tx.Rollback()

	err = fn(tx)
	if err != nil {
		return err
	}
	err = tx.Commit()
	if err != nil {
		s.tel.ReportBroken(report_db_tx, fmt.Errorf("commit: %w", err))
		return err
	}
	return nil
}

// blank values never overwrite known ones, a stub seen after the complete
// entity keeps the complete entity's fields.
const upsertTeam = `
insert into teams(id, name, tag, logo) values (?, ?, ?, ?)
on conflict(id) do update set
    name = coalesce(nullif(excluded.name, ''), teams.name),
    tag = coalesce(nullif(excluded.tag, ''), teams.tag),
    logo = coalesce(nullif(excluded.logo, ''), teams.logo)`

const upsertPlayer = `
insert into players(id, display_name, forename, surname, image, status, team_id)
values (?, ?, ?, ?, ?, ?, ?)
on conflict(id) do update set
    display_name = coalesce(nullif(excluded.display_name, ''), players.display_name),
    forename = coalesce(nullif(excluded.forename, ''), players.forename),
    surname = coalesce(nullif(excluded.surname, ''), players.surname),
    image = coalesce(nullif(excluded.image, ''), players.image),
    status = case when excluded.status = 0 then players.status else excluded.status end,
    team_id = coalesce(excluded.team_id, players.team_id)`

func (s Store) saveTeam(ctx context.Context, tx *sql.Tx, team entities.Team) error {
	_, err := tx.ExecContext(ctx, upsertTeam, team.ID(), team.Name(), team.Tag(), team.Logo())
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "upsertTeam", team.ID())
	}
	return err
}

func (s Store) savePlayer(ctx context.Context, tx *sql.Tx, player entities.Player) error {
	var teamID *int
	if team := player.Team(); team != nil {
		err := s.saveTeam(ctx, tx, *team)
		if err != nil {
			return err
		}
		teamID = entities.Ptr(team.ID())
	}

	_, err := tx.ExecContext(
		ctx, upsertPlayer,
		player.ID(),
		player.DisplayName(),
		player.Forename(),
		player.Surname(),
		player.Image(),
		int(player.Status()),
		teamID,
	)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "upsertPlayer", player.ID())
	}
	return err
}

// SavePlayer stores a player and their current team.
func (s Store) SavePlayer(ctx context.Context, player entities.Player) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.savePlayer(ctx, tx, player)
	})
}

// SaveTeam stores a team and, if known, its roster.
func (s Store) SaveTeam(ctx context.Context, team entities.Team) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		err := s.saveTeam(ctx, tx, team)
		if err != nil {
			return err
		}
		roster, _ := team.Roster()
		for _, player := range roster {
			err = s.savePlayer(ctx, tx, player)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func statColumns(stats *entities.MatchStats) []any {
	return []any{
		&stats.Rating,
		&stats.ACS,
		&stats.Kills,
		&stats.Deaths,
		&stats.Assists,
		&stats.KD,
		&stats.KAST,
		&stats.ADR,
		&stats.HS,
		&stats.FK,
		&stats.FD,
		&stats.FKFD,
	}
}

// statValues dereferences statColumns for use as query arguments.
func statValues(stats entities.MatchStats) []any {
	values := make([]any, 0, entities.MatchStatCount)
	if stats.Rating != nil {
		values = append(values, *stats.Rating)
	} else {
		values = append(values, nil)
	}
	for _, v := range []*int{
		stats.ACS, stats.Kills, stats.Deaths, stats.Assists, stats.KD,
		stats.KAST, stats.ADR, stats.HS, stats.FK, stats.FD, stats.FKFD,
	} {
		if v != nil {
			values = append(values, *v)
		} else {
			values = append(values, nil)
		}
	}
	return values
}

// SaveMatch replaces everything stored about a match.
func (s Store) SaveMatch(ctx context.Context, match entities.Match) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "delete from matches where id = ?", match.ID())
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "deleteMatch", match.ID())
			return err
		}
		// foreign keys are off by default, cascades cannot be relied on
		for _, table := range []string{"match_teams", "match_players", "match_stats"} {
			_, err = tx.ExecContext(ctx, "delete from "+table+" where match_id = ?", match.ID())
			if err != nil {
				s.tel.ReportBroken(report_db_query, err, "delete "+table, match.ID())
				return err
			}
		}

		_, err = tx.ExecContext(
			ctx,
			"insert into matches(id, name, event, epoch, complete) values (?, ?, ?, ?, ?)",
			match.ID(), match.Name(), match.EventName(), match.Epoch(),
			match.Completeness() == entities.Complete,
		)
		if err != nil {
			s.tel.ReportBroken(report_db_query, err, "insertMatch", match.ID())
			return err
		}

		for side, team := range match.Teams() {
			_, err = tx.ExecContext(
				ctx,
				"insert into match_teams(match_id, side, team_id, name, logo) values (?, ?, ?, ?, ?)",
				match.ID(), side, team.ID(), team.Name(), team.Logo(),
			)
			if err != nil {
				s.tel.ReportBroken(report_db_query, err, "insertMatchTeam", match.ID(), side)
				return err
			}

			roster, _ := team.Roster()
			for position, player := range roster {
				_, err = tx.ExecContext(
					ctx,
					"insert into match_players(match_id, side, position, player_id, display_name) values (?, ?, ?, ?, ?)",
					match.ID(), side, position, player.ID(), player.DisplayName(),
				)
				if err != nil {
					s.tel.ReportBroken(report_db_query, err, "insertMatchPlayer", match.ID(), player.ID())
					return err
				}
			}
		}

		for playerID, stats := range match.Stats() {
			args := append([]any{match.ID(), playerID}, statValues(stats)...)
			_, err = tx.ExecContext(
				ctx,
				`insert into match_stats(
					match_id, player_id,
					rating, acs, kills, deaths, assists, kd, kast, adr, hs, fk, fd, fkfd
				) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				args...,
			)
			if err != nil {
				s.tel.ReportBroken(report_db_query, err, "insertMatchStats", match.ID(), playerID)
				return err
			}
		}
		return nil
	})
}

type matchRow struct {
	name     string
	event    string
	epoch    int64
	complete bool
}

// LoadMatch reads back a match stored with SaveMatch, ErrNotFound if there
// is none.
func (s Store) LoadMatch(ctx context.Context, id int) (entities.Match, error) {
	var row matchRow
	err := s.db.QueryRowContext(
		ctx,
		"select name, event, epoch, complete from matches where id = ?",
		id,
	).Scan(&row.name, &row.event, &row.epoch, &row.complete)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Match{}, fmt.Errorf("match %d: %w", id, ErrNotFound)
	}
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "selectMatch", id)
		return entities.Match{}, err
	}

	teams, err := s.loadMatchTeams(ctx, id)
	if err != nil {
		return entities.Match{}, err
	}

	info := entities.MatchInfo{
		ID:    id,
		Name:  row.name,
		Event: row.event,
		Epoch: row.epoch,
		Teams: teams,
	}
	var match entities.Match
	if row.complete {
		match, err = entities.NewMatch(info)
	} else {
		match, err = entities.MatchFromListing(info)
	}
	if err != nil {
		return entities.Match{}, err
	}

	stats, err := s.loadMatchStats(ctx, id)
	if err != nil {
		return entities.Match{}, err
	}
	match.SetStats(stats)
	return match, nil
}

func (s Store) loadMatchTeams(ctx context.Context, matchID int) ([]entities.Team, error) {
	rosters := map[int][]entities.Player{}
	rows, err := s.db.QueryContext(
		ctx,
		"select side, player_id, display_name from match_players where match_id = ? order by side, position",
		matchID,
	)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "selectMatchPlayers", matchID)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var side, playerID int
		var name string
		err = rows.Scan(&side, &playerID, &name)
		if err != nil {
			return nil, err
		}
		player, err := entities.PlayerFromMatchPage(playerID, name)
		if err != nil {
			return nil, err
		}
		rosters[side] = append(rosters[side], player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	teamRows, err := s.db.QueryContext(
		ctx,
		"select side, team_id, name, logo from match_teams where match_id = ? order by side",
		matchID,
	)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "selectMatchTeams", matchID)
		return nil, err
	}
	defer teamRows.Close()

	var teams []entities.Team
	for teamRows.Next() {
		var side int
		var info entities.TeamInfo
		err = teamRows.Scan(&side, &info.ID, &info.Name, &info.Logo)
		if err != nil {
			return nil, err
		}
		team, err := entities.TeamFromMatchPage(info, rosters[side])
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, teamRows.Err()
}

func (s Store) loadMatchStats(ctx context.Context, matchID int) (map[int]entities.MatchStats, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select player_id, rating, acs, kills, deaths, assists, kd, kast, adr, hs, fk, fd, fkfd
		from match_stats where match_id = ?`,
		matchID,
	)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "selectMatchStats", matchID)
		return nil, err
	}
	defer rows.Close()

	out := map[int]entities.MatchStats{}
	for rows.Next() {
		var playerID int
		var stats entities.MatchStats
		err = rows.Scan(append([]any{&playerID}, statColumns(&stats)...)...)
		if err != nil {
			return nil, err
		}
		out[playerID] = stats
	}
	return out, rows.Err()
}

// MatchIDs lists the stored matches a team played in, newest first.
func (s Store) MatchIDs(ctx context.Context, teamID int) ([]int, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select m.id from matches m
		join match_teams t on t.match_id = m.id
		where t.team_id = ?
		order by m.epoch desc, m.id desc`,
		teamID,
	)
	if err != nil {
		s.tel.ReportBroken(report_db_query, err, "selectMatchIDs", teamID)
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		err = rows.Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
