package vlr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"vlrscraper/internal/components/chrono"
	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/entities"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mutex    sync.Mutex
	pages    map[string]Response
	requests []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{pages: map[string]Response{}}
}

func (f *fakeTransport) serve(url string, body []byte) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.pages[url] = Response{StatusCode: 200, Body: body}
}

func (f *fakeTransport) Get(ctx context.Context, url string) (Response, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.requests = append(f.requests, url)
	res, ok := f.pages[url]
	if !ok {
		return Response{StatusCode: 404, Body: []byte("<html><body>Page not found</body></html>")}, nil
	}
	return res, nil
}

func (f *fakeTransport) requested() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.requests...)
}

func readFixture(t testing.TB, name string) []byte {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return body
}

var kickoff = time.Date(2024, 9, 29, 21, 40, 0, 0, time.FixedZone("EDT", -4*3600))

func newTestScraper(t testing.TB) (*Scraper, *fakeTransport, *telemetry.Recorder) {
	transport := newFakeTransport()
	transport.serve("https://www.vlr.gg/player/29873", readFixture(t, "player_29873.html"))
	transport.serve("https://www.vlr.gg/player/31207", readFixture(t, "player_31207.html"))
	transport.serve("https://www.vlr.gg/team/2", readFixture(t, "team_2.html"))
	transport.serve("https://www.vlr.gg/408415", readFixture(t, "match_408415.html"))
	transport.serve("https://www.vlr.gg/3490", readFixture(t, "match_3490.html"))

	rec := &telemetry.Recorder{}
	scraper := NewScraper(Options{
		Transport: transport,
		Workers:   4,
		Tel:       rec,
		Time:      chrono.FixedImpl{At: kickoff.AddDate(0, 0, 1)},
	})
	return scraper, transport, rec
}

func TestPlayer(t *testing.T) {
	scraper, _, _ := newTestScraper(t)
	ctx := context.Background()

	benjy, err := scraper.Player(ctx, 29873)
	require.NoError(t, err)
	require.Equal(t, 29873, benjy.ID())
	require.Equal(t, "benjyfishy", benjy.DisplayName())
	require.Equal(t, "Benjamin Fish", benjy.Name())
	require.Equal(t, "https://owcdn.net/img/665b77ca4bc4d.png", benjy.Image())
	require.Equal(t, entities.StatusActive, benjy.Status())
	require.Equal(t, entities.Complete, benjy.Completeness())

	require.NotNil(t, benjy.Team())
	require.Equal(t, 1001, benjy.Team().ID())
	require.Equal(t, "Team Heretics", benjy.Team().Name())
	require.Equal(t, "https://owcdn.net/img/637b755224c12.png", benjy.Team().Logo())
	require.Equal(t, entities.Stub, benjy.Team().Completeness())

	carpe, err := scraper.Player(ctx, 31207)
	require.NoError(t, err)
	require.Equal(t, "Carpe", carpe.DisplayName())
	require.Equal(t, "Lee Jae-hyeok", carpe.Name())
	require.Equal(t, 14, carpe.Team().ID())
	require.Equal(t, "https://owcdn.net/img/65cc6f0f4da99.png", carpe.Image())
	require.Equal(t, entities.StatusInactive, carpe.Status())
}

func TestTeamHistory(t *testing.T) {
	scraper, _, _ := newTestScraper(t)

	teams, err := scraper.TeamHistory(context.Background(), 29873)
	require.NoError(t, err)

	type summary struct {
		ID   int
		Name string
		Logo string
	}
	got := make([]summary, len(teams))
	for i, team := range teams {
		got[i] = summary{ID: team.ID(), Name: team.Name(), Logo: team.Logo()}
	}
	expected := []summary{
		{ID: 1001, Name: "Team Heretics", Logo: "https://owcdn.net/img/637b755224c12.png"},
		{ID: 397, Name: "BBL Esports", Logo: "https://owcdn.net/img/6009f963577f4.png"},
		{ID: 1184, Name: "FUT Esports", Logo: "https://www.vlr.gg/img/vlr/tmp/vlr.png"},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatal(diff)
	}

	none, err := scraper.TeamHistory(context.Background(), 31208)
	require.Nil(t, none)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
}

func TestTeam(t *testing.T) {
	scraper, _, rec := newTestScraper(t)

	sen, err := scraper.Team(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 2, sen.ID())
	require.Equal(t, "Sentinels", sen.Name())
	require.Equal(t, "SEN", sen.Tag())
	require.Equal(t, "https://owcdn.net/img/62875027c8e06.png", sen.Logo())
	require.Equal(t, entities.Complete, sen.Completeness())

	roster, known := sen.Roster()
	require.True(t, known)
	require.Len(t, roster, 8)

	johnqt, err := entities.PlayerFromTeamPage(entities.PlayerInfo{
		ID:          1265,
		DisplayName: "johnqt",
		Forename:    "Mohamed",
		Surname:     "Ouarid",
		Image:       "https://owcdn.net/img/65622aa13dc03.png",
	})
	require.NoError(t, err)
	require.True(t, roster[0].IsSamePlayer(johnqt))
	require.Equal(t, entities.StatusActive, roster[0].Status())
	require.Equal(t, 2, roster[0].Team().ID())

	sick, err := entities.PlayerFromTeamPage(entities.PlayerInfo{
		ID:          45,
		DisplayName: "SicK",
		Forename:    "Hunter",
		Surname:     "Mims",
		Image:       "https://owcdn.net/img/6399a54fc4472.png",
	})
	require.NoError(t, err)
	require.True(t, roster[4].IsSamePlayer(sick))
	require.Equal(t, entities.StatusInactive, roster[4].Status())

	// tags other than "Inactive" keep the player active
	require.Equal(t, "Sacy", roster[5].DisplayName())
	require.Equal(t, entities.StatusActive, roster[5].Status())
	require.Equal(t, "https://www.vlr.gg/img/base/ph/sil.png", roster[6].Image())

	require.Empty(t, rec.Reports("warning"))
}

func TestMatch(t *testing.T) {
	scraper, _, _ := newTestScraper(t)

	match, err := scraper.Match(context.Background(), 408415)
	require.NoError(t, err)
	require.Equal(t, int64(1727660400), match.Epoch())
	require.Equal(t, "Playoffs: Grand Final", match.Name())
	require.Equal(t, "Champions Tour 2024: Americas Stage 2", match.EventName())
	require.Equal(t, entities.Complete, match.Completeness())

	teams := match.Teams()
	require.Len(t, teams, 2)
	require.Equal(t, 2, teams[0].ID())
	require.Equal(t, "Sentinels", teams[0].Name())
	require.Equal(t, "https://owcdn.net/img/62875027c8e06.png", teams[0].Logo())
	require.Equal(t, 11058, teams[1].ID())
	require.Equal(t, "G2 Esports", teams[1].Name())

	senRoster, _ := teams[0].Roster()
	require.Len(t, senRoster, 5)
	require.Equal(t, 4004, senRoster[0].ID())
	require.Equal(t, "Zekken", senRoster[0].DisplayName())
	require.Equal(t, entities.StatusUnknown, senRoster[0].Status())
	g2Roster, _ := teams[1].Roster()
	require.Len(t, g2Roster, 5)
	require.Equal(t, "trent", g2Roster[0].DisplayName())
	require.Equal(t, "icy", g2Roster[4].DisplayName())

	require.Len(t, match.Stats(), 10)
	zekken, ok := match.PlayerStats(4004)
	require.True(t, ok)
	expected := entities.MatchStats{
		Rating:  entities.Ptr(1.19),
		ACS:     entities.Ptr(271),
		Kills:   entities.Ptr(45),
		Deaths:  entities.Ptr(36),
		Assists: entities.Ptr(8),
		KD:      entities.Ptr(9),
		KAST:    entities.Ptr(71),
		ADR:     entities.Ptr(164),
		HS:      entities.Ptr(21),
		FK:      entities.Ptr(7),
		FD:      entities.Ptr(5),
		FKFD:    entities.Ptr(2),
	}
	if diff := cmp.Diff(expected, zekken); diff != "" {
		t.Fatal(diff)
	}

	johnqt, ok := match.PlayerStats(1265)
	require.True(t, ok)
	require.Equal(t, -6, *johnqt.KD)
	require.Equal(t, -1, *johnqt.FKFD)
}

func TestMatchWithoutRating(t *testing.T) {
	scraper, _, _ := newTestScraper(t)

	match, err := scraper.Match(context.Background(), 3490)
	require.NoError(t, err)
	require.Equal(t, int64(1607194800), match.Epoch())

	for id, stats := range match.Stats() {
		require.Nil(t, stats.Rating, id)
		require.Nil(t, stats.KAST, id)
		require.NotNil(t, stats.ACS, id)
		require.NotNil(t, stats.ADR, id)
	}
	vanity, ok := match.PlayerStats(3749)
	require.True(t, ok)
	require.Equal(t, 200, *vanity.ACS)
	require.Equal(t, 1, *vanity.KD)
}

func TestMatchWithBrokenStat(t *testing.T) {
	scraper, transport, rec := newTestScraper(t)
	page := strings.Replace(
		string(readFixture(t, "match_408415.html")),
		`<span class="side mod-side mod-both">45</span>`,
		`<span class="side mod-side mod-both">abc</span>`,
		1,
	)
	transport.serve("https://www.vlr.gg/408416", []byte(page))

	match, err := scraper.Match(context.Background(), 408416)
	require.NoError(t, err)
	require.Len(t, match.Teams(), 2)
	require.Empty(t, match.Stats())

	var mapperWarnings []error
	for _, w := range rec.Reports("warning") {
		if w.Id == "vlr: "+report_mapper_match {
			mapperWarnings = append(mapperWarnings, w.Params[0].(error))
		}
	}
	require.Len(t, mapperWarnings, 1)
	require.ErrorContains(t, mapperWarnings[0], `"abc"`)
}

func TestMissingPages(t *testing.T) {
	scraper, transport, _ := newTestScraper(t)
	ctx := context.Background()

	match, err := scraper.Match(ctx, 0)
	require.Nil(t, match)
	require.ErrorIs(t, err, entities.ErrInvalidID)
	require.Empty(t, transport.requested())

	match, err = scraper.Match(ctx, 999999)
	require.Nil(t, match)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, 404, statusErr.Code)
	require.Equal(t, "https://www.vlr.gg/999999", statusErr.URL)

	player, err := scraper.Player(ctx, -100)
	require.Nil(t, player)
	require.ErrorIs(t, err, entities.ErrInvalidID)

	team, err := scraper.Team(ctx, 3)
	require.Nil(t, team)
	require.ErrorAs(t, err, &statusErr)
}

func TestMatches(t *testing.T) {
	scraper, _, rec := newTestScraper(t)

	results := scraper.Matches(context.Background(), []int{408415, 999999, 3490, 0})
	require.Len(t, results, 4)
	require.NotNil(t, results[0])
	require.Equal(t, 408415, results[0].ID())
	require.Nil(t, results[1])
	require.NotNil(t, results[2])
	require.Equal(t, 3490, results[2].ID())
	require.Nil(t, results[3])

	warnings := rec.Reports("warning")
	require.NotEmpty(t, warnings)
	require.Equal(t, "vlr: "+report_scraper_matches, warnings[len(warnings)-1].Id)

	require.Empty(t, scraper.Matches(context.Background(), nil))
}

func TestLastDays(t *testing.T) {
	scraper, _, _ := newTestScraper(t)

	w := scraper.LastDays(30)
	require.Equal(t, kickoff.AddDate(0, 0, 1).Unix(), w.To.Unix())
	require.Equal(t, kickoff.AddDate(0, 0, -29).Unix(), w.From.Unix())
	require.True(t, w.contains(kickoff.Unix()))
	require.False(t, w.contains(kickoff.AddDate(0, 0, -30).Unix()))
}
