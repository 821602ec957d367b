package vlr

import (
	"context"
	"testing"

	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/entities"

	"github.com/stretchr/testify/require"
)

const upcomingPage = `<html><body>
<div class="wf-label mod-large">Tue, October 1, 2024</div>
<div class="wf-card">
	<a href="/408416/fnatic-vs-team-heretics-champions-tour-2024-champions-lower-final" class="wf-module-item match-item mod-color mod-bg-after-striped_purple">
		<div class="match-item-time">2:00 pm</div>
		<div class="match-item-vs">
			<div class="match-item-vs-team">
				<div class="match-item-vs-team-name"><div class="text-of"><span class="flag mod-eu"></span> FNATIC</div></div>
				<div class="match-item-vs-team-score">–</div>
			</div>
			<div class="match-item-vs-team">
				<div class="match-item-vs-team-name"><div class="text-of"><span class="flag mod-eu"></span> Team Heretics</div></div>
				<div class="match-item-vs-team-score">–</div>
			</div>
		</div>
		<div class="match-item-event text-of">
			<div class="match-item-event-series text-of">Playoffs: Lower Final</div>
			Champions Tour 2024: Champions
		</div>
	</a>
	<a href="/408417/edward-gaming-vs-tbd-champions-tour-2024-champions-gf" class="wf-module-item match-item">
		<div class="match-item-vs">
			<div class="match-item-vs-team"><div class="match-item-vs-team-name"><div class="text-of">EDward Gaming</div></div></div>
			<div class="match-item-vs-team"><div class="match-item-vs-team-name"><div class="text-of">TBD</div></div></div>
		</div>
		<div class="match-item-event text-of">
			<div class="match-item-event-series text-of">Playoffs: Grand Final</div>
			Champions Tour 2024: Champions
		</div>
	</a>
</div>
</body></html>`

func TestUpcoming(t *testing.T) {
	scraper, transport, _ := newTestScraper(t)
	transport.serve("https://www.vlr.gg/matches/?page=1", []byte(upcomingPage))

	matches, err := scraper.Upcoming(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	first := matches[0]
	require.Equal(t, 408416, first.ID())
	require.Equal(t, entities.Unscheduled, first.Epoch())
	require.Equal(t, "Champions Tour 2024: Champions - Playoffs: Lower Final", first.FullName())
	require.Equal(t, entities.Stub, first.Completeness())
	require.Empty(t, first.Stats())

	teams := first.Teams()
	require.Len(t, teams, 2)
	require.Equal(t, "FNATIC", teams[0].Name())
	require.Equal(t, "Team Heretics", teams[1].Name())
	for _, team := range teams {
		require.Equal(t, PlaceholderTeamID, team.ID())
		require.Equal(t, "", team.Logo())
		require.Equal(t, entities.Stub, team.Completeness())
	}

	require.Equal(t, "TBD", matches[1].Teams()[1].Name())

	_, err = scraper.Upcoming(context.Background(), 0)
	require.ErrorIs(t, err, entities.ErrInvalidID)
}

func TestUpcomingOddTeamNames(t *testing.T) {
	rec := &telemetry.Recorder{}
	mapper := NewMapper(DefaultBaseURL, rec)

	page := parseTestPage(t, []byte(`<html><body>
		<a class="match-item" href="/1/x">
			<div class="match-item-vs-team-name"><div class="text-of">FNATIC</div></div>
		</a>
	</body></html>`))
	require.Empty(t, mapper.Upcoming(page))
	require.Len(t, rec.Reports("warning"), 1)
}
