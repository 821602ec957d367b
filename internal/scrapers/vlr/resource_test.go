package vlr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/entities"

	"github.com/stretchr/testify/require"
)

func TestResourceURL(t *testing.T) {
	r, err := NewResource("https://www.vlr.gg/player/<res_id>")
	require.NoError(t, err)

	url, err := r.URL(4004)
	require.NoError(t, err)
	require.Equal(t, "https://www.vlr.gg/player/4004", url)

	for _, id := range []int{0, -100} {
		_, err = r.URL(id)
		require.ErrorIs(t, err, entities.ErrInvalidID)
	}

	_, err = NewResource("https://www.vlr.gg/player/")
	require.Error(t, err)
	_, err = NewResource("https://www.vlr.gg/<res_id>/<res_id>")
	require.Error(t, err)

	res := siteResources("https://www.vlr.gg/")
	url, err = res.teamMatches(3).URL(2)
	require.NoError(t, err)
	require.Equal(t, "https://www.vlr.gg/team/matches/2/?page=3", url)
	url, err = res.upcoming.URL(2)
	require.NoError(t, err)
	require.Equal(t, "https://www.vlr.gg/matches/?page=2", url)
}

func TestResourceFetch(t *testing.T) {
	transport := newFakeTransport()
	transport.serve("https://www.vlr.gg/api/1", []byte(`{"name": "Sentinels"}`))
	r, err := NewResource("https://www.vlr.gg/api/<res_id>")
	require.NoError(t, err)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, r.FetchJSON(context.Background(), transport, 1, &out))
	require.Equal(t, "Sentinels", out.Name)

	_, err = r.Fetch(context.Background(), transport, 2)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, "https://www.vlr.gg/api/2", statusErr.URL)
	require.Equal(t, 404, statusErr.Code)
	require.Equal(
		t,
		"invalid status code 404 received when fetching data from https://www.vlr.gg/api/2",
		statusErr.Error(),
	)

	_, err = r.Fetch(context.Background(), transport, 0)
	require.ErrorIs(t, err, entities.ErrInvalidID)
	require.Len(t, transport.requested(), 2)
}

func TestHTTPTransport(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("<html>" + r.URL.Path + "</html>"))
	}))
	defer server.Close()

	opts := DefaultHTTPOptions()
	opts.RateLimit = 0
	opts.Retries = 0
	opts.CacheTTL = time.Minute
	transport := NewHTTPTransport(opts, &telemetry.Recorder{})
	ctx := context.Background()

	res, err := transport.Get(ctx, server.URL+"/team/2")
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)
	require.Equal(t, "<html>/team/2</html>", string(res.Body))

	// served from the cache
	_, err = transport.Get(ctx, server.URL+"/team/2")
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.Load())

	res, err = transport.Get(ctx, server.URL+"/missing")
	require.NoError(t, err)
	require.Equal(t, 404, res.StatusCode)
	_, err = transport.Get(ctx, server.URL+"/missing")
	require.NoError(t, err)
	require.Equal(t, int32(3), hits.Load())
}
