package telemetry

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mutex    sync.Mutex
	messages map[string]string
}

func (m *memoryOutput) Write(id string, contents string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.messages == nil {
		m.messages = map[string]string{}
	}
	m.messages[id] = contents
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Served-By", "test")
		_, _ = w.Write([]byte("<h1>Sentinels</h1>"))
	}))
	defer server.Close()

	rec := &Recorder{}
	output := &memoryOutput{}
	client := resty.New()
	InstrumentResty(client, rec, output)

	_, err := client.R().SetHeader("Accept", "text/html").Get(server.URL + "/team/2")
	require.NoError(t, err)

	debug := rec.Reports("debug")
	require.Len(t, debug, 2)
	require.Equal(t, report_resty_request, debug[0].Id)
	require.Equal(t, report_resty_response, debug[1].Id)

	message := output.messages["1"]
	require.Contains(t, message, "> GET "+server.URL+"/team/2\n")
	require.Contains(t, message, "Accept: text/html\n")
	require.Contains(t, message, "< 200\n")
	require.Contains(t, message, "X-Served-By: test\n")
	require.Contains(t, message, "<h1>Sentinels</h1>")

	server.Close()
	_, err = client.R().Get(server.URL + "/team/2")
	require.Error(t, err)
	require.Len(t, rec.Reports("broken"), 1)
}
