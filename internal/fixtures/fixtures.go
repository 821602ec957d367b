// Package fixtures replays recorded vlr.gg responses so the scraper can be
// exercised without the network.
//
// The file format is:
//
//	{
//		"regressions": {
//			"https://www.vlr.gg/team/2": {"status-code": 200, "content": "<!DOCTYPE html>..."}
//		}
//	}
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"vlrscraper/internal/components/assert"
	"vlrscraper/internal/components/telemetry"
	"vlrscraper/internal/scrapers/vlr"

	"github.com/titanous/json5"
)

const (
	report_fixtures_get  = "fixtures.get"
	report_fixtures_save = "fixtures.save"
)

var ErrNoFixture = errors.New("no fixture recorded")

type Regression struct {
	StatusCode int    `json:"status-code"`
	Content    string `json:"content"`
}

type file struct {
	Regressions map[string]Regression `json:"regressions"`
}

// Transport answers requests from a fixture file. When it wraps a live
// transport (record mode) misses are fetched and added to the file on Save,
// otherwise misses fail with ErrNoFixture.
type Transport struct {
	path  string
	live  vlr.Transport
	tel   telemetry.API
	mutex sync.Mutex
	data  map[string]Regression
	dirty bool
}

// Open loads the fixture file at path, a missing file starts out empty.
// `live` may be nil for replay only.
func Open(path string, live vlr.Transport, tel telemetry.API) (*Transport, error) {
	assert.NotNil(tel)

	t := &Transport{
		path: path,
		live: live,
		tel:  telemetry.NewScopedAPI("fixtures", tel),
		data: map[string]Regression{},
	}

	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}

	var parsed file
	err = json5.Unmarshal(contents, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	if parsed.Regressions != nil {
		t.data = parsed.Regressions
	}
	return t, nil
}

func (t *Transport) Get(ctx context.Context, url string) (vlr.Response, error) {
	t.mutex.Lock()
	reg, ok := t.data[url]
	t.mutex.Unlock()
	if ok {
		t.tel.ReportDebug("replay", url)
		return vlr.Response{StatusCode: reg.StatusCode, Body: []byte(reg.Content)}, nil
	}

	if t.live == nil {
		t.tel.ReportWarning(report_fixtures_get, url)
		return vlr.Response{}, fmt.Errorf("%w: %s", ErrNoFixture, url)
	}

	res, err := t.live.Get(ctx, url)
	if err != nil {
		return vlr.Response{}, err
	}

	t.mutex.Lock()
	t.data[url] = Regression{StatusCode: res.StatusCode, Content: string(res.Body)}
	t.dirty = true
	t.mutex.Unlock()

	t.tel.ReportDebug("recorded", url, res.StatusCode)
	return res, nil
}

// URLs returns every recorded url, sorted.
func (t *Transport) URLs() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	urls := make([]string, 0, len(t.data))
	for url := range t.data {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Save writes the fixtures back to disk if anything was recorded.
func (t *Transport) Save() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.dirty {
		return nil
	}

	contents, err := json.MarshalIndent(file{Regressions: t.data}, "", "\t")
	if err != nil {
		t.tel.ReportBroken(report_fixtures_save, err)
		return err
	}

	dir := filepath.Dir(t.path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		t.tel.ReportBroken(report_fixtures_save, err)
		return err
	}
	err = os.WriteFile(t.path, contents, 0644)
	if err != nil {
		t.tel.ReportBroken(report_fixtures_save, err)
		return err
	}

	t.dirty = false
	return nil
}
