package vlr

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"vlrscraper/internal/entities"
	"vlrscraper/pkg/htmlutil"
)

const resourcePlaceholder = "<res_id>"

// StatusError is returned when a page answers with anything other than 200.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid status code %d received when fetching data from %s", e.Code, e.URL)
}

// Resource is a category of page on the site, identified by a url template
// with a single `<res_id>` placeholder.
type Resource struct {
	template string
}

func NewResource(template string) (Resource, error) {
	if strings.Count(template, resourcePlaceholder) != 1 {
		return Resource{}, fmt.Errorf("resource %q: expected exactly one %s placeholder", template, resourcePlaceholder)
	}
	return Resource{template: template}, nil
}

func mustResource(template string) Resource {
	r, err := NewResource(template)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Resource) Template() string {
	return r.template
}

// URL substitutes id into the template, failing for non-positive ids.
func (r Resource) URL(id int) (string, error) {
	if err := entities.ValidateID(id); err != nil {
		return "", err
	}
	return strings.Replace(r.template, resourcePlaceholder, strconv.Itoa(id), 1), nil
}

// Fetch returns the raw body of the resource with the given id.
func (r Resource) Fetch(ctx context.Context, transport Transport, id int) ([]byte, error) {
	url, err := r.URL(id)
	if err != nil {
		return nil, err
	}
	res, err := transport.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode != 200 {
		return nil, &StatusError{URL: url, Code: res.StatusCode}
	}
	return res.Body, nil
}

// FetchJSON decodes the body of the resource into out.
func (r Resource) FetchJSON(ctx context.Context, transport Transport, id int, out any) error {
	body, err := r.Fetch(ctx, transport, id)
	if err != nil {
		return err
	}
	err = json.Unmarshal(body, out)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// Page fetches the resource and parses it as HTML.
func (r Resource) Page(ctx context.Context, transport Transport, id int, reporter htmlutil.Reporter) (*htmlutil.Page, error) {
	body, err := r.Fetch(ctx, transport, id)
	if err != nil {
		return nil, err
	}
	return htmlutil.ParsePage(body, reporter)
}

// resources are the pages of one site, rooted at a base url.
type resources struct {
	player   Resource
	team     Resource
	match    Resource
	upcoming Resource
	base     string
}

func siteResources(base string) resources {
	base = strings.TrimSuffix(base, "/")
	return resources{
		player:   mustResource(base + "/player/<res_id>"),
		team:     mustResource(base + "/team/<res_id>"),
		match:    mustResource(base + "/<res_id>"),
		upcoming: mustResource(base + "/matches/?page=<res_id>"),
		base:     base,
	}
}

// playerMatches lists the matches of a player, `page` starts at 1.
func (r resources) playerMatches(page int) Resource {
	return mustResource(fmt.Sprintf("%s/player/matches/<res_id>/?page=%d", r.base, page))
}

func (r resources) teamMatches(page int) Resource {
	return mustResource(fmt.Sprintf("%s/team/matches/<res_id>/?page=%d", r.base, page))
}
