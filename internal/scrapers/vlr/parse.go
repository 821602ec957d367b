package vlr

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vlrscraper/internal/entities"
)

// vlr.gg renders times in this offset regardless of the visitor.
const siteOffset = "-0400"

// URLSegment returns the path segment at index of a link, parsed as an id.
// Index 0 is the empty segment before the leading slash, so the id in
// `/player/1265/johnqt` is at index 2 and the id in `/408415/sen-vs-g2` is at
// index 1.
func URLSegment(link string, index int) (int, error) {
	path := link
	parsed, err := url.Parse(link)
	if err == nil {
		path = parsed.Path
	}
	segments := strings.Split(path, "/")
	if index < 0 || index >= len(segments) {
		return 0, fmt.Errorf("%w: %q has no segment %d", entities.ErrInvalidID, link, index)
	}
	return entities.ParseID(segments[index])
}

func cleanStat(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "%")
	return strings.TrimPrefix(text, "+")
}

// ParseStatInt parses a stat cell such as `271`, `+9`, `-3` or `71%`. A
// blank cell yields nil.
func ParseStatInt(text string) (*int, error) {
	text = cleanStat(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("parse stat %q: %w", text, err)
	}
	return &v, nil
}

// ParseStatFloat is ParseStatInt for fractional stats like the rating.
func ParseStatFloat(text string) (*float64, error) {
	text = cleanStat(text)
	if text == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("parse stat %q: %w", text, err)
	}
	return &v, nil
}

// ResolveImage turns the protocol relative (`//owcdn.net/...`) and site
// relative (`/img/vlr/tmp/vlr.png`) image sources used by vlr.gg into
// absolute urls.
func ResolveImage(base, src string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return strings.TrimSuffix(base, "/") + src
	}
	return src
}

// ParseMatchDate parses the `data-utc-ts` attribute of a match page, which
// despite the name is in the site's offset.
//
//	ParseMatchDate("2024-09-29 21:40:00") == 1727660400
func ParseMatchDate(timestamp string) (int64, error) {
	t, err := time.Parse("2006-01-02 15:04:05 -0700", strings.TrimSpace(timestamp)+" "+siteOffset)
	if err != nil {
		return 0, fmt.Errorf("parse match date: %w", err)
	}
	return t.Unix(), nil
}

// ParseListingDate parses the date cell of a match listing, e.g.
// `2024/09/29 9:40 pm`. Whitespace inside the cell is not significant.
func ParseListingDate(text string) (int64, error) {
	compact := strings.ToLower(strings.Join(strings.Fields(text), ""))
	t, err := time.Parse("2006/01/023:04pm-0700", compact+siteOffset)
	if err != nil {
		return 0, fmt.Errorf("parse listing date %q: %w", text, err)
	}
	return t.Unix(), nil
}
