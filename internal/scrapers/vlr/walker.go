package vlr

import (
	"context"
	"fmt"
	"math"
	"time"
)

const report_walk = "walk"

// listingPageSize is the number of rows on a full page of a match listing.
const listingPageSize = 50

// Window is an inclusive range of kickoff times.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) contains(epoch int64) bool {
	return epoch >= w.From.Unix() && epoch <= w.To.Unix()
}

type walkState int

const (
	walkFetching walkState = iota
	walkDone
)

// listingFetcher returns page n (1-indexed) of a listing.
type listingFetcher func(ctx context.Context, n int) (ListingPage, error)

func nextWalkState(page ListingPage, accumulated int, oldest int64, w Window) walkState {
	switch {
	// a short page is the last one
	case page.Rows == 0 || page.Rows%listingPageSize != 0:
		return walkDone
	case accumulated == 0:
		return walkDone
	// listings are newest first, anything further is before the window
	case oldest < w.From.Unix():
		return walkDone
	}
	return walkFetching
}

// walk collects the ids of every listed match inside the window, fetching
// pages until the listing or the window runs out. A failure on the first page
// is returned, failures on later pages end the walk with what was collected.
func (s *Scraper) walk(ctx context.Context, fetch listingFetcher, w Window) ([]int, error) {
	ids := []int{}
	state := walkFetching
	for n := 1; state == walkFetching; n++ {
		page, err := fetch(ctx, n)
		if err != nil {
			if n == 1 {
				return nil, err
			}
			s.tel.ReportWarning(report_walk, fmt.Errorf("page %d: %w", n, err))
			break
		}

		oldest := int64(math.MaxInt64)
		for _, item := range page.Items {
			oldest = min(oldest, item.Epoch)
			if w.contains(item.Epoch) {
				ids = append(ids, item.ID)
			}
		}
		s.tel.ReportDebug("walk page", n, page.Rows, len(ids))

		state = nextWalkState(page, len(ids), oldest, w)
	}
	return ids, nil
}
