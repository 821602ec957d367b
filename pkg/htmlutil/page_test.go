package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePage = `<html><body>
<div class="wf-avatar mod-player"><img src="//owcdn.net/img/65622aa13dc03.png"></div>
<h1 class="wf-title">
	benjyfishy
</h1>
<h2 class="player-real-name">Benjamin&nbsp;Fish <i class="flag mod-gb"></i></h2>
<div class="team-roster-item"><a href="/player/1265/johnqt"><div class="alias">johnqt</div></a></div>
<div class="team-roster-item"><a href="/player/45/sick"><div class="alias">SicK <span>Inactive</span></div></a></div>
<div class="team-roster-item"><a><div class="alias"></div></a></div>
</body></html>`

type warningSink struct {
	ids []string
}

func (w *warningSink) ReportWarning(id string, params ...any) {
	w.ids = append(w.ids, id)
}

func parseSample(t *testing.T, reporter Reporter) *Page {
	page, err := ParsePage([]byte(samplePage), reporter)
	require.NoError(t, err)
	return page
}

func TestPageText(t *testing.T) {
	page := parseSample(t, nil)

	require.Equal(t, "benjyfishy", page.Text(Xpath("h1", Class("wf-title"))))
	require.Equal(t, "Benjamin Fish", page.Text(Xpath("h2", Class("player-real-name"))))
	require.Equal(t, "", page.Text(Xpath("h3")))

	aliases := Join(Xpath("div", Class("team-roster-item")), Xpath("div", Class("alias")))
	require.Equal(t, []string{"johnqt", "SicK", ""}, page.TextMany(aliases))
	require.Equal(t, []string{"johnqt", "SicK Inactive", ""}, page.TextDeepMany(aliases))
	require.Equal(t, "SicK Inactive", page.TextDeep(Nth(aliases, 2)))
	require.Equal(t, "", page.TextDeep(Xpath("table")))
}

func TestPageAttributes(t *testing.T) {
	page := parseSample(t, nil)

	require.Equal(t, "//owcdn.net/img/65622aa13dc03.png", page.Img(Join(Xpath("div", Class("wf-avatar")), "img")))
	require.Equal(t, "", page.Img("//video"))

	links := Join(Xpath("div", Class("team-roster-item")), "a")
	require.Equal(t, "/player/1265/johnqt", page.Href(links))
	require.Equal(t, []string{"/player/1265/johnqt", "/player/45/sick", ""}, page.ElementsAttr(links, "href"))
	require.Equal(t, 3, page.Count(links))
	require.Len(t, page.Elements(links), 3)
	require.Equal(t, 3, page.Selection(links).Length())
}

func TestPageInvalidXpath(t *testing.T) {
	sink := &warningSink{}
	page := parseSample(t, sink)

	require.Nil(t, page.Element("//div[("))
	require.Equal(t, "", page.Text("//div[("))
	require.Empty(t, page.ElementsAttr("//div[(", "href"))
	require.Equal(t, []string{report_page_query, report_page_query, report_page_query}, sink.ids)
}

func TestNormalizeText(t *testing.T) {
	require.Equal(t, "a b c", NormalizeText("  a  b\n\t c  "))
	require.Equal(t, "Lee Jae-hyeok (이재혁)", NormalizeText("Lee Jae-hyeok​ (이재혁)\n"))
	require.Equal(t, "", NormalizeText(" \n "))
}
