package htmlutil

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

const report_page_query = "page.query"

// Reporter receives problems that the page swallows, telemetry.API satisfies it.
type Reporter interface {
	ReportWarning(id string, params ...any)
}

type discardReporter struct{}

func (discardReporter) ReportWarning(string, ...any) {}

// Page wraps a parsed HTML document and answers xpath queries against it.
//
// No accessor fails: a query that matches nothing, or that is not a valid
// xpath, yields the zero value ("" / nil / empty slice). Callers decide what
// a missing field means.
type Page struct {
	root     *html.Node
	doc      *goquery.Document
	reporter Reporter
}

// NewPage parses an HTML document from r. `reporter` may be nil.
func NewPage(r io.Reader, reporter Reporter) (*Page, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return NewPageFromNode(root, reporter), nil
}

// ParsePage is NewPage over an in-memory body.
func ParsePage(body []byte, reporter Reporter) (*Page, error) {
	return NewPage(bytes.NewReader(body), reporter)
}

// NewPageFromNode wraps an already parsed document.
func NewPageFromNode(root *html.Node, reporter Reporter) *Page {
	if reporter == nil {
		reporter = discardReporter{}
	}
	return &Page{
		root:     root,
		doc:      goquery.NewDocumentFromNode(root),
		reporter: reporter,
	}
}

func (p *Page) Root() *html.Node {
	return p.root
}

func (p *Page) query(path string) []*html.Node {
	nodes, err := htmlquery.QueryAll(p.root, path)
	if err != nil {
		p.reporter.ReportWarning(report_page_query, fmt.Errorf("%s: %w", path, err))
		return nil
	}
	return nodes
}

// Element returns the first node matching path, or nil.
func (p *Page) Element(path string) *html.Node {
	nodes := p.query(path)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Elements returns every node matching path in document order.
func (p *Page) Elements(path string) []*html.Node {
	return p.query(path)
}

// Count returns the number of nodes matching path.
func (p *Page) Count(path string) int {
	return len(p.query(path))
}

// ElementsAttr returns the value of `attr` for every node matching path.
// Nodes without the attribute keep their position with an empty string.
func (p *Page) ElementsAttr(path, attr string) []string {
	nodes := p.query(path)
	values := make([]string, len(nodes))
	for i, n := range nodes {
		values[i] = GetAttr(n, attr)
	}
	return values
}

// Attr returns the trimmed value of `attr` on the first node matching path.
func (p *Page) Attr(path, attr string) string {
	return GetAttr(p.Element(path), attr)
}

// Text returns the normalized own text of the first node matching path.
func (p *Page) Text(path string) string {
	return NormalizeText(GetOwnText(p.Element(path)))
}

// TextMany returns the normalized own text of every node matching path,
// one entry per node.
func (p *Page) TextMany(path string) []string {
	nodes := p.query(path)
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = NormalizeText(GetOwnText(n))
	}
	return texts
}

// TextDeep returns the normalized text of the first node matching path
// including all of its descendants.
func (p *Page) TextDeep(path string) string {
	sel := p.Selection(path)
	if sel.Length() == 0 {
		return ""
	}
	return NormalizeText(sel.First().Text())
}

// TextDeepMany is TextDeep for every node matching path.
func (p *Page) TextDeepMany(path string) []string {
	sel := p.Selection(path)
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, NormalizeText(s.Text()))
	})
	return texts
}

// Img returns the `src` of the first node matching path.
func (p *Page) Img(path string) string {
	return p.Attr(path, "src")
}

// Href returns the `href` of the first node matching path.
func (p *Page) Href(path string) string {
	return p.Attr(path, "href")
}

// Selection exposes the nodes matching path as a goquery selection for
// callers that prefer css traversal from there.
func (p *Page) Selection(path string) *goquery.Selection {
	return p.doc.FindNodes(p.query(path)...)
}
