package cms

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Heading is one entry of a document's table of contents.
type Heading struct {
	ID    string
	Text  string
	Level int
}

var (
	markdown   = goldmark.New(goldmark.WithExtensions(extension.GFM))
	bodyPolicy = newBodyPolicy()
)

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "table")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Render converts markdown into sanitized HTML, anchoring every h2 and h3 so
// the returned headings can link into the document.
func Render(src string) (template.HTML, []Heading, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", nil, fmt.Errorf("cms: render markdown: %w", err)
	}
	clean := bodyPolicy.SanitizeBytes(buf.Bytes())

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(bytes.NewReader(clean), container)
	if err != nil {
		return "", nil, fmt.Errorf("cms: parse rendered html: %w", err)
	}

	var (
		toc  []Heading
		seen = map[string]int{}
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.H2 || n.DataAtom == atom.H3) {
			text := strings.TrimSpace(nodeText(n))
			id := attr(n, "id")
			if id == "" {
				id = uniqueID(slugify(text), seen, len(toc)+1)
				n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
			}
			level := 2
			if n.DataAtom == atom.H3 {
				level = 3
			}
			toc = append(toc, Heading{ID: id, Text: text, Level: level})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var out bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&out, n); err != nil {
			return "", nil, fmt.Errorf("cms: render html: %w", err)
		}
	}
	return template.HTML(out.String()), toc, nil
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func uniqueID(base string, seen map[string]int, position int) string {
	if base == "" {
		base = "section-" + strconv.Itoa(position)
	}
	seen[base]++
	if n := seen[base]; n > 1 {
		return base + "-" + strconv.Itoa(n)
	}
	return base
}
