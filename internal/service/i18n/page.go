package i18n

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	attrTranslate = "data-translate"
	attrLang      = "data-lang"
	attrNav       = "data-nav"
	attrNavToggle = "data-nav-toggle"
)

// PageState is what gets written into a page.
type PageState struct {
	Lang    string
	Dict    map[string]string
	NavOpen bool
}

// ApplyStats counts the nodes touched by Apply.
type ApplyStats struct {
	Translated  int
	LangButtons int
	Nav         bool
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

// Render serializes doc.
func Render(doc *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// PageLang returns the lang attribute of the root element.
func PageLang(doc *html.Node) string {
	if root := findRoot(doc); root != nil {
		v, _ := attr(root, "lang")
		return v
	}
	return ""
}

// Apply sets the document language, translates [data-translate] elements that have a
// non-empty entry in st.Dict, marks the active [data-lang] button and sets nav state.
// A nil Dict leaves every text untouched.
func Apply(doc *html.Node, st PageState) ApplyStats {
	var stats ApplyStats

	if root := findRoot(doc); root != nil && st.Lang != "" {
		setAttr(root, "lang", st.Lang)
	}

	open := strconv.FormatBool(st.NavOpen)
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if key, ok := attr(n, attrTranslate); ok && key != "" {
			if v := st.Dict[key]; v != "" {
				setText(n, v)
				stats.Translated++
			}
		}
		if code, ok := attr(n, attrLang); ok {
			setAttr(n, "aria-pressed", strconv.FormatBool(code == st.Lang))
			stats.LangButtons++
		}
		if _, ok := attr(n, attrNav); ok {
			setAttr(n, "data-open", open)
			stats.Nav = true
		}
		if _, ok := attr(n, attrNavToggle); ok {
			setAttr(n, "aria-expanded", open)
		}
	})

	return stats
}

func findRoot(doc *html.Node) *html.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return c
		}
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// setText replaces all children of n with one text node, like textContent.
func setText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}
