// Package sanitize removes executable constructs from article rich text.
//
// The policy is a denylist: script elements are dropped with their children
// and every attribute whose name starts with "on" is removed. Everything else,
// including unknown tags and javascript: URLs in href or src, is passed
// through. Callers that need stronger guarantees must not rely on this
// package alone.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sanitize parses markup into a detached tree, strips scripts and inline
// event handlers, and serializes the result. Markup that cannot be parsed
// yields the empty string.
func Sanitize(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	nodes, err := parseFragment(markup)
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, n := range nodes {
		if isScript(n) {
			continue
		}
		clean(n)
		if err := html.Render(&b, n); err != nil {
			return ""
		}
	}
	return b.String()
}

// StripTags returns the visible text of markup with whitespace collapsed.
// Script and style contents are not part of the text.
func StripTags(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var (
		b    strings.Builder
		skip int
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); a == atom.Script || a == atom.Style {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if a := atom.Lookup(name); (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// parseFragment parses markup in a body context, never attaching it to a document.
func parseFragment(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	return html.ParseFragment(strings.NewReader(markup), body)
}

func isScript(n *html.Node) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, "script")
}

// clean removes script descendants and on* attributes in place.
func clean(n *html.Node) {
	if n.Type == html.ElementNode {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if isEventHandler(a) {
				continue
			}
			kept = append(kept, a)
		}
		n.Attr = kept
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isScript(c) {
			n.RemoveChild(c)
		} else {
			clean(c)
		}
		c = next
	}
}

func isEventHandler(a html.Attribute) bool {
	return len(a.Key) >= 2 && strings.EqualFold(a.Key[:2], "on")
}
