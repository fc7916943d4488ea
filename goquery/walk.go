// Package goquery implements the HTML side of the pipeline using goquery:
// year page parsers for both site layouts, meeting page resource
// extraction, layout detection and content extraction.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is one element visited by Walk.
type Element struct {
	// Index is the element's position in document order.
	Index int
	// Tag is the lowercase tag name.
	Tag string
	// Node is the underlying DOM node.
	Node *html.Node
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Text returns the element's rendered text with whitespace runs collapsed.
func (e Element) Text() string {
	return collapseSpace(nodeText(e.Node))
}

// Walk visits every element below the nodes of root in document order.
// The root nodes themselves are not visited.
func Walk(root *goquery.Selection, visit func(el Element)) {
	index := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			visit(Element{Index: index, Tag: strings.ToLower(c.Data), Node: c})
			index++
			walk(c)
		}
	}
	for _, n := range root.Nodes {
		walk(n)
	}
}

// Elements returns every element below root in document order.
func Elements(root *goquery.Selection) []Element {
	var elements []Element
	Walk(root, func(el Element) {
		elements = append(elements, el)
	})
	return elements
}

// blockAtoms are elements rendered on their own lines.
var blockAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Th: true, atom.Thead: true, atom.Tr: true, atom.Ul: true,
}

// Text renders the text of sel. Block-level elements and <br> start new
// lines; whitespace inside text nodes is treated as a single space, except
// inside <pre>.
func Text(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		renderText(&b, n, false)
	}
	return b.String()
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	renderText(&b, n, false)
	return b.String()
}

func renderText(b *strings.Builder, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(strings.Map(func(r rune) rune {
			if r == '\n' || r == '\r' || r == '\t' {
				return ' '
			}
			return r
		}, n.Data))
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.Br:
			b.WriteString("\n")
			return
		case atom.Pre:
			pre = true
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blockAtoms[n.DataAtom]
	if block {
		b.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(b, c, pre)
	}
	if block {
		b.WriteString("\n")
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
