// Package htmlutil provides the tree-navigation primitives the field
// extractor is built on: pulling plain or semi-marked text out of a parsed
// legalcode document without mutating it.
package htmlutil

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNotFound is returned when a primitive is applied to an empty selection.
var ErrNotFound = errors.New("node not found")

// NameAndText is the result of splitting a "Term: definition" style node.
type NameAndTextResult struct {
	// Name is the inner HTML of the node's first <strong> descendant.
	Name string
	// Text is the serialized content following that <strong>, trimmed.
	Text string
}

// RenderNode serializes a single node, including its own tags.
func RenderNode(n *html.Node) string {
	var sb strings.Builder
	// html.Render only fails on a broken writer; strings.Builder never is.
	_ = html.Render(&sb, n)
	return sb.String()
}

// RenderChildren serializes all children of a node, excluding the node's own
// opening and closing tags.
func RenderChildren(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// InnerHTML returns the serialized content of all children of the selection's
// first node, excluding the node's own markers.
func InnerHTML(s *goquery.Selection) (string, error) {
	if s.Length() == 0 {
		return "", ErrNotFound
	}
	return RenderChildren(s.Nodes[0]), nil
}

// OuterHTML returns the serialized selection's first node, tags included.
func OuterHTML(s *goquery.Selection) (string, error) {
	if s.Length() == 0 {
		return "", ErrNotFound
	}
	return RenderNode(s.Nodes[0]), nil
}

// NameAndText splits a node shaped like "<strong>Term</strong> definition…"
// into the term and the remaining content with the leading emphasis stripped.
func NameAndText(s *goquery.Selection) (NameAndTextResult, error) {
	if s.Length() == 0 {
		return NameAndTextResult{}, ErrNotFound
	}
	strong := s.Find("strong").First()
	if strong.Length() == 0 {
		return NameAndTextResult{}, ErrNotFound
	}
	name := RenderChildren(strong.Nodes[0])

	var sb strings.Builder
	for n := strong.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		_ = html.Render(&sb, n)
	}
	return NameAndTextResult{
		Name: strings.TrimSpace(name),
		Text: strings.TrimSpace(sb.String()),
	}, nil
}

// TextUpTo returns the serialized content of the selection's first node up to,
// not including, its first child element with the given tag name.
func TextUpTo(s *goquery.Selection, boundary string) (string, error) {
	if s.Length() == 0 {
		return "", ErrNotFound
	}
	var sb strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == boundary {
			break
		}
		_ = html.Render(&sb, c)
	}
	return strings.TrimSpace(sb.String()), nil
}

// NestedText returns all descendant text of the selection, concatenated, with
// intermediate markup discarded.
func NestedText(s *goquery.Selection) string {
	return s.Text()
}

// NodeText returns all descendant text of a raw node, concatenated.
func NodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(NodeText(c))
	}
	return sb.String()
}

// FirstChildText returns the flattened text of the first child node of the
// selection's first node. Clauses that hold their text as a leading bare
// string (possibly followed by nested lists) are read this way.
func FirstChildText(s *goquery.Selection) (string, error) {
	if s.Length() == 0 {
		return "", ErrNotFound
	}
	c := s.Nodes[0].FirstChild
	if c == nil {
		return "", ErrNotFound
	}
	return NodeText(c), nil
}

// FirstChildContent returns the serialization of the first child node (text
// or element) of the selection's first node, trimmed. Legalcode clauses keep
// their own text as a leading bare node before any nested lists, which is
// exactly what this picks out.
func FirstChildContent(s *goquery.Selection) (string, error) {
	if s.Length() == 0 {
		return "", ErrNotFound
	}
	c := s.Nodes[0].FirstChild
	if c == nil {
		return "", ErrNotFound
	}
	return strings.TrimSpace(RenderNode(c)), nil
}
