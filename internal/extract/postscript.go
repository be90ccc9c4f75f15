package extract

import (
	"legalcode-catalog/internal/htmlutil"

	"golang.org/x/net/html"
)

// The Section 4 postscript is not wrapped in any tag of its own: it is
// whatever sibling follows the first list after the s4 heading. The scan is
// a small state machine over the heading's parent's children.

type scanState int

const (
	seekingAnchor scanState = iota
	seenAnchorAwaitingList
	listSeenTakeNext
	scanDone
)

// siblingScanner walks a sibling sequence looking for the free-standing
// content that follows the first listTag sibling after the anchorID element.
type siblingScanner struct {
	anchorID string
	listTag  string
	state    scanState
	captured string
}

// feed advances the machine with the next sibling. It returns true once the
// trailing content has been captured.
func (s *siblingScanner) feed(n *html.Node) bool {
	switch s.state {
	case seekingAnchor:
		if n.Type == html.ElementNode && nodeID(n) == s.anchorID {
			s.state = seenAnchorAwaitingList
		}
	case seenAnchorAwaitingList:
		if n.Type == html.ElementNode && n.Data == s.listTag {
			s.state = listSeenTakeNext
		}
	case listSeenTakeNext:
		s.captured = htmlutil.NodeText(n)
		s.state = scanDone
	}
	return s.state == scanDone
}

// trailingContentAfterList captures the text of the sibling that immediately
// follows the first listTag element after anchorID among parent's children.
// Exhausting the siblings before the capture is a hard extraction failure.
func trailingContentAfterList(parent *html.Node, anchorID, listTag string) (string, error) {
	scanner := &siblingScanner{anchorID: anchorID, listTag: listTag}
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if scanner.feed(c) {
			return scanner.captured, nil
		}
	}
	return "", &AnchorNotFoundError{Anchor: anchorID + " postscript"}
}

func nodeID(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "id" {
			return a.Val
		}
	}
	return ""
}
