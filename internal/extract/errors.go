package extract

import "fmt"

// AnchorNotFoundError reports a required structural anchor missing from the
// document: the document does not conform to the legal template its variant
// and language claim. Never retried.
type AnchorNotFoundError struct {
	Anchor string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor %q not found in document", e.Anchor)
}

// AmbiguousShapeError reports that a conditional branch found none of its
// alternative shapes present at an anchor.
type AmbiguousShapeError struct {
	Anchor string
	Detail string
}

func (e *AmbiguousShapeError) Error() string {
	return fmt.Sprintf("ambiguous shape at anchor %q: %s", e.Anchor, e.Detail)
}

// IncompleteExtractionError reports a field extracted as empty content.
// Catalog assembly must not proceed past it.
type IncompleteExtractionError struct {
	Field string
}

func (e *IncompleteExtractionError) Error() string {
	return fmt.Sprintf("incomplete extraction: field %q is empty", e.Field)
}
