// Package extract turns one parsed legalcode document into a map of named
// message fields. The anchor catalog is fixed; which fields exist, what they
// are called, and how each is read off the tree depends on the license
// variant's modifier flags and on a handful of authoring irregularities the
// upstream translations are known to contain.
package extract

import (
	"fmt"
	"strings"

	"legalcode-catalog/internal/htmlutil"
	"legalcode-catalog/internal/legalcode"
	"legalcode-catalog/internal/schema"

	"github.com/PuerkitoBio/goquery"
)

// Normalize repairs authoring inconsistencies before any structural parsing:
// some translators swapped <strong> for <b>. Runs once per document, on the
// raw markup.
func Normalize(raw string) string {
	r := strings.NewReplacer(
		"<b>", "<strong>", "</b>", "</strong>",
		"<B>", "<strong>", "</B>", "</strong>",
	)
	return r.Replace(raw)
}

// Extractor produces field maps from legalcode documents.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract parses the raw markup of one (variant, language) legalcode
// document and returns its field map. The document is never mutated; any
// missing anchor, unrecognized shape, or schema fault aborts with an error.
func (e *Extractor) Extract(raw string, variant legalcode.Variant, languageCode string) (*FieldMap, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Normalize(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	definitions, err := schema.Definitions(variant.Code(), languageCode)
	if err != nil {
		return nil, err
	}
	downstreams := schema.Downstreams(variant.Code())

	x := &extraction{doc: doc, variant: variant, fields: NewFieldMap()}

	steps := []func() error{
		x.titles,
		func() error { return x.definitions(definitions) },
		x.scope,
		func() error { return x.licenseGrant(downstreams) },
		x.otherRights,
		x.conditions,
		x.databaseRights,
		x.disclaimer,
		x.termination,
		x.otherTerms,
		x.interpretation,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return x.fields, nil
}

type extraction struct {
	doc     *goquery.Document
	variant legalcode.Variant
	fields  *FieldMap
}

// anchor locates a structural anchor by id. Absence is a hard failure.
func (x *extraction) anchor(id string) (*goquery.Selection, error) {
	s := x.doc.Find("#" + id)
	if s.Length() == 0 {
		return nil, &AnchorNotFoundError{Anchor: id}
	}
	return s.First(), nil
}

// part locates a required element inside an anchor.
func (x *extraction) part(parent *goquery.Selection, anchor, selector string) (*goquery.Selection, error) {
	s := parent.Find(selector).First()
	if s.Length() == 0 {
		return nil, &AnchorNotFoundError{Anchor: anchor + " " + selector}
	}
	return s, nil
}

// titles reads the license titles and the intro paragraph.
func (x *extraction) titles() error {
	deed, err := x.anchor("deed-license")
	if err != nil {
		return err
	}
	h2, err := x.part(deed, "deed-license", "h2")
	if err != nil {
		return err
	}
	medium, _ := htmlutil.InnerHTML(h2)
	x.fields.Set("license_medium", medium)

	main, err := x.anchor("deed-main-content")
	if err != nil {
		return err
	}
	h3, err := x.part(main, "deed-main-content", "h3")
	if err != nil {
		return err
	}
	long, _ := htmlutil.InnerHTML(h3)
	x.fields.Set("license_long", long)

	intro := h3.NextAllFiltered("p").First()
	if intro.Length() == 0 {
		return &AnchorNotFoundError{Anchor: "deed-main-content intro"}
	}
	introHTML, _ := htmlutil.InnerHTML(intro)
	x.fields.Set("license_intro", introHTML)
	return nil
}

// definitions reads Section 1, assigning list items to field names
// positionally from the resolved schema.
func (x *extraction) definitions(expected []string) error {
	s1, err := x.anchor("s1")
	if err != nil {
		return err
	}
	title, err := x.part(s1, "s1", "strong")
	if err != nil {
		return err
	}
	titleHTML, _ := htmlutil.InnerHTML(title)
	x.fields.Set("s1_definitions_title", titleHTML)

	ol := s1.NextAllFiltered("ol").First()
	if ol.Length() == 0 {
		return &AnchorNotFoundError{Anchor: "s1 definitions list"}
	}
	items := ol.Find("li")
	if items.Length() != len(expected) {
		return fmt.Errorf("definitions list for %s: %d items but schema names %d fields",
			x.variant.Code(), items.Length(), len(expected))
	}

	var itemErr error
	items.EachWithBreak(func(i int, li *goquery.Selection) bool {
		nt, err := htmlutil.NameAndText(li)
		if err != nil {
			itemErr = &AnchorNotFoundError{Anchor: fmt.Sprintf("s1 definition %d strong", i)}
			return false
		}
		x.fields.Set("s1_definitions_"+expected[i], fmt.Sprintf("*%s* %s", nt.Name, nt.Text))
		return true
	})
	return itemErr
}

// scope reads the Section 2 heading.
func (x *extraction) scope() error {
	s2, err := x.anchor("s2")
	if err != nil {
		return err
	}
	title, err := x.part(s2, "s2", "strong")
	if err != nil {
		return err
	}
	titleHTML, _ := htmlutil.InnerHTML(title)
	x.fields.Set("s2_scope", titleHTML)
	return nil
}

// licenseGrant reads Section 2(a): the grant title, the granted rights, and
// the downstream-recipients list.
func (x *extraction) licenseGrant(downstreams []string) error {
	s2a, err := x.anchor("s2a")
	if err != nil {
		return err
	}
	// The grant title is emphasized as <strong> in most documents and <b> in
	// a few; probe both shapes before giving up.
	switch {
	case s2a.Find("strong").Length() > 0:
		title, _ := htmlutil.InnerHTML(s2a.Find("strong").First())
		x.fields.Set("s2a_license_grant_title", title)
	case s2a.Find("b").Length() > 0:
		title, _ := htmlutil.InnerHTML(s2a.Find("b").First())
		x.fields.Set("s2a_license_grant_title", title)
	default:
		return &AmbiguousShapeError{Anchor: "s2a", Detail: "grant title is neither <strong> nor <b>"}
	}

	s2a1, err := x.anchor("s2a1")
	if err != nil {
		return err
	}
	intro, err := htmlutil.FirstChildContent(s2a1)
	if err != nil {
		return &AnchorNotFoundError{Anchor: "s2a1 content"}
	}
	x.fields.Set("s2a_license_grant_intro", intro)

	s2a1A, err := x.anchor("s2a1A")
	if err != nil {
		return err
	}
	share, err := htmlutil.FirstChildContent(s2a1A)
	if err != nil {
		return &AnchorNotFoundError{Anchor: "s2a1A content"}
	}
	if x.variant.NonCommercial() {
		x.fields.Set("s2a_license_grant_share_nc", share)
	} else {
		x.fields.Set("s2a_license_grant_share", share)
	}

	s2a1B, err := x.anchor("s2a1B")
	if err != nil {
		return err
	}
	adapted, err := htmlutil.FirstChildContent(s2a1B)
	if err != nil {
		return &AnchorNotFoundError{Anchor: "s2a1B content"}
	}
	switch {
	case x.variant.NonCommercial() && x.variant.NoDerivatives():
		x.fields.Set("s2a_license_grant_adapted_nc_nd", adapted)
	case x.variant.NonCommercial():
		x.fields.Set("s2a_license_grant_adapted_nc", adapted)
	case x.variant.NoDerivatives():
		x.fields.Set("s2a_license_grant_adapted_nd", adapted)
	default:
		x.fields.Set("s2a_license_grant_adapted", adapted)
	}

	for _, c := range []struct{ id, field string }{
		{"s2a2", "s2a2_license_grant_exceptions"},
		{"s2a3", "s2a3_license_grant_term"},
		{"s2a4", "s2a4_license_grant_media"},
	} {
		if err := x.namedClause(c.id, c.field); err != nil {
			return err
		}
	}

	s2a5, err := x.anchor("s2a5")
	if err != nil {
		return err
	}
	dsTitle, err := x.part(s2a5, "s2a5", "strong")
	if err != nil {
		return err
	}
	dsTitleHTML, _ := htmlutil.OuterHTML(dsTitle)
	x.fields.Set("s2a5_license_grant_downstream_title", dsTitleHTML)

	dsList, err := x.part(s2a5, "s2a5", "div ol")
	if err != nil {
		return err
	}
	items := dsList.ChildrenFiltered("li")
	if items.Length() != len(downstreams) {
		return fmt.Errorf("downstream list for %s: %d items but schema names %d fields",
			x.variant.Code(), items.Length(), len(downstreams))
	}
	var itemErr error
	items.EachWithBreak(func(i int, li *goquery.Selection) bool {
		nt, err := htmlutil.NameAndText(li)
		if err != nil {
			itemErr = &AnchorNotFoundError{Anchor: fmt.Sprintf("s2a5 downstream %d strong", i)}
			return false
		}
		key := downstreams[i]
		x.fields.Set("s2a5_license_grant_downstream_"+key+"_name", nt.Name)
		x.fields.Set("s2a5_license_grant_downstream_"+key+"_text", nt.Text)
		return true
	})
	if itemErr != nil {
		return itemErr
	}

	return x.namedClause("s2a6", "s2a6_license_grant_no_endorsement")
}

// namedClause reads a "<strong>Name</strong> text" clause into _name/_text
// field pairs.
func (x *extraction) namedClause(id, field string) error {
	sel, err := x.anchor(id)
	if err != nil {
		return err
	}
	nt, err := htmlutil.NameAndText(sel)
	if err != nil {
		return &AnchorNotFoundError{Anchor: id + " strong"}
	}
	x.fields.Set(field+"_name", nt.Name)
	x.fields.Set(field+"_text", nt.Text)
	return nil
}

// otherRights reads Section 2(b).
func (x *extraction) otherRights() error {
	s2b, err := x.anchor("s2b")
	if err != nil {
		return err
	}
	title, _ := htmlutil.TextUpTo(s2b, "ol")
	x.fields.Set("s2b_other_rights_title", title)

	ol, err := x.part(s2b, "s2b", "ol")
	if err != nil {
		return err
	}
	items := ol.ChildrenFiltered("li")
	if items.Length() < 3 {
		return &AnchorNotFoundError{Anchor: fmt.Sprintf("s2b list (%d of 3 items)", items.Length())}
	}
	moral, _ := htmlutil.OuterHTML(items.Eq(0))
	patent, _ := htmlutil.OuterHTML(items.Eq(1))
	waive, _ := htmlutil.OuterHTML(items.Eq(2))
	x.fields.Set("s2b_other_rights_moral", moral)
	x.fields.Set("s2b_other_rights_patent", patent)
	if x.variant.NonCommercial() {
		x.fields.Set("s2b_other_rights_waive_nc", waive)
	} else {
		x.fields.Set("s2b_other_rights_waive_non_nc", waive)
	}
	return nil
}

// conditions reads Section 3, including the share-alike clauses that exist
// only on -sa variants.
func (x *extraction) conditions() error {
	s3, err := x.anchor("s3")
	if err != nil {
		return err
	}
	x.fields.Set("s3_conditions_title", htmlutil.NestedText(s3))

	intro := s3.NextAllFiltered("p").First()
	if intro.Length() == 0 {
		return &AnchorNotFoundError{Anchor: "s3 intro"}
	}
	x.fields.Set("s3_conditions_intro", htmlutil.NestedText(intro))

	s3a, err := x.anchor("s3a")
	if err != nil {
		return err
	}
	attribution, _ := htmlutil.TextUpTo(s3a, "ol")
	x.fields.Set("s3_conditions_attribution", attribution)

	s3a1, err := x.anchor("s3a1")
	if err != nil {
		return err
	}
	ifYouShare, _ := htmlutil.TextUpTo(s3a1, "ol")
	if x.variant.NoDerivatives() {
		x.fields.Set("s3_conditions_if_you_share_nd", ifYouShare)
	} else {
		x.fields.Set("s3_conditions_if_you_share_non_nd", ifYouShare)
	}

	s3a1A, err := x.anchor("s3a1A")
	if err != nil {
		return err
	}
	retain, _ := htmlutil.TextUpTo(s3a1A, "ol")
	x.fields.Set("s3_conditions_retain_the_following", retain)

	s3a1Ai, err := x.anchor("s3a1Ai")
	if err != nil {
		return err
	}
	x.fields.Set("s3_conditions_identification", htmlutil.NestedText(s3a1Ai))

	for _, c := range []struct{ id, field string }{
		{"s3a1Aii", "s3_conditions_copyright"},
		{"s3a1Aiii", "s3_conditions_license"},
		{"s3a1Aiv", "s3_conditions_disclaimer"},
		{"s3a1Av", "s3_conditions_link"},
		{"s3a1B", "s3_conditions_modified"},
		{"s3a1C", "s3_conditions_licensed"},
	} {
		sel, err := x.anchor(c.id)
		if err != nil {
			return err
		}
		outer, _ := htmlutil.OuterHTML(sel)
		x.fields.Set(c.field, outer)
	}

	for _, c := range []struct{ id, field string }{
		{"s3a2", "s3_conditions_satisfy"},
		{"s3a3", "s3_conditions_remove"},
	} {
		sel, err := x.anchor(c.id)
		if err != nil {
			return err
		}
		text, err := htmlutil.FirstChildText(sel)
		if err != nil {
			return &AnchorNotFoundError{Anchor: c.id + " content"}
		}
		x.fields.Set(c.field, text)
	}

	if x.variant.ShareAlike() {
		s3b, err := x.anchor("s3b")
		if err != nil {
			return err
		}
		name, err := x.part(s3b, "s3b", "strong")
		if err != nil {
			return err
		}
		x.fields.Set("sharealike_name", htmlutil.NestedText(name))
		intro, err := x.part(s3b, "s3b", "p")
		if err != nil {
			return err
		}
		x.fields.Set("sharealike_intro", htmlutil.NestedText(intro))
	}
	return nil
}

// databaseRights reads Section 4, whose extract-and-reuse clause changes both
// field name and extraction shape with the nc/nd flags, and whose postscript
// floats untagged after the clause list.
func (x *extraction) databaseRights() error {
	s4, err := x.anchor("s4")
	if err != nil {
		return err
	}
	x.fields.Set("s4_sui_generics_database_rights_titles", htmlutil.NestedText(s4))

	intro := s4.NextAllFiltered("p").First()
	if intro.Length() == 0 {
		return &AnchorNotFoundError{Anchor: "s4 intro"}
	}
	x.fields.Set("s4_sui_generics_database_rights_intro", htmlutil.NestedText(intro))

	s4a, err := x.anchor("s4a")
	if err != nil {
		return err
	}
	switch {
	case x.variant.NonCommercial() && x.variant.NoDerivatives():
		x.fields.Set("s4_sui_generics_database_rights_extract_reuse_nc_nd", htmlutil.NestedText(s4a))
	case x.variant.NonCommercial():
		outer, _ := htmlutil.OuterHTML(s4a)
		x.fields.Set("s4_sui_generics_database_rights_extract_reuse_nc", outer)
	case x.variant.NoDerivatives():
		outer, _ := htmlutil.OuterHTML(s4a)
		x.fields.Set("s4_sui_generics_database_rights_extract_reuse_nd", outer)
	default:
		x.fields.Set("s4_sui_generics_database_rights_extract_reuse_non_nc_non_nd", htmlutil.NestedText(s4a))
	}

	s4b, err := x.anchor("s4b")
	if err != nil {
		return err
	}
	adapted := htmlutil.NestedText(s4b)
	if x.variant.ShareAlike() {
		x.fields.Set("s4_sui_generics_database_rights_adapted_material_sa", adapted)
	} else {
		x.fields.Set("s4_sui_generics_database_rights_adapted_material_non-sa", adapted)
	}

	s4c, err := x.anchor("s4c")
	if err != nil {
		return err
	}
	x.fields.Set("s4_sui_generics_database_rights_comply_s3a", htmlutil.NestedText(s4c))

	postscript, err := trailingContentAfterList(s4.Nodes[0].Parent, "s4", "ol")
	if err != nil {
		return err
	}
	x.fields.Set("s4_sui_generics_database_rights_postscript", postscript)
	return nil
}

// disclaimer reads Section 5.
func (x *extraction) disclaimer() error {
	for _, c := range []struct{ id, field string }{
		{"s5", "s5_disclaimer_title"},
		{"s5a", "s5_a"},
		{"s5b", "s5_b"},
		{"s5c", "s5_c"},
	} {
		sel, err := x.anchor(c.id)
		if err != nil {
			return err
		}
		x.fields.Set(c.field, htmlutil.NestedText(sel))
	}
	return nil
}

// termination reads Section 6. The reinstatement intro is wrapped in a <p>
// in most translations but left as bare leading content in a few; probe for
// the wrapper instead of assuming it.
func (x *extraction) termination() error {
	s6, err := x.anchor("s6")
	if err != nil {
		return err
	}
	x.fields.Set("s6_termination_title", htmlutil.NestedText(s6))

	s6a, err := x.anchor("s6a")
	if err != nil {
		return err
	}
	x.fields.Set("s6_termination_applies", htmlutil.NestedText(s6a))

	s6b, err := x.anchor("s6b")
	if err != nil {
		return err
	}
	if p := s6b.Find("p").First(); p.Length() > 0 {
		x.fields.Set("s6_termination_reinstates_where", htmlutil.NestedText(p))
	} else {
		where, _ := htmlutil.TextUpTo(s6b, "ol")
		x.fields.Set("s6_termination_reinstates_where", where)
	}

	for _, c := range []struct{ id, field string }{
		{"s6b1", "s6_termination_reinstates_automatically"},
		{"s6b2", "s6_termination_reinstates_express"},
	} {
		sel, err := x.anchor(c.id)
		if err != nil {
			return err
		}
		x.fields.Set(c.field, htmlutil.NestedText(sel))
	}

	// The reinstatement postscript occupies a fixed span of s6b's child
	// nodes (text nodes included) right after the clause list.
	var children []string
	for c := s6b.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		children = append(children, htmlutil.RenderNode(c))
	}
	lo, hi := 4, 7
	if lo > len(children) {
		lo = len(children)
	}
	if hi > len(children) {
		hi = len(children)
	}
	x.fields.Set("s6_termination_reinstates_postscript",
		strings.TrimSpace(strings.Join(children[lo:hi], "")))
	return nil
}

// otherTerms reads Section 7.
func (x *extraction) otherTerms() error {
	for _, c := range []struct{ id, field string }{
		{"s7", "s7_other_terms_title"},
		{"s7a", "s7_a"},
		{"s7b", "s7_b"},
	} {
		sel, err := x.anchor(c.id)
		if err != nil {
			return err
		}
		x.fields.Set(c.field, htmlutil.NestedText(sel))
	}
	return nil
}

// interpretation reads Section 8; its clauses keep their anchor ids as field
// names.
func (x *extraction) interpretation() error {
	s8, err := x.anchor("s8")
	if err != nil {
		return err
	}
	x.fields.Set("s8_interpretation_title", htmlutil.NestedText(s8))

	for _, id := range []string{"s8a", "s8b", "s8c", "s8d"} {
		sel, err := x.anchor(id)
		if err != nil {
			return err
		}
		inner, _ := htmlutil.InnerHTML(sel)
		x.fields.Set(id, inner)
	}
	return nil
}
