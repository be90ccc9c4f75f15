package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"legalcode-catalog/internal/schema"
)

// docOptions controls the synthetic legalcode documents the extractor tests
// run against.
type docOptions struct {
	// prefix is prepended to every text so two languages of the same variant
	// can be told apart.
	prefix string
	// language selects the schema (the Portuguese by-sa override needs it).
	language string
	// bareS6b drops the <p> wrapper around the reinstatement intro.
	bareS6b bool
	// noEmphasisS2a replaces every emphasis tag inside the s2a clause with
	// <em>, so neither title shape is present.
	noEmphasisS2a bool
	// s2a1BContent overrides the adapted-material grant text.
	s2a1BContent string
	// emptyS3a3 leaves the remove-restrictions clause blank.
	emptyS3a3 bool
}

// buildLegalcode produces a minimal but complete legalcode document for a
// license code, with every anchor the extractor expects.
func buildLegalcode(t *testing.T, code string, opt docOptions) string {
	t.Helper()

	p := opt.prefix
	language := opt.language
	if language == "" {
		language = "en"
	}
	emph := "strong"
	if opt.noEmphasisS2a {
		emph = "em"
	}
	s2a1B := opt.s2a1BContent
	if s2a1B == "" {
		s2a1B = p + "Adapted material grant."
	}
	s3a3 := p + "Remove restrictions text."
	if opt.emptyS3a3 {
		s3a3 = " "
	}

	definitions, err := schema.Definitions(code, language)
	if err != nil {
		t.Fatalf("resolve definitions schema: %v", err)
	}
	downstreams := schema.Downstreams(code)

	var b strings.Builder
	b.WriteString(`<html><body><div id="deed-license"><h2>` + p + `Medium title</h2></div>`)
	b.WriteString(`<div id="deed-main-content">`)
	b.WriteString(`<h3>` + p + `Long license title</h3>`)
	b.WriteString(`<p>` + p + `Intro paragraph.</p>`)

	// Section 1.
	b.WriteString(`<p id="s1"><strong>` + p + `Definitions</strong></p><ol>`)
	for _, name := range definitions {
		fmt.Fprintf(&b, `<li><strong>%sTerm %s</strong> %smeans %s.</li>`, p, name, p, name)
	}
	b.WriteString(`</ol>`)

	// Section 2.
	b.WriteString(`<p id="s2"><strong>` + p + `Scope</strong></p>`)
	b.WriteString(`<ol><li id="s2a"><` + emph + `>` + p + `License grant.</` + emph + `>`)
	b.WriteString(`<ol><li id="s2a1">` + p + `Grant intro.`)
	b.WriteString(`<ol><li id="s2a1A">` + p + `Share grant.</li>`)
	b.WriteString(`<li id="s2a1B">` + s2a1B + `</li></ol></li>`)
	fmt.Fprintf(&b, `<li id="s2a2"><%s>%sExceptions.</%s> %sExceptions text.</li>`, emph, p, emph, p)
	fmt.Fprintf(&b, `<li id="s2a3"><%s>%sTerm.</%s> %sTerm text.</li>`, emph, p, emph, p)
	fmt.Fprintf(&b, `<li id="s2a4"><%s>%sMedia.</%s> %sMedia text.</li>`, emph, p, emph, p)
	fmt.Fprintf(&b, `<li id="s2a5"><%s>%sDownstream recipients.</%s><div><ol>`, emph, p, emph)
	for _, name := range downstreams {
		fmt.Fprintf(&b, `<li><%s>%sDownstream %s.</%s> %stext for %s.</li>`, emph, p, name, emph, p, name)
	}
	b.WriteString(`</ol></div></li>`)
	fmt.Fprintf(&b, `<li id="s2a6"><%s>%sNo endorsement.</%s> %sEndorsement text.</li>`, emph, p, emph, p)
	b.WriteString(`</ol></li>`)
	b.WriteString(`<li id="s2b">` + p + `Other rights title.<ol>`)
	b.WriteString(`<li>` + p + `Moral rights.</li><li>` + p + `Patent rights.</li><li>` + p + `Waive text.</li></ol></li></ol>`)

	// Section 3.
	b.WriteString(`<p id="s3"><strong>` + p + `Conditions</strong></p><p>` + p + `Conditions intro.</p>`)
	b.WriteString(`<ol><li id="s3a">` + p + `Attribution.<ol>`)
	b.WriteString(`<li id="s3a1">` + p + `If you share.<ol>`)
	b.WriteString(`<li id="s3a1A">` + p + `Retain the following.<ol>`)
	b.WriteString(`<li id="s3a1Ai">` + p + `Identification.</li>`)
	b.WriteString(`<li id="s3a1Aii">` + p + `Copyright notice.</li>`)
	b.WriteString(`<li id="s3a1Aiii">` + p + `License notice.</li>`)
	b.WriteString(`<li id="s3a1Aiv">` + p + `Disclaimer notice.</li>`)
	b.WriteString(`<li id="s3a1Av">` + p + `Link.</li></ol></li>`)
	b.WriteString(`<li id="s3a1B">` + p + `Modified indication.</li>`)
	b.WriteString(`<li id="s3a1C">` + p + `Licensed indication.</li></ol></li>`)
	b.WriteString(`<li id="s3a2">` + p + `Satisfy text.</li>`)
	b.WriteString(`<li id="s3a3">` + s3a3 + `</li></ol></li>`)
	if strings.HasSuffix(code, "-sa") {
		b.WriteString(`<li id="s3b"><strong>` + p + `ShareAlike.</strong><p>` + p + `ShareAlike intro.</p></li>`)
	}
	b.WriteString(`</ol>`)

	// Section 4: the postscript must immediately follow the clause list.
	b.WriteString(`<p id="s4"><strong>` + p + `Database rights</strong></p><p>` + p + `Database intro.</p>`)
	b.WriteString(`<ol><li id="s4a">` + p + `Extract and reuse.</li>`)
	b.WriteString(`<li id="s4b">` + p + `Adapted database.</li>`)
	b.WriteString(`<li id="s4c">` + p + `Comply with conditions.</li></ol>`)
	b.WriteString(p + `Database postscript.`)

	// Section 5.
	b.WriteString(`<p id="s5">` + p + `Disclaimer title</p>`)
	b.WriteString(`<ol><li id="s5a">` + p + `Warranty disclaimer.</li>`)
	b.WriteString(`<li id="s5b">` + p + `Liability limit.</li>`)
	b.WriteString(`<li id="s5c">` + p + `Disclaimer interpretation.</li></ol>`)

	// Section 6.
	b.WriteString(`<p id="s6"><strong>` + p + `Term and termination</strong></p>`)
	b.WriteString(`<ol><li id="s6a">` + p + `Applies text.</li>`)
	b.WriteString(`<li id="s6b">`)
	if opt.bareS6b {
		b.WriteString(p + `Reinstates where bare.`)
	} else {
		b.WriteString(`<p>` + p + `Reinstates where.</p>`)
	}
	b.WriteString("\n")
	b.WriteString(`<ol><li id="s6b1">` + p + `Automatically.</li><li id="s6b2">` + p + `Express.</li></ol>`)
	b.WriteString("\n")
	b.WriteString(`<span>` + p + `Reinstates postscript.</span> ` + p + `More postscript. <span>` + p + `Tail.</span>`)
	b.WriteString(`</li></ol>`)

	// Section 7.
	b.WriteString(`<p id="s7">` + p + `Other terms title</p>`)
	b.WriteString(`<ol><li id="s7a">` + p + `No waiver.</li><li id="s7b">` + p + `No modification.</li></ol>`)

	// Section 8.
	b.WriteString(`<p id="s8">` + p + `Interpretation title</p>`)
	b.WriteString(`<ol><li id="s8a">` + p + `Limits clause.</li>`)
	b.WriteString(`<li id="s8b">` + p + `Severability clause.</li>`)
	b.WriteString(`<li id="s8c">` + p + `Waiver clause.</li>`)
	b.WriteString(`<li id="s8d">` + p + `Privileges clause.</li></ol>`)

	b.WriteString(`</div></body></html>`)
	return b.String()
}
