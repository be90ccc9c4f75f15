// Package schema resolves, per license variant, the ordered field names of
// the variable-length legalcode sections: the Section 1 definitions list and
// the Section 2(a)(5) downstream-recipients list. Field extraction assigns
// list items to names positionally, so the resolved order must match the
// document's item order exactly.
package schema

import "fmt"

// FaultError reports an insertion rule referencing an anchor field that is
// not present in the sequence. The rules are source-defined, so this is a
// defect in the rules themselves, never a document problem.
type FaultError struct {
	Anchor string
	Insert string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("schema fault: insertion anchor %q not found (inserting %q)", e.Anchor, e.Insert)
}

// baseDefinitions are the Section 1 definitions common to every 4.0 license,
// in document order.
var baseDefinitions = []string{
	"adapted_material",
	"copyright_and_similar_rights",
	"effective_technological_measures",
	"exceptions_and_limitations",
	"licensed_material",
	"licensed_rights",
	"licensor",
	"share",
	"sui_generis_database_rights",
	"you",
}

// insertion places Insert immediately after After in the sequence. Rules are
// applied in order, so a rule may anchor on a field inserted by an earlier
// rule in the same list.
type insertion struct {
	After  string
	Insert string
}

// definitionInsertions is the per-variant rule table. One entry per license
// code; absent codes (by-nd) add nothing.
var definitionInsertions = map[string][]insertion{
	"by": {
		{"adapted_material", "adapters_license"},
	},
	"by-sa": {
		{"adapted_material", "adapters_license"},
		{"adapters_license", "by_sa_compatible_license"},
		{"exceptions_and_limitations", "license_elements_sa"},
	},
	"by-nc": {
		{"adapted_material", "adapters_license"},
		{"licensor", "noncommercial"},
	},
	"by-nc-nd": {
		{"licensor", "noncommercial"},
	},
	"by-nc-sa": {
		{"adapted_material", "adapters_license"},
		{"exceptions_and_limitations", "license_elements_nc_sa"},
		{"adapters_license", "by_nc_sa_compatible_license"},
		{"licensor", "noncommercial"},
	},
}

// languageOverrides holds documented per-(variant, language) irregularities.
// The upstream BY-SA 4.0 Portuguese translation carries an extra definition
// list item after "You"; see creativecommons.org issue #1153. Data, not
// logic: the general rule stays variant-only.
var languageOverrides = map[string]map[string][]insertion{
	"by-sa": {
		"pt": {{"you", "you2"}},
	},
}

// Definitions resolves the ordered definitions field names for a variant and
// language. The language matters only for the documented override table.
func Definitions(licenseCode, languageCode string) ([]string, error) {
	seq := make([]string, len(baseDefinitions))
	copy(seq, baseDefinitions)

	rules := definitionInsertions[licenseCode]
	if ov, ok := languageOverrides[licenseCode][languageCode]; ok {
		rules = append(append([]insertion{}, rules...), ov...)
	}

	for _, r := range rules {
		var err error
		seq, err = insertAfter(seq, r.After, r.Insert)
		if err != nil {
			return nil, err
		}
	}
	return seq, nil
}

// Downstreams resolves the ordered downstream-recipients field names for a
// variant. Share-alike variants carry an extra "adapted material" clause
// between the two common ones.
func Downstreams(licenseCode string) []string {
	seq := []string{"offer", "no_restrictions"}
	if licenseCode == "by-sa" || licenseCode == "by-nc-sa" {
		seq = []string{"offer", "adapted_material", "no_restrictions"}
	}
	return seq
}

func insertAfter(seq []string, after, insert string) ([]string, error) {
	for i, name := range seq {
		if name == after {
			out := make([]string, 0, len(seq)+1)
			out = append(out, seq[:i+1]...)
			out = append(out, insert)
			out = append(out, seq[i+1:]...)
			return out, nil
		}
	}
	return nil, &FaultError{Anchor: after, Insert: insert}
}
