package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsByNcSaOrder(t *testing.T) {
	// Insertions compose: by_nc_sa_compatible_license anchors on
	// adapters_license, itself inserted by an earlier rule.
	got, err := Definitions("by-nc-sa", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"adapted_material",
		"adapters_license",
		"by_nc_sa_compatible_license",
		"copyright_and_similar_rights",
		"effective_technological_measures",
		"exceptions_and_limitations",
		"license_elements_nc_sa",
		"licensed_material",
		"licensed_rights",
		"licensor",
		"noncommercial",
		"share",
		"sui_generis_database_rights",
		"you",
	}, got)
}

func TestDefinitionsPerVariant(t *testing.T) {
	cases := []struct {
		code  string
		count int
		has   []string
		lacks []string
	}{
		{"by", 11, []string{"adapters_license"}, []string{"noncommercial", "license_elements_sa"}},
		{"by-sa", 13, []string{"by_sa_compatible_license", "license_elements_sa"}, []string{"noncommercial"}},
		{"by-nc", 12, []string{"adapters_license", "noncommercial"}, []string{"by_sa_compatible_license"}},
		{"by-nd", 10, nil, []string{"adapters_license", "noncommercial"}},
		{"by-nc-nd", 11, []string{"noncommercial"}, []string{"adapters_license"}},
		{"by-nc-sa", 14, []string{"by_nc_sa_compatible_license", "license_elements_nc_sa", "noncommercial"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got, err := Definitions(tc.code, "en")
			require.NoError(t, err)
			assert.Len(t, got, tc.count)
			for _, name := range tc.has {
				assert.Contains(t, got, name)
			}
			for _, name := range tc.lacks {
				assert.NotContains(t, got, name)
			}
		})
	}
}

func TestDefinitionsDeterministic(t *testing.T) {
	for _, code := range []string{"by", "by-sa", "by-nc", "by-nd", "by-nc-nd", "by-nc-sa"} {
		first, err := Definitions(code, "en")
		require.NoError(t, err)
		second, err := Definitions(code, "en")
		require.NoError(t, err)
		assert.Equal(t, first, second, "schema for %s must be deterministic", code)
	}
}

func TestDefinitionsPortugueseOverride(t *testing.T) {
	pt, err := Definitions("by-sa", "pt")
	require.NoError(t, err)
	en, err := Definitions("by-sa", "en")
	require.NoError(t, err)

	assert.Len(t, pt, len(en)+1)
	assert.Equal(t, "you2", pt[len(pt)-1], "you2 sits immediately after you")
	assert.NotContains(t, en, "you2")

	// The override is scoped to its variant: pt on other variants changes
	// nothing.
	ptNcSa, err := Definitions("by-nc-sa", "pt")
	require.NoError(t, err)
	assert.NotContains(t, ptNcSa, "you2")
}

func TestInsertAfterSchemaFault(t *testing.T) {
	_, err := insertAfter([]string{"a", "b"}, "missing", "x")
	var fault *FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "missing", fault.Anchor)
	assert.Equal(t, "x", fault.Insert)
}

func TestDownstreams(t *testing.T) {
	assert.Equal(t, []string{"offer", "no_restrictions"}, Downstreams("by"))
	assert.Equal(t, []string{"offer", "no_restrictions"}, Downstreams("by-nc-nd"))
	assert.Equal(t, []string{"offer", "adapted_material", "no_restrictions"}, Downstreams("by-sa"))
	assert.Equal(t, []string{"offer", "adapted_material", "no_restrictions"}, Downstreams("by-nc-sa"))
}
