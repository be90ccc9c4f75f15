package catalog_test

import (
	"testing"

	"legalcode-catalog/internal/catalog"
	"legalcode-catalog/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMap(pairs ...string) *extract.FieldMap {
	fm := extract.NewFieldMap()
	for i := 0; i < len(pairs); i += 2 {
		fm.Set(pairs[i], pairs[i+1])
	}
	return fm
}

func TestAssembleAuthoritative(t *testing.T) {
	english := fieldMap(
		"license_medium", "Attribution 4.0 International",
		"s1_definitions_title", "Definitions",
	)

	c := catalog.Assemble(english, english, "by_40", "en", "en")

	assert.Equal(t, "by_40", c.Domain)
	assert.Equal(t, "en", c.Language)
	require.Len(t, c.Entries, 2)
	assert.Equal(t, "Attribution 4.0 International", c.Entries[0].Key)
	assert.Equal(t, "Definitions", c.Entries[1].Key)
	for _, e := range c.Entries {
		assert.Empty(t, e.Translation)
	}
}

func TestAssembleTranslation(t *testing.T) {
	english := fieldMap(
		"license_medium", "Attribution 4.0 International",
		"s1_definitions_title", "Definitions",
	)
	french := fieldMap(
		"license_medium", "Attribution 4.0 International\n",
		"s1_definitions_title", "  Définitions ",
	)

	c := catalog.Assemble(english, french, "by_40", "fr", "en")

	require.Len(t, c.Entries, 2)
	assert.Equal(t, "Attribution 4.0 International", c.Entries[0].Key)
	assert.Equal(t, "Attribution 4.0 International", c.Entries[0].Translation)
	assert.Equal(t, "Definitions", c.Entries[1].Key)
	assert.Equal(t, "Définitions", c.Entries[1].Translation)
}

func TestAssembleOrderFollowsTarget(t *testing.T) {
	english := fieldMap("a", "A", "b", "B", "c", "C")
	target := fieldMap("c", "trois", "a", "un", "b", "deux")

	c := catalog.Assemble(english, target, "by_40", "fr", "en")

	require.Len(t, c.Entries, 3)
	assert.Equal(t, []string{"C", "A", "B"},
		[]string{c.Entries[0].Key, c.Entries[1].Key, c.Entries[2].Key})
}

func TestAssembleSelfKeyFallback(t *testing.T) {
	english := fieldMap("license_medium", "Attribution 4.0 International")
	target := fieldMap(
		"license_medium", "Atribuição 4.0 Internacional",
		"s1_definitions_you2", "Licenciada",
	)

	c := catalog.Assemble(english, target, "by-sa_40", "pt", "en")

	require.Len(t, c.Entries, 2)
	assert.Equal(t, "Atribuição 4.0 Internacional", c.Entries[0].Translation)
	// No English counterpart exists for the extra field, so it keys on its
	// own translated text instead of being dropped.
	assert.Equal(t, "Licenciada", c.Entries[1].Key)
	assert.Equal(t, "Licenciada", c.Entries[1].Translation)
}
