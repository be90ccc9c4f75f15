// Package catalog folds per-language field maps into translation catalogs.
// Keys come from the authoritative language's text so that every translation
// of the same variant shares one key set.
package catalog

import (
	"strings"

	"legalcode-catalog/internal/extract"
	"legalcode-catalog/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Entry is one catalog message: the authoritative-language key and this
// language's translation. Translation is empty for the authoritative
// language itself.
type Entry struct {
	Key         string
	Translation string
}

// Catalog is the complete entry set for one (variant, language) pair.
type Catalog struct {
	Domain   string
	Language string
	Entries  []Entry
}

// Assemble builds the catalog for a target language from its field map and
// the retained authoritative field map. Entry order follows the target map's
// insertion order. The authoritative map must already have passed validation;
// assembly does no re-checking.
func Assemble(authoritative, target *extract.FieldMap, domain, languageCode, authoritativeLanguage string) *Catalog {
	c := &Catalog{
		Domain:   domain,
		Language: languageCode,
		Entries:  make([]Entry, 0, target.Len()),
	}

	for _, field := range target.Keys() {
		translation, _ := target.Get(field)

		key, ok := authoritative.Get(field)
		if !ok {
			// Validation guarantees the authoritative map is complete, so
			// this fires only when the target carries a field its variant's
			// authoritative document does not. Keep the translation itself
			// as the key rather than dropping the message.
			log.Warn().
				Str("field", field).
				Str("language", languageCode).
				Str("domain", domain).
				Str("text", textutil.Truncate(translation, 40)).
				Msg("Field missing from authoritative map, keying on its own text")
			key = translation
		}

		value := ""
		if languageCode != authoritativeLanguage {
			value = strings.TrimSpace(translation)
		}
		c.Entries = append(c.Entries, Entry{Key: key, Translation: value})
	}

	return c
}
