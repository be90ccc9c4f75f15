package pofile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Locale converts a language code to its locale-directory form:
// "en" → "en", "pt-br" → "pt_BR", "zh-hans" → "zh_Hans".
func Locale(languageCode string) string {
	code := strings.ReplaceAll(languageCode, "_", "-")
	parts := strings.SplitN(code, "-", 2)
	lang := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return lang
	}
	region := parts[1]
	if len(region) > 2 {
		// Script subtags keep a single leading capital (zh_Hans).
		region = strings.ToUpper(region[:1]) + strings.ToLower(region[1:])
	} else {
		region = strings.ToUpper(region)
	}
	return lang + "_" + region
}

// Write saves the catalog as <localeRoot>/<locale>/LC_MESSAGES/<domain>.po
// plus the compiled <domain>.mo alongside it.
func (f *File) Write(localeRoot, languageCode, domain string) error {
	dir := filepath.Join(localeRoot, Locale(languageCode), "LC_MESSAGES")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create locale directory: %w", err)
	}

	poPath := filepath.Join(dir, domain+".po")
	if err := os.WriteFile(poPath, []byte(f.Render()), 0o644); err != nil {
		return fmt.Errorf("write po file: %w", err)
	}

	moPath := filepath.Join(dir, domain+".mo")
	if err := os.WriteFile(moPath, f.CompileMO(), 0o644); err != nil {
		return fmt.Errorf("write mo file: %w", err)
	}

	log.Info().
		Str("po", poPath).
		Str("mo", moPath).
		Int("entries", f.Len()).
		Msg("Catalog written")
	return nil
}
