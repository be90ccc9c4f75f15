// Package walker discovers legalcode HTML documents in a dump directory and
// attaches their filename metadata.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"legalcode-catalog/internal/legalcode"

	"github.com/rs/zerolog/log"
)

// Entry is one discovered legalcode document.
type Entry struct {
	Path    string
	Meta    legalcode.Metadata
	Variant legalcode.Variant
}

// Discover lists the attribution-family HTML documents directly under root,
// sorted by filename, with parsed metadata. Files that do not follow the
// dump's naming convention are skipped with a warning.
func Discover(root string) ([]Entry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if strings.HasPrefix(name, "by") && strings.HasSuffix(name, ".html") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		meta, err := legalcode.ParseFilename(name)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Skipping unrecognized filename")
			continue
		}
		variant, err := legalcode.NewVariant(meta.LicenseCode)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Skipping unsupported license code")
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(root, name),
			Meta:    meta,
			Variant: variant,
		})
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered legalcode documents")
	return entries, nil
}
