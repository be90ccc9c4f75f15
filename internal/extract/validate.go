package extract

import "strings"

// Validate confirms every extracted field holds non-empty content. It must
// pass before a field map is handed to catalog assembly; the first offending
// field aborts with IncompleteExtractionError.
func Validate(fm *FieldMap) error {
	for _, name := range fm.Keys() {
		v, _ := fm.Get(name)
		if strings.TrimSpace(v) == "" {
			return &IncompleteExtractionError{Field: name}
		}
	}
	return nil
}
