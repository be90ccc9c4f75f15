package legalcode

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultLanguage is the authoritative language when a filename names none.
const DefaultLanguage = "en"

// Metadata is the information carried by a legalcode filename.
type Metadata struct {
	LicenseCode      string
	Version          string
	JurisdictionCode string
	LanguageCode     string
	AboutURL         string
}

// ParseFilename extracts license metadata from a legalcode filename.
//
// The dump's convention is underscore-separated parts:
//
//	by-nc-nd_4.0.html        unported, English
//	by-nc-nd_4.0_es.html     unported, Spanish
//	by-nc-nd_3.0_am_hy.html  Armenia port, Armenian
//
// Two trailing parts mean jurisdiction then language; one trailing part is a
// language (4.0 licenses are international and carry no jurisdiction).
func ParseFilename(filename string) (Metadata, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := strings.Split(base, "_")
	if len(parts) < 2 || len(parts) > 4 {
		return Metadata{}, fmt.Errorf("unrecognized legalcode filename %q", filename)
	}

	m := Metadata{
		LicenseCode: parts[0],
		Version:     parts[1],
	}
	switch len(parts) {
	case 3:
		m.LanguageCode = parts[2]
	case 4:
		m.JurisdictionCode = parts[2]
		m.LanguageCode = parts[3]
	}

	m.AboutURL = aboutURL(m)
	return m, nil
}

func aboutURL(m Metadata) string {
	url := fmt.Sprintf("http://creativecommons.org/licenses/%s/%s/", m.LicenseCode, m.Version)
	if m.JurisdictionCode != "" {
		url += m.JurisdictionCode + "/"
	}
	return url
}
