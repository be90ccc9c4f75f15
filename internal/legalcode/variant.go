// Package legalcode models license variants and the filename metadata
// convention used by the legalcode document dumps.
package legalcode

import (
	"fmt"
	"strings"
)

// Codes lists the 4.0 license variants processed by the importer, in the
// order they are batched.
var Codes = []string{"by", "by-sa", "by-nc-nd", "by-nc", "by-nc-sa", "by-nd"}

// Variant identifies a license family plus its modifier flags, e.g.
// "by-nc-sa". Immutable once constructed.
type Variant struct {
	code  string
	parts map[string]bool
}

// NewVariant parses a license code like "by-nc-nd" into a Variant.
func NewVariant(code string) (Variant, error) {
	v := Variant{code: code, parts: make(map[string]bool)}
	for _, p := range strings.Split(code, "-") {
		v.parts[p] = true
	}
	if !v.parts["by"] {
		return Variant{}, fmt.Errorf("unsupported license code %q: only attribution-family licenses are handled", code)
	}
	return v, nil
}

// Code returns the license code, e.g. "by-nc-sa".
func (v Variant) Code() string { return v.code }

// NonCommercial reports whether the variant carries the "nc" modifier.
func (v Variant) NonCommercial() bool { return v.parts["nc"] }

// NoDerivatives reports whether the variant carries the "nd" modifier.
func (v Variant) NoDerivatives() bool { return v.parts["nd"] }

// ShareAlike reports whether the variant carries the "sa" modifier.
func (v Variant) ShareAlike() bool { return v.parts["sa"] }

// Permissions is the boolean permission set recorded on a License row,
// derived entirely from the variant's modifier flags.
type Permissions struct {
	PermitsDerivativeWorks       bool
	PermitsReproduction          bool
	PermitsDistribution          bool
	PermitsSharing               bool
	RequiresShareAlike           bool
	RequiresNotice               bool
	RequiresAttribution          bool
	RequiresSourceCode           bool
	ProhibitsCommercialUse       bool
	ProhibitsHighIncomeNationUse bool
}

// Permissions derives the permission set for this variant.
func (v Variant) Permissions() Permissions {
	return Permissions{
		PermitsDerivativeWorks:       !v.NoDerivatives(),
		PermitsReproduction:          !v.NoDerivatives(),
		PermitsDistribution:          !v.NoDerivatives(),
		PermitsSharing:               !v.NoDerivatives(),
		RequiresShareAlike:           v.ShareAlike(),
		RequiresNotice:               true,
		RequiresAttribution:          true,
		RequiresSourceCode:           false,
		ProhibitsCommercialUse:       v.NonCommercial(),
		ProhibitsHighIncomeNationUse: false,
	}
}

// Domain returns the translation-catalog domain for a (code, version) pair,
// e.g. ("by-nc-sa", "4.0") → "by-nc-sa_40".
func Domain(code, version string) string {
	return code + "_" + strings.ReplaceAll(version, ".", "")
}
