package core

import (
	"regexp"
	"strings"
)

// sharedSepRe splits "shared between" notations: whitespace, x/X/× or "/".
var sharedSepRe = regexp.MustCompile(`[\sxX×/]+`)

// foldPerson lowercases and drops the accents that show up in the known
// aliases, so "Mãe" and "mae" compare equal.
func foldPerson(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("ã", "a", "á", "a", "â", "a", "é", "e", "ê", "e").Replace(s)
	return s
}

// NormalizePerson maps a free-text person label onto the canonical person id
// set. Matching is case- and accent-insensitive. Unknown non-empty labels
// pass through trimmed, becoming ad-hoc person ids; empty input defaults to
// the self person.
func NormalizePerson(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return SelfPerson
	}
	switch folded := foldPerson(s); {
	case folded == "mae":
		return "Mae"
	case folded == "pai":
		return "Pai"
	case strings.Contains(folded, "irmao"):
		return "Irmao"
	case folded == "eu":
		return SelfPerson
	}
	return s
}

// NormalizePersonNullable is NormalizePerson except empty input stays "",
// so "no second party" is distinguishable from "defaulted to self".
func NormalizePersonNullable(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return NormalizePerson(s)
}

// ParseSharedPeople recognizes "Pai x Mãe"-style shared-expense notations.
// Exactly two non-empty parts are required; two parts normalizing to the
// same person collapse to a single element (degenerate, not actually
// shared); anything else returns nil, meaning "not a shared notation".
func ParseSharedPeople(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	var parts []string
	for _, p := range sharedSepRe.Split(s, -1) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 2 {
		return nil
	}
	a, b := NormalizePerson(parts[0]), NormalizePerson(parts[1])
	if a == "" || b == "" {
		return nil
	}
	if a == b {
		return []string{a}
	}
	return []string{a, b}
}
