package body

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label returns a human readable name for a slug, e.g. "Lower Back".
func Label(slug Slug) string {
	words := strings.ReplaceAll(string(slug), "-", " ")
	return cases.Title(language.English).String(words)
}

// SideLabel returns Label(slug) qualified with the side, e.g. "Biceps (left)".
func SideLabel(slug Slug, side Side) string {
	if side == SideNone {
		return Label(slug)
	}
	return Label(slug) + " (" + string(side) + ")"
}
