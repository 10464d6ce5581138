package provider

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Several providers return markup in their abstracts (JATS tags from
// CrossRef, HTML in book descriptions). Excerpts are stripped to plain
// text before they enter a prompt.
var stripPolicy = bluemonday.StrictPolicy()

func cleanText(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(stripPolicy.Sanitize(s)), " "))
}
