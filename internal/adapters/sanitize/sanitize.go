// Package sanitize cleans free text supplied by travellers and admins before
// it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// maxPasses bounds the sanitize/unescape loop. Each pass that changes the
// text peels one layer of entity encoding.
const maxPasses = 4

// clean applies p and decodes the entities it produced, repeating until the
// text is stable, so markup smuggled in as entities is caught on a later
// pass. Text that never settles is returned in its escaped, inert form.
func clean(p *bluemonday.Policy, s string) string {
	cur := strings.TrimSpace(s)
	for i := 0; i < maxPasses; i++ {
		next := strings.TrimSpace(html.UnescapeString(p.Sanitize(cur)))
		if next == cur {
			return cur
		}
		cur = next
	}
	return strings.TrimSpace(p.Sanitize(cur))
}

// Text strips all markup and returns trimmed plain text. Characters such as
// "&" and "<" in ordinary prose survive unchanged.
func Text(s string) string { return clean(strict, s) }

// OptionalText is Text for nullable fields: empty results become nil.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Note keeps basic formatting (emphasis, lists, links) and removes anything
// executable. Plain text is stored as typed, trimmed.
func Note(s string) string { return clean(ugc, s) }
