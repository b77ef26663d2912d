package retrieval

import "strings"

// Query is the per-message classification the relevance filter works from.
// It is built once per incoming message and discarded after the context is
// rendered.
type Query struct {
	Raw     string
	Lower   string // folded: lower-case with Spanish accents stripped
	Generic bool
	Filters []string
}

var accentReplacer = strings.NewReplacer(
	"á", "a",
	"é", "e",
	"í", "i",
	"ó", "o",
	"ú", "u",
	"ü", "u",
)

// foldText lower-cases the text and strips Spanish diacritics so the
// keyword tables can be written accent-free. The ñ is kept: it is a
// distinct letter, not an accent.
func foldText(s string) string {
	return accentReplacer.Replace(strings.ToLower(s))
}

// ClassifyQuery derives the browse/specific classification and the
// category filters for a message. Pure keyword heuristics, no model call.
func ClassifyQuery(message string) Query {
	lower := foldText(message)
	q := Query{Raw: message, Lower: lower}
	q.Generic = containsAny(lower, genericTerms)
	for _, group := range filterGroups {
		if !machineFilterNames[group.Name] {
			continue
		}
		if containsAny(lower, group.Terms) {
			q.Filters = append(q.Filters, group.Name)
		}
	}
	return q
}

// matchedGroups returns every filter group whose terms appear in the folded
// message, accessory groups included.
func matchedGroups(lower string) []filterGroup {
	var groups []filterGroup
	for _, group := range filterGroups {
		if containsAny(lower, group.Terms) {
			groups = append(groups, group)
		}
	}
	return groups
}

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
