package catalog

import "strings"

// CategoryLink pairs a catalog category with its public listing URL.
type CategoryLink struct {
	Categoria string `json:"categoria"`
	Link      string `json:"link"`
}

var categoryPrefixes = []string{"categoria:", "categoría:"}

// ExtractCategoryLinks parses the store policy text into category/link
// pairs. The grammar is two adjacent non-blank lines: "categoria: <name>"
// followed by "link: <url>". A category line whose next non-blank line is
// not a link line is dropped silently; the policy text is hand-edited and
// lossy parsing beats rejecting the whole file.
func ExtractCategoryLinks(policy string) []CategoryLink {
	var links []CategoryLink
	var pending string
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if prefix, ok := matchPrefix(lower, categoryPrefixes); ok {
			pending = strings.TrimSpace(line[len(prefix):])
			continue
		}
		if strings.HasPrefix(lower, "link:") {
			link := strings.TrimSpace(line[len("link:"):])
			if pending != "" && link != "" {
				links = append(links, CategoryLink{Categoria: pending, Link: link})
			}
			pending = ""
			continue
		}
		// Any other non-blank line orphans a pending category.
		pending = ""
	}
	return links
}

func matchPrefix(lower string, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, prefix) {
			return prefix, true
		}
	}
	return "", false
}
