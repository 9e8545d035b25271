package catalog

import (
	"strings"
)

// Filter narrows a product listing by tag and collection handle.
type Filter struct {
	Tags        []string
	Collections []string
}

// BuildProductQuery renders a Storefront search query. Values within a group
// are ORed and the two groups are ANDed when both are present.
func BuildProductQuery(tags, collections []string) string {
	tagsQuery := joinTerms("tag", tags)
	collectionsQuery := joinTerms("collection", collections)

	switch {
	case tagsQuery != "" && collectionsQuery != "":
		return "(" + tagsQuery + ") AND (" + collectionsQuery + ")"
	case tagsQuery != "":
		return tagsQuery
	default:
		return collectionsQuery
	}
}

func joinTerms(field string, values []string) string {
	terms := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		terms = append(terms, field+":"+quote(v))
	}
	return strings.Join(terms, " OR ")
}

// quote wraps values that would otherwise break the search syntax.
func quote(v string) string {
	if !strings.ContainsAny(v, " \t:()\"") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}
