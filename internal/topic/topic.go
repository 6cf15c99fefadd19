package topic

import (
	"strings"

	"sante-rag/internal/domain"
)

// Rule maps query trigger substrings to the keywords expected in matching
// brochure filenames.
type Rule struct {
	Triggers []string
	Keywords []string
}

// rules is evaluated top to bottom against the lower-cased query; the first
// rule with a matching trigger wins and no later rule is consulted. Rules
// are mutually exclusive by construction and never combine, so a query
// naming two conditions resolves to whichever appears first here.
var rules = []Rule{
	{Triggers: []string{"otite"}, Keywords: []string{"otite"}},
	{Triggers: []string{"rhinopharyng"}, Keywords: []string{"rhinopharyngite"}},
	{Triggers: []string{"angine"}, Keywords: []string{"angine"}},
	{Triggers: []string{"fièvre", "fievre"}, Keywords: []string{"fievre"}},
	{Triggers: []string{"gastro"}, Keywords: []string{"gastro"}},
	{Triggers: []string{"bronchiolite"}, Keywords: []string{"bronchiolite"}},
	{Triggers: []string{"hypertension", "tension"}, Keywords: []string{"hypertension"}},
	{Triggers: []string{"diabète", "diabete"}, Keywords: []string{"diabete"}},
	{Triggers: []string{"migraine"}, Keywords: []string{"migraine"}},
	{Triggers: []string{"grippe"}, Keywords: []string{"grippe"}},
	{Triggers: []string{"covid"}, Keywords: []string{"covid"}},
	{Triggers: []string{"asthme"}, Keywords: []string{"asthme"}},
	{Triggers: []string{"allerg"}, Keywords: []string{"allergie", "allergies"}},
	{Triggers: []string{"cholestérol", "cholesterol"}, Keywords: []string{"cholesterol"}},
}

// Detect returns the filename keywords of the first rule whose trigger
// appears in the query, or nil when no topic is recognized.
func Detect(query string) []string {
	q := strings.ToLower(query)
	for _, r := range rules {
		for _, t := range r.Triggers {
			if strings.Contains(q, t) {
				return r.Keywords
			}
		}
	}
	return nil
}

// Filter keeps only results whose filename contains one of the keywords,
// case-insensitively. With no keywords the input is returned unchanged, and
// when filtering would remove everything the original results are returned
// instead: topic filtering never reduces an answer to zero sources.
func Filter(results []domain.QueryResult, keywords []string) []domain.QueryResult {
	if len(keywords) == 0 {
		return results
	}
	var filtered []domain.QueryResult
	for _, r := range results {
		name := strings.ToLower(r.Filename)
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				filtered = append(filtered, r)
				break
			}
		}
	}
	if len(filtered) == 0 {
		return results
	}
	return filtered
}
