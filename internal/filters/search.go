package filters

import (
	"strings"

	"github.com/kyleking/local-mw/internal/models"
	"github.com/sahilm/fuzzy"
)

// SearchRepos keeps statuses whose name contains searchText. When nothing
// matches as a substring it falls back to fuzzy matching.
func SearchRepos(statuses []models.RepoStatus, searchText string) []models.RepoStatus {
	if searchText == "" {
		return statuses
	}

	searchLower := strings.ToLower(searchText)

	var substringMatches []models.RepoStatus
	for _, s := range statuses {
		if strings.Contains(strings.ToLower(s.Name), searchLower) {
			substringMatches = append(substringMatches, s)
		}
	}

	if len(substringMatches) > 0 {
		return substringMatches
	}

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.Name
	}

	var results []models.RepoStatus
	for _, match := range fuzzy.Find(searchText, names) {
		results = append(results, statuses[match.Index])
	}

	return results
}

func FuzzyMatch(pattern, text string) bool {
	if pattern == "" {
		return true
	}

	if strings.Contains(strings.ToLower(text), strings.ToLower(pattern)) {
		return true
	}

	matches := fuzzy.Find(pattern, []string{text})
	return len(matches) > 0
}
