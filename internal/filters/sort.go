package filters

import (
	"sort"
	"strings"

	"github.com/kyleking/local-mw/internal/models"
)

// SortRepos returns a sorted copy. SortModeScan keeps the input order,
// which is the order the scan produced.
func SortRepos(statuses []models.RepoStatus, mode models.SortMode, reverse bool) []models.RepoStatus {
	if len(statuses) == 0 {
		return statuses
	}

	sorted := make([]models.RepoStatus, len(statuses))
	copy(sorted, statuses)

	if mode == models.SortModeScan {
		if reverse {
			for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if reverse {
			return compareRepos(sorted[j], sorted[i], mode)
		}
		return compareRepos(sorted[i], sorted[j], mode)
	})

	return sorted
}

func compareRepos(a, b models.RepoStatus, mode models.SortMode) bool {
	switch mode {
	case models.SortModeBehind:
		return compareByBehind(a, b)
	case models.SortModeStatus:
		return compareByStatus(a, b)
	default:
		return compareByName(a, b)
	}
}

func compareByName(a, b models.RepoStatus) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

func compareByBehind(a, b models.RepoStatus) bool {
	if a.Behind != b.Behind {
		return a.Behind > b.Behind
	}
	return compareByName(a, b)
}

// compareByStatus puts errors first, then repositories with updates.
func compareByStatus(a, b models.RepoStatus) bool {
	ra, rb := categoryRank(a.Category()), categoryRank(b.Category())
	if ra != rb {
		return ra < rb
	}
	if a.Dirty != b.Dirty {
		return a.Dirty
	}
	return compareByName(a, b)
}

func categoryRank(c models.Category) int {
	switch c {
	case models.CategoryError:
		return 0
	case models.CategoryUpdates:
		return 1
	default:
		return 2
	}
}
