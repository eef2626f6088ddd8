package filters

import "github.com/kyleking/local-mw/internal/models"

func FilterRepos(statuses []models.RepoStatus, mode models.FilterMode) []models.RepoStatus {
	if mode == models.FilterModeAll {
		return statuses
	}

	var filtered []models.RepoStatus
	for _, s := range statuses {
		if passesFilter(s, mode) {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

func passesFilter(s models.RepoStatus, mode models.FilterMode) bool {
	switch mode {
	case models.FilterModeAll:
		return true
	case models.FilterModeUpdates:
		return s.Category() == models.CategoryUpdates
	case models.FilterModeErrors:
		return s.Category() == models.CategoryError
	case models.FilterModeUpToDate:
		return s.Category() == models.CategoryUpToDate
	case models.FilterModeDirty:
		return s.Dirty
	default:
		return true
	}
}

func FilterAndSort(
	statuses []models.RepoStatus,
	filterMode models.FilterMode,
	sortMode models.SortMode,
	searchText string,
	reverse bool,
) []models.RepoStatus {
	filtered := FilterRepos(statuses, filterMode)

	if searchText != "" {
		filtered = SearchRepos(filtered, searchText)
	}

	return SortRepos(filtered, sortMode, reverse)
}
