package models

import "strings"

// RepoKind is the role a repository plays inside an installation.
type RepoKind int

const (
	KindCore RepoKind = iota
	KindExtension
	KindSkin
)

func (k RepoKind) String() string {
	switch k {
	case KindCore:
		return "core"
	case KindExtension:
		return "extension"
	case KindSkin:
		return "skin"
	default:
		return "unknown"
	}
}

// Dir returns the subdirectory of the installation that holds repositories
// of this kind. Core lives at the installation root.
func (k RepoKind) Dir() string {
	switch k {
	case KindExtension:
		return "extensions"
	case KindSkin:
		return "skins"
	default:
		return ""
	}
}

// ParseRepoKind accepts the names printed by String.
func ParseRepoKind(s string) (RepoKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "core":
		return KindCore, true
	case "extension":
		return KindExtension, true
	case "skin":
		return KindSkin, true
	default:
		return KindCore, false
	}
}

func AllRepoKinds() []RepoKind {
	return []RepoKind{KindCore, KindExtension, KindSkin}
}

// Category is the bucket a status is counted under in Statistics.
type Category int

const (
	CategoryUpToDate Category = iota
	CategoryUpdates
	CategoryError
)

func (c Category) String() string {
	switch c {
	case CategoryUpToDate:
		return "up to date"
	case CategoryUpdates:
		return "updates"
	case CategoryError:
		return "error"
	default:
		return "unknown"
	}
}

type FilterMode int

const (
	FilterModeAll FilterMode = iota
	FilterModeUpdates
	FilterModeErrors
	FilterModeUpToDate
	FilterModeDirty
)

func (f FilterMode) String() string {
	switch f {
	case FilterModeAll:
		return "All"
	case FilterModeUpdates:
		return "Updates"
	case FilterModeErrors:
		return "Errors"
	case FilterModeUpToDate:
		return "Up to date"
	case FilterModeDirty:
		return "Dirty"
	default:
		return "Unknown"
	}
}

func (f FilterMode) Next() FilterMode {
	modes := AllFilterModes()
	return modes[(int(f)+1)%len(modes)]
}

func AllFilterModes() []FilterMode {
	return []FilterMode{
		FilterModeAll,
		FilterModeUpdates,
		FilterModeErrors,
		FilterModeUpToDate,
		FilterModeDirty,
	}
}

type SortMode int

const (
	SortModeScan SortMode = iota
	SortModeName
	SortModeBehind
	SortModeStatus
)

func (s SortMode) String() string {
	switch s {
	case SortModeScan:
		return "Scan order"
	case SortModeName:
		return "Name"
	case SortModeBehind:
		return "Behind"
	case SortModeStatus:
		return "Status"
	default:
		return "Unknown"
	}
}

func (s SortMode) Next() SortMode {
	modes := AllSortModes()
	return modes[(int(s)+1)%len(modes)]
}

func AllSortModes() []SortMode {
	return []SortMode{SortModeScan, SortModeName, SortModeBehind, SortModeStatus}
}
