package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyleking/local-mw/internal/batch"
	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/ui/styles"
)

type ViewMode int

const (
	ViewModeRepoList ViewMode = iota
	ViewModeRepoDetail
	ViewModeHelp
)

// Model is a read-only dashboard over one installation. It never pulls:
// the resolve function it is given must come from a report-only resolver.
type Model struct {
	base    string
	resolve batch.ResolveFunc
	workers int
	// resetFetches, when set, drops remembered fetches before a full rescan.
	resetFetches func()

	scanID   int
	updates  <-chan tea.Msg
	targets  []models.Target
	statuses []models.RepoStatus
	resolved []bool

	filtered []models.RepoStatus
	cursor   int

	filterMode  models.FilterMode
	sortMode    models.SortMode
	sortReverse bool
	searchText  string
	searching   bool
	searchInput textinput.Model

	viewMode     ViewMode
	selectedPath string
	width        int
	height       int
	loading      bool
	loadedCount  int

	spinner spinner.Model
	keys    KeyMap
	help    help.Model
}

func New(base string, resolve batch.ResolveFunc, workers int) Model {
	ti := textinput.New()
	ti.Placeholder = "Search repos..."
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.FooterKeyStyle
	h.Styles.ShortDesc = styles.FooterDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		base:        base,
		resolve:     resolve,
		workers:     workers,
		searchInput: ti,
		viewMode:    ViewModeRepoList,
		loading:     true,
		spinner:     sp,
		keys:        DefaultKeyMap(),
		help:        h,
	}
}

// WithFetchReset registers fn to run before a rescan that must contact every
// remote again.
func (m Model) WithFetchReset(fn func()) Model {
	m.resetFetches = fn
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, startScanCmd(m.scanID, m.base, m.resolve, m.workers))
}

// Statuses returns the resolved statuses in scan order.
func (m Model) Statuses() []models.RepoStatus {
	out := make([]models.RepoStatus, 0, m.loadedCount)
	for i, s := range m.statuses {
		if m.resolved[i] {
			out = append(out, s)
		}
	}
	return out
}

func (m Model) Stats() models.Statistics {
	return models.Aggregate(m.Statuses())
}

func (m Model) DirtyCount() int {
	count := 0
	for _, s := range m.Statuses() {
		if s.Dirty {
			count++
		}
	}
	return count
}

func (m Model) CurrentFilter() models.FilterMode {
	return m.filterMode
}

func (m *Model) CycleFilter() {
	m.filterMode = m.filterMode.Next()
}

func (m *Model) CycleSort() {
	m.sortMode = m.sortMode.Next()
}

func (m *Model) ResetFilters() {
	m.filterMode = models.FilterModeAll
	m.sortMode = models.SortModeScan
	m.sortReverse = false
	m.searchText = ""
	m.searchInput.SetValue("")
}

// DetailStatus is the status shown in the detail view. It follows the
// selected path so late results do not shift it.
func (m Model) DetailStatus() (models.RepoStatus, bool) {
	for _, s := range m.Statuses() {
		if s.Path == m.selectedPath {
			return s, true
		}
	}
	return models.RepoStatus{}, false
}

func (m Model) SelectedStatus() (models.RepoStatus, bool) {
	if m.cursor >= 0 && m.cursor < len(m.filtered) {
		return m.filtered[m.cursor], true
	}
	return models.RepoStatus{}, false
}
