package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyleking/local-mw/internal/filters"
	"github.com/kyleking/local-mw/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ScanStartedMsg:
		if msg.ScanID != m.scanID {
			return m, nil
		}
		m.updates = msg.Updates
		m.targets = msg.Targets
		m.statuses = make([]models.RepoStatus, len(msg.Targets))
		m.resolved = make([]bool, len(msg.Targets))
		m.loadedCount = 0
		m.updateFiltered()
		return m, waitForUpdateCmd(m.updates)

	case StatusResolvedMsg:
		if msg.ScanID != m.scanID || msg.Index < 0 || msg.Index >= len(m.statuses) {
			return m, nil
		}
		if !m.resolved[msg.Index] {
			m.resolved[msg.Index] = true
			m.loadedCount++
		}
		m.statuses[msg.Index] = msg.Status
		m.updateFiltered()
		return m, waitForUpdateCmd(m.updates)

	case ScanCompleteMsg:
		if msg.ScanID != m.scanID {
			return m, nil
		}
		m.statuses = msg.Statuses
		m.resolved = make([]bool, len(msg.Statuses))
		for i := range m.resolved {
			m.resolved[i] = true
		}
		m.loadedCount = len(msg.Statuses)
		m.loading = false
		m.updates = nil
		m.updateFiltered()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.viewMode == ViewModeHelp {
			m.viewMode = ViewModeRepoList
		} else {
			m.viewMode = ViewModeHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewModeRepoList
		return m, nil
	}

	if m.viewMode != ViewModeRepoList {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0

	case key.Matches(msg, m.keys.Bottom):
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		}

	case key.Matches(msg, m.keys.Enter):
		if s, ok := m.SelectedStatus(); ok {
			m.selectedPath = s.Path
			m.viewMode = ViewModeRepoDetail
		}

	case key.Matches(msg, m.keys.Refresh):
		return m.rescan(false)

	case key.Matches(msg, m.keys.Refetch):
		return m.rescan(true)

	case key.Matches(msg, m.keys.Filter):
		m.CycleFilter()
		m.cursor = 0
		m.updateFiltered()

	case key.Matches(msg, m.keys.Sort):
		m.CycleSort()
		m.updateFiltered()

	case key.Matches(msg, m.keys.Reverse):
		m.sortReverse = !m.sortReverse
		m.updateFiltered()

	case key.Matches(msg, m.keys.Reset):
		m.ResetFilters()
		m.cursor = 0
		m.updateFiltered()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.Focus()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchInput.Blur()
		return m, nil

	case tea.KeyEnter:
		m.searching = false
		m.searchText = m.searchInput.Value()
		m.searchInput.Blur()
		m.updateFiltered()
		m.cursor = 0
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.searchText = m.searchInput.Value()
	m.updateFiltered()
	m.cursor = 0
	return m, cmd
}

func (m *Model) updateFiltered() {
	m.filtered = filters.FilterAndSort(
		m.Statuses(),
		m.filterMode,
		m.sortMode,
		m.searchText,
		m.sortReverse,
	)

	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
}

// rescan starts a fresh scan unless one is already running. With refetch set
// any remembered fetches are dropped first.
func (m Model) rescan(refetch bool) (tea.Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	if refetch && m.resetFetches != nil {
		m.resetFetches()
	}
	m.scanID++
	m.loading = true
	m.statuses = nil
	m.resolved = nil
	m.targets = nil
	m.loadedCount = 0
	m.updateFiltered()
	return m, tea.Batch(m.spinner.Tick, startScanCmd(m.scanID, m.base, m.resolve, m.workers))
}
