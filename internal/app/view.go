package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/ui/styles"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.viewMode {
	case ViewModeHelp:
		return m.renderHelp()
	case ViewModeRepoDetail:
		return m.renderRepoDetail()
	default:
		return m.renderRepoList()
	}
}

func (m Model) renderRepoList() string {
	var b strings.Builder

	b.WriteString(m.renderBreadcrumbs())
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderTable())

	m.padToFooter(&b)
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) padToFooter(b *strings.Builder) {
	footerHeight := 1
	lines := strings.Count(b.String(), "\n")
	paddingNeeded := m.height - lines - footerHeight - 1
	if paddingNeeded > 0 {
		b.WriteString(strings.Repeat("\n", paddingNeeded))
	} else {
		b.WriteString("\n")
	}
}

func (m Model) renderBreadcrumbs() string {
	title := styles.TitleStyle.Render("local-mw")
	sub := styles.SubtitleStyle.Render(m.base)

	total := m.loadedCount
	repoCount := fmt.Sprintf("%d repos", total)
	if len(m.filtered) != total {
		repoCount = fmt.Sprintf("%d/%d repos", len(m.filtered), total)
	}
	badges := []string{styles.Badge(repoCount, styles.CountBadgeStyle)}

	stats := m.Stats()
	if stats.HasUpdates > 0 {
		badges = append(badges, styles.CategoryBadge(models.CategoryUpdates, fmt.Sprintf("%d behind", stats.HasUpdates)))
	}
	if stats.Errors > 0 {
		badges = append(badges, styles.CategoryBadge(models.CategoryError, fmt.Sprintf("%d errors", stats.Errors)))
	}
	if dirty := m.DirtyCount(); dirty > 0 {
		badges = append(badges, styles.Badge(fmt.Sprintf("%d dirty", dirty), styles.FilterBadgeStyle))
	}

	if m.loading {
		progress := fmt.Sprintf("%s Scanning %d/%d", m.spinner.View(), m.loadedCount, len(m.targets))
		badges = append(badges, progress)
	}

	return title + " " + sub + "  " + strings.Join(badges, " ")
}

func (m Model) renderStatusBar() string {
	parts := []string{}

	if m.filterMode != models.FilterModeAll {
		parts = append(parts, styles.Badge(m.filterMode.String(), styles.FilterBadgeStyle))
	}
	if m.sortMode != models.SortModeScan || m.sortReverse {
		label := "Sort: " + m.sortMode.String()
		if m.sortReverse {
			label += " ↓"
		}
		parts = append(parts, styles.Badge(label, styles.CountBadgeStyle))
	}
	if m.searchText != "" {
		parts = append(parts, styles.Badge("\""+m.searchText+"\"", styles.SearchBadgeStyle))
	}

	return strings.Join(parts, " ")
}

type columnWidths struct {
	name   int
	kind   int
	branch int
	behind int
	dirty  int
}

var colWidths = columnWidths{name: 28, kind: 10, branch: 15, behind: 7, dirty: 6}

func (m Model) renderTable() string {
	if len(m.filtered) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.Surface1).
			Padding(2, 4).
			Foreground(styles.Subtext0)

		if m.loading {
			return emptyStyle.Render("Checking repositories...")
		}
		if m.loadedCount > 0 {
			return emptyStyle.Render("No repositories match")
		}
		return emptyStyle.Render("No repositories found")
	}

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %-*s  %s",
		colWidths.name, "NAME",
		colWidths.kind, "TYPE",
		colWidths.branch, "BRANCH",
		colWidths.behind, "BEHIND",
		colWidths.dirty, "DIRTY",
		"STATUS",
	)
	header = styles.HeaderStyle.Render(header)

	availableHeight := m.height - 6
	if m.searching {
		availableHeight -= 2
	}
	availableHeight = max(availableHeight, 1)

	startIdx := max(m.cursor-availableHeight/2, 0)
	endIdx := startIdx + availableHeight
	if endIdx > len(m.filtered) {
		endIdx = len(m.filtered)
		startIdx = max(endIdx-availableHeight, 0)
	}

	rows := []string{header}
	for i := startIdx; i < endIdx; i++ {
		rows = append(rows, m.renderTableRow(m.filtered[i], i == m.cursor))
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderTableRow(s models.RepoStatus, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}

	style := lipgloss.NewStyle()
	if selected {
		style = styles.SelectedRowStyle
	}
	branchStyle := styles.BranchStyle
	statusStyle := styles.StatusStyle(s)
	dirtyStyle := style
	if s.Dirty {
		dirtyStyle = styles.DirtyStyle
	}
	if selected {
		branchStyle = branchStyle.Background(styles.Surface0)
		statusStyle = statusStyle.Background(styles.Surface0)
		dirtyStyle = dirtyStyle.Background(styles.Surface0)
	}

	return fmt.Sprintf("%s%s  %s  %s  %s  %s  %s",
		cursor,
		style.Render(fmt.Sprintf("%-*s", colWidths.name, truncate(s.Name, colWidths.name))),
		style.Render(fmt.Sprintf("%-*s", colWidths.kind, s.Kind)),
		branchStyle.Render(fmt.Sprintf("%-*s", colWidths.branch, truncate(s.BranchText(), colWidths.branch))),
		style.Render(fmt.Sprintf("%-*s", colWidths.behind, s.BehindText())),
		dirtyStyle.Render(fmt.Sprintf("%-*s", colWidths.dirty, s.DirtyText())),
		statusStyle.Render(styles.StatusIcon(s)+" "+s.StatusText()),
	)
}

func (m Model) renderFooter() string {
	return m.help.View(m.keys)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Help"))
	b.WriteString("\n\n")

	sectionStyle := lipgloss.NewStyle().
		Foreground(styles.Blue).
		Bold(true).
		PaddingLeft(1)

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			"Navigation",
			[]struct{ key, desc string }{
				{"j/k, Up/Down", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"enter, space", "Show repository details"},
				{"esc, backspace", "Go back"},
			},
		},
		{
			"Filtering & Sorting",
			[]struct{ key, desc string }{
				{"f", "Cycle filter (all, updates, errors, up to date, dirty)"},
				{"s", "Cycle sort (scan order, name, behind, status)"},
				{"R", "Reverse sort"},
				{"/", "Search repositories"},
				{"*", "Reset filter, sort and search"},
			},
		},
		{
			"General",
			[]struct{ key, desc string }{
				{"r", "Rescan (fetches again, never pulls)"},
				{"?", "Toggle help"},
				{"q, ctrl+c", "Quit"},
			},
		},
	}

	for _, section := range sections {
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, k := range section.keys {
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				styles.HelpKeyStyle.Render(fmt.Sprintf("%-20s", k.key)),
				styles.HelpDescStyle.Render(k.desc)))
		}
		b.WriteString("\n")
	}

	m.padToFooter(&b)
	b.WriteString(styles.FooterStyle.Render("Press ? or esc to close"))

	return b.String()
}

func (m Model) renderRepoDetail() string {
	s, ok := m.DetailStatus()
	if !ok {
		return styles.TitleStyle.Render("local-mw") + "\n\nRepository no longer in view."
	}

	var b strings.Builder
	home := styles.SubtitleStyle.Render("Repos")
	sep := styles.SubtitleStyle.Render(" > ")
	b.WriteString(home + sep + styles.TitleStyle.Render(s.Name) + "  " +
		styles.CategoryBadge(s.Category(), s.Category().String()))
	b.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"Path", s.Path},
		{"Type", s.Kind.String()},
		{"Branch", s.BranchText()},
		{"Commits behind", s.BehindText()},
		{"Uncommitted changes", s.DirtyText()},
		{"Status", styles.StatusIcon(s) + " " + s.StatusText()},
		{"Checked in", s.Duration.Round(time.Millisecond).String()},
	}
	if s.Error != "" {
		rows = append(rows, struct{ label, value string }{"Error", styles.ErrorStyle.Render(s.Error)})
	}
	if s.HasUpdates && s.Kind != models.KindCore {
		rows = append(rows, struct{ label, value string }{"Update with", fmt.Sprintf("local-mw update %s %s", s.Kind, s.Name)})
	} else if s.HasUpdates {
		rows = append(rows, struct{ label, value string }{"Update with", "local-mw update core"})
	}

	for _, r := range rows {
		b.WriteString("  " + styles.DetailLabelStyle.Render(r.label) + r.value + "\n")
	}

	m.padToFooter(&b)
	b.WriteString(styles.FooterStyle.Render("Press esc to go back"))

	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
