package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kyleking/local-mw/internal/models"
	"github.com/kyleking/local-mw/internal/ui/styles"
)

const (
	TitleCore       = "MEDIAWIKI CORE"
	TitleExtensions = "EXTENSIONS"
	TitleSkins      = "SKINS"

	TimestampLayout = "2006-01-02 15:04:05"
	tableWidth      = 100
)

type Section struct {
	Title    string
	Kind     models.RepoKind
	Statuses []models.RepoStatus
}

func NewSection(kind models.RepoKind, statuses []models.RepoStatus) Section {
	title := TitleCore
	switch kind {
	case models.KindExtension:
		title = TitleExtensions
	case models.KindSkin:
		title = TitleSkins
	}
	return Section{Title: title, Kind: kind, Statuses: statuses}
}

// emptyMessage is printed in place of a table for a section with no
// repositories. Core never prints one.
func (s Section) emptyMessage() string {
	switch s.Kind {
	case models.KindExtension:
		return "No extensions found or extensions directory doesn't exist.\n"
	case models.KindSkin:
		return "No skins found or skins directory doesn't exist.\n"
	default:
		return ""
	}
}

type Report struct {
	Generated time.Time
	Sections  []Section
}

func (r Report) Stats() models.Statistics {
	var total models.Statistics
	for _, s := range r.Sections {
		total = total.Add(models.Aggregate(s.Statuses))
	}
	return total
}

func (r Report) Count() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Statuses)
	}
	return n
}

type Options struct {
	// Color renders status cells with lipgloss styles.
	Color bool
}

// Table renders statuses as a fixed-width table.
func Table(statuses []models.RepoStatus, opts Options) string {
	if len(statuses) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n" + strings.Repeat("=", tableWidth) + "\n")
	header := fmt.Sprintf("%-30s%-12s%-15s%-10s%-14s%s", "Name", "Type", "Branch", "Behind", "Uncommitted", "Status")
	if opts.Color {
		header = styles.HeaderStyle.Render(header)
	}
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", tableWidth) + "\n")

	for _, s := range statuses {
		fmt.Fprintf(&b, "%-30s%-12s%-15s%-10s%-14s", s.Name, s.Kind, s.BranchText(), s.BehindText(), s.DirtyText())
		b.WriteString(statusCell(s, opts))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("=", tableWidth) + "\n")
	return b.String()
}

func statusCell(s models.RepoStatus, opts Options) string {
	text := styles.StatusIcon(s) + " " + s.StatusText()
	if opts.Color {
		return styles.StatusStyle(s).Render(text)
	}
	return text
}

func Summary(stats models.Statistics) string {
	var b strings.Builder
	b.WriteString("\nSUMMARY:\n")
	fmt.Fprintf(&b, "  Total repositories: %d\n", stats.Total())
	fmt.Fprintf(&b, "  Up to date: %d\n", stats.UpToDate)
	fmt.Fprintf(&b, "  Updates available: %d\n", stats.HasUpdates)
	fmt.Fprintf(&b, "  Errors/Warnings: %d\n\n", stats.Errors)
	return b.String()
}

// Render produces every section followed by the summary.
func (r Report) Render(opts Options) string {
	var b strings.Builder
	for _, s := range r.Sections {
		if s.Kind == models.KindCore && len(s.Statuses) == 0 {
			continue
		}
		b.WriteString("\n" + s.Title + ":\n")
		if len(s.Statuses) == 0 {
			b.WriteString(s.emptyMessage())
			continue
		}
		b.WriteString(Table(s.Statuses, opts))
	}
	b.WriteString(Summary(r.Stats()))
	return b.String()
}

func (r Report) WriteTo(w io.Writer, opts Options) (int64, error) {
	n, err := io.WriteString(w, r.Render(opts))
	return int64(n), err
}
