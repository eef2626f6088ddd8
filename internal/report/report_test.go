package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/kyleking/local-mw/internal/models"
	"github.com/pelletier/go-toml/v2"
)

func upToDate(name string, kind models.RepoKind) models.RepoStatus {
	return models.RepoStatus{Name: name, Path: "/w/" + name, Kind: kind, IsRepo: true, Branch: "master"}
}

func sampleReport() Report {
	core := upToDate("w", models.KindCore)

	behind := upToDate("Cite", models.KindExtension)
	behind.Behind = 3
	behind.HasUpdates = true
	behind.Dirty = true

	broken := models.RepoStatus{Name: "Notes", Path: "/w/extensions/Notes", Kind: models.KindExtension}

	return Report{
		Generated: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Sections: []Section{
			NewSection(models.KindCore, []models.RepoStatus{core}),
			NewSection(models.KindExtension, []models.RepoStatus{behind, broken}),
			NewSection(models.KindSkin, nil),
		},
	}
}

func TestNewSectionTitles(t *testing.T) {
	tests := []struct {
		kind     models.RepoKind
		expected string
	}{
		{models.KindCore, TitleCore},
		{models.KindExtension, TitleExtensions},
		{models.KindSkin, TitleSkins},
	}

	for _, tt := range tests {
		if got := NewSection(tt.kind, nil).Title; got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, got)
		}
	}
}

func TestTableEmpty(t *testing.T) {
	if got := Table(nil, Options{}); got != "" {
		t.Errorf("expected empty table, got %q", got)
	}
}

func TestTableRows(t *testing.T) {
	r := sampleReport()
	out := Table(r.Sections[1].Statuses, Options{})
	lines := strings.Split(strings.TrimPrefix(out, "\n"), "\n")

	if lines[0] != strings.Repeat("=", 100) {
		t.Errorf("expected top rule, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Name                          Type        Branch") {
		t.Errorf("unexpected header %q", lines[1])
	}
	if lines[2] != strings.Repeat("-", 100) {
		t.Errorf("expected separator, got %q", lines[2])
	}

	expected := "Cite                          extension   master         3         Yes           🔴 Updates available"
	if lines[3] != expected {
		t.Errorf("row mismatch (-want +got):\n%s", cmp.Diff(expected, lines[3]))
	}
	if !strings.Contains(lines[4], "N/A") || !strings.HasSuffix(lines[4], "⚠️  Not a git repo") {
		t.Errorf("unexpected error row %q", lines[4])
	}
}

func TestRenderSectionsAndSummary(t *testing.T) {
	out := sampleReport().Render(Options{})

	for _, want := range []string{
		"\nMEDIAWIKI CORE:\n",
		"\nEXTENSIONS:\n",
		"\nSKINS:\nNo skins found or skins directory doesn't exist.\n",
		"Total repositories: 3",
		"Up to date: 1",
		"Updates available: 1",
		"Errors/Warnings: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRenderSkipsEmptyCore(t *testing.T) {
	r := Report{Sections: []Section{
		NewSection(models.KindCore, nil),
		NewSection(models.KindExtension, nil),
	}}
	out := r.Render(Options{})

	if strings.Contains(out, TitleCore) {
		t.Error("expected empty core section to be omitted")
	}
	if !strings.Contains(out, "No extensions found or extensions directory doesn't exist.") {
		t.Error("expected extensions fallback message")
	}
	if !strings.Contains(out, "Total repositories: 0") {
		t.Error("expected zero total")
	}
}

func TestStatsMatchesCount(t *testing.T) {
	r := sampleReport()
	if r.Stats().Total() != r.Count() {
		t.Errorf("expected total %d, got %d", r.Count(), r.Stats().Total())
	}
}

func TestWriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	r := sampleReport()

	if err := Save(path, FormatText, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "2026-03-04 05:06:07\n") {
		t.Errorf("expected timestamp first line, got %q", strings.SplitN(content, "\n", 2)[0])
	}
	if !strings.HasSuffix(content, r.Render(Options{})) {
		t.Error("expected file body to match plain render")
	}
	if strings.Contains(content, "\x1b[") {
		t.Error("expected no ANSI escapes in report file")
	}
}

func TestWriteTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.toml")

	if err := Save(path, FormatTOML, sampleReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc tomlReport
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid TOML: %v", err)
	}

	want := tomlSummary{Total: 3, UpToDate: 1, HasUpdates: 1, Errors: 1}
	if diff := cmp.Diff(want, doc.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}

	cite := doc.Sections[1].Repositories[0]
	if cite.Name != "Cite" || cite.Behind != 3 || !cite.Dirty || cite.Status != "Updates available" {
		t.Errorf("unexpected repository entry %+v", cite)
	}
	if doc.Sections[1].Repositories[1].Status != "Not a git repo" {
		t.Errorf("expected not-a-repo status, got %q", doc.Sections[1].Repositories[1].Status)
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "r"), "yaml", sampleReport())
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestValidFormat(t *testing.T) {
	tests := map[string]bool{"text": true, "toml": true, "json": false, "": false}
	for format, expected := range tests {
		if got := ValidFormat(format); got != expected {
			t.Errorf("expected %v for %q, got %v", expected, format, got)
		}
	}
}
