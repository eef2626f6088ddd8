package report

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	FormatText = "text"
	FormatTOML = "toml"
)

func ValidFormat(format string) bool {
	return format == FormatText || format == FormatTOML
}

// Save writes the report to path in the given format.
func Save(path string, format string, r Report) error {
	switch format {
	case "", FormatText:
		return WriteText(path, r)
	case FormatTOML:
		return WriteTOML(path, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText writes the plain report preceded by a timestamp line.
func WriteText(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, r.Generated.Format(TimestampLayout)); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if _, err := r.WriteTo(f, Options{}); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}

type tomlSummary struct {
	Total      int `toml:"total"`
	UpToDate   int `toml:"up_to_date"`
	HasUpdates int `toml:"updates_available"`
	Errors     int `toml:"errors"`
}

type tomlRepo struct {
	Name          string `toml:"name"`
	Kind          string `toml:"kind"`
	Path          string `toml:"path"`
	Branch        string `toml:"branch,omitempty"`
	Behind        int    `toml:"behind"`
	Dirty         bool   `toml:"uncommitted"`
	HasUpdates    bool   `toml:"has_updates"`
	PullAttempted bool   `toml:"pull_attempted"`
	Pulled        bool   `toml:"pulled"`
	PullError     string `toml:"pull_error,omitempty"`
	Error         string `toml:"error,omitempty"`
	Status        string `toml:"status"`
	DurationMs    int64  `toml:"duration_ms"`
}

type tomlSection struct {
	Title        string     `toml:"title"`
	Repositories []tomlRepo `toml:"repository"`
}

type tomlReport struct {
	Generated time.Time     `toml:"generated"`
	Summary   tomlSummary   `toml:"summary"`
	Sections  []tomlSection `toml:"section"`
}

func toTOML(r Report) tomlReport {
	stats := r.Stats()
	doc := tomlReport{
		Generated: r.Generated,
		Summary: tomlSummary{
			Total:      stats.Total(),
			UpToDate:   stats.UpToDate,
			HasUpdates: stats.HasUpdates,
			Errors:     stats.Errors,
		},
	}
	for _, s := range r.Sections {
		sec := tomlSection{Title: s.Title}
		for _, st := range s.Statuses {
			sec.Repositories = append(sec.Repositories, tomlRepo{
				Name:          st.Name,
				Kind:          st.Kind.String(),
				Path:          st.Path,
				Branch:        st.Branch,
				Behind:        st.Behind,
				Dirty:         st.Dirty,
				HasUpdates:    st.HasUpdates,
				PullAttempted: st.PullAttempted,
				Pulled:        st.Pulled,
				PullError:     st.PullError,
				Error:         st.Error,
				Status:        st.StatusText(),
				DurationMs:    st.Duration.Milliseconds(),
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}

func WriteTOML(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(toTOML(r)); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return f.Close()
}
