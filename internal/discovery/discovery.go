package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyleking/local-mw/internal/models"
	"github.com/sahilm/fuzzy"
)

var (
	ErrInvalidPath     = errors.New("invalid MediaWiki installation path")
	ErrNotInstallation = errors.New("directory does not appear to be a MediaWiki installation")
	ErrInvalidKind     = errors.New("invalid repository type")
	ErrNotDirectory    = errors.New("path exists but is not a directory")
)

// ListSubdirectories returns the immediate subdirectories of dir in name
// order. A missing or unreadable dir yields nothing.
func ListSubdirectories(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())
		if !entry.IsDir() {
			if entry.Type()&os.ModeSymlink == 0 {
				continue
			}
			info, err := os.Stat(fullPath)
			if err != nil || !info.IsDir() {
				continue
			}
		}
		dirs = append(dirs, fullPath)
	}
	return dirs
}

// Targets builds the scan batch for every subdirectory of dir.
func Targets(dir string, kind models.RepoKind) []models.Target {
	paths := ListSubdirectories(dir)
	targets := make([]models.Target, 0, len(paths))
	for _, p := range paths {
		targets = append(targets, models.Target{Path: p, Kind: kind})
	}
	return targets
}

// InstallationTargets is core followed by every extension and then every
// skin of the installation at base.
func InstallationTargets(base string) []models.Target {
	targets := []models.Target{{Path: base, Kind: models.KindCore}}
	for _, kind := range []models.RepoKind{models.KindExtension, models.KindSkin} {
		targets = append(targets, Targets(filepath.Join(base, kind.Dir()), kind)...)
	}
	return targets
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsMediaWikiDir checks for the entry points and directories every
// MediaWiki checkout has.
func IsMediaWikiDir(path string) bool {
	return exists(filepath.Join(path, "index.php")) &&
		exists(filepath.Join(path, "api.php")) &&
		isDir(filepath.Join(path, "includes")) &&
		isDir(filepath.Join(path, "extensions")) &&
		isDir(filepath.Join(path, "skins"))
}

func ValidateInstallation(path string) error {
	if path == "" || !isDir(path) {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	if !IsMediaWikiDir(path) {
		return fmt.Errorf("%w (expected index.php, api.php, includes/, extensions/, skins/)", ErrNotInstallation)
	}
	return nil
}

// NotFoundError is returned when a named extension or skin does not exist.
type NotFoundError struct {
	Display     string
	Path        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s not found at: %s", e.Display, e.Path)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// DisplayName describes a single target the way prompts and errors refer to it.
func DisplayName(kind models.RepoKind, name string) string {
	if kind == models.KindCore {
		return "MediaWiki core"
	}
	return fmt.Sprintf("%s '%s'", kind, name)
}

// ResolveTarget maps a kind and optional name to a repository path inside
// the installation at base.
func ResolveTarget(base string, kindName string, name string) (models.Target, error) {
	kind, ok := models.ParseRepoKind(kindName)
	if !ok {
		return models.Target{}, fmt.Errorf("%w '%s': must be 'core', 'extension', or 'skin'", ErrInvalidKind, kindName)
	}

	path := base
	if kind != models.KindCore {
		if name == "" {
			return models.Target{}, fmt.Errorf("%s requires a name", kind)
		}
		path = filepath.Join(base, kind.Dir(), name)
	}

	info, err := os.Stat(path)
	if err != nil {
		return models.Target{}, &NotFoundError{
			Display:     DisplayName(kind, name),
			Path:        path,
			Suggestions: Suggest(filepath.Join(base, kind.Dir()), name, 3),
		}
	}
	if !info.IsDir() {
		return models.Target{}, fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	return models.Target{Path: path, Kind: kind}, nil
}

// Suggest returns up to limit subdirectory names of dir that fuzzy-match name.
func Suggest(dir string, name string, limit int) []string {
	if name == "" {
		return nil
	}

	paths := ListSubdirectories(dir)
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}

	matches := fuzzy.Find(name, names)
	var out []string
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
