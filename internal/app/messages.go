package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyleking/local-mw/internal/models"
)

// ScanStartedMsg carries the batch about to be scanned and the channel its
// results arrive on.
type ScanStartedMsg struct {
	ScanID  int
	Targets []models.Target
	Updates <-chan tea.Msg
}

type StatusResolvedMsg struct {
	ScanID int
	Index  int
	Status models.RepoStatus
}

type ScanCompleteMsg struct {
	ScanID   int
	Statuses []models.RepoStatus
}
