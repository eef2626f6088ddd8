package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kyleking/local-mw/internal/batch"
	"github.com/kyleking/local-mw/internal/discovery"
)

// startScanCmd enumerates the installation and runs the scan in the
// background. Results are buffered so an abandoned scan never blocks.
func startScanCmd(scanID int, base string, resolve batch.ResolveFunc, workers int) tea.Cmd {
	return func() tea.Msg {
		targets := discovery.InstallationTargets(base)
		updates := make(chan tea.Msg, len(targets)+1)

		go func() {
			defer close(updates)
			scanner := batch.NewScanner(resolve, workers)
			scanner.OnProgress(func(p batch.Progress) {
				updates <- StatusResolvedMsg{ScanID: scanID, Index: p.Index, Status: p.Status}
			})
			statuses := scanner.Scan(context.Background(), targets)
			updates <- ScanCompleteMsg{ScanID: scanID, Statuses: statuses}
		}()

		return ScanStartedMsg{ScanID: scanID, Targets: targets, Updates: updates}
	}
}

func waitForUpdateCmd(updates <-chan tea.Msg) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}
