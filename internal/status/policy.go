package status

import "github.com/kyleking/local-mw/internal/models"

// ShouldAutoPull decides whether a scanned repository may be pulled without
// the user naming it. Local modifications never block the decision; they
// only show up in the prompt and the report.
func ShouldAutoPull(s models.RepoStatus, cfg models.RunConfig) bool {
	return s.Behind > 0 &&
		s.Error == "" &&
		!cfg.ReportOnly &&
		!cfg.UpdateMode &&
		cfg.IsMainline(s.Branch)
}

// SingleTargetEligible is the check used when the user names one
// repository: any branch that is behind qualifies.
func SingleTargetEligible(s models.RepoStatus) bool {
	return s.IsRepo && s.Error == "" && s.Behind > 0
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
