package models

// Agent display names, in report row order.
const (
	AgentCopilot = "Copilot"
	AgentCodex   = "Codex"
	AgentDevin   = "Devin"
	AgentJules   = "Jules"
)

// AgentStats is the per-agent presentation view of a MetricRow.
// Copilot and Codex are tracked by pull requests, Devin and Jules by
// commits; the inapplicable counters render as N/A in reports.
type AgentStats struct {
	Service    string `json:"service"`
	Total      int    `json:"total"`
	Merged     int    `json:"merged"`
	Commits    int    `json:"commits"`
	HasPRs     bool   `json:"has_prs"`
	HasCommits bool   `json:"has_commits"`
}

// MergeRate returns the agent's merge rate, 0 when it has no PRs.
func (s AgentStats) MergeRate() float64 {
	return MergeRate(s.Merged, s.Total)
}

// AgentStats expands the row into the four tracked agents.
func (r *MetricRow) AgentStats() []AgentStats {
	return []AgentStats{
		{Service: AgentCopilot, Total: r.CopilotTotal, Merged: r.CopilotMerged, HasPRs: true},
		{Service: AgentCodex, Total: r.CodexTotal, Merged: r.CodexMerged, HasPRs: true},
		{Service: AgentDevin, Commits: r.DevinCommits, HasCommits: true},
		{Service: AgentJules, Commits: r.JulesCommits, HasCommits: true},
	}
}
