package burnout

import (
	types "github.com/yungbote/pulsecheck-backend/internal/domain"
)

const (
	IssueTaskOverload      = "task_overload"
	IssueTimeOverload      = "time_overload"
	IssueMeetingOverload   = "meeting_overload"
	IssueNegativeSentiment = "negative_sentiment"
)

// Issue is one detected contributor, ordered by how far it deviates from the
// healthy reference.
type Issue struct {
	Label     string  `json:"label"`
	Deviation float64 `json:"deviation"`
}

// issueCategories maps each issue to the strategy categories that address it.
// The retriever's keyword fallback and the ranker's category boost both read
// this table, so retrieval and ranking stay aligned.
var issueCategories = map[string][]string{
	IssueTaskOverload:      {types.CategoryWorkloadManagement, types.CategoryDelegation},
	IssueTimeOverload:      {types.CategoryTimeManagement, types.CategoryRecovery},
	IssueMeetingOverload:   {types.CategoryMeetingManagement},
	IssueNegativeSentiment: {types.CategoryStressManagement, types.CategoryRecovery},
}

// CategoriesForIssues returns the union of mapped categories in first-seen
// order. Unknown labels are skipped.
func CategoriesForIssues(issues []Issue) []string {
	seen := map[string]bool{}
	out := make([]string, 0, 4)
	for _, issue := range issues {
		for _, cat := range issueCategories[issue.Label] {
			if seen[cat] {
				continue
			}
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}

// CategoryMatchesIssues reports whether a strategy category addresses any of
// the detected issues.
func CategoryMatchesIssues(category string, issues []Issue) bool {
	for _, issue := range issues {
		for _, cat := range issueCategories[issue.Label] {
			if cat == category {
				return true
			}
		}
	}
	return false
}

// IssueLabels projects the ordered labels for persistence and query building.
func IssueLabels(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Label)
	}
	return out
}
