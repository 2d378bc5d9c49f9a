package steps

import (
	"sort"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
)

const (
	workloadShare  = 0.6
	sentimentShare = 0.4

	// Reference values a healthy day scores: sub-scores at the low band edge,
	// polarity at zero. Deviations below minIssueDeviation stay unreported.
	healthyComponentScore = 40.0
	minIssueDeviation     = 5.0

	negativeAdjustmentScale = 10.0
	positiveAdjustmentScale = 5.0
)

type AggregateInput struct {
	Workload  ScoreWorkloadOutput
	Sentiment burnout.SentimentResult
	Baseline  burnout.Baseline
	Snapshot  *types.MetricSnapshot
}

type AggregateOutput struct {
	FinalScore     float64         `json:"final_score"`
	Level          string          `json:"level"`
	SentimentScore float64         `json:"sentiment_score"`
	PrimaryIssues  []burnout.Issue `json:"primary_issues"`
}

// Aggregate folds the workload total and the sentiment verdict into the final
// 0-100 risk score. Sentiment enters as distress: polarity -1 maps to 100,
// +1 to 0. Negative polarity additionally pushes the score up scaled by
// intensity; positive polarity relieves it at half that scale.
func Aggregate(in AggregateInput) (AggregateOutput, error) {
	out := AggregateOutput{}
	if in.Snapshot == nil {
		return out, burnout.ErrDataUnavailable
	}

	out.SentimentScore = clampScore((1 - in.Sentiment.Polarity) / 2 * 100)

	base := workloadShare*in.Workload.Total + sentimentShare*out.SentimentScore
	adjustment := -in.Sentiment.Intensity * positiveAdjustmentScale
	if in.Sentiment.Polarity < 0 {
		adjustment = in.Sentiment.Intensity * negativeAdjustmentScale
	}
	out.FinalScore = clampScore(base + adjustment)
	out.Level = riskLevel(out.FinalScore)
	out.PrimaryIssues = primaryIssues(in.Workload, in.Sentiment)
	return out, nil
}

// riskLevel buckets are lower-edge inclusive, non-overlapping, exhaustive.
func riskLevel(final float64) string {
	switch {
	case final < 40:
		return types.RiskLevelGreen
	case final < 70:
		return types.RiskLevelYellow
	default:
		return types.RiskLevelRed
	}
}

// primaryIssues ranks how far each contributor sits above its healthy
// reference and keeps at most three. The candidate order is the tie order:
// task, time, meeting, sentiment; sorting is stable so equal deviations keep
// it.
func primaryIssues(w ScoreWorkloadOutput, s burnout.SentimentResult) []burnout.Issue {
	candidates := []burnout.Issue{
		{Label: burnout.IssueTaskOverload, Deviation: w.Task - healthyComponentScore},
		{Label: burnout.IssueTimeOverload, Deviation: w.Time - healthyComponentScore},
		{Label: burnout.IssueMeetingOverload, Deviation: w.Meeting - healthyComponentScore},
	}
	if s.Polarity < 0 {
		candidates = append(candidates, burnout.Issue{
			Label:     burnout.IssueNegativeSentiment,
			Deviation: -s.Polarity * 40,
		})
	}

	kept := make([]burnout.Issue, 0, len(candidates))
	for _, c := range candidates {
		if c.Deviation >= minIssueDeviation {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Deviation > kept[j].Deviation
	})
	if len(kept) > 3 {
		kept = kept[:3]
	}
	return kept
}
