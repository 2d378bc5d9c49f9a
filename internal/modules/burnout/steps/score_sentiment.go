package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/pulsecheck-backend/internal/domain"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout"
	"github.com/yungbote/pulsecheck-backend/internal/modules/burnout/prompts"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/platform/openai"
)

// maxSentimentRunes bounds the concatenated journal text passed to the
// classifier; newest entries win when the window overflows.
const maxSentimentRunes = 8000

type ScoreSentimentDeps struct {
	Log *logger.Logger
	AI  openai.Client
}

type ScoreSentimentInput struct {
	UserID uuid.UUID
	// Entries ordered newest first, as ListSince returns them.
	Entries []*types.JournalEntry
}

type ScoreSentimentOutput struct {
	Result burnout.SentimentResult `json:"result"`
}

// ScoreSentiment classifies the trailing week of journal text. It never
// fails the run: external or validation trouble resolves to the neutral
// degraded default after the documented retry.
func ScoreSentiment(ctx context.Context, deps ScoreSentimentDeps, in ScoreSentimentInput) (ScoreSentimentOutput, error) {
	out := ScoreSentimentOutput{}
	if deps.Log == nil || deps.AI == nil {
		return out, fmt.Errorf("score_sentiment: missing deps")
	}
	if in.UserID == uuid.Nil {
		return out, fmt.Errorf("score_sentiment: missing user_id")
	}

	text := journalText(in.Entries)
	if text == "" {
		out.Result = burnout.NeutralSentiment(true)
		return out, nil
	}

	prompt, err := prompts.Build(prompts.PromptSentimentClassification, prompts.Input{JournalText: text})
	if err != nil {
		return out, fmt.Errorf("score_sentiment: build prompt: %w", err)
	}

	for attempt := 1; attempt <= 2; attempt++ {
		obj, genErr := deps.AI.GenerateJSON(ctx, prompt.System, prompt.User, prompt.SchemaName, prompt.Schema)
		if genErr != nil {
			if ctx.Err() != nil {
				return out, ctx.Err()
			}
			// The client already retried transient failures; degrade now.
			esErr := &burnout.ExternalServiceError{Service: "openai", Op: "sentiment classification", Cause: genErr}
			deps.Log.Warn("score_sentiment: classification failed, using neutral default",
				"user_id", in.UserID,
				"prompt_fingerprint", prompt.Fingerprint(),
				"error", esErr.Error(),
			)
			out.Result = burnout.NeutralSentiment(true)
			return out, nil
		}

		parsed, decErr := prompts.DecodeSentiment(obj)
		if decErr == nil {
			out.Result = burnout.SentimentResult{
				Polarity:        parsed.Polarity,
				Intensity:       parsed.Intensity,
				DominantEmotion: parsed.DominantEmotion,
			}
			return out, nil
		}

		var vErr *burnout.ValidationError
		if !errors.As(decErr, &vErr) {
			return out, fmt.Errorf("score_sentiment: decode: %w", decErr)
		}
		deps.Log.Warn("score_sentiment: invalid classifier output",
			"user_id", in.UserID,
			"attempt", attempt,
			"prompt_fingerprint", prompt.Fingerprint(),
			"error", vErr.Error(),
		)
	}

	out.Result = burnout.NeutralSentiment(true)
	return out, nil
}

// journalText concatenates entries newest first with their dates, bounded to
// maxSentimentRunes.
func journalText(entries []*types.JournalEntry) string {
	var b strings.Builder
	total := 0
	for _, e := range entries {
		if e == nil {
			continue
		}
		content := strings.TrimSpace(e.Content)
		if content == "" {
			continue
		}
		line := e.RecordedAt.Format("2006-01-02") + " (" + e.Source + "): " + content
		runes := []rune(line)
		if total+len(runes) > maxSentimentRunes {
			remaining := maxSentimentRunes - total
			if remaining <= 0 {
				break
			}
			runes = runes[:remaining]
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(runes))
		total += len(runes)
		if total >= maxSentimentRunes {
			break
		}
	}
	return b.String()
}
