package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

// maxRetries on top of the first attempt: 3 calls total.
const maxRetries = 2

type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Enricher generates the summary/next-action pair for a lead. It never fails
// outward: without a provider, or after exhausting retries, it degrades to a
// deterministic fallback built from the lead itself.
type Enricher struct {
	provider CompletionProvider
	sleep    func(time.Duration)
}

// NewEnricher accepts a nil provider, which puts the enricher in fallback
// mode (no network calls at all).
func NewEnricher(provider CompletionProvider) *Enricher {
	if provider == nil {
		log.Println("⚠️ OpenAI API key not provided, AI features will use fallback defaults")
	}
	return &Enricher{
		provider: provider,
		sleep:    time.Sleep,
	}
}

func (e *Enricher) GenerateSummaryAndAction(ctx context.Context, lead *entity.Lead) Result {
	if e.provider == nil {
		middleware.RecordEnrichmentFallback()
		return Fallback(lead)
	}

	prompt := buildPrompt(lead)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		content, err := e.provider.Complete(ctx, prompt)
		if err != nil {
			lastErr = err
			log.Printf("⚠️ AI generation attempt %d failed: %v", attempt+1, err)
			if attempt < maxRetries {
				// 1s após a primeira falha, 2s após a segunda
				e.sleep(time.Duration(1<<attempt) * time.Second)
			}
			continue
		}

		result, mode := parseContent(content)
		if mode == parseHeuristic {
			log.Printf("AI response was not valid JSON, used marker split")
		}
		return result
	}

	log.Printf("❌ AI generation failed after retries, using defaults: %v", lastErr)
	middleware.RecordEnrichmentFallback()
	return Fallback(lead)
}

// Fallback is the deterministic result used when no credential is configured
// or every attempt failed.
func Fallback(lead *entity.Lead) Result {
	return Result{
		Summary:    fmt.Sprintf("Lead: %s %s (%s)", lead.FirstName, lead.LastName, lead.Email),
		NextAction: "Contact the lead via email or phone",
	}
}

func buildPrompt(lead *entity.Lead) string {
	return fmt.Sprintf(`Given the following lead information:
- Name: %s %s
- Email: %s
- Phone: %s
- Cell: %s

Generate a brief summary of the lead and suggest the next action to take. Respond in JSON format with keys "summary" and "next_action".`,
		lead.FirstName, lead.LastName, lead.Email, lead.Phone, lead.Cell)
}
