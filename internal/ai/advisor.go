package ai

import (
	"context"
	"log/slog"
	"os"
	"time"

	"google.golang.org/genai"

	"finnexus/internal/core"
)

// Fallback answers shown when the model is unavailable. The dashboard renders
// these verbatim, so the advisor never surfaces an error to the caller.
const (
	msgMissingKey     = "Chave de API (GEMINI_API_KEY) não configurada no ambiente."
	msgNoInsights     = "Não foi possível gerar insights no momento."
	msgUnavailable    = "Serviço de IA indisponível. Verifique sua conexão."
	msgChatMissingKey = "Chave de API ausente."
	msgChatNoAnswer   = "Sem resposta gerada."
	msgChatFailed     = "Erro ao comunicar com o assistente IA."
)

// Advisor generates financial insights and chat answers through Gemini. A nil
// Advisor is valid and degrades to the fallback messages, so callers never
// need to branch on whether AI is configured.
type Advisor struct {
	client *genai.Client
	model  string
}

// NewAdvisor creates an advisor when GEMINI_API_KEY is set. Without a key it
// returns nil and no error; the nil advisor answers with fallbacks.
func NewAdvisor(ctx context.Context, model string) (*Advisor, error) {
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		slog.InfoContext(ctx, "No AI API key configured, advisor disabled")
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, err
	}

	return &Advisor{
		client: client,
		model:  model,
	}, nil
}

// Insights returns a short HTML analysis of the summary and recent
// transactions. Failures degrade to a fallback string.
func (a *Advisor) Insights(ctx context.Context, summary core.FinancialSummary, recent []core.Transaction) string {
	if a == nil || a.client == nil {
		return msgMissingKey
	}

	prompt := BuildInsightsPrompt(summary, recent)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		slog.ErrorContext(ctx, "AI insights request failed", "error", err)
		return msgUnavailable
	}

	text := cleanModelText(resp.Text())
	if text == "" {
		return msgNoInsights
	}
	return text
}

// Chat answers a free-form question grounded on the supplied financial
// context. Failures degrade to a fallback string.
func (a *Advisor) Chat(ctx context.Context, message, contextData string) string {
	if a == nil || a.client == nil {
		return msgChatMissingKey
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: BuildChatSystemPrompt(contextData)}},
		},
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(message), config)
	if err != nil {
		slog.ErrorContext(ctx, "AI chat request failed", "error", err)
		return msgChatFailed
	}

	text := cleanModelText(resp.Text())
	if text == "" {
		return msgChatNoAnswer
	}
	return text
}
