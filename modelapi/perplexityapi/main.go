package perplexityapi

import (
	"context"
	"fmt"
	"os"
	"partnerportal/logger"
	"partnerportal/modelapi"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const DEFAULT_PERPLEXITY_MODEL = "sonar-pro"

type PerplexityConnectProps struct {
	Logger *logger.LogMiddleware
}

type Perplexity struct {
	logger     *logger.LogMiddleware
	semaphore  *semaphore.Weighted
	client     *openai.Client
	model      string
	configured bool
}

// ContextResult distinguishes "retrieval produced nothing" from
// "retrieval failed or was skipped"; only OK results carry a value.
type ContextResult struct {
	OK    bool
	Value string
}

// Connect builds a Perplexity client over its OpenAI-compatible API. A
// missing PERPLEXITY_API_KEY leaves the client unconfigured rather than
// failing startup.
func Connect(ctx context.Context, args PerplexityConnectProps) *Perplexity {
	tracer := otel.Tracer("perplexityapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	maxWorkers := 10
	sem := semaphore.NewWeighted(int64(maxWorkers))
	span.SetAttributes(attribute.Int("maxWorkers", maxWorkers))

	model := os.Getenv("PERPLEXITY_MODEL")
	if model == "" {
		model = DEFAULT_PERPLEXITY_MODEL
	}

	PERPLEXITY_KEY := os.Getenv("PERPLEXITY_API_KEY")
	if PERPLEXITY_KEY == "" {
		args.Logger.Logger(ctx).Warn("[PerplexityAPI] PERPLEXITY_API_KEY not set, context retrieval disabled")
		return &Perplexity{logger: args.Logger, semaphore: sem, model: model}
	}

	client := openai.NewClient(
		option.WithAPIKey(PERPLEXITY_KEY),
		option.WithBaseURL("https://api.perplexity.ai"),
	)

	args.Logger.Logger(ctx).Info("[PerplexityAPI] Perplexity API client started", zap.String("model", model))
	return &Perplexity{logger: args.Logger, semaphore: sem, client: &client, model: model, configured: true}
}

func (p *Perplexity) Configured() bool {
	return p != nil && p.configured
}

func (p *Perplexity) complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	tracer := otel.Tracer("perplexityapi/complete")
	ctx, span := tracer.Start(ctx, "complete")
	defer span.End()

	if !p.Configured() {
		span.AddEvent("NotConfigured")
		return "", modelapi.ErrNotConfigured
	}

	if err := p.semaphore.Acquire(ctx, 1); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer p.semaphore.Release(1)

	ctx, cancel := context.WithTimeout(ctx, modelapi.ProviderCallTimeout)
	defer cancel()

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		span.RecordError(err)
		p.logger.Logger(ctx).Error("[PerplexityAPI] Completion request failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		span.AddEvent("EmptyResponse")
		p.logger.Logger(ctx).Warn("[PerplexityAPI] Received empty response")
		return "", fmt.Errorf("empty response from Perplexity")
	}

	return resp.Choices[0].Message.Content, nil
}

// FetchContext is the best-effort retrieval step. All failures, including
// an unconfigured client, collapse into a not-OK result; the error is
// logged here and never surfaced to the caller.
func (p *Perplexity) FetchContext(ctx context.Context, systemPrompt string, userPrompt string) ContextResult {
	tracer := otel.Tracer("perplexityapi/FetchContext")
	ctx, span := tracer.Start(ctx, "FetchContext")
	defer span.End()

	content, err := p.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		span.RecordError(err)
		if err != modelapi.ErrNotConfigured {
			p.logger.Logger(ctx).Warn("[PerplexityAPI] Context retrieval failed, continuing without context", zap.Error(err))
		}
		return ContextResult{}
	}

	return ContextResult{OK: true, Value: content}
}

// GetResponse answers a prompt directly. Used as the secondary chat
// provider when Gemini is unavailable.
func (p *Perplexity) GetResponse(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("perplexityapi/GetResponse")
	ctx, span := tracer.Start(ctx, "GetResponse")
	defer span.End()

	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	return p.complete(ctx, modelapi.CHAT_ANSWER_SYSTEM_PROMPT, prompt)
}
