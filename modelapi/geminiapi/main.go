package geminiapi

import (
	"context"
	"fmt"
	"os"
	"partnerportal/logger"
	"partnerportal/modelapi"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const DEFAULT_GEMINI_MODEL = "gemini-1.5-flash"

type GeminiConnectProps struct {
	Logger *logger.LogMiddleware
}

type Gemini struct {
	logger *logger.LogMiddleware
	client *genai.Client
	model  string
}

// Connect builds the Gemini client. A missing GEMINI_API_KEY is not fatal:
// the client reports unconfigured and every call returns ErrNotConfigured,
// so callers can fall through their provider chain.
func Connect(ctx context.Context, args GeminiConnectProps) *Gemini {
	tracer := otel.Tracer("geminiapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = DEFAULT_GEMINI_MODEL
	}
	span.SetAttributes(attribute.String("model", model))

	GEMINI_KEY := os.Getenv("GEMINI_API_KEY")
	if GEMINI_KEY == "" {
		args.Logger.Logger(ctx).Warn("[GeminiAPI] GEMINI_API_KEY not set, Gemini calls will be skipped")
		return &Gemini{logger: args.Logger, model: model}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  GEMINI_KEY,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		args.Logger.Logger(ctx).Error("[GeminiAPI] Could not create Gemini client", zap.Error(err))
		return &Gemini{logger: args.Logger, model: model}
	}

	args.Logger.Logger(ctx).Info("[GeminiAPI] Gemini API client started", zap.String("model", model))
	return &Gemini{logger: args.Logger, client: client, model: model}
}

func (g *Gemini) Configured() bool {
	return g != nil && g.client != nil
}

// GenerateText sends a single-turn prompt and returns the concatenated
// text parts of the first candidate. One attempt; the caller decides what
// to fall back to.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("geminiapi/GenerateText")
	ctx, span := tracer.Start(ctx, "GenerateText")
	defer span.End()

	if !g.Configured() {
		span.AddEvent("NotConfigured")
		return "", modelapi.ErrNotConfigured
	}

	g.logger.Logger(ctx).Info("[GeminiAPI] GenerateText called", zap.Int("prompt.length", len(prompt)))

	ctx, cancel := context.WithTimeout(ctx, modelapi.ProviderCallTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		span.RecordError(err)
		g.logger.Logger(ctx).Error("[GeminiAPI] Error generating content", zap.Error(err))
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		span.AddEvent("EmptyResponse")
		g.logger.Logger(ctx).Warn("[GeminiAPI] Received empty or invalid response")
		return "", fmt.Errorf("empty response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}

	span.AddEvent("Generation successful")
	return b.String(), nil
}
