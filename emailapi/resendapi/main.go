package resendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"partnerportal/httpmiddleware"
	"partnerportal/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const DEFAULT_FROM = "UiPath Partner Portal <onboarding@resend.dev>"

type ResendConnectProps struct {
	Logger *logger.LogMiddleware
}

type Resend struct {
	logger    *logger.LogMiddleware
	semaphore *semaphore.Weighted
	from      string
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Cc      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

func Connect(ctx context.Context, args ResendConnectProps) *Resend {
	tracer := otel.Tracer("resendapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	maxWorkers := 10
	sem := semaphore.NewWeighted(int64(maxWorkers))
	span.SetAttributes(attribute.Int("maxWorkers", maxWorkers))

	from := os.Getenv("RESEND_FROM")
	if from == "" {
		from = DEFAULT_FROM
	}

	if os.Getenv("RESEND_API_KEY") == "" {
		args.Logger.Logger(ctx).Warn("[ResendAPI] RESEND_API_KEY not set")
	}

	return &Resend{logger: args.Logger, semaphore: sem, from: from}
}

func (r *Resend) Configured() bool {
	return os.Getenv("RESEND_API_KEY") != ""
}

func (r *Resend) From() string {
	return r.from
}

type SendProps struct {
	To      []string
	Cc      []string
	Subject string
	HTML    string
}

// Send posts one email through the Resend HTTP API and returns the email
// ID it assigns. Single attempt; the caller surfaces failures.
func (r *Resend) Send(ctx context.Context, args SendProps) (string, error) {
	tracer := otel.Tracer("resendapi/Send")
	ctx, span := tracer.Start(ctx, "Send")
	defer span.End()

	API_KEY := os.Getenv("RESEND_API_KEY")
	if API_KEY == "" {
		return "", fmt.Errorf("RESEND_API_KEY environment variable not set")
	}

	if err := r.semaphore.Acquire(ctx, 1); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer r.semaphore.Release(1)

	jsonData, err := json.Marshal(sendEmailRequest{
		From:    r.from,
		To:      args.To,
		Cc:      args.Cc,
		Subject: args.Subject,
		HTML:    args.HTML,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("could not encode email request: %w", err)
	}

	respBody, err := httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
		Method: "POST",
		Url:    "https://api.resend.com/emails",
		Body:   bytes.NewBuffer(jsonData),
		Headers: map[string]string{
			"Authorization": "Bearer " + API_KEY,
			"Content-Type":  "application/json",
		},
	})
	if err != nil {
		span.RecordError(err)
		r.logger.Logger(ctx).Error(
			"[ResendAPI] Could not send email",
			zap.Error(err),
			zap.Strings("to", args.To),
			zap.String("subject", args.Subject),
		)
		return "", err
	}

	var resp sendEmailResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		span.RecordError(err)
		r.logger.Logger(ctx).Error(
			"[ResendAPI] Could not parse Resend response",
			zap.Error(err),
			zap.String("response_body", string(respBody)),
		)
		return "", err
	}

	r.logger.Logger(ctx).Info("[ResendAPI] Email sent", zap.String("email_id", resp.ID))
	return resp.ID, nil
}
