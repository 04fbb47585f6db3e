package emailapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"partnerportal/emailapi/resendapi"
	"partnerportal/emailapi/smtpapi"
	"partnerportal/logger"
	"partnerportal/portal"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

// ErrNotConfigured marks a send that failed because the selected backend is
// missing credentials; handlers surface it as a configuration error rather
// than an upstream failure.
var ErrNotConfigured = errors.New("email service not configured")

type EmailConnectProps struct {
	Logger *logger.LogMiddleware
	Resend *resendapi.Resend
	SMTP   *smtpapi.SMTP
}

// Email dispatches to one of two delivery backends selected by
// EMAIL_PROVIDER. There is no automatic fallback between them.
type Email struct {
	logger   *logger.LogMiddleware
	resend   *resendapi.Resend
	smtp     *smtpapi.SMTP
	provider string
}

type SendOutcome struct {
	Provider string
	ID       string
	TestMode bool
}

func Connect(ctx context.Context, args EmailConnectProps) *Email {
	tracer := otel.Tracer("emailapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	provider := os.Getenv("EMAIL_PROVIDER")
	if provider == "" {
		provider = ProviderResend
	}
	span.SetAttributes(attribute.String("provider", provider))

	args.Logger.Logger(ctx).Info("[EmailAPI] Email dispatcher started", zap.String("provider", provider))
	return &Email{logger: args.Logger, resend: args.Resend, smtp: args.SMTP, provider: provider}
}

func (e *Email) Provider() string {
	return e.provider
}

// ccList turns the optional EMAIL_CC value into a cc slice.
func ccList(ccAddr string) []string {
	if ccAddr == "" {
		return nil
	}
	return []string{ccAddr}
}

// resendDelivery computes the recipient set for a Resend send. When a test
// recipient is set, all outgoing mail is rerouted to that single address
// with no cc.
func resendDelivery(to string, cc []string, testRecipient string) ([]string, []string, bool) {
	if testRecipient != "" {
		return []string{testRecipient}, nil, true
	}
	return []string{to}, cc, false
}

func (e *Email) send(ctx context.Context, to string, subject string, html string) (*SendOutcome, error) {
	tracer := otel.Tracer("emailapi/send")
	ctx, span := tracer.Start(ctx, "send")
	defer span.End()

	cc := ccList(os.Getenv("EMAIL_CC"))

	if e.provider == ProviderSMTP {
		if !e.smtp.Configured() {
			e.logger.Logger(ctx).Error("[EmailAPI] SMTP is not configured properly")
			return nil, fmt.Errorf("%w: missing SMTP_HOST/SMTP_USER/SMTP_PASS", ErrNotConfigured)
		}
		id, err := e.smtp.Send(ctx, smtpapi.SendProps{To: []string{to}, Cc: cc, Subject: subject, HTML: html})
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		return &SendOutcome{Provider: ProviderSMTP, ID: id}, nil
	}

	if !e.resend.Configured() {
		e.logger.Logger(ctx).Error("[EmailAPI] RESEND_API_KEY is not configured")
		return nil, fmt.Errorf("%w: missing RESEND_API_KEY", ErrNotConfigured)
	}

	recipients, cc, testMode := resendDelivery(to, cc, os.Getenv("RESEND_TEST_RECIPIENT"))

	id, err := e.resend.Send(ctx, resendapi.SendProps{To: recipients, Cc: cc, Subject: subject, HTML: html})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &SendOutcome{Provider: ProviderResend, ID: id, TestMode: testMode}, nil
}

type SendTrainingPlanProps struct {
	To              string
	Trainings       []portal.TrainingItem
	HoursPerDay     int
	IncludeWeekends bool
	PlanSummary     string
}

// SendTrainingPlan renders and delivers the plan email through the
// selected backend.
func (e *Email) SendTrainingPlan(ctx context.Context, args SendTrainingPlanProps) (*SendOutcome, error) {
	tracer := otel.Tracer("emailapi/SendTrainingPlan")
	ctx, span := tracer.Start(ctx, "SendTrainingPlan")
	defer span.End()

	span.SetAttributes(attribute.Int("trainings", len(args.Trainings)))

	html, err := renderPlanEmail(planEmailData{
		PlanSummary:     args.PlanSummary,
		Trainings:       args.Trainings,
		HoursPerDay:     args.HoursPerDay,
		IncludeWeekends: args.IncludeWeekends,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return e.send(ctx, args.To, planEmailSubject, html)
}

// SendWelcome fires the post-confirmation welcome email. Callers treat it
// as best-effort and only log failures.
func (e *Email) SendWelcome(ctx context.Context, to string) (*SendOutcome, error) {
	tracer := otel.Tracer("emailapi/SendWelcome")
	ctx, span := tracer.Start(ctx, "SendWelcome")
	defer span.End()

	return e.send(ctx, to, welcomeEmailSubject, welcomeEmailHTML)
}
