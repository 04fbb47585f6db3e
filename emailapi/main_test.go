package emailapi

import (
	"context"
	"errors"
	"partnerportal/emailapi/resendapi"
	"partnerportal/emailapi/smtpapi"
	"partnerportal/logger"
	"partnerportal/portal"
	"testing"
)

func newTestEmail(t *testing.T, provider string) *Email {
	t.Helper()
	t.Setenv("EMAIL_PROVIDER", provider)
	ctx := context.Background()
	log := logger.Connect(logger.LoggerConnectProps{})
	return Connect(ctx, EmailConnectProps{
		Logger: log,
		Resend: resendapi.Connect(ctx, resendapi.ResendConnectProps{Logger: log}),
		SMTP:   smtpapi.Connect(smtpapi.SMTPConnectProps{Logger: log}),
	})
}

func TestResendDeliveryReroutesToTestRecipient(t *testing.T) {
	recipients, cc, testMode := resendDelivery("partner@example.com", []string{"cc@example.com"}, "sandbox@example.com")
	if !testMode {
		t.Fatal("expected test mode")
	}
	if len(recipients) != 1 || recipients[0] != "sandbox@example.com" {
		t.Fatalf("expected reroute to test recipient, got %v", recipients)
	}
	if cc != nil {
		t.Fatalf("cc must be dropped in test mode, got %v", cc)
	}
}

func TestResendDeliveryKeepsRecipientAndCc(t *testing.T) {
	recipients, cc, testMode := resendDelivery("partner@example.com", []string{"cc@example.com"}, "")
	if testMode {
		t.Fatal("unexpected test mode")
	}
	if len(recipients) != 1 || recipients[0] != "partner@example.com" {
		t.Fatalf("unexpected recipients: %v", recipients)
	}
	if len(cc) != 1 || cc[0] != "cc@example.com" {
		t.Fatalf("cc dropped without test recipient: %v", cc)
	}
}

func TestCcList(t *testing.T) {
	if cc := ccList(""); cc != nil {
		t.Fatalf("expected no cc, got %v", cc)
	}
	if cc := ccList("team@example.com"); len(cc) != 1 || cc[0] != "team@example.com" {
		t.Fatalf("unexpected cc: %v", cc)
	}
}

func TestSendTrainingPlanResendNotConfigured(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")
	t.Setenv("RESEND_TEST_RECIPIENT", "")
	e := newTestEmail(t, "")

	_, err := e.SendTrainingPlan(context.Background(), SendTrainingPlanProps{
		To:        "partner@example.com",
		Trainings: []portal.TrainingItem{{Title: "Automation Basics", Duration: 4}},
	})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSendWelcomeSMTPNotConfigured(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_USER", "")
	t.Setenv("SMTP_PASS", "")
	e := newTestEmail(t, ProviderSMTP)

	_, err := e.SendWelcome(context.Background(), "partner@example.com")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestConnectDefaultsToResend(t *testing.T) {
	e := newTestEmail(t, "")
	if e.Provider() != ProviderResend {
		t.Fatalf("expected resend default, got %q", e.Provider())
	}
}
