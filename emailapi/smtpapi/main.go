package smtpapi

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"partnerportal/logger"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type SMTPConnectProps struct {
	Logger *logger.LogMiddleware
}

type SMTP struct {
	logger *logger.LogMiddleware
}

func Connect(args SMTPConnectProps) *SMTP {
	return &SMTP{logger: args.Logger}
}

// Configured requires host, user and password; port, secure flag and from
// address have defaults.
func (s *SMTP) Configured() bool {
	return os.Getenv("SMTP_HOST") != "" && os.Getenv("SMTP_USER") != "" && os.Getenv("SMTP_PASS") != ""
}

type SendProps struct {
	To      []string
	Cc      []string
	Subject string
	HTML    string
}

// Send delivers one HTML email over SMTP. SMTP_SECURE defaults to implicit
// TLS on port 465; set SMTP_SECURE=false for a plaintext dial upgraded via
// STARTTLS where the server offers it. Returns a generated message ID.
func (s *SMTP) Send(ctx context.Context, args SendProps) (string, error) {
	tracer := otel.Tracer("smtpapi/Send")
	ctx, span := tracer.Start(ctx, "Send")
	defer span.End()

	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	if host == "" || user == "" || pass == "" {
		return "", fmt.Errorf("SMTP_HOST/SMTP_USER/SMTP_PASS not set")
	}

	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "465"
	}
	secure := os.Getenv("SMTP_SECURE") != "false"

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	span.SetAttributes(
		attribute.String("smtp.host", host),
		attribute.String("smtp.port", port),
		attribute.Bool("smtp.secure", secure),
	)

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), host)
	recipients := append(append([]string{}, args.To...), args.Cc...)

	var headers strings.Builder
	headers.WriteString("From: " + from + "\r\n")
	headers.WriteString("To: " + strings.Join(args.To, ", ") + "\r\n")
	if len(args.Cc) > 0 {
		headers.WriteString("Cc: " + strings.Join(args.Cc, ", ") + "\r\n")
	}
	headers.WriteString("Subject: " + args.Subject + "\r\n")
	headers.WriteString("Message-ID: " + messageID + "\r\n")
	headers.WriteString("MIME-Version: 1.0\r\n")
	headers.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	headers.WriteString("\r\n")
	message := []byte(headers.String() + args.HTML)

	auth := smtp.PlainAuth("", user, pass, host)
	addr := host + ":" + port

	var err error
	if secure {
		err = s.sendImplicitTLS(addr, host, auth, from, recipients, message)
	} else {
		err = s.sendStartTLS(addr, host, auth, from, recipients, message)
	}
	if err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error(
			"[SMTPAPI] Could not send email",
			zap.Error(err),
			zap.Strings("to", args.To),
			zap.String("subject", args.Subject),
		)
		return "", err
	}

	s.logger.Logger(ctx).Info("[SMTPAPI] Email sent", zap.String("message_id", messageID))
	return messageID, nil
}

func (s *SMTP) sendImplicitTLS(addr string, host string, auth smtp.Auth, from string, recipients []string, message []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return err
	}
	return s.transmit(client, from, recipients, message)
}

func (s *SMTP) sendStartTLS(addr string, host string, auth smtp.Auth, from string, recipients []string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if err := client.Auth(auth); err != nil {
		return err
	}
	return s.transmit(client, from, recipients, message)
}

func (s *SMTP) transmit(client *smtp.Client, from string, recipients []string, message []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
