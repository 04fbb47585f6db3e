package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"partnerportal/authapi"
	"partnerportal/database/postgres"
	"partnerportal/emailapi"
	"partnerportal/emailapi/resendapi"
	"partnerportal/emailapi/smtpapi"
	"partnerportal/logger"
	"partnerportal/modelapi/geminiapi"
	"partnerportal/modelapi/perplexityapi"
	"partnerportal/webserver"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/hyperdxio/opentelemetry-logs-go/exporters/otlp/otlplogs"
	sdk "github.com/hyperdxio/opentelemetry-logs-go/sdk/logs"
	"github.com/hyperdxio/otel-config-go/otelconfig"
)

const defaultPort = "80"

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	godotenv.Load()
	production := os.Getenv("PRODUCTION") != ""

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		log.Fatalf("Error setting up OTel SDK - %e", err)
	}
	defer otelShutdown()
	ctx := context.Background()

	logExporter, _ := otlplogs.NewExporter(ctx)
	loggerProvider := sdk.NewLoggerProvider(sdk.WithBatcher(logExporter))
	defer loggerProvider.Shutdown(ctx)

	LogMiddleware := logger.Connect(logger.LoggerConnectProps{Production: production, LoggerProvider: loggerProvider})

	db := postgres.Connect(ctx, postgres.DatabaseConnectProps{Logger: LogMiddleware})
	geminiClient := geminiapi.Connect(ctx, geminiapi.GeminiConnectProps{Logger: LogMiddleware})
	perplexityClient := perplexityapi.Connect(ctx, perplexityapi.PerplexityConnectProps{Logger: LogMiddleware})

	resendClient := resendapi.Connect(ctx, resendapi.ResendConnectProps{Logger: LogMiddleware})
	smtpClient := smtpapi.Connect(smtpapi.SMTPConnectProps{Logger: LogMiddleware})
	emailClient := emailapi.Connect(ctx, emailapi.EmailConnectProps{Logger: LogMiddleware, Resend: resendClient, SMTP: smtpClient})

	authClient := authapi.Connect(ctx, authapi.AuthConnectProps{Logger: LogMiddleware})

	server := webserver.Connect(ctx, webserver.WebServerConnectProps{
		Logger:     LogMiddleware,
		DB:         db,
		Gemini:     geminiClient,
		Perplexity: perplexityClient,
		Email:      emailClient,
		Auth:       authClient,
	})

	Logger := LogMiddleware.Logger(ctx)

	if production == false {
		Logger.Info("[WebServer] Portal starting in development mode")
	} else {
		Logger.Info("[WebServer] Portal starting in production mode")
	}

	handler := requestLoggerMiddleware(LogMiddleware)(server.Routes())
	Logger.Info("[WebServer] Listening", zap.String("port", port))
	log.Fatal(http.ListenAndServe(":"+port, otelhttp.NewHandler(handler, "server")))
}

func requestLoggerMiddleware(logger *logger.LogMiddleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger.Logger(ctx).Info("Request Received", zap.String("url", r.URL.Path), zap.String("method", r.Method))
			next.ServeHTTP(w, r)
			logger.Logger(ctx).Info("Request Completed", zap.String("path", r.URL.Path), zap.String("method", r.Method))
		})
	}
}
