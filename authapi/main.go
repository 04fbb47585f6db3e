package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"partnerportal/httpmiddleware"
	"partnerportal/logger"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Session exchange and user lookup are delegated to the backing GoTrue
// auth service; this package never validates tokens itself.

var ErrNotConfigured = errors.New("auth provider not configured")

type AuthConnectProps struct {
	Logger *logger.LogMiddleware
}

type Auth struct {
	logger  *logger.LogMiddleware
	baseURL string
	anonKey string
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

func Connect(ctx context.Context, args AuthConnectProps) *Auth {
	tracer := otel.Tracer("authapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	baseURL := strings.TrimRight(os.Getenv("SUPABASE_URL"), "/")
	anonKey := os.Getenv("SUPABASE_ANON_KEY")
	if baseURL == "" || anonKey == "" {
		args.Logger.Logger(ctx).Warn("[AuthAPI] SUPABASE_URL/SUPABASE_ANON_KEY not set, authenticated routes will reject requests")
	} else {
		args.Logger.Logger(ctx).Info("[AuthAPI] Auth client started")
	}

	return &Auth{logger: args.Logger, baseURL: baseURL, anonKey: anonKey}
}

func (a *Auth) Configured() bool {
	return a != nil && a.baseURL != "" && a.anonKey != ""
}

// ExchangeCode trades a PKCE auth code and its verifier for a session.
func (a *Auth) ExchangeCode(ctx context.Context, code string, verifier string) (*Session, error) {
	tracer := otel.Tracer("authapi/ExchangeCode")
	ctx, span := tracer.Start(ctx, "ExchangeCode")
	defer span.End()

	if !a.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"auth_code":     code,
		"code_verifier": verifier,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	respBody, err := httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
		Method: "POST",
		Url:    a.baseURL + "/auth/v1/token?grant_type=pkce",
		Body:   bytes.NewBuffer(body),
		Headers: map[string]string{
			"apikey":       a.anonKey,
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		span.RecordError(err)
		a.logger.Logger(ctx).Error("[AuthAPI] Code exchange failed", zap.Error(err))
		return nil, fmt.Errorf("could not exchange code for session")
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil || session.AccessToken == "" {
		span.RecordError(err)
		a.logger.Logger(ctx).Error("[AuthAPI] Could not parse session response", zap.Error(err))
		return nil, fmt.Errorf("could not exchange code for session")
	}

	return &session, nil
}

// GetUser resolves a bearer token to the authenticated user.
func (a *Auth) GetUser(ctx context.Context, accessToken string) (*User, error) {
	tracer := otel.Tracer("authapi/GetUser")
	ctx, span := tracer.Start(ctx, "GetUser")
	defer span.End()

	if !a.Configured() {
		return nil, ErrNotConfigured
	}

	respBody, err := httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
		Method: "GET",
		Url:    a.baseURL + "/auth/v1/user",
		Headers: map[string]string{
			"apikey":        a.anonKey,
			"Authorization": "Bearer " + accessToken,
		},
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("could not resolve user from token")
	}

	var user User
	if err := json.Unmarshal(respBody, &user); err != nil || user.ID == "" {
		span.RecordError(err)
		return nil, fmt.Errorf("could not resolve user from token")
	}

	return &user, nil
}

// SignOut revokes the session server-side. Best effort; callers clear the
// cookie regardless.
func (a *Auth) SignOut(ctx context.Context, accessToken string) error {
	tracer := otel.Tracer("authapi/SignOut")
	ctx, span := tracer.Start(ctx, "SignOut")
	defer span.End()

	if !a.Configured() {
		return ErrNotConfigured
	}

	_, err := httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
		Method: "POST",
		Url:    a.baseURL + "/auth/v1/logout",
		Headers: map[string]string{
			"apikey":        a.anonKey,
			"Authorization": "Bearer " + accessToken,
		},
	})
	if err != nil {
		span.RecordError(err)
		a.logger.Logger(ctx).Warn("[AuthAPI] Server signout failed", zap.Error(err))
		return err
	}
	return nil
}
