package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"partnerportal/authapi"
	"partnerportal/database/postgres"
	"partnerportal/emailapi"
	"partnerportal/logger"
	"partnerportal/modelapi/perplexityapi"
	"partnerportal/portal"
	"strings"
	"testing"
	"time"
)

type stubStore struct {
	role       string
	assessment *postgres.StoredAssessment
	plan       *postgres.PlanDetails

	savedRole string
	savedPlan *postgres.PlanDetails
}

func (s *stubStore) SaveProfileRole(ctx context.Context, args postgres.SaveProfileRoleProps) (*postgres.Profile, error) {
	s.savedRole = args.Role
	return &postgres.Profile{ID: args.UserID, UpdatedAt: time.Now()}, nil
}

func (s *stubStore) GetProfileRole(ctx context.Context, userID string) (string, error) {
	return s.role, nil
}

func (s *stubStore) SaveAssessment(ctx context.Context, args postgres.SaveAssessmentProps) (*postgres.Assessment, error) {
	return &postgres.Assessment{UserID: args.UserID, SubmittedAt: time.Now()}, nil
}

func (s *stubStore) GetLatestAssessment(ctx context.Context, userID string) (*postgres.StoredAssessment, error) {
	return s.assessment, nil
}

func (s *stubStore) SaveTrainingPlan(ctx context.Context, args postgres.SaveTrainingPlanProps) (*postgres.TrainingPlanRow, error) {
	s.savedPlan = &args.Details
	return &postgres.TrainingPlanRow{UserID: args.UserID, GeneratedAt: time.Now()}, nil
}

func (s *stubStore) GetLatestTrainingPlan(ctx context.Context, userID string) (*postgres.PlanDetails, error) {
	return s.plan, nil
}

type stubGemini struct {
	configured bool
	reply      string
	err        error
}

func (g *stubGemini) Configured() bool { return g.configured }

func (g *stubGemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.reply, g.err
}

type stubPerplexity struct {
	configured bool
	context    string
	reply      string
	err        error
}

func (p *stubPerplexity) Configured() bool { return p.configured }

func (p *stubPerplexity) FetchContext(ctx context.Context, systemPrompt string, userPrompt string) perplexityapi.ContextResult {
	if !p.configured || p.context == "" {
		return perplexityapi.ContextResult{}
	}
	return perplexityapi.ContextResult{OK: true, Value: p.context}
}

func (p *stubPerplexity) GetResponse(ctx context.Context, prompt string) (string, error) {
	return p.reply, p.err
}

type stubMailer struct {
	provider string
	outcome  *emailapi.SendOutcome
	err      error
	lastTo   string
}

func (m *stubMailer) Provider() string { return m.provider }

func (m *stubMailer) SendTrainingPlan(ctx context.Context, args emailapi.SendTrainingPlanProps) (*emailapi.SendOutcome, error) {
	m.lastTo = args.To
	return m.outcome, m.err
}

func (m *stubMailer) SendWelcome(ctx context.Context, to string) (*emailapi.SendOutcome, error) {
	m.lastTo = to
	return m.outcome, m.err
}

type stubAuth struct {
	user    *authapi.User
	session *authapi.Session
	err     error
}

func (a *stubAuth) Configured() bool { return true }

func (a *stubAuth) ExchangeCode(ctx context.Context, code string, verifier string) (*authapi.Session, error) {
	return a.session, a.err
}

func (a *stubAuth) GetUser(ctx context.Context, accessToken string) (*authapi.User, error) {
	if a.user == nil {
		return nil, errors.New("invalid token")
	}
	return a.user, nil
}

func (a *stubAuth) SignOut(ctx context.Context, accessToken string) error { return nil }

type fixture struct {
	store      *stubStore
	gemini     *stubGemini
	perplexity *stubPerplexity
	mailer     *stubMailer
	auth       *stubAuth
	handler    http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:      &stubStore{},
		gemini:     &stubGemini{},
		perplexity: &stubPerplexity{},
		mailer:     &stubMailer{provider: emailapi.ProviderResend},
		auth:       &stubAuth{user: &authapi.User{ID: "user-1", Email: "partner@example.com"}},
	}
	server := Connect(context.Background(), WebServerConnectProps{
		Logger:     logger.Connect(logger.LoggerConnectProps{}),
		DB:         f.store,
		Gemini:     f.gemini,
		Perplexity: f.perplexity,
		Email:      f.mailer,
		Auth:       f.auth,
	})
	f.handler = server.Routes()
	return f
}

func (f *fixture) do(method string, path string, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestChatRequiresPrompt(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/chat", `{}`, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Prompt is required" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestChatNoProviderConfigured(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/chat", `{"prompt":"What is UiPath?"}`, false)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "No AI provider is configured" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestChatPrimaryProvider(t *testing.T) {
	f := newFixture(t)
	f.gemini.configured = true
	f.gemini.reply = "UiPath automates business processes."
	rec := f.do(http.MethodPost, "/api/chat", `{"prompt":"What is UiPath?"}`, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["provider"] != "gemini" {
		t.Fatalf("expected gemini provider, got %v", body["provider"])
	}
	if body["answer"] != f.gemini.reply {
		t.Fatalf("unexpected answer: %v", body["answer"])
	}
}

func TestChatFallsBackToSecondary(t *testing.T) {
	f := newFixture(t)
	f.gemini.configured = true
	f.gemini.err = errors.New("quota exceeded")
	f.perplexity.configured = true
	f.perplexity.reply = "fallback answer"
	rec := f.do(http.MethodPost, "/api/chat", `{"prompt":"hello"}`, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["provider"] != "perplexity" {
		t.Fatalf("expected perplexity provider, got %v", body["provider"])
	}
}

func TestChatAllProvidersFail(t *testing.T) {
	f := newFixture(t)
	f.gemini.configured = true
	f.gemini.err = errors.New("quota exceeded")
	f.perplexity.configured = true
	f.perplexity.err = errors.New("unavailable")
	rec := f.do(http.MethodPost, "/api/chat", `{"prompt":"hello"}`, false)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Failed to generate answer" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/dashboard", "", false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRoleSelectKeepsKnownPersonaVerbatim(t *testing.T) {
	f := newFixture(t)
	payload, _ := json.Marshal(map[string]string{"role": portal.PersonaLeadership})
	rec := f.do(http.MethodPost, "/api/role", string(payload), true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.store.savedRole != portal.PersonaLeadership {
		t.Fatalf("persona label rewritten: %q", f.store.savedRole)
	}
}

func TestRoleSelectTitleCasesFreeText(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/role", `{"role":"automation champion"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.store.savedRole != "Automation Champion" {
		t.Fatalf("expected display casing, got %q", f.store.savedRole)
	}
}

func TestQuestionsRequiresRole(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/api/questions", "", true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestQuestionsReturnsPersonaBank(t *testing.T) {
	f := newFixture(t)
	f.store.role = portal.PersonaDelivery
	rec := f.do(http.MethodGet, "/api/questions", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	questions, ok := body["questions"].([]interface{})
	if !ok || len(questions) != 10 {
		t.Fatalf("expected 10 delivery questions, got %v", body["questions"])
	}
}

func TestAssessmentRequiresAnswers(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/assessment", `{"answers":{}}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGeneratePlanDegradesToCannedTemplate(t *testing.T) {
	f := newFixture(t)
	f.store.role = portal.PersonaLeadership
	rec := f.do(http.MethodPost, "/api/generate-plan", `{}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp generatePlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Source.UsedGemini || resp.Source.UsedPerplexity {
		t.Fatalf("no provider configured but source claims one: %+v", resp.Source)
	}
	want := portal.HeuristicPlan(portal.PersonaLeadership)
	if len(resp.RecommendedTrainings) != len(want.RecommendedTrainings) {
		t.Fatalf("expected canned leadership plan with %d items, got %d",
			len(want.RecommendedTrainings), len(resp.RecommendedTrainings))
	}
	if resp.HoursPerDay != 2 || resp.IncludeWeekends {
		t.Fatalf("defaults not applied: hours=%d weekends=%v", resp.HoursPerDay, resp.IncludeWeekends)
	}
}

func TestGeneratePlanUsesModelOutputWhenParsable(t *testing.T) {
	f := newFixture(t)
	f.store.role = portal.PersonaSales
	f.gemini.configured = true
	f.gemini.reply = "```json\n{\"planSummary\":\"Custom sales path\",\"recommendedTrainings\":[{\"title\":\"Discovery Calls\",\"duration\":3}]}\n```"
	rec := f.do(http.MethodPost, "/api/generate-plan", `{"hoursPerDay":4,"includeWeekends":true}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp generatePlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.PlanSummary != "Custom sales path" || len(resp.RecommendedTrainings) != 1 {
		t.Fatalf("model plan not used: %+v", resp)
	}
	if resp.HoursPerDay != 4 || !resp.IncludeWeekends {
		t.Fatalf("request options dropped: %+v", resp)
	}
}

func TestGeneratePlanFallsBackOnUnusableOutput(t *testing.T) {
	f := newFixture(t)
	f.store.role = portal.PersonaSales
	f.gemini.configured = true
	f.gemini.reply = "Sorry, I cannot help with that."
	rec := f.do(http.MethodPost, "/api/generate-plan", `{}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp generatePlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.RecommendedTrainings) == 0 {
		t.Fatal("expected canned fallback plan")
	}
	if !resp.Source.UsedGemini {
		t.Fatal("gemini was configured; source should say so")
	}
}

func TestSavePlanRequiresTrainings(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/plan", `{"trainingPlan":[]}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSavePlanPersistsDetails(t *testing.T) {
	f := newFixture(t)
	body := `{"trainingPlan":[{"title":"Automation Basics","duration":4}],"hoursPerDay":3,"includeWeekends":true,"planSummary":"ramp up"}`
	rec := f.do(http.MethodPost, "/api/plan", body, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.store.savedPlan == nil || f.store.savedPlan.HoursPerDay != 3 || !f.store.savedPlan.IncludeWeekends {
		t.Fatalf("plan not persisted: %+v", f.store.savedPlan)
	}
}

func TestDashboardIncludesScorecard(t *testing.T) {
	f := newFixture(t)
	f.store.role = portal.PersonaLeadership
	f.store.assessment = &postgres.StoredAssessment{
		Answers:     map[string]string{"leadership-1": "C) A strategic partnership driving digital transformation."},
		SubmittedAt: time.Now(),
	}
	rec := f.do(http.MethodGet, "/api/dashboard", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	card, ok := body["scorecard"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected scorecard, got %v", body["scorecard"])
	}
	if card["correct"].(float64) != 1 {
		t.Fatalf("expected one correct answer, got %v", card["correct"])
	}
}

func TestDashboardNoScorecardForCustomRole(t *testing.T) {
	f := newFixture(t)
	f.store.role = "Automation Champion"
	f.store.assessment = &postgres.StoredAssessment{
		Answers:     map[string]string{"q1": "whatever"},
		SubmittedAt: time.Now(),
	}
	rec := f.do(http.MethodGet, "/api/dashboard", "", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["scorecard"] != nil {
		t.Fatalf("expected nil scorecard, got %v", body["scorecard"])
	}
}

func TestSendEmailRequiresRecipient(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/send-email", `{}`, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Email is required" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestSendEmailWithoutAnyPlan(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/api/send-email", `{"email":"partner@example.com"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Training plan not found for user" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestSendEmailFallsBackToSavedPlan(t *testing.T) {
	f := newFixture(t)
	f.store.plan = &postgres.PlanDetails{
		RecommendedTrainings: []portal.TrainingItem{{Title: "Automation Basics", Duration: 4}},
		HoursPerDay:          2,
	}
	f.mailer.outcome = &emailapi.SendOutcome{Provider: emailapi.ProviderResend, ID: "email-123"}
	rec := f.do(http.MethodPost, "/api/send-email", `{"email":"partner@example.com"}`, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["emailId"] != "email-123" || body["success"] != true {
		t.Fatalf("unexpected response: %v", body)
	}
	if f.mailer.lastTo != "partner@example.com" {
		t.Fatalf("sent to wrong recipient: %q", f.mailer.lastTo)
	}
}

func TestSendEmailSMTPResponseShape(t *testing.T) {
	f := newFixture(t)
	f.mailer.provider = emailapi.ProviderSMTP
	f.mailer.outcome = &emailapi.SendOutcome{Provider: emailapi.ProviderSMTP, ID: "<abc@mail.example.com>"}
	body := `{"email":"partner@example.com","trainingPlan":[{"title":"Automation Basics","duration":4}]}`
	rec := f.do(http.MethodPost, "/api/send-email", body, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["provider"] != emailapi.ProviderSMTP || resp["messageId"] != "<abc@mail.example.com>" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestSendEmailNotConfigured(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = emailapi.ErrNotConfigured
	body := `{"email":"partner@example.com","trainingPlan":[{"title":"Automation Basics","duration":4}]}`
	rec := f.do(http.MethodPost, "/api/send-email", body, false)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["error"] != "Email service not configured" {
		t.Fatalf("unexpected error: %v", resp["error"])
	}
}

func TestAuthCallbackWithoutCodeRedirectsToError(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/auth/callback", "", false)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/auth/auth-code-error" {
		t.Fatalf("unexpected redirect: %q", loc)
	}
}

func TestAuthCallbackSetsSessionAndRedirects(t *testing.T) {
	f := newFixture(t)
	f.auth.session = &authapi.Session{
		AccessToken: "session-token",
		User:        authapi.User{ID: "user-1", Email: "partner@example.com"},
	}
	rec := f.do(http.MethodGet, "/auth/callback?code=abc&next=/dashboard", "", false)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("unexpected redirect: %q", loc)
	}
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == sessionCookieName && c.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("session cookie not set")
	}
}

func TestAuthCallbackSignupSendsWelcomeEmail(t *testing.T) {
	f := newFixture(t)
	f.auth.session = &authapi.Session{
		AccessToken: "session-token",
		User:        authapi.User{ID: "user-1", Email: "new@example.com"},
	}
	f.mailer.outcome = &emailapi.SendOutcome{Provider: emailapi.ProviderResend, ID: "welcome-1"}
	rec := f.do(http.MethodGet, "/auth/callback?code=abc&type=signup", "", false)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if f.mailer.lastTo != "new@example.com" {
		t.Fatalf("welcome email not sent, lastTo=%q", f.mailer.lastTo)
	}
}

func TestSignOutClearsCookieAndRedirects(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/auth/signout", "", true)
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected redirect: %q", loc)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}
