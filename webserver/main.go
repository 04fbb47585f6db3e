package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"partnerportal/authapi"
	"partnerportal/database/postgres"
	"partnerportal/emailapi"
	"partnerportal/logger"
	"partnerportal/modelapi"
	"partnerportal/modelapi/perplexityapi"
	"partnerportal/portal"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const sessionCookieName = "sb-access-token"
const verifierCookieName = "sb-code-verifier"

// Store is the slice of the database the portal handlers touch.
type Store interface {
	SaveProfileRole(ctx context.Context, args postgres.SaveProfileRoleProps) (*postgres.Profile, error)
	GetProfileRole(ctx context.Context, userID string) (string, error)
	SaveAssessment(ctx context.Context, args postgres.SaveAssessmentProps) (*postgres.Assessment, error)
	GetLatestAssessment(ctx context.Context, userID string) (*postgres.StoredAssessment, error)
	SaveTrainingPlan(ctx context.Context, args postgres.SaveTrainingPlanProps) (*postgres.TrainingPlanRow, error)
	GetLatestTrainingPlan(ctx context.Context, userID string) (*postgres.PlanDetails, error)
}

// AnswerGenerator is the primary generative provider (Gemini).
type AnswerGenerator interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ContextRetriever is the secondary provider (Perplexity): best-effort
// context retrieval plus direct answers when the primary is unavailable.
type ContextRetriever interface {
	Configured() bool
	FetchContext(ctx context.Context, systemPrompt string, userPrompt string) perplexityapi.ContextResult
	GetResponse(ctx context.Context, prompt string) (string, error)
}

type Mailer interface {
	Provider() string
	SendTrainingPlan(ctx context.Context, args emailapi.SendTrainingPlanProps) (*emailapi.SendOutcome, error)
	SendWelcome(ctx context.Context, to string) (*emailapi.SendOutcome, error)
}

type AuthProvider interface {
	Configured() bool
	ExchangeCode(ctx context.Context, code string, verifier string) (*authapi.Session, error)
	GetUser(ctx context.Context, accessToken string) (*authapi.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

type WebServerConnectProps struct {
	Logger     *logger.LogMiddleware
	DB         Store
	Gemini     AnswerGenerator
	Perplexity ContextRetriever
	Email      Mailer
	Auth       AuthProvider
}

type WebServer struct {
	logger     *logger.LogMiddleware
	db         Store
	gemini     AnswerGenerator
	perplexity ContextRetriever
	email      Mailer
	auth       AuthProvider
}

func Connect(ctx context.Context, args WebServerConnectProps) *WebServer {
	tracer := otel.Tracer("webserver/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	args.Logger.Logger(ctx).Info("[WebServer] HTTP handlers ready")
	return &WebServer{
		logger:     args.Logger,
		db:         args.DB,
		gemini:     args.Gemini,
		perplexity: args.Perplexity,
		email:      args.Email,
		auth:       args.Auth,
	}
}

func (s *WebServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/chat", s.handleChat)
	r.Post("/api/send-email", s.handleSendEmail)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticated)
		r.Get("/api/questions", s.handleQuestions)
		r.Post("/api/role", s.handleRoleSelect)
		r.Post("/api/assessment", s.handleAssessmentSubmit)
		r.Post("/api/generate-plan", s.handleGeneratePlan)
		r.Post("/api/plan", s.handleSavePlan)
		r.Get("/api/dashboard", s.handleDashboard)
	})

	r.Get("/auth/callback", s.handleAuthCallback)
	r.Get("/auth/signout", s.handleSignOut)

	return r
}

type ctxKey string

const userCtxKey ctxKey = "user"

func (s *WebServer) bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// authenticated resolves the bearer token to a user via the auth provider
// and rejects the request with 401 otherwise.
func (s *WebServer) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token := s.bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		user, err := s.auth.GetUser(ctx, token)
		if err != nil {
			s.logger.Logger(ctx).Warn("[WebServer] Could not resolve user from token", zap.Error(err))
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userCtxKey, user)))
	})
}

func userFrom(ctx context.Context) *authapi.User {
	user, _ := ctx.Value(userCtxKey).(*authapi.User)
	return user
}

// optionalUser resolves the caller when a token is present but does not
// require one. Used where a request can stand on its own payload.
func (s *WebServer) optionalUser(r *http.Request) *authapi.User {
	token := s.bearerToken(r)
	if token == "" {
		return nil
	}
	user, err := s.auth.GetUser(r.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

func (s *WebServer) handleChat(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleChat")
	ctx, span := tracer.Start(r.Context(), "handleChat")
	defer span.End()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	if !s.gemini.Configured() && !s.perplexity.Configured() {
		span.AddEvent("NoProviderConfigured")
		s.logger.Logger(ctx).Error("[WebServer] Chat requested with no AI provider configured")
		respondError(w, http.StatusInternalServerError, "No AI provider is configured")
		return
	}

	// Best-effort retrieval; a failed lookup is indistinguishable from an
	// empty one by design and never blocks the answer.
	prompt := req.Prompt
	if retrieved := s.perplexity.FetchContext(ctx, modelapi.CHAT_CONTEXT_SYSTEM_PROMPT, req.Prompt); retrieved.OK {
		span.AddEvent("ContextRetrieved", trace.WithAttributes(attribute.Int("context.length", len(retrieved.Value))))
		prompt = modelapi.BuildChatPrompt(retrieved.Value, req.Prompt)
	}

	if s.gemini.Configured() {
		answer, err := s.gemini.GenerateText(ctx, prompt)
		if err == nil {
			respondJSON(w, http.StatusOK, map[string]string{"answer": answer, "provider": "gemini"})
			return
		}
		span.RecordError(err)
		s.logger.Logger(ctx).Warn("[WebServer] Primary chat provider failed, trying secondary", zap.Error(err))
	}

	// The secondary gets the raw prompt: Perplexity performs its own
	// retrieval, so folding the fetched context back in would duplicate it.
	answer, err := s.perplexity.GetResponse(ctx, req.Prompt)
	if err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[WebServer] All chat providers failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to generate answer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"answer": answer, "provider": "perplexity"})
}

func (s *WebServer) handleQuestions(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleQuestions")
	ctx, span := tracer.Start(r.Context(), "handleQuestions")
	defer span.End()

	user := userFrom(ctx)
	persona, err := s.db.GetProfileRole(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if persona == "" {
		respondError(w, http.StatusBadRequest, "No role selected")
		return
	}

	questions, ok := portal.QuestionsForPersona(persona)
	if !ok {
		questions = []portal.Question{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"persona":   persona,
		"questions": questions,
	})
}

type roleRequest struct {
	Role string `json:"role"`
}

func (s *WebServer) handleRoleSelect(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleRoleSelect")
	ctx, span := tracer.Start(r.Context(), "handleRoleSelect")
	defer span.End()

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Role) == "" {
		respondError(w, http.StatusBadRequest, "Role is required")
		return
	}

	// Known persona labels are stored verbatim; free-text roles get
	// display casing so the dashboard shows them reasonably.
	role := strings.TrimSpace(req.Role)
	if _, known := portal.QuestionsForPersona(role); !known {
		// Casers are stateful, so build one per request.
		role = cases.Title(language.English).String(role)
	}

	user := userFrom(ctx)
	if _, err := s.db.SaveProfileRole(ctx, postgres.SaveProfileRoleProps{UserID: user.ID, Role: role}); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save role")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "role": role})
}

type assessmentRequest struct {
	Answers map[string]string `json:"answers"`
}

// handleAssessmentSubmit persists the complete answer map in one upsert.
// Nothing is stored for an abandoned in-progress assessment; navigation
// state lives entirely client-side.
func (s *WebServer) handleAssessmentSubmit(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleAssessmentSubmit")
	ctx, span := tracer.Start(r.Context(), "handleAssessmentSubmit")
	defer span.End()

	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Answers) == 0 {
		respondError(w, http.StatusBadRequest, "Answers are required")
		return
	}

	user := userFrom(ctx)
	assessment, err := s.db.SaveAssessment(ctx, postgres.SaveAssessmentProps{UserID: user.ID, Answers: req.Answers})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save assessment")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"submittedAt": assessment.SubmittedAt.Format(time.RFC3339),
	})
}

type generatePlanRequest struct {
	HoursPerDay     *int  `json:"hoursPerDay"`
	IncludeWeekends *bool `json:"includeWeekends"`
}

type planSource struct {
	UsedPerplexity bool `json:"usedPerplexity"`
	UsedGemini     bool `json:"usedGemini"`
}

type generatePlanResponse struct {
	Persona              string                `json:"persona"`
	HoursPerDay          int                   `json:"hoursPerDay"`
	IncludeWeekends      bool                  `json:"includeWeekends"`
	PlanSummary          string                `json:"planSummary"`
	RecommendedTrainings []portal.TrainingItem `json:"recommendedTrainings"`
	Source               planSource            `json:"source"`
}

// handleGeneratePlan synthesizes a plan via Gemini when configured and
// degrades silently to the canned persona template otherwise. This path
// never surfaces a provider error to the caller.
func (s *WebServer) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleGeneratePlan")
	ctx, span := tracer.Start(r.Context(), "handleGeneratePlan")
	defer span.End()

	var req generatePlanRequest
	// An empty body means defaults, same as an empty JSON object.
	_ = json.NewDecoder(r.Body).Decode(&req)

	hoursPerDay := 2
	if req.HoursPerDay != nil {
		hoursPerDay = *req.HoursPerDay
	}
	includeWeekends := false
	if req.IncludeWeekends != nil {
		includeWeekends = *req.IncludeWeekends
	}

	user := userFrom(ctx)
	persona, err := s.db.GetProfileRole(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate plan")
		return
	}
	if persona == "" {
		persona = "General"
	}
	span.SetAttributes(attribute.String("persona", persona))

	answers := map[string]string{}
	if assessment, err := s.db.GetLatestAssessment(ctx, user.ID); err == nil && assessment != nil {
		answers = assessment.Answers
	}
	answersJSON, _ := json.Marshal(answers)

	retrieved := s.perplexity.FetchContext(ctx, modelapi.PLAN_RETRIEVER_SYSTEM_PROMPT,
		modelapi.BuildPlanSearchPrompt(persona, string(answersJSON)))

	plan := portal.HeuristicPlan(persona)
	if s.gemini.Configured() {
		prompt := modelapi.BuildPlanPrompt(persona, string(answersJSON), hoursPerDay, includeWeekends, retrieved.Value)
		text, err := s.gemini.GenerateText(ctx, prompt)
		if err != nil {
			span.RecordError(err)
			s.logger.Logger(ctx).Warn("[WebServer] Plan synthesis failed, using canned template", zap.Error(err))
		} else if parsed := portal.ExtractPlanJSON(text); portal.UsablePlan(parsed) {
			plan = *parsed
		} else {
			s.logger.Logger(ctx).Warn("[WebServer] Plan response unusable, using canned template")
		}
	}

	respondJSON(w, http.StatusOK, generatePlanResponse{
		Persona:              persona,
		HoursPerDay:          hoursPerDay,
		IncludeWeekends:      includeWeekends,
		PlanSummary:          plan.PlanSummary,
		RecommendedTrainings: plan.RecommendedTrainings,
		Source: planSource{
			UsedPerplexity: s.perplexity.Configured(),
			UsedGemini:     s.gemini.Configured(),
		},
	})
}

type savePlanRequest struct {
	TrainingPlan    []portal.TrainingItem `json:"trainingPlan"`
	HoursPerDay     int                   `json:"hoursPerDay"`
	IncludeWeekends bool                  `json:"includeWeekends"`
	PlanSummary     string                `json:"planSummary"`
}

func (s *WebServer) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleSavePlan")
	ctx, span := tracer.Start(r.Context(), "handleSavePlan")
	defer span.End()

	var req savePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.TrainingPlan) == 0 {
		respondError(w, http.StatusBadRequest, "Training plan is required")
		return
	}

	user := userFrom(ctx)
	_, err := s.db.SaveTrainingPlan(ctx, postgres.SaveTrainingPlanProps{
		UserID: user.ID,
		Details: postgres.PlanDetails{
			RecommendedTrainings: req.TrainingPlan,
			HoursPerDay:          req.HoursPerDay,
			IncludeWeekends:      req.IncludeWeekends,
			PlanSummary:          req.PlanSummary,
		},
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save training plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleDashboard returns the user's current assessment and plan, plus a
// scorecard derived on the fly. A scorecard only exists when the persona
// has an answer key.
func (s *WebServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleDashboard")
	ctx, span := tracer.Start(r.Context(), "handleDashboard")
	defer span.End()

	user := userFrom(ctx)

	persona, err := s.db.GetProfileRole(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	assessment, err := s.db.GetLatestAssessment(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	planDetails, err := s.db.GetLatestTrainingPlan(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	resp := map[string]interface{}{
		"persona":      persona,
		"assessment":   nil,
		"trainingPlan": planDetails,
		"scorecard":    nil,
	}

	if assessment != nil {
		resp["assessment"] = map[string]interface{}{
			"answers":     assessment.Answers,
			"submittedAt": assessment.SubmittedAt.Format(time.RFC3339),
		}

		questions, haveQuestions := portal.QuestionsForPersona(persona)
		answerKey, haveKey := portal.AnswerKeyForPersona(persona)
		if haveQuestions && haveKey {
			card := portal.ScoreAssessment(questions, answerKey, assessment.Answers)
			resp["scorecard"] = card
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type sendEmailRequest struct {
	Email           string                `json:"email"`
	TrainingPlan    []portal.TrainingItem `json:"trainingPlan"`
	HoursPerDay     int                   `json:"hoursPerDay"`
	IncludeWeekends bool                  `json:"includeWeekends"`
	PlanSummary     string                `json:"planSummary"`
}

func (s *WebServer) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleSendEmail")
	ctx, span := tracer.Start(r.Context(), "handleSendEmail")
	defer span.End()

	var req sendEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}

	// No plan in the payload: substitute the caller's latest saved plan.
	if len(req.TrainingPlan) == 0 {
		if user := s.optionalUser(r); user != nil {
			details, err := s.db.GetLatestTrainingPlan(ctx, user.ID)
			if err == nil && details != nil {
				req.TrainingPlan = details.RecommendedTrainings
				req.HoursPerDay = details.HoursPerDay
				req.IncludeWeekends = details.IncludeWeekends
				req.PlanSummary = details.PlanSummary
			}
		}
	}

	if len(req.TrainingPlan) == 0 {
		respondError(w, http.StatusBadRequest, "Training plan not found for user")
		return
	}

	outcome, err := s.email.SendTrainingPlan(ctx, emailapi.SendTrainingPlanProps{
		To:              req.Email,
		Trainings:       req.TrainingPlan,
		HoursPerDay:     req.HoursPerDay,
		IncludeWeekends: req.IncludeWeekends,
		PlanSummary:     req.PlanSummary,
	})
	if err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[WebServer] Email send failed", zap.Error(err))
		if errors.Is(err, emailapi.ErrNotConfigured) {
			respondJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Email service not configured",
				"details": err.Error(),
			})
			return
		}
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to send email",
			"details": err.Error(),
		})
		return
	}

	if outcome.Provider == emailapi.ProviderSMTP {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"messageId": outcome.ID,
			"provider":  emailapi.ProviderSMTP,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"emailId":  outcome.ID,
		"testMode": outcome.TestMode,
	})
}

// handleAuthCallback exchanges the auth code for a session, fires the
// welcome email on first signup confirmation (best-effort, logged only),
// and redirects.
func (s *WebServer) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleAuthCallback")
	ctx, span := tracer.Start(r.Context(), "handleAuthCallback")
	defer span.End()

	query := r.URL.Query()
	code := query.Get("code")
	next := query.Get("next")
	if next == "" {
		next = "/"
	}

	if code == "" {
		http.Redirect(w, r, "/auth/auth-code-error", http.StatusTemporaryRedirect)
		return
	}

	verifier := ""
	if cookie, err := r.Cookie(verifierCookieName); err == nil {
		verifier = cookie.Value
	}

	session, err := s.auth.ExchangeCode(ctx, code, verifier)
	if err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[WebServer] Auth code exchange failed", zap.Error(err))
		http.Redirect(w, r, "/auth/auth-code-error", http.StatusTemporaryRedirect)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if query.Get("type") == "signup" {
		if session.User.Email == "" {
			s.logger.Logger(ctx).Error("[WebServer] Could not determine user email after signup confirmation")
		} else if _, err := s.email.SendWelcome(ctx, session.User.Email); err != nil {
			s.logger.Logger(ctx).Error("[WebServer] Welcome email send failed", zap.Error(err))
		}
	}

	http.Redirect(w, r, next, http.StatusTemporaryRedirect)
}

func (s *WebServer) handleSignOut(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webserver/handleSignOut")
	ctx, span := tracer.Start(r.Context(), "handleSignOut")
	defer span.End()

	if token := s.bearerToken(r); token != "" {
		if err := s.auth.SignOut(ctx, token); err != nil {
			s.logger.Logger(ctx).Warn("[WebServer] Server signout failed", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
}
