package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"partnerportal/logger"
	"partnerportal/portal"
	"time"

	_ "github.com/lib/pq"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type DatabaseConnectProps struct {
	Logger *logger.LogMiddleware
}

type Database struct {
	Queries
	logger *logger.LogMiddleware
}

func Connect(ctx context.Context, args DatabaseConnectProps) *Database {
	tracer := otel.Tracer("postgres/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	connectRetries := 5
	var conn *sql.DB
	var err error
	var connStr string

	logger := args.Logger.Logger(ctx)

	for connectRetries > 0 {
		conn, err, connStr = getConnection(ctx)
		if err == nil {
			logger.Info("[Postgres] Database client started")
			break
		}
		connectRetries -= 1
		sleepTime := 5
		logger.Error(
			"[Postgres] Could not connect to Postgres. Retrying after sleeping.",
			zap.Error(err),
			zap.Int("Retries Left", connectRetries),
			zap.Int("Sleep Time", sleepTime),
			zap.String("Connection String", connStr))
		time.Sleep(time.Second * time.Duration(sleepTime))
	}

	if connectRetries <= 0 {
		logger.Error("[Postgres] Failed to Connect to Postgres")
		span.RecordError(fmt.Errorf("failed to connect to Postgres"))
		os.Exit(1)
	}

	queries := New(conn)
	return &Database{Queries: *queries, logger: args.Logger}
}

func getConnection(ctx context.Context) (*sql.DB, error, string) {
	tracer := otel.Tracer("postgres/getConnection")
	_, span := tracer.Start(ctx, "getConnection")
	defer span.End()

	host := os.Getenv("POSTGRES_DB_HOST")
	port := os.Getenv("POSTGRES_DB_PORT")
	user := os.Getenv("POSTGRES_DB_USER")
	password := os.Getenv("POSTGRES_DB_PASS")
	dbname := os.Getenv("POSTGRES_DB_NAME")

	sslMode := "disable"

	postgresqlDbInfo := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslMode,
	)

	db, err := sql.Open("postgres", postgresqlDbInfo)
	if err != nil {
		span.RecordError(err)
		return nil, err, postgresqlDbInfo
	}
	err = db.Ping()
	if err != nil {
		span.RecordError(err)
		return nil, err, postgresqlDbInfo
	}

	return db, nil, ""
}

// PlanDetails is the JSONB payload persisted per user in training_plans.
// The field names match the wire shape the portal clients exchange.
type PlanDetails struct {
	RecommendedTrainings []portal.TrainingItem `json:"recommendedTrainings"`
	HoursPerDay          int                   `json:"hoursPerDay"`
	IncludeWeekends      bool                  `json:"includeWeekends"`
	PlanSummary          string                `json:"planSummary,omitempty"`
}

type StoredAssessment struct {
	Answers     map[string]string
	SubmittedAt time.Time
}

type SaveProfileRoleProps struct {
	UserID string
	Role   string
}

func (d *Database) SaveProfileRole(ctx context.Context, args SaveProfileRoleProps) (*Profile, error) {
	tracer := otel.Tracer("postgres/SaveProfileRole")
	ctx, span := tracer.Start(ctx, "SaveProfileRole")
	defer span.End()

	profile, err := d.Queries.UpsertProfileRole(ctx, UpsertProfileRoleParams{
		ID:   args.UserID,
		Role: args.Role,
	})
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not save profile role",
			zap.Error(err),
			zap.String("user_id", args.UserID),
		)
		span.RecordError(err)
		return nil, fmt.Errorf("could not save profile role")
	}

	return &profile, nil
}

// GetProfileRole returns the persona label for a user, or "" when the user
// has not selected a role yet.
func (d *Database) GetProfileRole(ctx context.Context, userID string) (string, error) {
	tracer := otel.Tracer("postgres/GetProfileRole")
	ctx, span := tracer.Start(ctx, "GetProfileRole")
	defer span.End()

	profile, err := d.Queries.GetProfile(ctx, userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not fetch profile",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		span.RecordError(err)
		return "", fmt.Errorf("could not fetch profile")
	}

	return profile.Role.String, nil
}

type SaveAssessmentProps struct {
	UserID  string
	Answers map[string]string
}

// SaveAssessment overwrites the user's submission wholesale in one upsert.
// No history is kept.
func (d *Database) SaveAssessment(ctx context.Context, args SaveAssessmentProps) (*Assessment, error) {
	tracer := otel.Tracer("postgres/SaveAssessment")
	ctx, span := tracer.Start(ctx, "SaveAssessment")
	defer span.End()

	raw, err := json.Marshal(args.Answers)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("could not encode answers")
	}

	assessment, err := d.Queries.UpsertAssessment(ctx, UpsertAssessmentParams{
		UserID:      args.UserID,
		Answers:     raw,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not save assessment",
			zap.Error(err),
			zap.String("user_id", args.UserID),
			zap.Int("answer_count", len(args.Answers)),
		)
		span.RecordError(err)
		return nil, fmt.Errorf("could not save assessment")
	}

	return &assessment, nil
}

// GetLatestAssessment returns the user's current submission, or nil when
// none exists.
func (d *Database) GetLatestAssessment(ctx context.Context, userID string) (*StoredAssessment, error) {
	tracer := otel.Tracer("postgres/GetLatestAssessment")
	ctx, span := tracer.Start(ctx, "GetLatestAssessment")
	defer span.End()

	row, err := d.Queries.GetAssessment(ctx, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not fetch assessment",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		span.RecordError(err)
		return nil, fmt.Errorf("could not fetch assessment")
	}

	answers := map[string]string{}
	if len(row.Answers) > 0 {
		if err := json.Unmarshal(row.Answers, &answers); err != nil {
			d.logger.Logger(ctx).Error(
				"[Postgres] Could not decode stored answers",
				zap.Error(err),
				zap.String("user_id", userID),
			)
			span.RecordError(err)
			return nil, fmt.Errorf("could not decode stored answers")
		}
	}

	return &StoredAssessment{Answers: answers, SubmittedAt: row.SubmittedAt}, nil
}

type SaveTrainingPlanProps struct {
	UserID  string
	Details PlanDetails
}

func (d *Database) SaveTrainingPlan(ctx context.Context, args SaveTrainingPlanProps) (*TrainingPlanRow, error) {
	tracer := otel.Tracer("postgres/SaveTrainingPlan")
	ctx, span := tracer.Start(ctx, "SaveTrainingPlan")
	defer span.End()

	raw, err := json.Marshal(args.Details)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("could not encode plan details")
	}

	row, err := d.Queries.UpsertTrainingPlan(ctx, UpsertTrainingPlanParams{
		UserID:      args.UserID,
		PlanDetails: raw,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not save training plan",
			zap.Error(err),
			zap.String("user_id", args.UserID),
		)
		span.RecordError(err)
		return nil, fmt.Errorf("could not save training plan")
	}

	return &row, nil
}

// GetLatestTrainingPlan returns the user's current plan details, or nil
// when no plan has been saved.
func (d *Database) GetLatestTrainingPlan(ctx context.Context, userID string) (*PlanDetails, error) {
	tracer := otel.Tracer("postgres/GetLatestTrainingPlan")
	ctx, span := tracer.Start(ctx, "GetLatestTrainingPlan")
	defer span.End()

	row, err := d.Queries.GetTrainingPlan(ctx, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not fetch training plan",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		span.RecordError(err)
		return nil, fmt.Errorf("could not fetch training plan")
	}

	var details PlanDetails
	if err := json.Unmarshal(row.PlanDetails, &details); err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not decode stored plan details",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		span.RecordError(err)
		return nil, fmt.Errorf("could not decode stored plan details")
	}

	return &details, nil
}
