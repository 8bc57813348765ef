package bootstrap

import (
	"context"
	"fmt"

	"forms-server/internal/config"
	"forms-server/internal/observability"
	"forms-server/internal/ratelimit"
	"forms-server/internal/store"

	analyticsHandler "forms-server/internal/analytics/handler"
	analyticsProcessor "forms-server/internal/analytics/processor"
	"forms-server/internal/auth/handler"
	"forms-server/internal/auth/processor"
	"forms-server/internal/clients/googleoauth"
	"forms-server/internal/clients/redis"
	formHandler "forms-server/internal/form/handler"
	formProcessor "forms-server/internal/form/processor"
	questionHandler "forms-server/internal/question/handler"
	questionProcessor "forms-server/internal/question/processor"
	submissionHandler "forms-server/internal/submission/handler"
	submissionProcessor "forms-server/internal/submission/processor"
	workspaceHandler "forms-server/internal/workspace/handler"
	workspaceProcessor "forms-server/internal/workspace/processor"

	"github.com/gin-gonic/gin"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Redis  *redis.Client
	Logger *observability.Logger

	// Handlers
	AuthHandler       handler.Handler
	WorkspaceHandler  workspaceHandler.Handler
	FormHandler       formHandler.Handler
	QuestionHandler   questionHandler.Handler
	SubmissionHandler submissionHandler.Handler
	AnalyticsHandler  analyticsHandler.Handler

	// PublicRateLimit guards the anonymous submission endpoints
	PublicRateLimit gin.HandlerFunc
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger, store.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := deps.Store.Ping(ctx); err != nil {
		deps.Store.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if cfg.Database.RunMigrations {
		if err := deps.Store.Migrate(ctx); err != nil {
			deps.Store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Redis backs the public rate limiter; without it every request is allowed
	deps.Redis, err = redis.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.WarnWithError(ctx, "redis unavailable, public rate limiting disabled", err)
		deps.Redis = nil
	}
	rateLimiter := ratelimit.NewService(deps.Redis, cfg.RateLimit.PublicRequestsPerMinute, logger)
	deps.PublicRateLimit = ratelimit.Middleware(rateLimiter, logger)

	// Initialize auth processor and handler
	var googleClient processor.GoogleOAuthClient
	if cfg.Auth.GoogleEnabled() {
		googleClient = googleoauth.NewClient(
			cfg.Auth.GoogleClientID,
			cfg.Auth.GoogleClientSecret,
			cfg.Auth.GoogleRedirectURI,
			logger,
		)
	}
	authProc := processor.New(&deps.Store, googleClient, processor.Config{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL,
	}, logger)
	deps.AuthHandler = handler.New(authProc, handler.CookieConfig{
		Secure: cfg.Auth.CookieSecure,
		MaxAge: cfg.Auth.TokenTTL,
	}, logger)

	// Initialize workspace processor and handler
	workspaceProc := workspaceProcessor.New(&deps.Store, logger)
	deps.WorkspaceHandler = workspaceHandler.New(workspaceProc, logger)

	// Initialize form processor and handler
	formProc := formProcessor.New(&deps.Store, logger)
	deps.FormHandler = formHandler.New(formProc, logger)

	// Initialize question processor and handler
	questionProc := questionProcessor.New(&deps.Store, logger)
	deps.QuestionHandler = questionHandler.New(questionProc, logger)

	// Initialize analytics processor and handler
	analyticsProc := analyticsProcessor.New(&deps.Store, logger)
	deps.AnalyticsHandler = analyticsHandler.New(analyticsProc, logger)

	// Completed submissions refresh the form's analytics
	submissionProc := submissionProcessor.New(&deps.Store, &analyticsProc, logger)
	deps.SubmissionHandler = submissionHandler.New(submissionProc, &formProc, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(context.Background(), "failed to close redis client", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(context.Background(), "failed to close database", err)
	}
}
