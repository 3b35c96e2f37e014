package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/lifewood/adminhub/config"
	"github.com/lifewood/adminhub/internal/adapters/redisstore"
	"github.com/lifewood/adminhub/internal/adapters/resendmail"
	"github.com/lifewood/adminhub/internal/adapters/resumestore"
	"github.com/lifewood/adminhub/internal/data"
	"github.com/lifewood/adminhub/internal/ports"
	"github.com/lifewood/adminhub/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Contacts   *service.ContactService
	Applicants *service.ApplicantService
	Jobs       *service.JobListingService
	Dashboard  *service.DashboardService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices constructs repositories, adapters, and services.
func BuildServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("config is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	contactRepo := data.NewContactRepo(deps.DB)
	applicantRepo := data.NewApplicantRepo(deps.DB)
	jobRepo := data.NewJobListingRepo(deps.DB)

	sessions := redisstore.NewSessionStore(deps.RedisClient)
	cache := redisstore.NewCache(deps.RedisClient)
	limiter := redisstore.NewRateLimiter(deps.RedisClient, redisstore.RateLimiterOptions{
		MaxAttempts: deps.Config.Auth.LoginMaxAttempts,
		Window:      deps.Config.Auth.LoginAttemptWindow,
	})

	notifier := buildNotifier(deps.Config.Mailer, logger)

	resumes, err := resumestore.NewFSStore(deps.Config.ResumeDir)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("open resume store: %w", err)
	}

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Sessions: sessions,
			Limiter:  limiter,
			Config:   deps.Config.Auth,
		}),
		Contacts: service.NewContactService(service.ContactServiceOptions{
			Repo:     contactRepo,
			Notifier: notifier,
		}),
		Applicants: service.NewApplicantService(service.ApplicantServiceOptions{
			Repo:     applicantRepo,
			Notifier: notifier,
			Resumes:  resumes,
		}),
		Jobs: service.NewJobListingService(service.JobListingServiceOptions{
			Repo: jobRepo,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Contacts:   contactRepo,
			Applicants: applicantRepo,
			Jobs:       jobRepo,
			Cache:      cache,
		}),
	}, nil
}

// buildNotifier returns the Resend mailer, or a logging no-op when no API
// key is configured.
func buildNotifier(cfg config.MailerConfig, logger *slog.Logger) ports.Notifier {
	if !cfg.Enabled() {
		logger.Warn("mailer disabled: no API key configured, outgoing email will be dropped")
		return resendmail.NopNotifier{Logger: logger}
	}
	return resendmail.NewMailer(resendmail.Options{Config: cfg, Logger: logger})
}
