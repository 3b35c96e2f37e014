package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lifewood/adminhub/internal/domain/model"
	"github.com/lifewood/adminhub/internal/domain/stats"
	"github.com/lifewood/adminhub/internal/ports"
)

const (
	dashboardCacheKey = "dashboard:overview"
	dashboardCacheTTL = time.Minute

	// chartWindowDays is the trailing window shown on the per-day charts.
	chartWindowDays = 7

	latestLimit = 5
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Contacts   ports.ContactRepo
	Applicants ports.ApplicantRepo
	Jobs       ports.JobRepo
	Cache      ports.Cache
	Clock      func() time.Time
}

// DashboardService assembles the admin dashboard snapshot: record counts,
// the most recent entries, and chart series. Snapshots are cached briefly
// so a dashboard refresh does not hammer the database.
type DashboardService struct {
	contacts   ports.ContactRepo
	applicants ports.ApplicantRepo
	jobs       ports.JobRepo
	cache      ports.Cache
	clock      func() time.Time
	logger     *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &DashboardService{
		contacts:   opts.Contacts,
		applicants: opts.Applicants,
		jobs:       opts.Jobs,
		cache:      opts.Cache,
		clock:      clock,
		logger:     slog.Default().With("component", "dashboard"),
	}
}

// Overview is the full dashboard snapshot.
type Overview struct {
	ContactCounts   map[model.ContactStatus]int   `json:"contact_counts"`
	ApplicantCounts map[model.ApplicantStatus]int `json:"applicant_counts"`
	JobListingCount int                           `json:"job_listing_count"`

	LatestContacts   []model.ContactMessage `json:"latest_contacts"`
	LatestApplicants []model.JobApplicant   `json:"latest_applicants"`

	ContactsByDay    []stats.Bucket `json:"contacts_by_day"`
	ApplicantsByDay  []stats.Bucket `json:"applicants_by_day"`
	ApplicantsByWeek []stats.Bucket `json:"applicants_by_week"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Overview returns the dashboard snapshot, served from cache when a recent
// one exists. Cache failures fall through to a fresh build.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	if cached, err := s.cache.Get(ctx, dashboardCacheKey); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache read failed", "err", err)
	} else if cached != nil {
		var out Overview
		if unmarshalErr := json.Unmarshal(cached, &out); unmarshalErr == nil {
			return &out, nil
		}
		s.logger.WarnContext(ctx, "dashboard cache entry unreadable, rebuilding")
	}

	out, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(out); marshalErr == nil {
		if cacheErr := s.cache.Set(ctx, dashboardCacheKey, data, dashboardCacheTTL); cacheErr != nil {
			s.logger.WarnContext(ctx, "dashboard cache write failed", "err", cacheErr)
		}
	}
	return out, nil
}

// Invalidate drops the cached snapshot so the next Overview call rebuilds.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if _, err := s.cache.Delete(ctx, dashboardCacheKey); err != nil {
		s.logger.WarnContext(ctx, "dashboard cache invalidation failed", "err", err)
	}
}

// build fans the independent queries out and assembles the snapshot.
func (s *DashboardService) build(ctx context.Context) (*Overview, error) {
	out := &Overview{GeneratedAt: s.clock().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.contacts.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("contact counts: %w", err)
		}
		out.ContactCounts = counts
		return nil
	})
	g.Go(func() error {
		counts, err := s.applicants.CountByStatus(gctx)
		if err != nil {
			return fmt.Errorf("applicant counts: %w", err)
		}
		out.ApplicantCounts = counts
		return nil
	})
	g.Go(func() error {
		n, err := s.jobs.Count(gctx)
		if err != nil {
			return fmt.Errorf("job listing count: %w", err)
		}
		out.JobListingCount = n
		return nil
	})
	g.Go(func() error {
		// Recent activity spans every status, Ignored included.
		messages, err := s.contacts.List(gctx, model.ContactFilter{IncludeIgnored: true})
		if err != nil {
			return fmt.Errorf("latest contacts: %w", err)
		}
		out.LatestContacts = head(messages, latestLimit)
		return nil
	})
	g.Go(func() error {
		applicants, err := s.applicants.List(gctx, model.ApplicantFilter{})
		if err != nil {
			return fmt.Errorf("latest applicants: %w", err)
		}
		out.LatestApplicants = head(applicants, latestLimit)
		return nil
	})
	g.Go(func() error {
		timestamps, err := s.contacts.CreatedTimestamps(gctx)
		if err != nil {
			return fmt.Errorf("contact timestamps: %w", err)
		}
		out.ContactsByDay = stats.BucketByDay(timestamps, chartWindowDays, s.clock())
		return nil
	})
	g.Go(func() error {
		timestamps, err := s.applicants.CreatedTimestamps(gctx)
		if err != nil {
			return fmt.Errorf("applicant timestamps: %w", err)
		}
		out.ApplicantsByDay = stats.BucketByDay(timestamps, chartWindowDays, s.clock())
		out.ApplicantsByWeek = stats.BucketByWeek(timestamps)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
