package ports

// Package ports defines interfaces (hexagonal ports) for persistence and
// outbound integrations. Implementations live in internal/data and
// internal/adapters; orchestration in internal/service.

import (
	"context"
	"io"
	"time"

	domainauth "github.com/lifewood/adminhub/internal/domain/auth"
	"github.com/lifewood/adminhub/internal/domain/model"
)

// ContactRepo persists contact messages and their reply history.
type ContactRepo interface {
	Create(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error)
	Get(ctx context.Context, id string) (model.ContactMessage, error)
	// List returns messages newest first. Status and category predicates are
	// applied at the store; free-text search happens in the service.
	List(ctx context.Context, filter model.ContactFilter) ([]model.ContactMessage, error)
	// AppendReply stores a reply entry and the message's new status in one
	// statement so a crash cannot split history from state.
	AppendReply(ctx context.Context, id string, reply model.Reply, status model.ContactStatus) (model.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[model.ContactStatus]int, error)
	// CreatedTimestamps returns creation times of all messages, for chart bucketing.
	CreatedTimestamps(ctx context.Context) ([]time.Time, error)
}

// ApplicantRepo persists job applicants.
type ApplicantRepo interface {
	Create(ctx context.Context, applicant model.JobApplicant) (model.JobApplicant, error)
	Get(ctx context.Context, id string) (model.JobApplicant, error)
	List(ctx context.Context, filter model.ApplicantFilter) ([]model.JobApplicant, error)
	UpdateStatus(ctx context.Context, id string, status model.ApplicantStatus) (model.JobApplicant, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[model.ApplicantStatus]int, error)
	CreatedTimestamps(ctx context.Context) ([]time.Time, error)
}

// JobRepo persists published job listings.
type JobRepo interface {
	Create(ctx context.Context, listing model.JobListing) (model.JobListing, error)
	Get(ctx context.Context, id string) (model.JobListing, error)
	List(ctx context.Context) ([]model.JobListing, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// SessionStore persists and retrieves admin sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// Mail is a single outbound message.
type Mail struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers outbound email. Implementations must be safe to call
// after the triggering state change has been persisted; failures are
// reported but never roll that change back.
type Notifier interface {
	Send(ctx context.Context, mail Mail) error
}

// ResumeStore holds uploaded resume files.
type ResumeStore interface {
	// Save stores the file and returns the path later passed to Open/Delete.
	Save(ctx context.Context, filename string, contents io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// Cache is a byte cache with TTL semantics, used for dashboard snapshots.
type Cache interface {
	// Get returns the cached value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
}

// RateLimiter throttles repeated attempts per key inside a rolling window.
type RateLimiter interface {
	// Allow records an attempt for key and reports whether it is within the
	// limit.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the attempt count for key.
	Reset(ctx context.Context, key string) error
}
