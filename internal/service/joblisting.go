package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/ports"
)

// JobListingServiceOptions groups dependencies for JobListingService.
type JobListingServiceOptions struct {
	Repo ports.JobRepo
}

// JobListingService manages openings shown on the public careers page.
type JobListingService struct {
	repo ports.JobRepo
}

// NewJobListingService constructs a new JobListingService.
func NewJobListingService(opts JobListingServiceOptions) *JobListingService {
	return &JobListingService{repo: opts.Repo}
}

// Publish validates and stores a new job listing.
func (s *JobListingService) Publish(ctx context.Context, req *model.CreateJobListingRequest) (model.JobListing, error) {
	if req == nil {
		return model.JobListing{}, apperrors.Validation("job listing request is required")
	}
	if err := req.Validate(); err != nil {
		return model.JobListing{}, err
	}

	listing, err := s.repo.Create(ctx, model.JobListing{
		Title:       strings.TrimSpace(req.Title),
		Department:  strings.TrimSpace(req.Department),
		Location:    strings.TrimSpace(req.Location),
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return model.JobListing{}, fmt.Errorf("create job listing: %w", err)
	}
	return listing, nil
}

// Get retrieves a single job listing.
func (s *JobListingService) Get(ctx context.Context, id string) (model.JobListing, error) {
	return s.repo.Get(ctx, id)
}

// List returns all listings newest first.
func (s *JobListingService) List(ctx context.Context) ([]model.JobListing, error) {
	return s.repo.List(ctx)
}

// Delete removes a listing. Existing applications are unaffected.
func (s *JobListingService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
