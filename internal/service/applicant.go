package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/ports"
)

// ApplicantServiceOptions groups dependencies for ApplicantService.
type ApplicantServiceOptions struct {
	Repo     ports.ApplicantRepo
	Notifier ports.Notifier
	Resumes  ports.ResumeStore
}

// ApplicantService manages the applicant review workflow: intake from the
// public careers form, admin review, and accept/reject decisions.
type ApplicantService struct {
	repo     ports.ApplicantRepo
	notifier ports.Notifier
	resumes  ports.ResumeStore
	logger   *slog.Logger
}

// NewApplicantService constructs a new ApplicantService.
func NewApplicantService(opts ApplicantServiceOptions) *ApplicantService {
	return &ApplicantService{
		repo:     opts.Repo,
		notifier: opts.Notifier,
		resumes:  opts.Resumes,
		logger:   slog.Default().With("component", "applicants"),
	}
}

// Apply stores a new job application from the public careers form.
func (s *ApplicantService) Apply(ctx context.Context, req *model.CreateApplicantRequest) (model.JobApplicant, error) {
	if req == nil {
		return model.JobApplicant{}, apperrors.Validation("application request is required")
	}
	if err := req.Validate(); err != nil {
		return model.JobApplicant{}, err
	}

	applicant, err := s.repo.Create(ctx, model.JobApplicant{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Age:               req.Age,
		Degree:            req.Degree,
		JobTitleApplied:   req.JobTitleApplied,
		DepartmentApplied: req.DepartmentApplied,
		ExperienceYears:   req.ExperienceYears,
		ResumePath:        req.ResumePath,
		AvailableStart:    req.AvailableStart,
		AvailableEnd:      req.AvailableEnd,
		Status:            model.ApplicantStatusPending,
	})
	if err != nil {
		return model.JobApplicant{}, fmt.Errorf("create applicant: %w", err)
	}
	return applicant, nil
}

// Get retrieves a single applicant.
func (s *ApplicantService) Get(ctx context.Context, id string) (model.JobApplicant, error) {
	return s.repo.Get(ctx, id)
}

// List returns filtered applicants newest first. Status and department are
// resolved by the store; the free-text search runs here over name, email,
// and applied title.
func (s *ApplicantService) List(ctx context.Context, filter model.ApplicantFilter) ([]model.JobApplicant, error) {
	applicants, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" {
		return applicants, nil
	}
	search := model.ApplicantFilter{Search: filter.Search}
	return search.Apply(applicants), nil
}

// Accept marks a pending applicant as accepted and emails the decision.
func (s *ApplicantService) Accept(ctx context.Context, id string) (model.JobApplicant, error) {
	return s.decide(ctx, id, model.ApplicantStatusAccepted)
}

// Reject marks a pending applicant as rejected and emails the decision.
func (s *ApplicantService) Reject(ctx context.Context, id string) (model.JobApplicant, error) {
	return s.decide(ctx, id, model.ApplicantStatusRejected)
}

// decide persists the status change first, then sends the decision email
// exactly once. A delivery failure is reported as a notification error but
// the decision stands; it is never rolled back or retried here.
func (s *ApplicantService) decide(ctx context.Context, id string, target model.ApplicantStatus) (model.JobApplicant, error) {
	applicant, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.JobApplicant{}, err
	}
	if !applicant.Status.CanTransitionTo(target) {
		return model.JobApplicant{}, apperrors.Conflict(
			fmt.Sprintf("applicant is already %s", applicant.Status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, target)
	if err != nil {
		return model.JobApplicant{}, fmt.Errorf("update applicant status: %w", err)
	}

	mailMsg, err := BuildDecisionMail(updated)
	if err != nil {
		return updated, apperrors.Notification(err, "build decision email")
	}
	if sendErr := s.notifier.Send(ctx, mailMsg); sendErr != nil {
		return updated, apperrors.Notification(sendErr, "send decision email")
	}
	return updated, nil
}

// Delete removes an applicant. The stored resume is removed best-effort; a
// failure there is logged and does not fail the delete.
func (s *ApplicantService) Delete(ctx context.Context, id string) error {
	applicant, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if deleteErr := s.repo.Delete(ctx, id); deleteErr != nil {
		return deleteErr
	}
	if applicant.ResumePath != nil && *applicant.ResumePath != "" {
		if resumeErr := s.resumes.Delete(ctx, *applicant.ResumePath); resumeErr != nil {
			s.logger.WarnContext(ctx, "failed to delete resume file",
				"applicant_id", id, "path", *applicant.ResumePath, "err", resumeErr)
		}
	}
	return nil
}

// ResumeFile is an opened resume ready for streaming to the admin.
type ResumeFile struct {
	Path   string
	Reader io.ReadCloser
}

// OpenResume returns the stored resume file for an applicant.
func (s *ApplicantService) OpenResume(ctx context.Context, id string) (ResumeFile, error) {
	applicant, err := s.repo.Get(ctx, id)
	if err != nil {
		return ResumeFile{}, err
	}
	if applicant.ResumePath == nil || *applicant.ResumePath == "" {
		return ResumeFile{}, apperrors.NotFound("applicant has no resume on file")
	}
	reader, err := s.resumes.Open(ctx, *applicant.ResumePath)
	if err != nil {
		return ResumeFile{}, err
	}
	return ResumeFile{Path: *applicant.ResumePath, Reader: reader}, nil
}

// StoreResume saves an uploaded resume and returns its store path.
func (s *ApplicantService) StoreResume(ctx context.Context, filename string, contents io.Reader) (string, error) {
	return s.resumes.Save(ctx, filename, contents)
}
