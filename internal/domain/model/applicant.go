package model

import (
	"strings"
	"time"
)

// ApplicantStatus tracks the review state of a job applicant.
// Accepted and Rejected are terminal: the workflow exposes no transition back
// to Pending for an already-decided applicant.
type ApplicantStatus string

const (
	ApplicantStatusPending  ApplicantStatus = "Pending"
	ApplicantStatusAccepted ApplicantStatus = "Accepted"
	ApplicantStatusRejected ApplicantStatus = "Rejected"
)

// Valid reports whether the applicant status is supported.
func (s ApplicantStatus) Valid() bool {
	switch s {
	case ApplicantStatusPending, ApplicantStatusAccepted, ApplicantStatusRejected:
		return true
	default:
		return false
	}
}

// ParseApplicantStatus normalizes a status string and reports whether it is supported.
func ParseApplicantStatus(value string) (ApplicantStatus, bool) {
	for _, s := range []ApplicantStatus{ApplicantStatusPending, ApplicantStatusAccepted, ApplicantStatusRejected} {
		if strings.EqualFold(strings.TrimSpace(value), string(s)) {
			return s, true
		}
	}
	return "", false
}

// Decided reports whether the applicant has reached a terminal status.
func (s ApplicantStatus) Decided() bool {
	return s == ApplicantStatusAccepted || s == ApplicantStatusRejected
}

// CanTransitionTo reports whether the applicant workflow allows the move.
// Only Pending applicants can be decided.
func (s ApplicantStatus) CanTransitionTo(target ApplicantStatus) bool {
	return s == ApplicantStatusPending && target.Decided()
}

// JobApplicant is an application submitted through the public careers form.
type JobApplicant struct {
	ID                 string          `json:"id"                        db:"id"`
	FirstName          string          `json:"first_name"                db:"first_name"`
	LastName           string          `json:"last_name"                 db:"last_name"`
	Email              string          `json:"email"                     db:"email"`
	Age                *int            `json:"age,omitempty"             db:"age"`
	Degree             string          `json:"degree"                    db:"degree"`
	JobTitleApplied    string          `json:"job_title_applied"         db:"job_title_applied"`
	DepartmentApplied  string          `json:"department_applied"        db:"department_applied"`
	ExperienceYears    *int            `json:"experience_years,omitempty" db:"experience_years"`
	ResumePath         *string         `json:"resume_path,omitempty"     db:"resume_path"`
	AvailableStart     *time.Time      `json:"available_start,omitempty" db:"available_start"`
	AvailableEnd       *time.Time      `json:"available_end,omitempty"   db:"available_end"`
	Status             ApplicantStatus `json:"status"                    db:"status"`
	CreatedAt          time.Time       `json:"created_at"                db:"created_at"`
}

// FullName joins the applicant's first and last names, tolerating either
// being absent.
func (a JobApplicant) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}

// AppliedPosition returns the job title applied for, with a fallback used in
// outgoing email when the title is missing.
func (a JobApplicant) AppliedPosition() string {
	if t := strings.TrimSpace(a.JobTitleApplied); t != "" {
		return t
	}
	return "your applied position"
}

// CreateApplicantRequest carries a public job application submission.
type CreateApplicantRequest struct {
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	Age               *int       `json:"age,omitempty"`
	Degree            string     `json:"degree"`
	JobTitleApplied   string     `json:"job_title_applied"`
	DepartmentApplied string     `json:"department_applied"`
	ExperienceYears   *int       `json:"experience_years,omitempty"`
	ResumePath        *string    `json:"resume_path,omitempty"`
	AvailableStart    *time.Time `json:"available_start,omitempty"`
	AvailableEnd      *time.Time `json:"available_end,omitempty"`
}

// Validate checks required fields on a job application.
func (r *CreateApplicantRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return requiredFieldError("first_name")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return requiredFieldError("last_name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return requiredFieldError("email")
	}
	if strings.TrimSpace(r.JobTitleApplied) == "" {
		return requiredFieldError("job_title_applied")
	}
	return nil
}
