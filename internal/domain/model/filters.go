package model

import (
	"strings"

	apperrors "github.com/lifewood/adminhub/internal/errors"
)

func requiredFieldError(field string) error {
	return apperrors.ValidationField(field, "Please fill in all required fields.")
}

// containsFold reports whether s contains substr, ignoring case. An empty
// needle matches everything; a missing haystack matches nothing.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ContactFilter narrows the contact inbox. Empty fields are inactive.
//
// Status handling gives OnlyIgnored precedence: when set, only Ignored
// messages match regardless of Status. A specific Status matches exactly.
// When neither is set, Ignored messages are hidden so the default inbox
// shows live conversations only; IncludeIgnored lifts that default for
// callers that want every status, such as the dashboard activity feed.
type ContactFilter struct {
	Status         ContactStatus
	Category       string
	Search         string
	OnlyIgnored    bool
	IncludeIgnored bool
}

// Match reports whether a single message passes the filter.
func (f ContactFilter) Match(m ContactMessage) bool {
	switch {
	case f.OnlyIgnored:
		if m.Status != ContactStatusIgnored {
			return false
		}
	case f.Status != "":
		if m.Status != f.Status {
			return false
		}
	default:
		if !f.IncludeIgnored && m.Status == ContactStatusIgnored {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(m.Category, f.Category) {
		return false
	}
	if f.Search != "" {
		needle := f.Search
		if !containsFold(m.Name, needle) &&
			!containsFold(m.Email, needle) &&
			!containsFold(m.Subject, needle) &&
			!containsFold(m.Message, needle) {
			return false
		}
	}
	return true
}

// Apply filters messages preserving their order. The input slice is not
// modified.
func (f ContactFilter) Apply(messages []ContactMessage) []ContactMessage {
	out := make([]ContactMessage, 0, len(messages))
	for _, m := range messages {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}

// ApplicantFilter narrows the applicant review list. Empty fields are
// inactive. Status matches exactly, Department ignores case, and Search is a
// case-insensitive substring match over name, email and applied title.
type ApplicantFilter struct {
	Status     ApplicantStatus
	Department string
	Search     string
}

// Match reports whether a single applicant passes the filter.
func (f ApplicantFilter) Match(a JobApplicant) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Department != "" && !strings.EqualFold(a.DepartmentApplied, f.Department) {
		return false
	}
	if f.Search != "" {
		needle := f.Search
		if !containsFold(a.FirstName, needle) &&
			!containsFold(a.LastName, needle) &&
			!containsFold(a.Email, needle) &&
			!containsFold(a.JobTitleApplied, needle) {
			return false
		}
	}
	return true
}

// Apply filters applicants preserving their order. The input slice is not
// modified.
func (f ApplicantFilter) Apply(applicants []JobApplicant) []JobApplicant {
	out := make([]JobApplicant, 0, len(applicants))
	for _, a := range applicants {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}
