package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/service"
)

// ApplicantHandlers provides HTTP handlers for the applicant review workflow.
type ApplicantHandlers struct {
	Svc       *service.ApplicantService
	Dashboard *service.DashboardService
	// MaxUploadBytes caps the size of resume uploads on the public form.
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// Apply handles the public careers form. The request is multipart so the
// resume can ride along; the file is optional.
// POST /api/applications.
func (h *ApplicantHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, ErrorParams{
				Code:    http.StatusRequestEntityTooLarge,
				ErrCode: "upload_too_large",
				Err:     errors.New("resume upload exceeds the size limit"),
			})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	req := applicationFromForm(r)

	if resumePath, ok, uploadErr := h.storeResume(r); uploadErr != nil {
		WriteServiceError(w, uploadErr)
		return
	} else if ok {
		req.ResumePath = &resumePath
	}

	applicant, err := h.Svc.Apply(r.Context(), req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.invalidateDashboard(r)
	WriteJSON(w, http.StatusCreated, applicant)
}

// List returns filtered applicants, newest first.
// GET /api/admin/applicants.
func (h *ApplicantHandlers) List(w http.ResponseWriter, r *http.Request) {
	applicants, err := h.Svc.List(r.Context(), ParseApplicantFilter(r.URL.Query()))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if applicants == nil {
		applicants = []model.JobApplicant{}
	}
	WriteJSON(w, http.StatusOK, applicants)
}

// Get returns a single applicant.
// GET /api/admin/applicants/{id}.
func (h *ApplicantHandlers) Get(w http.ResponseWriter, r *http.Request) {
	applicant, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, applicant)
}

// Accept marks a pending applicant as accepted.
// POST /api/admin/applicants/{id}/accept.
func (h *ApplicantHandlers) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Svc.Accept)
}

// Reject marks a pending applicant as rejected.
// POST /api/admin/applicants/{id}/reject.
func (h *ApplicantHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Svc.Reject)
}

// Delete removes an applicant and, best-effort, the stored resume.
// DELETE /api/admin/applicants/{id}.
func (h *ApplicantHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	h.invalidateDashboard(r)
	w.WriteHeader(http.StatusNoContent)
}

// Resume streams the applicant's stored resume file.
// GET /api/admin/applicants/{id}/resume.
func (h *ApplicantHandlers) Resume(w http.ResponseWriter, r *http.Request) {
	file, err := h.Svc.OpenResume(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	defer file.Reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(file.Path)+`"`)
	if _, copyErr := io.Copy(w, file.Reader); copyErr != nil {
		// Headers are out already; nothing left to report to the client.
		h.warn(r, "resume download interrupted", copyErr)
	}
}

type applicantDecision func(ctx context.Context, id string) (model.JobApplicant, error)

// decide runs an accept/reject transition. A notification failure after the
// decision committed still returns the updated applicant, with a warning.
func (h *ApplicantHandlers) decide(w http.ResponseWriter, r *http.Request, fn applicantDecision) {
	applicant, err := fn(r.Context(), r.PathValue("id"))
	if err != nil {
		if apperrors.IsNotification(err) {
			h.warn(r, "decision email not delivered", err)
			h.invalidateDashboard(r)
			WriteJSON(w, http.StatusOK, map[string]any{
				"applicant": applicant,
				"warning":   "Decision saved, but the email could not be delivered.",
			})
			return
		}
		WriteServiceError(w, err)
		return
	}

	h.invalidateDashboard(r)
	WriteJSON(w, http.StatusOK, map[string]any{"applicant": applicant})
}

// storeResume saves the uploaded resume, if any. The bool reports whether a
// file was present.
func (h *ApplicantHandlers) storeResume(r *http.Request) (string, bool, error) {
	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.ValidationField("resume", "The resume upload could not be read.")
	}
	defer file.Close()

	storedPath, err := h.Svc.StoreResume(r.Context(), header.Filename, file)
	if err != nil {
		return "", false, err
	}
	return storedPath, true, nil
}

// applicationFromForm assembles the application request from multipart form
// fields. Optional numeric and date fields are only set when parseable.
func applicationFromForm(r *http.Request) *model.CreateApplicantRequest {
	req := &model.CreateApplicantRequest{
		FirstName:         strings.TrimSpace(r.FormValue("first_name")),
		LastName:          strings.TrimSpace(r.FormValue("last_name")),
		Email:             strings.TrimSpace(r.FormValue("email")),
		Degree:            strings.TrimSpace(r.FormValue("degree")),
		JobTitleApplied:   strings.TrimSpace(r.FormValue("job_title_applied")),
		DepartmentApplied: strings.TrimSpace(r.FormValue("department_applied")),
	}

	if age, ok := parseOptionalInt(r.FormValue("age")); ok {
		req.Age = &age
	}
	if years, ok := parseOptionalInt(r.FormValue("experience_years")); ok {
		req.ExperienceYears = &years
	}
	if start, ok := parseOptionalDate(r.FormValue("available_start")); ok {
		req.AvailableStart = &start
	}
	if end, ok := parseOptionalDate(r.FormValue("available_end")); ok {
		req.AvailableEnd = &end
	}
	return req
}

func parseOptionalInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseOptionalDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (h *ApplicantHandlers) invalidateDashboard(r *http.Request) {
	if h.Dashboard != nil {
		h.Dashboard.Invalidate(r.Context())
	}
}

func (h *ApplicantHandlers) warn(r *http.Request, msg string, err error) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(r.Context(), msg, "error", err)
}
