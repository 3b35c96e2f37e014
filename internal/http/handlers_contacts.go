// Package httpx provides the JSON HTTP surface of the admin service.
package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/service"
)

// ContactHandlers provides HTTP handlers for contact message operations.
type ContactHandlers struct {
	Svc       *service.ContactService
	Dashboard *service.DashboardService
	Logger    *slog.Logger
}

// Submit handles the public contact form.
// POST /api/contact.
func (h *ContactHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Svc.Submit(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	h.invalidateDashboard(r)
	WriteJSON(w, http.StatusCreated, msg)
}

// List returns filtered contact messages, newest first.
// GET /api/admin/contacts.
func (h *ContactHandlers) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Svc.List(r.Context(), ParseContactFilter(r.URL.Query()))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []model.ContactMessage{}
	}
	WriteJSON(w, http.StatusOK, messages)
}

// Get returns a single contact message.
// GET /api/admin/contacts/{id}.
func (h *ContactHandlers) Get(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, msg)
}

// replyRequest is the reply form payload.
type replyRequest struct {
	Message string `json:"message"`
}

// Reply appends a reply to a message and emails it to the sender. When the
// email fails after the reply committed, the response still carries the
// updated message together with a warning.
// POST /api/admin/contacts/{id}/reply.
func (h *ContactHandlers) Reply(w http.ResponseWriter, r *http.Request) {
	var req replyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Svc.Reply(r.Context(), r.PathValue("id"), req.Message)
	if err != nil {
		if apperrors.IsNotification(err) {
			h.warnNotification(r, "reply email not delivered", err)
			h.invalidateDashboard(r)
			WriteJSON(w, http.StatusOK, map[string]any{
				"message": msg,
				"warning": "Reply saved, but the email could not be delivered.",
			})
			return
		}
		WriteServiceError(w, err)
		return
	}

	h.invalidateDashboard(r)
	WriteJSON(w, http.StatusOK, map[string]any{"message": msg})
}

// Ignore hides a message from the default inbox.
// POST /api/admin/contacts/{id}/ignore.
func (h *ContactHandlers) Ignore(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Ignore)
}

// Unignore restores an ignored message to the inbox.
// POST /api/admin/contacts/{id}/unignore.
func (h *ContactHandlers) Unignore(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Svc.Unignore)
}

// Delete permanently removes a message.
// DELETE /api/admin/contacts/{id}.
func (h *ContactHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, err)
		return
	}
	h.invalidateDashboard(r)
	w.WriteHeader(http.StatusNoContent)
}

type contactTransition func(ctx context.Context, id string) (model.ContactMessage, error)

func (h *ContactHandlers) transition(w http.ResponseWriter, r *http.Request, fn contactTransition) {
	msg, err := fn(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	h.invalidateDashboard(r)
	WriteJSON(w, http.StatusOK, msg)
}

func (h *ContactHandlers) invalidateDashboard(r *http.Request) {
	if h.Dashboard != nil {
		h.Dashboard.Invalidate(r.Context())
	}
}

func (h *ContactHandlers) warnNotification(r *http.Request, msg string, err error) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(r.Context(), msg, "error", err)
}
