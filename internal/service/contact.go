package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/ports"
)

// ContactServiceOptions groups dependencies for ContactService.
type ContactServiceOptions struct {
	Repo     ports.ContactRepo
	Notifier ports.Notifier
	Clock    func() time.Time
}

// ContactService manages the admin contact inbox: listing with filters,
// replying, and the ignore workflow.
type ContactService struct {
	repo     ports.ContactRepo
	notifier ports.Notifier
	clock    func() time.Time
}

// NewContactService constructs a new ContactService.
func NewContactService(opts ContactServiceOptions) *ContactService {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &ContactService{
		repo:     opts.Repo,
		notifier: opts.Notifier,
		clock:    clock,
	}
}

// Submit stores a new contact message from the public form.
func (s *ContactService) Submit(ctx context.Context, req *model.CreateContactRequest) (model.ContactMessage, error) {
	if req == nil {
		return model.ContactMessage{}, apperrors.Validation("contact request is required")
	}
	if err := req.Validate(); err != nil {
		return model.ContactMessage{}, err
	}

	msg, err := s.repo.Create(ctx, model.ContactMessage{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Subject:  strings.TrimSpace(req.Subject),
		Category: strings.TrimSpace(req.Category),
		Message:  strings.TrimSpace(req.Message),
		Status:   model.ContactStatusNew,
	})
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("create contact: %w", err)
	}
	return msg, nil
}

// Get retrieves a single contact message.
func (s *ContactService) Get(ctx context.Context, id string) (model.ContactMessage, error) {
	return s.repo.Get(ctx, id)
}

// List returns filtered messages newest first. Status and category are
// resolved by the store; the free-text search runs here over the fetched
// rows, matching name, email, subject, and body.
func (s *ContactService) List(ctx context.Context, filter model.ContactFilter) ([]model.ContactMessage, error) {
	messages, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Search == "" {
		return messages, nil
	}
	search := model.ContactFilter{Search: filter.Search, OnlyIgnored: filter.OnlyIgnored, Status: filter.Status}
	return search.Apply(messages), nil
}

// Reply sends a reply to a contact message. The reply is appended to the
// message's history and the status moved to Replied before any email goes
// out; a delivery failure leaves the stored reply in place and is reported
// as a notification error alongside the updated message.
func (s *ContactService) Reply(ctx context.Context, id, message string) (model.ContactMessage, error) {
	if strings.TrimSpace(message) == "" {
		return model.ContactMessage{}, apperrors.ValidationField("message", "Reply message cannot be empty.")
	}

	original, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.ContactMessage{}, err
	}

	reply := model.Reply{
		Message:   strings.TrimSpace(message),
		Timestamp: s.clock().UTC(),
	}
	updated, err := s.repo.AppendReply(ctx, id, reply, model.ContactStatusReplied)
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("append reply: %w", err)
	}

	mailMsg, err := BuildReplyMail(original, reply.Message)
	if err != nil {
		return updated, apperrors.Notification(err, "build reply email")
	}
	if sendErr := s.notifier.Send(ctx, mailMsg); sendErr != nil {
		return updated, apperrors.Notification(sendErr, "send reply email")
	}
	return updated, nil
}

// Ignore hides a message from the default inbox.
func (s *ContactService) Ignore(ctx context.Context, id string) (model.ContactMessage, error) {
	return s.transition(ctx, id, model.ContactStatusIgnored)
}

// Unignore restores an ignored message to the default inbox as New.
func (s *ContactService) Unignore(ctx context.Context, id string) (model.ContactMessage, error) {
	return s.transition(ctx, id, model.ContactStatusNew)
}

func (s *ContactService) transition(ctx context.Context, id string, target model.ContactStatus) (model.ContactMessage, error) {
	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.ContactMessage{}, err
	}
	if msg.Status == target {
		return msg, nil
	}
	if !msg.Status.CanTransitionTo(target) {
		return model.ContactMessage{}, apperrors.Conflict(
			fmt.Sprintf("cannot move message from %s to %s", msg.Status, target))
	}
	return s.repo.UpdateStatus(ctx, id, target)
}

// Delete permanently removes a contact message and its reply history.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
