package model

import (
	"strings"
	"time"
)

// ContactStatus tracks the workflow state of a contact message.
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "New"
	ContactStatusReplied ContactStatus = "Replied"
	ContactStatusIgnored ContactStatus = "Ignored"
)

// Valid reports whether the contact status is supported.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusReplied, ContactStatusIgnored:
		return true
	default:
		return false
	}
}

// ParseContactStatus normalizes a status string and reports whether it is supported.
func ParseContactStatus(value string) (ContactStatus, bool) {
	for _, s := range []ContactStatus{ContactStatusNew, ContactStatusReplied, ContactStatusIgnored} {
		if strings.EqualFold(strings.TrimSpace(value), string(s)) {
			return s, true
		}
	}
	return "", false
}

// Reply is a single entry in a contact message's reply history.
// History is append-only; no transition removes entries.
type Reply struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID           string        `json:"id"                   db:"id"`
	Name         string        `json:"name"                 db:"name"`
	Email        string        `json:"email"                db:"email"`
	Subject      string        `json:"subject"              db:"subject"`
	Category     string        `json:"category"             db:"category"`
	Message      string        `json:"message"              db:"message"`
	Status       ContactStatus `json:"status"               db:"status"`
	RepliedAt    *time.Time    `json:"replied_at,omitempty" db:"replied_at"`
	ReplyHistory []Reply       `json:"reply_history"        db:"reply_history"`
	CreatedAt    time.Time     `json:"created_at"           db:"created_at"`
}

// CreateContactRequest carries a public contact form submission.
type CreateContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Validate checks required fields on a contact submission.
func (r *CreateContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return requiredFieldError("name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return requiredFieldError("email")
	}
	if strings.TrimSpace(r.Category) == "" {
		return requiredFieldError("category")
	}
	if strings.TrimSpace(r.Message) == "" {
		return requiredFieldError("message")
	}
	return nil
}

// CanTransitionTo reports whether the contact workflow allows moving from the
// current status to the target. Replied requires at least one appended reply,
// which the service enforces by only reaching Replied through ReplyAndMark.
func (s ContactStatus) CanTransitionTo(target ContactStatus) bool {
	switch s {
	case ContactStatusNew:
		return target == ContactStatusReplied || target == ContactStatusIgnored
	case ContactStatusIgnored:
		// Ignored is reversible back to New.
		return target == ContactStatusNew
	case ContactStatusReplied:
		return target == ContactStatusIgnored
	default:
		return false
	}
}
