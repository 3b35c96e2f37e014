package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/lifewood/adminhub/internal/domain/model"
	"github.com/lifewood/adminhub/internal/ports"
)

// Outbound email bodies. Kept deliberately plain so they render the same in
// every client the admins have seen replies bounce from.
var (
	replyTmpl = template.Must(template.New("reply").Parse(`<p>Hi {{.Name}},</p>
<p>{{.Reply}}</p>
<p>You wrote:</p>
<blockquote>{{.Original}}</blockquote>
<p>Best regards,<br>The Lifewood Team</p>`))

	acceptedTmpl = template.Must(template.New("accepted").Parse(`<p>Dear {{.Name}},</p>
<p>Congratulations! We are pleased to inform you that your application for the position of <strong>{{.Position}}</strong> has been accepted.</p>
<p>Our team will reach out shortly with the next steps.</p>
<p>Best regards,<br>The Lifewood Recruitment Team</p>`))

	rejectedTmpl = template.Must(template.New("rejected").Parse(`<p>Dear {{.Name}},</p>
<p>Thank you for your interest in the position of <strong>{{.Position}}</strong>. After careful consideration, we regret to inform you that we will not be moving forward with your application at this time.</p>
<p>We encourage you to apply for future openings that match your skills.</p>
<p>Best regards,<br>The Lifewood Recruitment Team</p>`))
)

// BuildReplyMail renders the email sent when an admin replies to a contact
// message.
func BuildReplyMail(msg model.ContactMessage, reply string) (ports.Mail, error) {
	var buf bytes.Buffer
	err := replyTmpl.Execute(&buf, struct {
		Name     string
		Reply    string
		Original string
	}{
		Name:     msg.Name,
		Reply:    reply,
		Original: msg.Message,
	})
	if err != nil {
		return ports.Mail{}, fmt.Errorf("render reply mail: %w", err)
	}
	return ports.Mail{
		To:      msg.Email,
		Subject: "Re: " + msg.Subject,
		HTML:    buf.String(),
	}, nil
}

// BuildDecisionMail renders the acceptance or rejection email for an
// applicant. The template is chosen purely by the applicant's status.
func BuildDecisionMail(applicant model.JobApplicant) (ports.Mail, error) {
	var tmpl *template.Template
	var subject string
	switch applicant.Status {
	case model.ApplicantStatusAccepted:
		tmpl = acceptedTmpl
		subject = "Your Lifewood application has been accepted"
	case model.ApplicantStatusRejected:
		tmpl = rejectedTmpl
		subject = "Update on your Lifewood application"
	default:
		return ports.Mail{}, fmt.Errorf("no decision mail for status %q", applicant.Status)
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Name     string
		Position string
	}{
		Name:     applicant.FullName(),
		Position: applicant.AppliedPosition(),
	})
	if err != nil {
		return ports.Mail{}, fmt.Errorf("render decision mail: %w", err)
	}
	return ports.Mail{
		To:      applicant.Email,
		Subject: subject,
		HTML:    buf.String(),
	}, nil
}
