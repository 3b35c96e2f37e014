package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifewood/adminhub/internal/domain/model"
)

func TestBuildReplyMail(t *testing.T) {
	msg := model.ContactMessage{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Partnership inquiry",
		Message: "Do you work with agencies?",
	}

	mail, err := BuildReplyMail(msg, "Yes, we do.")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", mail.To)
	assert.Equal(t, "Re: Partnership inquiry", mail.Subject)
	assert.Contains(t, mail.HTML, "Hi Alice")
	assert.Contains(t, mail.HTML, "Yes, we do.")
	assert.Contains(t, mail.HTML, "Do you work with agencies?")
}

func TestBuildReplyMail_EscapesHTML(t *testing.T) {
	msg := model.ContactMessage{Name: "<script>x</script>", Email: "a@b.com", Subject: "s"}

	mail, err := BuildReplyMail(msg, "ok")
	require.NoError(t, err)
	assert.NotContains(t, mail.HTML, "<script>")
}

func TestBuildDecisionMail(t *testing.T) {
	base := model.JobApplicant{
		FirstName:       "Grace",
		LastName:        "Hopper",
		Email:           "grace@example.com",
		JobTitleApplied: "Data Engineer",
	}

	t.Run("accepted", func(t *testing.T) {
		applicant := base
		applicant.Status = model.ApplicantStatusAccepted

		mail, err := BuildDecisionMail(applicant)
		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", mail.To)
		assert.Contains(t, mail.Subject, "accepted")
		assert.Contains(t, mail.HTML, "Congratulations")
		assert.Contains(t, mail.HTML, "Data Engineer")
	})

	t.Run("rejected", func(t *testing.T) {
		applicant := base
		applicant.Status = model.ApplicantStatusRejected

		mail, err := BuildDecisionMail(applicant)
		require.NoError(t, err)
		assert.Contains(t, mail.HTML, "regret")
		assert.Contains(t, mail.HTML, "Grace Hopper")
	})

	t.Run("no title falls back to generic position", func(t *testing.T) {
		applicant := base
		applicant.Status = model.ApplicantStatusAccepted
		applicant.JobTitleApplied = ""

		mail, err := BuildDecisionMail(applicant)
		require.NoError(t, err)
		assert.Contains(t, mail.HTML, "your applied position")
	})

	t.Run("pending has no decision mail", func(t *testing.T) {
		applicant := base
		applicant.Status = model.ApplicantStatusPending

		_, err := BuildDecisionMail(applicant)
		require.Error(t, err)
	})
}
