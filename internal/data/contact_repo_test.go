package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/testutil"
)

func createTestContact(t *testing.T, db *sql.DB, name string, status model.ContactStatus) model.ContactMessage {
	t.Helper()
	repo := NewContactRepo(db)
	msg, err := repo.Create(context.Background(), model.ContactMessage{
		Name:     name,
		Email:    name + "@example.com",
		Subject:  "Test subject",
		Category: "Business",
		Message:  "Test message body",
		Status:   status,
	})
	require.NoError(t, err)
	return msg
}

func TestContactRepo_CreateAndGet(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		created := createTestContact(t, db, "alice", "")

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, model.ContactStatusNew, created.Status)
		assert.Empty(t, created.ReplyHistory)

		got, err := repo.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "alice@example.com", got.Email)
	})
}

func TestContactRepo_Get_NotFound(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		_, err := repo.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestContactRepo_List_DefaultHidesIgnored(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		createTestContact(t, db, "alice", model.ContactStatusNew)
		createTestContact(t, db, "bob", model.ContactStatusReplied)
		createTestContact(t, db, "spam", model.ContactStatusIgnored)

		got, err := repo.List(context.Background(), model.ContactFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		ignored, err := repo.List(context.Background(), model.ContactFilter{OnlyIgnored: true})
		require.NoError(t, err)
		require.Len(t, ignored, 1)
		assert.Equal(t, "spam", ignored[0].Name)

		all, err := repo.List(context.Background(), model.ContactFilter{IncludeIgnored: true})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestContactRepo_List_CategoryIgnoresCase(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		createTestContact(t, db, "alice", model.ContactStatusNew)

		got, err := repo.List(context.Background(), model.ContactFilter{Category: "business"})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = repo.List(context.Background(), model.ContactFilter{Category: "Careers"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestContactRepo_List_NewestFirst(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewContactRepoWithTimeProvider(db, tp)

		first, err := repo.Create(context.Background(), model.ContactMessage{
			Name: "older", Email: "older@example.com", Subject: "s", Message: "m",
		})
		require.NoError(t, err)
		tp.AddTime(time.Hour)
		second, err := repo.Create(context.Background(), model.ContactMessage{
			Name: "newer", Email: "newer@example.com", Subject: "s", Message: "m",
		})
		require.NoError(t, err)

		got, err := repo.List(context.Background(), model.ContactFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
	})
}

func TestContactRepo_AppendReply(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		created := createTestContact(t, db, "alice", "")

		reply := model.Reply{Message: "Thanks for reaching out.", Timestamp: testutil.TestTime()}
		updated, err := repo.AppendReply(context.Background(), created.ID, reply, model.ContactStatusReplied)
		require.NoError(t, err)

		assert.Equal(t, model.ContactStatusReplied, updated.Status)
		require.NotNil(t, updated.RepliedAt)
		require.Len(t, updated.ReplyHistory, 1)
		assert.Equal(t, "Thanks for reaching out.", updated.ReplyHistory[0].Message)

		// A second reply appends, never overwrites.
		updated, err = repo.AppendReply(context.Background(), created.ID,
			model.Reply{Message: "Following up.", Timestamp: testutil.TestTime().Add(time.Hour)},
			model.ContactStatusReplied)
		require.NoError(t, err)
		require.Len(t, updated.ReplyHistory, 2)
		assert.Equal(t, "Thanks for reaching out.", updated.ReplyHistory[0].Message)
	})
}

func TestContactRepo_UpdateStatus_AndDelete(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		created := createTestContact(t, db, "alice", "")

		updated, err := repo.UpdateStatus(context.Background(), created.ID, model.ContactStatusIgnored)
		require.NoError(t, err)
		assert.Equal(t, model.ContactStatusIgnored, updated.Status)

		require.NoError(t, repo.Delete(context.Background(), created.ID))

		err = repo.Delete(context.Background(), created.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestContactRepo_CountByStatus(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		createTestContact(t, db, "a", model.ContactStatusNew)
		createTestContact(t, db, "b", model.ContactStatusNew)
		createTestContact(t, db, "c", model.ContactStatusIgnored)

		counts, err := repo.CountByStatus(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, counts[model.ContactStatusNew])
		assert.Equal(t, 1, counts[model.ContactStatusIgnored])
	})
}

func TestContactRepo_CreatedTimestamps(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewContactRepo(db)
		createTestContact(t, db, "a", model.ContactStatusNew)
		createTestContact(t, db, "b", model.ContactStatusIgnored)

		timestamps, err := repo.CreatedTimestamps(context.Background())
		require.NoError(t, err)
		assert.Len(t, timestamps, 2, "ignored rows still count toward charts")
	})
}

func TestBuildContactListQuery(t *testing.T) {
	query, args := buildContactListQuery(model.ContactFilter{})
	assert.Contains(t, query, "status <> $1")
	assert.Equal(t, []any{model.ContactStatusIgnored}, args)

	query, args = buildContactListQuery(model.ContactFilter{Status: model.ContactStatusReplied, OnlyIgnored: true})
	assert.Contains(t, query, "status = $1")
	assert.Equal(t, []any{model.ContactStatusIgnored}, args, "ignored-only wins over a specific status")

	query, args = buildContactListQuery(model.ContactFilter{Status: model.ContactStatusNew, Category: "Business"})
	assert.Contains(t, query, "status = $1")
	assert.Contains(t, query, "LOWER(category) = LOWER($2)")
	assert.Equal(t, []any{model.ContactStatusNew, "Business"}, args)
	assert.Contains(t, query, "ORDER BY created_at DESC")
}
