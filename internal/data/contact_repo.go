package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lifewood/adminhub/internal/data/pgxutil"
	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
)

// ContactRepo provides database operations for contact messages.
type ContactRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewContactRepo creates a ContactRepo with the real system clock.
func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewContactRepoWithTimeProvider creates a ContactRepo with a custom clock (useful for tests).
func NewContactRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ContactRepo {
	return &ContactRepo{DB: db, timeProvider: tp}
}

const contactColumns = `id, name, email, subject, category, message, status, replied_at, reply_history, created_at`

const (
	contactGetQuery = `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE id = $1`

	contactCountByStatusQuery = `
		SELECT status, COUNT(*) AS n
		FROM contacts
		GROUP BY status`

	contactTimestampsQuery = `
		SELECT created_at FROM contacts`
)

// Create inserts a new contact message with status New.
func (r *ContactRepo) Create(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
	status := msg.Status
	if status == "" {
		status = model.ContactStatusNew
	}
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.timeProvider.Now().UTC()
	}

	var out model.ContactMessage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO contacts (name, email, subject, category, message, status, reply_history, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, '[]'::jsonb, $7)
			RETURNING `+contactColumns,
			msg.Name, msg.Email, msg.Subject, msg.Category, msg.Message, status, createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactMessage])
		return err
	}); err != nil {
		return model.ContactMessage{}, mapContactErr(err)
	}
	return out, nil
}

// Get retrieves a contact message by ID.
func (r *ContactRepo) Get(ctx context.Context, id string) (model.ContactMessage, error) {
	var out model.ContactMessage
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, contactGetQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactMessage])
		return err
	})
	if err != nil {
		return model.ContactMessage{}, mapContactErr(err)
	}
	return out, nil
}

// List retrieves contact messages newest first. Status and category
// predicates are pushed into SQL; text search is applied by the caller.
func (r *ContactRepo) List(ctx context.Context, filter model.ContactFilter) ([]model.ContactMessage, error) {
	query, args := buildContactListQuery(filter)

	var out []model.ContactMessage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ContactMessage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return out, nil
}

// buildContactListQuery builds the WHERE clause for listing. The filter's
// status precedence mirrors the admin inbox: ignored-only wins, then an
// exact status, otherwise ignored rows are hidden unless the filter asks
// for every status.
func buildContactListQuery(filter model.ContactFilter) (string, []any) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	where := ""
	args := []any{}
	next := func() string {
		return fmt.Sprintf("$%d", len(args)+1)
	}
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
			return
		}
		where += " AND " + cond
	}

	switch {
	case filter.OnlyIgnored:
		and("status = " + next())
		args = append(args, model.ContactStatusIgnored)
	case filter.Status != "":
		and("status = " + next())
		args = append(args, filter.Status)
	default:
		if !filter.IncludeIgnored {
			and("status <> " + next())
			args = append(args, model.ContactStatusIgnored)
		}
	}
	if filter.Category != "" {
		and("LOWER(category) = LOWER(" + next() + ")")
		args = append(args, filter.Category)
	}

	return query + where + " ORDER BY created_at DESC", args
}

// AppendReply appends a reply entry to the message's history and moves it to
// the given status in a single statement, so history and state cannot drift.
func (r *ContactRepo) AppendReply(
	ctx context.Context,
	id string,
	reply model.Reply,
	status model.ContactStatus,
) (model.ContactMessage, error) {
	entry, err := json.Marshal(reply)
	if err != nil {
		return model.ContactMessage{}, apperrors.Persistence(err, "encode reply")
	}
	repliedAt := reply.Timestamp
	if repliedAt.IsZero() {
		repliedAt = r.timeProvider.Now().UTC()
	}

	var out model.ContactMessage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE contacts
			SET reply_history = reply_history || $2::jsonb,
			    status = $3,
			    replied_at = $4
			WHERE id = $1
			RETURNING `+contactColumns,
			id, entry, status, repliedAt,
		)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactMessage])
		return qerr
	}); err != nil {
		return model.ContactMessage{}, mapContactErr(err)
	}
	return out, nil
}

// UpdateStatus moves a contact message to the given status.
func (r *ContactRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ContactStatus,
) (model.ContactMessage, error) {
	var out model.ContactMessage
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE contacts SET status = $2 WHERE id = $1
			RETURNING `+contactColumns,
			id, status,
		)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ContactMessage])
		return qerr
	})
	if err != nil {
		return model.ContactMessage{}, mapContactErr(err)
	}
	return out, nil
}

// Delete removes a contact message by ID.
func (r *ContactRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return mapContactErr(err)
	}
	if affected == 0 {
		return apperrors.NotFound("contact message not found")
	}
	return nil
}

// CountByStatus returns the number of messages per status.
func (r *ContactRepo) CountByStatus(ctx context.Context) (map[model.ContactStatus]int, error) {
	counts := make(map[model.ContactStatus]int)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, contactCountByStatusQuery)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		for rows.Next() {
			var status model.ContactStatus
			var n int
			if scanErr := rows.Scan(&status, &n); scanErr != nil {
				return scanErr
			}
			counts[status] = n
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("count contacts by status: %w", err)
	}
	return counts, nil
}

// CreatedTimestamps returns creation times of all messages for chart bucketing.
func (r *ContactRepo) CreatedTimestamps(ctx context.Context) ([]time.Time, error) {
	return collectTimestamps(ctx, r.DB, contactTimestampsQuery)
}

// collectTimestamps runs a single-column timestamp query shared by the repos.
func collectTimestamps(ctx context.Context, db *sql.DB, query string) ([]time.Time, error) {
	var out []time.Time
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, query)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		for rows.Next() {
			var ts time.Time
			if scanErr := rows.Scan(&ts); scanErr != nil {
				return scanErr
			}
			out = append(out, ts)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("collect timestamps: %w", err)
	}
	return out, nil
}

// mapContactErr converts driver errors to the shared error taxonomy.
func mapContactErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("contact message not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperrors.Conflict("contact message already exists")
	}
	return apperrors.Persistence(err, "contact store")
}
