package data

import (
	"context"
	"database/sql"
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

// ApplicantRepo provides database operations for job applicants.
type ApplicantRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicantRepo creates an ApplicantRepo with the real system clock.
func NewApplicantRepo(db *sql.DB) *ApplicantRepo {
	return &ApplicantRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewApplicantRepoWithTimeProvider creates an ApplicantRepo with a custom clock (useful for tests).
func NewApplicantRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicantRepo {
	return &ApplicantRepo{DB: db, timeProvider: tp}
}

const applicantColumns = `id, first_name, last_name, email, age, degree, job_title_applied,
	department_applied, experience_years, resume_path, available_start, available_end, status, created_at`

const (
	applicantGetQuery = `
		SELECT ` + applicantColumns + `
		FROM job_applicants
		WHERE id = $1`

	applicantCountByStatusQuery = `
		SELECT status, COUNT(*) AS n
		FROM job_applicants
		GROUP BY status`

	applicantTimestampsQuery = `
		SELECT created_at FROM job_applicants`
)

// Create inserts a new applicant with status Pending.
func (r *ApplicantRepo) Create(ctx context.Context, applicant model.JobApplicant) (model.JobApplicant, error) {
	status := applicant.Status
	if status == "" {
		status = model.ApplicantStatusPending
	}
	createdAt := applicant.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.timeProvider.Now().UTC()
	}

	var out model.JobApplicant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO job_applicants (
				first_name, last_name, email, age, degree, job_title_applied,
				department_applied, experience_years, resume_path, available_start, available_end,
				status, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING `+applicantColumns,
			applicant.FirstName, applicant.LastName, applicant.Email, applicant.Age,
			applicant.Degree, applicant.JobTitleApplied, applicant.DepartmentApplied,
			applicant.ExperienceYears, applicant.ResumePath, applicant.AvailableStart,
			applicant.AvailableEnd, status, createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobApplicant])
		return err
	}); err != nil {
		return model.JobApplicant{}, mapApplicantErr(err)
	}
	return out, nil
}

// Get retrieves a job applicant by ID.
func (r *ApplicantRepo) Get(ctx context.Context, id string) (model.JobApplicant, error) {
	var out model.JobApplicant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicantGetQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobApplicant])
		return err
	})
	if err != nil {
		return model.JobApplicant{}, mapApplicantErr(err)
	}
	return out, nil
}

// List retrieves applicants newest first. Status and department predicates
// are pushed into SQL; text search is applied by the caller.
func (r *ApplicantRepo) List(ctx context.Context, filter model.ApplicantFilter) ([]model.JobApplicant, error) {
	query := `SELECT ` + applicantColumns + ` FROM job_applicants`
	where := ""
	args := []any{}
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
			return
		}
		where += " AND " + cond
	}

	if filter.Status != "" {
		args = append(args, filter.Status)
		and(fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		and(fmt.Sprintf("LOWER(department_applied) = LOWER($%d)", len(args)))
	}

	var out []model.JobApplicant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query+where+" ORDER BY created_at DESC", args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.JobApplicant])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return out, nil
}

// UpdateStatus moves an applicant to the given status.
func (r *ApplicantRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.ApplicantStatus,
) (model.JobApplicant, error) {
	var out model.JobApplicant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, `
			UPDATE job_applicants SET status = $2 WHERE id = $1
			RETURNING `+applicantColumns,
			id, status,
		)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobApplicant])
		return qerr
	})
	if err != nil {
		return model.JobApplicant{}, mapApplicantErr(err)
	}
	return out, nil
}

// Delete removes an applicant by ID.
func (r *ApplicantRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM job_applicants WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return mapApplicantErr(err)
	}
	if affected == 0 {
		return apperrors.NotFound("applicant not found")
	}
	return nil
}

// CountByStatus returns the number of applicants per status.
func (r *ApplicantRepo) CountByStatus(ctx context.Context) (map[model.ApplicantStatus]int, error) {
	counts := make(map[model.ApplicantStatus]int)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qerr := conn.Query(ctx, applicantCountByStatusQuery)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		for rows.Next() {
			var status model.ApplicantStatus
			var n int
			if scanErr := rows.Scan(&status, &n); scanErr != nil {
				return scanErr
			}
			counts[status] = n
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("count applicants by status: %w", err)
	}
	return counts, nil
}

// CreatedTimestamps returns creation times of all applicants for chart bucketing.
func (r *ApplicantRepo) CreatedTimestamps(ctx context.Context) ([]time.Time, error) {
	return collectTimestamps(ctx, r.DB, applicantTimestampsQuery)
}

func mapApplicantErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("applicant not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperrors.Conflict("applicant already exists")
	}
	return apperrors.Persistence(err, "applicant store")
}
