package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lifewood/adminhub/internal/data/pgxutil"
	"github.com/lifewood/adminhub/internal/domain/model"
	apperrors "github.com/lifewood/adminhub/internal/errors"
)

// JobListingRepo provides database operations for published job listings.
type JobListingRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobListingRepo creates a JobListingRepo with the real system clock.
func NewJobListingRepo(db *sql.DB) *JobListingRepo {
	return &JobListingRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobListingRepoWithTimeProvider creates a JobListingRepo with a custom clock (useful for tests).
func NewJobListingRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobListingRepo {
	return &JobListingRepo{DB: db, timeProvider: tp}
}

const jobListingColumns = `id, title, department, location, type, description, created_at`

// Create publishes a new job listing.
func (r *JobListingRepo) Create(ctx context.Context, listing model.JobListing) (model.JobListing, error) {
	createdAt := listing.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.timeProvider.Now().UTC()
	}

	var out model.JobListing
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO job_listings (title, department, location, type, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+jobListingColumns,
			listing.Title, listing.Department, listing.Location, listing.Type,
			listing.Description, createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobListing])
		return err
	}); err != nil {
		return model.JobListing{}, mapJobListingErr(err)
	}
	return out, nil
}

// Get retrieves a job listing by ID.
func (r *JobListingRepo) Get(ctx context.Context, id string) (model.JobListing, error) {
	var out model.JobListing
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+jobListingColumns+` FROM job_listings WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobListing])
		return err
	})
	if err != nil {
		return model.JobListing{}, mapJobListingErr(err)
	}
	return out, nil
}

// List retrieves all job listings newest first.
func (r *JobListingRepo) List(ctx context.Context) ([]model.JobListing, error) {
	var out []model.JobListing
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+jobListingColumns+` FROM job_listings ORDER BY created_at DESC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.JobListing])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list job listings: %w", err)
	}
	return out, nil
}

// Delete removes a job listing by ID.
func (r *JobListingRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx, `DELETE FROM job_listings WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return mapJobListingErr(err)
	}
	if affected == 0 {
		return apperrors.NotFound("job listing not found")
	}
	return nil
}

// Count returns the number of published listings.
func (r *JobListingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT COUNT(*) FROM job_listings`).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count job listings: %w", err)
	}
	return n, nil
}

func mapJobListingErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound("job listing not found")
	}
	return apperrors.Persistence(err, "job listing store")
}
