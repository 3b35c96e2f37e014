package migrate_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifewood/adminhub/internal/migrate"
	"github.com/lifewood/adminhub/internal/testutil"
)

func TestRun_AppliesAndIsIdempotent(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		// WithTestDB already ran the migrations once; a second run must be
		// a no-op rather than re-executing applied files.
		require.NoError(t, migrate.Run(context.Background(), db))

		var versions int
		require.NoError(t, db.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
		assert.Greater(t, versions, 0)

		for _, table := range []string{"contacts", "job_applicants", "job_listings"} {
			var exists bool
			require.NoError(t, db.QueryRowContext(context.Background(),
				`SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)`,
				table).Scan(&exists))
			assert.True(t, exists, table)
		}
	})
}
