package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/yeshika17/ResumeSeRole/internal/model"
)

// PostgresStore keeps cached batches in a cached_jobs table. Postgres has
// no TTL index, so retention is a daily cron sweep plus one sweep after
// migrations; lookup freshness never depends on the sweep having run.
type PostgresStore struct {
	db        *sql.DB
	retention time.Duration
	cron      *cron.Cron
}

func NewPostgresStore(connStr string, retention time.Duration) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	s := &PostgresStore{db: db, retention: retention, cron: cron.New()}

	if _, err := s.cron.AddFunc("@daily", s.reap); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to schedule retention sweep: %w", err)
	}
	s.cron.Start()

	return s, nil
}

// RunMigrations executes the schema file so the table and indexes exist.
func (s *PostgresStore) RunMigrations(schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	// First sweep runs here rather than in the constructor so the table
	// is guaranteed to exist before it is touched.
	s.reap()
	return nil
}

func (s *PostgresStore) Close() error {
	ctx := s.cron.Stop()
	<-ctx.Done()
	return s.db.Close()
}

func (s *PostgresStore) Lookup(ctx context.Context, key Key, window time.Duration) (*Batch, error) {
	cutoff := time.Now().Add(-window)

	rows, err := s.db.QueryContext(ctx, `
SELECT title, company, job_location, link, source, description, salary, tags, job_type, posted_at, date_fetched
FROM cached_jobs
WHERE keyword = $1 AND search_location = $2 AND date_fetched >= $3
  AND batch_id = (
    SELECT batch_id FROM cached_jobs
    WHERE keyword = $1 AND search_location = $2 AND date_fetched >= $3
    ORDER BY date_fetched DESC
    LIMIT 1
  )
ORDER BY id
`, key.Keyword, key.Location, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batch Batch
	for rows.Next() {
		var (
			j        model.Job
			salary   sql.NullString
			jobType  sql.NullString
			postedAt sql.NullTime
			tags     pq.StringArray
			fetched  time.Time
		)
		if err := rows.Scan(
			&j.Title,
			&j.Company,
			&j.Location,
			&j.Link,
			&j.Source,
			&j.Description,
			&salary,
			&tags,
			&jobType,
			&postedAt,
			&fetched,
		); err != nil {
			return nil, err
		}
		j.Salary = salary.String
		j.JobType = jobType.String
		j.Tags = tags
		if postedAt.Valid {
			t := postedAt.Time
			j.PostedAt = &t
		}
		batch.Jobs = append(batch.Jobs, j)
		batch.FetchedAt = fetched
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(batch.Jobs) == 0 {
		return nil, nil
	}
	return &batch, nil
}

func (s *PostgresStore) Write(ctx context.Context, key Key, jobs []model.Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
DELETE FROM cached_jobs WHERE keyword = $1 AND search_location = $2
`, key.Keyword, key.Location); err != nil {
		return err
	}

	batchID := uuid.New()
	fetchedAt := time.Now()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO cached_jobs
  (batch_id, keyword, search_location, title, company, job_location, link, source, description, salary, tags, job_type, posted_at, date_fetched)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, j := range jobs {
		var postedAt sql.NullTime
		if j.PostedAt != nil {
			postedAt = sql.NullTime{Time: *j.PostedAt, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			batchID,
			key.Keyword,
			key.Location,
			j.Title,
			j.Company,
			j.Location,
			j.Link,
			j.Source,
			j.Description,
			nullString(j.Salary),
			pq.StringArray(j.Tags),
			nullString(j.JobType),
			postedAt,
			fetchedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) reap() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.retention)
	res, err := s.db.ExecContext(ctx, `DELETE FROM cached_jobs WHERE date_fetched < $1`, cutoff)
	if err != nil {
		if missingTable(err) {
			// Nothing to sweep until migrations have created the table.
			return
		}
		slog.Error("cache retention sweep failed", "error", err)
		return
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.Info("cache retention sweep removed expired rows", "rows", n)
	}
}

// missingTable reports whether err is Postgres undefined_table (42P01),
// which only happens when the sweep fires before the schema is applied.
func missingTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
