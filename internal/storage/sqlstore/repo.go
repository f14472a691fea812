package sqlstore

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"

	"vienna_etl/internal/domain"
)

// batchSize bounds the rows per INSERT statement, keeping well under the
// bind parameter limits of every supported driver.
const batchSize = 500

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Repo struct {
	db *sqlx.DB
	d  dialect
}

var (
	_ domain.Store  = (*Repo)(nil)
	_ domain.Reader = (*Repo)(nil)
)

// New wraps an open handle. The dialect follows db.DriverName().
func New(db *sqlx.DB) (*Repo, error) {
	d, err := dialectFor(db.DriverName())
	if err != nil {
		return nil, err
	}
	return &Repo{db: db, d: d}, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func checkTable(table string) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

func (r *Repo) ReplaceListings(ctx context.Context, table string, rows []domain.Listing) error {
	return replace(ctx, r, table, listingColumns, rows)
}

func (r *Repo) ReplaceWeather(ctx context.Context, table string, rows []domain.Weather) error {
	return replace(ctx, r, table, weatherColumns, rows)
}

func (r *Repo) ReplaceTrips(ctx context.Context, table string, rows []domain.Trip) error {
	return replace(ctx, r, table, tripColumns, rows)
}

// replace drops and recreates table, then inserts rows, all in one transaction.
// MySQL commits DDL implicitly, so there the swap is not atomic.
func replace[T any](ctx context.Context, r *Repo, table string, cols []column, rows []T) error {
	if err := checkTable(table); err != nil {
		return err
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, r.d.dropTableSQL(table)); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, r.d.createTableSQL(table, cols)); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	ins := r.d.insertSQL(table, cols)
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		if _, err := tx.NamedExecContext(ctx, ins, rows[start:end]); err != nil {
			return fmt.Errorf("insert %s rows %d-%d: %w", table, start, end, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) ListListings(ctx context.Context, q domain.ListingsQuery) ([]domain.Listing, error) {
	if err := checkTable(q.Table); err != nil {
		return nil, err
	}
	query := r.d.selectSQL(q.Table, listingColumns)
	var args []any
	if q.Date != nil {
		query += " WHERE " + r.d.quote("date") + " = ?"
		args = append(args, *q.Date)
	}
	query += " ORDER BY " + r.d.quote("date") + ", " + r.d.quote("id")
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}
	out := []domain.Listing{}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) ListWeather(ctx context.Context, q domain.WeatherQuery) ([]domain.Weather, error) {
	if err := checkTable(q.Table); err != nil {
		return nil, err
	}
	query := r.d.selectSQL(q.Table, weatherColumns)
	var args []any
	if q.City != nil {
		query += " WHERE LOWER(" + r.d.quote("city") + ") = LOWER(?)"
		args = append(args, *q.City)
	}
	query += " ORDER BY " + r.d.quote("date")
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}
	out := []domain.Weather{}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// PreviewTrips returns the first n rows in insertion order.
func (r *Repo) PreviewTrips(ctx context.Context, table string, n int) ([]domain.Trip, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	query := r.d.selectSQL(table, tripColumns) + " LIMIT ?"
	var out []domain.Trip
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), n); err != nil {
		return nil, err
	}
	return out, nil
}
