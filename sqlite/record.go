package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/ratedoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ ratedoc.RecordService = (*RecordService)(nil)

// RecordService implements ratedoc.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// SaveRecord stores record, replacing the record of the same date.
// A replaced record keeps its ID. ID and, when zero, FetchedAt are set
// on record.
func (s *RecordService) SaveRecord(ctx context.Context, record *ratedoc.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if record.FetchedAt.IsZero() {
		record.FetchedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, "SELECT id FROM records WHERE date = ?", record.Date.String()).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.New().String()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO records (id, date, year, layout, path, content_hash, fetched, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, record.Date.String(), record.Date.Year, string(record.Layout), record.Path,
			record.ContentHash, record.Fetched, record.FetchedAt.UTC().Format(time.RFC3339Nano))
	case err == nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE records
			SET layout = ?, path = ?, content_hash = ?, fetched = ?, fetched_at = ?
			WHERE id = ?
		`, string(record.Layout), record.Path, record.ContentHash, record.Fetched,
			record.FetchedAt.UTC().Format(time.RFC3339Nano), id)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM record_links WHERE record_id = ?", id); err != nil {
		return err
	}
	for i, link := range record.Links {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO record_links (record_id, position, text, url) VALUES (?, ?, ?, ?)
		`, id, i, link.Text, link.URL); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	record.ID = id
	return nil
}

// FindRecordByDate retrieves the record of a decision date.
func (s *RecordService) FindRecordByDate(ctx context.Context, date ratedoc.Date) (*ratedoc.Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, layout, path, content_hash, fetched, fetched_at
		FROM records
		WHERE date = ?
	`, date.String())

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ratedoc.Errorf(ratedoc.ENOTFOUND, "no record for %s", date)
	}
	if err != nil {
		return nil, err
	}

	if record.Links, err = s.findLinks(ctx, record.ID); err != nil {
		return nil, err
	}
	return record, nil
}

// FindRecords retrieves records matching the filter, ordered by date.
func (s *RecordService) FindRecords(ctx context.Context, filter ratedoc.RecordFilter) ([]*ratedoc.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, date, layout, path, content_hash, fetched, fetched_at FROM records WHERE 1=1")
	if filter.Year != nil {
		query.WriteString(" AND year = ?")
		args = append(args, *filter.Year)
	}
	query.WriteString(" ORDER BY date ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	var records []*ratedoc.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The pool has a single connection: rows must be released before
	// links are queried.
	rows.Close()

	for _, record := range records {
		if record.Links, err = s.findLinks(ctx, record.ID); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (s *RecordService) findLinks(ctx context.Context, id string) ([]ratedoc.Link, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text, url FROM record_links WHERE record_id = ? ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []ratedoc.Link
	for rows.Next() {
		var link ratedoc.Link
		if err := rows.Scan(&link.Text, &link.URL); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*ratedoc.Record, error) {
	var record ratedoc.Record
	var date, layout, fetchedAt string

	if err := row.Scan(&record.ID, &date, &layout, &record.Path, &record.ContentHash,
		&record.Fetched, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if record.Date, err = ratedoc.ParseDateString(date); err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	if record.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	record.Layout = ratedoc.Layout(layout)
	return &record, nil
}
