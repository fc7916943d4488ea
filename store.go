package ratedoc

import (
	"context"
	"time"
)

// ArtifactStore persists assembled decision reports.
type ArtifactStore interface {
	// Save writes the report for the decision on date and returns the
	// location it was written to.
	Save(ctx context.Context, date Date, report string) (path string, err error)
}

// Record describes a harvested decision.
type Record struct {
	ID          string    `json:"id"`
	Date        Date      `json:"date"`
	Layout      Layout    `json:"layout"`
	Links       []Link    `json:"links"`
	Path        string    `json:"path"`
	ContentHash string    `json:"contentHash"`
	Fetched     int       `json:"fetched"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Date.IsZero() {
		return Errorf(EINVALID, "record date required")
	}
	if len(r.Links) == 0 {
		return Errorf(EINVALID, "record links required")
	}
	return nil
}

// HasContent reports whether any resource of the record was fetched.
// Records without content are harvested again on the next run.
func (r *Record) HasContent() bool {
	return r.Fetched > 0
}

// RecordService represents a service for managing harvest records.
type RecordService interface {
	// SaveRecord creates the record for its date, replacing any existing one.
	SaveRecord(ctx context.Context, record *Record) error

	// FindRecordByDate retrieves the record of a decision date.
	// Returns ENOTFOUND if no decision was recorded for the date.
	FindRecordByDate(ctx context.Context, date Date) (*Record, error)

	// FindRecords retrieves records matching the filter, ordered by date.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Year *int `json:"year"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
