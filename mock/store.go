package mock

import (
	"context"

	"github.com/fwojciec/ratedoc"
)

var _ ratedoc.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of ratedoc.ArtifactStore.
type ArtifactStore struct {
	SaveFn func(ctx context.Context, date ratedoc.Date, report string) (string, error)
}

func (s *ArtifactStore) Save(ctx context.Context, date ratedoc.Date, report string) (string, error) {
	return s.SaveFn(ctx, date, report)
}

var _ ratedoc.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of ratedoc.RecordService.
type RecordService struct {
	SaveRecordFn       func(ctx context.Context, record *ratedoc.Record) error
	FindRecordByDateFn func(ctx context.Context, date ratedoc.Date) (*ratedoc.Record, error)
	FindRecordsFn      func(ctx context.Context, filter ratedoc.RecordFilter) ([]*ratedoc.Record, error)
}

func (s *RecordService) SaveRecord(ctx context.Context, record *ratedoc.Record) error {
	return s.SaveRecordFn(ctx, record)
}

func (s *RecordService) FindRecordByDate(ctx context.Context, date ratedoc.Date) (*ratedoc.Record, error) {
	return s.FindRecordByDateFn(ctx, date)
}

func (s *RecordService) FindRecords(ctx context.Context, filter ratedoc.RecordFilter) ([]*ratedoc.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}
