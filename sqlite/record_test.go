package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/ratedoc"
	"github.com/fwojciec/ratedoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(date ratedoc.Date, urls ...string) *ratedoc.Record {
	r := &ratedoc.Record{
		Date:        date,
		Layout:      ratedoc.LayoutChronicle,
		Path:        "out/" + date.String() + "/info.md",
		ContentHash: "abc123",
		Fetched:     len(urls),
	}
	for _, u := range urls {
		r.Links = append(r.Links, ratedoc.Link{Text: "Pressemelding", URL: u})
	}
	return r
}

func TestRecordService_SaveRecord(t *testing.T) {
	t.Parallel()

	t.Run("creates record with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)

		record := newRecord(ratedoc.Date{Year: 1999, Month: 1, Day: 27}, "https://www.norges-bank.no/press")

		err := svc.SaveRecord(context.Background(), record)

		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.False(t, record.FetchedAt.IsZero())
	})

	t.Run("returns error for invalid record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)

		err := svc.SaveRecord(context.Background(), &ratedoc.Record{})

		require.Error(t, err)
		assert.Equal(t, ratedoc.EINVALID, ratedoc.ErrorCode(err))
	})

	t.Run("replaces record of the same date", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()
		date := ratedoc.Date{Year: 1999, Month: 1, Day: 27}

		first := newRecord(date, "https://www.norges-bank.no/a", "https://www.norges-bank.no/b")
		require.NoError(t, svc.SaveRecord(ctx, first))

		second := newRecord(date, "https://www.norges-bank.no/c")
		second.ContentHash = "def456"
		require.NoError(t, svc.SaveRecord(ctx, second))

		assert.Equal(t, first.ID, second.ID)

		got, err := svc.FindRecordByDate(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, "def456", got.ContentHash)
		assert.Equal(t, []ratedoc.Link{{Text: "Pressemelding", URL: "https://www.norges-bank.no/c"}}, got.Links)

		records, err := svc.FindRecords(ctx, ratedoc.RecordFilter{})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestRecordService_FindRecordByDate(t *testing.T) {
	t.Parallel()

	t.Run("returns stored record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		fetchedAt := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		record := newRecord(ratedoc.Date{Year: 2015, Month: 12, Day: 17},
			"https://www.norges-bank.no/press", "https://www.norges-bank.no/intro")
		record.Layout = ratedoc.LayoutList
		record.FetchedAt = fetchedAt
		require.NoError(t, svc.SaveRecord(ctx, record))

		got, err := svc.FindRecordByDate(ctx, record.Date)

		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, record.Date, got.Date)
		assert.Equal(t, ratedoc.LayoutList, got.Layout)
		assert.Equal(t, record.Path, got.Path)
		assert.Equal(t, record.ContentHash, got.ContentHash)
		assert.Equal(t, 2, got.Fetched)
		assert.True(t, fetchedAt.Equal(got.FetchedAt))
		assert.Equal(t, record.Links, got.Links)
	})

	t.Run("keeps fetch time milliseconds", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		ctx := context.Background()

		fetchedAt := time.Date(2024, 5, 1, 12, 30, 0, 123_000_000, time.UTC)
		record := newRecord(ratedoc.Date{Year: 2015, Month: 12, Day: 17}, "https://www.norges-bank.no/press")
		record.FetchedAt = fetchedAt
		require.NoError(t, svc.SaveRecord(ctx, record))

		got, err := svc.FindRecordByDate(ctx, record.Date)

		require.NoError(t, err)
		assert.True(t, fetchedAt.Equal(got.FetchedAt), "got %s", got.FetchedAt)
		assert.Equal(t, fetchedAt.Format(ratedoc.FetchTimeFormat), got.FetchedAt.UTC().Format(ratedoc.FetchTimeFormat))
	})

	t.Run("returns not found for unknown date", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)

		_, err := svc.FindRecordByDate(context.Background(), ratedoc.Date{Year: 1999, Month: 1, Day: 1})

		require.Error(t, err)
		assert.Equal(t, ratedoc.ENOTFOUND, ratedoc.ErrorCode(err))
	})
}

func TestRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.RecordService) {
		t.Helper()
		dates := []ratedoc.Date{
			{Year: 2000, Month: 3, Day: 8},
			{Year: 1999, Month: 12, Day: 15},
			{Year: 1999, Month: 1, Day: 27},
			{Year: 2000, Month: 1, Day: 26},
		}
		for _, d := range dates {
			require.NoError(t, svc.SaveRecord(context.Background(), newRecord(d, "https://www.norges-bank.no/"+d.String())))
		}
	}

	t.Run("returns records ordered by date", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		seed(t, svc)

		records, err := svc.FindRecords(context.Background(), ratedoc.RecordFilter{})

		require.NoError(t, err)
		require.Len(t, records, 4)
		var dates []string
		for _, r := range records {
			dates = append(dates, r.Date.String())
			assert.Len(t, r.Links, 1)
		}
		assert.Equal(t, []string{"1999-01-27", "1999-12-15", "2000-01-26", "2000-03-08"}, dates)
	})

	t.Run("filters by year", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		seed(t, svc)

		year := 2000
		records, err := svc.FindRecords(context.Background(), ratedoc.RecordFilter{Year: &year})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, ratedoc.Date{Year: 2000, Month: 1, Day: 26}, records[0].Date)
		assert.Equal(t, ratedoc.Date{Year: 2000, Month: 3, Day: 8}, records[1].Date)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)
		seed(t, svc)

		records, err := svc.FindRecords(context.Background(), ratedoc.RecordFilter{Limit: 2, Offset: 1})

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, ratedoc.Date{Year: 1999, Month: 12, Day: 15}, records[0].Date)
		assert.Equal(t, ratedoc.Date{Year: 2000, Month: 1, Day: 26}, records[1].Date)
	})

	t.Run("returns empty result for empty database", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewRecordService(db)

		records, err := svc.FindRecords(context.Background(), ratedoc.RecordFilter{})

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
