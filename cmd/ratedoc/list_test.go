package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/ratedoc"
	main "github.com/fwojciec/ratedoc/cmd/ratedoc"
	"github.com/fwojciec/ratedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists records with layout, fetched count and path", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ ratedoc.RecordFilter) ([]*ratedoc.Record, error) {
				return []*ratedoc.Record{
					{
						Date:      ratedoc.Date{Year: 2005, Month: 3, Day: 16},
						Layout:    ratedoc.LayoutChronicle,
						Links:     []ratedoc.Link{{URL: "https://www.norges-bank.no/a"}, {URL: "https://www.norges-bank.no/b"}},
						Path:      "rentebeslutninger/2005/03/16/info.md",
						Fetched:   2,
						FetchedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						Date:    ratedoc.Date{Year: 2015, Month: 12, Day: 17},
						Layout:  ratedoc.LayoutList,
						Links:   []ratedoc.Link{{URL: "https://www.norges-bank.no/c"}},
						Path:    "rentebeslutninger/2015/12/17/info.md",
						Fetched: 0,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  stderr,
			Records: records,
		}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t,
			"2005-03-16  chronicle  2/2  rentebeslutninger/2005/03/16/info.md\n"+
				"2015-12-17  list       0/1  rentebeslutninger/2015/12/17/info.md\n",
			stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("passes year and pagination to the filter", func(t *testing.T) {
		t.Parallel()

		var got ratedoc.RecordFilter
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter ratedoc.RecordFilter) ([]*ratedoc.Record, error) {
				got = filter
				return nil, nil
			},
		}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Records: records}

		err := (&main.ListCmd{Year: 2005, Limit: 10, Offset: 5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Year)
		assert.Equal(t, 2005, *got.Year)
		assert.Equal(t, 10, got.Limit)
		assert.Equal(t, 5, got.Offset)
	})

	t.Run("shows message when nothing is recorded", func(t *testing.T) {
		t.Parallel()

		var got ratedoc.RecordFilter
		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, filter ratedoc.RecordFilter) ([]*ratedoc.Record, error) {
				got = filter
				return nil, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Records: records}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Nil(t, got.Year)
		assert.Contains(t, stdout.String(), "No decisions recorded")
	})

	t.Run("reports lookup errors", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordService{
			FindRecordsFn: func(_ context.Context, _ ratedoc.RecordFilter) ([]*ratedoc.Record, error) {
				return nil, errors.New("database locked")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Records: records}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error")
	})
}
