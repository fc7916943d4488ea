package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/ratedoc"
	main "github.com/fwojciec/ratedoc/cmd/ratedoc"
	"github.com/fwojciec/ratedoc/goquery"
	"github.com/fwojciec/ratedoc/harvest"
	"github.com/fwojciec/ratedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHarvester(pages map[string]string, saved *[]ratedoc.Date) *harvest.Harvester {
	return &harvest.Harvester{
		Fetcher:   siteFetcher(pages),
		Parsers:   goquery.NewDefaultRegistry(),
		Detector:  goquery.NewDetector(),
		Resources: goquery.NewListParser(),
		Extractor: goquery.NewContentExtractor(),
		Store: &mock.ArtifactStore{
			SaveFn: func(ctx context.Context, date ratedoc.Date, report string) (string, error) {
				*saved = append(*saved, date)
				return "out/" + date.String(), nil
			},
		},
		RetryDelays: []time.Duration{},
	}
}

func TestHarvestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("harvests a single year when no end is given", func(t *testing.T) {
		t.Parallel()

		var saved []ratedoc.Date
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Harvester: testHarvester(map[string]string{
				harvest.YearURL(harvest.DefaultYearURL, 2005): chronicle2005,
			}, &saved),
		}

		err := (&main.HarvestCmd{From: 2005}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []ratedoc.Date{{Year: 2005, Month: 3, Day: 16}}, saved)
		assert.Contains(t, stdout.String(), "2005\n  ✓ 2005-03-16  out/2005-03-16 (2 links)\n")
	})

	t.Run("reports unavailable years", func(t *testing.T) {
		t.Parallel()

		var saved []ratedoc.Date
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Harvester: testHarvester(map[string]string{}, &saved),
		}

		err := (&main.HarvestCmd{From: 2005, To: 2006}).Run(deps)

		require.NoError(t, err)
		assert.Empty(t, saved)
		assert.Contains(t, stdout.String(), "✗ year page unavailable")
		assert.Contains(t, stdout.String(), "Saved 0, skipped 0, failed 0 (0 B)")
	})

	t.Run("rejects reversed range", func(t *testing.T) {
		t.Parallel()

		var saved []ratedoc.Date
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Harvester: testHarvester(nil, &saved),
		}

		err := (&main.HarvestCmd{From: 2010, To: 2005}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "invalid year range 2010-2005")
	})
}

func TestPreviewCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports empty years", func(t *testing.T) {
		t.Parallel()

		var saved []ratedoc.Date
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Harvester: testHarvester(map[string]string{
				harvest.YearURL(harvest.DefaultYearURL, 2012): "<html><body><p>Ingen møter</p></body></html>",
			}, &saved),
		}

		err := (&main.PreviewCmd{Year: 2012}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "2012-Rentemoter/ (list)\n")
		assert.Contains(t, stdout.String(), "No decisions found.")
	})
}
