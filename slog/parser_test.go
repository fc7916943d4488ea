package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/ratedoc"
	"github.com/fwojciec/ratedoc/mock"
	ratedocslog "github.com/fwojciec/ratedoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yearPage = "https://www.norges-bank.no/tema/pengepolitikk/Rentemoter/2005-Rentemoter/"

func TestLoggingParser_ParseYear(t *testing.T) {
	t.Parallel()

	t.Run("logs decisions found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		want := []ratedoc.Decision{
			{Date: ratedoc.Date{Year: 2005, Month: 3, Day: 16}, Links: []ratedoc.Link{{Text: "Pressemelding", URL: "https://www.norges-bank.no/a"}}},
			{Date: ratedoc.Date{Year: 2005, Month: 4, Day: 27}, Links: []ratedoc.Link{{Text: "Pressemelding", URL: "https://www.norges-bank.no/b"}}},
		}
		inner := &mock.YearParser{
			ParseYearFn: func(html string, year int, pageURL string) ([]ratedoc.Decision, error) {
				return want, nil
			},
			LayoutFn: func() ratedoc.Layout { return ratedoc.LayoutChronicle },
		}

		parser := ratedocslog.NewLoggingParser(inner, logger)
		got, err := parser.ParseYear("<html></html>", 2005, yearPage)

		require.NoError(t, err)
		assert.Equal(t, want, got)
		output := buf.String()
		assert.Contains(t, output, `msg="parse year"`)
		assert.Contains(t, output, "layout=chronicle")
		assert.Contains(t, output, "year=2005")
		assert.Contains(t, output, "url="+yearPage)
		assert.Contains(t, output, "decisions=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.YearParser{
			ParseYearFn: func(html string, year int, pageURL string) ([]ratedoc.Decision, error) {
				return nil, errors.New("invalid base")
			},
			LayoutFn: func() ratedoc.Layout { return ratedoc.LayoutList },
		}

		parser := ratedocslog.NewLoggingParser(inner, logger)
		_, err := parser.ParseYear("<html></html>", 2015, "://")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="invalid base"`)
		assert.Contains(t, buf.String(), "decisions=0")
	})

	t.Run("layout delegates to inner parser", func(t *testing.T) {
		t.Parallel()

		inner := &mock.YearParser{
			LayoutFn: func() ratedoc.Layout { return ratedoc.LayoutList },
		}

		parser := ratedocslog.NewLoggingParser(inner, slog.New(slog.DiscardHandler))

		assert.Equal(t, ratedoc.LayoutList, parser.Layout())
	})
}
