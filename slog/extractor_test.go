package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/ratedoc/mock"
	ratedocslog "github.com/fwojciec/ratedoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContentExtractor{
			ExtractFn: func(html string) (string, error) {
				return "Styringsrenten økes", nil
			},
		}

		extractor := ratedocslog.NewLoggingExtractor(inner, logger)
		text, err := extractor.Extract("<p>Styringsrenten økes</p>")

		require.NoError(t, err)
		assert.Equal(t, "Styringsrenten økes", text)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "chars=19")
		assert.Contains(t, output, "empty=false")
	})

	t.Run("logs empty content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContentExtractor{
			ExtractFn: func(html string) (string, error) { return "", nil },
		}

		_, err := ratedocslog.NewLoggingExtractor(inner, logger).Extract("<html></html>")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "bytes=13")
		assert.Contains(t, buf.String(), "empty=true")
	})

	t.Run("logs error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ContentExtractor{
			ExtractFn: func(html string) (string, error) { return "", errors.New("parse failure") },
		}

		_, err := ratedocslog.NewLoggingExtractor(inner, logger).Extract("<")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="parse failure"`)
	})
}
