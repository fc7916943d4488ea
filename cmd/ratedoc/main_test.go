package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/ratedoc"
	main "github.com/fwojciec/ratedoc/cmd/ratedoc"
	"github.com/fwojciec/ratedoc/harvest"
	"github.com/fwojciec/ratedoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chronicle2005 = `<html><body>
<h3>16. mars 2005</h3>
<p><a href="/pressemelding-16-mars">Pressemelding</a> <a href="/innledning-16-mars">Innledning</a></p>
</body></html>`

const pressRelease = `<html><body><nav>Meny</nav><article>
<p>Norges Banks hovedstyre besluttet å øke styringsrenten med 0,25 prosentenheter til 2 prosent.</p>
</article></body></html>`

// siteFetcher serves pages by URL and reports anything else as not found.
func siteFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", ratedoc.Errorf(ratedoc.ENOTFOUND, "not found: %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func testMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.Fetcher = siteFetcher(map[string]string{
		harvest.YearURL(harvest.DefaultYearURL, 2005):      chronicle2005,
		"https://www.norges-bank.no/pressemelding-16-mars": pressRelease,
	})
	m.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints help without arguments", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "harvest")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "preview")
	})

	t.Run("harvests a year and lists it", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db := filepath.Join(dir, "ratedoc.db")
		out := filepath.Join(dir, "out")
		metricsFile := filepath.Join(dir, "ratedoc.prom")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := testMain(t).Run(context.Background(), []string{
			"--db", db, "--out", out,
			"harvest", "2005", "--rps=0", "--year-delay=0s", "--metrics-file", metricsFile,
		}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "✓ 2005-03-16")
		assert.Contains(t, stdout.String(), "Saved 1, skipped 0, failed 0")

		report, err := os.ReadFile(filepath.Join(out, "2005", "03", "16", "info.md"))
		require.NoError(t, err)
		assert.Contains(t, string(report), "# Rentebeslutninger 2005-03-16")
		assert.Contains(t, string(report), "* Information Fetched : 2024-01-02T03:04:05.000Z")
		assert.Contains(t, string(report), "øke styringsrenten med 0,25 prosentenheter")
		assert.Contains(t, string(report), "- [Innledning](https://www.norges-bank.no/innledning-16-mars)")

		yearLog, err := os.ReadFile(filepath.Join(out, "2005", "log.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(yearLog), `msg="processing year"`)

		metrics, err := os.ReadFile(metricsFile)
		require.NoError(t, err)
		assert.Contains(t, string(metrics), "ratedoc_artifacts_saved_total 1")

		stdout.Reset()
		err = main.NewMain().Run(context.Background(), []string{"--db", db, "list"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "2005-03-16  chronicle  1/2")
	})

	t.Run("skips recorded decisions on rerun", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		args := []string{
			"--db", filepath.Join(dir, "ratedoc.db"), "--out", filepath.Join(dir, "out"),
			"harvest", "2005", "--rps=0", "--year-delay=0s",
		}

		require.NoError(t, testMain(t).Run(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{}))

		stdout := &bytes.Buffer{}
		require.NoError(t, testMain(t).Run(context.Background(), args, stdout, &bytes.Buffer{}))
		assert.Contains(t, stdout.String(), "Saved 0, skipped 1, failed 0")

		stdout.Reset()
		require.NoError(t, testMain(t).Run(context.Background(), append(args, "--force"), stdout, &bytes.Buffer{}))
		assert.Contains(t, stdout.String(), "Saved 1, skipped 0, failed 0")
	})

	t.Run("previews without writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout := &bytes.Buffer{}

		err := testMain(t).Run(context.Background(), []string{
			"--db", filepath.Join(dir, "ratedoc.db"), "--out", filepath.Join(dir, "out"),
			"preview", "2005", "--rps=0",
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "(chronicle)")
		assert.Contains(t, stdout.String(), "2005-03-16\n")
		assert.Contains(t, stdout.String(), "  Pressemelding  https://www.norges-bank.no/pressemelding-16-mars\n")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects url template without year verb", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := testMain(t).Run(context.Background(), []string{
			"preview", "2005", "--chronicle-url", "https://www.norges-bank.no/",
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, ratedoc.EINVALID, ratedoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "must contain a single %d")
	})

	t.Run("rejects unknown extractor", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := testMain(t).Run(context.Background(), []string{
			"--db", filepath.Join(dir, "ratedoc.db"),
			"harvest", "2005", "--extractor", "regex",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Error(t, err)
	})
}
