package ratedoc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/ratedoc"
	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	date := ratedoc.Date{Year: 1999, Month: 1, Day: 27}
	fetchedAt := time.Date(2025, 12, 7, 12, 0, 0, 0, time.UTC)

	press := ratedoc.Link{Text: "Pressemelding", URL: "https://example.com/press"}
	intro := ratedoc.Link{Text: "Innledning", URL: "https://example.com/innledning"}

	t.Run("basic structure without links", func(t *testing.T) {
		t.Parallel()

		result := ratedoc.Assemble(ratedoc.Decision{Date: date}, nil, fetchedAt)

		assert.True(t, strings.HasPrefix(result, "# Rentebeslutninger 1999-01-27\n\n"))
		assert.Contains(t, result, "* Information Fetched : 2025-12-07T12:00:00.000Z")
		assert.Contains(t, result, "## Data")
		assert.Contains(t, result, "## Resources")
		assert.NotContains(t, result, "### Source:")
	})

	t.Run("exact layout", func(t *testing.T) {
		t.Parallel()

		d := ratedoc.Decision{Date: date, Links: []ratedoc.Link{press}}

		result := ratedoc.Assemble(d, []string{"Renten settes ned."}, fetchedAt)

		expected := "# Rentebeslutninger 1999-01-27\n\n" +
			"* Information Fetched : 2025-12-07T12:00:00.000Z\n\n" +
			"## Data\n\n" +
			"### Source: [Pressemelding](https://example.com/press)\n\n" +
			"Renten settes ned.\n\n" +
			"\n\n## Resources\n\n" +
			"- [Pressemelding](https://example.com/press)\n"
		assert.Equal(t, expected, result)
	})

	t.Run("links without content are only listed as resources", func(t *testing.T) {
		t.Parallel()

		d := ratedoc.Decision{Date: date, Links: []ratedoc.Link{press, intro}}

		result := ratedoc.Assemble(d, nil, fetchedAt)

		assert.Contains(t, result, "- [Pressemelding](https://example.com/press)")
		assert.Contains(t, result, "- [Innledning](https://example.com/innledning)")
		assert.NotContains(t, result, "### Source:")
	})

	t.Run("multiple links with content keep link order", func(t *testing.T) {
		t.Parallel()

		d := ratedoc.Decision{Date: date, Links: []ratedoc.Link{press, intro}}

		result := ratedoc.Assemble(d, []string{"Press release content here", "Innledning content here"}, fetchedAt)

		first := strings.Index(result, "### Source: [Pressemelding](https://example.com/press)")
		second := strings.Index(result, "### Source: [Innledning](https://example.com/innledning)")
		assert.Greater(t, first, 0)
		assert.Greater(t, second, first)
		assert.Contains(t, result, "Press release content here")
		assert.Contains(t, result, "Innledning content here")
	})

	t.Run("skips empty content entries", func(t *testing.T) {
		t.Parallel()

		d := ratedoc.Decision{Date: date, Links: []ratedoc.Link{press, intro}}

		result := ratedoc.Assemble(d, []string{"Valid content", "", ""}, fetchedAt)

		assert.Equal(t, 1, strings.Count(result, "### Source:"))
		assert.Contains(t, result, "Valid content")
		assert.Contains(t, result, "- [Innledning](https://example.com/innledning)")
	})

	t.Run("renders fetch time in UTC", func(t *testing.T) {
		t.Parallel()

		oslo := time.FixedZone("CET", 3600)
		result := ratedoc.Assemble(ratedoc.Decision{Date: date}, nil, time.Date(2025, 12, 7, 13, 0, 0, 0, oslo))

		assert.Contains(t, result, "* Information Fetched : 2025-12-07T12:00:00.000Z")
	})
}
