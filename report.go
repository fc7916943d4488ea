package ratedoc

import (
	"strings"
	"time"
)

// ReportTitle is the heading prefix of an assembled decision report.
const ReportTitle = "Rentebeslutninger"

// FetchTimeFormat renders fetch timestamps in the report header.
const FetchTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Assemble builds the text report for a decision.
// contents is index-aligned with d.Links; an empty or missing entry means
// the resource could not be retrieved. Such links are left out of the Data
// section but still listed under Resources.
func Assemble(d Decision, contents []string, fetchedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# " + ReportTitle + " " + d.Date.String() + "\n\n")
	b.WriteString("* Information Fetched : " + fetchedAt.UTC().Format(FetchTimeFormat) + "\n\n")

	b.WriteString("## Data\n\n")
	for i, link := range d.Links {
		if i >= len(contents) || contents[i] == "" {
			continue
		}
		b.WriteString("### Source: " + markdownLink(link) + "\n\n")
		b.WriteString(contents[i] + "\n\n")
	}

	b.WriteString("\n\n## Resources\n\n")
	items := make([]string, 0, len(d.Links))
	for _, link := range d.Links {
		items = append(items, "- "+markdownLink(link))
	}
	b.WriteString(strings.Join(items, "\n"))
	b.WriteString("\n")

	return b.String()
}

func markdownLink(l Link) string {
	return "[" + l.Text + "](" + l.URL + ")"
}
