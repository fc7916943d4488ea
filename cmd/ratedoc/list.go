package main

import (
	"fmt"

	"github.com/fwojciec/ratedoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := ratedoc.RecordFilter{Offset: c.Offset, Limit: c.Limit}
	if c.Year != 0 {
		filter.Year = &c.Year
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ratedoc.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No decisions recorded. Use 'ratedoc harvest' to fetch some.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %d/%d  %s\n", r.Date, r.Layout, r.Fetched, len(r.Links), r.Path)
	}
	return nil
}
