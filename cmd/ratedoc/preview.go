package main

import (
	"fmt"

	"github.com/fwojciec/ratedoc"
	"github.com/fwojciec/ratedoc/harvest"
)

// maxLinkWidth bounds the URL column of the preview listing.
const maxLinkWidth = 80

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	scan, err := deps.Harvester.ScanYear(deps.Ctx, c.Year)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ratedoc.ErrorMessage(err))
		return err
	}

	layout := string(scan.Layout)
	if scan.Rendered {
		layout += ", rendered"
	}
	fmt.Fprintf(deps.Stdout, "%s (%s)\n", scan.URL, layout)

	if len(scan.Decisions) == 0 {
		fmt.Fprintln(deps.Stdout, "No decisions found.")
		return nil
	}

	for _, d := range scan.Decisions {
		fmt.Fprintf(deps.Stdout, "%s\n", d.Date)
		for _, l := range d.Links {
			fmt.Fprintf(deps.Stdout, "  %s  %s\n", l.Text, harvest.TruncateURL(l.URL, maxLinkWidth))
		}
	}
	return nil
}
