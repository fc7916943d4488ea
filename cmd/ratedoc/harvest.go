package main

import (
	"fmt"

	"github.com/fwojciec/ratedoc"
	"github.com/fwojciec/ratedoc/harvest"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	to := c.To
	if to == 0 {
		to = c.From
	}

	progress := func(event harvest.ProgressEvent) {
		switch event.Type {
		case harvest.ProgressYearStarted:
			fmt.Fprintf(deps.Stdout, "%d\n", event.Year)
		case harvest.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "  ✓ %s  %s (%d links)\n", event.Date, event.Path, event.Links)
		case harvest.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  - %s  already harvested\n", event.Date)
		case harvest.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "  ✗ %s  %s\n", event.Date, ratedoc.ErrorMessage(event.Error))
		case harvest.ProgressYearFinished:
			if event.Error != nil {
				fmt.Fprintf(deps.Stdout, "  ✗ year page unavailable: %s\n", ratedoc.ErrorMessage(event.Error))
			}
		}
	}

	result, err := deps.Harvester.HarvestYears(deps.Ctx, c.From, to, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ratedoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d, skipped %d, failed %d (%s)\n",
		result.Saved, result.Skipped, result.Failed, harvest.FormatBytes(result.Bytes))

	if c.MetricsFile != "" && deps.Metrics != nil {
		if err := deps.Metrics.WriteTextfile(c.MetricsFile); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing metrics: %v\n", err)
			return err
		}
	}

	return nil
}
