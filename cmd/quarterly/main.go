// Package main provides the CLI entrypoint for the quarterly aggregator.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/clyang82/workflows/internal/config"
	"github.com/clyang82/workflows/internal/quarter"
	"github.com/clyang82/workflows/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "quarterly [YYYY-QN]",
		Short:         "Aggregate daily TODO files into a quarterly report",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAggregate,
	}
}

func runAggregate(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	label := ""
	if len(args) == 1 {
		label = args[0]
	}
	q, err := quarter.Resolve(label, time.Now())
	if err != nil {
		return err
	}

	agg, err := report.Scan(cfg.TodoDir, q)
	if err != nil {
		return err
	}
	doc, err := report.Compose(agg, q, cfg.WeeklyDir, cfg.BrowseURL, time.Now())
	if err != nil {
		return err
	}
	path, err := report.Write(cfg.ReportsDir, q, doc)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d mentions, %d unique issues)\n", path, agg.Total, len(agg.Unique))
	return nil
}
