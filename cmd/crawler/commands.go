package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fbref-crawler/internal/app"
	"github.com/riskibarqy/fbref-crawler/internal/config"
	"github.com/riskibarqy/fbref-crawler/internal/observability"
	"github.com/riskibarqy/fbref-crawler/internal/platform/logging"
	"github.com/riskibarqy/fbref-crawler/internal/platform/refid"
	"github.com/riskibarqy/fbref-crawler/internal/usecase"
	"github.com/spf13/cobra"
)

// cli holds what the subcommands share. Components are built lazily so that
// commands like refid never touch the database.
type cli struct {
	out        io.Writer
	logLevel   string
	cfg        config.Config
	logger     *logging.Logger
	telemetry  *observability.Runtime
	components *app.Components
}

func (c *cli) setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if strings.TrimSpace(c.logLevel) != "" {
		level = logging.ParseLevel(c.logLevel)
	}
	c.cfg = cfg
	c.logger = logging.NewConsole(level)
	logging.SetDefault(c.logger)

	c.telemetry, err = observability.Start(cfg, c.logger, "crawler")
	return err
}

func (c *cli) teardown(cmd *cobra.Command, _ []string) error {
	closeErr := c.components.Close()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 5*time.Second)
	defer cancel()
	if err := c.telemetry.Shutdown(ctx); err != nil {
		c.logger.Warn("shutdown observability", "error", err)
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	return closeErr
}

func (c *cli) build() (*app.Components, error) {
	if c.components != nil {
		return c.components, nil
	}
	components, err := app.Build(c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	c.components = components
	return components, nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:                "fbref-crawler",
		Short:              "Crawl fbref stats pages, snapshot them and import them into storage",
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		crawlCmd(c),
		extractCmd(c),
		importSnapshotsCmd(c),
		refidCmd(c),
		catalogCmd(c),
	)
	return root
}

func crawlCmd(c *cli) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "crawl [league...]",
		Short: "Crawl catalog leagues and import what they yield",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("name at least one league or pass --all")
			}
			components, err := c.build()
			if err != nil {
				return err
			}

			var results []usecase.CrawlResult
			if all {
				results, err = components.Crawler.CrawlAll(cmd.Context())
			} else {
				results, err = components.Crawler.Crawl(cmd.Context(), args...)
			}
			for _, result := range results {
				renderCrawlResult(c.out, result)
			}
			if err != nil {
				return err
			}

			failed := 0
			for _, result := range results {
				failed += result.Failed()
			}
			if failed > 0 {
				c.logger.Warn("crawl finished with failed pages", "failed", failed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "crawl every league in the catalog")
	return cmd
}

func extractCmd(c *cli) *cobra.Command {
	var req usecase.ExtractionRequest
	cmd := &cobra.Command{
		Use:   "extract <kind>",
		Short: "Fetch one page and print the records of one table kind as JSON",
		Long: "Kinds: " + strings.Join(func() []string {
			names := make([]string, 0, len(usecase.ExtractionKinds()))
			for _, kind := range usecase.ExtractionKinds() {
				names = append(names, string(kind))
			}
			return names
		}(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := usecase.ParseExtractionKind(args[0])
			if err != nil {
				return err
			}
			components, err := c.build()
			if err != nil {
				return err
			}

			result, err := components.Extractor.Extract(cmd.Context(), kind, req)
			if err != nil {
				return err
			}
			payload, err := sonic.ConfigStd.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode extraction result: %w", err)
			}
			_, err = fmt.Fprintln(c.out, string(payload))
			return err
		},
	}
	cmd.Flags().StringVar(&req.URL, "url", "", "page URL")
	cmd.Flags().StringVar(&req.Selector, "selector", "", "table id or CSS selector")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func importSnapshotsCmd(c *cli) *cobra.Command {
	var (
		dir     string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "import-snapshots",
		Short: "Replay snapshot files through the importer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			components, err := c.build()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = components.Snapshots.Base()
			}

			reimporter := components.Reimporter
			if cmd.Flags().Changed("workers") {
				reimporter = usecase.NewReimportService(components.Snapshots, components.Importer, workers, c.logger)
			}

			report, err := reimporter.ImportDir(cmd.Context(), dir)
			if err != nil {
				return err
			}
			renderReimportReport(c.out, report)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "snapshot directory (defaults to SNAPSHOT_BASE_PATH)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent imports (defaults to REIMPORT_WORKERS)")
	return cmd
}

func refidCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "refid <name> <club>",
		Short: "Print the reference id derived from a player name and club label",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.out, refid.Generate(args[0], args[1]))
			return err
		},
	}
}

func catalogCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the leagues of the crawl catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			components, err := c.build()
			if err != nil {
				return err
			}
			cat, err := components.Catalog.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			renderCatalog(c.out, cat)
			return nil
		},
	}
}
