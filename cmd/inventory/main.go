// backend-go/cmd/inventory/main.go
package main

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/andresuchdata/storeops/backend-go/internal/app"
	"github.com/andresuchdata/storeops/backend-go/internal/config"
	"github.com/andresuchdata/storeops/backend-go/internal/inventory"
	"github.com/andresuchdata/storeops/backend-go/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("inventory command failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "inventory",
		Usage: "Store inventory analytics reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Data source: demo, csv or postgres",
				EnvVars: []string{"DATA_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Catalog CSV file (csv source)",
				EnvVars: []string{"DATA_CATALOG_FILE"},
			},
			&cli.StringFlag{
				Name:    "sales",
				Usage:   "Sales CSV file (csv source)",
				EnvVars: []string{"DATA_SALES_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "report",
				Usage:     "Print one report, or all of them",
				ArgsUsage: "[all|urgent_stock|expiry|bestsellers|sales|management|overall_status]",
				Action:    runReport,
			},
			{
				Name:   "menu",
				Usage:  "Interactive report menu",
				Action: runMenu,
			},
			{
				Name:   "commit",
				Usage:  "Persist today's post-sale on-hand quantities",
				Action: runCommit,
			},
			{
				Name:   "seed",
				Usage:  "Copy the configured source into the database",
				Action: runSeed,
			},
			{
				Name:      "archive",
				Usage:     "Upload a rendered report to object storage",
				ArgsUsage: "[kind]",
				Action:    runArchive,
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List archived reports",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "date",
								Usage: "Only reports archived on this day (YYYY-MM-DD)",
							},
						},
						Action: runArchiveList,
					},
					{
						Name:      "get",
						Usage:     "Download an archived report",
						ArgsUsage: "KEY",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "out",
								Usage: "Destination file (defaults to the key's file name)",
							},
						},
						Action: runArchiveGet,
					},
				},
			},
		},
		DefaultCommand: "report",
	}
}

// loadConfig applies global flags over the environment configuration.
func loadConfig(c *cli.Context) *config.Config {
	cfg := config.Load()
	if v := c.String("source"); v != "" {
		cfg.Data.Source = v
	}
	if v := c.String("catalog"); v != "" {
		cfg.Data.CatalogFile = v
	}
	if v := c.String("sales"); v != "" {
		cfg.Data.SalesFile = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	logger.SetLevel(cfg.LogLevel)
	return cfg
}

func build(c *cli.Context, opts app.Options) (*app.App, error) {
	return app.Build(c.Context, loadConfig(c), opts)
}

func kindArg(c *cli.Context) (inventory.Kind, error) {
	if c.Args().Len() == 0 {
		return inventory.KindAll, nil
	}
	return inventory.ParseKind(c.Args().First())
}

func runReport(c *cli.Context) error {
	kind, err := kindArg(c)
	if err != nil {
		return err
	}

	a, err := build(c, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := a.Reports.Render(c.Context, kind)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, text)
	return nil
}

func runCommit(c *cli.Context) error {
	a, err := build(c, app.Options{NeedDatabase: true})
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Reports.Commit(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Committed %d products for %s\n", result.Updated, result.Day.Format("2006-01-02"))
	for _, name := range result.Oversold {
		fmt.Fprintf(c.App.Writer, "  oversold, stored as 0: %s\n", name)
	}
	return nil
}

func runSeed(c *cli.Context) error {
	a, err := build(c, app.Options{NeedDatabase: true})
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Reports.Seed(c.Context)
}

func runArchive(c *cli.Context) error {
	kind, err := kindArg(c)
	if err != nil {
		return err
	}

	a, err := build(c, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	key, err := a.Reports.Archive(c.Context, kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Archived %s\n", key)
	return nil
}

func runArchiveList(c *cli.Context) error {
	var day time.Time
	if raw := c.String("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		day = parsed
	}

	a, err := build(c, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	objects, err := a.Reports.ListArchive(c.Context, day)
	if err != nil {
		return err
	}
	for _, o := range objects {
		fmt.Fprintf(c.App.Writer, "%8d  %s\n", o.Size, o.Key)
	}
	return nil
}

func runArchiveGet(c *cli.Context) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("archive get needs a KEY")
	}
	dest := c.String("out")
	if dest == "" {
		dest = path.Base(key)
	}

	a, err := build(c, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Reports.FetchArchive(c.Context, key, dest); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Downloaded %s to %s\n", key, dest)
	return nil
}
