package main

import (
	"ProjectReport/internal"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "ProjectReport",
		Usage:     "Concatenate a project's source and config files into one paginated report",
		ArgsUsage: "[project-root]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "rules",
				Usage: "Rule set: " + strings.Join(internal.RuleNames(), ", "),
				Value: internal.DefaultRules,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: pdf or txt",
				Value: internal.FormatPDF,
			},
			&cli.StringFlag{
				Name:  "font",
				Usage: "TrueType font used for the PDF (must cover the project's scripts)",
				Value: internal.DefaultFont,
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Header repeated on every page",
				Value: internal.DefaultTitle,
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Text encoding of the project files",
				Value: internal.DefaultEncoding,
			},
			&cli.IntFlag{
				Name:  "depth",
				Usage: "Max directory depth (0 - unlimited)",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file with defaults (default: <project-root>/" + internal.ConfigFileName + ")",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show a progress bar while rendering (terminal only)",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write logs into file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
		},
		Action: func(c *cli.Context) error {
			internal.InitLogger(c.String("logfile"), c.String("log-level"))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			root := c.Args().First()
			if root == "" {
				var err error
				if root, err = internal.PromptRoot(); err != nil {
					return cli.Exit(err.Error(), 1)
				}
			}

			opts := internal.ReportOptions{
				Root:     root,
				Rules:    c.String("rules"),
				Format:   c.String("format"),
				Font:     c.String("font"),
				Title:    c.String("title"),
				Encoding: c.String("encoding"),
				Depth:    c.Int("depth"),
				Progress: c.Bool("progress") && isatty.IsTerminal(os.Stderr.Fd()),
			}
			cfg, err := internal.FindConfig(c.String("config"), root)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			cfg.Apply(&opts, c.IsSet)
			if err := opts.Validate(); err != nil {
				return cli.Exit(err.Error(), 1)
			}

			sum, err := internal.NewReportGenerator().Generate(ctx, opts)
			if err != nil {
				if ctx.Err() != nil {
					logrus.Warn("Report cancelled")
				}
				logrus.WithError(err).Error("Report failed")
				return cli.Exit(err.Error(), 1)
			}

			if sum.CreatedDir != "" {
				color.New(color.FgYellow).Printf("Project root %s did not exist and was created\n", sum.CreatedDir)
			}
			color.New(color.FgGreen).Println(sum.String())
			fmt.Printf("Read %d files (%s), %d unreadable, in %s\n",
				sum.Stats.FilesRead, humanize.Bytes(uint64(sum.Stats.BytesRead)),
				sum.Stats.ReadErrors, sum.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
