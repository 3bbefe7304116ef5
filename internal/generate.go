package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// Summary describes a finished run.
type Summary struct {
	Output     string
	Files      int
	Stats      ReportStats
	ScanErr    error
	Elapsed    time.Duration
	CreatedDir string // output directory that did not exist and was created
}

func (s Summary) String() string {
	return fmt.Sprintf("Report saved at %s. Processed %d files.", s.Output, s.Files)
}

// ReportGenerator runs the scan-and-render pipeline.
type ReportGenerator struct {
	Now func() time.Time
}

func NewReportGenerator() *ReportGenerator { return &ReportGenerator{Now: time.Now} }

// Generate is the main pipeline. Only failures touching the output artifact
// are returned; unreadable inputs end up inside the report.
func (g *ReportGenerator) Generate(ctx context.Context, opts ReportOptions) (Summary, error) {
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}
	opts.Prepare()

	out := filepath.Join(OutputDir(opts.Root), opts.OutputName())
	if err := os.Remove(out); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return Summary{}, fmt.Errorf("remove previous report: %w", err)
	}

	var scan ScanResult
	fsys, err := OpenSource(ctx, opts.Root)
	if err != nil {
		logrus.WithError(err).Warnf("Cannot open %s, report will be empty", opts.Root)
	} else {
		if c, ok := fsys.(io.Closer); ok {
			defer c.Close()
		}
		logrus.WithFields(logrus.Fields{"root": opts.Root, "rules": opts.Rules}).Info("Scanning project")
		scan = Walk(ctx, fsys, opts.rules, opts.Depth)
	}
	if ctx.Err() != nil {
		return Summary{}, ctx.Err()
	}
	if scan.Err != nil {
		logrus.WithError(scan.Err).Warn("Some paths could not be scanned")
	}
	logrus.Infof("Found %d files", scan.Len())

	var doc Document
	switch opts.Format {
	case FormatText:
		doc = NewTextWriter(opts.Title)
	default:
		doc = NewPDFWriter(opts.Title, opts.Font)
	}

	in := ReportInput{
		Root: opts.Root,
		Scan: scan,
		Now:  g.now(),
		Load: func(rel string) Content {
			display := filepath.Join(opts.Root, filepath.FromSlash(rel))
			c := LoadContent(fsys, rel, display, opts.decode)
			if !c.OK() {
				logrus.WithError(c.Err).Debugf("Unreadable file %s", display)
			}
			return c
		},
	}
	if opts.Progress && scan.Len() > 0 {
		bar := progressbar.NewOptions(scan.Len(),
			progressbar.OptionSetDescription("Rendering"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		in.Progress = bar
	}
	stats := BuildReport(doc, in)

	sum := Summary{Output: out, Files: scan.Len(), Stats: stats, ScanErr: scan.Err}
	dir := filepath.Dir(out)
	if _, err := os.Stat(dir); errors.Is(err, iofs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Summary{}, fmt.Errorf("create output dir: %w", err)
		}
		logrus.Warnf("Created missing directory %s for the report", dir)
		sum.CreatedDir = dir
	}
	if err := doc.Save(out); err != nil {
		return Summary{}, fmt.Errorf("save report %s: %w", out, err)
	}
	sum.Elapsed = stats.Elapsed()
	logrus.WithField("elapsed", sum.Elapsed).Debug("Report rendered")
	return sum, nil
}

func (g *ReportGenerator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}
