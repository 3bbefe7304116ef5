package internal

import (
	"time"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"

	StructureTitle = "Project Directory Structure"
	ContentTitle   = "Main Files Content"
)

// Document is the paginated sink the report is written into. Writers repeat
// the report title on every page through their own page-start hook.
type Document interface {
	AddPage()
	// Title writes a section or file heading.
	Title(text string)
	// Info writes one line of the front section.
	Info(text string)
	// Gap adds vertical space in millimetres (lines for text output).
	Gap(h float64)
	// Body writes a wrapped text block.
	Body(text string)
	Save(path string) error
}

// Progress is advanced once per file body written.
type Progress interface {
	Add(n int) error
}

// ReportInput is everything BuildReport needs besides the document.
type ReportInput struct {
	Root     string
	Scan     ScanResult
	Load     func(rel string) Content
	Now      time.Time
	Progress Progress
}

// BuildReport writes the front section, the directory structure and one
// subsection per scanned file into doc.
func BuildReport(doc Document, in ReportInput) ReportStats {
	var stats ReportStats
	stats.Start()
	stats.FilesFound = in.Scan.Len()

	doc.AddPage()
	doc.Info("Generated on: " + in.Now.Format(TimestampLayout))
	doc.Info("Project Path: " + in.Root)
	doc.Gap(10)

	doc.Title(StructureTitle)
	for _, rel := range in.Scan.Paths {
		doc.Body(DisplayPath(rel))
	}

	doc.AddPage()
	doc.Title(ContentTitle)
	for _, rel := range in.Scan.Paths {
		c := in.Load(rel)
		stats.record(c)
		doc.Title("File: " + DisplayPath(rel))
		doc.Body(c.String())
		if in.Progress != nil {
			_ = in.Progress.Add(1)
		}
	}
	return stats
}
