package internal

import (
	"time"
)

// ReportStats counters for one run
type ReportStats struct {
	start      time.Time
	FilesFound int
	FilesRead  int
	ReadErrors int
	BytesRead  int64
}

func (s *ReportStats) Start() {
	s.start = time.Now()
}

func (s *ReportStats) Elapsed() time.Duration {
	return time.Since(s.start)
}

func (s *ReportStats) record(c Content) {
	if c.OK() {
		s.FilesRead++
		s.BytesRead += int64(len(c.Text))
		return
	}
	s.ReadErrors++
}
