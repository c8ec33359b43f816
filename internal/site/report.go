package site

import "time"

// Report summarises a generation run.
type Report struct {
	Pages          int              // Pages planned
	Written        int              // Pages written successfully
	RenderFailures int              // Pages whose content is a render error message
	WriteFailures  int              // Pages that could not be written
	Skipped        int              // Pages not attempted because the run was canceled
	ByType         map[PageType]int // Written pages per type
	Duration       time.Duration
}

func newReport(pages int) *Report {
	return &Report{Pages: pages, ByType: make(map[PageType]int, 4)}
}

// OK reports whether every planned page was rendered and written.
func (r *Report) OK() bool {
	return r.RenderFailures == 0 && r.WriteFailures == 0 && r.Skipped == 0 && r.Written == r.Pages
}
