package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/fathomlabs/churnlens/internal/reports"
)

var _ list.Item = reportItem{}

// reportItem wraps [reports.Report] to implement [list.Item].
type reportItem struct {
	report reports.Report
}

func (i reportItem) FilterValue() string { return i.report.Title }
func (i reportItem) Title() string       { return i.report.Title }
func (i reportItem) Description() string { return i.report.Slug }
