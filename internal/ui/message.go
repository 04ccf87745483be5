package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fathomlabs/churnlens/internal/reports"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgReportDone MsgKind = iota
)

// reportDoneMsg is the constructor for [MsgReportDone]
func reportDoneMsg(table *reports.Table, err error) Msg {
	return Msg{
		kind: MsgReportDone,
		data: struct {
			table *reports.Table
			err   error
		}{table, err},
	}
}
