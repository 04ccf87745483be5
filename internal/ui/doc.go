// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing the report suite:
//  1. [ReportListView] : Browse the available reports
//  2. [TableView] : Inspect one report's result table
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Reports run as tea commands against an in-memory dataset, so the list stays responsive while a report computes.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
