// Package ui styles the human-facing CLI output with lipgloss.
//
// The MCP server itself never renders anything: tool results are plain text
// or JSON. [Palette] is used by `auth status`, `devices` and `setup` to
// highlight status lines in a terminal.
package ui
