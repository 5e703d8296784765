// Package tools exposes the command layer as MCP tools.
//
// Every handler is wrapped by [Toolset.wrap], which tags the call with a
// correlation id, logs it, recovers panics and converts every error into a
// tool result string with a fixed prefix (see [Describe]). No Go error ever
// reaches the MCP transport.
package tools
