// Package driving declares what the CLI, TUI, HTTP API and MCP server may
// ask of the knowledge base: setup, query, self-test, settings and run
// history. internal/core/services implements each interface.
package driving
