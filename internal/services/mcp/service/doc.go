// Package service exposes the operation registry over MCP.
//
// Every registered operation becomes one MCP tool. The same registry also
// backs a small JSON API on HTTP listeners for discovery and direct calls.
package service
