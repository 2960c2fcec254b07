// Package branding holds user-facing product names.
package branding

// AppName is the product name shown to MCP clients.
const AppName = "AKShare"

// ServerTitle is the human-readable MCP server name.
const ServerTitle = AppName + "股票期货数据服务"
