// Package tools exposes calculator operations as callable tools.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/calcy/pkg/tools/toolbox]: Tool type and ToolBox registry
//   - [github.com/germanamz/calcy/pkg/tools/calctools]: keypad tools bound to one calculator engine
//   - [github.com/germanamz/calcy/pkg/tools/mcpserver]: MCP server using the official MCP Go SDK for exposing tools over the MCP protocol
//
// The toolbox sub-package is the foundation layer; calctools produces a
// ToolBox and mcpserver serves one. The mcpserver package is a thin wrapper
// around the official MCP Go SDK (github.com/modelcontextprotocol/go-sdk).
package tools
