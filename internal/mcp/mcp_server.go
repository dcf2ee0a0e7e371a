// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Thermolog MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Thermolog Readings Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Summarize temperature and humidity readings of one zone for a month: means, out-of-range count and chart series."),
		zoneOption(), yearOption(), monthOption(), shiftOption(),
	), h.handleGetReport)

	s.AddTool(mcp.NewTool("get_records",
		mcp.WithDescription("List the readings of one zone for a month, newest first."),
		zoneOption(), yearOption(), monthOption(), shiftOption(),
		mcp.WithNumber("limit", mcp.Description("Limit the number of readings returned.")),
	), h.handleGetRecords)

	s.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("Return the chart series of one zone for a month together with the zone's acceptable ranges."),
		zoneOption(), yearOption(), monthOption(), shiftOption(),
	), h.handleGetSeries)

	s.AddTool(mcp.NewTool("check_value",
		mcp.WithDescription("Check whether a typed reading falls inside its zone's acceptable range."),
		mcp.WithString("zone", mcp.Description("Zone the reading belongs to."), mcp.Required()),
		mcp.WithString("kind", mcp.Description("Reading kind. Defaults to 'Temperature'."), mcp.Enum("Temperature", "Humidity")),
		mcp.WithString("value", mcp.Description("Value as typed, e.g. '24,5'."), mcp.Required()),
	), h.handleCheckValue)

	s.AddTool(mcp.NewTool("list_zones",
		mcp.WithDescription("List the zones, shifts, months and years that can be selected, plus the zone limit table."),
	), h.handleListZones)

	return s
}

func zoneOption() mcp.ToolOption {
	return mcp.WithString("zone", mcp.Description("Zone to report on (defaults to the configured zone)."))
}

func yearOption() mcp.ToolOption {
	return mcp.WithNumber("year", mcp.Description("Four-digit year (defaults to the configured year)."))
}

func monthOption() mcp.ToolOption {
	return mcp.WithString("month", mcp.Description("Month as 1-12 or a month name, e.g. 'marzo'."))
}

func shiftOption() mcp.ToolOption {
	return mcp.WithString("shift", mcp.Description("Shift filter. Defaults to 'all'."), mcp.Enum("all", "morning", "afternoon"))
}

// StartMCPServer starts the Thermolog MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
