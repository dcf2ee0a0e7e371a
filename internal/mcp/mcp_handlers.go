package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/thermolog/core"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// seriesResult is the payload of get_series.
type seriesResult struct {
	Criteria schema.Criteria     `json:"criteria"`
	Period   string              `json:"period"`
	Limits   schema.ZoneLimits   `json:"limits"`
	Series   []schema.ChartPoint `json:"series"`
}

// configFor clones the base config and applies the criteria arguments of request.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	criteria, err := contract.OverrideCriteria(
		h.baseCfg.Criteria,
		request.GetString("zone", ""),
		request.GetInt("year", 0),
		request.GetString("month", ""),
		request.GetString("shift", ""),
	)
	if err != nil {
		return nil, err
	}
	return h.baseCfg.CloneWithCriteria(criteria), nil
}

// buildReport is shared by the tools that read the dataset.
func (h *toolHandler) buildReport(ctx context.Context, request mcp.CallToolRequest) (schema.Report, *mcp.CallToolResult) {
	cfg, err := h.configFor(request)
	if err != nil {
		return schema.Report{}, mcp.NewToolResultError(fmt.Sprintf("invalid criteria: %v", err))
	}
	store, err := core.NewRecordStore(cfg)
	if err != nil {
		return schema.Report{}, mcp.NewToolResultError(err.Error())
	}
	return core.BuildReport(core.WithQuiet(ctx), cfg, store, h.mgr), nil
}

func (h *toolHandler) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failure := h.buildReport(ctx, request)
	if failure != nil {
		return failure, nil
	}
	return jsonResult(report), nil
}

func (h *toolHandler) handleGetRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("limit cannot be negative (received %d)", limit)), nil
	}
	report, failure := h.buildReport(ctx, request)
	if failure != nil {
		return failure, nil
	}
	records := report.Records
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return jsonResult(records), nil
}

func (h *toolHandler) handleGetSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, failure := h.buildReport(ctx, request)
	if failure != nil {
		return failure, nil
	}
	return jsonResult(seriesResult{
		Criteria: report.Criteria,
		Period:   report.Period,
		Limits:   report.Limits,
		Series:   report.Series,
	}), nil
}

func (h *toolHandler) handleCheckValue(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	zone := request.GetString("zone", "")
	value := request.GetString("value", "")
	if zone == "" {
		return mcp.NewToolResultError(schema.ErrMissingZone.Error()), nil
	}
	if value == "" {
		return mcp.NewToolResultError(schema.ErrMissingCurrent.Error()), nil
	}
	kind := schema.ParseKind(request.GetString("kind", ""))
	return jsonResult(core.CheckValue(h.baseCfg, zone, kind, value)), nil
}

func (h *toolHandler) handleListZones(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(core.BuildCatalog(h.baseCfg, time.Now())), nil
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}
