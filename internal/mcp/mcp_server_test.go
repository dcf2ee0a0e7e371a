package mcp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	mcp_internal "github.com/huangsam/thermolog/internal/mcp"
	"github.com/huangsam/thermolog/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, baseCfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(baseCfg, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func baseConfig(endpoint string) *contract.Config {
	return &contract.Config{
		Endpoint:  endpoint,
		Timeout:   time.Second,
		Criteria:  schema.Criteria{Zone: "OPTICA", Year: 2024, Month: 2, Shift: schema.ShiftAll},
		Precision: 1,
	}
}

func sheetServer(t *testing.T) *httptest.Server {
	t.Helper()
	rows := []schema.RawRecord{
		{"Fecha": "2024-03-15", "Jornada": "Mañana", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": "24,5"},
		{"Fecha": "2024-03-16", "Jornada": "Tarde", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": 31},
		{"Fecha": "2024-03-16", "Jornada": "Tarde", "Area": "FARMACIA", "Responsable": "Eva", "Actual": "22"},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(rows)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := baseConfig("")

	t.Run("get_report invalid month", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_report", map[string]any{"month": "13"})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(res), "month must be between 1 and 12")
	})

	t.Run("get_series invalid shift", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_series", map[string]any{"shift": "night"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "invalid shift")
	})

	t.Run("get_records negative limit", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_records", map[string]any{"limit": -1.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "limit cannot be negative")
	})

	t.Run("get_report without endpoint", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_report", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), "no endpoint configured")
	})

	t.Run("check_value missing value", func(t *testing.T) {
		res := callTool(t, baseCfg, "check_value", map[string]any{"zone": "OPTICA"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), schema.ErrMissingCurrent.Error())
	})

	t.Run("check_value missing zone", func(t *testing.T) {
		res := callTool(t, baseCfg, "check_value", map[string]any{"value": "20"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(res), schema.ErrMissingZone.Error())
	})
}

func TestMCPServerHandlers_Results(t *testing.T) {
	server := sheetServer(t)
	baseCfg := baseConfig(server.URL)

	t.Run("get_report", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_report", map[string]any{"month": "marzo"})
		require.False(t, res.IsError, resultText(res))

		var report schema.Report
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &report))
		assert.Equal(t, "Marzo 2024", report.Period)
		assert.Equal(t, 2, report.Summary.Count)
		assert.Equal(t, 1, report.Summary.OutOfRange)
	})

	t.Run("get_records with shift and limit", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_records", map[string]any{"shift": "morning", "limit": 5.0})
		require.False(t, res.IsError, resultText(res))

		var records []schema.Record
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &records))
		require.Len(t, records, 1)
		assert.Equal(t, 24.5, *records[0].TempCurrent)
	})

	t.Run("get_records limit truncates", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_records", map[string]any{"limit": 1.0})
		var records []schema.Record
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "2024-03-16", records[0].Date)
	})

	t.Run("get_series other zone", func(t *testing.T) {
		res := callTool(t, baseCfg, "get_series", map[string]any{"zone": "FARMACIA"})
		require.False(t, res.IsError, resultText(res))
		assert.Contains(t, resultText(res), `"zone": "FARMACIA"`)
		assert.Contains(t, resultText(res), `"label": "16 (T)"`)
	})

	t.Run("check_value", func(t *testing.T) {
		res := callTool(t, baseCfg, "check_value", map[string]any{"zone": "OPTICA", "kind": "Humidity", "value": "80"})
		require.False(t, res.IsError)

		var check schema.RangeCheck
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &check))
		assert.Equal(t, schema.HumidityKind, check.Kind)
		assert.True(t, check.OutOfRange)
	})

	t.Run("list_zones", func(t *testing.T) {
		res := callTool(t, baseCfg, "list_zones", nil)
		var catalog schema.Catalog
		require.NoError(t, json.Unmarshal([]byte(resultText(res)), &catalog))
		assert.Equal(t, schema.Zones, catalog.Zones)
		assert.Len(t, catalog.Years, 5)
		assert.NotEmpty(t, catalog.Limits)
	})
}
