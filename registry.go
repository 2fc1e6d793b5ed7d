package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	toolGetWeather  = "get_weather"
	toolGetForecast = "get_weather_forecast"
)

// Registry is the single source of truth for the tools this server exposes.
// Descriptors are built once at startup and read-only afterwards.
type Registry struct {
	service *Service
	tools   []*mcp.Tool
}

// NewRegistry creates the registry over the given service.
func NewRegistry(service *Service) *Registry {
	return &Registry{
		service: service,
		tools: []*mcp.Tool{
			{
				Name:        toolGetWeather,
				Description: "Get current weather for a location (temperature, conditions, humidity, wind, pressure)",
			},
			{
				Name:        toolGetForecast,
				Description: "Get a 1-5 day weather forecast for a location (default 5 days)",
			},
		},
	}
}

// Tools returns the tool descriptors in declaration order. The returned slice
// is a copy so callers cannot mutate the registry.
func (r *Registry) Tools() []*mcp.Tool {
	out := make([]*mcp.Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Install registers every tool on the MCP server. Input schemas are derived
// by the go-sdk from the typed input structs.
func (r *Registry) Install(server *mcp.Server) {
	mcp.AddTool(server, r.tools[0], NewCurrentWeatherHandler(r.service))
	mcp.AddTool(server, r.tools[1], NewForecastHandler(r.service))
}

// Dispatch routes a raw call by exact tool name. It mirrors what the MCP
// transport does and keeps the routing and decoding rules testable without a
// connected client. Unknown tools and undecodable arguments come back as
// is-error results, never as panics or process exits.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	switch name {
	case toolGetWeather:
		var input CurrentWeatherInput
		if res := decodeArgs(args, &input); res != nil {
			return res, nil
		}
		result, _, err := NewCurrentWeatherHandler(r.service)(ctx, nil, input)
		return result, err
	case toolGetForecast:
		var input ForecastInput
		if res := decodeArgs(args, &input); res != nil {
			return res, nil
		}
		result, _, err := NewForecastHandler(r.service)(ctx, nil, input)
		return result, err
	default:
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Unknown tool: %s", name)},
			},
			IsError: true,
		}, nil
	}
}

// decodeArgs converts a raw argument map into a typed input, reporting
// wrong-typed values as invalid arguments before any handler runs.
func decodeArgs(args map[string]any, into any) *mcp.CallToolResult {
	data, err := json.Marshal(args)
	if err != nil {
		return errorResult(&ArgumentError{Param: "arguments", Reason: err.Error()}, "")
	}
	if err := json.Unmarshal(data, into); err != nil {
		return errorResult(&ArgumentError{Param: "arguments", Reason: "arguments do not match the tool schema"}, "")
	}
	return nil
}
