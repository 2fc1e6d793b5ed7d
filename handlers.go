package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewCurrentWeatherHandler returns the get_weather tool handler.
func NewCurrentWeatherHandler(service *Service) func(context.Context, *mcp.CallToolRequest, CurrentWeatherInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CurrentWeatherInput) (*mcp.CallToolResult, any, error) {
		rid := shortID()
		logger := GetLogger()
		logger.Debug("[%s] get_weather location=%q", rid, input.Location)
		RecordCall()

		query, err := ParseQuery(input.Location, nil)
		if err != nil {
			RecordCallError()
			logger.Warn("[%s] get_weather rejected: %v", rid, err)
			return errorResult(err, input.Location), nil, nil
		}

		report, err := service.CurrentWeather(ctx, query)
		if err != nil {
			RecordCallError()
			logger.Error("[%s] get_weather failed: %v", rid, err)
			return errorResult(err, query.Location), nil, nil
		}

		return textResult(report), nil, nil
	}
}

// NewForecastHandler returns the get_weather_forecast tool handler.
func NewForecastHandler(service *Service) func(context.Context, *mcp.CallToolRequest, ForecastInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ForecastInput) (*mcp.CallToolResult, any, error) {
		rid := shortID()
		logger := GetLogger()
		logger.Debug("[%s] get_weather_forecast location=%q", rid, input.Location)
		RecordCall()

		query, err := ParseQuery(input.Location, input.Days)
		if err != nil {
			RecordCallError()
			logger.Warn("[%s] get_weather_forecast rejected: %v", rid, err)
			return errorResult(err, input.Location), nil, nil
		}

		report, err := service.Forecast(ctx, query)
		if err != nil {
			RecordCallError()
			logger.Error("[%s] get_weather_forecast failed: %v", rid, err)
			return errorResult(err, query.Location), nil, nil
		}

		return textResult(report), nil, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult maps the error taxonomy onto user-visible tool failures. These
// are recoverable: the result carries IsError instead of failing the RPC and
// killing the session.
func errorResult(err error, location string) *mcp.CallToolResult {
	var argErr *ArgumentError
	var msg string
	switch {
	case errors.As(err, &argErr):
		msg = fmt.Sprintf("Invalid argument %q: %s", argErr.Param, argErr.Reason)
	case errors.Is(err, ErrMissingAPIKey):
		msg = "Weather API key not configured. Set OPENWEATHER_API_KEY to use this tool."
	case errors.Is(err, ErrLocationNotFound):
		msg = fmt.Sprintf("Location not found: %s", location)
	case errors.Is(err, ErrAuthFailed):
		msg = "Weather API authentication failed: check the configured OPENWEATHER_API_KEY."
	case errors.Is(err, ErrBadPayload):
		msg = fmt.Sprintf("Weather API returned an unexpected response: %v", err)
	default:
		msg = fmt.Sprintf("Weather API request failed: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// shortID returns a compact request id for log correlation.
func shortID() string {
	return uuid.NewString()[:8]
}
