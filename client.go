package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// WeatherAPI is the upstream capability the service depends on. The live
// implementation is OpenWeatherClient; tests substitute a counting stub.
type WeatherAPI interface {
	CurrentWeather(ctx context.Context, location string) (*CurrentConditions, error)
	Forecast(ctx context.Context, location string) (*ForecastSeries, error)
}

// OpenWeatherClient talks to the OpenWeatherMap data/2.5 API. The credential
// and HTTP client are read-only after construction, so the client is safe for
// concurrent use.
type OpenWeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenWeatherClient creates a client with the configured credential and a
// bounded request timeout.
func NewOpenWeatherClient(cfg *Config) *OpenWeatherClient {
	return &OpenWeatherClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// CurrentWeather fetches current conditions for a location.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, location string) (*CurrentConditions, error) {
	body, err := c.get(ctx, "/weather", location)
	if err != nil {
		return nil, err
	}

	var cond CurrentConditions
	if err := json.Unmarshal(body, &cond); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	// OWM occasionally reports "city not found" in a 200 body
	if codNotFound(cond.Cod) {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}
	if len(cond.Weather) == 0 {
		return nil, fmt.Errorf("%w: missing weather conditions", ErrBadPayload)
	}

	return &cond, nil
}

// Forecast fetches the 3-hour forecast series for a location.
func (c *OpenWeatherClient) Forecast(ctx context.Context, location string) (*ForecastSeries, error) {
	body, err := c.get(ctx, "/forecast", location)
	if err != nil {
		return nil, err
	}

	var series ForecastSeries
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if codNotFound(series.Cod) {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}
	if len(series.List) == 0 {
		return nil, fmt.Errorf("%w: empty forecast series", ErrBadPayload)
	}

	return &series, nil
}

// get issues one GET to the given endpoint with the location, credential and
// metric units. Status codes are mapped onto the error taxonomy; no retries.
func (c *OpenWeatherClient) get(ctx context.Context, path, location string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w (status 401)", ErrAuthFailed)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w (status %d)", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return body, nil
}

// codNotFound reports whether an OpenWeatherMap "cod" field carries 404.
// OWM encodes it as a number on success and as a string in error bodies.
func codNotFound(cod any) bool {
	switch v := cod.(type) {
	case string:
		return v == "404"
	case float64:
		return v == 404
	}
	return false
}
