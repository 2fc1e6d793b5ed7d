package main

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	minForecastDays     = 1
	maxForecastDays     = 5
	defaultForecastDays = 5
)

// Service implements the two weather operations on top of a WeatherAPI. It
// holds no mutable state, so one instance serves concurrent calls.
type Service struct {
	api WeatherAPI
}

// NewService creates a service backed by the given upstream API.
func NewService(api WeatherAPI) *Service {
	return &Service{api: api}
}

// ParseQuery validates raw tool arguments into a WeatherQuery. A nil days
// means the argument was omitted and defaults to 5; an explicit out-of-range
// value (including 0) is rejected. Validation failures mean no upstream
// request is ever made.
func ParseQuery(location string, days *int) (WeatherQuery, error) {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return WeatherQuery{}, &ArgumentError{Param: "location", Reason: "must be a non-empty string"}
	}

	d := defaultForecastDays
	if days != nil {
		d = *days
		if d < minForecastDays || d > maxForecastDays {
			return WeatherQuery{}, &ArgumentError{
				Param:  "days",
				Reason: fmt.Sprintf("must be between %d and %d, got %d", minForecastDays, maxForecastDays, d),
			}
		}
	}

	return WeatherQuery{Location: loc, Days: d}, nil
}

// CurrentWeather fetches and renders current conditions for the query.
func (s *Service) CurrentWeather(ctx context.Context, query WeatherQuery) (string, error) {
	cond, err := s.api.CurrentWeather(ctx, query.Location)
	if err != nil {
		return "", err
	}
	return formatCurrent(cond), nil
}

// Forecast fetches the 3-hour series and renders one block per calendar day.
func (s *Service) Forecast(ctx context.Context, query WeatherQuery) (string, error) {
	series, err := s.api.Forecast(ctx, query.Location)
	if err != nil {
		return "", err
	}

	daily, err := reduceDaily(series.List, query.Days)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d-day forecast for %s, %s:\n", len(daily), series.City.Name, series.City.Country)
	for _, day := range daily {
		fmt.Fprintf(&b, "\n%s: %s\n", day.Date, titleCase(day.Description))
		fmt.Fprintf(&b, "  Temperature: %.1f°C (min %.1f°C, max %.1f°C)\n", day.Temp, day.TempMin, day.TempMax)
		fmt.Fprintf(&b, "  Humidity: %d%%\n", day.Humidity)
	}
	return b.String(), nil
}

// formatCurrent renders current conditions as a fixed-order report, one field
// per line.
func formatCurrent(cond *CurrentConditions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current weather for %s, %s:\n", cond.Name, cond.Sys.Country)
	fmt.Fprintf(&b, "Temperature: %.1f°C (feels like %.1f°C)\n", cond.Main.Temp, cond.Main.FeelsLike)
	fmt.Fprintf(&b, "Conditions: %s\n", titleCase(cond.Weather[0].Description))
	fmt.Fprintf(&b, "Humidity: %d%%\n", cond.Main.Humidity)
	fmt.Fprintf(&b, "Wind speed: %.1f m/s\n", cond.Wind.Speed)
	fmt.Fprintf(&b, "Pressure: %d hPa\n", cond.Main.Pressure)
	return b.String()
}

type timedEntry struct {
	entry ForecastEntry
	hour  int
}

// reduceDaily collapses the 3-hour series into one representative entry per
// calendar day: the entry nearest 12:00, with the earlier timestamp winning
// ties. Min/max temperatures are taken across the whole day. At most days
// entries are returned; a shorter series yields fewer without error.
func reduceDaily(entries []ForecastEntry, days int) ([]DailyForecast, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty forecast series", ErrBadPayload)
	}

	byDate := make(map[string][]timedEntry)
	var order []string
	for _, e := range entries {
		if len(e.Weather) == 0 {
			return nil, fmt.Errorf("%w: entry %q has no weather conditions", ErrBadPayload, e.DtTxt)
		}
		date, hour, err := splitTimestamp(e.DtTxt)
		if err != nil {
			return nil, err
		}
		if _, seen := byDate[date]; !seen {
			order = append(order, date)
		}
		byDate[date] = append(byDate[date], timedEntry{entry: e, hour: hour})
	}

	if len(order) > days {
		order = order[:days]
	}

	result := make([]DailyForecast, 0, len(order))
	for _, date := range order {
		dayEntries := byDate[date]

		best := dayEntries[0]
		for _, te := range dayEntries[1:] {
			// strict comparison keeps the earlier entry on ties
			if distanceFromMidday(te.hour) < distanceFromMidday(best.hour) {
				best = te
			}
		}

		tempMin := dayEntries[0].entry.Main.TempMin
		tempMax := dayEntries[0].entry.Main.TempMax
		for _, te := range dayEntries[1:] {
			if te.entry.Main.TempMin < tempMin {
				tempMin = te.entry.Main.TempMin
			}
			if te.entry.Main.TempMax > tempMax {
				tempMax = te.entry.Main.TempMax
			}
		}

		result = append(result, DailyForecast{
			Date:        date,
			Temp:        best.entry.Main.Temp,
			TempMin:     tempMin,
			TempMax:     tempMax,
			Description: best.entry.Weather[0].Description,
			Humidity:    best.entry.Main.Humidity,
		})
	}

	return result, nil
}

// splitTimestamp parses an OpenWeatherMap dt_txt value into its calendar date
// and hour.
func splitTimestamp(dtTxt string) (string, int, error) {
	t, err := time.Parse("2006-01-02 15:04:05", dtTxt)
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad timestamp %q", ErrBadPayload, dtTxt)
	}
	return t.Format("2006-01-02"), t.Hour(), nil
}

func distanceFromMidday(hour int) int {
	if hour > 12 {
		return hour - 12
	}
	return 12 - hour
}

// titleCase uppercases the first letter of each word. OpenWeatherMap returns
// descriptions in lowercase ("scattered clouds").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
