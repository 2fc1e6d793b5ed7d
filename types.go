package main

// Input types for the exposed tools
type CurrentWeatherInput struct {
	Location string `json:"location" jsonschema:"the city to get current weather for (e.g. 'London', 'Jakarta')"`
}

type ForecastInput struct {
	Location string `json:"location" jsonschema:"the city to get the forecast for"`
	Days     *int   `json:"days,omitempty" jsonschema:"number of days to forecast (1-5, default 5)"`
}

// WeatherQuery is a validated tool input. It is only constructed through
// ParseQuery, so the service never sees malformed data.
type WeatherQuery struct {
	Location string
	Days     int
}

// WeatherDescription is one element of an OpenWeatherMap "weather" array.
type WeatherDescription struct {
	Description string `json:"description"`
}

// CurrentConditions is the OpenWeatherMap /weather payload. Only the fields
// rendered in the report are declared.
type CurrentConditions struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Weather []WeatherDescription `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Cod any `json:"cod"` // number on success, string in error bodies
}

// ForecastSeries is the OpenWeatherMap /forecast payload: a 3-hour time
// series covering up to five days.
type ForecastSeries struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []ForecastEntry `json:"list"`
	Cod  any             `json:"cod"`
}

// ForecastEntry is a single 3-hour slot in the series.
type ForecastEntry struct {
	DtTxt string `json:"dt_txt"` // "2026-08-30 12:00:00", series-local time
	Main  struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []WeatherDescription `json:"weather"`
}

// DailyForecast is one calendar day reduced from the 3-hour series.
type DailyForecast struct {
	Date        string
	Temp        float64
	TempMin     float64
	TempMax     float64
	Description string
	Humidity    int
}
