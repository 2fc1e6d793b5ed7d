package main

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockWeatherAPI is a counting stub for the upstream client. The call
// counters let tests assert that validation failures never reach the network.
type MockWeatherAPI struct {
	currentCalls  int
	forecastCalls int
	conditions    *CurrentConditions
	series        *ForecastSeries
	currentErr    error
	forecastErr   error
}

func (m *MockWeatherAPI) CurrentWeather(ctx context.Context, location string) (*CurrentConditions, error) {
	m.currentCalls++
	if m.currentErr != nil {
		return nil, m.currentErr
	}
	return m.conditions, nil
}

func (m *MockWeatherAPI) Forecast(ctx context.Context, location string) (*ForecastSeries, error) {
	m.forecastCalls++
	if m.forecastErr != nil {
		return nil, m.forecastErr
	}
	return m.series, nil
}

func testConditions() *CurrentConditions {
	cond := &CurrentConditions{}
	cond.Name = "London"
	cond.Sys.Country = "GB"
	cond.Main.Temp = 18.5
	cond.Main.FeelsLike = 17.2
	cond.Main.Humidity = 72
	cond.Main.Pressure = 1012
	cond.Wind.Speed = 4.1
	cond.Weather = []WeatherDescription{{Description: "scattered clouds"}}
	return cond
}

func testEntry(day, hour int, desc string, temp, tempMin, tempMax float64, humidity int) ForecastEntry {
	e := ForecastEntry{DtTxt: fmt.Sprintf("2026-09-%02d %02d:00:00", day, hour)}
	e.Main.Temp = temp
	e.Main.TempMin = tempMin
	e.Main.TempMax = tempMax
	e.Main.Humidity = humidity
	e.Weather = []WeatherDescription{{Description: desc}}
	return e
}

// testSeries builds a chronological 3-hour series covering the given number
// of days, with per-slot descriptions so tests can tell which entry was kept.
func testSeries(days int) *ForecastSeries {
	s := &ForecastSeries{}
	s.City.Name = "London"
	s.City.Country = "GB"
	for d := 1; d <= days; d++ {
		for _, h := range []int{0, 3, 6, 9, 12, 15, 18, 21} {
			s.List = append(s.List, testEntry(d, h, fmt.Sprintf("d%d h%d", d, h), 15.0+float64(h)/10, 10.0, 20.0, 60+h))
		}
	}
	return s
}

var _ = Describe("ParseQuery", func() {
	It("accepts a location with omitted days and defaults to 5", func() {
		q, err := ParseQuery("London", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Location).To(Equal("London"))
		Expect(q.Days).To(Equal(5))
	})

	It("trims surrounding whitespace from the location", func() {
		q, err := ParseQuery("  New York  ", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Location).To(Equal("New York"))
	})

	It("rejects an empty location", func() {
		_, err := ParseQuery("", nil)
		var argErr *ArgumentError
		Expect(errors.As(err, &argErr)).To(BeTrue())
		Expect(argErr.Param).To(Equal("location"))
	})

	It("rejects a whitespace-only location", func() {
		_, err := ParseQuery("   ", nil)
		var argErr *ArgumentError
		Expect(errors.As(err, &argErr)).To(BeTrue())
		Expect(argErr.Param).To(Equal("location"))
	})

	It("accepts days at both bounds", func() {
		for _, d := range []int{1, 5} {
			days := d
			q, err := ParseQuery("London", &days)
			Expect(err).NotTo(HaveOccurred())
			Expect(q.Days).To(Equal(d))
		}
	})

	It("rejects days outside [1,5], including an explicit 0", func() {
		for _, d := range []int{-1, 0, 6, 100} {
			days := d
			_, err := ParseQuery("London", &days)
			var argErr *ArgumentError
			Expect(errors.As(err, &argErr)).To(BeTrue(), "days=%d should be rejected", d)
			Expect(argErr.Param).To(Equal("days"))
			Expect(argErr.Reason).To(ContainSubstring("between 1 and 5"))
		}
	})
})

var _ = Describe("Service", func() {
	var mock *MockWeatherAPI
	var service *Service

	BeforeEach(func() {
		mock = &MockWeatherAPI{
			conditions: testConditions(),
			series:     testSeries(5),
		}
		service = NewService(mock)
	})

	Context("CurrentWeather", func() {
		It("renders every field from the payload in fixed order", func() {
			report, err := service.CurrentWeather(context.Background(), WeatherQuery{Location: "London", Days: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(report).To(Equal("Current weather for London, GB:\n" +
				"Temperature: 18.5°C (feels like 17.2°C)\n" +
				"Conditions: Scattered Clouds\n" +
				"Humidity: 72%\n" +
				"Wind speed: 4.1 m/s\n" +
				"Pressure: 1012 hPa\n"))
		})

		It("passes upstream errors through unchanged", func() {
			mock.currentErr = fmt.Errorf("%w: Nowhereville", ErrLocationNotFound)
			_, err := service.CurrentWeather(context.Background(), WeatherQuery{Location: "Nowhereville", Days: 5})
			Expect(errors.Is(err, ErrLocationNotFound)).To(BeTrue())
		})
	})

	Context("Forecast", func() {
		It("returns one block per day, chronological, capped to the requested days", func() {
			report, err := service.Forecast(context.Background(), WeatherQuery{Location: "London", Days: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(report).To(HavePrefix("3-day forecast for London, GB:\n"))
			Expect(report).To(ContainSubstring("2026-09-01:"))
			Expect(report).To(ContainSubstring("2026-09-02:"))
			Expect(report).To(ContainSubstring("2026-09-03:"))
			Expect(report).NotTo(ContainSubstring("2026-09-04:"))
			Expect(report).NotTo(ContainSubstring("2026-09-05:"))
		})

		It("uses the entry nearest midday for each day", func() {
			report, err := service.Forecast(context.Background(), WeatherQuery{Location: "London", Days: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(report).To(ContainSubstring("2026-09-01: D1 H12"))
			Expect(report).To(ContainSubstring("2026-09-02: D2 H12"))
		})

		It("returns only the available days when the series is short", func() {
			mock.series = testSeries(2)
			report, err := service.Forecast(context.Background(), WeatherQuery{Location: "London", Days: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(report).To(HavePrefix("2-day forecast for London, GB:\n"))
		})
	})
})

var _ = Describe("reduceDaily", func() {
	It("picks the entry closest to 12:00 when midday is absent", func() {
		entries := []ForecastEntry{
			testEntry(1, 6, "morning", 12, 10, 14, 70),
			testEntry(1, 11, "late morning", 16, 10, 18, 60),
			testEntry(1, 18, "evening", 14, 10, 16, 65),
		}
		daily, err := reduceDaily(entries, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(daily).To(HaveLen(1))
		Expect(daily[0].Description).To(Equal("late morning"))
	})

	It("prefers the earlier entry when two are equidistant from midday", func() {
		entries := []ForecastEntry{
			testEntry(1, 9, "nine", 12, 10, 14, 70),
			testEntry(1, 15, "fifteen", 16, 10, 18, 60),
		}
		daily, err := reduceDaily(entries, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(daily).To(HaveLen(1))
		Expect(daily[0].Description).To(Equal("nine"))
	})

	It("computes min and max temperature across the whole day", func() {
		entries := []ForecastEntry{
			testEntry(1, 6, "a", 12, 8, 14, 70),
			testEntry(1, 12, "b", 18, 15, 19, 60),
			testEntry(1, 18, "c", 14, 11, 22, 65),
		}
		daily, err := reduceDaily(entries, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(daily[0].TempMin).To(Equal(8.0))
		Expect(daily[0].TempMax).To(Equal(22.0))
		Expect(daily[0].Temp).To(Equal(18.0))
		Expect(daily[0].Humidity).To(Equal(60))
	})

	It("keeps days in chronological order", func() {
		daily, err := reduceDaily(testSeries(4).List, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(daily).To(HaveLen(4))
		for i, day := range daily {
			Expect(day.Date).To(Equal(fmt.Sprintf("2026-09-%02d", i+1)))
		}
	})

	It("rejects an empty series as a malformed response", func() {
		_, err := reduceDaily(nil, 3)
		Expect(errors.Is(err, ErrBadPayload)).To(BeTrue())
	})

	It("rejects entries without weather conditions", func() {
		entry := testEntry(1, 12, "x", 10, 8, 12, 50)
		entry.Weather = nil
		_, err := reduceDaily([]ForecastEntry{entry}, 3)
		Expect(errors.Is(err, ErrBadPayload)).To(BeTrue())
	})

	It("rejects entries with unparsable timestamps", func() {
		entry := testEntry(1, 12, "x", 10, 8, 12, 50)
		entry.DtTxt = "not a timestamp"
		_, err := reduceDaily([]ForecastEntry{entry}, 3)
		Expect(errors.Is(err, ErrBadPayload)).To(BeTrue())
	})
})

var _ = Describe("titleCase", func() {
	It("uppercases the first letter of each word", func() {
		Expect(titleCase("scattered clouds")).To(Equal("Scattered Clouds"))
		Expect(titleCase("light rain")).To(Equal("Light Rain"))
	})

	It("handles empty and single-word input", func() {
		Expect(titleCase("")).To(Equal(""))
		Expect(titleCase("mist")).To(Equal("Mist"))
	})
})
