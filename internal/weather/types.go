package weather

import (
	"context"
)

// Provider is the slice of the OpenWeather API the trip pipeline needs.
type Provider interface {
	// Geocode resolves a free-text city name to coordinates (top match only).
	Geocode(ctx context.Context, city string) (*Coordinates, error)
	// LocalTime reads the destination's current local time and UTC offset.
	LocalTime(ctx context.Context, coords Coordinates) (*LocalTime, error)
	// DailyForecast fetches the daily forecast window starting today
	// (up to 8 entries, index 0 = today).
	DailyForecast(ctx context.Context, coords Coordinates) ([]DailyForecast, error)
}

type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

type LocalTime struct {
	Raw           string
	Display       string
	OffsetSeconds int
}

// DailyForecast is one entry of the One Call daily block, kept raw.
// Pointer fields distinguish "absent" from zero.
type DailyForecast struct {
	Dt   int64 `json:"dt"`
	Temp struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
		Day *float64 `json:"day"`
	} `json:"temp"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Humidity *int    `json:"humidity"`
	Pop      float64 `json:"pop"`
}

// DayContext is the paired summary for exactly one calendar date. The
// precise and seasonal paths both produce this shape, so the joining
// code never cares which one ran.
type DayContext struct {
	ForAI      string
	ForDisplay string
}

// Bundle is the aggregate weather context handed to the routing layer.
type Bundle struct {
	WeatherSummaryForAI         string  `json:"weather_summary_for_ai"`
	WeatherDisplay              string  `json:"weather_display"`
	DestinationLocalTimeDisplay string  `json:"destination_local_time_display"`
	DestinationLocalTimeRaw     *string `json:"destination_local_time_raw"`
	TravelDatesDisplay          string  `json:"travel_dates_display"`
}
