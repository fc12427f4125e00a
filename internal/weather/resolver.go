package weather

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	// Forecasts are precise within seven days of today; beyond that only
	// seasonal guidance applies.
	farTermThresholdDays = 7
	// The One Call daily window covers today plus the next seven days.
	forecastSpanDays = 8
)

// Resolver assembles the per-day weather context for a trip. It never
// returns an error: every provider failure degrades to sentinel text or
// the seasonal heuristic, because weather context is advisory and should
// not sink the whole trip-planning request.
type Resolver struct {
	provider   Provider
	configured bool
	now        func() time.Time
}

func NewResolver(provider Provider, apiKey string) *Resolver {
	return &Resolver{
		provider:   provider,
		configured: apiKey != "",
		now:        time.Now,
	}
}

func (r *Resolver) Resolve(ctx context.Context, destination string, start, end time.Time) Bundle {
	out := Bundle{
		WeatherSummaryForAI:         "No specific weather information could be retrieved; advise based on general knowledge.",
		WeatherDisplay:              "Detailed weather information for the trip dates is unavailable.",
		DestinationLocalTimeDisplay: unknownValue,
		TravelDatesDisplay: fmt.Sprintf("%s to %s",
			start.Format("Jan 02, 2006"), end.Format("Jan 02, 2006")),
	}

	if !r.configured {
		out.WeatherSummaryForAI = "The weather service has no API key configured."
		out.WeatherDisplay = "Weather service is not configured."
		return out
	}

	coords, err := r.provider.Geocode(ctx, destination)
	if err != nil || coords == nil {
		log.Printf("weather: geocoding %q failed: %v", destination, err)
		out.WeatherSummaryForAI = fmt.Sprintf("Could not find location information for city %q.", destination)
		out.WeatherDisplay = fmt.Sprintf("City %q not found.", destination)
		return out
	}

	if localTime, err := r.provider.LocalTime(ctx, *coords); err != nil || localTime == nil {
		log.Printf("weather: local time lookup for %q failed: %v", destination, err)
	} else {
		out.DestinationLocalTimeDisplay = localTime.Display
		raw := localTime.Raw
		out.DestinationLocalTimeRaw = &raw
	}

	today := dateOnly(r.now())
	startDay := dateOnly(start)
	endDay := dateOnly(end)
	daysUntilStart := daysBetween(today, startDay)
	durationDays := daysBetween(startDay, endDay) + 1

	if daysUntilStart > farTermThresholdDays {
		log.Printf("weather: trip to %q starts in %d days, using seasonal guidance", destination, daysUntilStart)
		advice := SeasonalAdvice(destination, startDay)
		out.WeatherSummaryForAI = "This trip is planned far in advance.\n" + advice.ForAI
		out.WeatherDisplay = advice.ForDisplay
		return out
	}

	daily, err := r.provider.DailyForecast(ctx, *coords)
	if err != nil {
		log.Printf("weather: daily forecast for %q failed, using seasonal guidance: %v", destination, err)
		advice := SeasonalAdvice(destination, startDay)
		out.WeatherSummaryForAI = "A detailed weather forecast could not be retrieved.\n" + advice.ForAI
		out.WeatherDisplay = advice.ForDisplay
		return out
	}

	var forAI, forDisplay []string
	for i := 0; i < durationDays; i++ {
		tripDate := startDay.AddDate(0, 0, i)
		offset := daysBetween(today, tripDate)

		var day DayContext
		if offset >= 0 && offset < forecastSpanDays && offset < len(daily) {
			day = FormatDay(daily[offset], tripDate)
		} else {
			day = SeasonalAdvice(destination, tripDate)
		}
		forAI = append(forAI, day.ForAI)
		forDisplay = append(forDisplay, day.ForDisplay)
	}

	if len(forAI) > 0 {
		out.WeatherSummaryForAI = "Weather outlook for the trip:\n" + strings.Join(forAI, "\n")
	}
	if len(forDisplay) > 0 {
		out.WeatherDisplay = strings.Join(forDisplay, "\n")
	}
	if len(forAI) == 0 && len(forDisplay) == 0 {
		// should not happen once the loop above always appends
		advice := SeasonalAdvice(destination, startDay)
		out.WeatherSummaryForAI = advice.ForAI
		out.WeatherDisplay = advice.ForDisplay
	}

	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
