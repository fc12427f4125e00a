package weather

import (
	"fmt"
	"strconv"
	"time"
)

const unknownValue = "N/A"

// FormatDay turns one raw daily record into the paired summary for the
// given calendar date. Pure transformation, no I/O.
func FormatDay(day DailyForecast, date time.Time) DayContext {
	tempMin := formatTemp(day.Temp.Min)
	tempMax := formatTemp(day.Temp.Max)
	tempDay := formatTemp(day.Temp.Day)

	description := unknownValue
	if len(day.Weather) > 0 {
		description = day.Weather[0].Description
	}

	humidity := unknownValue
	if day.Humidity != nil {
		humidity = strconv.Itoa(*day.Humidity)
	}

	// fraction to percent, truncating
	pop := int(day.Pop * 100)

	forAI := fmt.Sprintf(
		"Date %s: weather %s, temperature range %s°C to %s°C (daytime around %s°C), humidity %s%%, precipitation probability %d%%.",
		date.Format("2006-01-02"), description, tempMin, tempMax, tempDay, humidity, pop,
	)

	forDisplay := fmt.Sprintf(
		"%s:\n  Weather: %s\n  Temperature: %s°C - %s°C (daytime: %s°C)\n  Humidity: %s%%, precipitation probability: %d%%",
		date.Format("2006-01-02 (Monday)"), description, tempMin, tempMax, tempDay, humidity, pop,
	)

	return DayContext{ForAI: forAI, ForDisplay: forDisplay}
}

func formatTemp(v *float64) string {
	if v == nil {
		return unknownValue
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
