package planner

import (
	"fmt"
	"strings"
)

var languageNames = map[string]string{
	"en": "English",
	"zh": "Simplified Chinese (简体中文)",
	"ja": "Japanese (日本語)",
}

func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return "English"
}

const systemMessage = "You are an AI travel assistant that outputs a JSON itinerary " +
	"based on user preferences and detailed weather context (which may mix " +
	"day-specific forecasts with seasonal guidance)."

func buildPrompt(req TripRequest, numDays int, weatherInfo, localTimeRaw string) string {
	interests := "general sightseeing"
	if len(req.Interests) > 0 {
		interests = strings.Join(req.Interests, ", ")
	}

	localTimeInfo := ""
	if localTimeRaw != "" {
		localTimeInfo = fmt.Sprintf("The current local time in %s is approximately %s.\n", req.Destination, localTimeRaw)
	}

	customRequests := strings.TrimSpace(req.OtherRequirements)

	var b strings.Builder
	fmt.Fprintf(&b, "You are MiniTrip, an AI travel itinerary assistant.\n")
	fmt.Fprintf(&b, "The user wants to plan a trip. Generate a personalized itinerary from the information below.\n")
	fmt.Fprintf(&b, "IMPORTANT: All textual content in your JSON response (titles, themes, activity descriptions, reasons, tips, summaries and daily weather forecasts) MUST be in %s.\n\n", languageName(req.TargetLanguage))

	fmt.Fprintf(&b, "User information:\n")
	fmt.Fprintf(&b, "- Origin: %s\n", req.Origin)
	fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- Travel dates: %s to %s (%d days)\n", req.StartDate, req.EndDate, numDays)
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	fmt.Fprintf(&b, "- Preferred pace: %s\n", req.Pace)
	fmt.Fprintf(&b, "- Special requests (important, prioritize these): %s\n\n", customRequests)

	b.WriteString(localTimeInfo)

	fmt.Fprintf(&b, "\nWeather/season information for %s during the trip:\n", req.Destination)
	b.WriteString("---WEATHER INFO START---\n")
	b.WriteString(weatherInfo)
	b.WriteString("\n---WEATHER INFO END---\n\n")

	b.WriteString(`Read the weather information carefully.
- IMPORTANT: if a day has a specific forecast line ("Date YYYY-MM-DD: weather X, temperature ..."), extract a short weather summary for that day (e.g. "light rain, 15-20°C") into that day's "daily_weather_forecast" field.
- If a day only has seasonal guidance, note it as a seasonal estimate or mark the field "N/A".
- Adjust each day's suggested activities to the specific or seasonal weather.

Task:
1. Produce a multi-day itinerary covering all ` + fmt.Sprintf("%d", numDays) + ` days.
2. For every day give the actual calendar date (YYYY-MM-DD), a theme, the day's weather forecast (if available), and morning / afternoon / evening activities each with a reason.
3. Provide practical travel tips relevant to the destination, dates, weather/season and the user's preferences and requests.
4. Finish with a short recommendation summary.

Output format:
Return STRICTLY a single valid JSON object, with no other text before or after it, following this structure:
{
  "trip_title": "...",
  "travel_dates_display": "...",
  "destination_local_time_display": "formatted local time if provided, otherwise 'N/A'",
  "destination_weather_summary": "a concise overall weather summary for the whole trip, may contain newlines",
  "daily_plans": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "daily_weather_forecast": "e.g. sunny then cloudy, 20-28°C; or: seasonally hot",
      "theme": "...",
      "activities": [
        {"time_slot": "Morning", "activity": "...", "reason": "..."},
        {"time_slot": "Afternoon", "activity": "...", "reason": "..."},
        {"time_slot": "Evening", "activity": "...", "reason": "..."}
      ]
    }
  ],
  "travel_tips": ["..."],
  "recommendation_summary": "..."
}
Make sure every string value in the JSON is properly escaped.
The "date" field of each daily plan starts at ` + req.StartDate + ` and advances one calendar day at a time.
Do not include any markdown formatting (such as ` + "```json" + `) in your answer.
`)

	return b.String()
}
