package weather

import (
	"fmt"
	"time"
)

// SeasonalAdvice produces heuristic guidance for a date when no precise
// forecast exists. Season buckets are fixed by month and not adjusted
// for the destination's hemisphere.
func SeasonalAdvice(destination string, date time.Time) DayContext {
	var season string
	switch date.Month() {
	case time.December, time.January, time.February:
		season = "winter"
	case time.March, time.April, time.May:
		season = "spring"
	case time.June, time.July, time.August:
		season = "summer"
	case time.September, time.October, time.November:
		season = "autumn"
	}

	forAI := fmt.Sprintf("For the trip to %s on %s (%s): ",
		destination, date.Format("2006-01-02"), date.Format("January"))
	forDisplay := fmt.Sprintf("%s (%s): ",
		date.Format("2006-01-02 (Monday)"), date.Format("January"))

	switch season {
	case "summer":
		forAI += "The season there is usually summer. Temperatures run high; guard against the heat, wear light breathable clothing and use sun protection. Avoid outdoor activity around midday."
		forDisplay += "Usually summer. Hot weather, mind the sun. "
	case "winter":
		forAI += "The season there is usually winter. Temperatures run low; dress warmly in heavy layers such as a down jacket, hat and gloves. Indoor/outdoor temperature swings can be large."
		forDisplay += "Usually winter. Cold weather, dress warmly. "
	case "spring":
		forAI += "The season there is usually spring. Weather is changeable with noticeable morning/evening swings; bring layers that are easy to add or remove, and expect the occasional shower."
		forDisplay += "Usually spring. Changeable weather, bring layers. "
	case "autumn":
		forAI += "The season there is usually autumn. Weather is usually pleasant, but mornings and evenings can turn cool; pack a jacket. A good season for outdoor activity."
		forDisplay += "Usually autumn. Pleasant weather, cool mornings and evenings. "
	default:
		// unreachable with the month buckets above, kept as a safety net
		forAI += "Plan around the typical climate norms for that month. "
		forDisplay += "Consult local climate norms. "
	}

	forAI += " This is general seasonal guidance; confirm the actual weather closer to departure."
	forDisplay += "(General seasonal guidance, check the detailed forecast closer to the date)"

	return DayContext{ForAI: forAI, ForDisplay: forDisplay}
}
