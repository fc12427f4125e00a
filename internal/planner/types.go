package planner

// TripRequest is the payload accepted by POST /api/plan-trip.
type TripRequest struct {
	Destination       string   `json:"destination"`
	Origin            string   `json:"origin"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	Interests         []string `json:"interests"`
	Pace              string   `json:"pace"`
	OtherRequirements string   `json:"other_requirements"`
	TargetLanguage    string   `json:"target_language"`
}

// TripPlan is the itinerary the model returns, serialized back to the
// caller as-is after the weather fields are backfilled.
type TripPlan struct {
	TripTitle                   string      `json:"trip_title"`
	TravelDatesDisplay          string      `json:"travel_dates_display"`
	DestinationLocalTimeDisplay string      `json:"destination_local_time_display"`
	DestinationWeatherSummary   string      `json:"destination_weather_summary"`
	DailyPlans                  []DailyPlan `json:"daily_plans"`
	TravelTips                  []string    `json:"travel_tips"`
	RecommendationSummary       string      `json:"recommendation_summary"`
}

type DailyPlan struct {
	Day                  int        `json:"day"`
	Date                 string     `json:"date"`
	DailyWeatherForecast string     `json:"daily_weather_forecast"`
	Theme                string     `json:"theme"`
	Activities           []Activity `json:"activities"`
}

type Activity struct {
	TimeSlot string `json:"time_slot"`
	Activity string `json:"activity"`
	Reason   string `json:"reason"`
}
