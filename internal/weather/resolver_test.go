package weather

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

// fakeProvider scripts each provider call and counts invocations.
type fakeProvider struct {
	coords       *Coordinates
	geocodeErr   error
	localTime    *LocalTime
	localTimeErr error
	daily        []DailyForecast
	dailyErr     error

	geocodeCalls int
	dailyCalls   int
}

func (f *fakeProvider) Geocode(ctx context.Context, city string) (*Coordinates, error) {
	f.geocodeCalls++
	return f.coords, f.geocodeErr
}

func (f *fakeProvider) LocalTime(ctx context.Context, coords Coordinates) (*LocalTime, error) {
	return f.localTime, f.localTimeErr
}

func (f *fakeProvider) DailyForecast(ctx context.Context, coords Coordinates) ([]DailyForecast, error) {
	f.dailyCalls++
	return f.daily, f.dailyErr
}

// 2025-06-02 is a Monday; all resolver tests anchor "today" here.
var testToday = time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC)

func newTestResolver(p Provider) *Resolver {
	r := NewResolver(p, "test-key")
	r.now = func() time.Time { return testToday }
	return r
}

func eightDayWindow() []DailyForecast {
	daily := make([]DailyForecast, 8)
	for i := range daily {
		daily[i] = testDay(10+float64(i), 20+float64(i), 15, "clear sky", 50, 0.1)
	}
	return daily
}

func day(offset int) time.Time {
	return testToday.AddDate(0, 0, offset)
}

func aiSegmentCount(bundle Bundle) int {
	return strings.Count(bundle.WeatherSummaryForAI, "Date ") +
		strings.Count(bundle.WeatherSummaryForAI, "For the trip to ")
}

func TestResolveNoAPIKey(t *testing.T) {
	p := &fakeProvider{geocodeErr: errors.New("should not be called")}
	r := NewResolver(p, "")
	r.now = func() time.Time { return testToday }

	bundle := r.Resolve(context.Background(), "Tokyo", day(1), day(3))

	if bundle.WeatherSummaryForAI != "The weather service has no API key configured." {
		t.Errorf("WeatherSummaryForAI = %q", bundle.WeatherSummaryForAI)
	}
	if bundle.WeatherDisplay != "Weather service is not configured." {
		t.Errorf("WeatherDisplay = %q", bundle.WeatherDisplay)
	}
	if p.geocodeCalls != 0 {
		t.Errorf("geocode called %d times, want 0", p.geocodeCalls)
	}
	if bundle.TravelDatesDisplay != "Jun 03, 2025 to Jun 05, 2025" {
		t.Errorf("TravelDatesDisplay = %q", bundle.TravelDatesDisplay)
	}
}

func TestResolveCityNotFound(t *testing.T) {
	p := &fakeProvider{geocodeErr: errors.New("no geocoding match")}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Nowhereville", day(1), day(3))

	if !strings.Contains(bundle.WeatherSummaryForAI, `Could not find location information for city "Nowhereville"`) {
		t.Errorf("WeatherSummaryForAI = %q", bundle.WeatherSummaryForAI)
	}
	if p.dailyCalls != 0 {
		t.Errorf("daily forecast called %d times, want 0", p.dailyCalls)
	}
	if bundle.DestinationLocalTimeRaw != nil {
		t.Errorf("DestinationLocalTimeRaw = %v, want nil", *bundle.DestinationLocalTimeRaw)
	}
}

func TestResolveNilLocalTimeIsNonFatal(t *testing.T) {
	// a provider may signal a missing reading as (nil, nil); the bundle
	// must still come back well formed
	p := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Tokyo", day(0), day(2))

	if bundle.DestinationLocalTimeDisplay != "N/A" {
		t.Errorf("DestinationLocalTimeDisplay = %q, want N/A", bundle.DestinationLocalTimeDisplay)
	}
	if bundle.DestinationLocalTimeRaw != nil {
		t.Error("DestinationLocalTimeRaw should be nil when no reading exists")
	}
	if got := aiSegmentCount(bundle); got != 3 {
		t.Errorf("day segments = %d, want 3", got)
	}
}

func TestResolveNilCoordinates(t *testing.T) {
	// same (nil, nil) trap on the geocode result
	p := &fakeProvider{}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Tokyo", day(0), day(2))

	if !strings.Contains(bundle.WeatherSummaryForAI, `Could not find location information for city "Tokyo"`) {
		t.Errorf("WeatherSummaryForAI = %q", bundle.WeatherSummaryForAI)
	}
	if p.dailyCalls != 0 {
		t.Errorf("daily forecast called %d times, want 0", p.dailyCalls)
	}
}

func TestResolveLocalTimeFailureIsNonFatal(t *testing.T) {
	p := &fakeProvider{
		coords:       &Coordinates{Latitude: 35.7, Longitude: 139.7},
		localTimeErr: errors.New("timeout"),
		daily:        eightDayWindow(),
	}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Tokyo", day(0), day(2))

	if bundle.DestinationLocalTimeDisplay != "N/A" {
		t.Errorf("DestinationLocalTimeDisplay = %q, want N/A", bundle.DestinationLocalTimeDisplay)
	}
	if bundle.DestinationLocalTimeRaw != nil {
		t.Error("DestinationLocalTimeRaw should be nil on local-time failure")
	}
	// the pipeline still produced the precise forecast
	if got := aiSegmentCount(bundle); got != 3 {
		t.Errorf("day segments = %d, want 3", got)
	}
}

func TestResolveFarTermUsesOneSeasonalParagraph(t *testing.T) {
	p := &fakeProvider{
		coords:    &Coordinates{Latitude: 48.8, Longitude: 2.3},
		localTime: &LocalTime{Raw: "2025-06-02 12:30:00 +0200", Display: "12:30 PM, Jun 02", OffsetSeconds: 7200},
	}
	r := newTestResolver(p)

	// starts 10 days out, 10 days long: still exactly one paragraph
	bundle := r.Resolve(context.Background(), "Paris", day(10), day(19))

	if !strings.HasPrefix(bundle.WeatherSummaryForAI, "This trip is planned far in advance.\n") {
		t.Errorf("WeatherSummaryForAI = %q", bundle.WeatherSummaryForAI)
	}
	if got := strings.Count(bundle.WeatherSummaryForAI, "For the trip to "); got != 1 {
		t.Errorf("seasonal paragraphs = %d, want 1", got)
	}
	if p.dailyCalls != 0 {
		t.Errorf("daily forecast called %d times, want 0", p.dailyCalls)
	}
	if bundle.DestinationLocalTimeDisplay != "12:30 PM, Jun 02" {
		t.Errorf("DestinationLocalTimeDisplay = %q", bundle.DestinationLocalTimeDisplay)
	}
}

func TestResolveFarTermBoundary(t *testing.T) {
	// 7 days out is still near-term; 8 days out is far-term
	nearTerm := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()}
	r := newTestResolver(nearTerm)
	r.Resolve(context.Background(), "Tokyo", day(7), day(7))
	if nearTerm.dailyCalls != 1 {
		t.Errorf("start 7 days out: daily calls = %d, want 1", nearTerm.dailyCalls)
	}

	farTerm := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()}
	r = newTestResolver(farTerm)
	r.Resolve(context.Background(), "Tokyo", day(8), day(8))
	if farTerm.dailyCalls != 0 {
		t.Errorf("start 8 days out: daily calls = %d, want 0", farTerm.dailyCalls)
	}
}

func TestResolveForecastFetchFailure(t *testing.T) {
	p := &fakeProvider{
		coords:   &Coordinates{},
		dailyErr: errors.New("openweather bad status: 502 Bad Gateway"),
	}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Tokyo", day(1), day(4))

	if !strings.HasPrefix(bundle.WeatherSummaryForAI, "A detailed weather forecast could not be retrieved.\n") {
		t.Errorf("WeatherSummaryForAI = %q", bundle.WeatherSummaryForAI)
	}
	if got := strings.Count(bundle.WeatherSummaryForAI, "For the trip to "); got != 1 {
		t.Errorf("seasonal paragraphs = %d, want 1", got)
	}
}

func TestResolveNearTermAllPrecise(t *testing.T) {
	p := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()}
	r := newTestResolver(p)

	// 5-day trip starting today, window covers all of it
	bundle := r.Resolve(context.Background(), "Tokyo", day(0), day(4))

	if !strings.HasPrefix(bundle.WeatherSummaryForAI, "Weather outlook for the trip:\n") {
		t.Errorf("WeatherSummaryForAI = %q", bundle.WeatherSummaryForAI)
	}
	if got := strings.Count(bundle.WeatherSummaryForAI, "Date "); got != 5 {
		t.Errorf("precise day lines = %d, want 5", got)
	}
	if strings.Contains(bundle.WeatherSummaryForAI, "seasonal guidance") {
		t.Errorf("unexpected seasonal fallback in %q", bundle.WeatherSummaryForAI)
	}
	// one display block per day, in chronological order
	for i := 0; i < 5; i++ {
		wantDate := day(i).Format("2006-01-02")
		if !strings.Contains(bundle.WeatherDisplay, wantDate) {
			t.Errorf("WeatherDisplay missing date %s", wantDate)
		}
	}
}

func TestResolveDayCountMatchesDuration(t *testing.T) {
	for _, duration := range []int{1, 3, 8, 12} {
		p := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()}
		r := newTestResolver(p)

		bundle := r.Resolve(context.Background(), "Tokyo", day(0), day(duration-1))
		if got := aiSegmentCount(bundle); got != duration {
			t.Errorf("duration %d: day segments = %d", duration, got)
		}
	}
}

func TestResolveWindowEdge(t *testing.T) {
	// offset 7 is the last precise slot, offset 8 falls back to seasonal
	p := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Tokyo", day(7), day(8))

	if got := strings.Count(bundle.WeatherSummaryForAI, "Date "); got != 1 {
		t.Errorf("precise day lines = %d, want 1", got)
	}
	if got := strings.Count(bundle.WeatherSummaryForAI, "For the trip to "); got != 1 {
		t.Errorf("seasonal paragraphs = %d, want 1", got)
	}
	// the precise line is for the first trip day
	if !strings.Contains(bundle.WeatherSummaryForAI, "Date "+day(7).Format("2006-01-02")) {
		t.Errorf("WeatherSummaryForAI = %q", bundle.WeatherSummaryForAI)
	}
}

func TestResolveShortForecastWindow(t *testing.T) {
	// provider returned fewer records than the nominal window
	p := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()[:3]}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Tokyo", day(0), day(4))

	if got := strings.Count(bundle.WeatherSummaryForAI, "Date "); got != 3 {
		t.Errorf("precise day lines = %d, want 3", got)
	}
	if got := strings.Count(bundle.WeatherSummaryForAI, "For the trip to "); got != 2 {
		t.Errorf("seasonal paragraphs = %d, want 2", got)
	}
}

func TestResolveTripAlreadyStarted(t *testing.T) {
	// trip started two days ago: the past days are seasonal, days from
	// today onward are precise
	p := &fakeProvider{coords: &Coordinates{}, daily: eightDayWindow()}
	r := newTestResolver(p)

	bundle := r.Resolve(context.Background(), "Tokyo", day(-2), day(1))

	if got := strings.Count(bundle.WeatherSummaryForAI, "For the trip to "); got != 2 {
		t.Errorf("seasonal paragraphs = %d, want 2", got)
	}
	if got := strings.Count(bundle.WeatherSummaryForAI, "Date "); got != 2 {
		t.Errorf("precise day lines = %d, want 2", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	p := &fakeProvider{
		coords:    &Coordinates{Latitude: 35.7, Longitude: 139.7},
		localTime: &LocalTime{Raw: "2025-06-02 19:30:00 +0900", Display: "07:30 PM, Jun 02", OffsetSeconds: 32400},
		daily:     eightDayWindow(),
	}
	r := newTestResolver(p)

	first := r.Resolve(context.Background(), "Tokyo", day(0), day(4))
	second := r.Resolve(context.Background(), "Tokyo", day(0), day(4))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("bundles differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
