package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	geocodingEndpoint = "http://api.openweathermap.org/geo/1.0/direct"
	oneCallEndpoint   = "https://api.openweathermap.org/data/3.0/onecall"
)

type OpenWeatherClient struct {
	apiKey       string
	units        string
	lang         string
	geocodingURL string
	oneCallURL   string
	client       *http.Client
	tracer       trace.Tracer
	now          func() time.Time
}

func NewOpenWeatherClient(apiKey, units, lang string, timeout time.Duration) *OpenWeatherClient {
	if units == "" {
		units = "metric"
	}
	if lang == "" {
		lang = "en"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenWeatherClient{
		apiKey:       apiKey,
		units:        units,
		lang:         lang,
		geocodingURL: geocodingEndpoint,
		oneCallURL:   oneCallEndpoint,
		client: &http.Client{
			Timeout: timeout,
		},
		tracer: otel.GetTracerProvider().Tracer("openweather"),
		now:    time.Now,
	}
}

var _ Provider = (*OpenWeatherClient)(nil)

func (c *OpenWeatherClient) Geocode(ctx context.Context, city string) (*Coordinates, error) {
	ctx, span := c.tracer.Start(ctx, "geocode-city")
	defer span.End()
	span.SetAttributes(attribute.String("city", city))

	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is empty")
	}

	query := url.Values{}
	query.Set("q", city)
	query.Set("limit", "1")
	query.Set("appid", c.apiKey)

	var matches []Coordinates
	if err := c.getJSON(ctx, c.geocodingURL, query, &matches); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("geocoding: %w", err)
	}
	if len(matches) == 0 {
		err := fmt.Errorf("no geocoding match for %q", city)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Float64("lat", matches[0].Latitude),
		attribute.Float64("lon", matches[0].Longitude),
	)
	return &matches[0], nil
}

func (c *OpenWeatherClient) LocalTime(ctx context.Context, coords Coordinates) (*LocalTime, error) {
	ctx, span := c.tracer.Start(ctx, "current-local-time")
	defer span.End()

	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is empty")
	}

	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.6f", coords.Latitude))
	query.Set("lon", fmt.Sprintf("%.6f", coords.Longitude))
	query.Set("appid", c.apiKey)
	query.Set("units", c.units)

	var payload struct {
		TimezoneOffset *int `json:"timezone_offset"`
	}
	if err := c.getJSON(ctx, c.oneCallURL, query, &payload); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("current conditions: %w", err)
	}
	if payload.TimezoneOffset == nil {
		err := fmt.Errorf("current conditions response has no timezone_offset")
		span.RecordError(err)
		return nil, err
	}

	offset := *payload.TimezoneOffset
	local := c.now().UTC().In(time.FixedZone("", offset))
	return &LocalTime{
		Raw:           local.Format("2006-01-02 15:04:05 -0700"),
		Display:       local.Format("03:04 PM, Jan 02"),
		OffsetSeconds: offset,
	}, nil
}

func (c *OpenWeatherClient) DailyForecast(ctx context.Context, coords Coordinates) ([]DailyForecast, error) {
	ctx, span := c.tracer.Start(ctx, "daily-forecast")
	defer span.End()

	if c.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is empty")
	}

	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.6f", coords.Latitude))
	query.Set("lon", fmt.Sprintf("%.6f", coords.Longitude))
	query.Set("exclude", "current,minutely,hourly,alerts")
	query.Set("appid", c.apiKey)
	query.Set("units", c.units)
	query.Set("lang", c.lang)

	var payload struct {
		Daily []DailyForecast `json:"daily"`
	}
	if err := c.getJSON(ctx, c.oneCallURL, query, &payload); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("daily forecast: %w", err)
	}
	if len(payload.Daily) == 0 {
		err := fmt.Errorf("daily forecast response has no daily block")
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("days", len(payload.Daily)))
	return payload.Daily, nil
}

func (c *OpenWeatherClient) getJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("openweather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("openweather bad status: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openweather decode: %w", err)
	}
	return nil
}
