package planner

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Generator produces trip itineraries through the OpenAI chat API.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	tracer      trace.Tracer
}

func NewGenerator(apiKey, model string, temperature float32) *Generator {
	if model == "" {
		model = openai.GPT4o
	}
	// zero is a valid (deterministic) setting; only negatives mean unset
	if temperature < 0 {
		temperature = 0.6
	}
	return &Generator{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		tracer:      otel.GetTracerProvider().Tracer("planner"),
	}
}

// GeneratePlan asks the model for a full itinerary in JSON mode and
// parses the result. Any transport or parse failure is returned to the
// caller; the routing layer maps it to a 500.
func (g *Generator) GeneratePlan(ctx context.Context, req TripRequest, numDays int, weatherInfo, localTimeRaw string) (*TripPlan, error) {
	ctx, span := g.tracer.Start(ctx, "generate-trip-plan")
	defer span.End()
	span.SetAttributes(
		attribute.String("destination", req.Destination),
		attribute.Int("days", numDays),
	)

	prompt := buildPrompt(req, numDays, weatherInfo, localTimeRaw)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("chat completion returned no choices")
		span.RecordError(err)
		return nil, err
	}

	var plan TripPlan
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &plan); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("model did not return a valid itinerary: %w", err)
	}

	return &plan, nil
}
