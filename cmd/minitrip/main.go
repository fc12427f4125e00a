package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"minitrip/config"
	"minitrip/internal/api"
	"minitrip/internal/planner"
	"minitrip/internal/telemetry"
	"minitrip/internal/weather"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

var configFile string

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "minitrip",
		Short: "AI trip itinerary backend",
		Long:  "MiniTrip plans day-by-day trip itineraries from weather context and an LLM",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(weatherCmd())
	rootCmd.AddCommand(planCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the trip-planning API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Telemetry.Enabled {
				cleanup, err := telemetry.Init("minitrip", cfg.Telemetry.ZipkinURL)
				if err != nil {
					log.Printf("Warning: telemetry disabled: %v", err)
				} else {
					defer cleanup()
				}
			}

			resolver := newResolver(cfg)
			generator := planner.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature)

			server := api.NewServer(api.ServerConfig{
				Port:     cfg.API.Port,
				Resolver: resolver,
				Planner:  generator,
			})

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				if err := server.Start(); err != nil {
					log.Printf("API server error: %v", err)
				}
			}()

			log.Println("MiniTrip backend started. Press Ctrl+C to stop.")

			<-sigChan
			log.Println("Shutting down...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Stop(ctx)
		},
	}
}

func weatherCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weather <city> <start> <end>",
		Short: "Resolve the weather bundle for a trip once and print it",
		Long:  "Run the trip-weather pipeline for a city and date range (YYYY-MM-DD) without calling the LLM",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			start, err := time.Parse(dateLayout, args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", args[1], err)
			}
			end, err := time.Parse(dateLayout, args[2])
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", args[2], err)
			}
			if start.After(end) {
				return fmt.Errorf("start date must be before or same as end date")
			}

			bundle := newResolver(cfg).Resolve(cmd.Context(), args[0], start, end)

			output, _ := json.MarshalIndent(bundle, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}
}

func planCmd() *cobra.Command {
	var (
		destination  string
		origin       string
		startDate    string
		endDate      string
		interests    []string
		pace         string
		requirements string
		language     string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a full trip itinerary once and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			start, err := time.Parse(dateLayout, startDate)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", startDate, err)
			}
			end, err := time.Parse(dateLayout, endDate)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", endDate, err)
			}
			if start.After(end) {
				return fmt.Errorf("start date must be before or same as end date")
			}
			numDays := int(end.Sub(start).Hours()/24) + 1

			req := planner.TripRequest{
				Destination:       destination,
				Origin:            origin,
				StartDate:         startDate,
				EndDate:           endDate,
				Interests:         interests,
				Pace:              pace,
				OtherRequirements: requirements,
				TargetLanguage:    language,
			}

			bundle := newResolver(cfg).Resolve(cmd.Context(), destination, start, end)
			fmt.Fprintf(os.Stderr, "%s\n\n", strings.TrimSpace(bundle.WeatherDisplay))

			generator := planner.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature)

			localTimeRaw := ""
			if bundle.DestinationLocalTimeRaw != nil {
				localTimeRaw = *bundle.DestinationLocalTimeRaw
			}

			plan, err := generator.GeneratePlan(cmd.Context(), req, numDays, bundle.WeatherSummaryForAI, localTimeRaw)
			if err != nil {
				return fmt.Errorf("failed to generate itinerary: %w", err)
			}

			output, _ := json.MarshalIndent(plan, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}

	cmd.Flags().StringVar(&destination, "destination", "", "destination city (required)")
	cmd.Flags().StringVar(&origin, "origin", "N/A", "origin city")
	cmd.Flags().StringVar(&startDate, "start", "", "trip start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&endDate, "end", "", "trip end date, YYYY-MM-DD (required)")
	cmd.Flags().StringSliceVar(&interests, "interests", nil, "comma-separated interests")
	cmd.Flags().StringVar(&pace, "pace", "moderate", "trip pace")
	cmd.Flags().StringVar(&requirements, "requirements", "", "free-text special requirements")
	cmd.Flags().StringVar(&language, "language", "en", "output language (en, zh, ja)")
	cmd.MarkFlagRequired("destination")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}

func newResolver(cfg *config.Config) *weather.Resolver {
	var provider weather.Provider = weather.NewOpenWeatherClient(
		cfg.Weather.APIKey,
		cfg.Weather.Units,
		cfg.Weather.Lang,
		cfg.Weather.Timeout,
	)
	if cfg.Weather.RateLimit > 0 {
		provider = weather.NewRateLimitedProvider(provider, cfg.Weather.RateLimit, cfg.Weather.RateBurst)
	}
	return weather.NewResolver(provider, cfg.Weather.APIKey)
}
