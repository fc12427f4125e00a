package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"minitrip/internal/planner"
	"minitrip/internal/weather"

	"github.com/gin-gonic/gin"
)

const (
	dateLayout  = "2006-01-02"
	maxTripDays = 30
)

// WeatherResolver is the trip-weather pipeline seen from the router.
type WeatherResolver interface {
	Resolve(ctx context.Context, destination string, start, end time.Time) weather.Bundle
}

// PlanGenerator is the itinerary LLM component seen from the router.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req planner.TripRequest, numDays int, weatherInfo, localTimeRaw string) (*planner.TripPlan, error)
}

type Server struct {
	router   *gin.Engine
	server   *http.Server
	resolver WeatherResolver
	planner  PlanGenerator
	port     int
}

type ServerConfig struct {
	Port     int
	Resolver WeatherResolver
	Planner  PlanGenerator
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:   router,
		resolver: cfg.Resolver,
		planner:  cfg.Planner,
		port:     cfg.Port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.welcomeHandler)

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthHandler)
		api.POST("/plan-trip", s.planTripHandler)
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Printf("API server starting on port %d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) welcomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the MiniTrip backend! API is at /api")
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"message":   "MiniTrip backend is running!",
		"timestamp": time.Now(),
	})
}

func (s *Server) planTripHandler(c *gin.Context) {
	var req planner.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	if req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: destination, start_date, end_date"})
		return
	}

	// defaults matching the form's optional fields
	if req.Origin == "" {
		req.Origin = "N/A"
	}
	if req.Pace == "" {
		req.Pace = "moderate"
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = "en"
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Please use YYYY-MM-DD."})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Please use YYYY-MM-DD."})
		return
	}
	if start.After(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date must be before or same as end date."})
		return
	}
	numDays := int(end.Sub(start).Hours()/24) + 1
	if numDays > maxTripDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Trip duration cannot exceed %d days.", maxTripDays)})
		return
	}

	bundle := s.resolver.Resolve(c.Request.Context(), req.Destination, start, end)

	localTimeRaw := ""
	if bundle.DestinationLocalTimeRaw != nil {
		localTimeRaw = *bundle.DestinationLocalTimeRaw
	}

	plan, err := s.planner.GeneratePlan(c.Request.Context(), req, numDays, bundle.WeatherSummaryForAI, localTimeRaw)
	if err != nil {
		log.Printf("api: itinerary generation for %q failed: %v", req.Destination, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate an itinerary: " + err.Error()})
		return
	}

	// backfill display fields the model left empty
	if plan.TravelDatesDisplay == "" {
		plan.TravelDatesDisplay = bundle.TravelDatesDisplay
	}
	if plan.DestinationLocalTimeDisplay == "" {
		plan.DestinationLocalTimeDisplay = bundle.DestinationLocalTimeDisplay
	}
	if plan.DestinationWeatherSummary == "" {
		plan.DestinationWeatherSummary = bundle.WeatherDisplay
	}

	c.JSON(http.StatusOK, plan)
}
