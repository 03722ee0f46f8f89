// Package handlers exposes the aggregation facade over HTTP and
// upgrades WebSocket connections into hub clients.
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/XavierBriggs/vantage/internal/aggregator"
	"github.com/XavierBriggs/vantage/internal/client"
	"github.com/XavierBriggs/vantage/internal/hub"
	"github.com/XavierBriggs/vantage/internal/registry"
	"github.com/XavierBriggs/vantage/pkg/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// requestTimeout bounds one API request end to end; the slowest path is
// a forced refresh fanning out to every upstream feed
const requestTimeout = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The mobile client connects from app webviews with no stable
		// origin; CORS on the REST routes is the real gate
		return true
	},
}

// Handler carries the dependencies for all HTTP endpoints
type Handler struct {
	facade   *aggregator.Facade
	registry *registry.Registry
	hub      *hub.Hub
	ctx      context.Context
}

// New creates a handler. ctx outlives individual requests and bounds
// the WebSocket pumps.
func New(facade *aggregator.Facade, reg *registry.Registry, h *hub.Hub, ctx context.Context) *Handler {
	return &Handler{
		facade:   facade,
		registry: reg,
		hub:      h,
		ctx:      ctx,
	}
}

// HandleHealth returns service health plus hub counters
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "trends-service",
		"timestamp": time.Now().UTC(),
		"hub":       h.hub.Metrics(),
	})
}

// HandleGetTrends serves the combined trend list.
// Query params: sport (default all), category, refresh=force
func (h *Handler) HandleGetTrends(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	scope := scopeParam(r)
	category := models.Category(r.URL.Query().Get("category"))

	refresh := aggregator.RefreshCached
	if r.URL.Query().Get("refresh") == "force" {
		refresh = aggregator.RefreshForce
	}

	result, err := h.facade.FetchTrends(ctx, scope, category, refresh)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sport scope", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetPredictions serves consensus game predictions.
// Query params: sport, min_confidence
func (h *Handler) HandleGetPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	minConfidence := parseFloatParam(r, "min_confidence", 0)

	result, err := h.facade.FetchPredictions(ctx, scopeParam(r), minConfidence)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sport scope", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetInjuries serves merged injury reports.
// Query params: sport, high_impact=true
func (h *Handler) HandleGetInjuries(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	highImpact := r.URL.Query().Get("high_impact") == "true"

	result, err := h.facade.FetchInjuries(ctx, scopeParam(r), highImpact)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sport scope", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetNews serves league headlines.
// Query params: sport, limit
func (h *Handler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	limit := parseIntParam(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	result, err := h.facade.FetchNews(ctx, scopeParam(r), limit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sport scope", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetEnabledSports lists the sports the service aggregates
func (h *Handler) HandleGetEnabledSports(w http.ResponseWriter, r *http.Request) {
	modules := h.registry.EnabledSports()

	sports := make([]map[string]string, 0, len(modules))
	for _, m := range modules {
		sports = append(sports, map[string]string{
			"sport_key":    m.GetSportKey(),
			"display_name": m.GetDisplayName(),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sports": sports,
		"count":  len(sports),
	})
}

// HandleWebSocket upgrades the connection and attaches it to the hub
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	c := client.New(uuid.New().String(), conn, h.hub)
	h.hub.Register(c)

	// Pumps run on the service context, not the request context, so
	// the connection survives the handler returning
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)
}

// Helper functions

func scopeParam(r *http.Request) string {
	if sport := r.URL.Query().Get("sport"); sport != "" {
		return sport
	}
	return registry.ScopeAll
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func parseFloatParam(r *http.Request, param string, defaultValue float64) float64 {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Printf("error: %s - %v", message, err)
	}

	respondJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
