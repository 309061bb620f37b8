package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
	"github.com/AijingLI-KCLLP/find-path-ratp/routing"
	"github.com/AijingLI-KCLLP/find-path-ratp/services"
	"github.com/AijingLI-KCLLP/find-path-ratp/stations"
)

const API_VERSION = "v1"

type RoutingHandler struct {
	routingService *services.RoutingService
	logger         *zap.Logger
}

func NewRoutingHandler(routingService *services.RoutingService, logger *zap.Logger) *RoutingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoutingHandler{
		routingService: routingService,
		logger:         logger,
	}
}

func (h *RoutingHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/stations", h.ListStations)
	r.GET("/lines", h.ListLines)
	r.GET("/route", h.RouteByQuery)
	r.POST("/api/route", h.CalculateRoute)
}

type routeQuery struct {
	From string   `form:"from" binding:"required"`
	To   string   `form:"to" binding:"required"`
	Hour *float64 `form:"hour" binding:"omitempty,gte=0,lt=24"`
}

type stationsQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit" binding:"gte=0"`
}

func (h *RoutingHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"network":  h.routingService.NetworkName(),
		"stations": h.routingService.Graph().Len(),
		"edges":    h.routingService.Graph().EdgeCount(),
	})
}

func (h *RoutingHandler) ListStations(c *gin.Context) {
	var q stationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	list := h.routingService.Stations(q.Q, q.Limit)
	if list == nil {
		list = []models.Station{}
	}
	c.JSON(http.StatusOK, models.StationsResponse{Stations: list, Count: len(list)})
}

func (h *RoutingHandler) ListLines(c *gin.Context) {
	lines := h.routingService.Lines()
	c.JSON(http.StatusOK, models.LinesResponse{Lines: lines, Count: len(lines)})
}

// RouteByQuery serves GET /route?from=&to=[&hour=].
func (h *RoutingHandler) RouteByQuery(c *gin.Context) {
	var q routeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return
	}
	h.plan(c, models.RouteRequest{
		From:        q.From,
		To:          q.To,
		Preferences: models.RoutePreferences{Hour: q.Hour},
	})
}

// CalculateRoute serves POST /api/route.
func (h *RoutingHandler) CalculateRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	h.plan(c, req)
}

func (h *RoutingHandler) plan(c *gin.Context, req models.RouteRequest) {
	start := time.Now()
	logger := h.logger.With(zap.String("request_id", RequestID(c)))
	logger.Info("Received route request", zap.String("from", req.From), zap.String("to", req.To))

	itinerary, err := h.routingService.CalculateRoute(c.Request.Context(), req)
	if err != nil {
		status, code := StatusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Route request failed", zap.Error(err))
		} else {
			logger.Info("Route request rejected", zap.Int("status", status), zap.Error(err))
		}
		h.fail(c, status, code, err)
		return
	}

	count := len(itinerary.Segments)
	c.JSON(http.StatusOK, models.RouteResponse{
		RequestID: RequestID(c),
		Itinerary: itinerary,
		Meta: &models.MetaData{
			ProcessTime: fmt.Sprintf("%.3f", float64(time.Since(start).Microseconds())/1000),
			ApiVersion:  API_VERSION,
			ResultCount: &count,
		},
	})
	logger.Info("Route request completed",
		zap.Int("stations", len(itinerary.Stations)),
		zap.Int("transfers", itinerary.Transfers),
		zap.Float64("minutes", itinerary.Minutes))
}

// StatusFor maps the routing error taxonomy onto an HTTP status and an error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, stations.ErrStationNotFound), errors.Is(err, routing.ErrUnknownStation):
		return http.StatusNotFound, "station_not_found"
	case errors.Is(err, stations.ErrAmbiguousName):
		return http.StatusConflict, "ambiguous_station"
	case errors.Is(err, routing.ErrNoPath):
		return http.StatusUnprocessableEntity, "no_path"
	case errors.Is(err, routing.ErrSearchAborted):
		return http.StatusInternalServerError, "search_aborted"
	case errors.Is(err, routing.ErrNoCommonLine):
		return http.StatusInternalServerError, "inconsistent_network"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func (h *RoutingHandler) badRequest(c *gin.Context, err error) {
	h.fail(c, http.StatusBadRequest, "invalid_request", err)
}

func (h *RoutingHandler) fail(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{
		RequestID: RequestID(c),
		Error: models.ApiError{
			Code:    code,
			Message: http.StatusText(status),
			Details: err.Error(),
		},
	})
}
