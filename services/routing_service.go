package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AijingLI-KCLLP/find-path-ratp/models"
	"github.com/AijingLI-KCLLP/find-path-ratp/routing"
	"github.com/AijingLI-KCLLP/find-path-ratp/stations"
)

type Options struct {
	SpeedKmh      float64
	MaxIterations int
	// Modifier is applied to every search; nil means no penalty.
	Modifier routing.CostModifier
}

// RoutingService owns one loaded network: its registry, frozen graph and
// searcher. All methods are safe for concurrent use.
type RoutingService struct {
	name     string
	registry *stations.Registry
	graph    *routing.Graph
	searcher *routing.Searcher
	logger   *zap.Logger
}

func NewRoutingService(logger *zap.Logger, net *models.Network, opts Options) (*RoutingService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	// Station line sets always follow the lines the graph is built from.
	registry, err := stations.NewRegistry(models.WithLines(net.Stations, net.Lines))
	if err != nil {
		return nil, fmt.Errorf("build station registry: %w", err)
	}
	graph, err := routing.BuildGraph(registry, net.Lines, opts.SpeedKmh)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	searcher := routing.NewSearcher(graph, logger.Named("astar"), routing.SearchOptions{
		MaxIterations: opts.MaxIterations,
		Hour:          routing.DEFAULT_HOUR,
		Modifier:      opts.Modifier,
	})

	logger.Info("Routing graph ready",
		zap.String("network", net.Name),
		zap.Int("stations", graph.Len()),
		zap.Int("edges", graph.EdgeCount()),
		zap.Int("lines", len(net.Lines)),
		zap.Float64("speed_kmh", graph.Estimator().SpeedKmh()),
		zap.Duration("took", time.Since(start)))

	return &RoutingService{
		name:     net.Name,
		registry: registry,
		graph:    graph,
		searcher: searcher,
		logger:   logger,
	}, nil
}

func (rs *RoutingService) NetworkName() string { return rs.name }

func (rs *RoutingService) Graph() *routing.Graph { return rs.graph }

// CalculateRoute resolves the request's station names and plans between them.
func (rs *RoutingService) CalculateRoute(ctx context.Context, req models.RouteRequest) (*models.Itinerary, error) {
	hour := routing.DEFAULT_HOUR
	if req.Preferences.Hour != nil {
		hour = *req.Preferences.Hour
	}
	return rs.planByName(ctx, req.From, req.To, hour)
}

// PlanByName is CalculateRoute at the default hour.
func (rs *RoutingService) PlanByName(ctx context.Context, from, to string) (*models.Itinerary, error) {
	return rs.planByName(ctx, from, to, routing.DEFAULT_HOUR)
}

func (rs *RoutingService) planByName(ctx context.Context, from, to string, hour float64) (*models.Itinerary, error) {
	origin, err := rs.registry.ByName(from)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	destination, err := rs.registry.ByName(to)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}
	return rs.PlanByID(ctx, origin.ID, destination.ID, hour)
}

// PlanByID searches the fastest path and splits it into line segments. When
// the path contains a hop with no common line, the itinerary is still returned
// alongside an error wrapping routing.ErrNoCommonLine.
func (rs *RoutingService) PlanByID(ctx context.Context, from, to int, hour float64) (*models.Itinerary, error) {
	path, err := rs.searcher.SearchAt(ctx, from, to, hour)
	if err != nil {
		if errors.Is(err, routing.ErrSearchAborted) {
			rs.logger.Warn("Search aborted", zap.Int("from", from), zap.Int("to", to), zap.Int("iterations", path.Iterations))
		}
		return nil, err
	}

	resolved := make([]models.Station, len(path.Stations))
	names := make([]string, len(path.Stations))
	for i, id := range path.Stations {
		st, ok := rs.registry.ByID(id)
		if !ok {
			return nil, fmt.Errorf("path station: %w: %d", routing.ErrUnknownStation, id)
		}
		resolved[i] = st
		names[i] = st.Name
	}

	segments, transfers, segErr := routing.SegmentPath(resolved)
	if segments == nil {
		segments = []models.Segment{}
	}
	itinerary := &models.Itinerary{
		From:       resolved[0].Name,
		To:         resolved[len(resolved)-1].Name,
		StationIDs: path.Stations,
		Stations:   names,
		Segments:   segments,
		Transfers:  transfers,
		Minutes:    path.Minutes,
	}
	if segErr != nil {
		rs.logger.Error("Itinerary has hops without a common line", zap.Error(segErr))
		return itinerary, segErr
	}

	rs.logger.Debug("Route planned",
		zap.String("from", itinerary.From),
		zap.String("to", itinerary.To),
		zap.Int("stations", len(names)),
		zap.Int("transfers", transfers),
		zap.Float64("minutes", path.Minutes),
		zap.Int("iterations", path.Iterations))
	return itinerary, nil
}

// Stations lists stations whose name contains query; see stations.Registry.Search.
func (rs *RoutingService) Stations(query string, limit int) []models.Station {
	return rs.registry.Search(query, limit)
}

func (rs *RoutingService) Lines() []models.LineSummary {
	return rs.graph.LineSummaries()
}
