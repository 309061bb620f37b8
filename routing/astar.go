package routing

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DEFAULT_MAX_ITERATIONS caps frontier pops when SearchOptions leaves it unset.
const DEFAULT_MAX_ITERATIONS = 100000

var (
	// ErrNoPath is returned when the goal cannot be reached from the start.
	ErrNoPath = errors.New("no path between stations")
	// ErrSearchAborted is returned when a search exceeds its iteration cap.
	ErrSearchAborted = errors.New("search aborted: iteration limit reached")
	// ErrNegativePenalty is returned when a cost modifier makes an edge cheaper.
	ErrNegativePenalty = errors.New("cost modifier returned a negative penalty")
)

type SearchOptions struct {
	// MaxIterations caps frontier pops; zero means DEFAULT_MAX_ITERATIONS.
	MaxIterations int
	// Hour is handed to the cost modifier.
	Hour float64
	// Modifier adds penalties on top of edge weights; nil means NoPenalty.
	Modifier CostModifier
}

// Path is the result of one search.
type Path struct {
	Stations   []int
	Minutes    float64
	Iterations int
}

// searchNode lives for a single run only.
type searchNode struct {
	stationID int
	g         float64
	h         float64
	f         float64
	parent    *searchNode
	closed    bool
}

// PriorityQueueItem snapshots a node's cost at push time. An item whose GScore
// no longer matches its node's g was superseded by a cheaper push.
type PriorityQueueItem struct {
	node     *searchNode
	Priority float64
	GScore   float64
}

type PriorityQueue []PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].node.stationID < pq[j].node.stationID
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(PriorityQueueItem))
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = PriorityQueueItem{}
	*pq = old[0 : n-1]
	return item
}

// Searcher runs A* over a frozen graph. It keeps no per-run state, so one
// Searcher may serve concurrent calls.
type Searcher struct {
	graph  *Graph
	opts   SearchOptions
	logger *zap.Logger
}

func NewSearcher(graph *Graph, logger *zap.Logger, opts SearchOptions) *Searcher {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DEFAULT_MAX_ITERATIONS
	}
	if opts.Modifier == nil {
		opts.Modifier = NoPenalty{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{graph: graph, opts: opts, logger: logger}
}

// Search returns the minimum-time path from start to goal. It returns ErrNoPath
// when the goal is unreachable and a single-station path when start == goal.
func (s *Searcher) Search(ctx context.Context, start, goal int) (Path, error) {
	return s.SearchAt(ctx, start, goal, s.opts.Hour)
}

// SearchAt is Search with an explicit hour for the cost modifier.
func (s *Searcher) SearchAt(ctx context.Context, start, goal int, hour float64) (Path, error) {
	n := s.graph.Len()
	if start < 0 || start >= n {
		return Path{}, fmt.Errorf("start: %w: %d", ErrUnknownStation, start)
	}
	if goal < 0 || goal >= n {
		return Path{}, fmt.Errorf("goal: %w: %d", ErrUnknownStation, goal)
	}
	if start == goal {
		return Path{Stations: []int{start}, Minutes: 0}, nil
	}
	if err := ctx.Err(); err != nil {
		return Path{}, err
	}

	est := s.graph.Estimator()
	penaltyCtx := PenaltyContext{Hour: hour}

	h := est.Heuristic(start, goal, hour)
	startNode := &searchNode{stationID: start, g: 0, h: h, f: h}

	openSet := &PriorityQueue{}
	heap.Init(openSet)
	heap.Push(openSet, PriorityQueueItem{node: startNode, Priority: startNode.f, GScore: 0})

	nodes := map[int]*searchNode{start: startNode}

	s.logger.Debug("starting A*",
		zap.Int("start", start),
		zap.Int("goal", goal),
		zap.Int("stations", n),
	)

	iterations := 0
	for openSet.Len() > 0 {
		if iterations >= s.opts.MaxIterations {
			s.logger.Warn("A* hit maximum iterations limit",
				zap.Int("max_iterations", s.opts.MaxIterations),
				zap.Int("start", start),
				zap.Int("goal", goal),
			)
			return Path{Iterations: iterations}, ErrSearchAborted
		}
		iterations++

		item := heap.Pop(openSet).(PriorityQueueItem)
		current := item.node
		if current.closed || item.GScore != current.g {
			continue
		}

		if current.stationID == goal {
			path := reconstructPath(current)
			s.logger.Debug("A* path found",
				zap.Int("iterations", iterations),
				zap.Int("stations", len(path)),
				zap.Float64("minutes", current.g),
			)
			return Path{Stations: path, Minutes: current.g, Iterations: iterations}, nil
		}
		current.closed = true

		if iterations%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return Path{Iterations: iterations}, err
			}
			s.logger.Debug("A* progress",
				zap.Int("iterations", iterations),
				zap.Int("station", current.stationID),
				zap.Float64("f", current.f),
			)
		}

		for _, edge := range s.graph.Neighbors(current.stationID) {
			neighbor, seen := nodes[edge.ToID]
			if seen && neighbor.closed {
				continue
			}

			extra := s.opts.Modifier.ExtraMinutes(current.stationID, edge.ToID, penaltyCtx)
			if extra < 0 {
				return Path{Iterations: iterations}, fmt.Errorf("%w: %.3f on %d-%d", ErrNegativePenalty, extra, current.stationID, edge.ToID)
			}
			tentativeG := current.g + edge.TravelTime + extra

			if !seen {
				h := est.Heuristic(edge.ToID, goal, hour)
				neighbor = &searchNode{stationID: edge.ToID, g: tentativeG, h: h, f: tentativeG + h, parent: current}
				nodes[edge.ToID] = neighbor
			} else if tentativeG < neighbor.g {
				neighbor.g = tentativeG
				neighbor.f = tentativeG + neighbor.h
				neighbor.parent = current
			} else {
				continue
			}
			heap.Push(openSet, PriorityQueueItem{node: neighbor, Priority: neighbor.f, GScore: neighbor.g})
		}
	}

	s.logger.Debug("no path found",
		zap.Int("start", start),
		zap.Int("goal", goal),
		zap.Int("iterations", iterations),
	)
	return Path{Iterations: iterations}, ErrNoPath
}

func reconstructPath(end *searchNode) []int {
	var path []int
	for current := end; current != nil; current = current.parent {
		path = append(path, current.stationID)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
