package gameloop

import (
	"time"
)

// tickStats holds per-tick timing and index metrics.
// Timings are only populated when Scene.debug is true.
type tickStats struct {
	rebuildTime   time.Duration
	collideTime   time.Duration
	integrateTime time.Duration
	nodes         int
	indexed       int
	depth         int
	pairs         int
}

// debugLog writes timing and index stats at debug level.
func (s *Scene) debugLog(stats tickStats) {
	if !s.debug {
		return
	}
	total := stats.rebuildTime + stats.collideTime + stats.integrateTime
	s.logger.Debug("tick",
		"n", s.tick,
		"rebuild", stats.rebuildTime,
		"collide", stats.collideTime,
		"integrate", stats.integrateTime,
		"total", total)
	s.logger.Debug("index",
		"nodes", stats.nodes,
		"indexed", stats.indexed,
		"depth", stats.depth,
		"pairs", stats.pairs)
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func (s *Scene) debugCheckTreeDepth(id NodeID) {
	depth := 0
	for p := id; !p.IsZero(); p = s.arena.nodes[p.index].parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		s.logger.Warn("tree depth exceeds threshold",
			"depth", depth, "max", debugMaxTreeDepth, "node", s.Name(id))
	}
}

// Pairs returns the number of colliding pairs resolved by the last Update.
func (s *Scene) Pairs() int {
	return s.stats.pairs
}
