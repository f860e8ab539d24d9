package adversary

import (
	"github.com/charmbracelet/log"
)

// Observer receives the placer's per-candidate scoring. Candidate slices
// are only valid for the duration of the call.
type Observer interface {
	Scored(c Candidate)
	Chosen(c Candidate, fallback bool)
}

// LogObserver writes placement traces at debug level.
type LogObserver struct {
	Logger *log.Logger
}

// Scored logs one candidate.
func (o LogObserver) Scored(c Candidate) {
	o.Logger.Debug("candidate",
		"x", c.Cell.X,
		"y", c.Cell.Y,
		"value", c.Value,
		"score", c.Score,
		"best_response", c.BestResponse,
		"neighbors", len(c.Neighbors),
		"chance2", c.Chance2,
	)
}

// Chosen logs the inserted tile.
func (o LogObserver) Chosen(c Candidate, fallback bool) {
	o.Logger.Debug("insert",
		"x", c.Cell.X,
		"y", c.Cell.Y,
		"value", c.Value,
		"score", c.Score,
		"fallback", fallback,
	)
}
