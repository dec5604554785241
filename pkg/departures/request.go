package departures

import (
	"time"

	"github.com/expr-lang/expr/vm"
)

// DefaultLookahead is how far into the future departures are shown.
const DefaultLookahead = 2 * time.Hour

// Request describes one departure board fetch. It is created by a requester,
// consumed once by the dispatcher and never persisted.
type Request struct {
	StopID            string
	DestinationStopID string

	// LineFilter keeps only exact line label matches when non-empty.
	LineFilter []string
	// DestinationFilter keeps departures whose destination contains at least
	// one of the keywords (case-insensitive) when non-empty.
	DestinationFilter []string

	// Filter is an optional compiled board filter expression evaluated
	// against each normalized departure.
	Filter *vm.Program

	// Lookahead overrides DefaultLookahead when positive.
	Lookahead time.Duration

	// Identifier routes the eventual Result back to whichever requester
	// supplied it.
	Identifier string
}

func (r Request) LookaheadWindow() time.Duration {
	if r.Lookahead > 0 {
		return r.Lookahead
	}

	return DefaultLookahead
}
