package journeyplanner

import (
	"context"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/mvgboard/mvgboard/pkg/departures"
	"github.com/mvgboard/mvgboard/pkg/mvv"
)

// maxPlausibleDuration bounds per-line journey durations; legs outside
// (0, 120) minutes are not recorded.
const maxPlausibleDuration = 120

// Estimator stamps departures with estimated arrival times at a destination
// stop, derived from EFA trip itineraries.
type Estimator struct {
	Client *mvv.Client
}

// EstimateArrivals returns fresh copies of the given departures with
// ArrivalTime populated wherever a journey duration could be derived. Any
// upstream or data failure degrades to the unmodified input - the departure
// board is still delivered, just without arrival times.
func (e *Estimator) EstimateArrivals(ctx context.Context, deps []departures.Departure, originStopID string, destinationStopID string, now time.Time) []departures.Departure {
	enriched := make([]departures.Departure, 0, len(deps))
	if err := copier.Copy(&enriched, &deps); err != nil {
		log.Error().Err(err).Msg("Failed to copy departures for enrichment")
		return deps
	}

	trips, err := e.Client.Trips(ctx, originStopID, destinationStopID, now)
	if err != nil {
		log.Error().Err(err).
			Str("origin", originStopID).
			Str("destination", destinationStopID).
			Msg("Failed to fetch trips for arrival estimation")
		return enriched
	}

	durations := durationsByLine(trips)
	defaultDuration := meanDuration(durations)

	for i := range enriched {
		duration, found := durations[enriched[i].Line]
		if !found {
			duration = defaultDuration
		}

		if duration > 0 {
			arrival := time.UnixMilli(enriched[i].ActualTime).Add(time.Duration(duration) * time.Minute)
			enriched[i].ArrivalTime = departures.FormatClockTime(arrival)
		}
	}

	return enriched
}

// durationsByLine builds the per-line journey duration table from each
// trip's first leg. Only the first occurrence of a line is kept - the
// earliest itinerary wins, even if a later one would be more representative.
func durationsByLine(trips []mvv.Trip) map[string]int {
	durations := map[string]int{}

	for _, trip := range trips {
		if len(trip.Legs) == 0 {
			continue
		}

		leg := trip.Legs[0]
		if len(leg.Points) < 2 {
			continue
		}

		line := leg.Mode.Number
		departureClock := leg.Points[0].DateTime.Time
		arrivalClock := leg.Points[len(leg.Points)-1].DateTime.Time

		if line == "" || departureClock == "" || arrivalClock == "" {
			continue
		}
		if _, seen := durations[line]; seen {
			continue
		}

		departureMinutes, err := departures.MinutesOfDay(departureClock)
		if err != nil {
			continue
		}
		arrivalMinutes, err := departures.MinutesOfDay(arrivalClock)
		if err != nil {
			continue
		}

		duration := arrivalMinutes - departureMinutes
		if duration > 0 && duration < maxPlausibleDuration {
			durations[line] = duration
		}
	}

	return durations
}

// meanDuration is the unweighted mean of the recorded durations, rounded to
// the nearest minute. Zero when the table is empty, in which case no
// departure gets an arrival estimate.
func meanDuration(durations map[string]int) int {
	if len(durations) == 0 {
		return 0
	}

	sum := 0
	for _, duration := range durations {
		sum += duration
	}

	return int(math.Round(float64(sum) / float64(len(durations))))
}
