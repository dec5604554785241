package departures

import (
	"sort"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/exp/slices"

	"github.com/mvgboard/mvgboard/pkg/mvv"
	"github.com/mvgboard/mvgboard/pkg/util"
)

// cancellationMarker appears inside the live-time string when the upstream
// has dropped the departure ("entfällt").
const cancellationMarker = "entf"

// Normalize maps raw upstream departures into canonical records for one
// fetch cycle. Cancelled entries, entries with no live estimate and entries
// with unparseable clock times are discarded; survivors are windowed,
// sorted ascending by actual time (stable, upstream order preserved on
// ties) and run through the request's filters. The input is never mutated.
func Normalize(rawDepartures []mvv.Departure, now time.Time, request Request) []Departure {
	mapped := iter.Map(rawDepartures, func(raw *mvv.Departure) *Departure {
		return normalizeRecord(raw, now)
	})

	normalized := make([]Departure, 0, len(mapped))
	for _, departure := range mapped {
		if departure != nil {
			normalized = append(normalized, *departure)
		}
	}

	// The working slice is a fresh copy at this point, so the remaining
	// stages can filter in place without touching the caller's input.
	nowMillis := now.UnixMilli()
	lookaheadMillis := request.LookaheadWindow().Milliseconds()
	util.InPlaceFilter(&normalized, func(departure Departure) bool {
		sinceNow := departure.ActualTime - nowMillis
		return sinceNow >= 0 && sinceNow <= lookaheadMillis
	})

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].ActualTime < normalized[j].ActualTime
	})

	if len(request.LineFilter) > 0 {
		util.InPlaceFilter(&normalized, func(departure Departure) bool {
			return slices.Contains(request.LineFilter, departure.Line)
		})
	}

	if len(request.DestinationFilter) > 0 {
		util.InPlaceFilter(&normalized, func(departure Departure) bool {
			destination := strings.ToLower(departure.Destination)
			for _, keyword := range request.DestinationFilter {
				if strings.Contains(destination, strings.ToLower(keyword)) {
					return true
				}
			}
			return false
		})
	}

	if request.Filter != nil {
		util.InPlaceFilter(&normalized, func(departure Departure) bool {
			keep, err := expr.Run(request.Filter, departure)
			if err != nil {
				// A broken board expression should not blank the board
				log.Debug().Err(err).Str("line", departure.Line).Msg("Board filter expression failed")
				return true
			}

			matched, ok := keep.(bool)
			return !ok || matched
		})
	}

	return normalized
}

func normalizeRecord(raw *mvv.Departure, now time.Time) *Departure {
	if raw.DepartureLive == "" || strings.Contains(raw.DepartureLive, cancellationMarker) {
		return nil
	}

	actualTime, err := ParseClockTime(raw.DepartureLive, now)
	if err != nil {
		log.Debug().Err(err).Str("line", raw.Line.Number).Msg("Dropping departure with unparseable live time")
		return nil
	}

	delay, err := DelayMinutes(raw.DeparturePlanned, raw.DepartureLive)
	if err != nil {
		log.Debug().Err(err).Str("line", raw.Line.Number).Msg("Dropping departure with unparseable planned time")
		return nil
	}

	return &Departure{
		VehicleType:  classifyVehicle(raw.Line.Name),
		Line:         raw.Line.Number,
		Destination:  raw.Direction,
		ActualTime:   actualTime.UnixMilli(),
		DelayMinutes: delay,
	}
}

// classifyVehicle matches the transport mode name case-insensitively. Bus is
// the catch-all, never an error.
func classifyVehicle(modeName string) VehicleType {
	modeName = strings.ToLower(modeName)

	switch {
	case strings.Contains(modeName, "u-bahn"):
		return VehicleTypeUnderground
	case strings.Contains(modeName, "s-bahn"):
		return VehicleTypeSuburban
	case strings.Contains(modeName, "tram"):
		return VehicleTypeTram
	default:
		return VehicleTypeBus
	}
}
