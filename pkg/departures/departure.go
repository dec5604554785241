package departures

import "time"

type VehicleType string

//goland:noinspection GoUnusedConst
const (
	VehicleTypeUnderground VehicleType = "ubahn"
	VehicleTypeSuburban                = "sbahn"
	VehicleTypeTram                    = "tram"
	VehicleTypeBus                     = "bus"
)

// Departure is the canonical record handed to requesters. A fresh set is
// built on every fetch cycle and replaced wholesale, never updated in place.
type Departure struct {
	VehicleType VehicleType `json:"type" groups:"basic,detailed"`
	Line        string      `json:"line" groups:"basic,detailed"`
	Destination string      `json:"destination" groups:"basic,detailed"`

	// ActualTime is the live departure instant in epoch milliseconds. Entries
	// without a live estimate never make it into a Departure.
	ActualTime int64 `json:"actualTime" groups:"basic,detailed"`

	// DelayMinutes is actual minus planned, midnight-corrected.
	DelayMinutes int `json:"delay" groups:"basic,detailed"`

	// ArrivalTime is only set when a destination stop was configured and the
	// journey duration estimation succeeded.
	ArrivalTime string `json:"arrivalTime,omitempty" groups:"basic,detailed"`
}

type FailureReason string

const (
	FailureReasonNone         FailureReason = ""
	FailureReasonUpstreamFetch              = "upstream-fetch"
)

// Result is what gets routed back to the requester that supplied the
// identifier. Departures is always usable, possibly empty - a failed fetch
// only shows up in the Failure tag, which stays internal to the service.
type Result struct {
	Identifier string      `json:"identifier" groups:"basic,detailed" bson:"identifier"`
	Departures []Departure `json:"departures" groups:"basic,detailed" bson:"departures"`

	Failure     FailureReason `json:"failure,omitempty" groups:"detailed" bson:"failure,omitempty"`
	GeneratedAt time.Time     `json:"generatedAt" groups:"detailed" bson:"generatedat"`
}
