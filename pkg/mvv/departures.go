package mvv

// Raw records from the MVV departures finder endpoint. Only the fields the
// pipeline consumes are mapped.

type DeparturesResponse struct {
	Departures []Departure `json:"departures"`
}

type Departure struct {
	// DeparturePlanned and DepartureLive are "HH:MM" clock strings. Live is
	// empty when the upstream has no realtime estimate, and carries a
	// cancellation marker substring when the departure is dropped.
	DeparturePlanned string `json:"departurePlanned"`
	DepartureLive    string `json:"departureLive"`

	Line      DepartureLine `json:"line"`
	Direction string        `json:"direction"`
}

type DepartureLine struct {
	// Name is the transport mode name, eg "U-Bahn".
	Name string `json:"name"`
	// Number is the line label shown to passengers, eg "U3".
	Number string `json:"number"`
}
