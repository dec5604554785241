package mvv

// Raw records from the EFA trip planner (XSLT_TRIP_REQUEST2). A trip is made
// up of legs, each leg an ordered list of waypoints with scheduled clock
// times.

type TripsResponse struct {
	Trips []Trip `json:"trips"`
}

type Trip struct {
	Legs []TripLeg `json:"legs"`
}

type TripLeg struct {
	Mode   TripLegMode    `json:"mode"`
	Points []TripLegPoint `json:"points"`
}

type TripLegMode struct {
	Number string `json:"number"`
}

type TripLegPoint struct {
	DateTime TripLegPointDateTime `json:"dateTime"`
}

type TripLegPointDateTime struct {
	Time string `json:"time"`
}
