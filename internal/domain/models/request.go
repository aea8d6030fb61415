package models

// Request is a customer travel inquiry before pricing (pedido).
// The id is the string form of the creation epoch in milliseconds,
// same scheme the legacy frontend used.
type Request struct {
	ID           string `json:"id"`
	CreationDate string `json:"creationDate"`
	TravelDate   string `json:"travelDate"`
	Passengers   int    `json:"passengers"`
	Nights       int    `json:"nights"`
	Minors       int    `json:"minors"`
	Infants      int    `json:"infants"`
	Responsible  string `json:"responsible"`
}

// Request age classes shown on the pending-requests list.
const (
	AgeFresh = "fresh"
	AgeWarn  = "warn"
	AgeStale = "stale"
)
